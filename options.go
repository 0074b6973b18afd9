package authorpages

import (
	"net/http"

	"go.uber.org/zap"
)

type options struct {
	authorBase  string
	expander    Expander
	rules       RuleSet
	extensions  []Extension
	logger      *zap.Logger
	onError     func(http.ResponseWriter, *http.Request, error)
	middlewares []func(http.Handler) http.Handler
}

// Option configures NewRewrite and NewServer. Options that do not apply to a
// constructor are ignored by it.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		authorBase: DefaultAuthorBase,
		logger:     zap.NewNop(),
		onError: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.expander == nil {
		o.expander = NewExpander()
	}
	return o
}

// WithAuthorBase sets the author permalink structure. An empty base turns
// author routing off, and with it every derived extra page rule.
func WithAuthorBase(base string) Option {
	return func(o *options) {
		o.authorBase = base
	}
}

// WithExpander replaces the default PermastructExpander.
func WithExpander(e Expander) Option {
	return func(o *options) {
		o.expander = e
	}
}

// WithRules appends rules after the generated author rules.
func WithRules(rules RuleSet) Option {
	return func(o *options) {
		o.rules = o.rules.Append(rules)
	}
}

// WithExtensions composes extensions into the rewrite table or server.
func WithExtensions(exts ...Extension) Option {
	return func(o *options) {
		o.extensions = append(o.extensions, exts...)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithErrorHandler sets the handler for render failures.
func WithErrorHandler(onError func(http.ResponseWriter, *http.Request, error)) Option {
	return func(o *options) {
		o.onError = onError
	}
}

// WithMiddlewares wraps the server handler. The first middleware is the
// outermost.
func WithMiddlewares(middlewares ...func(http.Handler) http.Handler) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}
