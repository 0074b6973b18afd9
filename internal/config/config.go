package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Addr       string         `mapstructure:"addr"`
	AuthorBase string         `mapstructure:"author_base"`
	Pages      []string       `mapstructure:"pages"`
	Precedence string         `mapstructure:"precedence"`
	Templates  TemplateConfig `mapstructure:"templates"`
}

// TemplateConfig locates template files.
type TemplateConfig struct {
	Root string `mapstructure:"root"`
	// Themes are searched in order, child theme first.
	Themes []string `mapstructure:"themes"`
}

// Loader reads configuration from file and env. Env var overrides use
// prefix AUTHORPAGES_.
type Loader struct {
	v        *viper.Viper
	explicit bool
}

// NewLoader returns a loader for path. With an empty path it looks for
// authorpages.yaml in the working directory.
func NewLoader(path string) *Loader {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("author_base", "author/{author}")
	v.SetDefault("pages", []string{})
	v.SetDefault("precedence", "last")
	v.SetDefault("templates.root", "templates")
	v.SetDefault("templates.themes", []string{"."})

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("authorpages")
	}

	v.SetEnvPrefix("AUTHORPAGES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, explicit: path != ""}
}

// Load reads the config file, if any, and unmarshals it. A missing file is
// only an error when its path was given explicitly.
func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Precedence != "last" && c.Precedence != "first" {
		return Config{}, fmt.Errorf("precedence must be first or last, got %q", c.Precedence)
	}
	return c, nil
}

// File returns the config file in use, or "".
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch calls fn with the reloaded config whenever the file changes.
func (l *Loader) Watch(fn func(Config, error)) {
	l.v.OnConfigChange(func(fsnotify.Event) {
		fn(l.Load())
	})
	l.v.WatchConfig()
}

// Load is a shorthand for NewLoader(path).Load().
func Load(path string) (Config, error) {
	return NewLoader(path).Load()
}
