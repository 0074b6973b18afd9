package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackielii/authorpages"
	"github.com/jackielii/authorpages/chirouter"
	"github.com/jackielii/authorpages/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve author archives",
	Long: `Serves author archives and their extra pages. When the config file changes
the page list and precedence are reloaded and the rewrite rules are rebuilt.
Changes to addr, author_base and templates need a restart.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func serve(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return fmt.Errorf("build rewrite rules: %w", err)
	}
	if loader.File() != "" {
		loader.Watch(func(cfg config.Config, err error) {
			if err != nil {
				logger.Warn("config reload failed", zap.Error(err))
				return
			}
			restart, err := a.reload(cfg)
			if err != nil {
				logger.Warn("rewrite rebuild failed", zap.Error(err))
				return
			}
			if len(restart) > 0 {
				logger.Warn("config changes ignored until restart", zap.Strings("keys", restart))
			}
			logger.Info("config reloaded",
				zap.Strings("pages", cfg.Pages),
				zap.String("precedence", cfg.Precedence))
		})
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID, middleware.Recoverer)
	r := chirouter.NewChiRouter(mux)
	authorpages.Mount(r, "/", a.server)

	srv := &http.Server{Addr: cfg.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.Addr),
			zap.String("author_base", cfg.AuthorBase),
			zap.Strings("pages", cfg.Pages))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
