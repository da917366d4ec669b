package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/hanzi-reader/internal/adapter/source/file"
	"github.com/heartmarshall/hanzi-reader/internal/adapter/source/httpsrc"
	"github.com/heartmarshall/hanzi-reader/internal/config"
	"github.com/heartmarshall/hanzi-reader/internal/service/annotation"
	"github.com/heartmarshall/hanzi-reader/internal/service/dictionary"
	"github.com/heartmarshall/hanzi-reader/internal/transport/middleware"
	"github.com/heartmarshall/hanzi-reader/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, starts the
// dictionary loader in the background and serves HTTP until ctx is cancelled.
// The server accepts requests immediately; annotation answers 503 until the
// first dictionary load succeeds.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	src := NewDictionarySource(cfg.Dictionary, logger)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("dictionary", src.String()),
	)

	store := dictionary.NewStore(logger, src)
	annotator := annotation.NewService(logger, store, cfg.Annotate.MaxInputRunes)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler: rest.NewRouter(rest.RouterDeps{
			Logger:             logger,
			Health:             rest.NewHealthHandler(store, BuildVersion()),
			Annotate:           rest.NewAnnotateHandler(annotator, logger),
			Lookup:             rest.NewLookupHandler(store, logger),
			CORS:               cfg.CORS,
			Limiter:            limiter,
			RateLimitPerMinute: cfg.Annotate.RateLimitPerMinute,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return store.Run(gctx, cfg.Dictionary.RetryInterval, cfg.Dictionary.ReloadInterval)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

// NewDictionarySource picks the dictionary source from config. A URL wins
// over a local path.
func NewDictionarySource(cfg config.DictionaryConfig, logger *slog.Logger) dictionary.Source {
	if cfg.UsesURL() {
		return httpsrc.New(cfg.URL, cfg.FetchTimeout, logger)
	}
	return file.New(cfg.Path)
}
