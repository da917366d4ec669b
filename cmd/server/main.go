// Command server runs the hanzi-reader HTTP API: Chinese text annotation with
// pinyin and English glosses from CC-CEDICT, tone-mark conversion and
// dictionary lookups.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml), an optional
// .env file and the environment. Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/hanzi-reader/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
