package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maneth909/tubedl/internal/config"
	"github.com/maneth909/tubedl/internal/download"
	"github.com/maneth909/tubedl/internal/fetch"
	"github.com/maneth909/tubedl/internal/history"
	"github.com/maneth909/tubedl/internal/logging"
	"github.com/maneth909/tubedl/internal/platform"
	"github.com/maneth909/tubedl/internal/server"
	"github.com/maneth909/tubedl/internal/transcode"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.Execute(run); err != nil {
		fmt.Fprintf(os.Stderr, "tubedl: %v\n", err)
		os.Exit(1)
	}
}

func run(settings config.Settings) error {
	log := logging.New(settings.LogLevel)
	log.Info().Str("version", version).Str("addr", settings.ListenAddr).Msg("tubedl starting")

	if err := platform.CreateDirectoryIfNotExists(settings.DownloadDir); err != nil {
		return fmt.Errorf("ensuring download dir: %w", err)
	}

	store := history.NewStore(settings.HistoryFile)
	fetcher := fetch.NewClient(settings.HTTPTimeout)
	transcoder := transcode.NewService(settings.FFmpegPath, log)
	downloader := download.NewService(fetcher, transcoder, store, log)
	srv := server.New(downloader, store, settings.DownloadDir, log)

	httpServer := &http.Server{
		Addr:    settings.ListenAddr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("tubedl stopped")
	return nil
}
