package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/maneth909/tubedl/internal/config"
	"github.com/maneth909/tubedl/internal/download"
	"github.com/maneth909/tubedl/internal/fetch"
	"github.com/maneth909/tubedl/internal/history"
	"github.com/maneth909/tubedl/internal/logging"
	"github.com/maneth909/tubedl/internal/platform"
	"github.com/maneth909/tubedl/internal/server"
	"github.com/maneth909/tubedl/internal/transcode"
)

func main() {
	err := config.Execute(func(settings config.Settings) error {
		log := logging.New(settings.LogLevel)

		if err := platform.CreateDirectoryIfNotExists(settings.DownloadDir); err != nil {
			return err
		}

		store := history.NewStore(settings.HistoryFile)
		downloader := download.NewService(
			fetch.NewClient(settings.HTTPTimeout),
			transcode.NewService(settings.FFmpegPath, log),
			store,
			log,
		)
		srv := server.New(downloader, store, settings.DownloadDir, log)

		log.Info().Str("addr", settings.ListenAddr).Msg("listening")
		return http.ListenAndServe(settings.ListenAddr, srv.Router())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tubedl: %v\n", err)
		os.Exit(1)
	}
}
