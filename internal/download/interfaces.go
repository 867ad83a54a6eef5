package download

import (
	"context"

	"github.com/maneth909/tubedl/internal/history"
	"github.com/maneth909/tubedl/internal/model"
)

// Fetcher resolves URLs to media metadata and performs the byte transfer.
type Fetcher interface {
	Resolve(ctx context.Context, url string) (*model.Media, error)
	Playlist(ctx context.Context, url string) (*model.Playlist, error)
	Download(ctx context.Context, media *model.Media, stream model.Stream, destPath string, progress model.ChunkFunc) error
}

// Transcoder converts a downloaded container to the target audio format.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// History records completed downloads.
type History interface {
	Append(title, url, fileType, downloadPath string) (history.Record, error)
}
