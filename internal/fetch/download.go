package fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kkdai/youtube/v2"

	"github.com/maneth909/tubedl/internal/model"
)

// Transfer buffer size
const copyBufferSize = 64 * 1024

// save streams one format to destPath, reporting chunk-level progress
func (c *Client) save(ctx context.Context, video *youtube.Video, format *youtube.Format, stream model.Stream, destPath string, progress model.ChunkFunc) (err error) {
	reader, size, err := c.yt.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("starting stream for %s: %w", video.ID, err)
	}
	defer reader.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(destPath)
		}
	}()

	remaining := size
	buf := make([]byte, copyBufferSize)
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		n, readErr := reader.Read(buf)
		if n > 0 {
			if _, writeErr := file.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("writing output file: %w", writeErr)
			}
			remaining -= int64(n)
			if remaining < 0 {
				remaining = 0
			}
			if progress != nil {
				progress(stream, n, remaining)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("reading stream: %w", readErr)
		}
	}
}
