package download

import (
	"context"

	"github.com/maneth909/tubedl/internal/model"
)

// VideoPreview fetches display-only metadata for a single video. No side
// effects, no history writes.
func (s *Service) VideoPreview(ctx context.Context, url string) (*model.VideoInfo, error) {
	media, err := s.fetcher.Resolve(ctx, url)
	if err != nil {
		return nil, resolveError(err)
	}
	return toVideoInfo(media, url), nil
}

// PlaylistPreview fetches display-only metadata for every playlist item.
// A failure on any item aborts enumeration of the rest, same fail-fast
// policy as the playlist download loop.
func (s *Service) PlaylistPreview(ctx context.Context, url string) ([]model.VideoInfo, error) {
	playlist, err := s.fetcher.Playlist(ctx, url)
	if err != nil {
		return nil, resolveError(err)
	}

	infos := make([]model.VideoInfo, 0, len(playlist.Entries))
	for _, entry := range playlist.Entries {
		media, err := s.fetcher.Resolve(ctx, entry.URL)
		if err != nil {
			return nil, resolveError(err)
		}
		infos = append(infos, *toVideoInfo(media, entry.URL))
	}
	return infos, nil
}

func toVideoInfo(media *model.Media, url string) *model.VideoInfo {
	return &model.VideoInfo{
		ID:           media.ID,
		Title:        media.Title,
		Author:       media.Author,
		LengthSec:    int(media.Duration.Seconds()),
		ThumbnailURL: media.ThumbnailURL,
		URL:          url,
	}
}
