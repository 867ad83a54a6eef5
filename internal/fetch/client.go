package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/maneth909/tubedl/internal/model"
)

// Client defaults
const (
	DefaultHTTPTimeout = 2 * time.Minute

	watchURLPrefix = "https://www.youtube.com/watch?v="
)

// Client resolves URLs to media metadata and downloads streams. Resolved
// videos are cached so a Resolve followed by a Download does not hit the
// network twice for metadata.
type Client struct {
	yt *youtube.Client

	mu       sync.Mutex
	resolved map[string]*youtube.Video // keyed by video ID
}

// NewClient creates a fetch client with the given HTTP timeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &Client{
		yt: &youtube.Client{
			HTTPClient: &http.Client{Timeout: timeout},
		},
		resolved: make(map[string]*youtube.Video),
	}
}

// Resolve fetches metadata and the selectable stream set for a video URL
func (c *Client) Resolve(ctx context.Context, url string) (*model.Media, error) {
	video, err := c.yt.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", url, err)
	}

	c.mu.Lock()
	c.resolved[video.ID] = video
	c.mu.Unlock()

	media := &model.Media{
		ID:           video.ID,
		Title:        video.Title,
		Author:       video.Author,
		Duration:     video.Duration,
		ThumbnailURL: thumbnailURL(video),
		SourceURL:    url,
		Streams:      make([]model.Stream, 0, len(video.Formats)),
	}
	for i := range video.Formats {
		media.Streams = append(media.Streams, toStream(&video.Formats[i]))
	}
	return media, nil
}

// Playlist eagerly enumerates a playlist's member videos in one round-trip
func (c *Client) Playlist(ctx context.Context, url string) (*model.Playlist, error) {
	playlist, err := c.yt.GetPlaylistContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", url, err)
	}

	result := &model.Playlist{
		ID:      playlist.ID,
		Title:   playlist.Title,
		Entries: make([]model.PlaylistEntry, 0, len(playlist.Videos)),
	}
	for _, entry := range playlist.Videos {
		if entry == nil || entry.ID == "" {
			continue
		}
		result.Entries = append(result.Entries, model.PlaylistEntry{
			ID:       entry.ID,
			Title:    entry.Title,
			Author:   entry.Author,
			Duration: entry.Duration,
			URL:      WatchURL(entry.ID),
		})
	}
	return result, nil
}

// Download streams the selected representation to destPath, invoking progress
// for every chunk received. A partial output file is removed on failure.
func (c *Client) Download(ctx context.Context, media *model.Media, stream model.Stream, destPath string, progress model.ChunkFunc) error {
	video, err := c.video(ctx, media)
	if err != nil {
		return err
	}
	// One download per resolved video; dropping the cache entry here keeps
	// the map from growing for the life of the process. A retry re-resolves.
	defer c.evict(media.ID)

	format := formatByItag(video, stream.Itag)
	if format == nil {
		return fmt.Errorf("stream itag %d not available for video %s", stream.Itag, video.ID)
	}

	return c.save(ctx, video, format, stream, destPath, progress)
}

// WatchURL returns the canonical watch URL for a video ID
func WatchURL(id string) string {
	return watchURLPrefix + id
}

// IsPermanent reports whether a fetch error cannot succeed on retry:
// restricted content, private videos, or a malformed URL/ID. Network
// failures are not permanent.
func IsPermanent(err error) bool {
	switch {
	case errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrNotPlayableInEmbed),
		errors.Is(err, youtube.ErrInvalidPlaylist),
		errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength):
		return true
	}

	var statusErr *youtube.ErrPlayabiltyStatus
	return errors.As(err, &statusErr)
}

// video returns the cached resolved video for the media, re-resolving if the
// cache entry is gone.
func (c *Client) video(ctx context.Context, media *model.Media) (*youtube.Video, error) {
	c.mu.Lock()
	video, ok := c.resolved[media.ID]
	c.mu.Unlock()
	if ok {
		return video, nil
	}

	video, err := c.yt.GetVideoContext(ctx, media.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("re-resolving %s: %w", media.SourceURL, err)
	}
	c.mu.Lock()
	c.resolved[video.ID] = video
	c.mu.Unlock()
	return video, nil
}

func (c *Client) evict(id string) {
	c.mu.Lock()
	delete(c.resolved, id)
	c.mu.Unlock()
}

func formatByItag(video *youtube.Video, itag int) *youtube.Format {
	for i := range video.Formats {
		if video.Formats[i].ItagNo == itag {
			return &video.Formats[i]
		}
	}
	return nil
}

func toStream(f *youtube.Format) model.Stream {
	bitrate := f.Bitrate
	if bitrate == 0 {
		bitrate = f.AverageBitrate
	}
	return model.Stream{
		Itag:       f.ItagNo,
		MimeType:   f.MimeType,
		Container:  ContainerFromMime(f.MimeType),
		Resolution: f.QualityLabel,
		AudioOnly:  f.AudioChannels > 0 && f.Width == 0 && f.Height == 0,
		Bitrate:    bitrate,
		Size:       int64(f.ContentLength),
	}
}

// ContainerFromMime extracts the container tag from a MIME type, e.g.
// `video/mp4; codecs="avc1"` yields "mp4".
func ContainerFromMime(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	parts := strings.Split(mime, "/")
	if len(parts) != 2 || parts[1] == "" {
		return "bin"
	}
	return parts[1]
}

func thumbnailURL(video *youtube.Video) string {
	if len(video.Thumbnails) == 0 {
		return ""
	}
	// Thumbnails are ordered smallest first; take the largest.
	return video.Thumbnails[len(video.Thumbnails)-1].URL
}
