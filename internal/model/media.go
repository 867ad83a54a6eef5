package model

import "time"

// Stream is one selectable encoded representation of a media item: a
// resolution/container combination, or an audio-only track.
type Stream struct {
	Itag       int    `json:"itag"`
	MimeType   string `json:"mime_type"`
	Container  string `json:"container"`
	Resolution string `json:"resolution,omitempty"` // e.g. "720p", empty for audio-only
	AudioOnly  bool   `json:"audio_only"`
	Bitrate    int    `json:"bitrate"`
	Size       int64  `json:"size"`
}

// Media is a resolved media item with its selectable streams
type Media struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Author       string        `json:"author"`
	Duration     time.Duration `json:"duration"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	SourceURL    string        `json:"source_url"`
	Streams      []Stream      `json:"streams,omitempty"`
}

// VideoInfo is display-only metadata for previews. No streams, no side effects.
type VideoInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	LengthSec    int    `json:"length_seconds"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	URL          string `json:"url"`
}

// Playlist is an eagerly enumerated collection of video entries
type Playlist struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Entries []PlaylistEntry `json:"entries"`
}

// PlaylistEntry is one member video of a playlist
type PlaylistEntry struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Author   string        `json:"author"`
	Duration time.Duration `json:"duration"`
	URL      string        `json:"url"`
}
