package model

import "strings"

// MediaKind selects which output class a download produces
type MediaKind string

const (
	// KindVideo downloads the full video stream to an mp4 container
	KindVideo MediaKind = "video"

	// KindAudio downloads the best audio stream and converts it to mp3
	KindAudio MediaKind = "audio"
)

// File extensions per media kind
const (
	ExtensionMP4 = ".mp4"
	ExtensionMP3 = ".mp3"
)

// FileType returns the history file_type tag for the kind ("mp4" or "mp3")
func (k MediaKind) FileType() string {
	if k == KindAudio {
		return "mp3"
	}
	return "mp4"
}

// Extension returns the output file extension for the kind
func (k MediaKind) Extension() string {
	if k == KindAudio {
		return ExtensionMP3
	}
	return ExtensionMP4
}

// Valid reports whether the kind is one of the known values
func (k MediaKind) Valid() bool {
	return k == KindVideo || k == KindAudio
}

// URL markers used for playlist detection
const (
	playlistPathMarker  = "playlist"
	playlistQueryMarker = "list="
)

// DownloadRequest describes one user-triggered download. It is transient
// and never persisted.
type DownloadRequest struct {
	URL          string    `json:"url"`
	DownloadPath string    `json:"download_path"`
	Kind         MediaKind `json:"kind"`

	// Resolution is only meaningful when Kind is KindVideo (e.g. "720p")
	Resolution string `json:"resolution,omitempty"`

	// ContinueOnError keeps a playlist run going past failed items
	ContinueOnError bool `json:"continue_on_error,omitempty"`
}

// IsPlaylist reports whether the request URL addresses a playlist. Detection
// is a literal marker check on the URL string, not strict URL parsing.
func (r DownloadRequest) IsPlaylist() bool {
	return IsPlaylistURL(r.URL)
}

// IsPlaylistURL reports whether the URL string carries a playlist marker
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, playlistPathMarker) || strings.Contains(url, playlistQueryMarker)
}
