package model

import "testing"

func TestMediaKindFileType(t *testing.T) {
	tests := []struct {
		kind     MediaKind
		expected string
	}{
		{KindVideo, "mp4"},
		{KindAudio, "mp3"},
	}

	for _, tt := range tests {
		if got := tt.kind.FileType(); got != tt.expected {
			t.Errorf("%s.FileType() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}

func TestMediaKindExtension(t *testing.T) {
	tests := []struct {
		kind     MediaKind
		expected string
	}{
		{KindVideo, ".mp4"},
		{KindAudio, ".mp3"},
	}

	for _, tt := range tests {
		if got := tt.kind.Extension(); got != tt.expected {
			t.Errorf("%s.Extension() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}

func TestMediaKindValid(t *testing.T) {
	tests := []struct {
		kind     MediaKind
		expected bool
	}{
		{KindVideo, true},
		{KindAudio, true},
		{MediaKind(""), false},
		{MediaKind("movie"), false},
	}

	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.expected {
			t.Errorf("MediaKind(%q).Valid() = %v, expected %v", tt.kind, got, tt.expected)
		}
	}
}

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"playlist path", "https://www.youtube.com/playlist?list=PLx", true},
		{"watch with list param", "https://www.youtube.com/watch?v=abc&list=PLx", true},
		{"plain watch url", "https://www.youtube.com/watch?v=abc", false},
		{"short url", "https://youtu.be/abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlaylistURL(tt.url); got != tt.expected {
				t.Errorf("IsPlaylistURL(%q) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestDownloadRequestIsPlaylist(t *testing.T) {
	req := DownloadRequest{URL: "https://www.youtube.com/playlist?list=PLx"}
	if !req.IsPlaylist() {
		t.Error("request with playlist URL reported IsPlaylist() = false")
	}

	req.URL = "https://www.youtube.com/watch?v=abc"
	if req.IsPlaylist() {
		t.Error("request with single-video URL reported IsPlaylist() = true")
	}
}
