package fetch

import (
	"testing"

	"github.com/kkdai/youtube/v2"
)

func TestContainerFromMime(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{`video/mp4; codecs="avc1.42001E, mp4a.40.2"`, "mp4"},
		{`audio/webm; codecs="opus"`, "webm"},
		{"video/mp4", "mp4"},
		{"audio/mp4", "mp4"},
		{"nonsense", "bin"},
		{"", "bin"},
	}

	for _, test := range tests {
		result := ContainerFromMime(test.mime)
		if result != test.expected {
			t.Errorf("ContainerFromMime(%q) = %q, expected %q", test.mime, result, test.expected)
		}
	}
}

func TestWatchURL(t *testing.T) {
	result := WatchURL("dQw4w9WgXcQ")
	expected := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if result != expected {
		t.Errorf("WatchURL() = %q, expected %q", result, expected)
	}
}

func TestEvictDropsCachedVideo(t *testing.T) {
	client := NewClient(0)
	client.resolved["dQw4w9WgXcQ"] = &youtube.Video{ID: "dQw4w9WgXcQ"}
	client.resolved["other"] = &youtube.Video{ID: "other"}

	client.evict("dQw4w9WgXcQ")

	if _, ok := client.resolved["dQw4w9WgXcQ"]; ok {
		t.Error("evicted video still cached")
	}
	if _, ok := client.resolved["other"]; !ok {
		t.Error("evict removed an unrelated cache entry")
	}

	// Evicting an absent entry is a no-op.
	client.evict("missing")
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient(0)
	if client.yt.HTTPClient.Timeout != DefaultHTTPTimeout {
		t.Errorf("NewClient(0) timeout = %v, expected %v", client.yt.HTTPClient.Timeout, DefaultHTTPTimeout)
	}
}
