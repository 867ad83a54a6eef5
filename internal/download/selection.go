package download

import (
	"strings"

	"github.com/maneth909/tubedl/internal/model"
)

// Target container for video downloads
const videoContainer = "mp4"

// SelectVideoStream picks a non-audio-only stream matching the requested
// resolution, preferring the mp4 container. With fallback enabled (the
// playlist policy) only mp4 streams are eligible at all: a resolution match
// in another container does not count, and a missing mp4 match yields the
// highest-resolution mp4 stream instead. Without fallback the result is nil
// and the caller reports a stream-selection error.
func SelectVideoStream(streams []model.Stream, resolution string, fallback bool) *model.Stream {
	var matched *model.Stream
	for i := range streams {
		s := &streams[i]
		if s.AudioOnly || !resolutionMatches(s.Resolution, resolution) {
			continue
		}
		if s.Container == videoContainer {
			return s
		}
		if !fallback && matched == nil {
			matched = s
		}
	}
	if matched != nil || !fallback {
		return matched
	}

	return highestResolutionStream(streams)
}

// SelectAudioStream picks the best audio-only stream, best being the highest
// bitrate.
func SelectAudioStream(streams []model.Stream) *model.Stream {
	var best *model.Stream
	for i := range streams {
		s := &streams[i]
		if !s.AudioOnly {
			continue
		}
		if best == nil || s.Bitrate > best.Bitrate {
			best = s
		}
	}
	return best
}

// highestResolutionStream returns the maximum-resolution mp4 stream,
// breaking ties by bitrate.
func highestResolutionStream(streams []model.Stream) *model.Stream {
	var best *model.Stream
	for i := range streams {
		s := &streams[i]
		if s.AudioOnly || s.Container != videoContainer {
			continue
		}
		if best == nil {
			best = s
			continue
		}
		sh, bh := resolutionHeight(s.Resolution), resolutionHeight(best.Resolution)
		if sh > bh || (sh == bh && s.Bitrate > best.Bitrate) {
			best = s
		}
	}
	return best
}

// resolutionMatches compares labels ignoring frame-rate suffixes, so a
// "720p60" stream satisfies a "720p" request.
func resolutionMatches(label, requested string) bool {
	if label == requested {
		return true
	}
	return requested != "" && resolutionHeight(label) == resolutionHeight(requested)
}

// resolutionHeight parses the numeric height out of a quality label like
// "720p" or "1080p60". Unparseable labels yield 0.
func resolutionHeight(label string) int {
	height := 0
	for _, r := range label {
		if r < '0' || r > '9' {
			break
		}
		height = height*10 + int(r-'0')
	}
	if !strings.ContainsRune(label, 'p') {
		// Labels without the "p" marker ("hd720" etc) are not height-first;
		// don't guess.
		if _, rest, found := strings.Cut(label, "hd"); found {
			return resolutionHeight(rest + "p")
		}
	}
	return height
}
