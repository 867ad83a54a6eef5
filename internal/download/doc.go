package download

// Package download orchestrates single-video, single-audio, and playlist
// downloads: stream selection, progress reporting, transcoding, and history
// recording.
