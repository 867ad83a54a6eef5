package fetch

// Package fetch resolves video and playlist URLs to media metadata and
// streams the selected representation to disk, wrapping the YouTube client.
