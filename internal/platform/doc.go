package platform

// Package platform provides filesystem helpers and filename sanitization.
