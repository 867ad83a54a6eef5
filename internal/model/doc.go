package model

// Package model defines the core data types for download requests,
// resolved media, jobs, and progress reporting.
