package model

// Package model defines domain data structures used across the service: the raw
// yt-dlp metadata record, normalized user-facing formats, the per-request video
// summary, and the error taxonomy produced by the extraction pipeline. Structures
// are designed for direct JSON binding on both the yt-dlp and the API side.
