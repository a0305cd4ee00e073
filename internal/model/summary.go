package model

// MaxFormats caps how many normalized formats a summary exposes to the UI.
const MaxFormats = 10

// NormalizedFormat is a single user-facing download option. Quality and
// Container together identify the option; FormatID is what gets handed back to
// yt-dlp on download.
type NormalizedFormat struct {
	FormatID  string `json:"format_id"`
	Quality   string `json:"quality"`
	Container string `json:"container"`
	Size      string `json:"size"`
}

// VideoSummary is the response payload of the video-info endpoint. It is built
// fresh on every request and never persisted.
type VideoSummary struct {
	Title     string             `json:"title"`
	Thumbnail string             `json:"thumbnail"`
	Duration  string             `json:"duration"`
	ViewCount int64              `json:"viewCount"`
	Author    string             `json:"author"`
	Formats   []NormalizedFormat `json:"formats"`
}
