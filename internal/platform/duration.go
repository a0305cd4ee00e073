package platform

import "fmt"

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// UnknownDuration is returned when yt-dlp reported no duration.
const UnknownDuration = "Unknown"

// FormatDuration renders a duration in seconds as H:MM:SS, or M:SS when the
// video is under an hour.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return UnknownDuration
	}
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
