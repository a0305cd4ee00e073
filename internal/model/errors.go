package model

import (
	"fmt"
	"strings"
)

// ExtractionError reports the failure of a single impersonation strategy. It is
// consumed by the fallback driver and never surfaced to API clients directly.
type ExtractionError struct {
	Strategy string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction with player_client=%s failed: %v", e.Strategy, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ExhaustedError means every strategy, including the default profile, failed.
// LastCause keeps the final underlying error for logs; UserMessage carries the
// text returned to the client.
type ExhaustedError struct {
	LastCause error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all extraction strategies exhausted: %v", e.LastCause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastCause
}

// UserMessage translates the exhaustion into actionable guidance instead of a
// dump of per-strategy stderr. Bot-detection wording gets the long form.
func (e *ExhaustedError) UserMessage() string {
	cause := ""
	if e.LastCause != nil {
		cause = e.LastCause.Error()
	}
	if strings.Contains(cause, "Sign in to confirm") || strings.Contains(cause, "bot") {
		return "YouTube is blocking automated requests for this video. This may be due to:\n" +
			"1. The video requires authentication\n" +
			"2. YouTube's bot detection is active\n" +
			"3. The video may be restricted\n\n" +
			"Please try:\n" +
			"- A different video\n" +
			"- Waiting a few minutes and trying again\n" +
			"- Checking if the video is publicly accessible"
	}
	return "Failed to fetch video info. YouTube may be blocking automated requests. " +
		"This video may require authentication or may be restricted. " +
		"Please try a different video or try again later."
}
