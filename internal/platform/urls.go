package platform

import (
	"regexp"

	"github.com/asaskevich/govalidator"
)

// Accepted URL shapes. Anything else is rejected at the boundary before any
// subprocess is spawned.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/watch\?v=`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtu\.be/`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/embed/`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/shorts/`),
}

// IsValidVideoURL reports whether url matches one of the accepted watch,
// short-link, embed or shorts shapes and is a well-formed request URL.
func IsValidVideoURL(url string) bool {
	if url == "" {
		return false
	}
	for _, pattern := range videoURLPatterns {
		if pattern.MatchString(url) {
			// Patterns accept scheme-less URLs the way the upstream tool does.
			if govalidator.IsRequestURL(url) || govalidator.IsRequestURL("https://"+url) {
				return true
			}
		}
	}
	return false
}
