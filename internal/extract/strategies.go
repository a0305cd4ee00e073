package extract

// User agent and referer presented to the upstream service
const (
	SpoofedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	OriginReferer    = "https://www.youtube.com/"
)

// DefaultStrategyName identifies the final fallback profile.
const DefaultStrategyName = "default"

// Strategy is a named client-impersonation profile handed to yt-dlp. A profile
// without a PlayerClient omits the extractor-args flag entirely.
type Strategy struct {
	Name         string
	PlayerClient string
	UserAgent    string
	Referer      string
}

// Strategies returns the ordered impersonation chain. Mobile-app profiles come
// first because they are empirically more resistant to bot detection; browser
// profiles close the list. The order is fixed and never adjusted at runtime.
func Strategies() []Strategy {
	return []Strategy{
		{Name: "android", PlayerClient: "android", UserAgent: SpoofedUserAgent, Referer: OriginReferer},
		{Name: "ios", PlayerClient: "ios", UserAgent: SpoofedUserAgent, Referer: OriginReferer},
		{Name: "tv_embedded", PlayerClient: "tv_embedded", UserAgent: SpoofedUserAgent, Referer: OriginReferer},
		{Name: "web", PlayerClient: "web", UserAgent: SpoofedUserAgent, Referer: OriginReferer},
		{Name: "mweb", PlayerClient: "mweb", UserAgent: SpoofedUserAgent, Referer: OriginReferer},
	}
}

// DefaultStrategy is the last-resort profile: broader browser headers and no
// explicit client impersonation.
func DefaultStrategy() Strategy {
	return Strategy{
		Name:      DefaultStrategyName,
		UserAgent: BrowserUserAgent,
		Referer:   OriginReferer,
	}
}

// InfoArgs renders the strategy into the argument vector of one metadata
// extraction invocation. Arguments are always passed as a vector, never as an
// interpolated shell string.
func (s Strategy) InfoArgs(url string) []string {
	args := []string{"--dump-json", "--no-playlist"}
	if s.PlayerClient != "" {
		args = append(args, "--extractor-args", "youtube:player_client="+s.PlayerClient)
	}
	args = append(args,
		"--user-agent", s.UserAgent,
		"--referer", s.Referer,
		"--no-warnings", "--quiet",
		url,
	)
	return args
}
