package extract

// Package extract drives yt-dlp metadata extraction. It renders client
// impersonation strategies into argument vectors, runs one bounded subprocess
// invocation per strategy, and walks the fixed strategy order until one
// succeeds or the lookup is declared exhausted.
