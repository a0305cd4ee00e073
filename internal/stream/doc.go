package stream

// Package stream pipes a yt-dlp download subprocess's stdout into a live HTTP
// response. A supervisor watches the subprocess's stderr and the request
// context so failures before the first byte can still become clean errors and
// a disconnected client never leaves an orphaned subprocess behind.
