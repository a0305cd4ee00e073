package format

// Package format normalizes the heterogeneous per-format metadata reported by
// yt-dlp into the stable, deduplicated list of muxed download options the UI
// shows. It is a pure transformation with no I/O.
