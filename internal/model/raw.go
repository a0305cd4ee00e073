package model

// RawVideoRecord mirrors the JSON document emitted by `yt-dlp --dump-json`.
// Only the fields the service consumes are bound; everything else is dropped
// during unmarshalling.
type RawVideoRecord struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Uploader   string            `json:"uploader"`
	Channel    string            `json:"channel"`
	Duration   float64           `json:"duration"`
	ViewCount  int64             `json:"view_count"`
	Thumbnail  string            `json:"thumbnail"`
	Thumbnails []RawThumbnail    `json:"thumbnails"`
	Formats    []RawFormatRecord `json:"formats"`
}

// RawThumbnail is a single entry of the yt-dlp thumbnails list.
type RawThumbnail struct {
	URL string `json:"url"`
}

// RawFormatRecord is the per-format metadata as reported by yt-dlp. A codec
// value of "none" (or empty) means the track is absent from the format.
type RawFormatRecord struct {
	FormatID       string `json:"format_id"`
	Ext            string `json:"ext"`
	Height         int    `json:"height"`
	VCodec         string `json:"vcodec"`
	ACodec         string `json:"acodec"`
	FormatNote     string `json:"format_note"`
	Filesize       int64  `json:"filesize"`
	FilesizeApprox int64  `json:"filesize_approx"`
}

// HasVideo reports whether the format carries a video track.
func (f *RawFormatRecord) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// HasAudio reports whether the format carries an audio track.
func (f *RawFormatRecord) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != "none"
}

// IsMuxed reports whether the format carries both tracks in a single file.
func (f *RawFormatRecord) IsMuxed() bool {
	return f.HasVideo() && f.HasAudio()
}

// Size returns the exact byte size when known, the approximate size otherwise,
// and 0 when yt-dlp reported neither.
func (f *RawFormatRecord) Size() int64 {
	if f.Filesize > 0 {
		return f.Filesize
	}
	return f.FilesizeApprox
}

// Author returns the display author for the record, preferring the uploader
// name over the channel name.
func (r *RawVideoRecord) Author() string {
	if r.Uploader != "" {
		return r.Uploader
	}
	if r.Channel != "" {
		return r.Channel
	}
	return "Unknown"
}

// BestThumbnail returns the top-level thumbnail URL when present, otherwise the
// last entry of the thumbnails list (yt-dlp orders them worst to best).
func (r *RawVideoRecord) BestThumbnail() string {
	if r.Thumbnail != "" {
		return r.Thumbnail
	}
	if n := len(r.Thumbnails); n > 0 {
		return r.Thumbnails[n-1].URL
	}
	return ""
}
