package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-web-downloader/internal/model"
	"github.com/ytget/yt-web-downloader/internal/stream"
)

type stubResolver struct {
	record *model.RawVideoRecord
	err    error
	calls  int
}

func (s *stubResolver) Resolve(context.Context, string) (*model.RawVideoRecord, error) {
	s.calls++
	return s.record, s.err
}

type stubStreamer struct {
	filename    string
	resolveErr  error
	payload     string
	streamErr   error
	calls       int
	streamCalls int
}

func (s *stubStreamer) ResolveFilename(context.Context, string) (string, error) {
	s.calls++
	return s.filename, s.resolveErr
}

func (s *stubStreamer) Stream(_ context.Context, w io.Writer, _, _ string) (int64, error) {
	s.streamCalls++
	if s.payload == "" {
		// io.Copy never issues zero-byte writes; neither does the stub,
		// or gin would commit the status before the handler can set one.
		return 0, s.streamErr
	}
	n, _ := w.Write([]byte(s.payload))
	return int64(n), s.streamErr
}

func newTestServer(resolver *stubResolver, streamer *stubStreamer) *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	handler := NewHandler(resolver, streamer, log)
	return New(":0", "", handler, log)
}

func TestHandleVideoInfo_RejectsMissingURL(t *testing.T) {
	resolver := &stubResolver{}
	srv := newTestServer(resolver, &stubStreamer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/video-info", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, resolver.calls, "no subprocess path may be reached for invalid input")
}

func TestHandleVideoInfo_RejectsNonVideoURL(t *testing.T) {
	resolver := &stubResolver{}
	srv := newTestServer(resolver, &stubStreamer{})

	w := httptest.NewRecorder()
	body := `{"url":"https://example.com/watch?v=abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/video-info", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, resolver.calls)
}

func TestHandleVideoInfo_ReturnsNormalizedSummary(t *testing.T) {
	resolver := &stubResolver{
		record: &model.RawVideoRecord{
			Title:     "Demo Clip",
			Uploader:  "Channel A",
			Duration:  125,
			ViewCount: 1000,
			Thumbnail: "https://i.ytimg.com/vi/abc123/hq.jpg",
			Formats: []model.RawFormatRecord{
				{FormatID: "18", Ext: "webm", Height: 720, VCodec: "vp9", ACodec: "opus"},
				{FormatID: "22", Ext: "mp4", Height: 1080, VCodec: "avc1", ACodec: "mp4a"},
				{FormatID: "137", Ext: "mp4", Height: 2160, VCodec: "avc1", ACodec: "none"},
			},
		},
	}
	srv := newTestServer(resolver, &stubStreamer{})

	w := httptest.NewRecorder()
	body := `{"url":"https://www.youtube.com/watch?v=abc123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/video-info", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary model.VideoSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "Demo Clip", summary.Title)
	assert.Equal(t, "Channel A", summary.Author)
	assert.Equal(t, "2:05", summary.Duration)
	assert.Equal(t, int64(1000), summary.ViewCount)
	require.Len(t, summary.Formats, 2, "the video-only rendition must be excluded")
	assert.Equal(t, "1080p", summary.Formats[0].Quality)
	assert.Equal(t, "720p", summary.Formats[1].Quality)
}

func TestHandleVideoInfo_ExhaustionBecomesActionable500(t *testing.T) {
	resolver := &stubResolver{err: &model.ExhaustedError{}}
	srv := newTestServer(resolver, &stubStreamer{})

	w := httptest.NewRecorder()
	body := `{"url":"https://youtu.be/abc123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/video-info", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "blocking automated requests")
}

func TestHandleDownload_RejectsInvalidURL(t *testing.T) {
	streamer := &stubStreamer{}
	srv := newTestServer(&stubResolver{}, streamer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download?url=https://vimeo.com/123", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, streamer.calls)
	assert.Zero(t, streamer.streamCalls)
}

func TestHandleDownload_StreamsWithAttachmentHeaders(t *testing.T) {
	streamer := &stubStreamer{filename: "Demo Clip.mp4", payload: "binarybytes"}
	srv := newTestServer(&stubResolver{}, streamer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download?url=https://youtu.be/abc123&format_id=22", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "binarybytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".mp4")
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
}

func TestHandleDownload_FailureBeforeBytesIsJSON500(t *testing.T) {
	streamer := &stubStreamer{filename: "Demo.mp4", payload: "", streamErr: stream.ErrDownloadFailed}
	srv := newTestServer(&stubResolver{}, streamer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download?url=https://youtu.be/abc123&format_id=22", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestHandleDownload_MetadataFailureIsJSON500(t *testing.T) {
	streamer := &stubStreamer{resolveErr: &model.ExhaustedError{}}
	srv := newTestServer(&stubResolver{}, streamer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download?url=https://youtu.be/abc123", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, streamer.streamCalls, "streaming must not start without a filename")
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubResolver{}, &stubStreamer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&stubResolver{}, &stubStreamer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/video-info", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeaderAssigned(t *testing.T) {
	srv := newTestServer(&stubResolver{}, &stubStreamer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
