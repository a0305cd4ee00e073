package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-web-downloader/internal/extract"
	"github.com/ytget/yt-web-downloader/internal/format"
	"github.com/ytget/yt-web-downloader/internal/model"
	"github.com/ytget/yt-web-downloader/internal/platform"
)

// infoRequest is the body of POST /api/video-info.
type infoRequest struct {
	URL string `json:"url"`
}

// Handler binds the API routes to the orchestration layer.
type Handler struct {
	resolver extract.MetadataResolver
	streamer Streamer
	log      *logrus.Logger
}

// NewHandler creates the API handler.
func NewHandler(resolver extract.MetadataResolver, streamer Streamer, log *logrus.Logger) *Handler {
	return &Handler{resolver: resolver, streamer: streamer, log: log}
}

// HandleVideoInfo resolves metadata for a pasted URL and returns the
// normalized summary.
func (h *Handler) HandleVideoInfo(c *gin.Context) {
	var req infoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}
	if !platform.IsValidVideoURL(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube URL"})
		return
	}

	record, err := h.resolver.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		h.log.WithFields(logrus.Fields{"url": req.URL, "error": err}).Error("video info lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": lookupErrorMessage(err)})
		return
	}

	title := record.Title
	if title == "" {
		title = "Unknown"
	}
	c.JSON(http.StatusOK, model.VideoSummary{
		Title:     title,
		Thumbnail: record.BestThumbnail(),
		Duration:  platform.FormatDuration(int(record.Duration)),
		ViewCount: record.ViewCount,
		Author:    record.Author(),
		Formats:   format.Normalize(record.Formats),
	})
}

// HandleDownload re-resolves metadata for the filename, announces the
// attachment, and pipes the download subprocess's stdout into the response.
func (h *Handler) HandleDownload(c *gin.Context) {
	rawURL := c.Query("url")
	formatID := c.Query("format_id")

	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}
	if !platform.IsValidVideoURL(rawURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube URL"})
		return
	}

	ctx := c.Request.Context()

	filename, err := h.streamer.ResolveFilename(ctx, rawURL)
	if err != nil {
		h.log.WithFields(logrus.Fields{"url": rawURL, "error": err}).Error("download metadata lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": lookupErrorMessage(err)})
		return
	}

	header := c.Writer.Header()
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", url.PathEscape(filename)))
	header.Set("Content-Type", "video/mp4")
	header.Set("Accept-Ranges", "bytes")

	written, err := h.streamer.Stream(ctx, c.Writer, rawURL, formatID)
	switch {
	case err == nil:
		h.log.WithFields(logrus.Fields{"url": rawURL, "bytes": written}).Info("download completed")
	case errors.Is(err, context.Canceled):
		// Client went away; the subprocess has been terminated. Not an error.
	case written == 0 && !c.Writer.Written():
		// Nothing was sent yet, so a clean JSON error is still possible.
		header.Del("Content-Disposition")
		header.Del("Content-Type")
		header.Del("Accept-Ranges")
		h.log.WithFields(logrus.Fields{"url": rawURL, "error": err}).Error("download failed before streaming")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Download failed. Please try a different video."})
	default:
		// Headers and payload are out; ending the stream short is the only
		// remaining signal.
		h.log.WithFields(logrus.Fields{"url": rawURL, "bytes": written, "error": err}).Error("download truncated mid-stream")
	}
}

// HandleHealth is the liveness probe.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// lookupErrorMessage maps internal lookup failures to the user-facing text.
// Exhaustion carries its own guidance; anything else gets a generic line.
func lookupErrorMessage(err error) string {
	var exhausted *model.ExhaustedError
	if errors.As(err, &exhausted) {
		return exhausted.UserMessage()
	}
	return "Failed to fetch video information"
}
