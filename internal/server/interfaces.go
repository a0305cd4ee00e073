package server

import (
	"context"
	"io"
)

// Streamer supervises one streaming download: filename resolution first, then
// the live subprocess-to-response pipe.
type Streamer interface {
	ResolveFilename(ctx context.Context, url string) (string, error)
	Stream(ctx context.Context, w io.Writer, url, formatID string) (int64, error)
}
