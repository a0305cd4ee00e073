package extract

import (
	"context"

	"github.com/ytget/yt-web-downloader/internal/model"
)

// Runner executes one yt-dlp invocation and returns its captured stdout.
type Runner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// MetadataInvoker performs a single extraction attempt with one strategy.
type MetadataInvoker interface {
	Extract(ctx context.Context, url string, strategy Strategy) (*model.RawVideoRecord, error)
}

// MetadataResolver resolves a URL to a raw video record, whatever it takes.
type MetadataResolver interface {
	Resolve(ctx context.Context, url string) (*model.RawVideoRecord, error)
}
