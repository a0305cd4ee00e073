package stream

import (
	"context"
	"io"
)

// Process is a running download subprocess.
type Process interface {
	Stdout() io.Reader
	Stderr() io.Reader
	Wait() error
	Kill() error
}

// ProcessStarter spawns one download subprocess from an argument vector.
type ProcessStarter interface {
	Start(ctx context.Context, args []string) (Process, error)
}
