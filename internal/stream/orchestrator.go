package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-web-downloader/internal/extract"
	"github.com/ytget/yt-web-downloader/internal/platform"
)

// ErrDownloadFailed is what clients see when the subprocess fails before any
// payload byte was produced. The stderr detail stays in the logs.
var ErrDownloadFailed = fmt.Errorf("download failed, please try a different video")

// Orchestrator supervises one streaming download per call: re-resolve metadata
// for the filename, spawn the emit subprocess, pipe stdout to the sink.
type Orchestrator struct {
	resolver extract.MetadataResolver
	starter  ProcessStarter
	log      *logrus.Logger
}

// NewOrchestrator wires the orchestrator to a metadata resolver and a process
// starter.
func NewOrchestrator(resolver extract.MetadataResolver, starter ProcessStarter, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{resolver: resolver, starter: starter, log: log}
}

// ResolveFilename runs the full strategy fallback once more to obtain the
// title and derives the attachment filename from it. This is an independent
// metadata round-trip, not a cache of the info lookup.
func (o *Orchestrator) ResolveFilename(ctx context.Context, url string) (string, error) {
	record, err := o.resolver.Resolve(ctx, url)
	if err != nil {
		return "", err
	}
	title := record.Title
	if title == "" {
		title = "video"
	}
	return platform.DownloadFilename(title), nil
}

// Stream spawns the download subprocess and copies its stdout into w as it is
// produced, flushing incrementally and never buffering the payload. It returns
// the number of payload bytes written. A nil error with fewer bytes than the
// rendition holds cannot happen from here; truncation is signalled by the
// returned error once bytes have flowed.
//
// Cancellation of ctx (client disconnect) kills the subprocess immediately.
func (o *Orchestrator) Stream(ctx context.Context, w io.Writer, url, formatID string) (int64, error) {
	proc, err := o.starter.Start(ctx, DownloadArgs(url, formatID))
	if err != nil {
		return 0, fmt.Errorf("spawn download subprocess: %w", err)
	}

	// Watch stderr for error markers. Only the first marked line is kept; it
	// decides the outcome when no payload byte ever arrived.
	var errLine atomic.Value
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(proc.Stderr())
		for scanner.Scan() {
			line := scanner.Text()
			if strings.Contains(line, "ERROR") || strings.Contains(line, "error") {
				errLine.CompareAndSwap(nil, line)
				o.log.WithFields(logrus.Fields{"stderr": line}).Error("download subprocess reported an error")
			}
		}
	}()

	// Kill on cancellation so a disconnected client never leaves orphaned work.
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			_ = proc.Kill()
		case <-done:
		}
	}()

	sink := &flushWriter{w: w}
	written, copyErr := io.Copy(sink, proc.Stdout())
	if copyErr != nil {
		// The sink is gone; stop the producer or Wait blocks on a full pipe.
		_ = proc.Kill()
	}
	close(done)
	wg.Wait()
	waitErr := proc.Wait()

	if ctx.Err() != nil {
		// Client disconnect is not an error; the subprocess was terminated.
		o.log.WithFields(logrus.Fields{"bytes": written}).Info("client disconnected, subprocess terminated")
		return written, ctx.Err()
	}

	if written == 0 {
		if line, ok := errLine.Load().(string); ok && line != "" {
			return 0, ErrDownloadFailed
		}
		if waitErr != nil || copyErr != nil {
			return 0, ErrDownloadFailed
		}
	}
	if copyErr != nil {
		return written, fmt.Errorf("stream interrupted: %w", copyErr)
	}
	if waitErr != nil {
		// Bytes already went out; the short stream is the only possible signal.
		return written, fmt.Errorf("subprocess exited abnormally after %d bytes: %w", written, waitErr)
	}
	return written, nil
}

// flushWriter flushes the response after every chunk so payload reaches the
// client as the subprocess produces it. Backpressure comes from the blocking
// Write itself; nothing accumulates beyond the pipe buffer.
type flushWriter struct {
	w io.Writer
}

func (f *flushWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil {
		return n, err
	}
	if flusher, ok := f.w.(http.Flusher); ok {
		flusher.Flush()
	}
	return n, nil
}
