package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/ytget/yt-web-downloader/internal/model"
)

// Subprocess limits
const (
	DefaultExtractTimeout = 60 * time.Second

	// MaxMetadataOutput bounds the captured stdout; --dump-json payloads for
	// long videos routinely run into the megabytes.
	MaxMetadataOutput = 10 * 1024 * 1024

	// maxStderrCapture bounds how much diagnostic output is kept for errors.
	maxStderrCapture = 64 * 1024
)

// DefaultBinary is the yt-dlp executable resolved via PATH.
const DefaultBinary = "yt-dlp"

// ExecRunner runs yt-dlp via os/exec with a bounded output capture.
type ExecRunner struct {
	binary    string
	maxOutput int64
}

// NewExecRunner creates a runner for the given yt-dlp binary. An empty path
// falls back to DefaultBinary.
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{binary: binary, maxOutput: MaxMetadataOutput}
}

// Run executes one invocation and returns captured stdout. Exceeding the
// output bound, a non-zero exit, or a spawn failure all surface as errors;
// stderr text is folded into the exit error for diagnostics.
func (r *ExecRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)

	var stderr cappedBuffer
	stderr.limit = maxStderrCapture
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", r.binary, err)
	}

	output, overflow, readErr := readBounded(stdout, r.maxOutput)
	if overflow {
		// Stop the producer right away; Wait would otherwise block on the
		// full pipe until the context deadline.
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	if overflow {
		return nil, fmt.Errorf("output exceeded %d byte limit", r.maxOutput)
	}
	if readErr != nil {
		return nil, fmt.Errorf("read output: %w", readErr)
	}
	if waitErr != nil {
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("%w: %s", waitErr, msg)
		}
		return nil, waitErr
	}
	return output, nil
}

// readBounded reads at most max bytes plus one sentinel byte. The sentinel
// flags overflow without draining an unbounded producer.
func readBounded(r io.Reader, max int64) ([]byte, bool, error) {
	output, err := io.ReadAll(io.LimitReader(r, max+1))
	if int64(len(output)) > max {
		return nil, true, err
	}
	return output, false, err
}

// cappedBuffer collects writes up to a limit and silently drops the rest.
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if remaining := b.limit - b.buf.Len(); remaining > 0 {
		if len(p) > remaining {
			b.buf.Write(p[:remaining])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}

// Invoker turns one strategy into one bounded extraction attempt.
type Invoker struct {
	runner  Runner
	timeout time.Duration
}

// NewInvoker creates an invoker on top of the given runner.
func NewInvoker(runner Runner) *Invoker {
	return &Invoker{runner: runner, timeout: DefaultExtractTimeout}
}

// SetTimeout sets the per-attempt timeout.
func (i *Invoker) SetTimeout(timeout time.Duration) {
	i.timeout = timeout
}

// Extract runs one metadata invocation for the strategy and parses its output
// as a single JSON document. Any failure is reported as a model.ExtractionError
// carrying the strategy name; the caller decides whether to move on.
func (i *Invoker) Extract(ctx context.Context, url string, strategy Strategy) (*model.RawVideoRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	output, err := i.runner.Run(ctx, strategy.InfoArgs(url))
	if err != nil {
		return nil, &model.ExtractionError{Strategy: strategy.Name, Cause: err}
	}

	var record model.RawVideoRecord
	if err := json.Unmarshal(output, &record); err != nil {
		return nil, &model.ExtractionError{
			Strategy: strategy.Name,
			Cause:    fmt.Errorf("malformed metadata JSON: %w", err),
		}
	}
	return &record, nil
}
