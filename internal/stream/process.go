package stream

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/ytget/yt-web-downloader/internal/extract"
)

// BestMuxedMP4 is the format selector used when the client picked no format.
const BestMuxedMP4 = "best[ext=mp4]"

// streamPlayerClient is the fixed impersonation profile for downloads. The
// android client is the most reliable one; streaming cannot cheaply retry
// mid-transfer, so no fallback chain applies here.
const streamPlayerClient = "android"

// DownloadArgs renders the argument vector of one streaming download
// invocation: emit the selected format to stdout with progress noise off.
func DownloadArgs(url, formatID string) []string {
	if formatID == "" {
		formatID = BestMuxedMP4
	}
	return []string{
		url,
		"-f", formatID,
		"-o", "-",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--no-progress",
		"--extractor-args", "youtube:player_client=" + streamPlayerClient,
		"--user-agent", extract.SpoofedUserAgent,
		"--referer", extract.OriginReferer,
	}
}

// ExecStarter spawns yt-dlp download subprocesses via os/exec.
type ExecStarter struct {
	binary string
}

// NewExecStarter creates a starter for the given yt-dlp binary. An empty path
// falls back to the PATH-resolved default.
func NewExecStarter(binary string) *ExecStarter {
	if binary == "" {
		binary = extract.DefaultBinary
	}
	return &ExecStarter{binary: binary}
}

// Start spawns the subprocess with stdout and stderr piped. The process is
// deliberately not bound to ctx here; the orchestrator's supervisor owns
// termination so a kill is always observable.
func (s *ExecStarter) Start(_ context.Context, args []string) (Process, error) {
	cmd := exec.Command(s.binary, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", s.binary, err)
	}
	return &execProcess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }
func (p *execProcess) Stderr() io.Reader { return p.stderr }
func (p *execProcess) Wait() error       { return p.cmd.Wait() }

func (p *execProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}
