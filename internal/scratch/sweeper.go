package scratch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Sweep defaults: entries older than MaxAge are deleted once per Interval.
const (
	DefaultMaxAge   = time.Hour
	DefaultInterval = time.Hour
)

// Sweeper periodically deletes stale files from the scratch directory. Eviction
// is purely age-based; scratch files are meant to be consumed near-immediately,
// so no reference counting or locking applies.
type Sweeper struct {
	fs       afero.Fs
	dir      string
	maxAge   time.Duration
	interval time.Duration
	log      *logrus.Logger
}

// NewSweeper creates a sweeper over the given filesystem and directory.
func NewSweeper(fs afero.Fs, dir string, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		fs:       fs,
		dir:      dir,
		maxAge:   DefaultMaxAge,
		interval: DefaultInterval,
		log:      log,
	}
}

// SetMaxAge overrides the age threshold.
func (s *Sweeper) SetMaxAge(maxAge time.Duration) {
	s.maxAge = maxAge
}

// SetInterval overrides the tick interval.
func (s *Sweeper) SetInterval(interval time.Duration) {
	s.interval = interval
}

// Run sweeps on every tick until ctx is cancelled. It never sweeps at startup;
// the first pass happens one interval in.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce deletes every regular file in the scratch directory older than the
// age threshold. Errors on individual entries are logged and skipped; a sweep
// never fails the service.
func (s *Sweeper) SweepOnce() {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		s.log.WithFields(logrus.Fields{"dir": s.dir, "error": err}).Warn("scratch sweep: cannot read directory")
		return
	}

	cutoff := time.Now().Add(-s.maxAge)
	removed := 0
	var freed uint64

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := s.fs.Remove(path); err != nil {
			s.log.WithFields(logrus.Fields{"file": path, "error": err}).Warn("scratch sweep: remove failed")
			continue
		}
		removed++
		freed += uint64(entry.Size())
	}

	if removed > 0 {
		s.log.WithFields(logrus.Fields{
			"removed": removed,
			"freed":   humanize.Bytes(freed),
		}).Info("scratch sweep completed")
	}
}
