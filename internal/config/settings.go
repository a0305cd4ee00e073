package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values
const (
	DefaultPort          = 3000
	DefaultScratchDir    = "./downloads"
	DefaultYTDLPPath     = "yt-dlp"
	DefaultPublicDir     = "./public"
	DefaultSweepInterval = time.Hour
	DefaultSweepMaxAge   = time.Hour
)

// Settings holds the service configuration. Zero values are replaced with
// defaults by ApplyDefaults, so a partial YAML file or bare flags both work.
type Settings struct {
	Port          int           `yaml:"port"`
	ScratchDir    string        `yaml:"scratch_dir"`
	YTDLPPath     string        `yaml:"ytdlp_path"`
	PublicDir     string        `yaml:"public_dir"`
	Verbose       bool          `yaml:"verbose"`
	SweepInterval time.Duration `yaml:"-"`
	SweepMaxAge   time.Duration `yaml:"-"`

	// Durations come in as Go duration strings ("1h", "30m").
	SweepIntervalRaw string `yaml:"sweep_interval"`
	SweepMaxAgeRaw   string `yaml:"sweep_max_age"`
}

// Default returns settings with every field at its default.
func Default() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills unset fields in place.
func (s *Settings) ApplyDefaults() {
	if s.Port <= 0 {
		s.Port = DefaultPort
	}
	if s.ScratchDir == "" {
		s.ScratchDir = DefaultScratchDir
	}
	if s.YTDLPPath == "" {
		s.YTDLPPath = DefaultYTDLPPath
	}
	if s.PublicDir == "" {
		s.PublicDir = DefaultPublicDir
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = DefaultSweepInterval
	}
	if s.SweepMaxAge <= 0 {
		s.SweepMaxAge = DefaultSweepMaxAge
	}
}

// Load reads settings from a YAML file and fills the gaps with defaults. A
// missing file is not an error; it simply yields the defaults.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				s.ApplyDefaults()
				return s, nil
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if s.SweepIntervalRaw != "" {
		d, err := time.ParseDuration(s.SweepIntervalRaw)
		if err != nil {
			return nil, fmt.Errorf("parse sweep_interval: %w", err)
		}
		s.SweepInterval = d
	}
	if s.SweepMaxAgeRaw != "" {
		d, err := time.ParseDuration(s.SweepMaxAgeRaw)
		if err != nil {
			return nil, fmt.Errorf("parse sweep_max_age: %w", err)
		}
		s.SweepMaxAge = d
	}
	s.ApplyDefaults()
	return s, nil
}

// Addr returns the listen address for the HTTP server.
func (s *Settings) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
