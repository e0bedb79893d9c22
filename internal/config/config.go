package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	diag "corvid/internal/errors"
	"corvid/internal/semantic"
)

// FileName is the configuration file looked up from the working directory
// upwards.
const FileName = "corvid.toml"

// Duration is a time.Duration written as a Go duration string. An empty
// string means zero.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	if d.Duration == 0 {
		return []byte{}, nil
	}
	return []byte(d.Duration.String()), nil
}

type Config struct {
	Jobs             int         `toml:"jobs"`
	MaxDiagnostics   int         `toml:"max_diagnostics"`
	UnitTimeout      Duration    `toml:"unit_timeout"`
	ReportFuture     bool        `toml:"report_future"`
	UnusedParameters bool        `toml:"unused_parameters"`
	Promote          []diag.Kind `toml:"promote"`
	Disable          []diag.Kind `toml:"disable"`
	Extensions       []string    `toml:"extensions"`
	CacheDir         string      `toml:"cache_dir"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

func Default() Config {
	return Config{
		ReportFuture:     true,
		UnusedParameters: true,
		Extensions:       []string{".php"},
	}
}

// Load reads a configuration file over the defaults. Keys missing from the
// file keep their default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	if cfg.CacheDir != "" && !filepath.IsAbs(cfg.CacheDir) {
		cfg.CacheDir = filepath.Join(filepath.Dir(path), cfg.CacheDir)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("max_diagnostics must not be negative, got %d", c.MaxDiagnostics)
	}
	if c.UnitTimeout.Duration < 0 {
		return fmt.Errorf("unit_timeout must not be negative, got %s", c.UnitTimeout)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// Find looks for FileName in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover loads the nearest configuration file, or the defaults when
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Options maps the file settings onto the pipeline options
func (c Config) Options() semantic.Options {
	return semantic.Options{
		Jobs:             c.Jobs,
		MaxDiagnostics:   c.MaxDiagnostics,
		UnitTimeout:      c.UnitTimeout.Duration,
		ReportFuture:     c.ReportFuture,
		UnusedParameters: c.UnusedParameters,
		Promote:          slices.Clone(c.Promote),
		Disable:          slices.Clone(c.Disable),
	}
}

// Matches reports whether a file has one of the configured extensions.
// Comparison is case-insensitive.
func (c Config) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}
