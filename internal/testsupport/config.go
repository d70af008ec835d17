package testsupport

import (
	"path/filepath"
	"testing"

	"amendo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Polling runs without delay so watchers finish immediately.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Amendo.BaseURL = "http://127.0.0.1:0"
	cfgVal.Amendo.APIKey = "test-key"
	cfgVal.Amendo.UserAgent = "amendo-test"
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DownloadDir = filepath.Join(base, "results")
	cfgVal.Polling.IntervalSeconds = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithServer points the config at a (usually fake) workflow server.
func WithServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Amendo.BaseURL = baseURL
	}
}

// WithPolling overrides the overview polling cadence.
func WithPolling(intervalSeconds, attempts int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Polling.IntervalSeconds = intervalSeconds
		b.cfg.Polling.Attempts = attempts
	}
}

// WithAssemblyLine sets the fallback assembly line.
func WithAssemblyLine(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Amendo.AssemblyLine = name
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
