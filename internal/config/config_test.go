package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":8080")
	}

	if cfg.Server.MaxTextBytes != 1<<20 {
		t.Errorf("Server.MaxTextBytes = %d; want %d", cfg.Server.MaxTextBytes, 1<<20)
	}

	if cfg.Server.Workers != 2 {
		t.Errorf("Server.Workers = %d; want 2", cfg.Server.Workers)
	}

	if cfg.Server.RequestTimeout != 60 {
		t.Errorf("Server.RequestTimeout = %d; want 60", cfg.Server.RequestTimeout)
	}

	if cfg.Server.ShutdownTimeout != 30 {
		t.Errorf("Server.ShutdownTimeout = %d; want 30", cfg.Server.ShutdownTimeout)
	}

	if cfg.Live.CaseDebounce() != 150*time.Millisecond {
		t.Errorf("Live.CaseDebounce() = %v; want 150ms", cfg.Live.CaseDebounce())
	}

	if cfg.Live.TrimDebounce() != 250*time.Millisecond {
		t.Errorf("Live.TrimDebounce() = %v; want 250ms", cfg.Live.TrimDebounce())
	}

	if cfg.Assist.Model != "gemini-2.0-flash" {
		t.Errorf("Assist.Model = %q; want %q", cfg.Assist.Model, "gemini-2.0-flash")
	}

	if cfg.Assist.Temperature != 0.7 {
		t.Errorf("Assist.Temperature = %v; want 0.7", cfg.Assist.Temperature)
	}

	if cfg.Assist.MaxImageBytes != 4<<20 {
		t.Errorf("Assist.MaxImageBytes = %d; want %d", cfg.Assist.MaxImageBytes, 4<<20)
	}

	if cfg.Assist.APIKey != "" {
		t.Error("Assist.APIKey must not have a default")
	}
}

func TestRegisterFlags(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	// Spot-check a few flags are registered with correct defaults.
	checks := []struct {
		flag string
		want string
	}{
		{"log-level", "info"},
		{"server-listen-addr", ":8080"},
		{"workers", "2"},
		{"live-case-debounce-ms", "150"},
		{"live-trim-debounce-ms", "250"},
		{"assist-model", "gemini-2.0-flash"},
	}

	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}

		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}

	for name := range flagKeys {
		if fs.Lookup(name) == nil {
			t.Errorf("flagKeys entry %q has no registered flag", name)
		}
	}
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TOOLHUB_ASSIST_API_KEY", "")

	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	cfg, err := Load(LoadOptions{
		Cmd:      binder,
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg != defaults {
		t.Errorf("Load() = %+v; want defaults %+v", cfg, defaults)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	err := fs.Parse([]string{
		"--workers=8",
		"--log-level=debug",
		"--live-case-debounce-ms=50",
		"--assist-model=gemini-2.5-flash",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:      &fakeBinder{fs: fs},
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d; want 8", cfg.Server.Workers)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "debug")
	}

	if cfg.Live.CaseDebounceMS != 50 {
		t.Errorf("Live.CaseDebounceMS = %d; want 50", cfg.Live.CaseDebounceMS)
	}

	if cfg.Assist.Model != "gemini-2.5-flash" {
		t.Errorf("Assist.Model = %q; want %q", cfg.Assist.Model, "gemini-2.5-flash")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TOOLHUB_LOG_LEVEL", "warn")
	t.Setenv("TOOLHUB_SERVER_LISTEN_ADDR", ":9999")
	t.Setenv("TOOLHUB_LIVE_TRIM_DEBOUNCE_MS", "400")

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "warn")
	}

	if cfg.Server.ListenAddr != ":9999" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":9999")
	}

	if cfg.Live.TrimDebounceMS != 400 {
		t.Errorf("Live.TrimDebounceMS = %d; want 400", cfg.Live.TrimDebounceMS)
	}
}

func TestLoad_GeminiAPIKeyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-gemini-env")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Assist.APIKey != "from-gemini-env" {
		t.Errorf("Assist.APIKey = %q; want %q", cfg.Assist.APIKey, "from-gemini-env")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "toolhub.yaml")

	content := `
log_level: error
server:
  workers: 16
  listen_addr: ":7777"
assist:
  requests_per_minute: 3
`

	err := os.WriteFile(cfgFile, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(LoadOptions{
		ConfigFile: cfgFile,
		Defaults:   DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "error")
	}

	if cfg.Server.Workers != 16 {
		t.Errorf("Server.Workers = %d; want 16", cfg.Server.Workers)
	}

	if cfg.Server.ListenAddr != ":7777" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":7777")
	}

	if cfg.Assist.RequestsPerMinute != 3 {
		t.Errorf("Assist.RequestsPerMinute = %d; want 3", cfg.Assist.RequestsPerMinute)
	}

	if cfg.Live.CaseDebounceMS != 150 {
		t.Errorf("Live.CaseDebounceMS = %d; want default 150", cfg.Live.CaseDebounceMS)
	}
}

func TestLoad_TOMLConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "toolhub.toml")

	err := os.WriteFile(cfgFile, []byte("[live]\ncase_debounce_ms = 75\n"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: cfgFile, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Live.CaseDebounceMS != 75 {
		t.Errorf("Live.CaseDebounceMS = %d; want 75", cfg.Live.CaseDebounceMS)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bad.yaml")
	// Write invalid YAML
	err := os.WriteFile(cfgFile, []byte(":\t:bad yaml:::"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = Load(LoadOptions{
		ConfigFile: cfgFile,
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for invalid config file")
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: "/nonexistent/path/toolhub.yaml",
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for missing explicit config file")
	}
}

func TestLoad_PartialFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")

	if err := fs.Parse([]string{"--log-level=error"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: &fakeBinder{fs: fs}, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "error")
	}

	if cfg.Server.Workers != 2 {
		t.Errorf("Server.Workers = %d; want default 2", cfg.Server.Workers)
	}
}
