package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nativets-lang/nativets/internal/errors"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false, false)
	logger.SetOutput(&buf)
	logger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.Info("hidden %d", 1)
	logger.Debug("hidden %d", 2)
	logger.Warn("unsupported statement %s", "if")
	logger.Error("boom")

	want := "[WARN] 03:04:05: unsupported statement if\n[ERROR] 03:04:05: boom\n"
	if buf.String() != want {
		t.Fatalf("log output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	logger.Verbose = true
	logger.DebugMode = true
	logger.Info("a")
	logger.Debug("b")
	if !strings.Contains(buf.String(), "[INFO]") || !strings.Contains(buf.String(), "[DEBUG]") {
		t.Errorf("verbose/debug output missing: %q", buf.String())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		check   func(*testing.T, *Config)
		wantErr error
	}{
		{
			name:    "yaml",
			content: "verbose: true\nllvm_version: 12.0.1\njobs: 4\ntarget_triple: x86_64-pc-linux-gnu\n",
			check: func(t *testing.T, c *Config) {
				if !c.Verbose || c.Jobs != 4 || c.LLVMVersion != "12.0.1" || c.TargetTriple != "x86_64-pc-linux-gnu" {
					t.Errorf("unexpected config %+v", c)
				}
				if c.EntryName != "main" {
					t.Errorf("default entry name lost: %q", c.EntryName)
				}
			},
		},
		{
			name:    "json",
			content: `{"debug": true, "output_dir": "build"}`,
			check: func(t *testing.T, c *Config) {
				if !c.Debug || c.OutputDir != "build" {
					t.Errorf("unexpected config %+v", c)
				}
			},
		},
		{
			name:    "bad_version",
			content: "llvm_version: fourteen\n",
			wantErr: errors.ErrInvalidConfig,
		},
		{
			name:    "unknown_architecture",
			content: "target_triple: avr-atmel-none\n",
			wantErr: errors.ErrInvalidConfig,
		},
		{
			name:    "negative_jobs",
			content: "jobs: -1\n",
			wantErr: errors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadConfig(path)
			if tt.wantErr != nil {
				if !stderrors.Is(err, tt.wantErr) {
					t.Fatalf("LoadConfig error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.EntryName != "main" || cfg.OutputDir != "." {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nativets.yaml")
	cfg := DefaultConfig()
	cfg.Jobs = 2

	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, saved %+v", loaded, cfg)
	}
}

func TestPrintCommandUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintCommandUsage(&buf, CommandInfo{
		Name:        "nativets",
		Usage:       "nativets [options] file.yaml...",
		Description: "lower checked programs to LLVM IR",
		Flags:       []FlagInfo{{Name: "o", Usage: "output directory", Default: "."}},
		Examples:    []string{"nativets -o build main.yaml"},
	})
	for _, want := range []string{"USAGE:", "-o", "Default: .", "EXAMPLES:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q:\n%s", want, buf.String())
		}
	}

	if err := ValidateArgs(nil, 1, "nativets file"); err == nil {
		t.Errorf("ValidateArgs accepted too few arguments")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "nativets", true)
	if !strings.Contains(buf.String(), `"version": "`+Version+`"`) {
		t.Errorf("JSON version output unexpected: %s", buf.String())
	}
}
