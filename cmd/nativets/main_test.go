package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nativets-lang/nativets/internal/cli"
)

const testdata = "../../internal/codegen/testdata"

func testConfig(t *testing.T) *cli.Config {
	t.Helper()
	cfg := cli.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.Jobs = 2
	return cfg
}

func quietLogger() *cli.Logger {
	log := cli.NewLogger(false, false)
	log.SetOutput(io.Discard)
	return log
}

func TestCompileAllWritesModules(t *testing.T) {
	cfg := testConfig(t)
	inputs := []string{
		filepath.Join(testdata, "scenario_a.yaml"),
		filepath.Join(testdata, "scenario_b.yaml"),
	}

	if err := compileAll(context.Background(), cfg, inputs, quietLogger()); err != nil {
		t.Fatalf("compileAll: %v", err)
	}

	for _, name := range []string{"scenario_a.ll", "scenario_b.ll"} {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if !strings.Contains(string(data), "define i32 @main()") {
			t.Errorf("%s has no entry function:\n%s", name, data)
		}
	}
}

func TestCompileAllSkipsFailedOutputs(t *testing.T) {
	cfg := testConfig(t)
	inputs := []string{
		filepath.Join(testdata, "failure.yaml"),
		filepath.Join(testdata, "scenario_a.yaml"),
	}

	err := compileAll(context.Background(), cfg, inputs, quietLogger())
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("compileAll error = %v, want one failure", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "failure.ll")); !os.IsNotExist(err) {
		t.Errorf("output written for a failed program")
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "scenario_a.ll")); err != nil {
		t.Errorf("scenario_a.ll missing: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := &cli.Config{OutputDir: "build"}
	tests := map[string]string{
		"app.yaml":         filepath.Join("build", "app.ll"),
		"dir/lib.json":     filepath.Join("build", "lib.ll"),
		"noext":            filepath.Join("build", "noext.ll"),
		"dir/v1.2.program": filepath.Join("build", "v1.2.ll"),
	}
	for in, want := range tests {
		if got := outputPath(cfg, in); got != want {
			t.Errorf("outputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
