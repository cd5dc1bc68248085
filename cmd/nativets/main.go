// Command nativets compiles checked programs to LLVM IR.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nativets-lang/nativets/internal/checked"
	"github.com/nativets-lang/nativets/internal/cli"
	"github.com/nativets-lang/nativets/internal/codegen"
	"github.com/nativets-lang/nativets/internal/errors"
	"github.com/nativets-lang/nativets/internal/watch"
)

var command = cli.CommandInfo{
	Name:        "nativets",
	Usage:       "nativets [OPTIONS] <program.yaml>...",
	Description: "compile checked TypeScript programs to LLVM IR",
	Examples: []string{
		"nativets -o build hello.yaml",
		"nativets -config nativets.yaml -watch app.yaml lib.yaml",
	},
	Flags: []cli.FlagInfo{
		{Name: "config", Usage: "configuration file (YAML or JSON)"},
		{Name: "o", Usage: "output directory for .ll files", Default: "."},
		{Name: "target", Usage: "target triple recorded in each module"},
		{Name: "llvm-version", Usage: "LLVM release the IR is meant for", Default: "14.0.0"},
		{Name: "entry", Usage: "name of the entry function", Default: codegen.DefaultEntryName},
		{Name: "j", Usage: "number of programs compiled concurrently (0 = all CPUs)", Default: "0"},
		{Name: "watch", Usage: "recompile inputs when they change"},
		{Name: "v", Usage: "verbose output"},
		{Name: "debug", Usage: "debug output, including full error reports"},
		{Name: "version", Usage: "show version information"},
		{Name: "json", Usage: "print version information as JSON"},
	},
}

func main() {
	var (
		configPath  = flag.String("config", "", "configuration file")
		outDir      = flag.String("o", "", "output directory")
		target      = flag.String("target", "", "target triple")
		llvmVersion = flag.String("llvm-version", "", "LLVM version")
		entry       = flag.String("entry", "", "entry function name")
		jobs        = flag.Int("j", 0, "concurrent compilations")
		watchMode   = flag.Bool("watch", false, "watch inputs")
		verbose     = flag.Bool("v", false, "verbose output")
		debugMode   = flag.Bool("debug", false, "debug output")
		showVersion = flag.Bool("version", false, "show version")
		jsonVersion = flag.Bool("json", false, "print version as JSON")
	)
	flag.Usage = func() { cli.PrintCommandUsage(os.Stderr, command) }
	flag.Parse()

	if *showVersion {
		cli.PrintVersion(os.Stdout, command.Name, *jsonVersion)
		return
	}
	if err := cli.ValidateArgs(flag.Args(), 1, command.Usage); err != nil {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.OutputDir = *outDir
		case "target":
			cfg.TargetTriple = *target
		case "llvm-version":
			cfg.LLVMVersion = *llvmVersion
		case "entry":
			cfg.EntryName = *entry
		case "j":
			cfg.Jobs = *jobs
		case "v":
			cfg.Verbose = *verbose
		case "debug":
			cfg.Debug = *debugMode
		}
	})
	if err := cfg.Validate(); err != nil {
		cli.ExitWithError("%v", err)
	}
	if cfg.LLVMVersion != "" {
		if err := codegen.CheckTarget(cfg.LLVMVersion); err != nil {
			cli.ExitWithError("%v", err)
		}
	}

	log := cli.NewLogger(cfg.Verbose, cfg.Debug)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs := flag.Args()
	failed := compileAll(ctx, cfg, inputs, log) != nil

	if *watchMode {
		if err := watchInputs(ctx, cfg, inputs, log); err != nil {
			cli.ExitWithError("watch: %v", err)
		}
		return
	}
	if failed {
		os.Exit(1)
	}
}

// compileAll compiles every input, up to cfg.Jobs at a time. A failing
// input does not stop the others.
func compileAll(ctx context.Context, cfg *cli.Config, inputs []string, log *cli.Logger) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("failed to create output directory: %v", err)
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	limit := cfg.Jobs
	if limit == 0 {
		limit = runtime.NumCPU()
	}
	g.SetLimit(limit)

	var failed atomic.Int32
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := compileFile(cfg, in, log)
			if err != nil {
				failed.Add(1)
				reportError(log, cfg, in, err)
				fmt.Printf("[FAIL] %s\n", in)
				return nil
			}
			fmt.Printf("[OK] %s -> %s\n", in, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d program(s) failed", n, len(inputs))
	}
	return nil
}

// compileFile compiles one checked program and writes its module next to
// the other outputs. Nothing is written when compilation fails.
func compileFile(cfg *cli.Config, path string, log *cli.Logger) (string, error) {
	prog, err := checked.Load(path)
	if err != nil {
		return "", err
	}

	m, err := codegen.Compile(prog, codegen.Options{
		EntryName:      cfg.EntryName,
		SourceFilename: filepath.Base(path),
		TargetTriple:   cfg.TargetTriple,
		DataLayout:     cfg.DataLayout,
		Logger:         log,
	})
	if err != nil {
		return "", err
	}

	out := outputPath(cfg, path)
	if err := os.WriteFile(out, []byte(m.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}

func outputPath(cfg *cli.Config, input string) string {
	base := filepath.Base(input)
	return filepath.Join(cfg.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+".ll")
}

func reportError(log *cli.Logger, cfg *cli.Config, path string, err error) {
	if ce, ok := errors.As(err); ok && cfg.Debug {
		log.Error("%s: %s", path, ce.Report())
		return
	}
	log.Error("%s: %v", path, err)
}

func watchInputs(ctx context.Context, cfg *cli.Config, inputs []string, log *cli.Logger) error {
	w, err := watch.New(watch.DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, in := range inputs {
		if err := w.Add(in); err != nil {
			return err
		}
	}
	log.Info("watching %d program(s)", len(inputs))

	return w.Run(ctx, func(paths []string) {
		log.Info("change detected in %s", strings.Join(paths, ", "))
		if err := compileAll(ctx, cfg, paths, log); err == nil {
			log.Info("rebuilt %d program(s)", len(paths))
		}
	})
}
