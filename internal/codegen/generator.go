// Package codegen lowers a checked declaration tree to an LLVM IR module.
//
// A Generator owns one module. Top-level statements are appended to the entry
// function in source order; functions, methods and class layouts are emitted
// lazily, the first time an expression refers to them, and are de-duplicated
// by their mangled names. The generator is single-threaded: one Generator per
// module, driven from one goroutine.
package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/checked"
	"github.com/nativets-lang/nativets/internal/env"
	"github.com/nativets-lang/nativets/internal/errors"
	"github.com/nativets-lang/nativets/internal/layout"
	ts "github.com/nativets-lang/nativets/internal/types"
)

// DefaultEntryName is the name of the generated entry function.
const DefaultEntryName = "main"

// Logger receives diagnostics that do not abort generation.
type Logger interface {
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

// Options configures a Generator.
type Options struct {
	// EntryName names the entry function; DefaultEntryName when empty.
	EntryName      string
	SourceFilename string
	TargetTriple   string
	// DataLayout is the module data layout string. Allocation sizes follow
	// the pointer width and double alignment of TargetTriple.
	DataLayout string
	Logger     Logger
}

// frame is the function currently being emitted.
type frame struct {
	fn   *ir.Func
	this value.Value
	ctor bool
}

// Generator lowers checked source files into one IR module.
type Generator struct {
	checker ts.Checker
	log     Logger
	layout  *layout.DataLayout
	env     *env.Environment

	module *ir.Module
	main   *ir.Func

	// typeDefs and funcs are keyed by mangled name.
	typeDefs   map[string]*types.StructType
	funcs      map[string]*ir.Func
	stringType *types.StructType
	strings    map[string]*ir.Global
	locals     map[*ir.Func]map[string]int
	named      map[ir.Instruction]bool

	cur   *ir.Block
	frame *frame

	finished bool

	// err is a configuration error reported by Generate and Finish.
	err error
}

// New returns a generator with an empty module whose entry function has a
// single empty block.
func New(checker ts.Checker, opts Options) *Generator {
	if opts.EntryName == "" {
		opts.EntryName = DefaultEntryName
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	m := ir.NewModule()
	m.SourceFilename = opts.SourceFilename
	m.TargetTriple = opts.TargetTriple
	m.DataLayout = opts.DataLayout

	dl, err := layout.ForTriple(opts.TargetTriple)
	if err != nil {
		dl = layout.NewDataLayout()
		err = errors.InvalidConfig("target_triple", err.Error())
	}

	g := &Generator{
		checker:  checker,
		log:      opts.Logger,
		layout:   dl,
		err:      err,
		env:      env.New(),
		module:   m,
		typeDefs: make(map[string]*types.StructType),
		funcs:    make(map[string]*ir.Func),
		strings:  make(map[string]*ir.Global),
		locals:   make(map[*ir.Func]map[string]int),
		named:    make(map[ir.Instruction]bool),
	}

	g.main = m.NewFunc(opts.EntryName, types.I32)
	g.cur = g.main.NewBlock("entry")
	g.frame = &frame{fn: g.main}
	return g
}

// Module returns the module under construction.
func (g *Generator) Module() *ir.Module { return g.module }

// Environment returns the symbol environment of the generator.
func (g *Generator) Environment() *env.Environment { return g.env }

// Generate lowers the statements of one source file into the module.
// Files must be generated in dependency order, declarations files first.
func (g *Generator) Generate(file *ast.SourceFile) error {
	if g.err != nil {
		return g.err
	}
	if g.finished {
		return errors.Internal("module %s is already finished", g.module.SourceFilename)
	}
	g.log.Debug("generating %s (%d statements)", file.Name, len(file.Statements))

	return g.lowerStatements(file.Statements, g.env.Global())
}

// Finish terminates the entry function with "ret i32 0" and verifies the
// module. A module that fails verification is never returned.
func (g *Generator) Finish() (*ir.Module, error) {
	if g.err != nil {
		return nil, g.err
	}
	if !g.finished {
		last := g.main.Blocks[len(g.main.Blocks)-1]
		if last.Term == nil {
			last.NewRet(constant.NewInt(types.I32, 0))
		}
		g.finished = true
	}

	if err := verifyModule(g.module); err != nil {
		return nil, err
	}
	return g.module, nil
}

// Compile lowers every file of a checked program into a new module.
func Compile(prog *checked.Program, opts Options) (*ir.Module, error) {
	if opts.SourceFilename == "" {
		opts.SourceFilename = prog.Name
	}
	g := New(prog, opts)
	for _, file := range prog.Files {
		if err := g.Generate(file); err != nil {
			return nil, err
		}
	}
	return g.Finish()
}
