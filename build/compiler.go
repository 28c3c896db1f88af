package build

import (
	"errors"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"wisp/generate"
	"wisp/logging"
	"wisp/sem"
	"wisp/syntax"
	"wisp/walk"
)

// positionedError is the shape shared by all compile errors that point at a
// range of source text (syntax errors and walk errors)
type positionedError interface {
	error
	MessageKind() int
	Position() *logging.TextPosition
}

// Compiler is the data structure responsible for maintaining all high-level
// state of one Wisp compilation: the source unit being built and where its
// output goes
type Compiler struct {
	// srcPath is the path to the source file being compiled
	srcPath string

	// outPath is the path the binary module is written to
	outPath string

	lctx *logging.LogContext
}

// NewCompiler creates a new compiler for a given source file and output path
func NewCompiler(srcPath, outPath string) *Compiler {
	return &Compiler{
		srcPath: srcPath,
		outPath: outPath,
		lctx:    &logging.LogContext{FilePath: srcPath},
	}
}

// Compile runs the full compilation algorithm on the source unit and writes
// the output file.  It handles all compilation errors appropriately and
// returns whether compilation succeeded.
func (c *Compiler) Compile() bool {
	f, err := os.Open(c.srcPath)
	if err != nil {
		logging.LogConfigError("File", "error opening source file: "+err.Error())
		return false
	}
	defer f.Close()

	out, err := c.compile(f)
	if err != nil {
		c.logError(err)
		return false
	}

	// byte-writing failures are transport errors, distinct from compile errors
	if err := ioutil.WriteFile(c.outPath, out, 0644); err != nil {
		logging.LogConfigError("Output", "error writing output file: "+err.Error())
		return false
	}

	return logging.ShouldProceed()
}

// compile runs the compilation pipeline on the given source text: scan and
// parse to an AST, walk the AST into a module, serialize the module.  A
// failure at any point aborts the pass; no partial output survives.
func (c *Compiler) compile(r io.Reader) ([]byte, error) {
	logging.BeginPhase("Parsing")
	parser := syntax.NewParser(syntax.NewScanner(r, c.lctx))
	astMod, err := parser.ParseModule()
	if err != nil {
		return nil, err
	}

	logging.EndPhase(true)
	logging.BeginPhase("Emitting")

	mod := sem.NewModule()
	if err := walk.NewWalker(mod).WalkModule(astMod); err != nil {
		return nil, err
	}

	logging.EndPhase(true)
	logging.BeginPhase("Generating")

	out, err := generate.NewGenerator(mod).Generate()
	if err != nil {
		return nil, err
	}

	logging.EndPhase(true)
	return out, nil
}

// logError displays a compilation error through the logging module
func (c *Compiler) logError(err error) {
	var perr positionedError
	if errors.As(err, &perr) {
		logging.LogCompileError(c.lctx, perr.Error(), perr.MessageKind(), perr.Position())
		return
	}

	logging.LogConfigError("Compile", err.Error())
}

// -----------------------------------------------------------------------------

// CompileSource compiles a source string directly to module bytes.  This is
// the library entry point (and the one the test suites drive); it does no
// logging and surfaces the first error encountered.
func CompileSource(source string) ([]byte, error) {
	c := &Compiler{lctx: &logging.LogContext{FilePath: "(source)"}}
	return c.compile(strings.NewReader(source))
}
