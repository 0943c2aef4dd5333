// Package scheme is the public embeddable API spec.md §6 names:
// "evaluate(expression, environment) -> value" plus an installed
// globalEnvironment, packaged as a small functional-options constructor in
// the idiom the teacher's pkg/dwscript test files imply (New(opts...),
// SetOutput) — its implementation was not retrieved, so the shape here is
// written fresh for this spec's surface (DESIGN.md).
package scheme

import (
	"io"
	"os"

	"github.com/cwbudde/go-scheme/internal/builtins"
	"github.com/cwbudde/go-scheme/internal/interp/evaluator"
	"github.com/cwbudde/go-scheme/internal/interp/runtime"
	"github.com/cwbudde/go-scheme/internal/lexer"
	"github.com/cwbudde/go-scheme/internal/loader"
	"github.com/cwbudde/go-scheme/internal/reader"
)

// Value is the evaluator's runtime value type, re-exported so embedders
// never need to import internal/interp/runtime directly.
type Value = runtime.Value

// Env is the evaluator's environment chain, re-exported for the same
// reason.
type Env = runtime.Env

type config struct {
	stdout io.Writer
	stdin  io.Reader
}

func defaultConfig() *config {
	return &config{stdout: os.Stdout, stdin: os.Stdin}
}

// Option configures a new Interpreter.
type Option func(*config)

// WithStdout redirects the `display`/`newline` intrinsics' output.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithStdin supplies the source the `read` intrinsic pulls expressions
// from. The entire stream is buffered eagerly at New time, since the
// evaluator's `read` port is a simple "give me the next expression"
// function, not an incremental stream reader (spec.md §6).
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// Interpreter bundles a global environment with the I/O ports its
// intrinsics are wired to, and tracks the current environment across
// successive Eval/EvalString/LoadFile calls so top-level `define`s persist.
type Interpreter struct {
	env *runtime.Env
}

// New builds an Interpreter with a fresh global environment seeded with
// every intrinsic of spec.md §4.G.
func New(opts ...Option) *Interpreter {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}

	data, _ := io.ReadAll(c.stdin)
	rdr := reader.New(lexer.New(string(data)))

	g := builtins.New(
		builtins.WithStdout(c.stdout),
		builtins.WithReader(rdr.ReadExpr),
	)
	return &Interpreter{env: g.Env}
}

// GlobalEnv returns the interpreter's current environment — spec.md §6's
// "installed globalEnvironment", kept live across calls (a prior Eval's
// top-level `define` is visible to the next).
func (i *Interpreter) GlobalEnv() *runtime.Env { return i.env }

// Eval evaluates exp in the interpreter's current environment, per spec.md
// §6's "evaluate(expression, environment) -> value" — and updates the
// interpreter's stored environment so a subsequent call sees any top-level
// `define` or `set!` this one performed.
func (i *Interpreter) Eval(exp runtime.Value) (runtime.Value, error) {
	result, env, err := evaluator.Evaluate(exp, i.env)
	if err != nil {
		return nil, err
	}
	i.env = env
	return result, nil
}

// EvalString reads and evaluates every top-level form in source in
// sequence, returning the last form's value (SPEC_FULL.md's
// multi-expression load semantics).
func (i *Interpreter) EvalString(source string) (runtime.Value, error) {
	env, result, err := loader.Load(source, i.env)
	i.env = env
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LoadFile loads and evaluates every top-level form in the file at path,
// in sequence — the "load and evaluate file F" collaborator interface
// spec.md §6 names.
func (i *Interpreter) LoadFile(path string) (runtime.Value, error) {
	env, result, err := loader.LoadFile(path, i.env)
	i.env = env
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReadString parses the first top-level expression out of source, without
// evaluating it — exposed for embedders that want to separate parsing from
// evaluation (e.g. to pretty-print or analyze an expression tree first).
func ReadString(source string) (runtime.Value, error) {
	return reader.New(lexer.New(source)).ReadExpr()
}

// Stringify renders a value to text exactly as `display` (quoted=false) or
// the default write mode (quoted=true) would (spec.md §4.H).
func Stringify(v runtime.Value, quoted bool) string {
	return runtime.Stringify(v, quoted)
}
