// Package builtins installs the intrinsic registry of spec.md §4.G into a
// fresh global environment: the primitive procedures every program can call
// without first defining them, plus the `apply` and `call/cc` symbols the
// evaluator recognises specially (spec.md §4.F/§9).
package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/go-scheme/internal/interp/runtime"
)

// Options configures the global environment's I/O surface. display and
// newline write to Stdout; read delegates to ReadExpr, which is supplied by
// the reader/REPL collaborator (§6) rather than by this package, since
// reading is explicitly out of the evaluator's scope (spec.md overview).
type Options struct {
	Stdout   io.Writer
	ReadExpr func() (runtime.Value, error)
}

// Option mutates Options, following the teacher's functional-options idiom.
type Option func(*Options)

// WithStdout redirects display/newline output.
func WithStdout(w io.Writer) Option {
	return func(o *Options) { o.Stdout = w }
}

// WithReader supplies the `read` intrinsic's expression source.
func WithReader(readExpr func() (runtime.Value, error)) Option {
	return func(o *Options) { o.ReadExpr = readExpr }
}

func defaultOptions() *Options {
	return &Options{
		Stdout: os.Stdout,
		ReadExpr: func() (runtime.Value, error) {
			return runtime.EOF, nil
		},
	}
}

// Global holds the live global environment. Env is the global frame marker;
// a top-level `define` inserts its binding right after that marker in place
// (runtime.DefineHere), so the `globals` intrinsic — which closes over this
// handle, not a snapshot — always reports the current set of bindings
// (spec.md §4.G).
type Global struct {
	Env *runtime.Env
}

// New builds a fresh global environment frame with every intrinsic of
// spec.md §4.G bound, plus `apply` and `call/cc` bound to their own literal
// symbols (recognised specially by the evaluator, never dispatched as
// Intrinsic values — spec.md §4.F/§9).
func New(opts ...Option) *Global {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	g := &Global{Env: runtime.NewGlobalFrame()}
	define := func(name string, arity int, fn func([]runtime.Value) (runtime.Value, error)) {
		sym := runtime.Intern(name)
		g.Env = runtime.DefineHere(g.Env, sym, &runtime.Intrinsic{Name: name, Arity: arity, Fn: fn})
	}

	define("car", 1, car)
	define("cdr", 1, cdr)
	define("cons", 2, cons)
	define("eq?", 2, eqP)
	define("eqv?", 2, eqvP)
	define("pair?", 1, predicate(runtime.IsPair))
	define("null?", 1, predicate(runtime.IsNil))
	define("not", 1, notP)
	define("symbol?", 1, predicate(isSymbol))
	define("eof-object?", 1, predicate(isEOF))
	define("list", -1, list)
	define("display", 1, display(o.Stdout))
	define("newline", 0, newline(o.Stdout))
	define("read", 0, read(o.ReadExpr))
	define("+", 2, arith(runtime.Add))
	define("-", 2, arith(runtime.Sub))
	define("*", 2, arith(runtime.Mul))
	define("<", 2, compare(func(c int) bool { return c < 0 }))
	define("=", 2, compare(func(c int) bool { return c == 0 }))
	define("number?", 1, predicate(runtime.IsNumber))
	define("error", 2, raiseError)
	define("globals", 0, globals(g))

	g.Env = runtime.DefineHere(g.Env, runtime.SymApply, runtime.SymApply)
	g.Env = runtime.DefineHere(g.Env, runtime.SymCallCC, runtime.SymCallCC)

	return g
}

func car(args []runtime.Value) (runtime.Value, error) {
	p, ok := args[0].(*runtime.Pair)
	if !ok {
		return nil, runtime.NewTypeMismatchError("pair", args[0])
	}
	return p.Car, nil
}

func cdr(args []runtime.Value) (runtime.Value, error) {
	p, ok := args[0].(*runtime.Pair)
	if !ok {
		return nil, runtime.NewTypeMismatchError("pair", args[0])
	}
	return p.Cdr, nil
}

func cons(args []runtime.Value) (runtime.Value, error) {
	return runtime.Cons(args[0], args[1]), nil
}

// eqV is the identity-equality test shared by eq? and eqv?'s fallback leg:
// every concrete Value shape is either a small comparable value or a
// pointer, so Go's == already implements pointer/value identity correctly.
func eqV(a, b runtime.Value) bool {
	return a == b
}

func eqP(args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue(eqV(args[0], args[1])), nil
}

func eqvP(args []runtime.Value) (runtime.Value, error) {
	a, b := args[0], args[1]
	if runtime.IsNumber(a) && runtime.IsNumber(b) {
		c, err := runtime.Compare(a, b)
		if err != nil {
			return runtime.False, nil
		}
		return runtime.BoolValue(c == 0), nil
	}
	return runtime.BoolValue(eqV(a, b)), nil
}

func predicate(test func(runtime.Value) bool) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue(test(args[0])), nil
	}
}

func notP(args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue(runtime.IsFalse(args[0])), nil
}

func isSymbol(v runtime.Value) bool {
	_, ok := v.(*runtime.Symbol)
	return ok
}

func isEOF(v runtime.Value) bool {
	return v == runtime.EOF
}

func list(args []runtime.Value) (runtime.Value, error) {
	return runtime.SliceToList(args), nil
}

func display(w io.Writer) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		fmt.Fprint(w, runtime.Stringify(args[0], false))
		return runtime.Void, nil
	}
}

func newline(w io.Writer) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		fmt.Fprintln(w)
		return runtime.Void, nil
	}
}

func read(readExpr func() (runtime.Value, error)) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		return readExpr()
	}
}

func arith(op func(a, b runtime.Value) (runtime.Value, error)) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		return op(args[0], args[1])
	}
}

func compare(test func(c int) bool) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		c, err := runtime.Compare(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue(test(c)), nil
	}
}

func raiseError(args []runtime.Value) (runtime.Value, error) {
	reason, arg := args[0], args[1]
	message := fmt.Sprintf("Error: %s: %s", runtime.Stringify(reason, false), runtime.Stringify(arg, true))
	return nil, runtime.NewUserError(reason, arg, message)
}

func globals(g *Global) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		syms := g.Env.Symbols()
		values := make([]runtime.Value, len(syms))
		for i, sym := range syms {
			values[i] = sym
		}
		return runtime.SliceToList(values), nil
	}
}
