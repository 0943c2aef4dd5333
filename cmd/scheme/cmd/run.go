package cmd

import (
	"os"

	"github.com/cwbudde/go-scheme/internal/builtins"
	schemeerrors "github.com/cwbudde/go-scheme/internal/errors"
	"github.com/cwbudde/go-scheme/internal/interp/evaluator"
	"github.com/cwbudde/go-scheme/internal/interp/runtime"
	"github.com/cwbudde/go-scheme/internal/lexer"
	"github.com/cwbudde/go-scheme/internal/reader"
)

// lastTrace holds the continuation as it stood at the end of the most
// recent loadTraced call, so reportError can render --trace's
// continuation-stack dump after the fact without threading it through
// every call site.
var lastTrace *runtime.Continuation

// newGlobal builds a fresh global environment wired to this process's
// stdout. Its `read` intrinsic always yields EOF; it does not read stdin.
func newGlobal() *builtins.Global {
	return builtins.New(
		builtins.WithStdout(os.Stdout),
		builtins.WithReader(func() (runtime.Value, error) {
			return runtime.EOF, nil
		}),
	)
}

// loadTraced reads and evaluates every top-level form in the file at path
// in sequence, exactly as internal/loader.Load does, except it always
// evaluates through evaluator.EvaluateTraced and records the resulting
// continuation in lastTrace — the peak depth it reached, and, on error,
// the frames still pending when the trampoline stopped (spec.md §7,
// SPEC_FULL.md's --trace diagnostic).
func loadTraced(path string, env *runtime.Env) (*runtime.Env, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return env, err
	}

	source := string(content)
	r := reader.New(lexer.New(source))
	for {
		exp, err := r.ReadExpr()
		if err != nil {
			if pe, ok := err.(*reader.ParseError); ok {
				err = schemeerrors.NewSourceError(pe.Pos, pe.Message, source, path)
			}
			return env, err
		}
		if exp == runtime.EOF {
			return env, nil
		}

		var k *runtime.Continuation
		var evalErr error
		_, env, k, evalErr = evaluator.EvaluateTraced(exp, env)
		lastTrace = k
		if evalErr != nil {
			return env, evalErr
		}
	}
}
