// Package repl implements spec.md §6's interactive loop, grounded on the
// bufio.Scanner read-loop idiom of sentra-language-sentra's
// internal/repl/repl.go and kanso-lang-kanso's repl/repl.go (prompt,
// scan a line, evaluate) — extended for this spec's two-prompt,
// paren-balance continuation behavior and its EOF/error rules.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	schemeerrors "github.com/cwbudde/go-scheme/internal/errors"
	"github.com/cwbudde/go-scheme/internal/interp/evaluator"
	"github.com/cwbudde/go-scheme/internal/interp/runtime"
	"github.com/cwbudde/go-scheme/internal/lexer"
	"github.com/cwbudde/go-scheme/internal/reader"
)

// Primary and continuation prompts, exactly as spec.md §6 names them.
const (
	PrimaryPrompt      = "> "
	ContinuationPrompt = "| "
)

// ErrorReporter renders an uncaught evaluation or parse error. The CLI
// supplies a version that colors the message; tests can supply a plain one.
// The loop evaluates without tracing and passes only the error, so no
// continuation-stack dump of the failing form reaches the reporter.
type ErrorReporter func(err error)

// Loop runs spec.md §6's interactive loop over in/out until EOF: primary
// prompt "> ", continuation prompt "| " while the typed text has unbalanced
// parentheses, printing the stringified result of any non-VOID top-level
// evaluation. EOF on stdin prints "Goodbye" and returns. It returns the
// environment as it stood when the loop ended, so a caller that pre-loaded
// a file can report the final bindings.
func Loop(in io.Reader, out io.Writer, env *runtime.Env, reportError ErrorReporter) *runtime.Env {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		fmt.Fprint(out, PrimaryPrompt)
		var text strings.Builder
		if !scanner.Scan() {
			fmt.Fprintln(out, "Goodbye")
			return env
		}
		text.WriteString(scanner.Text())

		for !balanced(text.String()) {
			fmt.Fprint(out, ContinuationPrompt)
			if !scanner.Scan() {
				fmt.Fprintln(out, "Goodbye")
				return env
			}
			text.WriteByte('\n')
			text.WriteString(scanner.Text())
		}

		if strings.TrimSpace(text.String()) == "" {
			continue
		}

		env = evalForms(text.String(), out, env, reportError)
	}
}

// evalForms reads and evaluates every top-level form typed on one logical
// line (a line may itself hold several forms), printing each non-VOID
// result. It stops at the first error, reports it, and keeps the
// environment as it stood before the failing form.
func evalForms(text string, out io.Writer, env *runtime.Env, reportError ErrorReporter) *runtime.Env {
	r := reader.New(lexer.New(text))
	for {
		exp, err := r.ReadExpr()
		if err != nil {
			if pe, ok := err.(*reader.ParseError); ok {
				err = schemeerrors.NewSourceError(pe.Pos, pe.Message, text, "<stdin>")
			}
			reportError(err)
			return env
		}
		if exp == runtime.EOF {
			return env
		}

		result, newEnv, err := evaluator.Evaluate(exp, env)
		if err != nil {
			reportError(err)
			return env
		}
		env = newEnv
		if result != runtime.Void {
			fmt.Fprintln(out, runtime.Stringify(result, true))
		}
	}
}

// balanced reports whether text has no unmatched opening parenthesis
// outside a string literal, mirroring internal/lexer's string-toggle rule
// (no escape processing, spec.md §9's Open Question). It is the signal
// spec.md §6 uses to decide whether to show the continuation prompt; a
// stray unmatched ")" is left for the reader to report as a parse error.
func balanced(text string) bool {
	depth := 0
	inString := false
	for _, ch := range text {
		switch {
		case ch == '"':
			inString = !inString
		case inString:
			continue
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		}
	}
	return depth <= 0
}
