package repl

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-scheme/internal/builtins"
	"github.com/stretchr/testify/assert"
)

func TestLoopEchoesResultsAndGoodbye(t *testing.T) {
	g := builtins.New()
	in := strings.NewReader("(+ 5 6)\n(list 1 2 3)\n")
	var out strings.Builder

	Loop(in, &out, g.Env, func(err error) { t.Fatalf("unexpected error: %v", err) })

	got := out.String()
	assert.Contains(t, got, PrimaryPrompt)
	assert.Contains(t, got, "11\n")
	assert.Contains(t, got, "(1 2 3)\n")
	assert.Contains(t, got, "Goodbye")
}

func TestLoopShowsContinuationPromptForUnbalancedInput(t *testing.T) {
	g := builtins.New()
	in := strings.NewReader("(+ 1\n   2)\n")
	var out strings.Builder

	Loop(in, &out, g.Env, func(err error) { t.Fatalf("unexpected error: %v", err) })

	assert.Contains(t, out.String(), ContinuationPrompt)
	assert.Contains(t, out.String(), "3\n")
}

func TestLoopReportsErrorsAndContinues(t *testing.T) {
	g := builtins.New()
	in := strings.NewReader("(car 5)\n(+ 1 2)\n")
	var out strings.Builder
	var reported []string

	Loop(in, &out, g.Env, func(err error) { reported = append(reported, err.Error()) })

	assert.Len(t, reported, 1)
	assert.Contains(t, out.String(), "3\n")
}

func TestLoopThreadsDefinesAcrossLines(t *testing.T) {
	g := builtins.New()
	in := strings.NewReader("(define x 10)\n(* x x)\n")
	var out strings.Builder

	Loop(in, &out, g.Env, func(err error) { t.Fatalf("unexpected error: %v", err) })

	assert.Contains(t, out.String(), "100\n")
}

func TestBalancedTracksStringsAndParens(t *testing.T) {
	assert.True(t, balanced("(+ 1 2)"))
	assert.False(t, balanced("(+ 1 (* 2 3)"))
	assert.True(t, balanced(`(display "(")`))
}
