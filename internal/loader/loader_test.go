package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/go-scheme/internal/builtins"
	"github.com/cwbudde/go-scheme/internal/interp/runtime"
)

func TestLoadEvaluatesEveryTopLevelForm(t *testing.T) {
	g := builtins.New()
	source := `
(define fact (lambda (n) (if (= n 0) 1 (* n (fact (- n 1))))))
(fact 10)
`
	_, v, err := Load(source, g.Env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if runtime.Stringify(v, true) != "3628800" {
		t.Errorf("got %s", runtime.Stringify(v, true))
	}
}

func TestLoadThreadsEnvironmentBetweenForms(t *testing.T) {
	g := builtins.New()
	env, _, err := Load("(define x 1)", g.Env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, v, err := Load("(set! x (+ x 41)) x", env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if runtime.Stringify(v, true) != "42" {
		t.Errorf("got %s", runtime.Stringify(v, true))
	}
}

func TestLoadStopsAtFirstError(t *testing.T) {
	g := builtins.New()
	_, _, err := Load("(display 1) (car 5) (display 2)", g.Env)
	if !runtime.IsTypeMismatchError(err) {
		t.Fatalf("expected type-mismatch error, got %v", err)
	}
}

func TestLoadFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.scm")
	if err := os.WriteFile(path, []byte("(+ 5 6)"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	g := builtins.New()
	_, v, err := LoadFile(path, g.Env)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if runtime.Stringify(v, true) != "11" {
		t.Errorf("got %s", runtime.Stringify(v, true))
	}
}

func TestLoadFileMissingReturnsError(t *testing.T) {
	g := builtins.New()
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.scm"), g.Env)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
