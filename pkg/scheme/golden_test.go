package scheme_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-scheme/pkg/scheme"
)

// TestGoldenScenarios snapshots the six worked examples spec.md §8 walks
// through end to end, grounded on the teacher's internal/interp fixture
// tests' use of github.com/gkampitakis/go-snaps for output snapshotting.
func TestGoldenScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"addition", "(+ 5 6)"},
		{"dotted-cons", "(cons 'a (cons 'b 'c))"},
		{"list", "(list 1 2 3)"},
		{"factorial", `
			(define fact (lambda (n) (if (= n 0) 1 (* n (fact (- n 1))))))
			(fact 10)
		`},
		{"call-cc-escape", `
			(+ 1 (call/cc (lambda (k) (+ 2 (k 10)))))
		`},
		{"apply-spread", `(apply + (cons 3 (cons 4 '())))`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			interp := scheme.New()
			result, err := interp.EvalString(c.source)
			if err != nil {
				t.Fatalf("EvalString(%q): %v", c.source, err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_result", c.name), scheme.Stringify(result, true))
		})
	}
}
