package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-scheme/internal/interp/runtime"
)

// StackFrame renders one live continuation step — spec.md §7's "continuation-
// stack dump when the cause is not a user-error" is a sequence of these, one
// per (op, payload) still pending on the evaluator's stack E at the point an
// error unwound past it.
type StackFrame struct {
	Op      runtime.Op
	Payload any
}

// String renders one frame as "Op payload-summary".
func (sf StackFrame) String() string {
	return fmt.Sprintf("%s %s", sf.Op, describePayload(sf.Payload))
}

// describePayload summarizes a step's payload for the dump. Environments
// and values render through runtime.Stringify; expression-list payloads
// just report how many remain, since the dump is a debugging aid, not a
// full re-print of the program.
func describePayload(payload any) string {
	switch p := payload.(type) {
	case runtime.ThenBranches:
		if p.E3 != nil {
			return fmt.Sprintf("(%s %s)", runtime.Stringify(p.E2, true), runtime.Stringify(p.E3, true))
		}
		return fmt.Sprintf("(%s)", runtime.Stringify(p.E2, true))
	case []runtime.Value:
		return fmt.Sprintf("%d expr(s)", len(p))
	case runtime.Value:
		return runtime.Stringify(p, true)
	case *runtime.Env:
		return runtime.StringifyEnv(p)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", p)
	}
}

// StackTrace is a complete continuation-stack dump, newest (top of stack)
// first — the order the evaluator would resume work in.
type StackTrace []StackFrame

// String renders the whole dump, one frame per line, oldest-to-newest
// (bottom of stack to top), matching a conventional call-stack listing.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Depth returns the number of frames in the dump.
func (st StackTrace) Depth() int { return len(st) }

// NewStackTrace builds a StackTrace from a continuation's live frames (as
// returned by runtime.Continuation.Frames, top-first).
func NewStackTrace(frames []runtime.Frame) StackTrace {
	st := make(StackTrace, len(frames))
	for i, f := range frames {
		st[i] = StackFrame{Op: f.Op, Payload: f.Payload}
	}
	return st
}
