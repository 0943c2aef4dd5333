package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-scheme/internal/interp/runtime"
)

func TestStackFrameString(t *testing.T) {
	frame := StackFrame{Op: runtime.OpDefine, Payload: runtime.Intern("x")}
	got := frame.String()
	if !strings.HasPrefix(got, "Define ") || !strings.Contains(got, "x") {
		t.Errorf("expected a Define frame mentioning x, got %q", got)
	}
}

func TestStackFrameStringPayloadKinds(t *testing.T) {
	cases := []struct {
		name string
		op   runtime.Op
		pay  any
		want string
	}{
		{"begin", runtime.OpBegin, []runtime.Value{runtime.Integer(1), runtime.Integer(2)}, "Begin 2 expr(s)"},
		{"applyfun", runtime.OpApplyFun, runtime.Value(runtime.Integer(7)), "ApplyFun 7"},
		{"setq-env", runtime.OpSetQ, &runtime.Env{}, "SetQ GlobalEnv"},
		{"then-with-else", runtime.OpThen, runtime.ThenBranches{E2: runtime.Integer(1), E3: runtime.Integer(2)}, "Then (1 2)"},
		{"then-without-else", runtime.OpThen, runtime.ThenBranches{E2: runtime.Integer(1)}, "Then (1)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := StackFrame{Op: c.op, Payload: c.pay}.String()
			if got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestStackTraceStringOldestToNewest(t *testing.T) {
	// Frames() returns top-first (newest first); NewStackTrace preserves
	// that order and String() renders oldest-to-newest, matching a
	// conventional call-stack listing.
	frames := []runtime.Frame{
		{Op: runtime.OpApplyFun, Payload: runtime.Value(runtime.Integer(3))}, // newest
		{Op: runtime.OpEvalArg, Payload: runtime.Value(runtime.Integer(2))},
		{Op: runtime.OpRestoreEnv, Payload: &runtime.Env{}}, // oldest
	}
	trace := NewStackTrace(frames)
	if trace.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", trace.Depth())
	}

	lines := strings.Split(trace.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), trace.String())
	}
	if !strings.HasPrefix(lines[0], "RestoreEnv") {
		t.Errorf("expected oldest frame (RestoreEnv) first, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "ApplyFun") {
		t.Errorf("expected newest frame (ApplyFun) last, got %q", lines[2])
	}
}

func TestStackTraceStringEmpty(t *testing.T) {
	if got := NewStackTrace(nil).String(); got != "" {
		t.Errorf("expected empty dump for no pending frames, got %q", got)
	}
}

func TestStackTraceFromLiveContinuation(t *testing.T) {
	k := runtime.NewContinuation()
	k.Push(runtime.OpRestoreEnv, &runtime.Env{})
	k.Push(runtime.OpDefine, runtime.Intern("y"))

	trace := NewStackTrace(k.Frames())
	if trace.Depth() != 2 {
		t.Fatalf("expected 2 live frames, got %d", trace.Depth())
	}
	if !strings.Contains(trace.String(), "Define y") {
		t.Errorf("expected dump to mention the pending Define, got %q", trace.String())
	}
}
