package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Stringify renders any value to readable text, used for `display`, error
// messages, and stack traces (spec.md §4.H). When quoted is true, strings
// render with surrounding double quotes (the default "write" mode); when
// false, strings render raw (display mode).
func Stringify(v Value, quoted bool) string {
	var sb strings.Builder
	stringify(&sb, v, quoted)
	return sb.String()
}

func stringify(sb *strings.Builder, v Value, quoted bool) {
	switch t := v.(type) {
	case Nil:
		sb.WriteString("()")
	case voidValue:
		sb.WriteString("#<VOID>")
	case eofValue:
		sb.WriteString("#<EOF>")
	case Boolean:
		if t {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case Integer:
		sb.WriteString(strconv.FormatInt(int64(t), 10))
	case *BigInt:
		sb.WriteString(t.V.String())
	case Float:
		stringifyFloat(sb, float64(t))
	case String:
		if quoted {
			sb.WriteString(strconv.Quote(string(t)))
		} else {
			sb.WriteString(string(t))
		}
	case *Symbol:
		sb.WriteString(t.Name)
	case *Pair:
		stringifyPair(sb, t, quoted)
	case *Closure:
		stringifyClosure(sb, t)
	case *Intrinsic:
		fmt.Fprintf(sb, "#<%s:%d>", t.Name, t.Arity)
	case *Continuation:
		sb.WriteString("#<continuation>")
	default:
		fmt.Fprintf(sb, "#<unknown>")
	}
}

// stringifyFloat appends ".0" when the value equals an integer, so
// 123.0 round-trips textually per spec.md §4.H.
func stringifyFloat(sb *strings.Builder, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	sb.WriteString(s)
}

// stringifyPair renders parenthesised, space-separated elements, with an
// improper tail printed as `.` followed by the tail (spec.md §3/§4.H).
func stringifyPair(sb *strings.Builder, p *Pair, quoted bool) {
	sb.WriteByte('(')
	stringify(sb, p.Car, quoted)

	rest := p.Cdr
	for {
		switch t := rest.(type) {
		case Nil:
			sb.WriteByte(')')
			return
		case *Pair:
			sb.WriteByte(' ')
			stringify(sb, t.Car, quoted)
			rest = t.Cdr
		default:
			sb.WriteString(" . ")
			stringify(sb, rest, quoted)
			sb.WriteByte(')')
			return
		}
	}
}

// stringifyClosure renders #<params:body:env>.
func stringifyClosure(sb *strings.Builder, c *Closure) {
	sb.WriteString("#<")
	for i, p := range c.Params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Name)
	}
	sb.WriteByte(':')
	for i, e := range c.Body {
		if i > 0 {
			sb.WriteByte(' ')
		}
		stringify(sb, e, true)
	}
	sb.WriteByte(':')
	stringifyEnv(sb, c.Env)
	sb.WriteByte('>')
}

// StringifyEnv renders an environment chain as a sequence of symbol names,
// using `|` for frame markers and the sentinel `GlobalEnv` when the chain
// head is reached (spec.md §4.H).
func StringifyEnv(env *Env) string {
	var sb strings.Builder
	stringifyEnv(&sb, env)
	return sb.String()
}

func stringifyEnv(sb *strings.Builder, env *Env) {
	// The global frame marker is the last marker in the chain: every other
	// marker was pushed above it by a closure call.
	var global *Env
	for node := env; node != nil; node = node.Next {
		if node.IsFrameMarker() {
			global = node
		}
	}
	first := true
	for node := env; node != nil; node = node.Next {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		if node == global {
			sb.WriteString("GlobalEnv")
			return
		}
		if node.IsFrameMarker() {
			sb.WriteByte('|')
		} else {
			sb.WriteString(node.Sym.Name)
		}
	}
}
