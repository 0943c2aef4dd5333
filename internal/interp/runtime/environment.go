package runtime

// Env is a singly-linked chain of binding nodes, each either a normal
// binding (Sym, Val, Next) or a *frame marker* — a node with Sym == nil
// denoting the boundary of a lexical scope introduced by function
// application. Frame markers are never matched by Lookup; they exist so
// that Define always inserts at the *current* frame rather than the
// caller's (spec.md §3/§4.D/§9).
//
// A closure keeps a reference to its defining Env node; the chain tail is
// shared between closures (it is a DAG, never a true cycle — §9).
type Env struct {
	Sym  *Symbol
	Val  Value
	Next *Env
}

// NewGlobalFrame creates the single frame-marker node that heads the global
// environment chain.
func NewGlobalFrame() *Env {
	return &Env{}
}

// IsFrameMarker reports whether this node is a scope-boundary marker rather
// than a binding.
func (e *Env) IsFrameMarker() bool {
	return e != nil && e.Sym == nil
}

// PushFrame returns a fresh frame marker chained above env, starting a new
// lexical scope whose Define calls land here.
func PushFrame(env *Env) *Env {
	return &Env{Next: env}
}

// Lookup walks the chain and returns the first node whose symbol is
// identical (by pointer) to sym. Fails with UnboundSymbolError if none
// matches.
func (e *Env) Lookup(sym *Symbol) (*Env, error) {
	for node := e; node != nil; node = node.Next {
		if node.Sym == sym {
			return node, nil
		}
	}
	return nil, NewUnboundSymbolError(sym.Name)
}

// Get is a convenience wrapper over Lookup returning just the bound value.
func (e *Env) Get(sym *Symbol) (Value, error) {
	node, err := e.Lookup(sym)
	if err != nil {
		return nil, err
	}
	return node.Val, nil
}

// DefineHere inserts a new binding immediately after the frame marker that
// heads env. Precondition: env (the head) is a frame marker — callers only
// ever call this with the environment the evaluator is currently running
// in, which always starts life as a frame marker (the global env, or a
// closure call's fresh frame).
//
// The marker node itself is mutated in place and returned unchanged: any
// closure that already captured this marker as its defining environment
// must observe bindings defined here afterward (e.g. a self-recursive
// `(define fact (lambda (n) ... (fact ...) ...))`, whose closure captures
// the marker before `fact`'s own binding exists). Allocating a new head
// node instead would leave every such closure looking at a chain that
// never gains the binding.
func DefineHere(env *Env, sym *Symbol, val Value) *Env {
	env.Next = &Env{Sym: sym, Val: val, Next: env.Next}
	return env
}

// Prepend builds a chain in which params[i] -> args[i] is prepended for
// each i in order, onto base. Fails ArityMismatchError if the lengths
// differ.
func Prepend(base *Env, params []*Symbol, args []Value) (*Env, error) {
	if len(params) != len(args) {
		return nil, NewArityMismatchError(len(params), len(args))
	}
	env := base
	for i := range params {
		env = &Env{Sym: params[i], Val: args[i], Next: env}
	}
	return env, nil
}

// Symbols returns every symbol bound in env and its outer scopes, skipping
// frame markers, outermost-last (used by the `globals` intrinsic — order
// is unspecified by spec.md beyond "a proper list of all symbols bound in
// the global environment").
func (e *Env) Symbols() []*Symbol {
	var out []*Symbol
	for node := e; node != nil; node = node.Next {
		if node.Sym != nil {
			out = append(out, node.Sym)
		}
	}
	return out
}
