// Package evaluator implements the explicit-continuation, trampoline-driven
// evaluator: phase 1 reduces an expression to a self-evaluating value,
// phase 2 drives the continuation stack until it empties (spec.md §4.F).
// Neither phase recurses for evaluation itself, so continuation depth is
// bounded by the continuation stack, not by the Go call stack.
package evaluator

import (
	"github.com/cwbudde/go-scheme/internal/interp/runtime"
)

// Evaluate runs exp to completion in env and returns its value — spec.md's
// "evaluate(expression, environment) -> value" surface (§6). Each call
// starts with a fresh, empty continuation stack.
//
// Evaluate also returns the environment exp ran in after completion. A
// top-level `define` installs its binding onto the frame marker env is
// currently rooted at (runtime.DefineHere mutates that marker's Next in
// place so closures that already captured it see the new binding), so the
// caller driving a REPL or file load must still capture this returned
// environment and pass it into the next call — the returned value is the
// same marker, not a new head, but later Prepend/PushFrame calls for
// nested scopes do grow the chain. A bare expression with no top-level
// define returns env unchanged.
func Evaluate(exp runtime.Value, env *runtime.Env) (runtime.Value, *runtime.Env, error) {
	k := runtime.NewContinuation()
	return run(exp, env, k)
}

// EvaluateTraced behaves exactly like Evaluate but also returns the
// continuation stack as it stood when the trampoline stopped — empty on
// success, or holding whatever work was still pending at the point of
// failure on error. The REPL/CLI uses this to render the continuation-stack
// dump spec.md §7 calls for on an uncaught non-user-error, and the --trace
// diagnostic SPEC_FULL.md adds (peak depth reached).
func EvaluateTraced(exp runtime.Value, env *runtime.Env) (runtime.Value, *runtime.Env, *runtime.Continuation, error) {
	k := runtime.NewContinuation()
	v, e, err := run(exp, env, k)
	return v, e, k, err
}

// run is the trampoline: phase 1 reduces exp, phase 2 drains k. State lives
// entirely in exp/env/k so the loop never recurses.
func run(exp runtime.Value, env *runtime.Env, k *runtime.Continuation) (runtime.Value, *runtime.Env, error) {
	for {
		var err error
		exp, env, err = reduce(exp, env, k)
		if err != nil {
			return nil, nil, err
		}

		// Phase 2: drive the continuation stack until it empties or a step
		// re-enters phase 1 by returning control to the top of this loop.
		for {
			op, payload, ok := k.Pop()
			if !ok {
				return exp, env, nil
			}

			var reenter bool
			exp, env, reenter, err = step(op, payload, exp, env, k)
			if err != nil {
				return nil, nil, err
			}
			if reenter {
				break
			}
		}
	}
}

// reduce is phase 1: classify exp and either fully resolve it to a
// self-evaluating value or push continuation work and return the next
// sub-expression to reduce (spec.md §4.F phase 1 table).
func reduce(exp runtime.Value, env *runtime.Env, k *runtime.Continuation) (runtime.Value, *runtime.Env, error) {
	for {
		pair, isPair := exp.(*runtime.Pair)
		if !isPair {
			if sym, ok := exp.(*runtime.Symbol); ok {
				v, err := env.Get(sym)
				if err != nil {
					return nil, nil, err
				}
				return v, env, nil
			}
			// number, bool, string, closure, intrinsic, continuation, nil,
			// VOID, EOF: already self-evaluating.
			return exp, env, nil
		}

		head, _ := pair.Car.(*runtime.Symbol)

		switch head {
		case runtime.SymQuote:
			exp = cadr(pair)
			return exp, env, nil

		case runtime.SymIf:
			rest := cddr(pair)
			restPair, _ := rest.(*runtime.Pair)
			branches, err := parseThen(restPair)
			if err != nil {
				return nil, nil, err
			}
			k.Push(runtime.OpThen, branches)
			exp = cadr(pair)
			continue

		case runtime.SymBegin:
			exprs, err := runtime.ListToSlice(cdr(pair))
			if err != nil {
				return nil, nil, err
			}
			if len(exprs) == 0 {
				return runtime.Void, env, nil
			}
			if len(exprs) > 1 {
				k.Push(runtime.OpBegin, exprs[1:])
			}
			exp = exprs[0]
			continue

		case runtime.SymLambda:
			paramsExpr := cadr(pair)
			paramSyms, err := symbolList(paramsExpr)
			if err != nil {
				return nil, nil, err
			}
			body, err := runtime.ListToSlice(cddr(pair))
			if err != nil {
				return nil, nil, err
			}
			return &runtime.Closure{Params: paramSyms, Body: body, Env: env}, env, nil

		case runtime.SymDefine:
			name, ok := cadr(pair).(*runtime.Symbol)
			if !ok {
				return nil, nil, runtime.NewTypeMismatchError("symbol", cadr(pair))
			}
			k.Push(runtime.OpDefine, name)
			exp = caddr(pair)
			continue

		case runtime.SymSetBang:
			name, ok := cadr(pair).(*runtime.Symbol)
			if !ok {
				return nil, nil, runtime.NewTypeMismatchError("symbol", cadr(pair))
			}
			node, err := env.Lookup(name)
			if err != nil {
				return nil, nil, err
			}
			k.Push(runtime.OpSetQ, node)
			exp = caddr(pair)
			continue

		default:
			argExprs, err := runtime.ListToSlice(pair.Cdr)
			if err != nil {
				return nil, nil, err
			}
			k.Push(runtime.OpApply, argExprs)
			exp = pair.Car
			continue
		}
	}
}

// step is phase 2's dispatch for a single popped continuation step. reenter
// is true when exp should be fed back into phase 1 (reduce); false when the
// value is already resolved and the loop should keep popping k.
func step(op runtime.Op, payload any, exp runtime.Value, env *runtime.Env, k *runtime.Continuation) (newExp runtime.Value, newEnv *runtime.Env, reenter bool, err error) {
	switch op {
	case runtime.OpThen:
		branches := payload.(runtime.ThenBranches)
		if runtime.IsFalse(exp) {
			if branches.E3 != nil {
				return branches.E3, env, true, nil
			}
			return runtime.Void, env, false, nil
		}
		return branches.E2, env, true, nil

	case runtime.OpBegin:
		rest := payload.([]runtime.Value)
		if len(rest) > 1 {
			k.Push(runtime.OpBegin, rest[1:])
		}
		return rest[0], env, true, nil

	case runtime.OpDefine:
		sym := payload.(*runtime.Symbol)
		newEnv = runtime.DefineHere(env, sym, exp)
		return runtime.Void, newEnv, false, nil

	case runtime.OpSetQ:
		node := payload.(*runtime.Env)
		node.Val = exp
		return runtime.Void, env, false, nil

	case runtime.OpApply:
		// Arguments evaluate strictly left-to-right: argExprs[0] is
		// returned below as the next reduce() target, and the remaining
		// EvalArg steps are pushed in reverse so the stack (LIFO) pops
		// argExprs[1], argExprs[2], ... in forward order after each one
		// resolves (spec.md §8 property 5; DESIGN.md's Open Question
		// resolutions).
		argExprs := payload.([]runtime.Value)
		fun := exp
		if len(argExprs) == 0 {
			newExp, newEnv, err = Apply(fun, nil, k, env)
			if err != nil {
				return nil, nil, false, err
			}
			return newExp, newEnv, false, nil
		}
		k.Push(runtime.OpApplyFun, fun)
		for i := len(argExprs) - 1; i >= 1; i-- {
			k.Push(runtime.OpEvalArg, argExprs[i])
		}
		k.Push(runtime.OpConsArgs, []runtime.Value(nil))
		return argExprs[0], env, true, nil

	case runtime.OpConsArgs:
		// Copy rather than append(acc, exp): acc's backing array may still
		// be referenced by a call/cc snapshot taken while this step sat on
		// the continuation stack, and appending in place onto spare
		// capacity would let a later invocation of that snapshot clobber
		// an earlier one's arguments (spec.md §9's continuation-identity
		// invariant).
		acc := payload.([]runtime.Value)
		args := make([]runtime.Value, len(acc)+1)
		copy(args, acc)
		args[len(acc)] = exp
		nextOp, nextPayload, ok := k.Pop()
		if !ok {
			return nil, nil, false, runtime.NewNotAProcedureError(nil)
		}
		switch nextOp {
		case runtime.OpEvalArg:
			k.Push(runtime.OpConsArgs, args)
			return nextPayload.(runtime.Value), env, true, nil
		case runtime.OpApplyFun:
			fun := nextPayload.(runtime.Value)
			newExp, newEnv, err = Apply(fun, args, k, env)
			if err != nil {
				return nil, nil, false, err
			}
			return newExp, newEnv, false, nil
		default:
			return nil, nil, false, runtime.NewNotAProcedureError(nil)
		}

	case runtime.OpRestoreEnv:
		return exp, payload.(*runtime.Env), false, nil

	default:
		panic("unreachable continuation op")
	}
}

func cdr(p *runtime.Pair) runtime.Value {
	return p.Cdr
}

func cadr(p *runtime.Pair) runtime.Value {
	rest, _ := p.Cdr.(*runtime.Pair)
	if rest == nil {
		return runtime.NilValue
	}
	return rest.Car
}

func cddr(p *runtime.Pair) runtime.Value {
	rest, _ := p.Cdr.(*runtime.Pair)
	if rest == nil {
		return runtime.NilValue
	}
	return rest.Cdr
}

func caddr(p *runtime.Pair) runtime.Value {
	rest, _ := cddr(p).(*runtime.Pair)
	if rest == nil {
		return runtime.NilValue
	}
	return rest.Car
}

// parseThen extracts the (e2 [e3]) branches of an `if`'s cdr-cdr list.
func parseThen(rest *runtime.Pair) (runtime.ThenBranches, error) {
	if rest == nil {
		return runtime.ThenBranches{}, runtime.NewTypeMismatchError("if-branches", runtime.NilValue)
	}
	e2 := rest.Car
	var e3 runtime.Value
	if more, ok := rest.Cdr.(*runtime.Pair); ok {
		e3 = more.Car
	}
	return runtime.ThenBranches{E2: e2, E3: e3}, nil
}

// symbolList converts a proper list of symbols (a lambda's parameter list)
// into a Go slice, failing type-mismatch if any element is not a symbol.
func symbolList(v runtime.Value) ([]*runtime.Symbol, error) {
	values, err := runtime.ListToSlice(v)
	if err != nil {
		return nil, err
	}
	syms := make([]*runtime.Symbol, len(values))
	for i, val := range values {
		sym, ok := val.(*runtime.Symbol)
		if !ok {
			return nil, runtime.NewTypeMismatchError("symbol", val)
		}
		syms[i] = sym
	}
	return syms, nil
}
