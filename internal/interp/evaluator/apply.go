package evaluator

import "github.com/cwbudde/go-scheme/internal/interp/runtime"

// Apply implements spec.md §4.F's apply(fun, args, k, env) -> (exp, env).
// It first unwraps call/cc and apply (stored as the literal symbols
// themselves, per spec.md §9), looping until fun is an intrinsic, closure,
// or continuation, then dispatches.
func Apply(fun runtime.Value, args []runtime.Value, k *runtime.Continuation, env *runtime.Env) (runtime.Value, *runtime.Env, error) {
	for {
		sym, isSym := fun.(*runtime.Symbol)
		if !isSym {
			break
		}

		switch sym {
		case runtime.SymCallCC:
			if len(args) != 1 {
				return nil, nil, runtime.NewArityMismatchError(1, len(args))
			}
			k.PushRestoreEnvUnlessTail(env)
			fun = args[0]
			args = []runtime.Value{k.Snapshot()}
			continue

		case runtime.SymApply:
			if len(args) != 2 {
				return nil, nil, runtime.NewArityMismatchError(2, len(args))
			}
			spread, err := runtime.ListToSlice(args[1])
			if err != nil {
				return nil, nil, err
			}
			fun = args[0]
			args = spread
			continue
		}
		break
	}

	switch f := fun.(type) {
	case *runtime.Intrinsic:
		if !f.Variadic() && len(args) != f.Arity {
			return nil, nil, runtime.NewArityMismatchError(f.Arity, len(args))
		}
		result, err := f.Fn(args)
		if err != nil {
			return nil, nil, err
		}
		return result, env, nil

	case *runtime.Closure:
		newEnv, err := runtime.Prepend(f.Env, f.Params, args)
		if err != nil {
			return nil, nil, err
		}
		k.PushRestoreEnvUnlessTail(env)
		frame := runtime.PushFrame(newEnv)
		if len(f.Body) == 0 {
			return runtime.Void, frame, nil
		}
		k.Push(runtime.OpBegin, append([]runtime.Value(nil), f.Body...))
		return runtime.Void, frame, nil

	case *runtime.Continuation:
		if len(args) != 1 {
			return nil, nil, runtime.NewArityMismatchError(1, len(args))
		}
		k.CopyFrom(f)
		return args[0], env, nil

	default:
		return nil, nil, runtime.NewNotAProcedureError(fun)
	}
}
