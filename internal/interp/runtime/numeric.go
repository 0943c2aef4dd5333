package runtime

import (
	"math/big"
	"strconv"
)

// Integer is the bounded, 32-bit-range integer leg of the numeric tower —
// the "smallest representation that fits" per spec.md §3/§4.A.
type Integer int32

func (Integer) Type() string { return "number" }

// BigInt is the arbitrary-precision leg, backed by the standard library's
// math/big.Int. No repository in the retrieval pack depends on a
// third-party bignum library (see DESIGN.md), so the stdlib is used here.
type BigInt struct {
	V *big.Int
}

func (*BigInt) Type() string { return "number" }

// Float is the double-precision leg.
type Float float64

func (Float) Type() string { return "number" }

// IsNumber reports whether v is one of the three numeric-tower shapes.
func IsNumber(v Value) bool {
	switch v.(type) {
	case Integer, *BigInt, Float:
		return true
	default:
		return false
	}
}

const (
	minBoundedInt int64 = -(1 << 31)
	maxBoundedInt int64 = (1 << 31) - 1
)

// normalizeBig narrows a *big.Int to an Integer if it fits the bounded
// 32-bit range, otherwise wraps it as a BigInt. This is the "normalises
// results" step spec.md §4.A requires after every big computation.
func normalizeBig(v *big.Int) Value {
	if v.IsInt64() {
		n := v.Int64()
		if n >= minBoundedInt && n <= maxBoundedInt {
			return Integer(n)
		}
	}
	return &BigInt{V: v}
}

// toBig converts any numeric-tower value to a *big.Int. It must only be
// called on Integer or *BigInt (never Float).
func toBig(v Value) *big.Int {
	switch t := v.(type) {
	case Integer:
		return big.NewInt(int64(t))
	case *BigInt:
		return t.V
	default:
		panic("toBig called on non-integer numeric value")
	}
}

// toFloat converts any numeric-tower value to a float64.
func toFloat(v Value) float64 {
	switch t := v.(type) {
	case Integer:
		return float64(t)
	case *BigInt:
		f := new(big.Float).SetInt(t.V)
		r, _ := f.Float64()
		return r
	case Float:
		return float64(t)
	default:
		panic("toFloat called on non-numeric value")
	}
}

// promote reports whether either operand forces floating-point promotion.
func promote(a, b Value) bool {
	_, af := a.(Float)
	_, bf := b.(Float)
	return af || bf
}

// Add implements mixed-precision addition per spec.md §4.A's promotion
// rules: float if either operand is float, otherwise big (narrowed to
// Integer when it fits), computed in a wider domain so exact integer
// arithmetic never silently wraps.
func Add(a, b Value) (Value, error) {
	if !IsNumber(a) {
		return nil, NewTypeMismatchError("number", a)
	}
	if !IsNumber(b) {
		return nil, NewTypeMismatchError("number", b)
	}
	if promote(a, b) {
		return Float(toFloat(a) + toFloat(b)), nil
	}
	if ai, aok := a.(Integer); aok {
		if bi, bok := b.(Integer); bok {
			sum := int64(ai) + int64(bi)
			if sum >= minBoundedInt && sum <= maxBoundedInt {
				return Integer(sum), nil
			}
			return normalizeBig(big.NewInt(sum)), nil
		}
	}
	return normalizeBig(new(big.Int).Add(toBig(a), toBig(b))), nil
}

// Sub implements mixed-precision subtraction; see Add.
func Sub(a, b Value) (Value, error) {
	if !IsNumber(a) {
		return nil, NewTypeMismatchError("number", a)
	}
	if !IsNumber(b) {
		return nil, NewTypeMismatchError("number", b)
	}
	if promote(a, b) {
		return Float(toFloat(a) - toFloat(b)), nil
	}
	if ai, aok := a.(Integer); aok {
		if bi, bok := b.(Integer); bok {
			diff := int64(ai) - int64(bi)
			if diff >= minBoundedInt && diff <= maxBoundedInt {
				return Integer(diff), nil
			}
			return normalizeBig(big.NewInt(diff)), nil
		}
	}
	return normalizeBig(new(big.Int).Sub(toBig(a), toBig(b))), nil
}

// Mul implements mixed-precision multiplication; see Add.
func Mul(a, b Value) (Value, error) {
	if !IsNumber(a) {
		return nil, NewTypeMismatchError("number", a)
	}
	if !IsNumber(b) {
		return nil, NewTypeMismatchError("number", b)
	}
	if promote(a, b) {
		return Float(toFloat(a) * toFloat(b)), nil
	}
	if ai, aok := a.(Integer); aok {
		if bi, bok := b.(Integer); bok {
			prod := int64(ai) * int64(bi)
			if prod >= minBoundedInt && prod <= maxBoundedInt {
				return Integer(prod), nil
			}
			return normalizeBig(big.NewInt(prod)), nil
		}
	}
	return normalizeBig(new(big.Int).Mul(toBig(a), toBig(b))), nil
}

// Compare returns -1/0/+1 with the same promotion rules as Add: mixing a
// float with an exact integer compares by converting the integer to float,
// accepting the resulting precision loss (spec.md §4.A).
func Compare(a, b Value) (int, error) {
	if !IsNumber(a) {
		return 0, NewTypeMismatchError("number", a)
	}
	if !IsNumber(b) {
		return 0, NewTypeMismatchError("number", b)
	}
	if promote(a, b) {
		af, bf := toFloat(a), toFloat(b)
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if ai, aok := a.(Integer); aok {
		if bi, bok := b.(Integer); bok {
			switch {
			case ai < bi:
				return -1, nil
			case ai > bi:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return toBig(a).Cmp(toBig(b)), nil
}

// ParseNumber tries bounded int, then big int, then float, in that order,
// per spec.md §4.A. ok is false if text matches none of the three.
func ParseNumber(text string) (Value, bool) {
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return Integer(n), true
	}
	if bi, ok := new(big.Int).SetString(text, 10); ok {
		return normalizeBig(bi), true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Float(f), true
	}
	return nil, false
}
