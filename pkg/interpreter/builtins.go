package interpreter

import (
	"tern/interpreter-go/pkg/runtime"
)

// NewGlobalScope builds the initial scope holding every builtin binding.
// Builtins are plain host functions over values; the evaluator invokes them
// through the ordinary call path with no special casing, which is also where
// scalar/array operator polymorphism lives.
func NewGlobalScope() *runtime.Scope {
	scope := runtime.NewScope(nil)

	scope.Define("+", vectorized("+", addScalars))
	scope.Define("-", vectorized("-", numericScalars("-", func(a, b float64) float64 { return a - b })))
	scope.Define("*", vectorized("*", numericScalars("*", func(a, b float64) float64 { return a * b })))
	// Division by zero follows floating-point semantics (infinity or NaN),
	// a deliberate non-error condition.
	scope.Define("/", vectorized("/", numericScalars("/", func(a, b float64) float64 { return a / b })))

	scope.Define("<", vectorized("<", orderingScalars("<", func(c int) bool { return c < 0 })))
	scope.Define(">", vectorized(">", orderingScalars(">", func(c int) bool { return c > 0 })))
	scope.Define("<=", vectorized("<=", orderingScalars("<=", func(c int) bool { return c <= 0 })))
	scope.Define(">=", vectorized(">=", orderingScalars(">=", func(c int) bool { return c >= 0 })))
	scope.Define("=", vectorized("=", equalityScalars(false)))
	scope.Define("!=", vectorized("!=", equalityScalars(true)))

	scope.Define("EQ", binary("EQ", func(a, b runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue{Val: runtime.Equals(a, b)}, nil
	}))
	scope.Define("NEQ", binary("NEQ", func(a, b runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue{Val: !runtime.Equals(a, b)}, nil
	}))
	scope.Define("XOR", logical("XOR", func(a, b bool) bool { return a != b }))
	scope.Define("NAND", logical("NAND", func(a, b bool) bool { return !(a && b) }))
	scope.Define("NOR", logical("NOR", func(a, b bool) bool { return !(a || b) }))
	scope.Define("IMP", logical("IMP", func(a, b bool) bool { return !a || b }))
	// AND and OR return the operand that decided the outcome rather than a
	// bare bool.
	scope.Define("AND", binary("AND", func(a, b runtime.Value) (runtime.Value, error) {
		if !runtime.Truthy(a) {
			return a, nil
		}
		return b, nil
	}))
	scope.Define("OR", binary("OR", func(a, b runtime.Value) (runtime.Value, error) {
		if runtime.Truthy(a) {
			return a, nil
		}
		return b, nil
	}))
	scope.Define("NOT", native("NOT", func(args []runtime.Value) (runtime.Value, error) {
		if err := expectArity("NOT", 1, args); err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !runtime.Truthy(args[0])}, nil
	}))

	scope.Define("list", native("list", builtinList))
	scope.Define("cons", binary("cons", func(a, b runtime.Value) (runtime.Value, error) {
		return &runtime.PairValue{Head: a, Tail: b}, nil
	}))
	// nil is a constant binding, not a function.
	scope.Define("nil", runtime.NoneValue{})
	scope.Define("head", native("head", builtinHead))
	scope.Define("tail", native("tail", builtinTail))

	scope.Define("array", native("array", builtinArray))
	scope.Define("[]", binary("[]", builtinIndex))

	return scope
}

func native(name string, impl runtime.NativeFunc) runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{Name: name, Impl: impl}
}

func expectArity(name string, want int, args []runtime.Value) error {
	if len(args) != want {
		return typeErrorf("%s expects %d arguments, got %d", name, want, len(args))
	}
	return nil
}

func binary(name string, impl func(a, b runtime.Value) (runtime.Value, error)) runtime.NativeFunctionValue {
	return native(name, func(args []runtime.Value) (runtime.Value, error) {
		if err := expectArity(name, 2, args); err != nil {
			return nil, err
		}
		return impl(args[0], args[1])
	})
}

func logical(name string, op func(a, b bool) bool) runtime.NativeFunctionValue {
	return binary(name, func(a, b runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue{Val: op(runtime.Truthy(a), runtime.Truthy(b))}, nil
	})
}

// vectorized lifts a scalar binary operation elementwise over arrays:
// array-array applies pairwise (lengths must match), array-scalar and
// scalar-array broadcast the scalar.
func vectorized(name string, scalar func(a, b runtime.Value) (runtime.Value, error)) runtime.NativeFunctionValue {
	var apply func(a, b runtime.Value) (runtime.Value, error)
	apply = func(a, b runtime.Value) (runtime.Value, error) {
		aArr, aOK := a.(*runtime.ArrayValue)
		bArr, bOK := b.(*runtime.ArrayValue)
		switch {
		case aOK && bOK:
			if len(aArr.Elements) != len(bArr.Elements) {
				return nil, typeErrorf("%s: array lengths differ (%d and %d)", name, len(aArr.Elements), len(bArr.Elements))
			}
			out := make([]runtime.Value, len(aArr.Elements))
			for i := range aArr.Elements {
				val, err := apply(aArr.Elements[i], bArr.Elements[i])
				if err != nil {
					return nil, err
				}
				out[i] = val
			}
			return &runtime.ArrayValue{Elements: out}, nil
		case aOK:
			out := make([]runtime.Value, len(aArr.Elements))
			for i := range aArr.Elements {
				val, err := apply(aArr.Elements[i], b)
				if err != nil {
					return nil, err
				}
				out[i] = val
			}
			return &runtime.ArrayValue{Elements: out}, nil
		case bOK:
			out := make([]runtime.Value, len(bArr.Elements))
			for i := range bArr.Elements {
				val, err := apply(a, bArr.Elements[i])
				if err != nil {
					return nil, err
				}
				out[i] = val
			}
			return &runtime.ArrayValue{Elements: out}, nil
		default:
			return scalar(a, b)
		}
	}
	return binary(name, apply)
}

func numericScalars(name string, op func(a, b float64) float64) func(a, b runtime.Value) (runtime.Value, error) {
	return func(a, b runtime.Value) (runtime.Value, error) {
		an, aOK := a.(runtime.NumberValue)
		bn, bOK := b.(runtime.NumberValue)
		if !aOK || !bOK {
			return nil, typeErrorf("%s requires numeric operands, got %s and %s", name, a.Kind(), b.Kind())
		}
		return runtime.NumberValue{Val: op(an.Val, bn.Val)}, nil
	}
}

// addScalars is numeric addition plus string concatenation.
func addScalars(a, b runtime.Value) (runtime.Value, error) {
	if as, ok := a.(runtime.StringValue); ok {
		if bs, ok := b.(runtime.StringValue); ok {
			return runtime.StringValue{Val: as.Val + bs.Val}, nil
		}
	}
	return numericScalars("+", func(x, y float64) float64 { return x + y })(a, b)
}

// orderingScalars compares numbers, strings and chars; op receives the sign
// of the comparison.
func orderingScalars(name string, op func(cmp int) bool) func(a, b runtime.Value) (runtime.Value, error) {
	return func(a, b runtime.Value) (runtime.Value, error) {
		cmp, err := compareScalars(name, a, b)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: op(cmp)}, nil
	}
}

func compareScalars(name string, a, b runtime.Value) (int, error) {
	switch av := a.(type) {
	case runtime.NumberValue:
		if bv, ok := b.(runtime.NumberValue); ok {
			switch {
			case av.Val < bv.Val:
				return -1, nil
			case av.Val > bv.Val:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case runtime.StringValue:
		if bv, ok := b.(runtime.StringValue); ok {
			switch {
			case av.Val < bv.Val:
				return -1, nil
			case av.Val > bv.Val:
				return 1, nil
			default:
				return 0, nil
			}
		}
	case runtime.CharValue:
		if bv, ok := b.(runtime.CharValue); ok {
			switch {
			case av.Val < bv.Val:
				return -1, nil
			case av.Val > bv.Val:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, typeErrorf("%s cannot compare %s and %s", name, a.Kind(), b.Kind())
}

func equalityScalars(negate bool) func(a, b runtime.Value) (runtime.Value, error) {
	return func(a, b runtime.Value) (runtime.Value, error) {
		eq := runtime.Equals(a, b)
		if negate {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	}
}

// builtinList builds a nested pair chain terminated by nil.
func builtinList(args []runtime.Value) (runtime.Value, error) {
	var list runtime.Value = runtime.NoneValue{}
	for i := len(args) - 1; i >= 0; i-- {
		list = &runtime.PairValue{Head: args[i], Tail: list}
	}
	return list, nil
}

func builtinHead(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity("head", 1, args); err != nil {
		return nil, err
	}
	pair, ok := args[0].(*runtime.PairValue)
	if !ok {
		return nil, typeErrorf("head requires a pair, got %s", args[0].Kind())
	}
	return pair.Head, nil
}

func builtinTail(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity("tail", 1, args); err != nil {
		return nil, err
	}
	pair, ok := args[0].(*runtime.PairValue)
	if !ok {
		return nil, typeErrorf("tail requires a pair, got %s", args[0].Kind())
	}
	return pair.Tail, nil
}

func builtinArray(args []runtime.Value) (runtime.Value, error) {
	elements := make([]runtime.Value, len(args))
	copy(elements, args)
	return &runtime.ArrayValue{Elements: elements}, nil
}

// builtinIndex indexes arrays, strings and pairs by truncated-to-integer
// position.
func builtinIndex(target, index runtime.Value) (runtime.Value, error) {
	num, ok := index.(runtime.NumberValue)
	if !ok {
		return nil, typeErrorf("[] index must be a number, got %s", index.Kind())
	}
	idx := int(num.Val)
	switch seq := target.(type) {
	case *runtime.ArrayValue:
		if idx < 0 || idx >= len(seq.Elements) {
			return nil, &IndexError{Index: idx, Length: len(seq.Elements)}
		}
		return seq.Elements[idx], nil
	case runtime.StringValue:
		runes := []rune(seq.Val)
		if idx < 0 || idx >= len(runes) {
			return nil, &IndexError{Index: idx, Length: len(runes)}
		}
		return runtime.CharValue{Val: runes[idx]}, nil
	case *runtime.PairValue:
		switch idx {
		case 0:
			return seq.Head, nil
		case 1:
			return seq.Tail, nil
		default:
			return nil, &IndexError{Index: idx, Length: 2}
		}
	default:
		return nil, typeErrorf("[] cannot index value of kind %s", target.Kind())
	}
}
