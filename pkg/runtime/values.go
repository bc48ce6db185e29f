package runtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tern/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindChar
	KindArray
	KindPair
	KindClosure
	KindNativeFunction
	KindStruct
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindArray:
		return "array"
	case KindPair:
		return "pair"
	case KindClosure:
		return "closure"
	case KindNativeFunction:
		return "native_function"
	case KindStruct:
		return "struct"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// NumberValue is the only numeric type. Integer literals are stored as
// floats; arithmetic and comparison are uniformly float semantics.
type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

// NoneValue doubles as the missing-branch result and the empty list bound to
// nil. It is an ordinary value usable anywhere a value is expected.
type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

// ArrayValue is a fixed-length ordered sequence. Elements may be
// heterogeneous; elementwise operator behaviour lives in the builtins.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// PairValue builds singly linked lists via cons, terminated by none.
type PairValue struct {
	Head Value
	Tail Value
}

func (v *PairValue) Kind() Kind { return KindPair }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// ClosureValue shares its defining scope by reference: mutations to outer
// variables inside the body are visible to every other holder of the scope.
type ClosureValue struct {
	Defining *Scope
	Params   []string
	Body     ast.Expression
	Variadic bool
}

func (v *ClosureValue) Kind() Kind { return KindClosure }

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name string
	Impl NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Structs
//-----------------------------------------------------------------------------

// StructValue's Fields map IS the cell storage of the scope that created it,
// never a copy: writes through either view are visible through the other.
// The field set is fixed at construction; the cells stay mutable.
type StructValue struct {
	Fields map[string]*Cell
	Parent *StructValue
}

func (v *StructValue) Kind() Kind { return KindStruct }

// Member resolves a field through own storage first, then the parent chain.
func (v *StructValue) Member(name string) (*Cell, bool) {
	for s := v; s != nil; s = s.Parent {
		if cell, ok := s.Fields[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

//-----------------------------------------------------------------------------
// Shared helpers
//-----------------------------------------------------------------------------

// Truthy reports whether a value selects the then-branch of a conditional.
// Numbers are truthy when non-zero, strings when non-empty, arrays when they
// have elements; none is falsy; pairs, structs and callables are truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NumberValue:
		return val.Val != 0
	case BoolValue:
		return val.Val
	case StringValue:
		return val.Val != ""
	case CharValue:
		return val.Val != 0
	case *ArrayValue:
		return len(val.Elements) > 0
	case NoneValue:
		return false
	case nil:
		return false
	default:
		return true
	}
}

// Equals is structural over scalars, pairs, none and arrays; closures,
// natives and structs compare by identity.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case CharValue:
		bv, ok := b.(CharValue)
		return ok && av.Val == bv.Val
	case NoneValue:
		_, ok := b.(NoneValue)
		return ok
	case *PairValue:
		bv, ok := b.(*PairValue)
		return ok && Equals(av.Head, bv.Head) && Equals(av.Tail, bv.Tail)
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Display renders a value the way the REPL and the suite runner print it.
func Display(v Value) string {
	switch val := v.(type) {
	case NumberValue:
		return strconv.FormatFloat(val.Val, 'g', -1, 64)
	case BoolValue:
		if val.Val {
			return "TRUE"
		}
		return "FALSE"
	case StringValue:
		return val.Val
	case CharValue:
		return string(val.Val)
	case NoneValue:
		return "none"
	case *ArrayValue:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = Display(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *PairValue:
		return "(" + Display(val.Head) + ", " + Display(val.Tail) + ")"
	case *ClosureValue:
		return "fun"
	case NativeFunctionValue:
		return "builtin " + val.Name
	case *StructValue:
		names := make([]string, 0, len(val.Fields))
		for name := range val.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = name + ": " + Display(val.Fields[name].Value())
		}
		return "struct {" + strings.Join(parts, "; ") + "}"
	case nil:
		return "none"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
