package interpreter

import (
	"testing"

	"tern/interpreter-go/pkg/ast"
	"tern/interpreter-go/pkg/runtime"
)

func mustEval(t *testing.T, interp *Interpreter, expr ast.Expression) runtime.Value {
	t.Helper()
	val, err := interp.Run(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return val
}

func asNumber(t *testing.T, val runtime.Value) float64 {
	t.Helper()
	num, ok := val.(runtime.NumberValue)
	if !ok {
		t.Fatalf("expected number, got %#v", val)
	}
	return num.Val
}

func TestLiteralEvaluation(t *testing.T) {
	interp := New()
	if asNumber(t, mustEval(t, interp, ast.Num(42))) != 42 {
		t.Fatalf("number literal")
	}
	if val := mustEval(t, interp, ast.Str("hello")); val.(runtime.StringValue).Val != "hello" {
		t.Fatalf("string literal")
	}
	if val := mustEval(t, interp, ast.Chr('q')); val.(runtime.CharValue).Val != 'q' {
		t.Fatalf("char literal")
	}
}

func TestBooleanLiteralMatchesExactToken(t *testing.T) {
	interp := New()
	if !mustEval(t, interp, ast.True()).(runtime.BoolValue).Val {
		t.Fatalf("TRUE token must evaluate to true")
	}
	// Anything but the exact truth token is false.
	if mustEval(t, interp, ast.Boolean("True")).(runtime.BoolValue).Val {
		t.Fatalf("non-exact token must evaluate to false")
	}
}

func TestArrayLiteralEvaluatesElementsInOrder(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("x", runtime.NumberValue{Val: 0})
	// [x := 1, x + 1] observes the first element's side effect.
	val := mustEval(t, interp, ast.Arr(
		ast.Assign("x", ast.Num(1)),
		ast.Op("+", ast.Ref("x"), ast.Num(1)),
	))
	arr := val.(*runtime.ArrayValue)
	if len(arr.Elements) != 2 || asNumber(t, arr.Elements[0]) != 1 || asNumber(t, arr.Elements[1]) != 2 {
		t.Fatalf("unexpected array %#v", arr.Elements)
	}
}

func TestSequenceYieldsLastValueWithVisibleSideEffects(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("x", runtime.NumberValue{Val: 0})
	val := mustEval(t, interp, ast.Seq(
		ast.Assign("x", ast.Num(5)),
		ast.Op("+", ast.Ref("x"), ast.Num(1)),
	))
	if asNumber(t, val) != 6 {
		t.Fatalf("sequence must return its last value, got %v", val)
	}
}

func TestAssignmentReturnsValueAndMutatesCell(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("x", runtime.NumberValue{Val: 0})
	if asNumber(t, mustEval(t, interp, ast.Assign("x", ast.Num(7)))) != 7 {
		t.Fatalf("assignment must return the assigned value")
	}
	if val, _ := interp.GlobalScope().Get("x"); asNumber(t, val) != 7 {
		t.Fatalf("assignment must overwrite the cell")
	}
}

func TestLocalShadowing(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("x", runtime.NumberValue{Val: 10})

	// local x := 1; local x := x + 1; x
	val := mustEval(t, interp, ast.Local(
		ast.Assign("x", ast.Num(1)),
		ast.Local(
			ast.Assign("x", ast.Op("+", ast.Ref("x"), ast.Num(1))),
			ast.Ref("x"),
		),
	))
	if asNumber(t, val) != 2 {
		t.Fatalf("shadowing local chain must evaluate to 2, got %v", val)
	}
	if outer, _ := interp.GlobalScope().Get("x"); asNumber(t, outer) != 10 {
		t.Fatalf("outer binding must be unaffected after the block ends")
	}
}

func TestLocalBindingVisibleToItsOwnInitializer(t *testing.T) {
	interp := New()
	// local fact := fun(n) if n < 1 then 1 else n * fact(n - 1); fact(5)
	factorial := ast.Local(
		ast.Assign("fact", ast.Lam([]string{"n"},
			ast.IfElse(
				ast.Op("<", ast.Ref("n"), ast.Num(1)),
				ast.Num(1),
				ast.Op("*", ast.Ref("n"), ast.Call(ast.Ref("fact"), ast.Op("-", ast.Ref("n"), ast.Num(1)))),
			),
		)),
		ast.Call(ast.Ref("fact"), ast.Num(5)),
	)
	if asNumber(t, mustEval(t, interp, factorial)) != 120 {
		t.Fatalf("recursive local closure must self-reference")
	}
}

func TestClosureObservesCurrentValueNotCreationValue(t *testing.T) {
	interp := New()
	// local x := 1; local f := fun() x; x := 2; f()
	val := mustEval(t, interp, ast.Local(
		ast.Assign("x", ast.Num(1)),
		ast.Local(
			ast.Assign("f", ast.Lam(nil, ast.Ref("x"))),
			ast.Seq(
				ast.Assign("x", ast.Num(2)),
				ast.Call(ast.Ref("f")),
			),
		),
	))
	if asNumber(t, val) != 2 {
		t.Fatalf("closure must capture by reference, got %v", val)
	}
}

func TestClosureMutatesCapturedScope(t *testing.T) {
	interp := New()
	// local n := 0; local inc := fun() n := n + 1; inc(); inc(); n
	val := mustEval(t, interp, ast.Local(
		ast.Assign("n", ast.Num(0)),
		ast.Local(
			ast.Assign("inc", ast.Lam(nil, ast.Assign("n", ast.Op("+", ast.Ref("n"), ast.Num(1))))),
			ast.Seq(
				ast.Call(ast.Ref("inc")),
				ast.Call(ast.Ref("inc")),
				ast.Ref("n"),
			),
		),
	))
	if asNumber(t, val) != 2 {
		t.Fatalf("mutations inside the closure must be visible outside, got %v", val)
	}
}

func TestClosureUsesDefiningScopeNotCallerScope(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("y", runtime.NumberValue{Val: 1})
	// local f := fun() y; local g := fun() { local y := 99; f() }; g()
	val := mustEval(t, interp, ast.Local(
		ast.Assign("f", ast.Lam(nil, ast.Ref("y"))),
		ast.Local(
			ast.Assign("g", ast.Lam(nil, ast.Local(ast.Assign("y", ast.Num(99)), ast.Call(ast.Ref("f"))))),
			ast.Call(ast.Ref("g")),
		),
	))
	if asNumber(t, val) != 1 {
		t.Fatalf("lexical scoping must ignore the caller's bindings, got %v", val)
	}
}

func TestVariadicBinding(t *testing.T) {
	interp := New()
	// (fun(x, rest...) array(x, rest))(1, 2, 3)
	val := mustEval(t, interp, ast.Call(
		ast.LamRest([]string{"x", "rest"}, ast.Call(ast.Ref("array"), ast.Ref("x"), ast.Ref("rest"))),
		ast.Num(1), ast.Num(2), ast.Num(3),
	))
	arr := val.(*runtime.ArrayValue)
	if asNumber(t, arr.Elements[0]) != 1 {
		t.Fatalf("first parameter must bind positionally")
	}
	rest := arr.Elements[1].(*runtime.ArrayValue)
	if len(rest.Elements) != 2 || asNumber(t, rest.Elements[0]) != 2 || asNumber(t, rest.Elements[1]) != 3 {
		t.Fatalf("rest parameter must slurp remaining arguments, got %#v", rest.Elements)
	}
}

func TestVariadicWithNoExtrasBindsEmptyArray(t *testing.T) {
	interp := New()
	val := mustEval(t, interp, ast.Call(
		ast.LamRest([]string{"rest"}, ast.Ref("rest")),
	))
	if arr := val.(*runtime.ArrayValue); len(arr.Elements) != 0 {
		t.Fatalf("rest must be an empty array, got %#v", arr.Elements)
	}
}

func TestIfWithoutElseYieldsNone(t *testing.T) {
	interp := New()
	val := mustEval(t, interp, ast.If(ast.False(), ast.Num(1)))
	if _, ok := val.(runtime.NoneValue); !ok {
		t.Fatalf("missing else must yield none, got %#v", val)
	}

	// Feeding the none into arithmetic is a builtin-level type failure, not
	// an evaluator crash.
	_, err := interp.Run(ast.Local(
		ast.Assign("r", ast.If(ast.False(), ast.Num(1))),
		ast.Op("+", ast.Ref("r"), ast.Num(1)),
	))
	if err == nil {
		t.Fatalf("expected type failure")
	}
	if !Recoverable(err) {
		t.Fatalf("arithmetic on none must be a TypeError, got %v", err)
	}
}

func TestIfBranchSelection(t *testing.T) {
	interp := New()
	if asNumber(t, mustEval(t, interp, ast.IfElse(ast.True(), ast.Num(1), ast.Num(2)))) != 1 {
		t.Fatalf("truthy condition selects then branch")
	}
	if asNumber(t, mustEval(t, interp, ast.IfElse(ast.Num(0), ast.Num(1), ast.Num(2)))) != 2 {
		t.Fatalf("falsy condition selects else branch")
	}
}

func TestCountedLoop(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("n", runtime.NumberValue{Val: 0})
	body := ast.Assign("n", ast.Op("+", ast.Ref("n"), ast.Num(1)))

	val := mustEval(t, interp, ast.Loop(ast.Num(3.9), body))
	if asNumber(t, val) != 3 {
		t.Fatalf("loop count must truncate and return the last body value, got %v", val)
	}
	if n, _ := interp.GlobalScope().Get("n"); asNumber(t, n) != 3 {
		t.Fatalf("body must run exactly 3 times")
	}
}

func TestCountedLoopZeroAndNegative(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("n", runtime.NumberValue{Val: 0})
	body := ast.Assign("n", ast.Op("+", ast.Ref("n"), ast.Num(1)))

	for _, count := range []float64{0, -2} {
		val := mustEval(t, interp, ast.Loop(ast.Num(count), body))
		if _, ok := val.(runtime.NoneValue); !ok {
			t.Fatalf("count %v must yield none, got %#v", count, val)
		}
	}
	if n, _ := interp.GlobalScope().Get("n"); asNumber(t, n) != 0 {
		t.Fatalf("body must never run")
	}
}

func TestWhileFalseOnFirstTest(t *testing.T) {
	interp := New()
	val := mustEval(t, interp, ast.While(ast.False(), ast.Num(1)))
	if _, ok := val.(runtime.NoneValue); !ok {
		t.Fatalf("while with an initially false condition yields none")
	}
}

func TestWhileReturnsLastBodyValue(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("i", runtime.NumberValue{Val: 0})
	// while i < 3 { i := i + 1 }
	val := mustEval(t, interp, ast.While(
		ast.Op("<", ast.Ref("i"), ast.Num(3)),
		ast.Assign("i", ast.Op("+", ast.Ref("i"), ast.Num(1))),
	))
	if asNumber(t, val) != 3 {
		t.Fatalf("while must return the last body value, got %v", val)
	}
}

func TestDoWhileRunsBodyAtLeastOnce(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("n", runtime.NumberValue{Val: 0})
	val := mustEval(t, interp, ast.DoWhile(
		ast.False(),
		ast.Assign("n", ast.Op("+", ast.Ref("n"), ast.Num(1))),
	))
	if asNumber(t, val) != 1 {
		t.Fatalf("do-while must run once even with a false condition, got %v", val)
	}
}

func TestLockIsTransparentPassThrough(t *testing.T) {
	interp := New()
	interp.GlobalScope().Define("x", runtime.NumberValue{Val: 0})
	val := mustEval(t, interp, ast.Lock("m", ast.Assign("x", ast.Num(3))))
	if asNumber(t, val) != 3 {
		t.Fatalf("lock must evaluate and return its body unchanged, got %v", val)
	}
}

func TestStructInheritance(t *testing.T) {
	interp := New()
	// local P := struct { a := 1 };
	// local C := extend P { b := .a + 1 };
	// array(C.b, C.a)
	val := mustEval(t, interp, ast.Local(
		ast.Assign("P", ast.StructLit(ast.Assign("a", ast.Num(1)))),
		ast.Local(
			ast.Assign("C", ast.Extend(ast.Ref("P"),
				ast.Assign("b", ast.Op("+", ast.SelfMember("a"), ast.Num(1))),
			)),
			ast.Call(ast.Ref("array"),
				ast.Member(ast.Ref("C"), "b"),
				ast.Member(ast.Ref("C"), "a"),
			),
		),
	))
	arr := val.(*runtime.ArrayValue)
	if asNumber(t, arr.Elements[0]) != 2 {
		t.Fatalf("child field must see inherited field during initialization")
	}
	if asNumber(t, arr.Elements[1]) != 1 {
		t.Fatalf("member access must delegate to the parent chain")
	}
}

func TestStructInitializerSeesEarlierFields(t *testing.T) {
	interp := New()
	// struct { a := 1; b := a + 1 }.b
	val := mustEval(t, interp, ast.Member(
		ast.StructLit(
			ast.Assign("a", ast.Num(1)),
			ast.Assign("b", ast.Op("+", ast.Ref("a"), ast.Num(1))),
		),
		"b",
	))
	if asNumber(t, val) != 2 {
		t.Fatalf("initializer must see fields declared before it, got %v", val)
	}
}

func TestStructFieldStorageAliasesScope(t *testing.T) {
	interp := New()
	// local s := struct { n := 0; bump := fun() n := n + 1 };
	// s.bump(); s.bump(); s.n
	val := mustEval(t, interp, ast.Local(
		ast.Assign("s", ast.StructLit(
			ast.Assign("n", ast.Num(0)),
			ast.Assign("bump", ast.Lam(nil, ast.Assign("n", ast.Op("+", ast.Ref("n"), ast.Num(1))))),
		)),
		ast.Seq(
			ast.Call(ast.Member(ast.Ref("s"), "bump")),
			ast.Call(ast.Member(ast.Ref("s"), "bump")),
			ast.Member(ast.Ref("s"), "n"),
		),
	))
	if asNumber(t, val) != 2 {
		t.Fatalf("writes through the scope must be visible through the struct, got %v", val)
	}
}

func TestImplicitMemberInsideStructMethod(t *testing.T) {
	interp := New()
	// local s := struct { a := 5; get := fun() .a }; s.get()
	val := mustEval(t, interp, ast.Local(
		ast.Assign("s", ast.StructLit(
			ast.Assign("a", ast.Num(5)),
			ast.Assign("get", ast.Lam(nil, ast.SelfMember("a"))),
		)),
		ast.Call(ast.Member(ast.Ref("s"), "get")),
	))
	if asNumber(t, val) != 5 {
		t.Fatalf("implicit member must resolve through the captured struct scope, got %v", val)
	}
}

func TestVariableFallsBackToContainingStruct(t *testing.T) {
	interp := New()
	// An inherited field is not in the lexical chain of the method body;
	// resolution must fall through to the containing struct's parent chain.
	// local P := struct { a := 7 };
	// local s := extend P { get := fun() a }; s.get()
	val := mustEval(t, interp, ast.Local(
		ast.Assign("P", ast.StructLit(ast.Assign("a", ast.Num(7)))),
		ast.Local(
			ast.Assign("s", ast.Extend(ast.Ref("P"),
				ast.Assign("get", ast.Lam(nil, ast.Ref("a"))),
			)),
			ast.Call(ast.Member(ast.Ref("s"), "get")),
		),
	))
	if asNumber(t, val) != 7 {
		t.Fatalf("variable lookup must fall back to the containing struct, got %v", val)
	}
}

func TestConsHeadTailRoundTrip(t *testing.T) {
	interp := New()
	pair := ast.Call(ast.Ref("cons"), ast.Num(1), ast.Ref("nil"))

	head := mustEval(t, interp, ast.Call(ast.Ref("head"), pair))
	if asNumber(t, head) != 1 {
		t.Fatalf("head(cons(1, nil)) must be 1, got %v", head)
	}
	tail := mustEval(t, interp, ast.Call(ast.Ref("tail"), pair))
	nilVal := mustEval(t, interp, ast.Ref("nil"))
	if !runtime.Equals(tail, nilVal) {
		t.Fatalf("tail(cons(1, nil)) must equal nil, got %#v", tail)
	}
}
