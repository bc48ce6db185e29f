// Package interpreter evaluates Tern expression trees against a chain of
// lexical scopes. Evaluation is single-threaded, synchronous and purely
// recursive; the lock construct is accepted syntactically but carries no
// synchronization semantics and evaluates as a transparent pass-through.
package interpreter

import (
	"tern/interpreter-go/pkg/ast"
	"tern/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Tern AST nodes. The builtin table is not
// a process-wide singleton: it is built once per interpreter and threaded
// explicitly through every Eval call as the root of the scope chain.
type Interpreter struct {
	global *runtime.Scope
}

// New returns an interpreter whose global scope is pre-populated with the
// builtin bindings.
func New() *Interpreter {
	return &Interpreter{global: NewGlobalScope()}
}

// GlobalScope returns the interpreter's outermost scope.
func (i *Interpreter) GlobalScope() *runtime.Scope {
	return i.global
}

// Run evaluates a root expression in the global scope.
func (i *Interpreter) Run(expr ast.Expression) (runtime.Value, error) {
	return i.Eval(expr, i.global)
}

// Eval maps (expression, scope) to a value, driving all control flow and
// mutation. The switch is exhaustive over the closed expression set.
func (i *Interpreter) Eval(expr ast.Expression, scope *runtime.Scope) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		// Matched against the exact truth token rather than parsed generically.
		return runtime.BoolValue{Val: n.Value == "TRUE"}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.CharLiteral:
		return runtime.CharValue{Val: n.Value}, nil
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(n, scope)
	case *ast.AssignExpression:
		return i.evalAssign(n, scope)
	case *ast.Variable:
		return i.evalVariable(n, scope)
	case *ast.LockExpression:
		return i.Eval(n.Body, scope)
	case *ast.LocalExpression:
		return i.evalLocal(n, scope)
	case *ast.Sequence:
		return i.evalSequence(n, scope)
	case *ast.LoopExpression:
		return i.evalLoop(n, scope)
	case *ast.WhileExpression:
		return i.evalWhile(n, scope)
	case *ast.DoWhileExpression:
		return i.evalDoWhile(n, scope)
	case *ast.IfExpression:
		return i.evalIf(n, scope)
	case *ast.LambdaExpression:
		return &runtime.ClosureValue{
			Defining: scope,
			Params:   n.Params,
			Body:     n.Body,
			Variadic: n.Variadic,
		}, nil
	case *ast.CallExpression:
		return i.evalCall(n, scope)
	case *ast.StructExpression:
		return i.evalStruct(n, scope)
	case *ast.MemberAccessExpression:
		return i.evalMemberAccess(n, scope)
	default:
		return nil, typeErrorf("unsupported expression type: %s", expr.NodeType())
	}
}

func (i *Interpreter) evalArrayLiteral(lit *ast.ArrayLiteral, scope *runtime.Scope) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(lit.Elements))
	for _, el := range lit.Elements {
		val, err := i.Eval(el, scope)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return &runtime.ArrayValue{Elements: elements}, nil
}

// evalAssign overwrites the nearest declared cell. Assignment never
// implicitly declares.
func (i *Interpreter) evalAssign(assign *ast.AssignExpression, scope *runtime.Scope) (runtime.Value, error) {
	val, err := i.Eval(assign.Value, scope)
	if err != nil {
		return nil, err
	}
	cell, ok := scope.Resolve(assign.Name)
	if !ok {
		return nil, &UndeclaredVariableError{Name: assign.Name}
	}
	cell.Set(val)
	return val, nil
}

// evalVariable resolves through the scope chain, then falls back to the
// active containing struct's fields (implicit self-lookup).
func (i *Interpreter) evalVariable(ref *ast.Variable, scope *runtime.Scope) (runtime.Value, error) {
	if val, ok := scope.Get(ref.Name); ok {
		return val, nil
	}
	if st := scope.ContainingStruct(); st != nil {
		if cell, ok := st.Member(ref.Name); ok {
			return cell.Value(), nil
		}
	}
	return nil, &UndeclaredVariableError{Name: ref.Name}
}

// evalLocal pushes a one-name scope, evaluates the binding's assignment into
// it, then the body. The pushed cell stays undefined while the initializer
// runs, so the initializer reads any outer binding of the same name while
// the assignment itself lands in the new cell.
func (i *Interpreter) evalLocal(local *ast.LocalExpression, scope *runtime.Scope) (runtime.Value, error) {
	child := scope.Push(local.Binding.Name)
	if _, err := i.Eval(local.Binding, child); err != nil {
		return nil, err
	}
	return i.Eval(local.Body, child)
}

func (i *Interpreter) evalSequence(seq *ast.Sequence, scope *runtime.Scope) (runtime.Value, error) {
	var result runtime.Value = runtime.NoneValue{}
	for _, expr := range seq.Expressions {
		val, err := i.Eval(expr, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

// evalLoop evaluates the count once, truncates to an integer, and runs the
// body that many times. Zero or negative counts leave the result at none.
func (i *Interpreter) evalLoop(loop *ast.LoopExpression, scope *runtime.Scope) (runtime.Value, error) {
	countVal, err := i.Eval(loop.Count, scope)
	if err != nil {
		return nil, err
	}
	num, ok := countVal.(runtime.NumberValue)
	if !ok {
		return nil, typeErrorf("loop count must be a number, got %s", countVal.Kind())
	}
	var result runtime.Value = runtime.NoneValue{}
	for n := int(num.Val); n > 0; n-- {
		result, err = i.Eval(loop.Body, scope)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (i *Interpreter) evalWhile(loop *ast.WhileExpression, scope *runtime.Scope) (runtime.Value, error) {
	var result runtime.Value = runtime.NoneValue{}
	for {
		cond, err := i.Eval(loop.Condition, scope)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return result, nil
		}
		result, err = i.Eval(loop.Body, scope)
		if err != nil {
			return nil, err
		}
	}
}

func (i *Interpreter) evalDoWhile(loop *ast.DoWhileExpression, scope *runtime.Scope) (runtime.Value, error) {
	result, err := i.Eval(loop.Body, scope)
	if err != nil {
		return nil, err
	}
	for {
		cond, err := i.Eval(loop.Condition, scope)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return result, nil
		}
		result, err = i.Eval(loop.Body, scope)
		if err != nil {
			return nil, err
		}
	}
}

func (i *Interpreter) evalIf(cond *ast.IfExpression, scope *runtime.Scope) (runtime.Value, error) {
	test, err := i.Eval(cond.Condition, scope)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(test) {
		return i.Eval(cond.Then, scope)
	}
	if cond.Else != nil {
		return i.Eval(cond.Else, scope)
	}
	return runtime.NoneValue{}, nil
}

func (i *Interpreter) evalCall(call *ast.CallExpression, scope *runtime.Scope) (runtime.Value, error) {
	callee, err := i.Eval(call.Callee, scope)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.Eval(argExpr, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	switch fn := callee.(type) {
	case runtime.NativeFunctionValue:
		return fn.Impl(args)
	case *runtime.ClosureValue:
		return i.callClosure(fn, args)
	default:
		return nil, typeErrorf("calling non-callable value of kind %s", callee.Kind())
	}
}

// callClosure pushes a new scope under the captured defining scope (never
// the caller's) and binds parameters. Non-variadic closures bind
// positionally and stay lax about extra or missing arguments; variadic
// closures slurp the remaining arguments into an array bound to the last
// parameter.
func (i *Interpreter) callClosure(fn *runtime.ClosureValue, args []runtime.Value) (runtime.Value, error) {
	frame := fn.Defining.Push(fn.Params...)
	if fn.Variadic {
		if len(fn.Params) == 0 {
			return nil, typeErrorf("variadic closure requires at least one parameter")
		}
		fixed := len(fn.Params) - 1
		for idx := 0; idx < fixed && idx < len(args); idx++ {
			cell, _ := frame.Resolve(fn.Params[idx])
			cell.Set(args[idx])
		}
		rest := make([]runtime.Value, 0)
		if len(args) > fixed {
			rest = append(rest, args[fixed:]...)
		}
		cell, _ := frame.Resolve(fn.Params[fixed])
		cell.Set(&runtime.ArrayValue{Elements: rest})
	} else {
		for idx := 0; idx < len(fn.Params) && idx < len(args); idx++ {
			cell, _ := frame.Resolve(fn.Params[idx])
			cell.Set(args[idx])
		}
	}
	return i.Eval(fn.Body, frame)
}

// evalStruct evaluates the optional parent first, pushes a scope declaring
// exactly the field names, and aliases the new struct's field storage to
// that scope's cells. Initializers run in listed order, so each may read
// fields declared before it and any inherited field, but not later ones.
func (i *Interpreter) evalStruct(lit *ast.StructExpression, scope *runtime.Scope) (runtime.Value, error) {
	var parent *runtime.StructValue
	if lit.Parent != nil {
		parentVal, err := i.Eval(lit.Parent, scope)
		if err != nil {
			return nil, err
		}
		st, ok := parentVal.(*runtime.StructValue)
		if !ok {
			return nil, typeErrorf("cannot extend value of kind %s", parentVal.Kind())
		}
		parent = st
	}
	names := make([]string, len(lit.Initializers))
	for idx, init := range lit.Initializers {
		names[idx] = init.Name
	}
	child := scope.Push(names...)
	st := &runtime.StructValue{Fields: child.Cells(), Parent: parent}
	child.SetContainingStruct(st)
	for _, init := range lit.Initializers {
		if _, err := i.Eval(init, child); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (i *Interpreter) evalMemberAccess(access *ast.MemberAccessExpression, scope *runtime.Scope) (runtime.Value, error) {
	var st *runtime.StructValue
	if access.Target == nil {
		st = scope.ContainingStruct()
		if st == nil {
			return nil, &UnknownMemberError{Name: access.Member}
		}
	} else {
		target, err := i.Eval(access.Target, scope)
		if err != nil {
			return nil, err
		}
		var ok bool
		st, ok = target.(*runtime.StructValue)
		if !ok {
			return nil, typeErrorf("member access on non-struct value of kind %s", target.Kind())
		}
	}
	cell, ok := st.Member(access.Member)
	if !ok {
		return nil, &UnknownMemberError{Name: access.Member}
	}
	return cell.Value(), nil
}
