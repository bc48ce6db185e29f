package ast

// Short constructors for building trees by hand in tests.

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Boolean(token string) *BooleanLiteral {
	return NewBooleanLiteral(token)
}

func True() *BooleanLiteral {
	return NewBooleanLiteral("TRUE")
}

func False() *BooleanLiteral {
	return NewBooleanLiteral("FALSE")
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Chr(value rune) *CharLiteral {
	return NewCharLiteral(value)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

func Ref(name string) *Variable {
	return NewVariable(name)
}

func Assign(name string, value Expression) *AssignExpression {
	return NewAssignExpression(name, value)
}

func Lock(name string, body Expression) *LockExpression {
	return NewLockExpression(name, body)
}

func Local(binding *AssignExpression, body Expression) *LocalExpression {
	return NewLocalExpression(binding, body)
}

func Seq(expressions ...Expression) *Sequence {
	return NewSequence(expressions)
}

func Loop(count, body Expression) *LoopExpression {
	return NewLoopExpression(count, body)
}

func While(condition, body Expression) *WhileExpression {
	return NewWhileExpression(condition, body)
}

func DoWhile(condition, body Expression) *DoWhileExpression {
	return NewDoWhileExpression(condition, body)
}

func If(condition, then Expression) *IfExpression {
	return NewIfExpression(condition, then, nil)
}

func IfElse(condition, then, alt Expression) *IfExpression {
	return NewIfExpression(condition, then, alt)
}

func Lam(params []string, body Expression) *LambdaExpression {
	return NewLambdaExpression(params, body, false)
}

func LamRest(params []string, body Expression) *LambdaExpression {
	return NewLambdaExpression(params, body, true)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

// Op builds the call form an infix operator desugars to.
func Op(name string, left, right Expression) *CallExpression {
	return NewCallExpression(NewVariable(name), []Expression{left, right})
}

func StructLit(initializers ...*AssignExpression) *StructExpression {
	return NewStructExpression(initializers, nil)
}

func Extend(parent Expression, initializers ...*AssignExpression) *StructExpression {
	return NewStructExpression(initializers, parent)
}

func Member(target Expression, member string) *MemberAccessExpression {
	return NewMemberAccessExpression(target, member)
}

func SelfMember(member string) *MemberAccessExpression {
	return NewMemberAccessExpression(nil, member)
}
