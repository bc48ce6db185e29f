package ast

type NodeType string

const (
	NodeNumberLiteral    NodeType = "NumberLiteral"
	NodeBooleanLiteral   NodeType = "BooleanLiteral"
	NodeStringLiteral    NodeType = "StringLiteral"
	NodeCharLiteral      NodeType = "CharLiteral"
	NodeArrayLiteral     NodeType = "ArrayLiteral"
	NodeAssignExpression NodeType = "AssignExpression"
	NodeVariable         NodeType = "Variable"
	NodeLockExpression   NodeType = "LockExpression"
	NodeLocalExpression  NodeType = "LocalExpression"
	NodeSequence         NodeType = "Sequence"
	NodeLoopExpression   NodeType = "LoopExpression"
	NodeWhileExpression  NodeType = "WhileExpression"
	NodeDoWhile          NodeType = "DoWhileExpression"
	NodeIfExpression     NodeType = "IfExpression"
	NodeLambda           NodeType = "LambdaExpression"
	NodeCall             NodeType = "CallExpression"
	NodeStructExpression NodeType = "StructExpression"
	NodeMemberAccess     NodeType = "MemberAccessExpression"
)

// Node is implemented by every AST node.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Expression is the closed set of evaluatable nodes. Every Tern construct is
// an expression; there is no statement tier.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

// BooleanLiteral records the raw truth token; it is matched against the exact
// spelling "TRUE" at evaluation time.
type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewBooleanLiteral(value string) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type CharLiteral struct {
	nodeImpl
	expressionMarker

	Value rune `json:"value"`
}

func NewCharLiteral(value rune) *CharLiteral {
	return &CharLiteral{nodeImpl: newNodeImpl(NodeCharLiteral), Value: value}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

// Variables

// AssignExpression overwrites the cell of an already-declared name.
// Assignment never declares; declaration happens through LocalExpression,
// closure parameters, or struct initializers.
type AssignExpression struct {
	nodeImpl
	expressionMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssignExpression(name string, value Expression) *AssignExpression {
	return &AssignExpression{nodeImpl: newNodeImpl(NodeAssignExpression), Name: name, Value: value}
}

type Variable struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// LockExpression carries its lock name syntactically only; evaluation is a
// transparent pass-through of Body. See the interpreter package docs.
type LockExpression struct {
	nodeImpl
	expressionMarker

	Name string     `json:"name"`
	Body Expression `json:"body"`
}

func NewLockExpression(name string, body Expression) *LockExpression {
	return &LockExpression{nodeImpl: newNodeImpl(NodeLockExpression), Name: name, Body: body}
}

// LocalExpression introduces a one-name scope around Body. The binding's own
// assignment is evaluated inside that scope, so the bound name may refer to
// itself (recursive closures).
type LocalExpression struct {
	nodeImpl
	expressionMarker

	Binding *AssignExpression `json:"binding"`
	Body    Expression        `json:"body"`
}

func NewLocalExpression(binding *AssignExpression, body Expression) *LocalExpression {
	return &LocalExpression{nodeImpl: newNodeImpl(NodeLocalExpression), Binding: binding, Body: body}
}

// Control flow

// Sequence evaluates its expressions in order and yields the last value.
// The parser never produces an empty sequence.
type Sequence struct {
	nodeImpl
	expressionMarker

	Expressions []Expression `json:"expressions"`
}

func NewSequence(expressions []Expression) *Sequence {
	return &Sequence{nodeImpl: newNodeImpl(NodeSequence), Expressions: expressions}
}

// LoopExpression runs Body Count times; Count is evaluated once and truncated
// to an integer.
type LoopExpression struct {
	nodeImpl
	expressionMarker

	Count Expression `json:"count"`
	Body  Expression `json:"body"`
}

func NewLoopExpression(count, body Expression) *LoopExpression {
	return &LoopExpression{nodeImpl: newNodeImpl(NodeLoopExpression), Count: count, Body: body}
}

type WhileExpression struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Body      Expression `json:"body"`
}

func NewWhileExpression(condition, body Expression) *WhileExpression {
	return &WhileExpression{nodeImpl: newNodeImpl(NodeWhileExpression), Condition: condition, Body: body}
}

type DoWhileExpression struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Body      Expression `json:"body"`
}

func NewDoWhileExpression(condition, body Expression) *DoWhileExpression {
	return &DoWhileExpression{nodeImpl: newNodeImpl(NodeDoWhile), Condition: condition, Body: body}
}

// IfExpression yields the taken branch's value; with no else branch a false
// condition yields none.
type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Then      Expression `json:"then"`
	Else      Expression `json:"else,omitempty"` // nil when absent
}

func NewIfExpression(condition, then, alt Expression) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Then: then, Else: alt}
}

// Functions

// LambdaExpression captures the current scope by reference at evaluation
// time. When Variadic is set the last parameter collects all remaining call
// arguments into an array.
type LambdaExpression struct {
	nodeImpl
	expressionMarker

	Params   []string   `json:"params"`
	Body     Expression `json:"body"`
	Variadic bool       `json:"variadic"`
}

func NewLambdaExpression(params []string, body Expression, variadic bool) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambda), Params: params, Body: body, Variadic: variadic}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: arguments}
}

// Structs

// StructExpression declares exactly the fields named by its initializers.
// Initializers run in listed order, so each may read fields declared before
// it and any field inherited through Parent.
type StructExpression struct {
	nodeImpl
	expressionMarker

	Initializers []*AssignExpression `json:"initializers"`
	Parent       Expression          `json:"parent,omitempty"` // nil when not extending
}

func NewStructExpression(initializers []*AssignExpression, parent Expression) *StructExpression {
	return &StructExpression{nodeImpl: newNodeImpl(NodeStructExpression), Initializers: initializers, Parent: parent}
}

// MemberAccessExpression with a nil Target resolves against the containing
// struct (implicit self).
type MemberAccessExpression struct {
	nodeImpl
	expressionMarker

	Target Expression `json:"target,omitempty"` // nil for implicit self
	Member string     `json:"member"`
}

func NewMemberAccessExpression(target Expression, member string) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccess), Target: target, Member: member}
}
