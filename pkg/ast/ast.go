// Package ast defines BearLang's tagged-union Expression/Statement tree.
package ast

import "bearlangc/pkg/token"

// ValueType is the closed set of BearLang's declared primitive types.
type ValueType int

const (
	Integer ValueType = iota
	Double
	String
	Boolean
	Unknown
)

// CppType maps a ValueType to its emitted C++ spelling.
func (v ValueType) CppType() string {
	switch v {
	case Integer:
		return "int"
	case Double:
		return "double"
	case String:
		return "std::string"
	case Boolean:
		return "bool"
	default:
		return "auto"
	}
}

// ValueTypeFromKeyword maps a type-keyword token kind to its ValueType.
func ValueTypeFromKeyword(k token.Kind) ValueType {
	switch k {
	case token.TInt:
		return Integer
	case token.TDouble:
		return Double
	case token.TString:
		return String
	case token.TBool:
		return Boolean
	default:
		return Unknown
	}
}

// Kind tags both Expression and Statement nodes.
type Kind int

const (
	// Expressions
	Literal Kind = iota
	Variable
	Unary
	Binary

	// Statements
	VarDecl
	Assign
	Input
	Output
	If
	While
	ForRange
)

// Node is the single tagged representation for every Expression and
// Statement variant in the BearLang grammar. Exactly one of the Data
// payload structs below is populated, selected by Kind; traversal is
// exhaustive type switching over Kind, never dynamic dispatch.
type Node struct {
	Kind Kind
	Tok  token.Token
	Data interface{}
}

// --- Expression payloads ---

type LiteralData struct {
	Type      ValueType
	Text      string // verbatim numeric text, or decoded string payload
	BoolValue bool
}

type VariableData struct {
	Name string
}

type UnaryData struct {
	Op      string // "-" or "!"
	Operand *Node
}

type BinaryData struct {
	Op    string // already the C++ spelling; "^" is the exponentiation sentinel
	Left  *Node
	Right *Node
}

// --- Statement payloads ---

type VarDeclData struct {
	Type        ValueType
	Name        string
	Initializer *Node // nil if absent
}

type AssignData struct {
	Name  string
	Value *Node
}

type InputData struct {
	Name string
}

type OutputData struct {
	Value *Node
}

type IfBranch struct {
	Condition *Node
	Body      []*Node
}

type IfData struct {
	Branches   []IfBranch // length >= 1
	ElseBranch []*Node    // nil if no else
	HasElse    bool
}

type WhileData struct {
	Condition *Node
	Body      []*Node
}

type ForRangeData struct {
	Type ValueType
	Name string
	From *Node
	To   *Node
	Body []*Node
}

// Program is an ordered sequence of statement nodes.
type Program struct {
	Statements []*Node
}

// --- Constructors ---

func NewLiteral(tok token.Token, typ ValueType, text string, boolValue bool) *Node {
	return &Node{Kind: Literal, Tok: tok, Data: LiteralData{Type: typ, Text: text, BoolValue: boolValue}}
}

func NewVariable(tok token.Token, name string) *Node {
	return &Node{Kind: Variable, Tok: tok, Data: VariableData{Name: name}}
}

func NewUnary(tok token.Token, op string, operand *Node) *Node {
	return &Node{Kind: Unary, Tok: tok, Data: UnaryData{Op: op, Operand: operand}}
}

func NewBinary(tok token.Token, op string, left, right *Node) *Node {
	return &Node{Kind: Binary, Tok: tok, Data: BinaryData{Op: op, Left: left, Right: right}}
}

func NewVarDecl(tok token.Token, typ ValueType, name string, initializer *Node) *Node {
	return &Node{Kind: VarDecl, Tok: tok, Data: VarDeclData{Type: typ, Name: name, Initializer: initializer}}
}

func NewAssign(tok token.Token, name string, value *Node) *Node {
	return &Node{Kind: Assign, Tok: tok, Data: AssignData{Name: name, Value: value}}
}

func NewInput(tok token.Token, name string) *Node {
	return &Node{Kind: Input, Tok: tok, Data: InputData{Name: name}}
}

func NewOutput(tok token.Token, value *Node) *Node {
	return &Node{Kind: Output, Tok: tok, Data: OutputData{Value: value}}
}

func NewIf(tok token.Token, branches []IfBranch, elseBranch []*Node, hasElse bool) *Node {
	return &Node{Kind: If, Tok: tok, Data: IfData{Branches: branches, ElseBranch: elseBranch, HasElse: hasElse}}
}

func NewWhile(tok token.Token, condition *Node, body []*Node) *Node {
	return &Node{Kind: While, Tok: tok, Data: WhileData{Condition: condition, Body: body}}
}

func NewForRange(tok token.Token, typ ValueType, name string, from, to *Node, body []*Node) *Node {
	return &Node{Kind: ForRange, Tok: tok, Data: ForRangeData{Type: typ, Name: name, From: from, To: to, Body: body}}
}
