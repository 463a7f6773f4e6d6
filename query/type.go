package query

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType defines the kinds of tokens produced by the lexer.
type TokenType int

const (
	TokenName   TokenType = iota // bare word: selector names, callees, keywords
	TokenNumber                  // run of digits
	TokenString                  // quoted literal, Value holds the unescaped text
	TokenDot                     // '.'
	TokenHyphen                  // '-'
	TokenComma                   // ','
	TokenLParen                  // '('
	TokenRParen                  // ')'
	TokenEOF                     // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenName:
		return "name"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenDot:
		return "'.'"
	case TokenHyphen:
		return "'-'"
	case TokenComma:
		return "','"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenEOF:
		return "end of query"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Token represents a single lexical token with type, value, and position.
type Token struct {
	Type     TokenType
	Value    string
	Position int // byte offset in the query text
}

// NodeType tags the variants of the query AST.
type NodeType int

const (
	NodeIdentifier NodeType = iota
	NodeString
	NodeLineNumber
	NodeRange
	NodeCall
	NodeFlag
)

// Node is implemented by every query AST node.
type Node interface {
	Type() NodeType
	String() string
	Position() int
}

var (
	_ Node = (*Identifier)(nil)
	_ Node = (*StringLiteral)(nil)
	_ Node = (*LineNumber)(nil)
	_ Node = (*Range)(nil)
	_ Node = (*Call)(nil)
	_ Node = (*Flag)(nil)
)

// Identifier selects a named declaration or reference, e.g. `.render`.
// Children are resolved inside whatever the identifier resolves to.
type Identifier struct {
	Matcher  string
	Children []Node
	pos      int
}

func (n *Identifier) Type() NodeType { return NodeIdentifier }
func (n *Identifier) Position() int  { return n.pos }
func (n *Identifier) String() string {
	return withChildren(fmt.Sprintf("Identifier(%s)", n.Matcher), n.Children)
}

// StringLiteral selects a string literal whose contents equal Matcher.
type StringLiteral struct {
	Matcher  string
	Children []Node
	pos      int
}

func (n *StringLiteral) Type() NodeType { return NodeString }
func (n *StringLiteral) Position() int  { return n.pos }
func (n *StringLiteral) String() string {
	return withChildren(fmt.Sprintf("String(%s)", strconv.Quote(n.Matcher)), n.Children)
}

// LineNumber is a 1-indexed source line, or the end of file when EOF is set.
// Negative values only appear as call arguments.
type LineNumber struct {
	Value int
	EOF   bool
	pos   int
}

func (n *LineNumber) Type() NodeType { return NodeLineNumber }
func (n *LineNumber) Position() int  { return n.pos }
func (n *LineNumber) String() string {
	if n.EOF {
		return "LineNumber(EOF)"
	}
	return fmt.Sprintf("LineNumber(%d)", n.Value)
}

// Range spans from the start of Start to the end of End.
type Range struct {
	Start Node
	End   Node
	pos   int
}

func (n *Range) Type() NodeType { return NodeRange }
func (n *Range) Position() int  { return n.pos }
func (n *Range) String() string {
	return withChildren("Range", []Node{n.Start, n.End})
}

// Call applies the operator Callee to Args. By convention Args[0] is the
// subject selection.
type Call struct {
	Callee string
	Args   []Node
	pos    int
}

func (n *Call) Type() NodeType { return NodeCall }
func (n *Call) Position() int  { return n.pos }
func (n *Call) String() string {
	return withChildren(fmt.Sprintf("Call(%s)", n.Callee), n.Args)
}

// Flag is a `true`/`false` literal.
type Flag struct {
	Value bool
	pos   int
}

func (n *Flag) Type() NodeType { return NodeFlag }
func (n *Flag) Position() int  { return n.pos }
func (n *Flag) String() string { return fmt.Sprintf("Flag(%t)", n.Value) }

// Children returns the child chain of a selector node, or nil for any other
// node type.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Identifier:
		return v.Children
	case *StringLiteral:
		return v.Children
	}
	return nil
}

// Format renders a parsed query list, one entry per line.
func Format(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, "\n")
}

func withChildren(head string, children []Node) string {
	if len(children) == 0 {
		return head
	}
	var sb strings.Builder
	sb.WriteString(head)
	for _, child := range children {
		sb.WriteString("\n  ")
		sb.WriteString(strings.ReplaceAll(child.String(), "\n", "\n  "))
	}
	return sb.String()
}

// SyntaxError reports malformed query text.
type SyntaxError struct {
	Position int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at offset %d: %s", e.Position, e.Msg)
}
