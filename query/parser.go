package query

import (
	"fmt"
	"strconv"
)

// Parse compiles query text into its list of top-level selections.
func Parse(text string) ([]Node, error) {
	tokens, err := NewLexer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parser consumes tokens produced by the Lexer and builds the query AST.
//
// Precedence from loosest to tightest: ',' lists, '-' ranges, space
// separated child chains, primaries.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a Parser over tokens, which must end with TokenEOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// group is a parenthesised list. It only survives parsing when flattened into
// a top-level or children list.
type group struct {
	items []Node
	pos   int
}

func (g *group) Type() NodeType { return -1 }
func (g *group) Position() int  { return g.pos }
func (g *group) String() string { return Format(g.items) }

// Parse processes all tokens.
func (p *Parser) Parse() ([]Node, error) {
	if p.peek().Type == TokenEOF {
		return nil, p.errorf(p.peek(), "empty query")
	}

	nodes, err := p.parseList()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.errorf(tok, "unexpected %s", describe(tok))
	}
	return nodes, nil
}

// parseList parses comma separated items, flattening parenthesised groups.
func (p *Parser) parseList() ([]Node, error) {
	var nodes []Node
	for {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		if g, ok := item.(*group); ok {
			nodes = append(nodes, g.items...)
		} else {
			nodes = append(nodes, item)
		}

		if p.peek().Type != TokenComma {
			return nodes, nil
		}
		p.advance()
	}
}

// parseArgs parses call arguments. Groups with several items are rejected
// because they would shift argument positions.
func (p *Parser) parseArgs() ([]Node, error) {
	var args []Node
	for {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		if g, ok := item.(*group); ok {
			return nil, &SyntaxError{Position: g.pos, Msg: "a parenthesised list cannot be a call argument"}
		}
		args = append(args, item)

		if p.peek().Type != TokenComma {
			return args, nil
		}
		p.advance()
	}
}

// parseItem parses `chain ('-' chain)?`.
func (p *Parser) parseItem() (Node, error) {
	left, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenHyphen {
		return left, nil
	}

	hyphen := p.advance()
	right, err := p.parseChain()
	if err != nil {
		return nil, err
	}

	for _, bound := range []Node{left, right} {
		if g, ok := bound.(*group); ok {
			return nil, &SyntaxError{Position: g.pos, Msg: "a parenthesised list cannot be a range bound"}
		}
	}
	return &Range{Start: left, End: right, pos: hyphen.Position}, nil
}

// parseChain parses a primary and, when it is a selector, the child chain
// that follows it.
func (p *Parser) parseChain() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	switch p.peek().Type {
	case TokenDot, TokenString, TokenLParen:
	default:
		return node, nil
	}

	var children *[]Node
	switch v := node.(type) {
	case *Identifier:
		children = &v.Children
	case *StringLiteral:
		children = &v.Children
	default:
		return node, nil
	}

	if p.peek().Type == TokenLParen {
		p.advance()
		list, err := p.parseList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		*children = list
		return node, nil
	}

	child, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	*children = []Node{child}
	return node, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.advance()

	switch tok.Type {
	case TokenDot:
		name := p.peek()
		if name.Type != TokenName && name.Type != TokenNumber {
			return nil, p.errorf(name, "expected a name after '.', got %s", describe(name))
		}
		p.advance()
		return &Identifier{Matcher: name.Value, pos: tok.Position}, nil

	case TokenString:
		return &StringLiteral{Matcher: tok.Value, pos: tok.Position}, nil

	case TokenNumber:
		return p.lineNumber(tok, 1)

	case TokenHyphen:
		num := p.peek()
		if num.Type != TokenNumber {
			return nil, p.errorf(num, "expected a number after '-', got %s", describe(num))
		}
		p.advance()
		n, err := p.lineNumber(num, -1)
		if err != nil {
			return nil, err
		}
		n.pos = tok.Position
		return n, nil

	case TokenName:
		if p.peek().Type == TokenLParen {
			return p.parseCall(tok)
		}
		switch tok.Value {
		case "EOF":
			return &LineNumber{EOF: true, pos: tok.Position}, nil
		case "true":
			return &Flag{Value: true, pos: tok.Position}, nil
		case "false":
			return &Flag{Value: false, pos: tok.Position}, nil
		}
		return nil, p.errorf(tok, "unexpected name %q (selectors start with '.')", tok.Value)

	case TokenLParen:
		list, err := p.parseList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		if len(list) == 1 {
			return list[0], nil
		}
		return &group{items: list, pos: tok.Position}, nil

	default:
		return nil, p.errorf(tok, "unexpected %s", describe(tok))
	}
}

func (p *Parser) parseCall(callee Token) (Node, error) {
	p.advance() // '('

	call := &Call{Callee: callee.Value, pos: callee.Position}
	if p.peek().Type == TokenRParen {
		p.advance()
		return call, nil
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	call.Args = args
	return call, nil
}

func (p *Parser) lineNumber(tok Token, sign int) (*LineNumber, error) {
	v, err := strconv.Atoi(tok.Value)
	if err != nil {
		return nil, p.errorf(tok, "invalid number %q", tok.Value)
	}
	return &LineNumber{Value: sign * v, pos: tok.Position}, nil
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF, Position: p.endPosition()}
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

func (p *Parser) expect(tokenType TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tokenType {
		return tok, p.errorf(tok, "expected %s, got %s", tokenType, describe(tok))
	}
	return p.advance(), nil
}

func (p *Parser) endPosition() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].Position
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Position: tok.Position, Msg: fmt.Sprintf(format, args...)}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenName, TokenNumber:
		return fmt.Sprintf("%s %q", tok.Type, tok.Value)
	case TokenString:
		return "string " + strconv.Quote(tok.Value)
	default:
		return tok.Type.String()
	}
}
