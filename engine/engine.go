// Package engine defines the contract between the selector resolver and the
// language backends that parse source code.
package engine

import (
	"context"
	"fmt"
)

// Span is a half-open byte range [Start, End) in the source.
type Span struct {
	Start int
	End   int
}

// Node is the backend-neutral view of a parse tree node.
type Node interface {
	// Kind returns the backend's name for the node type (e.g. "function_declaration").
	Kind() string

	StartByte() int
	EndByte() int

	// Children returns the named children in source order.
	Children() []Node
}

// Tree is a parsed source file.
type Tree interface {
	Root() Node
	Source() []byte

	// Language is the grammar that produced the tree (e.g. "python").
	Language() string
}

// CommentSpan is a node range widened to its adjoining comments.
type CommentSpan struct {
	// Nodes holds the comment nodes followed by the node itself, in source order.
	Nodes []Node
	Start int
	End   int
}

// ParseOptions configures Engine.Parse.
type ParseOptions struct {
	// Language selects a grammar on engines that handle several languages.
	// Single-language engines ignore it.
	Language string

	// Strict turns syntax errors in the source into a ParseError instead of
	// returning a partially recovered tree.
	Strict bool
}

// Engine is implemented by every language backend.
//
// Engines are not safe for overlapping use on the same Tree.
type Engine interface {
	// Name returns the engine identifier (e.g. "javascript").
	Name() string

	// Extensions returns the file extensions the engine handles (e.g. [".js"]).
	Extensions() []string

	// Parse builds a tree for source. Failures are reported as *ParseError.
	Parse(ctx context.Context, source []byte, opts ParseOptions) (Tree, error)

	// InitialRoot returns the node top-level selectors are searched under.
	InitialRoot(tree Tree) Node

	// FindIdentifier returns the declarations or statements below scope that
	// carry an identifier equal to matcher, in source order.
	FindIdentifier(tree Tree, scope Node, matcher string) []Node

	// FindString returns the statements below scope holding a string literal
	// whose contents equal matcher, in source order.
	FindString(tree Tree, scope Node, matcher string) []Node

	// NodeRange returns the bytes a node spans, leading decorators excluded.
	NodeRange(node Node) Span

	// CommentRange widens node to the comments directly above it (leading) and
	// on the same line after it (trailing).
	CommentRange(tree Tree, node Node, leading, trailing bool) CommentSpan

	// Decorators returns the decorators attached to node, in source order.
	Decorators(tree Tree, node Node) []Node

	// LineComment returns the line comment prefix for the tree's language.
	LineComment(tree Tree) string
}

// ParseError reports that a backend could not produce a tree.
type ParseError struct {
	Engine string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse failed: %v", e.Engine, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
