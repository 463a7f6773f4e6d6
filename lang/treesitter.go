// Package lang implements selector engines on top of tree-sitter grammars.
//
// Importing the package registers one engine per grammar (javascript,
// typescript, tsx, python, go) plus the multi-language "treesitter" engine,
// which picks the grammar from the language hint.
package lang

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/arjunmahishi/snipq/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// kindClass is the role a grammar's node kind plays during selection.
// Kinds missing from a profile are classOther and are only walked through.
type kindClass int

const (
	classOther kindClass = iota
	classIdentifier
	classString
	classStatement // declarations and statements returned by the finders
	classComment
	classDecorator
	classWrapper  // wraps a declaration with modifiers: export, decorated_definition
	classAccessor // member access whose property names what is being defined
	classList     // expression/pattern lists on the left of an assignment
)

// definingFields are the fields under which an identifier names the
// surrounding construct rather than merely referencing it.
var definingFields = []string{"name", "key", "left", "function", "constructor", "property", "label"}

// accessorFields are the fields of an accessor holding the accessed name.
var accessorFields = []string{"property", "attribute", "field"}

// profile describes one grammar.
type profile struct {
	name        string
	extensions  []string
	language    func() *sitter.Language
	lineComment string
	kinds       map[string]kindClass

	// quotes are string delimiters, longest first.
	quotes []string
	// prefixes are letters that may precede a string's opening quote.
	prefixes string
}

func (p *profile) class(n *sitter.Node) kindClass {
	return p.kinds[n.Type()]
}

// stringContent strips prefixes and delimiters from a literal's source text.
func (p *profile) stringContent(text string) string {
	text = strings.TrimLeft(text, p.prefixes)
	for _, q := range p.quotes {
		if len(text) >= 2*len(q) && strings.HasPrefix(text, q) && strings.HasSuffix(text, q) {
			return text[len(q) : len(text)-len(q)]
		}
	}
	return text
}

// defines reports whether identifier n names the construct it sits in.
func (p *profile) defines(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	switch p.class(parent) {
	case classAccessor:
		for _, field := range accessorFields {
			if isField(parent, n, field) {
				return p.defines(parent)
			}
		}
		return false
	case classList:
		return p.defines(parent)
	}

	for _, field := range definingFields {
		if isField(parent, n, field) {
			return true
		}
	}
	return false
}

// enclosing climbs from n to the nearest statement strictly below scope. When
// there is none it returns the ancestor of n directly below scope.
func (p *profile) enclosing(n, scope *sitter.Node) *sitter.Node {
	top := n
	for cur := n.Parent(); cur != nil && !same(cur, scope); cur = cur.Parent() {
		if p.class(cur) == classStatement {
			return cur
		}
		top = cur
	}
	return top
}

// Engine is a single-grammar engine.
type Engine struct {
	treeOps
	profile *profile
	parser  *parser.Parser
}

var _ engine.Engine = (*Engine)(nil)

func newEngine(p *profile) *Engine {
	return &Engine{
		profile: p,
		parser:  parser.New(p.name, p.language(), parser.DefaultCacheSize),
	}
}

func (e *Engine) Name() string {
	return e.profile.name
}

func (e *Engine) Extensions() []string {
	return e.profile.extensions
}

// Parse parses source. The language hint is ignored.
func (e *Engine) Parse(ctx context.Context, source []byte, opts engine.ParseOptions) (engine.Tree, error) {
	tr, err := e.parser.Parse(ctx, source)
	if err != nil {
		return nil, &engine.ParseError{Engine: e.Name(), Err: err}
	}

	root := tr.RootNode()
	if opts.Strict && root.HasError() {
		return nil, &engine.ParseError{Engine: e.Name(), Err: firstSyntaxError(root)}
	}

	return &tree{tree: tr, source: source, profile: e.profile}, nil
}

// treeOps implements the tree-facing half of engine.Engine. The grammar
// profile travels with the tree and its nodes, so single and multi-language
// engines share it.
type treeOps struct{}

func (treeOps) InitialRoot(t engine.Tree) engine.Node {
	return t.Root()
}

func (treeOps) FindIdentifier(t engine.Tree, scope engine.Node, matcher string) []engine.Node {
	tr, sc := unwrapTree(t), unwrap(scope)
	if tr == nil || sc == nil {
		return nil
	}

	var defining, refs []*sitter.Node
	walk(sc, func(n *sitter.Node) bool {
		if same(n, sc) || tr.profile.class(n) != classIdentifier {
			return true
		}
		if n.Content(tr.source) != matcher {
			return true
		}

		target := tr.profile.enclosing(n, sc)
		if tr.profile.defines(n) {
			defining = append(defining, target)
		} else {
			refs = append(refs, target)
		}
		return true
	})

	// Plain references only count when nothing below scope is named matcher.
	if len(defining) == 0 {
		defining = refs
	}
	return tr.wrapAll(inSourceOrder(defining))
}

func (treeOps) FindString(t engine.Tree, scope engine.Node, matcher string) []engine.Node {
	tr, sc := unwrapTree(t), unwrap(scope)
	if tr == nil || sc == nil {
		return nil
	}

	var found []*sitter.Node
	walk(sc, func(n *sitter.Node) bool {
		if same(n, sc) || tr.profile.class(n) != classString {
			return true
		}
		if tr.profile.stringContent(n.Content(tr.source)) == matcher {
			found = append(found, tr.profile.enclosing(n, sc))
		}
		return false
	})
	return tr.wrapAll(inSourceOrder(found))
}

func (treeOps) NodeRange(nd engine.Node) engine.Span {
	v, ok := nd.(node)
	if !ok {
		return engine.Span{Start: nd.StartByte(), End: nd.EndByte()}
	}

	start := v.n.StartByte()
	for i := 0; i < int(v.n.ChildCount()); i++ {
		child := v.n.Child(i)
		if v.profile.class(child) != classDecorator {
			start = child.StartByte()
			break
		}
	}
	return engine.Span{Start: int(start), End: int(v.n.EndByte())}
}

func (treeOps) CommentRange(t engine.Tree, nd engine.Node, leading, trailing bool) engine.CommentSpan {
	tr, n := unwrapTree(t), unwrap(nd)
	if tr == nil || n == nil {
		return engine.CommentSpan{Nodes: []engine.Node{nd}, Start: nd.StartByte(), End: nd.EndByte()}
	}

	anchor := n
	for parent := anchor.Parent(); parent != nil && tr.profile.class(parent) == classWrapper; parent = parent.Parent() {
		anchor = parent
	}

	start, end := anchor.StartByte(), anchor.EndByte()
	var before, after []*sitter.Node

	if leading {
		for prev := anchor.PrevNamedSibling(); prev != nil && tr.profile.class(prev) == classComment; prev = prev.PrevNamedSibling() {
			gap := string(tr.source[prev.EndByte():start])
			if strings.Count(gap, "\n") > 1 || strings.TrimSpace(gap) != "" {
				break
			}
			// A comment sharing its line with earlier code belongs to that code.
			if !startsLine(tr.source, int(prev.StartByte())) {
				break
			}
			before = append(before, prev)
			start = prev.StartByte()
		}
	}

	if trailing {
		if next := anchor.NextNamedSibling(); next != nil && tr.profile.class(next) == classComment {
			gap := string(tr.source[end:next.StartByte()])
			if !strings.Contains(gap, "\n") && strings.TrimSpace(gap) == "" {
				after = append(after, next)
				end = next.EndByte()
			}
		}
	}

	nodes := make([]*sitter.Node, 0, len(before)+len(after)+1)
	for i := len(before) - 1; i >= 0; i-- {
		nodes = append(nodes, before[i])
	}
	nodes = append(nodes, n)
	nodes = append(nodes, after...)

	return engine.CommentSpan{
		Nodes: tr.wrapAll(nodes),
		Start: int(start),
		End:   int(end),
	}
}

func (treeOps) Decorators(t engine.Tree, nd engine.Node) []engine.Node {
	tr, n := unwrapTree(t), unwrap(nd)
	if tr == nil || n == nil {
		return nil
	}

	var decorators []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if tr.profile.class(child) != classDecorator {
			break
		}
		decorators = append(decorators, child)
	}

	anchor := n
	for parent := anchor.Parent(); parent != nil && tr.profile.class(parent) == classWrapper; parent = parent.Parent() {
		for i := 0; i < int(parent.NamedChildCount()); i++ {
			if child := parent.NamedChild(i); tr.profile.class(child) == classDecorator {
				decorators = append(decorators, child)
			}
		}
		anchor = parent
	}

	for prev := anchor.PrevNamedSibling(); prev != nil && tr.profile.class(prev) == classDecorator; prev = prev.PrevNamedSibling() {
		decorators = append(decorators, prev)
	}

	return tr.wrapAll(inSourceOrder(decorators))
}

func (treeOps) LineComment(t engine.Tree) string {
	if tr := unwrapTree(t); tr != nil {
		return tr.profile.lineComment
	}
	return "//"
}

// tree is the engine.Tree handed out by tree-sitter engines.
type tree struct {
	tree    *sitter.Tree
	source  []byte
	profile *profile
}

func (t *tree) Root() engine.Node {
	return node{n: t.tree.RootNode(), profile: t.profile}
}

func (t *tree) Source() []byte {
	return t.source
}

func (t *tree) Language() string {
	return t.profile.name
}

func (t *tree) wrapAll(nodes []*sitter.Node) []engine.Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]engine.Node, len(nodes))
	for i, n := range nodes {
		out[i] = node{n: n, profile: t.profile}
	}
	return out
}

// node adapts a tree-sitter node to engine.Node.
type node struct {
	n       *sitter.Node
	profile *profile
}

func (v node) Kind() string   { return v.n.Type() }
func (v node) StartByte() int { return int(v.n.StartByte()) }
func (v node) EndByte() int   { return int(v.n.EndByte()) }

func (v node) Children() []engine.Node {
	count := int(v.n.NamedChildCount())
	children := make([]engine.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node{n: v.n.NamedChild(i), profile: v.profile})
	}
	return children
}

func unwrap(n engine.Node) *sitter.Node {
	if v, ok := n.(node); ok {
		return v.n
	}
	return nil
}

func unwrapTree(t engine.Tree) *tree {
	if v, ok := t.(*tree); ok {
		return v
	}
	return nil
}

// walk visits n and its named descendants depth first, in source order.
// Returning false from visitor skips the node's children.
func walk(n *sitter.Node, visitor func(*sitter.Node) bool) {
	if n == nil || !visitor(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), visitor)
	}
}

func same(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func isField(parent, child *sitter.Node, field string) bool {
	n := parent.ChildByFieldName(field)
	return n != nil && same(n, child)
}

// inSourceOrder removes duplicates and sorts by start offset. Enclosing nodes
// come before the nodes they contain.
func inSourceOrder(nodes []*sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, len(nodes))
	for _, n := range nodes {
		dup := false
		for _, seen := range out {
			if same(seen, n) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, n)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartByte() != out[j].StartByte() {
			return out[i].StartByte() < out[j].StartByte()
		}
		return out[i].EndByte() > out[j].EndByte()
	})
	return out
}

func startsLine(source []byte, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch source[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// firstSyntaxError locates the first error or missing node below root.
func firstSyntaxError(root *sitter.Node) error {
	var found *sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if found != nil || n == nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)

	if found == nil {
		return fmt.Errorf("syntax error")
	}
	p := found.StartPoint()
	return fmt.Errorf("syntax error at line %d, column %d", p.Row+1, p.Column+1)
}
