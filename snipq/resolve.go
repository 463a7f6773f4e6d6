package snipq

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/arjunmahishi/snipq/query"
)

// selection is a resolved byte range together with the nodes it came from.
// Line-based selections carry no nodes.
type selection struct {
	start int
	end   int
	nodes []engine.Node
}

// resolveOpts is context injected by choose() and after() before a selector
// is resolved. It is passed by value so siblings never see each other's.
type resolveOpts struct {
	after      int
	hasAfter   bool
	nodeIdx    int
	hasNodeIdx bool
}

// resolver evaluates query nodes against one parsed tree.
type resolver struct {
	engine engine.Engine
	tree   engine.Tree
	source []byte
	lines  *lineIndex
	logger *slog.Logger
}

func newResolver(e engine.Engine, tree engine.Tree, logger *slog.Logger) *resolver {
	return &resolver{
		engine: e,
		tree:   tree,
		source: tree.Source(),
		lines:  newLineIndex(tree.Source()),
		logger: logger,
	}
}

func (r *resolver) resolve(scope engine.Node, q query.Node, opts resolveOpts) (selection, error) {
	switch n := q.(type) {
	case *query.Identifier:
		candidates := r.engine.FindIdentifier(r.tree, scope, n.Matcher)
		return r.selector(q, n.Children, candidates, opts)
	case *query.StringLiteral:
		candidates := r.engine.FindString(r.tree, scope, n.Matcher)
		return r.selector(q, n.Children, candidates, opts)
	case *query.Range:
		return r.rangeOf(scope, n, opts)
	case *query.LineNumber:
		return r.line(n)
	case *query.Call:
		return r.call(scope, n, opts)
	default:
		return selection{}, &query.SyntaxError{Position: q.Position(), Msg: q.String() + " is not a selection"}
	}
}

// resolveList resolves every node in scope and returns the smallest range
// covering them all.
func (r *resolver) resolveList(scope engine.Node, list []query.Node, opts resolveOpts) (selection, error) {
	var out selection
	for i, q := range list {
		sel, err := r.resolve(scope, q, opts)
		if err != nil {
			return selection{}, err
		}
		if i == 0 {
			out = sel
			continue
		}
		out.start = min(out.start, sel.start)
		out.end = max(out.end, sel.end)
		out.nodes = append(out.nodes, sel.nodes...)
	}
	return out, nil
}

func (r *resolver) selector(q query.Node, children []query.Node, candidates []engine.Node, opts resolveOpts) (selection, error) {
	notFound := &SelectorNotFoundError{Query: selectorText(q)}

	if opts.hasAfter {
		var kept []engine.Node
		for _, c := range candidates {
			if r.engine.NodeRange(c).Start >= opts.after {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	r.logger.Debug("resolved selector candidates", "selector", notFound.Query, "candidates", len(candidates))
	if len(candidates) == 0 {
		return selection{}, notFound
	}

	if len(children) == 0 {
		picked := candidates[0]
		if opts.hasNodeIdx && !opts.hasAfter {
			if opts.nodeIdx < 0 || opts.nodeIdx >= len(candidates) {
				return selection{}, notFound
			}
			picked = candidates[opts.nodeIdx]
		}

		span := r.engine.NodeRange(picked)
		start, end := r.lines.snap(span.Start, span.End)
		return selection{start: start, end: end, nodes: []engine.Node{picked}}, nil
	}

	// choose() applies to the innermost selector, after() only to this one.
	childOpts := resolveOpts{nodeIdx: opts.nodeIdx, hasNodeIdx: opts.hasNodeIdx}

	var err error = notFound
	for i, c := range candidates {
		var sel selection
		sel, err = r.resolveList(c, children, childOpts)
		if err == nil {
			return sel, nil
		}

		var nf *SelectorNotFoundError
		if !errors.As(err, &nf) {
			return selection{}, err
		}
		r.logger.Debug("backtracking", "selector", notFound.Query, "candidate", i, "error", err)
	}
	return selection{}, err
}

func (r *resolver) rangeOf(scope engine.Node, n *query.Range, opts resolveOpts) (selection, error) {
	start, err := r.resolve(scope, n.Start, opts)
	if err != nil {
		return selection{}, err
	}

	endOpts := opts
	endOpts.after, endOpts.hasAfter = r.anchor(start), true
	end, err := r.resolve(scope, n.End, endOpts)
	if err != nil {
		return selection{}, err
	}

	if end.end < start.start {
		return selection{}, &InvalidRangeError{Start: start.start, End: end.end}
	}

	nodes := append(append([]engine.Node(nil), start.nodes...), end.nodes...)
	return selection{start: start.start, end: end.end, nodes: nodes}, nil
}

// anchor is where a range end may begin: the earliest node of sel, or its
// start for line-based selections. Line snapping is ignored so that a node
// earlier on the same line never ends the range.
func (r *resolver) anchor(sel selection) int {
	if len(sel.nodes) == 0 {
		return sel.start
	}
	at := r.engine.NodeRange(sel.nodes[0]).Start
	for _, n := range sel.nodes[1:] {
		at = min(at, r.engine.NodeRange(n).Start)
	}
	return at
}

func (r *resolver) line(n *query.LineNumber) (selection, error) {
	if n.EOF {
		return selection{start: len(r.source), end: len(r.source)}, nil
	}
	if n.Value < 1 || n.Value > r.lines.count() {
		return selection{}, &InvalidLineNumberError{Line: n.Value}
	}
	return selection{start: r.lines.start(n.Value), end: r.lines.end(n.Value)}, nil
}

// selectorText renders the head of a selector for error messages.
func selectorText(q query.Node) string {
	switch n := q.(type) {
	case *query.Identifier:
		return "." + n.Matcher
	case *query.StringLiteral:
		return strconv.Quote(n.Matcher)
	}
	return q.String()
}
