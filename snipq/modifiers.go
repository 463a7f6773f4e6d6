package snipq

import (
	"fmt"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/arjunmahishi/snipq/query"
)

// Operators lists the modifier calls a query may use.
var Operators = []string{
	"after",
	"choose",
	"comments",
	"context",
	"decorators",
	"firstLineOf",
	"lastLineOf",
	"upto",
	"window",
}

func (r *resolver) call(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	switch c.Callee {
	case "choose":
		return r.choose(scope, c, opts)
	case "after":
		return r.after(scope, c, opts)
	case "context":
		return r.context(scope, c, opts)
	case "window":
		return r.window(scope, c, opts)
	case "firstLineOf":
		return r.edgeLine(scope, c, opts, false)
	case "lastLineOf":
		return r.edgeLine(scope, c, opts, true)
	case "upto":
		return r.upto(scope, c, opts)
	case "comments":
		return r.comments(scope, c, opts)
	case "decorators":
		return r.decorators(scope, c, opts)
	default:
		return selection{}, &UnknownOperatorError{Callee: c.Callee}
	}
}

// choose(sel, n) resolves sel picking its n-th (0-based) candidate.
func (r *resolver) choose(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if err := arity(c, 2, 2); err != nil {
		return selection{}, err
	}
	n, err := intArg(c, 1)
	if err != nil {
		return selection{}, err
	}
	if n < 0 {
		return selection{}, &InvalidArgumentError{Callee: c.Callee, Index: 1, Reason: "index must not be negative"}
	}

	opts.nodeIdx, opts.hasNodeIdx = n, true
	return r.subject(scope, c, opts)
}

// after(sel, goalpost) resolves sel among the candidates starting at or after
// the end of goalpost.
func (r *resolver) after(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if err := arity(c, 2, 2); err != nil {
		return selection{}, err
	}
	if _, ok := c.Args[1].(*query.Flag); ok {
		return selection{}, &InvalidArgumentError{Callee: c.Callee, Index: 1, Reason: "expected a selection"}
	}

	goalpost, err := r.resolve(scope, c.Args[1], resolveOpts{after: opts.after, hasAfter: opts.hasAfter})
	if err != nil {
		return selection{}, err
	}

	opts.after, opts.hasAfter = goalpost.end, true
	return r.subject(scope, c, opts)
}

// context(sel, before[, after]) moves the edges of sel by whole lines.
// Positive values grow the selection to whole lines, newline excluded.
// Negative values shrink it and keep the newline at each cut: the start stays
// on the newline ending the last dropped line, the end stays just past the
// newline of the last kept line.
func (r *resolver) context(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if err := arity(c, 2, 3); err != nil {
		return selection{}, err
	}
	before, err := intArg(c, 1)
	if err != nil {
		return selection{}, err
	}
	after := before
	if len(c.Args) == 3 {
		if after, err = intArg(c, 2); err != nil {
			return selection{}, err
		}
	}

	sel, err := r.subject(scope, c, opts)
	if err != nil {
		return selection{}, err
	}

	first, last := r.lines.lineOf(sel.start), r.lines.lastLineOf(sel.start, sel.end)
	switch {
	case before > 0:
		sel.start = r.lines.start(r.lines.clamp(first - before))
	case before < 0:
		sel.start = r.lines.end(r.lines.clamp(first - before - 1))
	}
	switch {
	case after > 0:
		sel.end = r.lines.end(r.lines.clamp(last + after))
	case after < 0:
		sel.end = min(r.lines.end(r.lines.clamp(last+after))+1, len(r.source))
	}
	sel.end = max(sel.end, sel.start)
	return sel, nil
}

// window(sel, from, to[, reverse]) selects lines relative to the first line of
// sel, or to its last line counting upwards when reverse is set. A zero `to`
// selects the single line `from`.
func (r *resolver) window(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if err := arity(c, 3, 4); err != nil {
		return selection{}, err
	}
	from, err := intArg(c, 1)
	if err != nil {
		return selection{}, err
	}
	to, err := intArg(c, 2)
	if err != nil {
		return selection{}, err
	}
	reverse := false
	if len(c.Args) == 4 {
		if reverse, err = flagArg(c, 3); err != nil {
			return selection{}, err
		}
	}

	sel, err := r.subject(scope, c, opts)
	if err != nil {
		return selection{}, err
	}
	return r.lineWindow(sel, from, to, reverse), nil
}

func (r *resolver) edgeLine(scope engine.Node, c *query.Call, opts resolveOpts, last bool) (selection, error) {
	if err := arity(c, 1, 1); err != nil {
		return selection{}, err
	}
	sel, err := r.subject(scope, c, opts)
	if err != nil {
		return selection{}, err
	}
	return r.lineWindow(sel, 0, 0, last), nil
}

func (r *resolver) lineWindow(sel selection, from, to int, reverse bool) selection {
	if to == 0 {
		to = from
	}

	var first, last int
	if reverse {
		anchor := r.lines.lastLineOf(sel.start, sel.end)
		first, last = anchor-from, anchor-to
	} else {
		anchor := r.lines.lineOf(sel.start)
		first, last = anchor+from, anchor+to
	}
	if first > last {
		first, last = last, first
	}

	sel.start = r.lines.start(r.lines.clamp(first))
	sel.end = r.lines.end(r.lines.clamp(last))
	return sel
}

// upto(sel) is the empty range just before sel, whitespace before it dropped.
func (r *resolver) upto(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if err := arity(c, 1, 1); err != nil {
		return selection{}, err
	}
	sel, err := r.subject(scope, c, opts)
	if err != nil {
		return selection{}, err
	}

	pos := sel.start
	for pos > 0 && isSpace(r.source[pos-1]) {
		pos--
	}
	return selection{start: pos, end: pos}, nil
}

// comments(sel[, trailing]) extends sel over the comment block above it and,
// with trailing, the comment after it on the same line.
func (r *resolver) comments(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if err := arity(c, 1, 2); err != nil {
		return selection{}, err
	}
	trailing := false
	if len(c.Args) == 2 {
		var err error
		if trailing, err = flagArg(c, 1); err != nil {
			return selection{}, err
		}
	}

	sel, err := r.subject(scope, c, opts)
	if err != nil {
		return selection{}, err
	}
	if len(sel.nodes) == 0 {
		return selection{}, &InvalidArgumentError{Callee: c.Callee, Index: 0, Reason: "expected a selector"}
	}

	span := r.engine.CommentRange(r.tree, sel.nodes[0], true, trailing)
	start, end := r.lines.snap(span.Start, span.End)
	sel.start = min(sel.start, start)
	sel.end = max(sel.end, end)
	sel.nodes = append(append([]engine.Node(nil), span.Nodes...), sel.nodes[1:]...)
	return sel, nil
}

// decorators(sel) extends sel back over the decorators of its node.
func (r *resolver) decorators(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if err := arity(c, 1, 1); err != nil {
		return selection{}, err
	}
	sel, err := r.subject(scope, c, opts)
	if err != nil {
		return selection{}, err
	}
	if len(sel.nodes) == 0 {
		return selection{}, &InvalidArgumentError{Callee: c.Callee, Index: 0, Reason: "expected a selector"}
	}

	decorators := r.engine.Decorators(r.tree, sel.nodes[0])
	if len(decorators) == 0 {
		return sel, nil
	}

	sel.start = min(sel.start, r.lines.start(r.lines.lineOf(decorators[0].StartByte())))
	sel.nodes = append(decorators, sel.nodes...)
	return sel, nil
}

// subject resolves the first argument of a call.
func (r *resolver) subject(scope engine.Node, c *query.Call, opts resolveOpts) (selection, error) {
	if _, ok := c.Args[0].(*query.Flag); ok {
		return selection{}, &InvalidArgumentError{Callee: c.Callee, Index: 0, Reason: "expected a selection"}
	}
	return r.resolve(scope, c.Args[0], opts)
}

func arity(c *query.Call, least, most int) error {
	n := len(c.Args)
	if n >= least && n <= most {
		return nil
	}

	want := fmt.Sprintf("%d to %d arguments", least, most)
	switch {
	case least == most && least == 1:
		want = "1 argument"
	case least == most:
		want = fmt.Sprintf("%d arguments", least)
	}
	return &InvalidArgumentError{Callee: c.Callee, Index: -1, Reason: fmt.Sprintf("expected %s, got %d", want, n)}
}

func intArg(c *query.Call, i int) (int, error) {
	if n, ok := c.Args[i].(*query.LineNumber); ok && !n.EOF {
		return n.Value, nil
	}
	return 0, &InvalidArgumentError{Callee: c.Callee, Index: i, Reason: "expected a number, got " + c.Args[i].String()}
}

func flagArg(c *query.Call, i int) (bool, error) {
	if f, ok := c.Args[i].(*query.Flag); ok {
		return f.Value, nil
	}
	return false, &InvalidArgumentError{Callee: c.Callee, Index: i, Reason: "expected true or false, got " + c.Args[i].String()}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
