package snipq

import (
	"strings"

	"github.com/arjunmahishi/snipq/engine"
)

// Result is the code extracted by a query.
type Result struct {
	// Code is the selected source, with gap fillers between distant parts.
	Code string `json:"code"`

	// Nodes are the tree nodes the selections resolved to.
	Nodes []engine.Node `json:"-"`

	// Start and End are the byte offsets covering every selection.
	Start int `json:"start"`
	End   int `json:"end"`

	// StartLine and EndLine are 1-indexed.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// Disjoint is set when a gap filler was placed between selections.
	Disjoint bool `json:"disjoint"`
}

// assemble joins selections in query order.
func (r *resolver) assemble(sels []selection, opts Options) *Result {
	filler := opts.GapFiller
	if filler == "" {
		filler = "\n" + r.engine.LineComment(r.tree) + " ...\n"
	}

	var (
		sb  strings.Builder
		res Result
	)
	for i, sel := range sels {
		startLine, endLine := r.lines.lineOf(sel.start), r.lines.lastLineOf(sel.start, sel.end)

		if i == 0 {
			res.Start, res.End = sel.start, sel.end
			res.StartLine, res.EndLine = startLine, endLine
		} else {
			switch {
			case startLine > res.EndLine+1 && !opts.DisableGapFiller:
				res.Disjoint = true
				sb.WriteString(filler)
			case startLine == res.EndLine+1:
				sb.WriteString("\n")
			}

			res.Start = min(res.Start, sel.start)
			res.End = max(res.End, sel.end)
			res.StartLine = min(res.StartLine, startLine)
			res.EndLine = max(res.EndLine, endLine)
		}

		sb.Write(r.source[sel.start:sel.end])
		res.Nodes = append(res.Nodes, sel.nodes...)
	}

	res.Code = sb.String()
	if opts.Undent {
		res.Code = undent(res.Code)
	}
	return &res
}

// undent removes the longest run of leading whitespace shared by every
// non-blank line.
func undent(code string) string {
	lines := strings.Split(code, "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return code
	}

	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
