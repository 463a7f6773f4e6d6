// Package snipq extracts code snippets from source files with selector
// queries such as `.render`, `'suite' 'case'` or `context(.main, 2, 0)`.
package snipq

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arjunmahishi/snipq/engine"
	_ "github.com/arjunmahishi/snipq/lang" // registers the tree-sitter engines
	"github.com/arjunmahishi/snipq/query"
)

// Extract parses queryText and resolves it against source.
//
// Query syntax errors are reported before source is parsed.
func Extract(ctx context.Context, source []byte, queryText string, opts Options) (*Result, error) {
	nodes, err := query.Parse(queryText)
	if err != nil {
		return nil, err
	}
	return ExtractNodes(ctx, source, nodes, opts)
}

// ExtractNodes resolves an already parsed query against source.
func ExtractNodes(ctx context.Context, source []byte, nodes []query.Node, opts Options) (*Result, error) {
	if len(nodes) == 0 {
		return nil, errors.New("query is required")
	}

	e, err := opts.engine()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tree, err := e.Parse(ctx, source, engine.ParseOptions{Language: opts.Language, Strict: opts.Strict})
	if err != nil {
		return nil, err
	}

	r := newResolver(e, tree, logger)
	root := e.InitialRoot(tree)

	var (
		sels     []selection
		firstErr error
	)
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sel, err := r.resolve(root, n, resolveOpts{})
		if err != nil {
			if !opts.ContinueOnError {
				return nil, err
			}
			logger.Warn("skipping selection", "query", n.String(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sels = append(sels, sel)
	}

	if len(sels) == 0 {
		return nil, firstErr
	}
	return r.assemble(sels, opts), nil
}

func (o Options) engine() (engine.Engine, error) {
	if o.Engine != nil {
		return o.Engine, nil
	}

	name := o.EngineName
	if name == "" {
		name = DefaultEngine
	}
	e := engine.Get(name)
	if e == nil {
		return nil, errors.New(name + " engine not registered")
	}
	return e, nil
}
