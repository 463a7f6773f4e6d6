// Package parser provides tree-sitter parsing with a cache of recent trees.
package parser

import (
	"context"
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

// DefaultCacheSize is the number of trees kept per grammar.
const DefaultCacheSize = 32

// Parser parses source with one tree-sitter grammar. Trees are cached by a
// digest of the source, so asking twice for the same text parses once.
type Parser struct {
	name  string
	lang  *sitter.Language
	cache *lru.Cache[[sha256.Size]byte, *sitter.Tree]
}

// New creates a Parser for the given grammar. A cacheSize of zero or less
// disables caching.
func New(name string, language *sitter.Language, cacheSize int) *Parser {
	p := &Parser{
		name: name,
		lang: language,
	}
	if cacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		p.cache, _ = lru.New[[sha256.Size]byte, *sitter.Tree](cacheSize)
	}
	return p
}

// Name returns the grammar name the parser was created with.
func (p *Parser) Name() string {
	return p.name
}

// Parse parses source and returns the syntax tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	key := sha256.Sum256(source)
	if p.cache != nil {
		if tree, ok := p.cache.Get(key); ok {
			return tree, nil
		}
	}

	sp := sitter.NewParser()
	sp.SetLanguage(p.lang)

	tree, err := sp.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.name, err)
	}

	if p.cache != nil {
		p.cache.Add(key, tree)
	}
	return tree, nil
}

// Cached returns the number of trees currently held in the cache.
func (p *Parser) Cached() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}
