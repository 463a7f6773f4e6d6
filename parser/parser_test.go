package parser

import (
	"context"
	"testing"

	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"
)

func TestParseCachesTrees(t *testing.T) {
	p := New("javascript", javascript.GetLanguage(), 2)
	ctx := context.Background()

	first, err := p.Parse(ctx, []byte("const a = 1;\n"))
	require.NoError(t, err)
	require.Equal(t, "program", first.RootNode().Type())
	require.Equal(t, 1, p.Cached())

	again, err := p.Parse(ctx, []byte("const a = 1;\n"))
	require.NoError(t, err)
	require.Same(t, first, again)
	require.Equal(t, 1, p.Cached())

	_, err = p.Parse(ctx, []byte("const b = 2;\n"))
	require.NoError(t, err)
	_, err = p.Parse(ctx, []byte("const c = 3;\n"))
	require.NoError(t, err)
	require.Equal(t, 2, p.Cached())
}

func TestParseWithoutCache(t *testing.T) {
	p := New("javascript", javascript.GetLanguage(), 0)

	tree, err := p.Parse(context.Background(), []byte("let x;\n"))
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Equal(t, 0, p.Cached())
	require.Equal(t, "javascript", p.Name())
}
