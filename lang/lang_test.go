package lang

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/stretchr/testify/require"
)

const jsSource = `// greets
// twice
function hello() {
  return 'hello';
}

describe('Client', function () {
  it('should connect', function () {
    connect();
  });
});
`

const pySource = `@app.route("/")
@login_required
def index():
    return "hi"

message = r"""raw"""
`

const goSource = `package main

type Server struct {
	Addr string
}

func (s *Server) Start() error {
	return nil
}
`

func parse(t *testing.T, name, source string) (engine.Engine, engine.Tree) {
	t.Helper()
	e := engine.Get(name)
	require.NotNil(t, e, "engine %s not registered", name)

	tree, err := e.Parse(context.Background(), []byte(source), engine.ParseOptions{})
	require.NoError(t, err)
	return e, tree
}

func text(tree engine.Tree, n engine.Node) string {
	return string(tree.Source()[n.StartByte():n.EndByte()])
}

func TestRegisteredEngines(t *testing.T) {
	for _, name := range []string{"go", "javascript", "python", "treesitter", "tsx", "typescript"} {
		require.NotNil(t, engine.Get(name), name)
	}

	require.Equal(t, "javascript", engine.ByExtension(".jsx").Name())
	require.Equal(t, "typescript", engine.ByExtension(".ts").Name())
	require.Equal(t, "tsx", engine.ByExtension(".tsx").Name())
	require.Equal(t, "python", engine.ByExtension(".py").Name())
	require.Equal(t, "go", engine.ByExtension(".go").Name())
}

func TestFindIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		source  string
		matcher string
		kind    string
		prefix  string
	}{
		{"js function", "javascript", jsSource, "hello", "function_declaration", "function hello()"},
		{"js call", "javascript", jsSource, "connect", "expression_statement", "connect();"},
		{"python decorated function", "python", pySource, "index", "function_definition", "def index():"},
		{"python assignment", "python", pySource, "message", "expression_statement", "message = "},
		{"go type", "go", goSource, "Server", "type_spec", "Server struct"},
		{"go method", "go", goSource, "Start", "method_declaration", "func (s *Server) Start()"},
		{"go field", "go", goSource, "Addr", "field_declaration", "Addr string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, tree := parse(t, tc.engine, tc.source)

			nodes := e.FindIdentifier(tree, e.InitialRoot(tree), tc.matcher)
			require.NotEmpty(t, nodes)
			require.Equal(t, tc.kind, nodes[0].Kind())
			require.True(t, strings.HasPrefix(text(tree, nodes[0]), tc.prefix), text(tree, nodes[0]))
		})
	}
}

func TestFindIdentifierPrefersDefinitions(t *testing.T) {
	source := "log(run);\n\nfunction run() {\n  return 1;\n}\n"
	e, tree := parse(t, "javascript", source)

	nodes := e.FindIdentifier(tree, e.InitialRoot(tree), "run")
	require.Len(t, nodes, 1)
	require.Equal(t, "function_declaration", nodes[0].Kind())
}

func TestFindIdentifierMissing(t *testing.T) {
	e, tree := parse(t, "javascript", jsSource)
	require.Empty(t, e.FindIdentifier(tree, e.InitialRoot(tree), "nope"))
}

func TestFindStringNested(t *testing.T) {
	e, tree := parse(t, "javascript", jsSource)

	outer := e.FindString(tree, e.InitialRoot(tree), "Client")
	require.Len(t, outer, 1)
	require.True(t, strings.HasPrefix(text(tree, outer[0]), "describe('Client'"))

	inner := e.FindString(tree, outer[0], "should connect")
	require.Len(t, inner, 1)
	require.Equal(t, "expression_statement", inner[0].Kind())
	require.True(t, strings.HasPrefix(text(tree, inner[0]), "it('should connect'"))
}

func TestFindStringStripsPrefixes(t *testing.T) {
	e, tree := parse(t, "python", pySource)

	nodes := e.FindString(tree, e.InitialRoot(tree), "raw")
	require.Len(t, nodes, 1)
	require.Equal(t, `message = r"""raw"""`, text(tree, nodes[0]))
}

func TestCommentRange(t *testing.T) {
	e, tree := parse(t, "javascript", jsSource)
	fn := e.FindIdentifier(tree, e.InitialRoot(tree), "hello")[0]

	span := e.CommentRange(tree, fn, true, false)
	require.Equal(t, 0, span.Start)
	require.Equal(t, fn.EndByte(), span.End)
	require.Len(t, span.Nodes, 3)
	require.Equal(t, "comment", span.Nodes[0].Kind())
	require.Equal(t, "function_declaration", span.Nodes[2].Kind())

	none := e.CommentRange(tree, fn, false, false)
	require.Equal(t, fn.StartByte(), none.Start)
	require.Len(t, none.Nodes, 1)
}

func TestCommentRangeStopsAtBlankLine(t *testing.T) {
	source := "// header\n\n// doc\nconst a = 1; // trailing\n"
	e, tree := parse(t, "javascript", source)
	decl := e.FindIdentifier(tree, e.InitialRoot(tree), "a")[0]

	span := e.CommentRange(tree, decl, true, true)
	require.Equal(t, "// doc\nconst a = 1; // trailing", source[span.Start:span.End])
}

func TestDecorators(t *testing.T) {
	e, tree := parse(t, "python", pySource)
	fn := e.FindIdentifier(tree, e.InitialRoot(tree), "index")[0]

	decorators := e.Decorators(tree, fn)
	require.Len(t, decorators, 2)
	require.Equal(t, `@app.route("/")`, text(tree, decorators[0]))
	require.Equal(t, "@login_required", text(tree, decorators[1]))

	span := e.NodeRange(fn)
	require.True(t, strings.HasPrefix(pySource[span.Start:span.End], "def index():"))
}

func TestLineComment(t *testing.T) {
	_, jsTree := parse(t, "javascript", jsSource)
	_, pyTree := parse(t, "python", pySource)

	require.Equal(t, "//", engine.Get("javascript").LineComment(jsTree))
	require.Equal(t, "#", engine.Get("python").LineComment(pyTree))
}

func TestStrictParse(t *testing.T) {
	e := engine.Get("javascript")

	_, err := e.Parse(context.Background(), []byte("function (\n"), engine.ParseOptions{Strict: true})
	var parseErr *engine.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "javascript", parseErr.Engine)

	_, err = e.Parse(context.Background(), []byte("function (\n"), engine.ParseOptions{})
	require.NoError(t, err)
}

func TestMultiEngine(t *testing.T) {
	m := engine.Get("treesitter")

	tree, err := m.Parse(context.Background(), []byte(pySource), engine.ParseOptions{Language: "py"})
	require.NoError(t, err)
	require.Equal(t, "python", tree.Language())
	require.Equal(t, "#", m.LineComment(tree))
	require.NotEmpty(t, m.FindIdentifier(tree, m.InitialRoot(tree), "index"))

	_, err = m.Parse(context.Background(), []byte(pySource), engine.ParseOptions{})
	require.ErrorContains(t, err, "language hint is required")

	_, err = m.Parse(context.Background(), []byte(pySource), engine.ParseOptions{Language: "cobol"})
	require.ErrorContains(t, err, `unsupported language "cobol"`)
}
