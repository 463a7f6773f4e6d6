package snipq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/arjunmahishi/snipq/query"
	"github.com/stretchr/testify/require"
)

const helloSource = "function hello() {\n  return 'hello';\n}\n\nconst bye = () => 'bye';\n"

func TestLineIndex(t *testing.T) {
	idx := newLineIndex([]byte("ab\ncd\n\nef"))

	require.Equal(t, 4, idx.count())
	require.Equal(t, 1, idx.lineOf(0))
	require.Equal(t, 1, idx.lineOf(2))
	require.Equal(t, 2, idx.lineOf(3))
	require.Equal(t, 4, idx.lineOf(9))
	require.Equal(t, 3, idx.start(2))
	require.Equal(t, 5, idx.end(2))
	require.Equal(t, 6, idx.end(3))
	require.Equal(t, 9, idx.end(4))
	require.Equal(t, 2, idx.lastLineOf(3, 6))
	require.Equal(t, 1, idx.clamp(-3))
	require.Equal(t, 4, idx.clamp(10))

	start, end := idx.snap(4, 4)
	require.Equal(t, 3, start)
	require.Equal(t, 5, end)

	trailing := newLineIndex([]byte("ab\n"))
	require.Equal(t, 1, trailing.count())
	require.Equal(t, 2, trailing.end(1))
}

func TestUndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"common indent", "    a\n      b\n    c", "a\n  b\nc"},
		{"blank lines ignored", "  a\n\n  b", "a\n\nb"},
		{"no indent", "a\n  b", "a\n  b"},
		{"tabs", "\ta\n\t\tb", "a\n\tb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, undent(tc.in))
		})
	}
}

func TestExtractErrorTypes(t *testing.T) {
	tests := []struct {
		query  string
		target any
	}{
		{".nope", new(*SelectorNotFoundError)},
		{"42", new(*InvalidLineNumberError)},
		{"shout(.hello)", new(*UnknownOperatorError)},
		{"upto(.hello, 1)", new(*InvalidArgumentError)},
		{"5-1", new(*InvalidRangeError)},
		{".hello (", new(*query.SyntaxError)},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			_, err := Extract(context.Background(), []byte(helloSource), tc.query, Options{})
			require.Error(t, err)
			require.True(t, errors.As(err, tc.target), "%T", err)
		})
	}
}

func TestExtractIsRepeatable(t *testing.T) {
	ctx := context.Background()
	first, err := Extract(ctx, []byte(helloSource), ".hello", Options{})
	require.NoError(t, err)
	second, err := Extract(ctx, []byte(helloSource), ".hello", Options{})
	require.NoError(t, err)

	require.Equal(t, first.Code, second.Code)
	require.Equal(t, first.Start, second.Start)
	require.Equal(t, first.End, second.End)
}

func TestExtractRangesStayInSource(t *testing.T) {
	for _, q := range []string{"1-EOF", "EOF", "context(.bye, 10, 10)", "upto(.hello)", "window(.bye, 3, 1, true)"} {
		res, err := Extract(context.Background(), []byte(helloSource), q, Options{})
		require.NoError(t, err, q)
		require.True(t, 0 <= res.Start && res.Start <= res.End && res.End <= len(helloSource), q)
	}
}

func TestExtractNodes(t *testing.T) {
	nodes, err := query.Parse(".hello")
	require.NoError(t, err)

	res, err := ExtractNodes(context.Background(), []byte(helloSource), nodes, Options{EngineName: "javascript"})
	require.NoError(t, err)
	require.Len(t, res.Nodes, 1)
	require.Equal(t, "function_declaration", res.Nodes[0].Kind())

	_, err = ExtractNodes(context.Background(), []byte(helloSource), nil, Options{})
	require.EqualError(t, err, "query is required")
}

func TestExtractWithEngineInstance(t *testing.T) {
	e := engine.Get("python")
	require.NotNil(t, e)

	res, err := Extract(context.Background(), []byte("def f():\n    pass\n"), ".f", Options{Engine: e})
	require.NoError(t, err)
	require.Equal(t, "def f():\n    pass", res.Code)
}

func TestExtractStrict(t *testing.T) {
	source := []byte("function hello( {\n")

	_, err := Extract(context.Background(), source, "1", Options{Strict: true})
	var parseErr *engine.ParseError
	require.True(t, errors.As(err, &parseErr))

	res, err := Extract(context.Background(), source, "1", Options{})
	require.NoError(t, err)
	require.Equal(t, "function hello( {", res.Code)
}

func TestExtractLogsBacktracking(t *testing.T) {
	source := "describe('a', function () {});\n\ndescribe('b', function () {\n  it('x', function () {});\n});\n"

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := Extract(context.Background(), []byte(source), ".describe 'x'", Options{Logger: logger})
	require.NoError(t, err)
	require.Equal(t, "  it('x', function () {});", res.Code)
	require.Contains(t, buf.String(), `"msg":"backtracking"`)
}

func TestExtractContinueOnErrorLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res, err := Extract(context.Background(), []byte(helloSource), ".nope, .bye", Options{
		ContinueOnError: true,
		Logger:          logger,
	})
	require.NoError(t, err)
	require.Equal(t, "const bye = () => 'bye';", res.Code)
	require.Contains(t, buf.String(), "skipping selection")
}

func TestResultJSON(t *testing.T) {
	res, err := Extract(context.Background(), []byte(helloSource), ".bye", Options{})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	require.ElementsMatch(t, []string{"code", "start", "end", "start_line", "end_line", "disjoint"}, keys(fields))
	require.Equal(t, float64(5), fields["start_line"])
}

func TestExtractCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, []byte(helloSource), ".hello", Options{})
	require.Error(t, err)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestContextNegativeKeepsNewlines(t *testing.T) {
	tests := []struct {
		query      string
		code       string
		start, end int
	}{
		{"context(.hello, -1, -1)", "\n  return 'hello';\n", 18, 37},
		{"context(.hello, -1, 0)", "\n  return 'hello';\n}", 18, 38},
		{"context(.hello, 0, -1)", "function hello() {\n  return 'hello';\n", 0, 37},
		{"context(.hello, 1, 1)", "function hello() {\n  return 'hello';\n}\n", 0, 39},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			res, err := Extract(context.Background(), []byte(helloSource), tc.query, Options{})
			require.NoError(t, err)
			require.Equal(t, tc.code, res.Code)
			require.Equal(t, tc.start, res.Start)
			require.Equal(t, tc.end, res.End)
		})
	}
}

func TestGapFillerDisabled(t *testing.T) {
	res, err := Extract(context.Background(), []byte(helloSource), "1, 5", Options{})
	require.NoError(t, err)
	require.True(t, res.Disjoint)
	require.Equal(t, "function hello() {\n// ...\nconst bye = () => 'bye';", res.Code)

	res, err = Extract(context.Background(), []byte(helloSource), "1, 5", Options{DisableGapFiller: true})
	require.NoError(t, err)
	require.False(t, res.Disjoint)
	require.Equal(t, "function hello() {const bye = () => 'bye';", res.Code)
	require.Equal(t, 1, res.StartLine)
	require.Equal(t, 5, res.EndLine)

	res, err = Extract(context.Background(), []byte(helloSource), "1, 2", Options{DisableGapFiller: true})
	require.NoError(t, err)
	require.Equal(t, "function hello() {\n  return 'hello';", res.Code)
}

func TestRangeEndSkipsEarlierMatches(t *testing.T) {
	src := "function b() {}\nfunction a() {}\nfunction b() {}\n"

	res, err := Extract(context.Background(), []byte(src), ".a-.b", Options{})
	require.NoError(t, err)
	require.Equal(t, "function a() {}\nfunction b() {}", res.Code)
	require.Equal(t, 2, res.StartLine)
	require.Equal(t, 3, res.EndLine)

	res, err = Extract(context.Background(), []byte("b = 1; a = 2\nb = 3\n"), ".a-.b", Options{EngineName: "python"})
	require.NoError(t, err)
	require.Equal(t, "b = 1; a = 2\nb = 3", res.Code)
}
