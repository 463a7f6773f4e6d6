package lang

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjunmahishi/snipq/engine"
)

// languageAliases maps short language hints to engine names.
var languageAliases = map[string]string{
	"js":     "javascript",
	"jsx":    "javascript",
	"ts":     "typescript",
	"py":     "python",
	"golang": "go",
}

// Multi parses with whichever registered grammar the language hint names.
// It claims no extensions, so it is only used when selected by name.
type Multi struct {
	treeOps
}

var _ engine.Engine = (*Multi)(nil)

func init() {
	engine.Register(&Multi{})
}

func (m *Multi) Name() string {
	return "treesitter"
}

func (m *Multi) Extensions() []string {
	return nil
}

func (m *Multi) Parse(ctx context.Context, source []byte, opts engine.ParseOptions) (engine.Tree, error) {
	if opts.Language == "" {
		return nil, &engine.ParseError{Engine: m.Name(), Err: fmt.Errorf("a language hint is required")}
	}

	e, err := grammar(opts.Language)
	if err != nil {
		return nil, &engine.ParseError{Engine: m.Name(), Err: err}
	}
	return e.Parse(ctx, source, opts)
}

// grammar finds the single-grammar engine for a language hint.
func grammar(language string) (*Engine, error) {
	name := strings.ToLower(language)
	if alias, ok := languageAliases[name]; ok {
		name = alias
	}

	if e, ok := engine.Get(name).(*Engine); ok {
		return e, nil
	}
	return nil, fmt.Errorf("unsupported language %q", language)
}
