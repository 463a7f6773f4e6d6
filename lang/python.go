package lang

import (
	"github.com/arjunmahishi/snipq/engine"
	"github.com/smacker/go-tree-sitter/python"
)

var pythonProfile = &profile{
	name:        "python",
	extensions:  []string{".py", ".pyi"},
	language:    python.GetLanguage,
	lineComment: "#",
	quotes:      []string{`"""`, "'''", `"`, "'"},
	prefixes:    "rRbBuUfF",
	kinds: map[string]kindClass{
		"identifier": classIdentifier,

		"string": classString,

		"function_definition":   classStatement,
		"class_definition":      classStatement,
		"expression_statement":  classStatement,
		"return_statement":      classStatement,
		"if_statement":          classStatement,
		"for_statement":         classStatement,
		"while_statement":       classStatement,
		"with_statement":        classStatement,
		"try_statement":         classStatement,
		"import_statement":      classStatement,
		"import_from_statement": classStatement,
		"raise_statement":       classStatement,
		"assert_statement":      classStatement,
		"global_statement":      classStatement,
		"nonlocal_statement":    classStatement,
		"delete_statement":      classStatement,
		"match_statement":       classStatement,
		"case_clause":           classStatement,
		"pair":                  classStatement,

		"comment":   classComment,
		"decorator": classDecorator,

		"decorated_definition": classWrapper,
		"attribute":            classAccessor,
		"pattern_list":         classList,
		"expression_list":      classList,
		"tuple_pattern":        classList,
	},
}

func init() {
	engine.Register(newEngine(pythonProfile))
}
