package lang

import (
	"github.com/arjunmahishi/snipq/engine"
	golang "github.com/smacker/go-tree-sitter/golang"
)

var goProfile = &profile{
	name:        "go",
	extensions:  []string{".go"},
	language:    golang.GetLanguage,
	lineComment: "//",
	quotes:      []string{"`", `"`},
	kinds: map[string]kindClass{
		"identifier":         classIdentifier,
		"field_identifier":   classIdentifier,
		"type_identifier":    classIdentifier,
		"package_identifier": classIdentifier,
		"label_name":         classIdentifier,

		"interpreted_string_literal": classString,
		"raw_string_literal":         classString,

		"function_declaration":        classStatement,
		"method_declaration":          classStatement,
		"type_spec":                   classStatement,
		"type_alias":                  classStatement,
		"const_spec":                  classStatement,
		"var_spec":                    classStatement,
		"field_declaration":           classStatement,
		"method_spec":                 classStatement,
		"method_elem":                 classStatement,
		"import_spec":                 classStatement,
		"short_var_declaration":       classStatement,
		"assignment_statement":        classStatement,
		"expression_statement":        classStatement,
		"return_statement":            classStatement,
		"if_statement":                classStatement,
		"for_statement":               classStatement,
		"expression_switch_statement": classStatement,
		"type_switch_statement":       classStatement,
		"select_statement":            classStatement,
		"expression_case":             classStatement,
		"type_case":                   classStatement,
		"communication_case":          classStatement,
		"default_case":                classStatement,
		"go_statement":                classStatement,
		"defer_statement":             classStatement,
		"send_statement":              classStatement,
		"inc_statement":               classStatement,
		"dec_statement":               classStatement,
		"labeled_statement":           classStatement,
		"keyed_element":               classStatement,

		"comment": classComment,

		"selector_expression": classAccessor,
		"expression_list":     classList,
	},
}

func init() {
	engine.Register(newEngine(goProfile))
}
