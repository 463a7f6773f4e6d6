package lang

import (
	"maps"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

var jsKinds = map[string]kindClass{
	"identifier":                            classIdentifier,
	"property_identifier":                   classIdentifier,
	"private_property_identifier":           classIdentifier,
	"shorthand_property_identifier":         classIdentifier,
	"shorthand_property_identifier_pattern": classIdentifier,
	"statement_identifier":                  classIdentifier,

	"string":          classString,
	"template_string": classString,

	"function_declaration":           classStatement,
	"generator_function_declaration": classStatement,
	"class_declaration":              classStatement,
	"method_definition":              classStatement,
	"field_definition":               classStatement,
	"lexical_declaration":            classStatement,
	"variable_declaration":           classStatement,
	"expression_statement":           classStatement,
	"return_statement":               classStatement,
	"throw_statement":                classStatement,
	"if_statement":                   classStatement,
	"for_statement":                  classStatement,
	"for_in_statement":               classStatement,
	"while_statement":                classStatement,
	"do_statement":                   classStatement,
	"try_statement":                  classStatement,
	"switch_statement":               classStatement,
	"switch_case":                    classStatement,
	"switch_default":                 classStatement,
	"labeled_statement":              classStatement,
	"import_statement":               classStatement,
	"pair":                           classStatement,

	"comment":   classComment,
	"decorator": classDecorator,

	"export_statement":  classWrapper,
	"member_expression": classAccessor,
}

var jsProfile = &profile{
	name:        "javascript",
	extensions:  []string{".js", ".mjs", ".cjs", ".jsx"},
	language:    javascript.GetLanguage,
	lineComment: "//",
	quotes:      []string{"`", `"`, "'"},
	kinds:       jsKinds,
}

// tsKinds extends the JavaScript table with type-level declarations.
var tsKinds = func() map[string]kindClass {
	kinds := maps.Clone(jsKinds)
	for _, kind := range []string{"type_identifier"} {
		kinds[kind] = classIdentifier
	}
	for _, kind := range []string{
		"interface_declaration",
		"type_alias_declaration",
		"enum_declaration",
		"abstract_class_declaration",
		"module",
		"internal_module",
		"public_field_definition",
		"method_signature",
		"abstract_method_signature",
		"property_signature",
		"function_signature",
	} {
		kinds[kind] = classStatement
	}
	kinds["ambient_declaration"] = classWrapper
	return kinds
}()

var tsProfile = &profile{
	name:        "typescript",
	extensions:  []string{".ts", ".mts", ".cts"},
	language:    typescript.GetLanguage,
	lineComment: "//",
	quotes:      []string{"`", `"`, "'"},
	kinds:       tsKinds,
}

var tsxProfile = &profile{
	name:        "tsx",
	extensions:  []string{".tsx"},
	language:    tsx.GetLanguage,
	lineComment: "//",
	quotes:      []string{"`", `"`, "'"},
	kinds:       tsKinds,
}

func init() {
	engine.Register(newEngine(jsProfile))
	engine.Register(newEngine(tsProfile))
	engine.Register(newEngine(tsxProfile))
}
