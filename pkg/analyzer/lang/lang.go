// Package lang centralizes the tree-sitter node-type vocabulary for the
// three supported grammars so the symbol extractor and reference resolver
// agree on what a function, class, call, or identifier looks like.
package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sourceprism/prism/pkg/parser"
)

// IsFunctionNode reports whether t declares a standalone function.
func IsFunctionNode(l parser.Language, t string) bool {
	switch l {
	case parser.LangPython:
		return t == "function_definition"
	default:
		return t == "function_declaration" || t == "generator_function_declaration"
	}
}

// IsFunctionExpression reports whether t is an anonymous-function-shaped
// node: arrow functions, function expressions, and Python lambdas. These
// declare no symbol of their own but still bind formal parameters.
func IsFunctionExpression(l parser.Language, t string) bool {
	if l == parser.LangPython {
		return t == "lambda"
	}
	switch t {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}

// IsMethodDefinition reports whether t is a class-body method definition.
// Python methods are function_definitions inside a class body, so this
// only fires for the TypeScript/JavaScript grammars.
func IsMethodDefinition(l parser.Language, t string) bool {
	if l == parser.LangPython {
		return false
	}
	return t == "method_definition"
}

// IsClassNode reports whether t declares a class.
func IsClassNode(l parser.Language, t string) bool {
	switch l {
	case parser.LangPython:
		return t == "class_definition"
	default:
		return t == "class_declaration" || t == "class"
	}
}

// IsCallNode reports whether t is a call-expression-shaped node.
func IsCallNode(l parser.Language, t string) bool {
	switch l {
	case parser.LangPython:
		return t == "call"
	default:
		return t == "call_expression" || t == "new_expression"
	}
}

// CalleeField returns the field name holding a call node's callee.
func CalleeField(t string) string {
	if t == "new_expression" {
		return "constructor"
	}
	return "function"
}

// ArgumentsNodeType returns the node type of a call's argument list.
func ArgumentsNodeType(l parser.Language) string {
	if l == parser.LangPython {
		return "argument_list"
	}
	return "arguments"
}

// IsMemberNode reports whether t is a member-access chain link.
func IsMemberNode(l parser.Language, t string) bool {
	if l == parser.LangPython {
		return t == "attribute"
	}
	return t == "member_expression"
}

// MemberPropertyField returns the field holding the last segment of a
// member-access chain.
func MemberPropertyField(l parser.Language) string {
	if l == parser.LangPython {
		return "attribute"
	}
	return "property"
}

// IsIdentifier reports whether t is an identifier occurrence worth
// matching against symbol names.
func IsIdentifier(t string) bool {
	switch t {
	case "identifier", "property_identifier", "type_identifier",
		"shorthand_property_identifier", "shorthand_property_identifier_pattern":
		return true
	}
	return false
}

// ImportNodeTypes returns the statement node types whose subtrees never
// count as symbol uses.
func ImportNodeTypes(l parser.Language) []string {
	if l == parser.LangPython {
		return []string{"import_statement", "import_from_statement"}
	}
	return []string{"import_statement", "export_clause"}
}

// IsAssignmentNode reports whether t assigns to its left field.
func IsAssignmentNode(l parser.Language, t string) bool {
	switch l {
	case parser.LangPython:
		return t == "assignment" || t == "augmented_assignment"
	default:
		return t == "assignment_expression" || t == "augmented_assignment_expression"
	}
}

// SameNode reports whether two nodes cover the same source span. Node
// wrappers from tree-sitter are not pointer-comparable across lookups.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// NameOf returns the text of a node's "name" field.
func NameOf(node *sitter.Node, source []byte) string {
	return parser.GetNodeText(node.ChildByFieldName("name"), source)
}

// IsModuleScope reports whether node's statement sits directly at file
// scope (used for Python's declaration-vs-assignment judgment).
func IsModuleScope(node *sitter.Node) bool {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Type() {
		case "module", "program":
			return true
		case "function_definition", "class_definition",
			"function_declaration", "method_definition", "class_declaration",
			"arrow_function", "function_expression":
			return false
		}
	}
	return false
}
