package symbols

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sourceprism/prism/pkg/parser"
)

// CollectExportedNames runs a shallow pass over a file's top-level export
// statements and returns every name they make visible, including both
// sides of aliased `export { x as y }` clauses. Python modules have no
// export syntax, so the set is empty there.
func CollectExportedNames(res *parser.ParseResult) map[string]bool {
	names := make(map[string]bool)
	if res.Language == parser.LangPython {
		return names
	}

	root := res.Tree.RootNode()
	for i := range int(root.NamedChildCount()) {
		stmt := root.NamedChild(i)
		if stmt.Type() != "export_statement" {
			continue
		}
		collectFromExport(stmt, res.Source, names)
	}
	return names
}

func collectFromExport(stmt *sitter.Node, source []byte, names map[string]bool) {
	// export function foo() / export class Bar / export const x = ...
	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		collectDeclaredNames(decl, source, names)
	}

	// export { x, y as z }
	for i := range int(stmt.NamedChildCount()) {
		child := stmt.NamedChild(i)
		if child.Type() != "export_clause" {
			continue
		}
		for j := range int(child.NamedChildCount()) {
			spec := child.NamedChild(j)
			if spec.Type() != "export_specifier" {
				continue
			}
			if name := parser.GetNodeText(spec.ChildByFieldName("name"), source); name != "" {
				names[name] = true
			}
			if alias := parser.GetNodeText(spec.ChildByFieldName("alias"), source); alias != "" {
				names[alias] = true
			}
		}
	}

	// export default foo;
	if value := stmt.ChildByFieldName("value"); value != nil && value.Type() == "identifier" {
		names[parser.GetNodeText(value, source)] = true
	}
}

func collectDeclaredNames(decl *sitter.Node, source []byte, names map[string]bool) {
	switch decl.Type() {
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration",
		"interface_declaration", "enum_declaration", "type_alias_declaration":
		if name := parser.GetNodeText(decl.ChildByFieldName("name"), source); name != "" {
			names[name] = true
		}
	case "lexical_declaration", "variable_declaration":
		for i := range int(decl.NamedChildCount()) {
			declarator := decl.NamedChild(i)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			nameNode := declarator.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			if nameNode.Type() == "identifier" {
				names[parser.GetNodeText(nameNode, source)] = true
				continue
			}
			// Destructured exports: every bound identifier is exported.
			for _, id := range patternIdentifiers(nameNode, source) {
				names[id.name] = true
			}
		}
	}
}
