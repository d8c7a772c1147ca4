// Package inspect provides one-shot file projections: the import/export
// surface of a file and line-range extraction with symbol context.
package inspect

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sourceprism/prism/pkg/analyzer/lang"
	"github.com/sourceprism/prism/pkg/models"
	"github.com/sourceprism/prism/pkg/parser"
)

// ListImportsExports walks the top level of a parsed file and collects
// its import and export statements.
func ListImportsExports(res *parser.ParseResult) *models.ImportExportListing {
	listing := &models.ImportExportListing{
		FilePath: res.Path,
		Imports:  []models.ImportEntry{},
		Exports:  []models.ExportEntry{},
	}

	root := res.Tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "import_statement", "import_from_statement":
			listing.Imports = append(listing.Imports, importEntry(stmt, res))
		case "export_statement":
			listing.Exports = append(listing.Exports, exportEntry(stmt, res))
		}
	}
	return listing
}

func importEntry(stmt *sitter.Node, res *parser.ParseResult) models.ImportEntry {
	entry := models.ImportEntry{
		Statement: strings.TrimSpace(parser.GetNodeText(stmt, res.Source)),
		Line:      stmt.StartPoint().Row + 1,
	}

	if src := stmt.ChildByFieldName("source"); src != nil {
		entry.Source = strings.Trim(parser.GetNodeText(src, res.Source), `'"`)
	} else if mod := stmt.ChildByFieldName("module_name"); mod != nil {
		entry.Source = parser.GetNodeText(mod, res.Source)
	}

	parser.Walk(stmt, res.Source, func(n *sitter.Node, _ []byte) bool {
		switch n.Type() {
		case "import_specifier", "namespace_import", "import_clause":
			return true
		case "identifier", "dotted_name", "aliased_import":
			if n.Type() == "aliased_import" {
				if alias := n.ChildByFieldName("alias"); alias != nil {
					entry.Names = append(entry.Names, parser.GetNodeText(alias, res.Source))
				}
				return false
			}
			// Python import targets and TS/JS bound names.
			if parent := n.Parent(); parent != nil && parent.Type() != "aliased_import" {
				entry.Names = append(entry.Names, parser.GetNodeText(n, res.Source))
			}
			return false
		}
		return true
	})
	return entry
}

func exportEntry(stmt *sitter.Node, res *parser.ParseResult) models.ExportEntry {
	entry := models.ExportEntry{
		Statement: firstLine(parser.GetNodeText(stmt, res.Source)),
		Line:      stmt.StartPoint().Row + 1,
	}

	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		if name := decl.ChildByFieldName("name"); name != nil {
			entry.Names = append(entry.Names, parser.GetNodeText(name, res.Source))
		}
		for _, n := range parser.FindNodesByType(decl, res.Source, "variable_declarator") {
			if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				entry.Names = append(entry.Names, parser.GetNodeText(name, res.Source))
			}
		}
		return entry
	}

	for _, spec := range parser.FindNodesByType(stmt, res.Source, "export_specifier") {
		target := spec.ChildByFieldName("alias")
		if target == nil {
			target = spec.ChildByFieldName("name")
		}
		if target != nil {
			entry.Names = append(entry.Names, parser.GetNodeText(target, res.Source))
		}
	}

	if value := stmt.ChildByFieldName("value"); value != nil && value.Type() == "identifier" {
		entry.Names = append(entry.Names, parser.GetNodeText(value, res.Source))
	}
	return entry
}

// ExtractRange returns the requested 1-based inclusive line range of a
// file, annotated with the innermost named declaration covering it.
func ExtractRange(res *parser.ParseResult, startLine, endLine uint32) (*models.CodeRange, error) {
	if startLine < 1 || endLine < startLine {
		return nil, fmt.Errorf("invalid line range %d-%d", startLine, endLine)
	}

	lines := strings.Split(string(res.Source), "\n")
	if int(startLine) > len(lines) {
		return nil, fmt.Errorf("start line %d past end of file (%d lines)", startLine, len(lines))
	}
	if int(endLine) > len(lines) {
		endLine = uint32(len(lines))
	}

	rng := &models.CodeRange{
		FilePath:  res.Path,
		StartLine: startLine,
		EndLine:   endLine,
		Code:      strings.Join(lines[startLine-1:endLine], "\n"),
	}

	if sym, kind := enclosingDeclaration(res, startLine-1, endLine-1); sym != "" {
		rng.EnclosingSymbol = sym
		rng.EnclosingKind = kind
	}
	return rng, nil
}

// enclosingDeclaration finds the innermost function, method, or class
// whose span covers rows [startRow, endRow].
func enclosingDeclaration(res *parser.ParseResult, startRow, endRow uint32) (string, string) {
	var name, kind string

	parser.Walk(res.Tree.RootNode(), res.Source, func(n *sitter.Node, _ []byte) bool {
		// A node that does not cover the whole range cannot contain a
		// declaration that does.
		if n.StartPoint().Row > startRow || n.EndPoint().Row < endRow {
			return false
		}

		t := n.Type()
		switch {
		case lang.IsClassNode(res.Language, t):
			if nm := lang.NameOf(n, res.Source); nm != "" {
				name, kind = nm, "class"
			}
		case lang.IsMethodDefinition(res.Language, t):
			if nm := lang.NameOf(n, res.Source); nm != "" {
				name, kind = nm, "method"
			}
		case lang.IsFunctionNode(res.Language, t):
			if nm := lang.NameOf(n, res.Source); nm != "" {
				name, kind = nm, "function"
			}
		}
		return true
	})
	return name, kind
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}
