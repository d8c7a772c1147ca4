package models

import "strings"

// SymbolKind classifies a declaration.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindClass     SymbolKind = "class"
	KindVariable  SymbolKind = "variable"
	KindParameter SymbolKind = "parameter"
)

// Position is a zero-based row/column location in a source file.
type Position struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

// Symbol is one declared function, method, class, variable, or parameter.
// Two declarations with identical kind, name, enclosing class, and file
// share an ID and collapse into one Symbol (last write wins).
type Symbol struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Kind           SymbolKind `json:"kind"`
	FilePath       string     `json:"file_path"`
	Start          Position   `json:"start"`
	End            Position   `json:"end"`
	EnclosingClass string     `json:"enclosing_class,omitempty"`
	IsExported     bool       `json:"is_exported"`
	IsStatic       bool       `json:"is_static,omitempty"`
}

// SymbolID builds the identity key for a declaration: kind, name,
// optional enclosing class, and file path, in that order.
func SymbolID(kind SymbolKind, name, enclosingClass, filePath string) string {
	return strings.Join([]string{string(kind), name, enclosingClass, filePath}, "::")
}
