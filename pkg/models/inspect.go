package models

// ImportEntry is one import statement in a file.
type ImportEntry struct {
	Statement string   `json:"statement"`
	Source    string   `json:"source,omitempty"`
	Names     []string `json:"names,omitempty"`
	Line      uint32   `json:"line"`
}

// ExportEntry is one export statement in a file.
type ExportEntry struct {
	Statement string   `json:"statement"`
	Names     []string `json:"names,omitempty"`
	Line      uint32   `json:"line"`
}

// ImportExportListing is the flat projection of a file's import and
// export statements.
type ImportExportListing struct {
	FilePath string        `json:"file_path"`
	Imports  []ImportEntry `json:"imports"`
	Exports  []ExportEntry `json:"exports"`
}

// CodeRange is a slice of a file by line range, annotated with the
// innermost symbol enclosing the range, when one exists.
type CodeRange struct {
	FilePath        string `json:"file_path"`
	StartLine       uint32 `json:"start_line"`
	EndLine         uint32 `json:"end_line"`
	Code            string `json:"code"`
	EnclosingSymbol string `json:"enclosing_symbol,omitempty"`
	EnclosingKind   string `json:"enclosing_kind,omitempty"`
}
