package models

// Confidence labels how trustworthy an unused-symbol finding is.
// It is a deterministic function of kind and export state, not a score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// UnusedSymbol is one declaration with no liveness evidence.
type UnusedSymbol struct {
	Name           string     `json:"name"`
	Kind           SymbolKind `json:"kind"`
	FilePath       string     `json:"file_path"`
	Line           uint32     `json:"line"`
	EndLine        uint32     `json:"end_line"`
	EnclosingClass string     `json:"enclosing_class,omitempty"`
	IsExported     bool       `json:"is_exported"`
	Confidence     Confidence `json:"confidence"`
	Reason         string     `json:"reason"`
}

// DeadCodeAnalysis is the full dead-code detection result.
type DeadCodeAnalysis struct {
	TotalSymbols     int            `json:"total_symbols"`
	UnusedSymbols    []UnusedSymbol `json:"unused_symbols"`
	Summary          string         `json:"summary"`
	Warnings         []string       `json:"warnings,omitempty"`
	ConfigReferences []string       `json:"config_references,omitempty"`
	FilesAnalyzed    int            `json:"files_analyzed"`
	FilesSkipped     int            `json:"files_skipped,omitempty"`
}
