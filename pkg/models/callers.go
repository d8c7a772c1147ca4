package models

// CallSite is one location where a symbol is invoked or handed off.
type CallSite struct {
	FilePath          string   `json:"file_path"`
	Line              uint32   `json:"line"`
	Column            uint32   `json:"column"`
	CallType          CallKind `json:"call_type"`
	EnclosingFunction string   `json:"enclosing_function,omitempty"`
	EnclosingClass    string   `json:"enclosing_class,omitempty"`
	Snippet           string   `json:"snippet,omitempty"`
}

// CallersResult answers "who calls this function" for one target symbol.
type CallersResult struct {
	Symbol     Symbol     `json:"symbol"`
	Callers    []CallSite `json:"callers"`
	TotalCount int        `json:"total_count"`
}
