package models

// CallKind classifies the syntactic shape of a symbol occurrence.
type CallKind string

const (
	CallDirect   CallKind = "direct"   // bare identifier callee
	CallMethod   CallKind = "method"   // last segment of a member-access chain
	CallCallback CallKind = "callback" // bare identifier in an argument list
	CallIndirect CallKind = "indirect" // any other occurrence
)

// RefContext carries the lexical context of a reference.
type RefContext struct {
	EnclosingFunction string   `json:"enclosing_function,omitempty"`
	EnclosingClass    string   `json:"enclosing_class,omitempty"`
	CallKind          CallKind `json:"call_kind"`
}

// Reference is one syntactic occurrence of an identifier attributed to a
// Symbol. Matching is by name, not scope-resolved identity: an occurrence
// is attributed to every candidate Symbol sharing that name.
type Reference struct {
	TargetSymbolID string     `json:"target_symbol_id"`
	FilePath       string     `json:"file_path"`
	Start          Position   `json:"start"`
	End            Position   `json:"end"`
	Context        RefContext `json:"context"`
}

// AccessKind classifies how a variable occurrence interacts with storage.
type AccessKind string

const (
	AccessDeclaration AccessKind = "declaration"
	AccessAssignment  AccessKind = "assignment"
	AccessRead        AccessKind = "read"
)

// VariableUsage is one tracked occurrence of a variable name.
type VariableUsage struct {
	Name              string     `json:"name"`
	FilePath          string     `json:"file_path"`
	Line              uint32     `json:"line"`
	Column            uint32     `json:"column"`
	Access            AccessKind `json:"access"`
	EnclosingFunction string     `json:"enclosing_function,omitempty"`
	EnclosingClass    string     `json:"enclosing_class,omitempty"`
	Snippet           string     `json:"snippet,omitempty"`
}

// VariableTrace is the full result of tracking one variable name.
type VariableTrace struct {
	Name    string          `json:"name"`
	Usages  []VariableUsage `json:"usages"`
	Summary VariableSummary `json:"summary"`
}

// VariableSummary aggregates usage counts per access kind.
type VariableSummary struct {
	Declarations int `json:"declarations"`
	Assignments  int `json:"assignments"`
	Reads        int `json:"reads"`
	Total        int `json:"total"`
	FilesScanned int `json:"files_scanned"`
}
