package analysis

import "fmt"

// InvalidArgumentsError reports a request missing a required argument.
// It is surfaced immediately; no partial work is attempted.
type InvalidArgumentsError struct {
	Reason string
}

func (e *InvalidArgumentsError) Error() string {
	return "invalid arguments: " + e.Reason
}

// SymbolNotFoundError reports that a find-callers target does not exist
// in the given file. Distinct from an empty result: zero callers of a
// known symbol is an answer, an unknown symbol is not.
type SymbolNotFoundError struct {
	Name string
	File string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %q not found in %s", e.Name, e.File)
}

// EmptyFileSetError reports that a path resolved to no recognized
// source files.
type EmptyFileSetError struct {
	Path string
}

func (e *EmptyFileSetError) Error() string {
	return fmt.Sprintf("no recognized source files found at %s", e.Path)
}
