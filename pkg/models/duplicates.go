package models

// DuplicateBlock locates one side of a detected clone pair.
type DuplicateBlock struct {
	FilePath  string `json:"file_path"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`
}

// DuplicateSuggestion is one pair of similar code blocks eligible for
// extraction into a shared function.
type DuplicateSuggestion struct {
	BlockA     DuplicateBlock `json:"block_a"`
	BlockB     DuplicateBlock `json:"block_b"`
	Lines      int            `json:"lines"`
	Similarity float64        `json:"similarity"`
	Suggestion string         `json:"suggestion"`
}

// DuplicateAnalysis is the full duplicate-code detection result.
type DuplicateAnalysis struct {
	Suggestions  []DuplicateSuggestion `json:"suggestions"`
	FilesScanned int                   `json:"files_scanned"`
	MinLines     int                   `json:"min_lines"`
	Threshold    float64               `json:"threshold"`
}
