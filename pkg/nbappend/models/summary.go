package models

// CellSummary describes one cell of an existing notebook for inventory listings.
type CellSummary struct {
	// Index is the cell position (0-based).
	Index int `json:"index"`
	// CellType is the raw cell_type value as found in the document.
	CellType string `json:"cell_type"`
	// Lines is the number of source lines.
	Lines int `json:"lines"`
	// FirstLine is the first source line without its line terminator.
	FirstLine string `json:"first_line,omitempty"`
	// ExecutionCount is the recorded execution count (nil if never run or not a code cell).
	ExecutionCount *int `json:"execution_count,omitempty"`
	// Outputs is the number of recorded outputs.
	Outputs int `json:"outputs"`
}
