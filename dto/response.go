package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// RenameResponse is returned for plan and directory modes. Archive mode sends
// the zip instead and carries the summary in headers.
type RenameResponse struct {
	Mode        OutputMode      `json:"mode"`
	Summary     RenameSummary   `json:"summary"`
	Renamed     []RenameResult  `json:"renamed"`
	Unmatched   []UnmatchedFile `json:"unmatched"`
	Outcomes    []FileOutcome   `json:"outcomes"`
	Written     []string        `json:"written,omitempty"`
	Destination string          `json:"destination,omitempty"`
	ProcessedAt string          `json:"processed_at"`
}

// MappingPreviewResponse describes a parsed mapping file.
type MappingPreviewResponse struct {
	Sheet      string         `json:"sheet,omitempty"`
	Headers    []string       `json:"headers"`
	PANColumn  string         `json:"pan_column"`
	NameColumn string         `json:"name_column"`
	TotalRows  int            `json:"total_rows"`
	TotalCols  int            `json:"total_columns"`
	Entries    []MappingEntry `json:"entries"`
}
