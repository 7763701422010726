package dto

type OutputMode string

const (
	OutputModeArchive   OutputMode = "archive"
	OutputModeDirectory OutputMode = "directory"
	OutputModePlan      OutputMode = "plan"
)

func (m OutputMode) Valid() bool {
	switch m {
	case OutputModeArchive, OutputModeDirectory, OutputModePlan:
		return true
	}
	return false
}

// InputFile is one uploaded file.
type InputFile struct {
	Name    string
	Content []byte
}

// UnmatchedReason says why a file was not renamed.
type UnmatchedReason string

const (
	ReasonNotPDF      UnmatchedReason = "not_pdf"
	ReasonUnreadable  UnmatchedReason = "unreadable"
	ReasonNoPAN       UnmatchedReason = "no_pan"
	ReasonPANNotFound UnmatchedReason = "pan_not_found"
	ReasonWriteFailed UnmatchedReason = "write_failed"
)

// RenameResult is a matched file and its computed name.
type RenameResult struct {
	OriginalName string `json:"original_name"`
	PAN          string `json:"pan"`
	Suffix       string `json:"suffix"`
	DisplayName  string `json:"display_name"`
	NewName      string `json:"new_name"`
	FromContent  bool   `json:"from_content,omitempty"`
}

// UnmatchedFile is a file kept under its original name.
type UnmatchedFile struct {
	OriginalName string          `json:"original_name"`
	Reason       UnmatchedReason `json:"reason"`
	PAN          string          `json:"pan,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// FileOutcome is one itemized line of a batch, in input order.
type FileOutcome struct {
	Index     int            `json:"index"`
	Matched   bool           `json:"matched"`
	Renamed   *RenameResult  `json:"renamed,omitempty"`
	Unmatched *UnmatchedFile `json:"unmatched,omitempty"`
}

type RenameSummary struct {
	Total     int `json:"total"`
	Renamed   int `json:"renamed"`
	Unmatched int `json:"unmatched"`
}

// RenamePlan is the result of planning one batch. It is built once and not
// changed afterwards.
type RenamePlan struct {
	Renamed   []RenameResult
	Unmatched []UnmatchedFile
	Outcomes  []FileOutcome
	Summary   RenameSummary
}
