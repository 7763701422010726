package dto

import "mime/multipart"

// RenameRequest represents the incoming upload
type RenameRequest struct {
	Mapping *multipart.FileHeader   `form:"mapping"`
	Files   []*multipart.FileHeader `form:"files[]"`
	Mode    OutputMode              `form:"mode"`
}

// Validate performs basic validation on the request. Mode must already be
// set; the handler fills in the configured default.
func (r *RenameRequest) Validate() error {
	if r.Mapping == nil {
		return WrapError(ErrInvalidInput, "validate request", errMappingRequired)
	}
	if len(r.Files) == 0 {
		return WrapError(ErrEmptyBatch, "validate request", nil)
	}
	if !r.Mode.Valid() {
		return WrapError(ErrInvalidInput, "validate request", &invalidModeError{mode: string(r.Mode)})
	}
	return nil
}

type invalidModeError struct{ mode string }

func (e *invalidModeError) Error() string {
	return "unknown mode " + e.mode + " (want archive, directory or plan)"
}
