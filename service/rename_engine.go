package service

import (
	"context"
	"log/slog"

	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/utils"
)

// EngineOptions configures a RenameEngine.
type EngineOptions struct {
	Policy utils.MatchPolicy
	// ValidatePDF parses every file before matching; unparsable files are
	// reported as unreadable.
	ValidatePDF bool
	// TextFallback looks for a PAN inside the PDF text when the filename has none.
	TextFallback bool
}

// RenameEngine computes rename plans. It holds no per-batch state.
type RenameEngine struct {
	pdfProcessor PDFProcessor
	opts         EngineOptions
	logger       *slog.Logger
}

func NewRenameEngine(pdfProcessor PDFProcessor, opts EngineOptions, logger *slog.Logger) *RenameEngine {
	if !opts.Policy.Valid() {
		opts.Policy = utils.MatchAnywhere
	}
	return &RenameEngine{
		pdfProcessor: pdfProcessor,
		opts:         opts,
		logger:       logger,
	}
}

// Plan classifies every file in order. Per-file failures become unmatched
// entries; only a cancelled context stops the batch.
func (e *RenameEngine) Plan(ctx context.Context, mapping *dto.MappingTable, files []dto.InputFile) (*dto.RenamePlan, error) {
	plan := &dto.RenamePlan{
		Renamed:   []dto.RenameResult{},
		Unmatched: []dto.UnmatchedFile{},
		Outcomes:  make([]dto.FileOutcome, 0, len(files)),
	}
	used := make(map[string]bool)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		renamed, unmatched := e.classify(mapping, file)
		outcome := dto.FileOutcome{Index: i}

		if renamed != nil {
			renamed.NewName = utils.UniqueName(used, renamed.NewName)
			plan.Renamed = append(plan.Renamed, *renamed)
			outcome.Matched = true
			outcome.Renamed = renamed
			e.logger.Debug("file renamed", "file", file.Name, "new_name", renamed.NewName)
		} else {
			plan.Unmatched = append(plan.Unmatched, *unmatched)
			outcome.Unmatched = unmatched
			e.logger.Debug("file unmatched", "file", file.Name, "reason", unmatched.Reason, "error", unmatched.Error)
		}
		plan.Outcomes = append(plan.Outcomes, outcome)
	}

	plan.Summary = dto.RenameSummary{
		Total:     len(files),
		Renamed:   len(plan.Renamed),
		Unmatched: len(plan.Unmatched),
	}
	return plan, nil
}

func (e *RenameEngine) classify(mapping *dto.MappingTable, file dto.InputFile) (*dto.RenameResult, *dto.UnmatchedFile) {
	unmatched := func(reason dto.UnmatchedReason, pan string, err error) (*dto.RenameResult, *dto.UnmatchedFile) {
		u := &dto.UnmatchedFile{OriginalName: file.Name, Reason: reason, PAN: pan}
		if err != nil {
			u.Error = err.Error()
		}
		return nil, u
	}

	if !utils.IsPDFName(file.Name) {
		return unmatched(dto.ReasonNotPDF, "", nil)
	}

	if e.opts.ValidatePDF && e.pdfProcessor != nil {
		if err := e.pdfProcessor.Validate(file.Content); err != nil {
			return unmatched(dto.ReasonUnreadable, "", err)
		}
	}

	var (
		pan         string
		suffix      string
		fromContent bool
	)
	if m, ok := utils.FindPAN(file.Name, e.opts.Policy); ok {
		pan = m.PAN
		suffix = utils.Suffix(file.Name, m)
	} else if e.opts.TextFallback && e.pdfProcessor != nil {
		text, err := e.pdfProcessor.ExtractText(file.Content)
		if err != nil {
			return unmatched(dto.ReasonUnreadable, "", err)
		}
		found, ok := utils.ParsePANText(text)
		if !ok {
			return unmatched(dto.ReasonNoPAN, "", nil)
		}
		// the whole original stem becomes the suffix so nothing is lost
		pan = found
		suffix = "_" + utils.Stem(file.Name)
		fromContent = true
	} else {
		return unmatched(dto.ReasonNoPAN, "", nil)
	}

	displayName, ok := mapping.Lookup(pan)
	if !ok {
		return unmatched(dto.ReasonPANNotFound, pan, nil)
	}

	return &dto.RenameResult{
		OriginalName: file.Name,
		PAN:          pan,
		Suffix:       suffix,
		DisplayName:  utils.CleanDisplayName(displayName),
		NewName:      utils.BuildNewName(pan, suffix, displayName),
		FromContent:  fromContent,
	}, nil
}
