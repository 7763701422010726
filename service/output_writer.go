package service

import (
	"bytes"
	"context"
	"io"

	"github.com/Aashish23092/tds-renamer/dto"
)

// OutputSink stores one renamed file under key.
type OutputSink interface {
	Save(ctx context.Context, key string, data io.Reader, size int64) error
	Destination() string
}

// WriteReport lists what WriteMatched stored. Failed is keyed by outcome index.
type WriteReport struct {
	Written []string
	Failed  map[int]dto.UnmatchedFile
}

// WriteMatched stores each matched file in sink under its new name. A file
// the sink rejects is reported in Failed and the rest are still written.
// Only a cancelled context stops early.
func WriteMatched(ctx context.Context, sink OutputSink, plan *dto.RenamePlan, files []dto.InputFile) (*WriteReport, error) {
	report := &WriteReport{
		Written: make([]string, 0, len(plan.Renamed)),
		Failed:  make(map[int]dto.UnmatchedFile),
	}
	for _, outcome := range plan.Outcomes {
		if !outcome.Matched {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		content := files[outcome.Index].Content
		name := outcome.Renamed.NewName
		if err := sink.Save(ctx, name, bytes.NewReader(content), int64(len(content))); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			report.Failed[outcome.Index] = dto.UnmatchedFile{
				OriginalName: outcome.Renamed.OriginalName,
				Reason:       dto.ReasonWriteFailed,
				PAN:          outcome.Renamed.PAN,
				Error:        err.Error(),
			}
			continue
		}
		report.Written = append(report.Written, name)
	}
	return report, nil
}

// withWriteFailures returns a copy of plan where the failed files moved from
// renamed to unmatched.
func withWriteFailures(plan *dto.RenamePlan, failed map[int]dto.UnmatchedFile) *dto.RenamePlan {
	if len(failed) == 0 {
		return plan
	}

	out := &dto.RenamePlan{
		Renamed:   []dto.RenameResult{},
		Unmatched: []dto.UnmatchedFile{},
		Outcomes:  make([]dto.FileOutcome, 0, len(plan.Outcomes)),
	}
	for _, outcome := range plan.Outcomes {
		if f, ok := failed[outcome.Index]; ok {
			f := f
			outcome = dto.FileOutcome{Index: outcome.Index, Unmatched: &f}
		}
		if outcome.Matched {
			out.Renamed = append(out.Renamed, *outcome.Renamed)
		} else {
			out.Unmatched = append(out.Unmatched, *outcome.Unmatched)
		}
		out.Outcomes = append(out.Outcomes, outcome)
	}
	out.Summary = dto.RenameSummary{
		Total:     len(out.Outcomes),
		Renamed:   len(out.Renamed),
		Unmatched: len(out.Unmatched),
	}
	return out
}
