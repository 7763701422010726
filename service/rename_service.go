package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/metrics"
)

// BatchResult is what one rename request produces. Archive is only set in
// archive mode.
type BatchResult struct {
	Response *dto.RenameResponse
	Archive  []byte
}

type RenameService struct {
	loader  *MappingLoader
	engine  *RenameEngine
	sink    OutputSink
	metrics *metrics.RenameMetrics
	logger  *slog.Logger
}

// NewRenameService wires the batch pipeline. sink may be nil, in which case
// directory mode is rejected.
func NewRenameService(
	loader *MappingLoader,
	engine *RenameEngine,
	sink OutputSink,
	m *metrics.RenameMetrics,
	logger *slog.Logger,
) *RenameService {
	return &RenameService{
		loader:  loader,
		engine:  engine,
		sink:    sink,
		metrics: m,
		logger:  logger,
	}
}

// Preview parses a mapping file without renaming anything.
func (s *RenameService) Preview(mappingName string, mappingData []byte) (*dto.MappingPreviewResponse, error) {
	loaded, err := s.loader.Load(mappingName, mappingData)
	if err != nil {
		return nil, err
	}
	return &dto.MappingPreviewResponse{
		Sheet:      loaded.Sheet,
		Headers:    loaded.Headers,
		PANColumn:  loaded.PANColumn,
		NameColumn: loaded.NameColumn,
		TotalRows:  loaded.TotalRows,
		TotalCols:  loaded.TotalCols,
		Entries:    loaded.Table.Entries(),
	}, nil
}

// Process runs one batch. Mapping errors abort before any output is made.
func (s *RenameService) Process(ctx context.Context, mappingName string, mappingData []byte, files []dto.InputFile, mode dto.OutputMode) (*BatchResult, error) {
	start := time.Now()

	result, plan, err := s.process(ctx, mappingName, mappingData, files, mode)
	if err != nil {
		s.metrics.ObserveBatch(string(mode), "error", nil, time.Since(start))
		s.logger.Warn("rename batch failed", "mode", mode, "files", len(files), "error", err)
		return nil, err
	}

	s.metrics.ObserveBatch(string(mode), "ok", outcomeCounts(plan), time.Since(start))
	s.logger.Info("rename batch completed",
		"mode", mode,
		"total", plan.Summary.Total,
		"renamed", plan.Summary.Renamed,
		"unmatched", plan.Summary.Unmatched,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (s *RenameService) process(ctx context.Context, mappingName string, mappingData []byte, files []dto.InputFile, mode dto.OutputMode) (*BatchResult, *dto.RenamePlan, error) {
	if !mode.Valid() {
		return nil, nil, dto.WrapError(dto.ErrInvalidInput, "process batch", fmt.Errorf("unknown mode %q", mode))
	}
	if len(files) == 0 {
		return nil, nil, dto.WrapError(dto.ErrEmptyBatch, "process batch", nil)
	}
	if mode == dto.OutputModeDirectory && s.sink == nil {
		return nil, nil, dto.WrapError(dto.ErrInvalidInput, "process batch", fmt.Errorf("directory output is not configured"))
	}

	loaded, err := s.loader.Load(mappingName, mappingData)
	if err != nil {
		return nil, nil, err
	}

	plan, err := s.engine.Plan(ctx, loaded.Table, files)
	if err != nil {
		return nil, nil, fmt.Errorf("plan batch: %w", err)
	}

	result := &BatchResult{
		Response: &dto.RenameResponse{
			Mode:        mode,
			ProcessedAt: time.Now().Format(time.RFC3339),
		},
	}

	switch mode {
	case dto.OutputModeArchive:
		archive, err := BuildArchive(plan, files)
		if err != nil {
			return nil, nil, fmt.Errorf("build archive: %w", err)
		}
		result.Archive = archive
	case dto.OutputModeDirectory:
		report, err := WriteMatched(ctx, s.sink, plan, files)
		if err != nil {
			return nil, nil, fmt.Errorf("write renamed files: %w", err)
		}
		for _, f := range report.Failed {
			s.logger.Warn("renamed file not written", "file", f.OriginalName, "error", f.Error)
		}
		plan = withWriteFailures(plan, report.Failed)
		result.Response.Written = report.Written
		result.Response.Destination = s.sink.Destination()
	}

	result.Response.Summary = plan.Summary
	result.Response.Renamed = plan.Renamed
	result.Response.Unmatched = plan.Unmatched
	result.Response.Outcomes = plan.Outcomes

	return result, plan, nil
}

func outcomeCounts(plan *dto.RenamePlan) map[string]int {
	counts := map[string]int{"renamed": plan.Summary.Renamed}
	for _, u := range plan.Unmatched {
		counts[string(u.Reason)]++
	}
	return counts
}
