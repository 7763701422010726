package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/utils"
)

const (
	panKeyword  = "PAN"
	nameKeyword = "NAME"
)

// MappingLoader turns an uploaded xlsx or csv file into a MappingTable.
type MappingLoader struct {
	logger *slog.Logger
}

func NewMappingLoader(logger *slog.Logger) *MappingLoader {
	return &MappingLoader{logger: logger}
}

// Load parses the mapping file. A file without PAN and NAME columns yields
// an error of kind dto.ErrMissingColumns.
func (l *MappingLoader) Load(filename string, data []byte) (*dto.LoadedMapping, error) {
	var (
		loaded *dto.LoadedMapping
		err    error
	)

	switch strings.ToLower(path.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		loaded, err = l.loadWorkbook(data)
	case ".csv":
		loaded, err = l.loadCSV(data)
	default:
		return nil, dto.WrapError(dto.ErrUnsupportedFormat, "load mapping", fmt.Errorf("%q (want .xlsx or .csv)", filename))
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("mapping loaded",
		"file", filename,
		"sheet", loaded.Sheet,
		"pan_column", loaded.PANColumn,
		"name_column", loaded.NameColumn,
		"rows", loaded.TotalRows,
		"entries", loaded.Table.Len(),
	)
	return loaded, nil
}

func (l *MappingLoader) loadWorkbook(data []byte) (*dto.LoadedMapping, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, dto.WrapError(dto.ErrInvalidInput, "open workbook", err)
	}
	defer f.Close()

	var firstHeaders []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, dto.WrapError(dto.ErrInvalidInput, "read sheet "+sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		if firstHeaders == nil {
			firstHeaders = rows[0]
		}

		loaded, err := buildMapping(rows)
		if dto.IsKind(err, dto.ErrMissingColumns) {
			l.logger.Debug("sheet skipped, no PAN/NAME header", "sheet", sheet)
			continue
		}
		if err != nil {
			return nil, err
		}
		loaded.Sheet = sheet
		return loaded, nil
	}

	return nil, missingColumnsError(firstHeaders)
}

func (l *MappingLoader) loadCSV(data []byte) (*dto.LoadedMapping, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dto.WrapError(dto.ErrInvalidInput, "read csv", err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, missingColumnsError(nil)
	}
	return buildMapping(rows)
}

// buildMapping treats rows[0] as the header row.
func buildMapping(rows [][]string) (*dto.LoadedMapping, error) {
	headers := rows[0]

	panCol, okPAN := utils.FindColumn(headers, panKeyword)
	nameCol, okName := utils.FindColumn(headers, nameKeyword)
	if !okPAN || !okName {
		return nil, missingColumnsError(headers)
	}

	table := dto.NewMappingTable()
	totalCols := len(headers)
	for _, row := range rows[1:] {
		if len(row) > totalCols {
			totalCols = len(row)
		}
		pan := cell(row, panCol)
		name := utils.CleanDisplayName(cell(row, nameCol))
		if pan == "" || name == "" {
			continue
		}
		table.Put(pan, name)
	}

	return &dto.LoadedMapping{
		Table:      table,
		Headers:    headers,
		PANColumn:  headers[panCol],
		NameColumn: headers[nameCol],
		TotalRows:  len(rows) - 1,
		TotalCols:  totalCols,
	}, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func missingColumnsError(headers []string) error {
	var missing []string
	if _, ok := utils.FindColumn(headers, panKeyword); !ok {
		missing = append(missing, panKeyword)
	}
	if _, ok := utils.FindColumn(headers, nameKeyword); !ok {
		missing = append(missing, nameKeyword)
	}
	return dto.WrapError(dto.ErrMissingColumns, "load mapping",
		fmt.Errorf("missing %s in headers %q", strings.Join(missing, ", "), headers))
}
