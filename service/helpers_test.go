package service

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/logging"
)

// workbook builds an xlsx in memory. Each key is a sheet name; sheets are
// created in the order given by order.
func workbook(t *testing.T, order []string, sheets map[string][][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			ref, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(name, ref, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func mappingOf(pairs ...string) *dto.MappingTable {
	m := dto.NewMappingTable()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Put(pairs[i], pairs[i+1])
	}
	return m
}

func pdfFile(name, content string) dto.InputFile {
	return dto.InputFile{Name: name, Content: []byte(content)}
}

// fakePDFProcessor fails validation for listed contents and returns canned text.
type fakePDFProcessor struct {
	invalid map[string]bool
	text    map[string]string
}

func (f *fakePDFProcessor) Validate(data []byte) error {
	if f.invalid[string(data)] {
		return errFakeInvalid
	}
	return nil
}

func (f *fakePDFProcessor) ExtractText(data []byte) (string, error) {
	if f.invalid[string(data)] {
		return "", errFakeInvalid
	}
	return f.text[string(data)], nil
}

var errFakeInvalid = dto.WrapError(dto.ErrInvalidInput, "fake", nil)

func newTestEngine(opts EngineOptions, p PDFProcessor) *RenameEngine {
	return NewRenameEngine(p, opts, logging.Discard())
}

// onePagePDF builds a minimal single-page PDF that shows line in Helvetica.
// line must not contain parentheses or backslashes.
func onePagePDF(line string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", line)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
