package service

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type PDFProcessor interface {
	Validate(pdfData []byte) error
	ExtractText(pdfData []byte) (string, error)
}

type pdfProcessor struct {
	conf *model.Configuration
}

func NewPDFProcessor() PDFProcessor {
	// use the built-in configuration instead of creating one under the user's home
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfProcessor{conf: conf}
}

// Validate checks that pdfData parses as a PDF. Panics inside the parser are
// reported as errors.
func (p *pdfProcessor) Validate(pdfData []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf validation panicked: %v", r)
		}
	}()

	if err := api.Validate(bytes.NewReader(pdfData), p.conf); err != nil {
		return fmt.Errorf("invalid pdf: %w", err)
	}
	return nil
}

func (p *pdfProcessor) ExtractText(pdfData []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf text extraction panicked: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", err
	}

	var textBuilder bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		rows, _ := p.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}
