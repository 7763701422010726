package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/utils"
)

func TestPlanRenamesMatchedFile(t *testing.T) {
	engine := newTestEngine(EngineOptions{}, nil)

	plan, err := engine.Plan(context.Background(),
		mappingOf("AAAAA9999A", "John Doe"),
		[]dto.InputFile{pdfFile("AAAAA9999A_Q1_2025.pdf", "one")},
	)
	require.NoError(t, err)

	require.Len(t, plan.Renamed, 1)
	assert.Equal(t, "AAAAA9999A_Q1_2025 - John Doe.pdf", plan.Renamed[0].NewName)
	assert.Equal(t, "_Q1_2025", plan.Renamed[0].Suffix)
	assert.Equal(t, dto.RenameSummary{Total: 1, Renamed: 1, Unmatched: 0}, plan.Summary)
}

func TestPlanNewNameShape(t *testing.T) {
	engine := newTestEngine(EngineOptions{}, nil)
	mapping := mappingOf("ABCDE1234F", "  Asha Rao  ", "PQRST6789Z", "M/s Kumar & Sons")
	files := []dto.InputFile{
		pdfFile("abcde1234f.pdf", "a"),
		pdfFile("TDS_PQRST6789Z_FY24.PDF", "b"),
		pdfFile("Form16-abcde1234f-part-B.pdf", "c"),
	}

	plan, err := engine.Plan(context.Background(), mapping, files)
	require.NoError(t, err)
	require.Len(t, plan.Renamed, 3)

	for _, r := range plan.Renamed {
		display, _ := mapping.Lookup(r.PAN)
		assert.True(t, strings.HasPrefix(r.NewName, strings.ToUpper(r.PAN)), r.NewName)
		assert.True(t, strings.HasSuffix(r.NewName, utils.CleanDisplayName(display)+".pdf"), r.NewName)
	}
	assert.Equal(t, "ABCDE1234F - Asha Rao.pdf", plan.Renamed[0].NewName)
	assert.Equal(t, "PQRST6789Z_FY24 - M-s Kumar & Sons.pdf", plan.Renamed[1].NewName)
	assert.Equal(t, "ABCDE1234F-part-B - Asha Rao.pdf", plan.Renamed[2].NewName)
}

func TestPlanUnmatchedReasons(t *testing.T) {
	engine := newTestEngine(EngineOptions{}, nil)
	files := []dto.InputFile{
		pdfFile("readme.txt", "x"),
		pdfFile("no-identifier.pdf", "y"),
		pdfFile("ZZZZZ0000Z_Q1.pdf", "z"),
	}

	plan, err := engine.Plan(context.Background(), mappingOf("AAAAA9999A", "John Doe"), files)
	require.NoError(t, err)

	assert.Empty(t, plan.Renamed)
	require.Len(t, plan.Unmatched, 3)
	assert.Equal(t, dto.ReasonNotPDF, plan.Unmatched[0].Reason)
	assert.Equal(t, dto.ReasonNoPAN, plan.Unmatched[1].Reason)
	assert.Equal(t, dto.ReasonPANNotFound, plan.Unmatched[2].Reason)
	assert.Equal(t, "ZZZZZ0000Z", plan.Unmatched[2].PAN)
	assert.Equal(t, 3, plan.Summary.Unmatched)
}

func TestPlanOutcomesKeepInputOrder(t *testing.T) {
	engine := newTestEngine(EngineOptions{}, nil)
	files := []dto.InputFile{
		pdfFile("nothing.pdf", "0"),
		pdfFile("AAAAA9999A.pdf", "1"),
		pdfFile("other.pdf", "2"),
	}

	plan, err := engine.Plan(context.Background(), mappingOf("AAAAA9999A", "John Doe"), files)
	require.NoError(t, err)

	require.Len(t, plan.Outcomes, 3)
	for i, o := range plan.Outcomes {
		assert.Equal(t, i, o.Index)
	}
	assert.False(t, plan.Outcomes[0].Matched)
	assert.True(t, plan.Outcomes[1].Matched)
	assert.Equal(t, "AAAAA9999A - John Doe.pdf", plan.Outcomes[1].Renamed.NewName)
	assert.Equal(t, "other.pdf", plan.Outcomes[2].Unmatched.OriginalName)
}

func TestPlanPrefixPolicy(t *testing.T) {
	engine := newTestEngine(EngineOptions{Policy: utils.MatchPrefix}, nil)
	files := []dto.InputFile{
		pdfFile("AAAAA9999A_Q1.pdf", "a"),
		pdfFile("TDS_AAAAA9999A_Q1.pdf", "b"),
	}

	plan, err := engine.Plan(context.Background(), mappingOf("AAAAA9999A", "John Doe"), files)
	require.NoError(t, err)

	require.Len(t, plan.Renamed, 1)
	assert.Equal(t, "AAAAA9999A_Q1 - John Doe.pdf", plan.Renamed[0].NewName)
	require.Len(t, plan.Unmatched, 1)
	assert.Equal(t, dto.ReasonNoPAN, plan.Unmatched[0].Reason)
}

func TestPlanDisambiguatesCollisions(t *testing.T) {
	engine := newTestEngine(EngineOptions{}, nil)
	files := []dto.InputFile{
		pdfFile("AAAAA9999A.pdf", "a"),
		pdfFile("x_AAAAA9999A.pdf", "b"),
	}

	plan, err := engine.Plan(context.Background(), mappingOf("AAAAA9999A", "John Doe"), files)
	require.NoError(t, err)

	require.Len(t, plan.Renamed, 2)
	assert.Equal(t, "AAAAA9999A - John Doe.pdf", plan.Renamed[0].NewName)
	assert.Equal(t, "AAAAA9999A - John Doe (2).pdf", plan.Renamed[1].NewName)
}

func TestPlanEmptyMapping(t *testing.T) {
	engine := newTestEngine(EngineOptions{}, nil)

	plan, err := engine.Plan(context.Background(), dto.NewMappingTable(), []dto.InputFile{
		pdfFile("AAAAA9999A.pdf", "a"),
		pdfFile("b.pdf", "b"),
	})
	require.NoError(t, err)

	assert.Empty(t, plan.Renamed)
	assert.Len(t, plan.Unmatched, 2)
}

func TestPlanValidationFailureIsSoft(t *testing.T) {
	proc := &fakePDFProcessor{invalid: map[string]bool{"broken": true}}
	engine := newTestEngine(EngineOptions{ValidatePDF: true}, proc)

	plan, err := engine.Plan(context.Background(), mappingOf("AAAAA9999A", "John Doe"), []dto.InputFile{
		pdfFile("AAAAA9999A_bad.pdf", "broken"),
		pdfFile("AAAAA9999A_good.pdf", "fine"),
	})
	require.NoError(t, err)

	require.Len(t, plan.Unmatched, 1)
	assert.Equal(t, dto.ReasonUnreadable, plan.Unmatched[0].Reason)
	assert.NotEmpty(t, plan.Unmatched[0].Error)
	require.Len(t, plan.Renamed, 1)
	assert.Equal(t, "AAAAA9999A_good - John Doe.pdf", plan.Renamed[0].NewName)
}

func TestPlanTextFallback(t *testing.T) {
	proc := &fakePDFProcessor{text: map[string]string{
		"cert":  "FORM NO. 16\nPAN of Employee: aaaaa9999a\n",
		"blank": "",
	}}
	engine := newTestEngine(EngineOptions{TextFallback: true}, proc)

	plan, err := engine.Plan(context.Background(), mappingOf("AAAAA9999A", "John Doe"), []dto.InputFile{
		pdfFile("certificate.pdf", "cert"),
		pdfFile("blank.pdf", "blank"),
	})
	require.NoError(t, err)

	require.Len(t, plan.Renamed, 1)
	assert.Equal(t, "AAAAA9999A_certificate - John Doe.pdf", plan.Renamed[0].NewName)
	assert.True(t, plan.Renamed[0].FromContent)
	require.Len(t, plan.Unmatched, 1)
	assert.Equal(t, dto.ReasonNoPAN, plan.Unmatched[0].Reason)
}

func TestPlanStopsOnCancelledContext(t *testing.T) {
	engine := newTestEngine(EngineOptions{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Plan(ctx, mappingOf("AAAAA9999A", "John Doe"), []dto.InputFile{pdfFile("a.pdf", "a")})
	assert.ErrorIs(t, err, context.Canceled)
}
