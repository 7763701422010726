package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/utils"
)

const unmatchedDir = "unmatched/"

// archiveTime is stamped on every entry so equal batches give equal archives.
var archiveTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildArchive zips every input file: matched files under their new name,
// the rest under unmatched/<original name>. files must be the slice the plan
// was computed from.
func BuildArchive(plan *dto.RenamePlan, files []dto.InputFile) ([]byte, error) {
	if len(plan.Outcomes) != len(files) {
		return nil, fmt.Errorf("plan covers %d files, got %d", len(plan.Outcomes), len(files))
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]bool)

	for _, outcome := range plan.Outcomes {
		file := files[outcome.Index]

		var name string
		if outcome.Matched {
			name = utils.UniqueName(used, outcome.Renamed.NewName)
		} else {
			name = utils.UniqueName(used, unmatchedDir+baseName(file.Name))
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: archiveTime,
		})
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := w.Write(file.Content); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// baseName drops any directory part a browser may have sent.
func baseName(name string) string {
	b := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if b == "." || b == "/" || b == ".." {
		return "file"
	}
	return b
}
