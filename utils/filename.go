package utils

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const pdfExt = ".pdf"

// IsPDFName reports whether name has a .pdf extension in any case.
func IsPDFName(name string) bool {
	return strings.EqualFold(path.Ext(name), pdfExt)
}

// Stem strips a trailing .pdf extension (any case).
func Stem(name string) string {
	if IsPDFName(name) {
		return name[:len(name)-len(pdfExt)]
	}
	return name
}

// Suffix is the text between the end of the PAN and the .pdf extension.
func Suffix(name string, m PANMatch) string {
	stem := Stem(name)
	if m.End >= len(stem) {
		return ""
	}
	return stem[m.End:]
}

var nameReplacer = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// CleanDisplayName trims and NFC-normalizes a name and removes path separators
// so the result stays a single path element.
func CleanDisplayName(name string) string {
	return strings.TrimSpace(nameReplacer.Replace(norm.NFC.String(strings.TrimSpace(name))))
}

// BuildNewName is PAN + suffix + " - " + display name + ".pdf".
func BuildNewName(pan, suffix, displayName string) string {
	return pan + suffix + " - " + CleanDisplayName(displayName) + pdfExt
}

// Disambiguate appends " (n)" before the extension for the n-th use of name.
func Disambiguate(name string, n int) string {
	if n <= 1 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n, ext)
}

// UniqueName returns name, or the first free Disambiguate variant of it, and
// marks the result as used.
func UniqueName(used map[string]bool, name string) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = Disambiguate(name, n)
	}
	used[candidate] = true
	return candidate
}
