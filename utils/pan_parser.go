package utils

import (
	"regexp"
	"strings"
)

// MatchPolicy decides where in a filename the PAN may appear.
type MatchPolicy string

const (
	// MatchAnywhere takes the first PAN found anywhere in the name.
	MatchAnywhere MatchPolicy = "anywhere"
	// MatchPrefix only accepts a PAN that starts the name.
	MatchPrefix MatchPolicy = "prefix"
)

func (p MatchPolicy) Valid() bool {
	return p == MatchAnywhere || p == MatchPrefix
}

// panRegex: five letters, four digits, one letter.
var panRegex = regexp.MustCompile(`(?i)[A-Z]{5}[0-9]{4}[A-Z]`)

// PANMatch locates a PAN inside a string. Start and End are byte offsets.
type PANMatch struct {
	PAN   string
	Start int
	End   int
}

// FindPAN returns the first PAN in s allowed by policy. The PAN is upper-cased.
func FindPAN(s string, policy MatchPolicy) (PANMatch, bool) {
	loc := panRegex.FindStringIndex(s)
	if loc == nil {
		return PANMatch{}, false
	}
	if policy == MatchPrefix && loc[0] != 0 {
		return PANMatch{}, false
	}
	return PANMatch{
		PAN:   strings.ToUpper(s[loc[0]:loc[1]]),
		Start: loc[0],
		End:   loc[1],
	}, true
}

// ParsePANText scans free text (e.g. extracted from a PDF) for a PAN.
func ParsePANText(raw string) (string, bool) {
	t := strings.ToUpper(raw)
	for _, line := range strings.Split(t, "\n") {
		// skip TAN lines on TDS certificates, the TAN pattern overlaps PAN
		if strings.Contains(line, "TAN") && !strings.Contains(line, "PAN") {
			continue
		}
		if m, ok := FindPAN(line, MatchAnywhere); ok {
			return m.PAN, true
		}
	}
	return "", false
}
