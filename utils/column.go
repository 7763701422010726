package utils

import "strings"

// FindColumn returns the index of the first header containing keyword,
// compared case-insensitively.
func FindColumn(headers []string, keyword string) (int, bool) {
	needle := strings.ToUpper(strings.TrimSpace(keyword))
	if needle == "" {
		return 0, false
	}
	for i, h := range headers {
		if strings.Contains(strings.ToUpper(h), needle) {
			return i, true
		}
	}
	return 0, false
}
