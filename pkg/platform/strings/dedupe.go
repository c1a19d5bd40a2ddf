// Package strings holds the free-text cleanup shared by profile and catalog code.
package strings

import (
	"strings"
)

// NormalizeSpace trims s and collapses every inner run of whitespace to one space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DedupeFold normalizes whitespace in each value, drops empty values and
// removes case-insensitive duplicates. The first spelling wins and order is
// preserved.
//
//	DedupeFold([]string{" Logística ", "logística", "", "Agro  Negócio"})
//	// []string{"Logística", "Agro Negócio"}
func DedupeFold(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		clean := NormalizeSpace(v)
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, clean)
	}

	return result
}
