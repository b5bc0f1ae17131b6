package formats

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyDocument is returned by Deserialize when a document has neither a
// title nor content
var ErrEmptyDocument = errors.New("empty document: both title and content are empty")

// isBlankLine checks if a line contains only whitespace
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// skipBlank returns the index of the first non-blank line at or after i
func skipBlank(lines []string, i int) int {
	for i < len(lines) && isBlankLine(lines[i]) {
		i++
	}
	return i
}

// sortedKeys returns metadata keys in a stable order
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
