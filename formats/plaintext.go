package formats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PlainText format implementation
// Serialization:
//   - If metadata exists: "key: value" lines in key order, separator (---), blank line
//   - Then title, blank line, content
//
// Deserialization: parses metadata section if present, then title/content
var PlainText = &DocumentFormat{
	Name:      "plaintext",
	Extension: ".txt",
	Serialize: func(doc Document) string {
		var result strings.Builder

		if len(doc.Metadata) > 0 {
			for _, key := range sortedKeys(doc.Metadata) {
				result.WriteString(key)
				result.WriteString(": ")
				result.WriteString(formatValue(doc.Metadata[key]))
				result.WriteString("\n")
			}
			result.WriteString("---\n\n")
		}

		if doc.Title != "" {
			result.WriteString(doc.Title)
			result.WriteString("\n\n")
		}

		result.WriteString(doc.Content)
		return result.String()
	},
	Deserialize: func(document string) (Document, error) {
		if strings.TrimSpace(document) == "" {
			return Document{}, ErrEmptyDocument
		}

		lines := strings.Split(document, "\n")
		var doc Document

		if hasMetadataSection(lines) {
			metadata, contentStart, err := parseMetadataSection(lines)
			if err != nil {
				return Document{}, err
			}
			doc.Metadata = metadata
			lines = lines[contentStart:]
		}

		// A first line followed by a blank line is the title
		if len(lines) >= 2 && isBlankLine(lines[1]) {
			doc.Title = strings.TrimSpace(lines[0])
			lines = lines[skipBlank(lines, 2):]
		}
		doc.Content = strings.TrimSpace(strings.Join(lines, "\n"))

		if doc.Title == "" && doc.Content == "" {
			return Document{}, ErrEmptyDocument
		}
		return doc, nil
	},
}

func init() {
	if err := Register(PlainText); err != nil {
		panic(fmt.Sprintf("failed to register PlainText format: %v", err))
	}
}

// hasMetadataSection checks if the document starts with a metadata section
func hasMetadataSection(lines []string) bool {
	if len(lines) < 2 || !strings.Contains(lines[0], ": ") {
		return false
	}

	// Separator must show up within the first 20 lines
	for i := 1; i < len(lines) && i < 20; i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return true
		}
	}
	return false
}

// parseMetadataSection parses the metadata section and returns the metadata and index where content starts
func parseMetadataSection(lines []string) (map[string]any, int, error) {
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return nil, 0, fmt.Errorf("metadata section found but no separator")
	}

	metadata := make(map[string]any)
	for _, line := range lines[:separatorIndex] {
		parts := strings.SplitN(line, ": ", 2)
		if len(parts) == 2 {
			metadata[strings.TrimSpace(parts[0])] = parseValue(strings.TrimSpace(parts[1]))
		}
	}

	return metadata, skipBlank(lines, separatorIndex+1), nil
}

// formatValue converts a value to string representation
func formatValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseValue attempts to parse a string value into appropriate type
func parseValue(s string) any {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}
