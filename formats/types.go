// Package formats renders a single problem as a standalone text document and
// parses it back. Formats are looked up by name from a registry so the CLI
// can offer whatever is registered.
package formats

import (
	"fmt"
	"sort"
	"strings"
)

// Document is the format-neutral view of one problem: the problem title, its
// notes as the body, and the remaining fields as metadata
type Document struct {
	Title    string
	Content  string
	Metadata map[string]any
}

// DocumentFormat defines how documents are serialized and deserialized
type DocumentFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extension is the file extension including the dot (e.g., ".txt", ".md")
	Extension string

	// Serialize converts a document into the formatted string
	Serialize func(doc Document) string

	// Deserialize parses a formatted string. An error is returned when the
	// document carries neither a title nor content.
	Deserialize func(document string) (Document, error)
}

// registry holds all available document formats
var registry = make(map[string]*DocumentFormat)

// Register adds a new document format to the registry
func Register(format *DocumentFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}

	if !strings.HasPrefix(format.Extension, ".") {
		format.Extension = "." + format.Extension
	}

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a document format by name
func Get(name string) (*DocumentFormat, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return format, nil
}

// ByExtension returns the registered format writing files with ext
// (".md", ".txt"). The match ignores case.
func ByExtension(ext string) (*DocumentFormat, bool) {
	for _, format := range registry {
		if strings.EqualFold(format.Extension, ext) {
			return format, true
		}
	}
	return nil, false
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
