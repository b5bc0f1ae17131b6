package formats

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// markdownTitleRegex matches markdown h1 headers (must be at very start, no leading space)
var markdownTitleRegex = regexp.MustCompile(`^#\s+(.+?)[\s]*$`)

const frontMatterDelimiter = "---"

// Markdown renders metadata as YAML front matter, then "# Title", a blank
// line and the content. Deserialization reads the front matter when the
// first line is "---" and the title from a leading h1.
var Markdown = &DocumentFormat{
	Name:      "markdown",
	Extension: ".md",
	Serialize: func(doc Document) string {
		var b strings.Builder
		if len(doc.Metadata) > 0 {
			if fm, err := yaml.Marshal(doc.Metadata); err == nil {
				b.WriteString(frontMatterDelimiter + "\n")
				b.Write(fm)
				b.WriteString(frontMatterDelimiter + "\n\n")
			}
		}
		if doc.Title != "" {
			b.WriteString("# " + doc.Title + "\n\n")
		}
		b.WriteString(doc.Content)
		return b.String()
	},
	Deserialize: func(document string) (Document, error) {
		if strings.TrimSpace(document) == "" {
			return Document{}, ErrEmptyDocument
		}

		lines := strings.Split(document, "\n")
		var doc Document

		if strings.TrimSpace(lines[0]) == frontMatterDelimiter {
			end := -1
			for i := 1; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
					end = i
					break
				}
			}
			if end < 0 {
				return Document{}, fmt.Errorf("front matter is not closed")
			}
			meta := map[string]any{}
			if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &meta); err != nil {
				return Document{}, fmt.Errorf("invalid front matter: %w", err)
			}
			if len(meta) > 0 {
				doc.Metadata = meta
			}
			lines = lines[skipBlank(lines, end+1):]
		}

		if len(lines) > 0 {
			if matches := markdownTitleRegex.FindStringSubmatch(lines[0]); len(matches) > 1 {
				doc.Title = strings.TrimSpace(matches[1])
				lines = lines[skipBlank(lines, 1):]
			}
		}
		doc.Content = strings.TrimSpace(strings.Join(lines, "\n"))

		if doc.Title == "" && doc.Content == "" {
			return Document{}, ErrEmptyDocument
		}
		return doc, nil
	},
}

func init() {
	if err := Register(Markdown); err != nil {
		panic(fmt.Sprintf("failed to register Markdown format: %v", err))
	}
}
