package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/probsheet/formats"
	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/types"
)

// Sheet writes s to w as kind (json or yaml). Both forms carry the versioned
// envelope, so either can be imported back with Read.
func Sheet(s types.Sheet, kind string, w io.Writer) error {
	var data []byte
	switch kind {
	case KindJSON:
		encoded, err := sheet.Encode(s)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, encoded, "", "  "); err != nil {
			return fmt.Errorf("failed to indent sheet: %w", err)
		}
		buf.WriteByte('\n')
		data = buf.Bytes()
	case KindYAML:
		encoded, err := sheet.EncodeYAML(s)
		if err != nil {
			return err
		}
		data = encoded
	default:
		return fmt.Errorf("unsupported export kind %q (use json or yaml, or Archive for zip)", kind)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Read parses a json or yaml export
func Read(r io.Reader, kind string) (types.Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Sheet{}, fmt.Errorf("failed to read import: %w", err)
	}

	switch kind {
	case KindJSON:
		return sheet.Decode(data)
	case KindYAML:
		return sheet.DecodeYAML(data)
	default:
		return types.Sheet{}, fmt.Errorf("unsupported import kind %q (use json or yaml, or ReadArchive for zip)", kind)
	}
}

// ProblemDocument renders one problem as a format-neutral document. The
// notes become the body; everything else is metadata.
func ProblemDocument(topic types.Topic, section types.Section, order int, p types.Problem) formats.Document {
	return formats.Document{
		Title:   p.Title,
		Content: p.Notes,
		Metadata: map[string]any{
			"id":         p.ID,
			"url":        p.URL,
			"difficulty": string(p.Difficulty),
			"completed":  p.Completed,
			"topic":      topic.Title,
			"section":    section.Title,
			"order":      order,
		},
	}
}
