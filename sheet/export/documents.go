package export

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/arthur-debert/probsheet/formats"
	"github.com/arthur-debert/probsheet/internal/validation"
	"github.com/arthur-debert/probsheet/types"
)

// applyDocuments folds hand edits of archived problem documents back into s.
// A document is matched to its problem by the topic and section positions in
// its path plus the "id" in its metadata. Fields present in the document win
// over sheet.json:
//
//	title      the document title
//	notes      the document body
//	completed  metadata, must be a boolean
//	difficulty metadata, parsed case-insensitively
//	url        metadata, must be an http(s) link
//
// Title and notes are compared trimmed, since formats trim them on parse.
// Files that are not documents of a registered format, or that do not match
// a problem, are ignored. The topic and section names in the metadata are
// informational only. s must be owned by the caller; it is edited in place.
func applyDocuments(s types.Sheet, objects []ObjectFile) (types.Sheet, error) {
	for _, obj := range objects {
		format, ok := formats.ByExtension(path.Ext(obj.Filename))
		if !ok {
			continue
		}
		p := locateProblem(s, obj.Filename)
		if p == nil {
			continue
		}

		doc, err := format.Deserialize(obj.Content)
		if errors.Is(err, formats.ErrEmptyDocument) {
			continue
		}
		if err != nil {
			return types.Sheet{}, fmt.Errorf("failed to parse %s: %w", obj.Filename, err)
		}
		if metaString(doc.Metadata["id"]) != p.ID {
			continue
		}

		if err := applyDocument(p, doc); err != nil {
			return types.Sheet{}, fmt.Errorf("%s: %w", obj.Filename, err)
		}
	}
	return s, nil
}

// locateProblem resolves "NN-topic/NN-section/NN-problem.ext" by position.
// It returns nil when the path does not resolve; ids are checked by the
// caller.
func locateProblem(s types.Sheet, filename string) *types.Problem {
	segments := strings.Split(filename, "/")
	if len(segments) != 3 {
		return nil
	}
	ti, ok := segmentIndex(segments[0], len(s.Topics))
	if !ok {
		return nil
	}
	sections := s.Topics[ti].Sections
	si, ok := segmentIndex(segments[1], len(sections))
	if !ok {
		return nil
	}
	problems := sections[si].Problems
	pi, ok := segmentIndex(segments[2], len(problems))
	if !ok {
		return nil
	}
	return &problems[pi]
}

// segmentIndex reads the 1-based position prefix of a path segment
func segmentIndex(segment string, n int) (int, bool) {
	prefix, _, found := strings.Cut(segment, "-")
	if !found {
		return 0, false
	}
	pos, err := strconv.Atoi(prefix)
	if err != nil || pos < 1 || pos > n {
		return 0, false
	}
	return pos - 1, true
}

func applyDocument(p *types.Problem, doc formats.Document) error {
	if doc.Title != "" && doc.Title != strings.TrimSpace(p.Title) {
		p.Title = doc.Title
	}
	if doc.Content != strings.TrimSpace(p.Notes) {
		p.Notes = doc.Content
	}

	if v, ok := doc.Metadata["completed"]; ok {
		completed, isBool := v.(bool)
		if !isBool {
			return fmt.Errorf("completed must be true or false, got %v", v)
		}
		p.Completed = completed
	}

	if v, ok := doc.Metadata["difficulty"]; ok {
		if s := metaString(v); s != string(p.Difficulty) {
			d, err := validation.Difficulty(s)
			if err != nil {
				return err
			}
			p.Difficulty = d
		}
	}

	if v, ok := doc.Metadata["url"]; ok {
		if s := metaString(v); s != p.URL {
			u, err := validation.URL(s)
			if err != nil {
				return fmt.Errorf("url %q: %w", s, err)
			}
			p.URL = u
		}
	}
	return nil
}

// metaString renders a parsed metadata value as text. Plain-text metadata
// turns numeric-looking values into ints, so ids are not always strings.
func metaString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
