package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/probsheet/formats"
	"github.com/arthur-debert/probsheet/testutil"
	"github.com/arthur-debert/probsheet/types"
)

// writeEditedArchive exports the universe, lets edit change the documents
// and writes the result to a zip file
func writeEditedArchive(t *testing.T, format *formats.DocumentFormat, edit func(data *ArchiveData)) string {
	t.Helper()
	data, err := BuildArchive(testutil.Universe(), format)
	if err != nil {
		t.Fatalf("BuildArchive failed: %v", err)
	}
	edit(data)

	path := filepath.Join(t.TempDir(), "edited.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteArchive(data, f); err != nil {
		t.Fatalf("WriteArchive failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// rewrite replaces one archived problem document
func rewrite(t *testing.T, data *ArchiveData, i int, format *formats.DocumentFormat, fn func(doc *formats.Document)) {
	t.Helper()
	doc, err := format.Deserialize(data.Objects[i].Content)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", data.Objects[i].Filename, err)
	}
	fn(&doc)
	data.Objects[i].Content = format.Serialize(doc)
}

func TestReadArchiveAppliesDocumentEdits(t *testing.T) {
	for _, format := range []*formats.DocumentFormat{formats.Markdown, formats.PlainText} {
		t.Run(format.Name, func(t *testing.T) {
			path := writeEditedArchive(t, format, func(data *ArchiveData) {
				rewrite(t, data, 0, format, func(doc *formats.Document) {
					doc.Metadata["completed"] = false
				})
				rewrite(t, data, 4, format, func(doc *formats.Document) {
					doc.Title = "House Robber I"
					doc.Content = "two rolling variables\ninstead of a table"
					doc.Metadata["completed"] = true
					doc.Metadata["difficulty"] = "hard"
					doc.Metadata["url"] = "https://neetcode.io/problems/house-robber"
				})
			})

			got, err := ReadArchive(path)
			if err != nil {
				t.Fatalf("ReadArchive failed: %v", err)
			}

			want := testutil.Universe()
			want.Topics[0].Sections[0].Problems[0].Completed = false
			want.Topics[1].Sections[0].Problems[1] = types.Problem{
				ID:         "d2",
				Title:      "House Robber I",
				URL:        "https://neetcode.io/problems/house-robber",
				Difficulty: types.Hard,
				Completed:  true,
				Notes:      "two rolling variables\ninstead of a table",
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("imported sheet mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadArchiveIgnoresUnmatchedFiles(t *testing.T) {
	path := writeEditedArchive(t, formats.Markdown, func(data *ArchiveData) {
		// the document at this position now claims a different problem
		rewrite(t, data, 1, formats.Markdown, func(doc *formats.Document) {
			doc.Metadata["id"] = "g3"
			doc.Metadata["completed"] = true
		})
		data.Objects = append(data.Objects,
			ObjectFile{Filename: "README.md", Content: "# Notes\n\nexported for backup", Modified: testutil.Epoch},
			ObjectFile{Filename: "01-graphs/01-breadth-first/09-extra.md", Content: "---\nid: g1\ncompleted: false\n---\n\n# Extra", Modified: testutil.Epoch},
			ObjectFile{Filename: "09-nowhere/01-x/01-y.md", Content: "---\nid: g1\n---\n\n# Y", Modified: testutil.Epoch},
			ObjectFile{Filename: "01-graphs/01-breadth-first/01-number-of-islands.csv", Content: "id,completed\ng1,false", Modified: testutil.Epoch},
		)
	})

	got, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	if diff := cmp.Diff(testutil.Universe(), got); diff != "" {
		t.Errorf("unmatched files changed the sheet (-want +got):\n%s", diff)
	}
}

func TestReadArchiveRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		edit func(doc *formats.Document)
		want string
	}{
		{"completed not a boolean", func(doc *formats.Document) { doc.Metadata["completed"] = "maybe" }, "completed must be true or false"},
		{"unknown difficulty", func(doc *formats.Document) { doc.Metadata["difficulty"] = "extreme" }, "invalid difficulty"},
		{"bad url", func(doc *formats.Document) { doc.Metadata["url"] = "leetcode.com/x" }, "invalid url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEditedArchive(t, formats.PlainText, func(data *ArchiveData) {
				rewrite(t, data, 2, formats.PlainText, tt.edit)
			})

			_, err := ReadArchive(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), "01-graphs/02-depth-first/01-clone-graph.txt") {
				t.Errorf("expected the error to name the file, got %v", err)
			}
		})
	}

	t.Run("unclosed front matter", func(t *testing.T) {
		path := writeEditedArchive(t, formats.Markdown, func(data *ArchiveData) {
			data.Objects[0].Content = "---\nid: g1\n\n# Number of Islands"
		})
		if _, err := ReadArchive(path); err == nil || !strings.Contains(err.Error(), "front matter is not closed") {
			t.Errorf("expected a parse error, got %v", err)
		}
	})
}

func TestSegmentIndex(t *testing.T) {
	tests := []struct {
		segment string
		n       int
		want    int
		ok      bool
	}{
		{"01-graphs", 3, 0, true},
		{"03-empty-topic", 3, 2, true},
		{"100-big.md", 120, 99, true},
		{"04-graphs", 3, 0, false},
		{"00-graphs", 3, 0, false},
		{"graphs", 3, 0, false},
		{"xx-graphs", 3, 0, false},
	}
	for _, tt := range tests {
		got, ok := segmentIndex(tt.segment, tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("segmentIndex(%q, %d) = %d, %v; want %d, %v", tt.segment, tt.n, got, ok, tt.want, tt.ok)
		}
	}
}
