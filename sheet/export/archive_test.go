package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/probsheet/formats"
	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestBuildArchive(t *testing.T) {
	data, err := BuildArchive(testutil.Universe(), formats.Markdown)
	if err != nil {
		t.Fatalf("BuildArchive failed: %v", err)
	}

	var names []string
	for _, obj := range data.Objects {
		names = append(names, obj.Filename)
	}
	want := []string{
		"01-graphs/01-breadth-first/01-number-of-islands.md",
		"01-graphs/01-breadth-first/02-rotting-oranges.md",
		"01-graphs/02-depth-first/01-clone-graph.md",
		"02-dynamic-programming/01-1-d/01-climbing-stairs.md",
		"02-dynamic-programming/01-1-d/02-house-robber.md",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("archive layout mismatch (-want +got):\n%s", diff)
	}

	robber := data.Objects[4].Content
	if !strings.Contains(robber, "# House Robber") || !strings.Contains(robber, "difficulty: Medium") {
		t.Errorf("unexpected document content:\n%s", robber)
	}

	decoded, err := sheet.Decode(data.Sheet)
	if err != nil {
		t.Fatalf("embedded sheet does not decode: %v", err)
	}
	if diff := cmp.Diff(testutil.Universe(), decoded); diff != "" {
		t.Errorf("embedded sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArchiveDefaultsToPlainText(t *testing.T) {
	data, err := BuildArchive(sheet.DefaultSheet(testutil.Epoch), nil)
	if err != nil {
		t.Fatalf("BuildArchive failed: %v", err)
	}
	if got := data.Objects[0].Filename; got != "01-arrays-hashing/01-easy-basics/01-two-sum.txt" {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.zip")

	if err := Archive(testutil.Universe(), formats.PlainText, path); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	extracted, err := ExtractArchive(path)
	if err != nil {
		t.Fatalf("ExtractArchive failed: %v", err)
	}
	if len(extracted.Objects) != 5 {
		t.Errorf("expected 5 problem documents, got %d", len(extracted.Objects))
	}

	built, _ := BuildArchive(testutil.Universe(), formats.PlainText)
	for i, obj := range extracted.Objects {
		if obj.Filename != built.Objects[i].Filename || obj.Content != built.Objects[i].Content {
			t.Errorf("object %d differs after extraction: %q", i, obj.Filename)
		}
	}

	got, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	if diff := cmp.Diff(testutil.Universe(), got); diff != "" {
		t.Errorf("archived sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractArchiveWithoutSheet(t *testing.T) {
	data := &ArchiveData{Objects: []ObjectFile{{Filename: "a.txt", Content: "x", Modified: testutil.Epoch}}}
	var buf bytes.Buffer
	if err := WriteArchive(data, &buf); err != nil {
		t.Fatalf("WriteArchive failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "broken.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	// WriteArchive always writes the sheet entry, even when empty
	if _, err := ReadArchive(path); err == nil {
		t.Error("expected an archive with an empty sheet entry to fail to decode")
	}

	if _, err := ExtractArchive(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Error("expected a missing archive to fail")
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := map[string]string{
		"Arrays & Hashing":     "arrays-hashing",
		"  Two   Pointers  ":   "two-pointers",
		"3Sum":                 "3sum",
		"Sliding Window (Max)": "sliding-window-max",
		"!!!":                  "untitled",
		"Ünïcode Tïtle":        "ünïcode-tïtle",
	}
	for in, want := range tests {
		if got := sanitizeTitle(in); got != want {
			t.Errorf("sanitizeTitle(%q) = %q, want %q", in, got, want)
		}
	}

	long := sanitizeTitle(strings.Repeat("ab ", 30))
	if want := strings.Repeat("ab-", 13) + "a"; long != want {
		t.Errorf("expected truncation to %q, got %q", want, long)
	}
}
