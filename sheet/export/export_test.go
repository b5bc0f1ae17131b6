package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/probsheet/sheet"
	"github.com/arthur-debert/probsheet/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestSheetRoundTrip(t *testing.T) {
	for _, kind := range []string{KindJSON, KindYAML} {
		t.Run(kind, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Sheet(testutil.Universe(), kind, &buf); err != nil {
				t.Fatalf("Sheet failed: %v", err)
			}

			got, err := Read(&buf, kind)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if diff := cmp.Diff(testutil.Universe(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSheetJSONIsIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := Sheet(sheet.DefaultSheet(testutil.Epoch), KindJSON, &buf); err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"state\": {") {
		t.Errorf("expected indented output, got:\n%s", buf.String())
	}
}

func TestUnsupportedKinds(t *testing.T) {
	if err := Sheet(testutil.Universe(), KindArchive, &bytes.Buffer{}); err == nil {
		t.Error("expected Sheet to reject the archive kind")
	}
	if _, err := Read(strings.NewReader("{}"), "toml"); err == nil {
		t.Error("expected Read to reject an unknown kind")
	}
}

func TestKindFromPath(t *testing.T) {
	tests := map[string]string{
		"sheet.json":        KindJSON,
		"backup/Sheet.YAML": KindYAML,
		"sheet.yml":         KindYAML,
		"export.zip":        KindArchive,
	}
	for path, want := range tests {
		got, err := KindFromPath(path)
		if err != nil || got != want {
			t.Errorf("KindFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := KindFromPath("sheet.txt"); err == nil {
		t.Error("expected an unknown extension to fail")
	}
}

func TestProblemDocument(t *testing.T) {
	u := testutil.Universe()
	topic := u.Topics[1]
	section := topic.Sections[0]

	doc := ProblemDocument(topic, section, 2, section.Problems[1])
	if doc.Title != "House Robber" || doc.Content != section.Problems[1].Notes {
		t.Errorf("unexpected title/content: %+v", doc)
	}

	want := map[string]any{
		"id":         "d2",
		"url":        "https://leetcode.com/problems/house-robber/",
		"difficulty": "Medium",
		"completed":  false,
		"topic":      "Dynamic Programming",
		"section":    "1-D",
		"order":      2,
	}
	if diff := cmp.Diff(want, doc.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}
