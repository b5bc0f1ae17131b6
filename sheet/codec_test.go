package sheet

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/probsheet/testutil"
	"github.com/arthur-debert/probsheet/types"
	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sheets := map[string]types.Sheet{
		"universe": testutil.Universe(),
		"default":  DefaultSheet(testutil.Epoch),
		"empty":    {Title: "Nothing", LastUpdated: testutil.Epoch, Topics: []types.Topic{}},
	}

	for name, want := range sheets {
		t.Run(name+"/json", func(t *testing.T) {
			data, err := Encode(want)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run(name+"/yaml", func(t *testing.T) {
			data, err := EncodeYAML(want)
			if err != nil {
				t.Fatalf("EncodeYAML failed: %v", err)
			}
			got, err := DecodeYAML(data)
			if err != nil {
				t.Fatalf("DecodeYAML failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeShape(t *testing.T) {
	data, err := Encode(testutil.Universe())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("encoded sheet is not a JSON object: %v", err)
	}
	if string(raw["version"]) != "1" {
		t.Errorf("expected version 1, got %s", raw["version"])
	}

	var state map[string]json.RawMessage
	if err := json.Unmarshal(raw["state"], &state); err != nil {
		t.Fatalf("state is not an object: %v", err)
	}
	for _, key := range []string{"title", "lastUpdated", "topics"} {
		if _, ok := state[key]; !ok {
			t.Errorf("state is missing %q", key)
		}
	}

	// empty notes are omitted, empty child lists are not
	if !strings.Contains(string(data), `"sections":[]`) {
		t.Error("expected the empty topic to encode an empty sections list")
	}
	if strings.Count(string(data), `"notes"`) != 1 {
		t.Error("expected only the problem with notes to carry a notes field")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"unsupported version", `{"version":2,"state":{"title":"x","topics":[]}}`, ErrUnsupportedVersion},
		{"missing version", `{"state":{"title":"x","topics":[]}}`, ErrUnsupportedVersion},
		{"empty topic id", `{"version":1,"state":{"topics":[{"id":"","title":"A","sections":[]}]}}`, ErrInvalidSheet},
		{"duplicate section id", `{"version":1,"state":{"topics":[{"id":"a","title":"A","sections":[{"id":"s","title":"S","problems":[]},{"id":"s","title":"T","problems":[]}]}]}}`, ErrInvalidSheet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("expected a syntax error for garbage input")
	}
	if _, err := DecodeYAML([]byte("version: [")); err == nil {
		t.Error("expected a syntax error for broken yaml")
	}
}

func TestValidateScopesIDsPerCollection(t *testing.T) {
	// the same id may appear in different collections
	topics := []types.Topic{
		{ID: "x", Sections: []types.Section{{ID: "x", Problems: []types.Problem{{ID: "x"}}}}},
		{ID: "y", Sections: []types.Section{{ID: "x", Problems: []types.Problem{{ID: "x"}}}}},
	}
	if err := Validate(topics); err != nil {
		t.Errorf("expected ids to be scoped per collection, got %v", err)
	}

	topics[1].Sections[0].Problems = append(topics[1].Sections[0].Problems, types.Problem{ID: "x"})
	if err := Validate(topics); !errors.Is(err, ErrInvalidSheet) {
		t.Errorf("expected ErrInvalidSheet for duplicate problem ids, got %v", err)
	}

	if err := Validate([]types.Topic{{ID: "t\xff"}}); !errors.Is(err, ErrInvalidSheet) {
		t.Errorf("expected ErrInvalidSheet for an id that is not valid UTF-8, got %v", err)
	}
}
