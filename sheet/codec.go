package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/arthur-debert/probsheet/types"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the envelope version written by Encode
const FormatVersion = 1

// ErrInvalidSheet is returned when a decoded or imported sheet breaks the
// structural rules checked by Validate.
var ErrInvalidSheet = errors.New("invalid sheet")

// envelope is the persisted shape: the sheet under "state" plus a version
type envelope struct {
	Version int         `json:"version" yaml:"version"`
	State   types.Sheet `json:"state" yaml:"state"`
}

// Encode serializes the sheet to its persisted JSON form
func Encode(s types.Sheet) ([]byte, error) {
	data, err := json.Marshal(envelope{Version: FormatVersion, State: s})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sheet: %w", err)
	}
	return data, nil
}

// Decode parses bytes produced by Encode
func Decode(data []byte) (types.Sheet, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return types.Sheet{}, fmt.Errorf("failed to parse sheet: %w", err)
	}
	return checkEnvelope(env)
}

// EncodeYAML serializes the sheet to the human-editable YAML form
func EncodeYAML(s types.Sheet) ([]byte, error) {
	data, err := yaml.Marshal(envelope{Version: FormatVersion, State: s})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sheet yaml: %w", err)
	}
	return data, nil
}

// DecodeYAML parses bytes produced by EncodeYAML
func DecodeYAML(data []byte) (types.Sheet, error) {
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return types.Sheet{}, fmt.Errorf("failed to parse sheet yaml: %w", err)
	}
	return checkEnvelope(env)
}

func checkEnvelope(env envelope) (types.Sheet, error) {
	if env.Version < 1 || env.Version > FormatVersion {
		return types.Sheet{}, fmt.Errorf("version %d: %w", env.Version, ErrUnsupportedVersion)
	}
	if err := Validate(env.State.Topics); err != nil {
		return types.Sheet{}, err
	}
	return env.State, nil
}

// Validate checks that every node has a valid UTF-8 id and that ids are
// unique within their collection. Field contents are not inspected.
func Validate(topics []types.Topic) error {
	topicIDs := make(map[string]bool, len(topics))
	for _, t := range topics {
		if err := checkID("topic", t.ID, topicIDs); err != nil {
			return err
		}
		sectionIDs := make(map[string]bool, len(t.Sections))
		for _, sec := range t.Sections {
			if err := checkID("section", sec.ID, sectionIDs); err != nil {
				return err
			}
			problemIDs := make(map[string]bool, len(sec.Problems))
			for _, p := range sec.Problems {
				if err := checkID("problem", p.ID, problemIDs); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkID(kind, id string, seen map[string]bool) error {
	if id == "" {
		return fmt.Errorf("%s with empty id: %w", kind, ErrInvalidSheet)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%s id %q is not valid UTF-8: %w", kind, id, ErrInvalidSheet)
	}
	if seen[id] {
		return fmt.Errorf("duplicate %s id %q: %w", kind, id, ErrInvalidSheet)
	}
	seen[id] = true
	return nil
}
