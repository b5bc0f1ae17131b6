package sheet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/probsheet/types"
)

// The functions in this file are the pure half of the store: each takes a
// sheet value and returns a new one, never writing into the input. Only the
// path from the root to the touched node is copied; untouched siblings share
// their backing arrays with the input. Nothing here writes into a slice it
// did not allocate.
//
// A failed lookup returns the input unchanged together with an error wrapping
// ErrNotFound or ErrIndexOutOfRange.
//
// Text entering the tree goes through validText, so a stored sheet always
// equals the decoding of its own encoding.

// AddTopic appends a topic with no sections
func AddTopic(s types.Sheet, id, title string) (types.Sheet, error) {
	topics := make([]types.Topic, 0, len(s.Topics)+1)
	topics = append(topics, s.Topics...)
	topics = append(topics, types.Topic{ID: id, Title: validText(title), Sections: []types.Section{}})
	s.Topics = topics
	return s, nil
}

// EditTopic replaces the title of a topic
func EditTopic(s types.Sheet, id, title string) (types.Sheet, error) {
	return updateTopic(s, id, func(t types.Topic) (types.Topic, error) {
		t.Title = validText(title)
		return t, nil
	})
}

// DeleteTopic removes a topic together with all of its sections and problems
func DeleteTopic(s types.Sheet, id string) (types.Sheet, error) {
	i := s.FindTopic(id)
	if i < 0 {
		return s, topicNotFound(id)
	}
	s.Topics = remove(s.Topics, i)
	return s, nil
}

// AddSection appends an empty section to a topic
func AddSection(s types.Sheet, topicID, id, title string) (types.Sheet, error) {
	return updateTopic(s, topicID, func(t types.Topic) (types.Topic, error) {
		sections := make([]types.Section, 0, len(t.Sections)+1)
		sections = append(sections, t.Sections...)
		t.Sections = append(sections, types.Section{ID: id, Title: validText(title), Problems: []types.Problem{}})
		return t, nil
	})
}

// EditSection replaces the title of a section
func EditSection(s types.Sheet, topicID, sectionID, title string) (types.Sheet, error) {
	return updateSection(s, topicID, sectionID, func(sec types.Section) (types.Section, error) {
		sec.Title = validText(title)
		return sec, nil
	})
}

// DeleteSection removes a section and its problems from a topic
func DeleteSection(s types.Sheet, topicID, sectionID string) (types.Sheet, error) {
	return updateTopic(s, topicID, func(t types.Topic) (types.Topic, error) {
		i := t.FindSection(sectionID)
		if i < 0 {
			return t, sectionNotFound(topicID, sectionID)
		}
		t.Sections = remove(t.Sections, i)
		return t, nil
	})
}

// AddProblem appends a new, not yet completed problem to a section
func AddProblem(s types.Sheet, topicID, sectionID, id string, fields types.ProblemFields) (types.Sheet, error) {
	return updateSection(s, topicID, sectionID, func(sec types.Section) (types.Section, error) {
		problems := make([]types.Problem, 0, len(sec.Problems)+1)
		problems = append(problems, sec.Problems...)
		sec.Problems = append(problems, validProblem(types.Problem{
			ID:         id,
			Title:      fields.Title,
			URL:        fields.URL,
			Difficulty: fields.Difficulty,
			Notes:      fields.Notes,
		}))
		return sec, nil
	})
}

// EditProblem merges the non-nil fields of patch into a problem
func EditProblem(s types.Sheet, topicID, sectionID, problemID string, patch types.ProblemPatch) (types.Sheet, error) {
	return updateProblem(s, topicID, sectionID, problemID, func(p types.Problem) types.Problem {
		return validProblem(patch.Apply(p))
	})
}

// DeleteProblem removes a problem from its section
func DeleteProblem(s types.Sheet, topicID, sectionID, problemID string) (types.Sheet, error) {
	return updateSection(s, topicID, sectionID, func(sec types.Section) (types.Section, error) {
		i := sec.FindProblem(problemID)
		if i < 0 {
			return sec, problemNotFound(topicID, sectionID, problemID)
		}
		sec.Problems = remove(sec.Problems, i)
		return sec, nil
	})
}

// ToggleProblem flips the completed flag of a problem
func ToggleProblem(s types.Sheet, topicID, sectionID, problemID string) (types.Sheet, error) {
	return updateProblem(s, topicID, sectionID, problemID, func(p types.Problem) types.Problem {
		p.Completed = !p.Completed
		return p
	})
}

// ReorderTopics moves the topic at oldIndex to newIndex
func ReorderTopics(s types.Sheet, oldIndex, newIndex int) (types.Sheet, error) {
	topics, err := move(s.Topics, oldIndex, newIndex)
	if err != nil {
		return s, fmt.Errorf("reorder topics: %w", err)
	}
	s.Topics = topics
	return s, nil
}

// ReorderSections moves a section within its topic
func ReorderSections(s types.Sheet, topicID string, oldIndex, newIndex int) (types.Sheet, error) {
	return updateTopic(s, topicID, func(t types.Topic) (types.Topic, error) {
		sections, err := move(t.Sections, oldIndex, newIndex)
		if err != nil {
			return t, fmt.Errorf("reorder sections of topic %q: %w", topicID, err)
		}
		t.Sections = sections
		return t, nil
	})
}

// ReorderProblems moves a problem within its section
func ReorderProblems(s types.Sheet, topicID, sectionID string, oldIndex, newIndex int) (types.Sheet, error) {
	return updateSection(s, topicID, sectionID, func(sec types.Section) (types.Section, error) {
		problems, err := move(sec.Problems, oldIndex, newIndex)
		if err != nil {
			return sec, fmt.Errorf("reorder problems of section %q: %w", sectionID, err)
		}
		sec.Problems = problems
		return sec, nil
	})
}

// ReplaceTopics swaps the whole topic list, as used by import and restore.
// The caller's slice is deep-copied so later writes to it do not leak in.
func ReplaceTopics(s types.Sheet, topics []types.Topic) (types.Sheet, error) {
	replaced := make([]types.Topic, len(topics))
	for i, t := range topics {
		replaced[i] = validTopic(t.Clone())
	}
	s.Topics = replaced
	return s, nil
}

func updateTopic(s types.Sheet, topicID string, fn func(types.Topic) (types.Topic, error)) (types.Sheet, error) {
	i := s.FindTopic(topicID)
	if i < 0 {
		return s, topicNotFound(topicID)
	}
	updated, err := fn(s.Topics[i])
	if err != nil {
		return s, err
	}
	s.Topics = replaceAt(s.Topics, i, updated)
	return s, nil
}

func updateSection(s types.Sheet, topicID, sectionID string, fn func(types.Section) (types.Section, error)) (types.Sheet, error) {
	return updateTopic(s, topicID, func(t types.Topic) (types.Topic, error) {
		i := t.FindSection(sectionID)
		if i < 0 {
			return t, sectionNotFound(topicID, sectionID)
		}
		updated, err := fn(t.Sections[i])
		if err != nil {
			return t, err
		}
		t.Sections = replaceAt(t.Sections, i, updated)
		return t, nil
	})
}

func updateProblem(s types.Sheet, topicID, sectionID, problemID string, fn func(types.Problem) types.Problem) (types.Sheet, error) {
	return updateSection(s, topicID, sectionID, func(sec types.Section) (types.Section, error) {
		i := sec.FindProblem(problemID)
		if i < 0 {
			return sec, problemNotFound(topicID, sectionID, problemID)
		}
		sec.Problems = replaceAt(sec.Problems, i, fn(sec.Problems[i]))
		return sec, nil
	})
}

// replaceAt returns a copy of list with element i replaced
func replaceAt[T any](list []T, i int, v T) []T {
	out := append([]T(nil), list...)
	out[i] = v
	return out
}

// remove returns a copy of list without element i
func remove[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func topicNotFound(topicID string) error {
	return fmt.Errorf("topic %q: %w", topicID, ErrNotFound)
}

func sectionNotFound(topicID, sectionID string) error {
	return fmt.Errorf("section %q in topic %q: %w", sectionID, topicID, ErrNotFound)
}

func problemNotFound(topicID, sectionID, problemID string) error {
	return fmt.Errorf("problem %q in section %q of topic %q: %w", problemID, sectionID, topicID, ErrNotFound)
}

// validText replaces each byte that is not valid UTF-8 with U+FFFD, matching
// what encoding/json writes for it
func validText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(r)
	}
	return b.String()
}

func validProblem(p types.Problem) types.Problem {
	p.Title = validText(p.Title)
	p.URL = validText(p.URL)
	p.Difficulty = types.Difficulty(validText(string(p.Difficulty)))
	p.Notes = validText(p.Notes)
	return p
}

// validTopic normalizes a topic the caller owns, in place
func validTopic(t types.Topic) types.Topic {
	t.Title = validText(t.Title)
	for i := range t.Sections {
		sec := &t.Sections[i]
		sec.Title = validText(sec.Title)
		for j := range sec.Problems {
			sec.Problems[j] = validProblem(sec.Problems[j])
		}
	}
	return t
}
