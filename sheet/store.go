// Package sheet holds the problem sheet: a Topic → Section → Problem tree
// with a title and a last-modified timestamp.
//
// The package has two halves. tree.go contains pure functions that take a
// sheet value and return a new one. Store wraps them: it owns the current
// value, applies one mutation at a time, stamps LastUpdated and writes the
// encoded sheet to a storage.Backend after every successful change.
//
// Lookups that do not resolve are no-ops: the sheet, its timestamp and the
// backend are untouched. The error is still returned (wrapping ErrNotFound or
// ErrIndexOutOfRange) so callers can tell a no-op from a change.
//
// Persistence is best-effort. A failed write is logged and otherwise
// ignored; the in-memory sheet stays authoritative.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arthur-debert/probsheet/sheet/storage"
	"github.com/arthur-debert/probsheet/types"
	"github.com/google/uuid"
)

// StorageKey is the backend key the sheet is persisted under
const StorageKey = "question-sheet-storage"

// Store owns the current sheet and the named operations over it
type Store struct {
	backend     storage.Backend
	key         string
	lockManager *storage.LockManager
	logger      *slog.Logger

	// timeFunc is used to get the current time, defaults to time.Now
	timeFunc func() time.Time
	idFunc   func() string

	sheet    types.Sheet
	restored bool
}

// New creates a store over backend and loads the persisted sheet. Missing or
// unreadable data falls back to DefaultSheet.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		key:         StorageKey,
		lockManager: storage.NewLockManager(),
		timeFunc:    time.Now,
		idFunc:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.load()
	return s
}

// load restores the sheet from the backend or seeds the default hierarchy
func (s *Store) load() {
	data, err := s.backend.Read(s.key)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		s.logger.Debug("no persisted sheet, seeding default", "key", s.key)
	case err != nil:
		s.logger.Warn("failed to read persisted sheet, seeding default", "key", s.key, "error", err)
	default:
		restored, err := Decode(data)
		if err == nil {
			s.sheet = restored
			s.restored = true
			s.logger.Debug("sheet restored", "key", s.key, "topics", len(restored.Topics))
			return
		}
		s.logger.Warn("persisted sheet is malformed, seeding default", "key", s.key, "error", err)
	}
	s.sheet = DefaultSheet(s.now())
}

// Restored reports whether the sheet was loaded from the backend rather than
// seeded from the default hierarchy
func (s *Store) Restored() bool {
	return s.restored
}

// Sheet returns a snapshot of the current sheet
func (s *Store) Sheet() types.Sheet {
	var out types.Sheet
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		out = s.sheet.Clone()
		return nil
	})
	return out
}

// Stats returns completion counts over the whole sheet
func (s *Store) Stats() types.Stats {
	var out types.Stats
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		out = ComputeStats(s.sheet)
		return nil
	})
	return out
}

// Filter returns a snapshot of the sheet restricted to a search query
func (s *Store) Filter(query string) types.Sheet {
	return Filter(s.Sheet(), query)
}

// AddTopic appends a topic and returns its id
func (s *Store) AddTopic(title string) (string, error) {
	return s.add("add_topic", func(sh types.Sheet, id string) (types.Sheet, error) {
		return AddTopic(sh, id, title)
	})
}

// EditTopic renames a topic
func (s *Store) EditTopic(id, title string) error {
	return s.mutate("edit_topic", func(sh types.Sheet) (types.Sheet, error) {
		return EditTopic(sh, id, title)
	})
}

// DeleteTopic removes a topic and everything under it
func (s *Store) DeleteTopic(id string) error {
	return s.mutate("delete_topic", func(sh types.Sheet) (types.Sheet, error) {
		return DeleteTopic(sh, id)
	})
}

// AddSection appends a section to a topic and returns its id
func (s *Store) AddSection(topicID, title string) (string, error) {
	return s.add("add_section", func(sh types.Sheet, id string) (types.Sheet, error) {
		return AddSection(sh, topicID, id, title)
	})
}

// EditSection renames a section
func (s *Store) EditSection(topicID, sectionID, title string) error {
	return s.mutate("edit_section", func(sh types.Sheet) (types.Sheet, error) {
		return EditSection(sh, topicID, sectionID, title)
	})
}

// DeleteSection removes a section and its problems
func (s *Store) DeleteSection(topicID, sectionID string) error {
	return s.mutate("delete_section", func(sh types.Sheet) (types.Sheet, error) {
		return DeleteSection(sh, topicID, sectionID)
	})
}

// AddProblem appends a problem to a section and returns its id
func (s *Store) AddProblem(topicID, sectionID string, fields types.ProblemFields) (string, error) {
	return s.add("add_problem", func(sh types.Sheet, id string) (types.Sheet, error) {
		return AddProblem(sh, topicID, sectionID, id, fields)
	})
}

// EditProblem merges patch into a problem
func (s *Store) EditProblem(topicID, sectionID, problemID string, patch types.ProblemPatch) error {
	return s.mutate("edit_problem", func(sh types.Sheet) (types.Sheet, error) {
		return EditProblem(sh, topicID, sectionID, problemID, patch)
	})
}

// DeleteProblem removes a problem
func (s *Store) DeleteProblem(topicID, sectionID, problemID string) error {
	return s.mutate("delete_problem", func(sh types.Sheet) (types.Sheet, error) {
		return DeleteProblem(sh, topicID, sectionID, problemID)
	})
}

// ToggleProblemStatus flips the completed flag of a problem
func (s *Store) ToggleProblemStatus(topicID, sectionID, problemID string) error {
	return s.mutate("toggle_problem", func(sh types.Sheet) (types.Sheet, error) {
		return ToggleProblem(sh, topicID, sectionID, problemID)
	})
}

// ReorderTopics moves the topic at oldIndex to newIndex
func (s *Store) ReorderTopics(oldIndex, newIndex int) error {
	return s.mutate("reorder_topics", func(sh types.Sheet) (types.Sheet, error) {
		return ReorderTopics(sh, oldIndex, newIndex)
	})
}

// ReorderSections moves a section within its topic
func (s *Store) ReorderSections(topicID string, oldIndex, newIndex int) error {
	return s.mutate("reorder_sections", func(sh types.Sheet) (types.Sheet, error) {
		return ReorderSections(sh, topicID, oldIndex, newIndex)
	})
}

// ReorderProblems moves a problem within its section
func (s *Store) ReorderProblems(topicID, sectionID string, oldIndex, newIndex int) error {
	return s.mutate("reorder_problems", func(sh types.Sheet) (types.Sheet, error) {
		return ReorderProblems(sh, topicID, sectionID, oldIndex, newIndex)
	})
}

// ReplaceAll swaps the whole topic list. Topics with missing or duplicate
// ids are rejected with ErrInvalidSheet and nothing changes.
func (s *Store) ReplaceAll(topics []types.Topic) error {
	if err := Validate(topics); err != nil {
		return fmt.Errorf("replace all: %w", err)
	}
	return s.mutate("replace_all", func(sh types.Sheet) (types.Sheet, error) {
		return ReplaceTopics(sh, topics)
	})
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

// add runs a mutation that creates a node, handing it a fresh id
func (s *Store) add(op string, fn func(types.Sheet, string) (types.Sheet, error)) (string, error) {
	var id string
	err := s.mutate(op, func(sh types.Sheet) (types.Sheet, error) {
		id = s.idFunc()
		return fn(sh, id)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// mutate applies fn to the current sheet under the write lock. On success it
// stamps LastUpdated and persists; on failure nothing changes.
func (s *Store) mutate(op string, fn func(types.Sheet) (types.Sheet, error)) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		next, err := fn(s.sheet)
		if err != nil {
			s.logger.Debug("mutation skipped", "op", op, "error", err)
			return err
		}

		// LastUpdated never moves backwards, even if the clock does
		now := s.now()
		if now.Before(s.sheet.LastUpdated) {
			now = s.sheet.LastUpdated
		}
		next.LastUpdated = now
		s.sheet = next

		s.logger.Debug("mutation applied", "op", op, "last_updated", now)
		s.persist(op)
		return nil
	})
}

// persist writes the current sheet to the backend. Caller holds the lock.
func (s *Store) persist(op string) {
	data, err := Encode(s.sheet)
	if err != nil {
		s.logger.Warn("failed to encode sheet", "op", op, "error", err)
		return
	}
	if err := s.backend.Write(s.key, data); err != nil {
		s.logger.Warn("failed to persist sheet", "op", op, "key", s.key, "error", err)
	}
}

func (s *Store) now() time.Time {
	return s.timeFunc().UTC()
}
