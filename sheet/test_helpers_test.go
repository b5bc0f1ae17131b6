package sheet

import (
	"testing"
	"time"

	"github.com/arthur-debert/probsheet/sheet/storage"
	"github.com/arthur-debert/probsheet/testutil"
	"github.com/arthur-debert/probsheet/types"
)

// newTestStore creates a store over backend with a deterministic clock that
// starting a minute after testutil.Epoch, advancing one second per reading,
// and sequential ids
func newTestStore(t *testing.T, backend storage.Backend) (*Store, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(testutil.Epoch.Add(time.Minute), time.Second)
	store := New(backend,
		WithTimeFunc(clock.Now),
		WithIDFunc(testutil.IDSequence("id")),
	)
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

// newUniverseStore creates a store preloaded with the fixture universe
func newUniverseStore(t *testing.T) (*Store, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	data, err := Encode(testutil.Universe())
	if err != nil {
		t.Fatalf("failed to encode universe: %v", err)
	}
	if err := backend.Write(StorageKey, data); err != nil {
		t.Fatalf("failed to seed backend: %v", err)
	}
	backend.Writes = 0

	store, _ := newTestStore(t, backend)
	if !store.Restored() {
		t.Fatal("expected store to restore the seeded universe")
	}
	return store, backend
}

func mustSection(t *testing.T, s types.Sheet, topicID, sectionID string) types.Section {
	t.Helper()
	ti := s.FindTopic(topicID)
	if ti < 0 {
		t.Fatalf("topic %q not found", topicID)
	}
	si := s.Topics[ti].FindSection(sectionID)
	if si < 0 {
		t.Fatalf("section %q not found in topic %q", sectionID, topicID)
	}
	return s.Topics[ti].Sections[si]
}

func mustProblem(t *testing.T, s types.Sheet, topicID, sectionID, problemID string) types.Problem {
	t.Helper()
	sec := mustSection(t, s, topicID, sectionID)
	pi := sec.FindProblem(problemID)
	if pi < 0 {
		t.Fatalf("problem %q not found", problemID)
	}
	return sec.Problems[pi]
}
