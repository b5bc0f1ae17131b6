package storage

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

// backendContract runs the behaviour every Backend must share
func backendContract(t *testing.T, backend Backend) {
	t.Helper()

	if _, err := backend.Read("missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Read(missing): expected ErrKeyNotFound, got %v", err)
	}

	if err := backend.Write("a", []byte("one")); err != nil {
		t.Fatalf("Write(a) failed: %v", err)
	}
	if err := backend.Write("b", []byte("two")); err != nil {
		t.Fatalf("Write(b) failed: %v", err)
	}
	if err := backend.Write("a", []byte("three")); err != nil {
		t.Fatalf("overwrite of a failed: %v", err)
	}

	for key, want := range map[string]string{"a": "three", "b": "two"} {
		got, err := backend.Read(key)
		if err != nil {
			t.Fatalf("Read(%s) failed: %v", key, err)
		}
		if string(got) != want {
			t.Errorf("Read(%s) = %q, want %q", key, got, want)
		}
	}
}

func TestBackends(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		backendContract(t, NewMemoryBackend())
	})

	t.Run("file", func(t *testing.T) {
		backendContract(t, NewFileBackend(t.TempDir()))
	})

	t.Run("sqlite", func(t *testing.T) {
		backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "db", "probsheet.db"))
		if err != nil {
			t.Fatalf("NewSQLiteBackend failed: %v", err)
		}
		defer func() { _ = backend.Close() }()
		backendContract(t, backend)
	})
}

func TestSQLiteBackendSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probsheet.db")

	first, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	if err := first.Write("question-sheet-storage", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	got, err := second.Read("question-sheet-storage")
	if err != nil {
		t.Fatalf("Read after reopen failed: %v", err)
	}
	if string(got) != `{"version":1}` {
		t.Errorf("unexpected content after reopen: %q", got)
	}
}

func TestMemoryBackendErrorInjection(t *testing.T) {
	backend := NewMemoryBackend()
	backend.WriteErr = errors.New("boom")

	if err := backend.Write("a", []byte("x")); err == nil {
		t.Fatal("expected injected write error")
	}
	if backend.Writes != 0 {
		t.Errorf("failed write was counted: %d", backend.Writes)
	}

	backend.WriteErr = nil
	backend.ReadErr = errors.New("boom")
	_ = backend.Write("a", []byte("x"))
	if _, err := backend.Read("a"); err == nil || errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected injected read error, got %v", err)
	}
}

func TestMemoryBackendCopiesBlobs(t *testing.T) {
	backend := NewMemoryBackend()
	data := []byte("abc")
	_ = backend.Write("k", data)
	data[0] = 'z'

	got, _ := backend.Read("k")
	got[1] = 'z'

	again, _ := backend.Read("k")
	if string(again) != "abc" {
		t.Errorf("stored blob aliased a caller slice: %q", again)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		kind string
		want any
	}{
		{KindFile, &FileBackend{}},
		{"", &FileBackend{}},
		{KindMemory, &MemoryBackend{}},
		{KindSQLite, &SQLiteBackend{}},
	}

	for _, tt := range tests {
		t.Run("kind="+tt.kind, func(t *testing.T) {
			backend, err := Open(tt.kind, dir)
			if err != nil {
				t.Fatalf("Open(%q) failed: %v", tt.kind, err)
			}
			defer func() { _ = backend.Close() }()

			switch tt.want.(type) {
			case *FileBackend:
				if _, ok := backend.(*FileBackend); !ok {
					t.Errorf("expected *FileBackend, got %T", backend)
				}
			case *MemoryBackend:
				if _, ok := backend.(*MemoryBackend); !ok {
					t.Errorf("expected *MemoryBackend, got %T", backend)
				}
			case *SQLiteBackend:
				if _, ok := backend.(*SQLiteBackend); !ok {
					t.Errorf("expected *SQLiteBackend, got %T", backend)
				}
			}
		})
	}

	if _, err := Open("postgres", dir); err == nil {
		t.Error("expected an unknown kind to be rejected")
	}
}

func TestLockManager(t *testing.T) {
	lm := NewLockManager()

	t.Run("writes are exclusive", func(t *testing.T) {
		var wg sync.WaitGroup
		active, maxActive := 0, 0
		var mu sync.Mutex

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = lm.Execute(WriteOperation, func() error {
					mu.Lock()
					active++
					if active > maxActive {
						maxActive = active
					}
					mu.Unlock()

					mu.Lock()
					active--
					mu.Unlock()
					return nil
				})
			}()
		}
		wg.Wait()

		if maxActive != 1 {
			t.Errorf("expected at most one writer at a time, saw %d", maxActive)
		}
	})

	t.Run("error is returned", func(t *testing.T) {
		want := errors.New("failed")
		if err := lm.Execute(ReadOperation, func() error { return want }); !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	})

	t.Run("lock released after panic", func(t *testing.T) {
		func() {
			defer func() { _ = recover() }()
			_ = lm.Execute(WriteOperation, func() error { panic("boom") })
		}()

		done := make(chan struct{})
		go func() {
			_ = lm.Execute(WriteOperation, func() error { return nil })
			close(done)
		}()
		<-done
	})
}
