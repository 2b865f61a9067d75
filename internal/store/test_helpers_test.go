package store

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/roach88/fedeck/internal/deck"
	"github.com/roach88/fedeck/internal/ir"
	"github.com/roach88/fedeck/internal/testutil"
)

// createTestStore creates a new temp-dir store with fixed ids.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewFixedIDGenerator(ids...)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// generateRecord generates m for target and builds an unsaved record.
func generateRecord(t *testing.T, m *ir.Model, target deck.Format) DeckRecord {
	t.Helper()
	hash := ir.MustModelHash(m)
	var buf bytes.Buffer
	report, err := deck.Generate(&buf, target, m)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	return NewDeckRecord(m.Name, hash, report, buf.Bytes())
}
