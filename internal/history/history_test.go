package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(storage.NewMemoryStore())
}

// exactlyOneLatest asserts the single-latest-marker invariant
func exactlyOneLatest(t *testing.T, entries []types.HistoryEntry) types.HistoryEntry {
	t.Helper()
	var latest []types.HistoryEntry
	for _, e := range entries {
		if e.IsLatest {
			latest = append(latest, e)
		}
	}
	require.Len(t, latest, 1, "expected exactly one isLatest entry")
	return latest[0]
}

func TestSeed_CreatesInitialVersion(t *testing.T) {
	s := newStore(t)
	doc := types.DefaultDocument()

	require.NoError(t, s.Seed("p1", doc))

	entries, err := s.Entries("p1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, InitialMessage, entries[0].Message)
	assert.True(t, entries[0].IsLatest)
	assert.Equal(t, doc, entries[0].Snapshot)
}

func TestSeed_IsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Seed("p1", types.DefaultDocument()))
	require.NoError(t, s.Seed("p1", types.DefaultDocument()))

	entries, err := s.Entries("p1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCommit_AppendsAndMovesLatestMarker(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Seed("p1", types.DefaultDocument()))

	doc := types.DefaultDocument()
	doc.Title = "Senior Software Engineer"
	entry, err := s.Commit("p1", doc, "Change my title")
	require.NoError(t, err)
	assert.True(t, entry.IsLatest)

	entries, err := s.Entries("p1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	latest := exactlyOneLatest(t, entries)
	assert.Equal(t, "Change my title", latest.Message)
	assert.Equal(t, "Senior Software Engineer", latest.Snapshot.Title)
	assert.Greater(t, entries[1].Timestamp, entries[0].Timestamp)
}

func TestCommit_TimestampsAreUnique(t *testing.T) {
	s := newStore(t)
	doc := types.DefaultDocument()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		entry, err := s.Commit("p1", doc, "edit")
		require.NoError(t, err)
		assert.False(t, seen[entry.Timestamp], "duplicate timestamp %s", entry.Timestamp)
		seen[entry.Timestamp] = true
	}
}

func TestCommit_WritesActiveDocument(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := New(kv)

	doc := types.DefaultDocument()
	doc.Name = "Ada Lovelace"
	_, err := s.Commit("p1", doc, "Set name")
	require.NoError(t, err)

	data, err := kv.Get(storage.ResumeKey("p1"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ada Lovelace")
}

func TestRevert_MovesMarkerWithoutDroppingEntries(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Seed("p1", types.DefaultDocument()))

	v2 := types.DefaultDocument()
	v2.Title = "v2"
	second, err := s.Commit("p1", v2, "second")
	require.NoError(t, err)

	v3 := types.DefaultDocument()
	v3.Title = "v3"
	_, err = s.Commit("p1", v3, "third")
	require.NoError(t, err)

	require.NoError(t, s.Revert("p1", second.Timestamp))

	entries, err := s.Entries("p1")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	latest := exactlyOneLatest(t, entries)
	assert.Equal(t, "v2", latest.Snapshot.Title)
}

func TestRevert_IsReversible(t *testing.T) {
	s := newStore(t)
	first, err := s.Commit("p1", types.DefaultDocument(), "first")
	require.NoError(t, err)

	v2 := types.DefaultDocument()
	v2.Title = "v2"
	second, err := s.Commit("p1", v2, "second")
	require.NoError(t, err)

	require.NoError(t, s.Revert("p1", first.Timestamp))
	require.NoError(t, s.Revert("p1", second.Timestamp))

	latest, err := s.Latest("p1")
	require.NoError(t, err)
	assert.Equal(t, second.Timestamp, latest.Timestamp)
	assert.Equal(t, v2, latest.Snapshot)
}

func TestRevert_UnknownTimestamp(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Seed("p1", types.DefaultDocument()))

	err := s.Revert("p1", "2001-01-01T00:00:00Z")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "p1", nf.ProjectID)
}

func TestLatest_EmptyHistory(t *testing.T) {
	s := newStore(t)
	_, err := s.Latest("p1")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestInvariant_AfterMixedCommitsAndReverts(t *testing.T) {
	s := newStore(t)
	var stamps []string
	for i := 0; i < 5; i++ {
		entry, err := s.Commit("p1", types.DefaultDocument(), "edit")
		require.NoError(t, err)
		stamps = append(stamps, entry.Timestamp)
	}

	require.NoError(t, s.Revert("p1", stamps[1]))
	_, err := s.Commit("p1", types.DefaultDocument(), "after revert")
	require.NoError(t, err)
	require.NoError(t, s.Revert("p1", stamps[4]))

	entries, err := s.Entries("p1")
	require.NoError(t, err)
	assert.Len(t, entries, 6)
	exactlyOneLatest(t, entries)
}

func TestEntries_ProjectsAreIsolated(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Seed("p1", types.DefaultDocument()))

	entries, err := s.Entries("p2")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
