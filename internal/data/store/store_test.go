package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBackendReplacesLocal(t *testing.T) {
	local := []CachedTicket{
		{ID: "5", Assento: "A01", Codigo: "OLD"},
		{ID: "7", Assento: "B02", Codigo: "KEEP"},
	}
	remote := []CachedTicket{
		{ID: "5", Assento: "C09", Codigo: "NEW"},
	}

	merged := Merge(local, remote)
	require.Len(t, merged, 2)

	byID := map[string]CachedTicket{}
	for _, ticket := range merged {
		byID[ticket.ID] = ticket
	}

	// Exactly one entry for id 5, with the backend's data.
	assert.Equal(t, "C09", byID["5"].Assento)
	assert.Equal(t, "NEW", byID["5"].Codigo)
	assert.Equal(t, "KEEP", byID["7"].Codigo)
}

func TestMergeKeyFallsBackToCode(t *testing.T) {
	local := []CachedTicket{{Codigo: "X1", Assento: "A01"}}
	remote := []CachedTicket{{Codigo: "X1", Assento: "A02"}}

	merged := Merge(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, "A02", merged[0].Assento)
}

func TestMergeEmptySides(t *testing.T) {
	remote := []CachedTicket{{ID: "1"}}

	assert.Equal(t, remote, Merge(nil, remote))
	assert.Equal(t, remote, Merge(remote, nil))
	assert.Empty(t, Merge(nil, nil))
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "cache", "tickets.json"))

	// Missing file reads as empty.
	tickets, err := s.Load(ctx, "cli-1")
	require.NoError(t, err)
	assert.Empty(t, tickets)

	saved := []CachedTicket{
		{ID: "1", Assento: "A01", Codigo: "C1", SessaoID: "s1"},
		{ID: "2", Assento: "A02", Codigo: "C2", SessaoID: "s1"},
	}
	require.NoError(t, s.Save(ctx, "cli-1", saved))

	tickets, err = s.Load(ctx, "cli-1")
	require.NoError(t, err)
	assert.Equal(t, saved, tickets)

	// Accounts are isolated.
	tickets, err = s.Load(ctx, "cli-2")
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestFileStoreOverwritesAccountOnly(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "tickets.json"))

	require.NoError(t, s.Save(ctx, "cli-1", []CachedTicket{{ID: "1"}}))
	require.NoError(t, s.Save(ctx, "cli-2", []CachedTicket{{ID: "9"}}))
	require.NoError(t, s.Save(ctx, "cli-1", []CachedTicket{{ID: "2"}}))

	one, err := s.Load(ctx, "cli-1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "2", one[0].ID)

	two, err := s.Load(ctx, "cli-2")
	require.NoError(t, err)
	require.Len(t, two, 1)
	assert.Equal(t, "9", two[0].ID)
}
