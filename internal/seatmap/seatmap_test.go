package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsGroupedAndSorted(t *testing.T) {
	m := New(6, map[string]bool{
		"B02": true,
		"A10": false,
		"A02": true,
		"B01": false,
		"A01": true,
		"C03": true,
	})

	rows := m.Rows()
	require.Len(t, rows, 3)

	assert.Equal(t, "A", rows[0].Letra)
	assert.Equal(t, "B", rows[1].Letra)
	assert.Equal(t, "C", rows[2].Letra)

	// Numeric order inside a row: A02 before A10.
	ids := make([]string, 0, len(rows[0].Assentos))
	for _, seat := range rows[0].Assentos {
		ids = append(ids, seat.ID)
	}
	assert.Equal(t, []string{"A01", "A02", "A10"}, ids)
}

func TestAvailableUnknownSeat(t *testing.T) {
	m := New(1, map[string]bool{"A01": true})

	assert.True(t, m.Available("A01"))
	assert.False(t, m.Available("Z99"))
}

func TestFallbackDeterministic(t *testing.T) {
	a := NewFallback("sessao-42")
	b := NewFallback("sessao-42")
	other := NewFallback("sessao-43")

	require.True(t, a.Fallback)
	require.Equal(t, a.Size(), b.Size())

	same := true
	differs := false
	for _, row := range a.Rows() {
		for _, seat := range row.Assentos {
			if b.Available(seat.ID) != seat.Disponivel {
				same = false
			}
			if other.Available(seat.ID) != seat.Disponivel {
				differs = true
			}
		}
	}
	assert.True(t, same, "same showtime must generate the same layout")
	assert.True(t, differs, "different showtimes should differ somewhere")
}

func TestSortIDs(t *testing.T) {
	ids := []string{"B01", "A10", "A02", "C01", "A01"}
	SortIDs(ids)
	assert.Equal(t, []string{"A01", "A02", "A10", "B01", "C01"}, ids)
}
