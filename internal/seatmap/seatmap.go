// Package seatmap models one showtime's seating chart: grouping for
// display and the offline placeholder generator. Seat identifiers are
// row-letter + two-digit number (A01, B07, ...).
package seatmap

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strconv"
)

type Seat struct {
	ID         string
	Disponivel bool
}

type Row struct {
	Letra    string
	Assentos []Seat
}

// Map is the availability map of one showtime. Fallback marks a
// locally generated placeholder: display-only, never a basis for a
// reservation.
type Map struct {
	Capacidade int
	Fallback   bool

	assentos map[string]bool
}

func New(capacidade int, assentos map[string]bool) *Map {
	if assentos == nil {
		assentos = map[string]bool{}
	}
	return &Map{Capacidade: capacidade, assentos: assentos}
}

// NewFallback builds a deterministic placeholder map seeded by the
// showtime identifier, so the screen is never empty when the seat
// fetch fails. Same showtime, same layout.
func NewFallback(sessaoID string) *Map {
	h := fnv.New64a()
	h.Write([]byte(sessaoID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	const (
		rows        = 8
		seatsPerRow = 10
	)

	assentos := make(map[string]bool, rows*seatsPerRow)
	for r := 0; r < rows; r++ {
		letter := string(rune('A' + r))
		for n := 1; n <= seatsPerRow; n++ {
			id := fmt.Sprintf("%s%02d", letter, n)
			assentos[id] = rng.Float64() < 0.7
		}
	}

	return &Map{
		Capacidade: rows * seatsPerRow,
		Fallback:   true,
		assentos:   assentos,
	}
}

// Available reports whether a seat exists and is free.
func (m *Map) Available(id string) bool {
	return m.assentos[id]
}

// Size returns the number of seats in the map.
func (m *Map) Size() int {
	return len(m.assentos)
}

// Rows groups seats by row letter, rows sorted lexicographically and
// seats within a row by numeric suffix.
func (m *Map) Rows() []Row {
	byLetter := make(map[string][]Seat)
	for id, disponivel := range m.assentos {
		if id == "" {
			continue
		}
		letter := id[:1]
		byLetter[letter] = append(byLetter[letter], Seat{ID: id, Disponivel: disponivel})
	}

	letters := make([]string, 0, len(byLetter))
	for letter := range byLetter {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	rows := make([]Row, 0, len(letters))
	for _, letter := range letters {
		seats := byLetter[letter]
		sort.Slice(seats, func(i, j int) bool {
			return seatNumber(seats[i].ID) < seatNumber(seats[j].ID)
		})
		rows = append(rows, Row{Letra: letter, Assentos: seats})
	}

	return rows
}

// SortIDs orders seat identifiers by row then number, for display.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		if ids[i][:1] != ids[j][:1] {
			return ids[i][:1] < ids[j][:1]
		}
		return seatNumber(ids[i]) < seatNumber(ids[j])
	})
}

func seatNumber(id string) int {
	if len(id) < 2 {
		return 0
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0
	}
	return n
}
