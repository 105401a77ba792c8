// Package store is the browser-local ticket cache: a keyed mirror of
// purchased tickets used to re-display scan codes without a backend
// round trip. Display-only; nothing here is authoritative for
// availability or entitlement.
package store

import (
	"context"
	"sort"

	"astra-cinemas/internal/dto/response"
)

// CachedTicket is the denormalized copy persisted per account.
type CachedTicket struct {
	ID       string `json:"id"`
	Assento  string `json:"assento"`
	Codigo   string `json:"codigo"`
	Tipo     string `json:"tipo"`
	SessaoID string `json:"sessaoId"`
	Filme    string `json:"filme,omitempty"`
	Inicio   string `json:"inicio,omitempty"`
}

// FromResponse denormalizes a backend ticket record for caching.
func FromResponse(t response.TicketResponse) CachedTicket {
	return CachedTicket{
		ID:       t.ID,
		Assento:  t.Assento,
		Codigo:   t.Codigo,
		Tipo:     t.Tipo,
		SessaoID: t.SessaoID,
		Filme:    t.Filme,
		Inicio:   t.Inicio,
	}
}

// Store persists the cache keyed by account identifier. Injected so
// any persistence can back it: a JSON file, Postgres, or Redis.
type Store interface {
	Load(ctx context.Context, clienteID string) ([]CachedTicket, error)
	Save(ctx context.Context, clienteID string, tickets []CachedTicket) error
	Close() error
}

// Merge reconciles a backend listing into the local cache. Records are
// deduplicated by ticket id (scan code when the id is empty) and a
// backend record always replaces the local one sharing its key. The
// result is ordered by ticket id for stable display.
func Merge(local, remote []CachedTicket) []CachedTicket {
	byKey := make(map[string]CachedTicket, len(local)+len(remote))
	for _, t := range local {
		byKey[ticketKey(t)] = t
	}
	for _, t := range remote {
		byKey[ticketKey(t)] = t
	}

	merged := make([]CachedTicket, 0, len(byKey))
	for _, t := range byKey {
		merged = append(merged, t)
	}
	sort.Slice(merged, func(i, j int) bool {
		return ticketKey(merged[i]) < ticketKey(merged[j])
	})
	return merged
}

func ticketKey(t CachedTicket) string {
	if t.ID != "" {
		return t.ID
	}
	return t.Codigo
}
