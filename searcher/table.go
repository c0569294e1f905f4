package searcher

import "gomoku/game"

type Flag uint8

const (
	Exact Flag = iota
	Lower      // Value is a lower bound, the search failed high
	Upper      // Value is an upper bound, the search failed low
)

type Entry struct {
	Value int
	Move  game.Coord
	Found bool
	Depth int
	Flag  Flag
}

// Table caches search results keyed by exact board contents and side to move.
// It is owned by whoever creates it; nothing is shared between tables.
type Table struct {
	capacity int
	entries  map[string]Entry
}

// NewTable returns a table holding at most capacity positions. Once full, only
// existing positions are overwritten.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	return &Table{
		capacity: capacity,
		entries:  make(map[string]Entry),
	}
}

func tableKey(b *game.Board, maximizing bool) string {
	if maximizing {
		return b.Key() + "+"
	}
	return b.Key() + "-"
}

// Probe returns the entry for key if it was searched at least depth plies deep.
func (t *Table) Probe(key string, depth int) (Entry, bool) {
	entry, ok := t.entries[key]
	if !ok || entry.Depth < depth {
		return Entry{}, false
	}
	return entry, true
}

// Store records entry unless a deeper result for the same key is already held.
func (t *Table) Store(key string, entry Entry) {
	old, ok := t.entries[key]
	if ok && old.Depth > entry.Depth {
		return
	}
	if !ok && len(t.entries) >= t.capacity {
		return
	}
	t.entries[key] = entry
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Clear() {
	clear(t.entries)
}
