// Package index holds the mutable date-indexed cache of entries. The store
// synchronizes access internally: the indexing pipeline serializes every
// mutation through it while HTTP readers look entries up concurrently, so
// each add/remove is atomic from a reader's perspective and reads never
// observe partial state.
package index

import (
	"sort"
	"sync"

	"notecal/internal/caldate"
)

// Store maps entry ids to entries and calendar dates to the entries
// occurring on or spanning through them. Date keys are the "YYYY-MM-DD"
// string form of caldate.Date.
type Store struct {
	// mu guards every map below. Writers (the indexing pipeline) take the
	// write lock for a whole entry footprint at a time; readers see either
	// all of an entry's dates or none of them.
	mu sync.RWMutex
	// entries is the primary id -> Entry mapping; the store owns every
	// Entry it holds.
	entries map[string]*Entry
	// byStart indexes entries by their start day.
	byStart map[string][]*Entry
	// spanning indexes multi-day entries at every date strictly after
	// their start through their end; the start day lives in byStart only.
	spanning map[string][]*Entry
	// rebuilds counts Rebuild calls for diagnostics; it is never consulted
	// for correctness.
	rebuilds int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		entries:  make(map[string]*Entry),
		byStart:  make(map[string][]*Entry),
		spanning: make(map[string][]*Entry),
	}
}

// AddEntry upserts by id. When the id already exists its whole index
// footprint is torn down first, so re-extraction never leaves stale
// residue. The store takes ownership of the entry; callers must not mutate
// it afterwards. Entries with an empty id or an end before their start are
// ignored.
func (s *Store) AddEntry(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(e)
}

func (s *Store) addLocked(e *Entry) {
	if e == nil || e.ID == "" {
		return
	}
	if e.End != nil && caldate.Compare(*e.End, e.Start) < 0 {
		return
	}

	if _, exists := s.entries[e.ID]; exists {
		s.removeLocked(e.ID)
	}

	s.entries[e.ID] = e
	startKey := e.Start.String()
	s.byStart[startKey] = append(s.byStart[startKey], e)

	if e.IsMultiDay() {
		for d := e.Start.AddDays(1); caldate.Compare(d, *e.End) <= 0; d = d.AddDays(1) {
			key := d.String()
			s.spanning[key] = append(s.spanning[key], e)
		}
	}
}

// RemoveEntry tears down an entry and its full index footprint. Removing an
// unknown id is a no-op: removals race naturally with deletions upstream
// and must not destabilize the caller.
func (s *Store) RemoveEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *Store) removeLocked(id string) {
	e, ok := s.entries[id]
	if !ok {
		return
	}
	delete(s.entries, id)

	s.byStart[e.Start.String()] = dropByID(s.byStart[e.Start.String()], id)
	if len(s.byStart[e.Start.String()]) == 0 {
		delete(s.byStart, e.Start.String())
	}

	if e.IsMultiDay() {
		for d := e.Start.AddDays(1); caldate.Compare(d, *e.End) <= 0; d = d.AddDays(1) {
			key := d.String()
			s.spanning[key] = dropByID(s.spanning[key], id)
			if len(s.spanning[key]) == 0 {
				delete(s.spanning, key)
			}
		}
	}
}

// EntriesOn returns the entries whose start day equals date plus the
// multi-day entries spanning through it, de-duplicated by id and sorted by
// (start, id) for deterministic output.
func (s *Store) EntriesOn(date caldate.Date) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := date.String()
	seen := make(map[string]struct{})
	var out []*Entry

	for _, e := range s.byStart[key] {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	for _, e := range s.spanning[key] {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}

	sortEntries(out)
	return out
}

// EntriesBetween returns the entries whose span overlaps [start, end],
// sorted by (start, id). This is a linear scan over all entries, O(n); the
// date indices only accelerate point lookups. An inverted range returns
// nil.
func (s *Store) EntriesBetween(start, end caldate.Date) []*Entry {
	if caldate.Compare(start, end) > 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for _, e := range s.entries {
		last := e.Last()
		if caldate.Compare(e.Start, end) <= 0 && caldate.Compare(last, start) >= 0 {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// Get returns the entry for id, or nil when absent.
func (s *Store) Get(id string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id]
}

// Len returns the number of indexed entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Rebuild clears all state and re-adds every entry under one lock; readers
// see either the old index or the fully rebuilt one, never a half-built
// state.
func (s *Store) Rebuild(entries []*Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	s.rebuilds++
	for _, e := range entries {
		s.addLocked(e)
	}
}

// Clear resets all indices and the rebuild counter.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.entries = make(map[string]*Entry)
	s.byStart = make(map[string][]*Entry)
	s.spanning = make(map[string][]*Entry)
	s.rebuilds = 0
}

// Rebuilds reports how many times the store has been rebuilt since the last
// Clear. Diagnostic only.
func (s *Store) Rebuilds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rebuilds
}

func dropByID(entries []*Entry, id string) []*Entry {
	for i, e := range entries {
		if e.ID == id {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}

func sortEntries(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if c := caldate.Compare(entries[i].Start, entries[j].Start); c != 0 {
			return c < 0
		}
		return entries[i].ID < entries[j].ID
	})
}
