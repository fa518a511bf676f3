package memorystore

import (
	"sort"
	"sync"

	"marketdash/internal/dashboard/registry"
)

// HistoryStore holds the long-form historical tables loaded at startup, keyed by family and code.
type HistoryStore struct {
	globalMu sync.RWMutex
	data     map[registry.Family]*familyHistory
	failed   map[registry.Family][]string
}

type familyHistory struct {
	mu     sync.Mutex
	order  []string
	series map[string][]HistoricalPoint
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		data:   make(map[registry.Family]*familyHistory),
		failed: make(map[registry.Family][]string),
	}
}

// Replace swaps the whole table of a family. Points are grouped by code in first-seen order.
func (s *HistoryStore) Replace(f registry.Family, points []HistoricalPoint, failed []string) {
	h := &familyHistory{series: make(map[string][]HistoricalPoint)}
	for _, p := range points {
		if _, ok := h.series[p.Code]; !ok {
			h.order = append(h.order, p.Code)
		}
		h.series[p.Code] = append(h.series[p.Code], p)
	}
	for _, code := range h.order {
		series := h.series[code]
		sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	}

	failedCopy := make([]string, len(failed))
	copy(failedCopy, failed)

	s.globalMu.Lock()
	s.data[f] = h
	s.failed[f] = failedCopy
	s.globalMu.Unlock()
}

func (s *HistoryStore) family(f registry.Family) *familyHistory {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()
	return s.data[f]
}

// GetByCode returns a copy of one instrument's series, oldest first.
func (s *HistoryStore) GetByCode(f registry.Family, code string) []HistoricalPoint {
	h := s.family(f)
	if h == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cp := make([]HistoricalPoint, len(h.series[code]))
	copy(cp, h.series[code])
	return cp
}

// GetFamily returns a copy of the long-form table of a family, grouped by code.
func (s *HistoryStore) GetFamily(f registry.Family) []HistoricalPoint {
	h := s.family(f)
	if h == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var out []HistoricalPoint
	for _, code := range h.order {
		out = append(out, h.series[code]...)
	}
	return out
}

// Failed returns the codes whose history could not be loaded.
func (s *HistoryStore) Failed(f registry.Family) []string {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	out := make([]string, len(s.failed[f]))
	copy(out, s.failed[f])
	return out
}

// CountAll returns the total number of points stored across all families.
func (s *HistoryStore) CountAll() int {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	total := 0
	for _, h := range s.data {
		h.mu.Lock()
		for _, series := range h.series {
			total += len(series)
		}
		h.mu.Unlock()
	}
	return total
}
