package license

import (
	"context"
	"sort"
	"strings"
	"sync"

	"licensure/internal/domain"
)

// MemoryStore keeps records in process memory. It backs development and
// tests, and deployments that only care about the run summary.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.LicenseRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.LicenseRecord)}
}

func (s *MemoryStore) Upsert(_ context.Context, record domain.LicenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.NaturalKey()] = record
	return nil
}

func (s *MemoryStore) List(_ context.Context, filter Filter) ([]domain.LicenseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LicenseRecord, 0, len(s.records))
	for _, record := range s.records {
		if filter.Provider != "" &&
			!strings.Contains(strings.ToLower(record.FullName), strings.ToLower(filter.Provider)) {
			continue
		}
		if filter.State != "" && record.State != strings.ToUpper(filter.State) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NaturalKey() < out[j].NaturalKey()
	})
	return out, nil
}
