package generation

import (
	"sync"

	"github.com/M1DES1/aigenimgtovid/internal/models"
)

// DefaultHistoryCapacity bounds the in-memory history.
const DefaultHistoryCapacity = 5

// History keeps the most recent records first and evicts the oldest beyond capacity.
type History struct {
	mu       sync.Mutex
	capacity int
	records  []models.GenerationRecord
}

// NewHistory constructs an empty history.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Add prepends a record.
func (h *History) Add(record models.GenerationRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append([]models.GenerationRecord{record}, h.records...)
	if len(h.records) > h.capacity {
		h.records = h.records[:h.capacity]
	}
}

// List returns a copy, most recent first.
func (h *History) List() []models.GenerationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.GenerationRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of stored records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
