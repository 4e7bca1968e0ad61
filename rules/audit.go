// rules/audit.go
package rules

import (
	"sync"
	"time"

	"github.com/joshmo01/FX-MS/model"
)

// AuditEntry records one resolution outcome for the in-memory trail.
type AuditEntry struct {
	Timestamp    time.Time                 `json:"timestamp"`
	RuleType     model.RuleType            `json:"rule_type"`
	Context      *model.TransactionContext `json:"context"`
	Matched      bool                      `json:"matched"`
	WinningRule  string                    `json:"winning_rule,omitempty"`
	Alternatives []string                  `json:"alternatives,omitempty"`
	UseDefault   bool                      `json:"use_default"`
	Elapsed      time.Duration             `json:"elapsed_ns"`
}

// AuditTrail is a bounded in-memory ring of recent resolution outcomes.
// When full, the oldest entry is evicted. Safe for concurrent use.
type AuditTrail struct {
	mu       sync.Mutex
	entries  []AuditEntry
	capacity int
	start    int
	count    int
}

// NewAuditTrail builds a trail with the given capacity (minimum 1).
func NewAuditTrail(capacity int) *AuditTrail {
	if capacity < 1 {
		capacity = 1
	}
	return &AuditTrail{
		entries:  make([]AuditEntry, capacity),
		capacity: capacity,
	}
}

// Append records an entry, evicting the oldest when at capacity.
func (t *AuditTrail) Append(entry AuditEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := (t.start + t.count) % t.capacity
	t.entries[idx] = entry
	if t.count < t.capacity {
		t.count++
	} else {
		t.start = (t.start + 1) % t.capacity
	}
}

// Recent returns up to n entries, newest first.
func (t *AuditTrail) Recent(n int) []AuditEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 || n > t.count {
		n = t.count
	}
	out := make([]AuditEntry, 0, n)
	for i := 0; i < n; i++ {
		idx := (t.start + t.count - 1 - i) % t.capacity
		out = append(out, t.entries[idx])
	}
	return out
}

// Len returns the number of retained entries.
func (t *AuditTrail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
