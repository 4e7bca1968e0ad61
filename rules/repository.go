// rules/repository.go
package rules

import (
	"sync/atomic"

	apperrors "github.com/joshmo01/FX-MS/errors"
	"github.com/joshmo01/FX-MS/model"
)

// ruleSnapshot is an immutable view of the loaded rule set. Readers grab the
// current snapshot once and evaluate against it; a reload swaps the pointer
// so in-flight resolutions are never torn.
type ruleSnapshot struct {
	byType map[model.RuleType][]*model.Rule
	byID   map[string]*model.Rule
	all    []*model.Rule
}

// Repository holds the active rule set behind an atomically swappable
// snapshot.
type Repository struct {
	current atomic.Pointer[ruleSnapshot]
}

func NewRepository() *Repository {
	r := &Repository{}
	r.current.Store(newSnapshot(nil))
	return r
}

func newSnapshot(ruleList []*model.Rule) *ruleSnapshot {
	snap := &ruleSnapshot{
		byType: make(map[model.RuleType][]*model.Rule),
		byID:   make(map[string]*model.Rule, len(ruleList)),
		all:    ruleList,
	}
	for _, r := range ruleList {
		snap.byType[r.Type] = append(snap.byType[r.Type], r)
		snap.byID[r.ID] = r
	}
	return snap
}

// Replace atomically installs a new rule set. Insertion order is preserved
// and becomes the tie-break order for equal priorities.
func (r *Repository) Replace(ruleList []*model.Rule) {
	r.current.Store(newSnapshot(ruleList))
}

// ByType returns the rules of one type in insertion order. The returned
// slice is shared and must not be mutated.
func (r *Repository) ByType(t model.RuleType) []*model.Rule {
	return r.current.Load().byType[t]
}

// ByID returns a rule by its identifier.
func (r *Repository) ByID(id string) (*model.Rule, error) {
	if rule, ok := r.current.Load().byID[id]; ok {
		return rule, nil
	}
	return nil, apperrors.ErrRuleNotFound
}

// All returns every loaded rule in insertion order.
func (r *Repository) All() []*model.Rule {
	return r.current.Load().all
}

// Count returns the number of loaded rules.
func (r *Repository) Count() int {
	return len(r.current.Load().all)
}
