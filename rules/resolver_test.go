// rules/resolver_test.go
package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joshmo01/FX-MS/model"
)

func makeRule(id string, priority int, cond model.Condition) *model.Rule {
	return &model.Rule{
		ID:        id,
		Name:      "rule " + id,
		Type:      model.RuleTypeProviderSelection,
		Priority:  priority,
		Enabled:   true,
		ValidFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Conditions: cond,
		Actions: model.RuleActions{
			ProviderSelection: &model.ProviderSelectionAction{},
		},
	}
}

func newTestResolver(ruleList ...*model.Rule) (*Resolver, *AuditTrail) {
	repo := NewRepository()
	repo.Replace(ruleList)
	trail := NewAuditTrail(10)
	return NewResolver(repo, NewEvaluator(), trail), trail
}

func TestResolver_HighestPriorityWins(t *testing.T) {
	low := makeRule("LOW", 10, nil)
	high := makeRule("HIGH", 100, nil)
	mid := makeRule("MID", 50, nil)
	resolver, _ := newTestResolver(low, high, mid)

	result := resolver.Resolve(model.RuleTypeProviderSelection, testContext())

	assert.True(t, result.Matched)
	assert.False(t, result.UseDefault)
	assert.Equal(t, "HIGH", result.WinningRule.ID)
	assert.Len(t, result.Alternatives, 2)
	assert.Equal(t, "MID", result.Alternatives[0].ID)
	assert.Equal(t, "LOW", result.Alternatives[1].ID)
}

func TestResolver_EqualPriorityKeepsLoadOrder(t *testing.T) {
	first := makeRule("FIRST", 50, nil)
	second := makeRule("SECOND", 50, nil)
	resolver, _ := newTestResolver(first, second)

	for i := 0; i < 20; i++ {
		result := resolver.Resolve(model.RuleTypeProviderSelection, testContext())
		assert.Equal(t, "FIRST", result.WinningRule.ID)
	}
}

func TestResolver_AlternativesCapped(t *testing.T) {
	resolver, _ := newTestResolver(
		makeRule("A", 40, nil),
		makeRule("B", 30, nil),
		makeRule("C", 20, nil),
		makeRule("D", 10, nil),
	)

	result := resolver.Resolve(model.RuleTypeProviderSelection, testContext())
	assert.Equal(t, "A", result.WinningRule.ID)
	assert.Len(t, result.Alternatives, 2)
}

func TestResolver_ValidityWindow(t *testing.T) {
	expiredUntil := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	expired := makeRule("EXPIRED", 100, nil)
	expired.ValidUntil = &expiredUntil

	future := makeRule("FUTURE", 100, nil)
	future.ValidFrom = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	disabled := makeRule("DISABLED", 100, nil)
	disabled.Enabled = false

	active := makeRule("ACTIVE", 10, nil)

	resolver, _ := newTestResolver(expired, future, disabled, active)
	result := resolver.Resolve(model.RuleTypeProviderSelection, testContext())

	assert.Equal(t, "ACTIVE", result.WinningRule.ID)
	assert.Empty(t, result.Alternatives)
}

func TestResolver_NoMatchUsesDefaults(t *testing.T) {
	rule := makeRule("R1", 50, crit("customer_segment", model.OpEquals, "RETAIL"))
	resolver, trail := newTestResolver(rule)

	result := resolver.Resolve(model.RuleTypeProviderSelection, testContext())

	assert.False(t, result.Matched)
	assert.True(t, result.UseDefault)
	assert.Nil(t, result.WinningRule)
	assert.Nil(t, result.Actions)

	entries := trail.Recent(1)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].UseDefault)
}

func TestResolver_TypeIsolation(t *testing.T) {
	provider := makeRule("PS", 50, nil)
	margin := makeRule("MA", 90, nil)
	margin.Type = model.RuleTypeMarginAdjustment
	margin.Actions = model.RuleActions{MarginAdjustment: &model.MarginAdjustmentAction{}}

	resolver, _ := newTestResolver(provider, margin)

	psResult := resolver.Resolve(model.RuleTypeProviderSelection, testContext())
	assert.Equal(t, "PS", psResult.WinningRule.ID)

	maResult := resolver.Resolve(model.RuleTypeMarginAdjustment, testContext())
	assert.Equal(t, "MA", maResult.WinningRule.ID)
}

func TestResolver_Deterministic(t *testing.T) {
	resolver, _ := newTestResolver(
		makeRule("A", 40, crit("office", model.OpEquals, "SG")),
		makeRule("B", 40, nil),
		makeRule("C", 90, crit("customer_segment", model.OpEquals, "RETAIL")),
	)

	ctx := testContext()
	first := resolver.Resolve(model.RuleTypeProviderSelection, ctx)
	for i := 0; i < 50; i++ {
		again := resolver.Resolve(model.RuleTypeProviderSelection, ctx)
		assert.Equal(t, first.WinningRule.ID, again.WinningRule.ID)
		assert.Equal(t, len(first.Alternatives), len(again.Alternatives))
	}
}

func TestAuditTrail_EvictsOldest(t *testing.T) {
	trail := NewAuditTrail(3)
	for i := 0; i < 5; i++ {
		trail.Append(AuditEntry{WinningRule: string(rune('A' + i)), Timestamp: time.Now()})
	}

	assert.Equal(t, 3, trail.Len())
	entries := trail.Recent(0)
	assert.Len(t, entries, 3)
	assert.Equal(t, "E", entries[0].WinningRule)
	assert.Equal(t, "C", entries[2].WinningRule)
}
