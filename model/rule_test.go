// model/rule_test.go
package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_UnmarshalJSON(t *testing.T) {
	doc := `{
		"rule_id": "PS-010",
		"rule_name": "APAC bank preference",
		"rule_type": "PROVIDER_SELECTION",
		"priority": 90,
		"valid_from": "2025-01-01T00:00:00Z",
		"conditions": {
			"operator": "AND",
			"criteria": [
				{"field": "region", "operator": "EQUALS", "value": "APAC"},
				{
					"operator": "NOT",
					"criteria": [
						{"field": "customer_segment", "operator": "EQUALS", "value": "RETAIL"}
					]
				}
			]
		},
		"actions": {"provider_selection": {"preferred_providers": ["GLOBAL_BANK_FX"]}},
		"metadata": {"created_by": "ops", "created_at": "2025-01-01T00:00:00Z"}
	}`

	var rule Rule
	require.NoError(t, json.Unmarshal([]byte(doc), &rule))

	assert.Equal(t, "PS-010", rule.ID)
	assert.Equal(t, RuleTypeProviderSelection, rule.Type)
	assert.True(t, rule.Enabled, "enabled defaults to true when omitted")
	require.NotNil(t, rule.Actions.ProviderSelection)
	assert.Equal(t, []string{"GLOBAL_BANK_FX"}, rule.Actions.ProviderSelection.PreferredProviders)

	root, ok := rule.Conditions.(*Combinator)
	require.True(t, ok)
	assert.Equal(t, CombinatorAnd, root.Op)
	require.Len(t, root.Children, 2)

	leaf, ok := root.Children[0].(*Criterion)
	require.True(t, ok)
	assert.Equal(t, "region", leaf.Field)
	assert.Equal(t, OpEquals, leaf.Operator)

	not, ok := root.Children[1].(*Combinator)
	require.True(t, ok)
	assert.Equal(t, CombinatorNot, not.Op)
	assert.Len(t, not.Children, 1)
}

func TestRule_ExplicitDisableSurvivesDecode(t *testing.T) {
	doc := `{
		"rule_id": "PS-011",
		"rule_name": "Retired rule",
		"rule_type": "PROVIDER_SELECTION",
		"priority": 10,
		"enabled": false,
		"valid_from": "2025-01-01T00:00:00Z",
		"actions": {"provider_selection": {}},
		"metadata": {"created_by": "ops", "created_at": "2025-01-01T00:00:00Z"}
	}`

	var rule Rule
	require.NoError(t, json.Unmarshal([]byte(doc), &rule))
	assert.False(t, rule.Enabled)
}

func TestRule_JSONRoundTrip(t *testing.T) {
	until := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	override := 35.0
	original := Rule{
		ID:         "MA-020",
		Name:       "Negotiated base",
		Type:       RuleTypeMarginAdjustment,
		Priority:   70,
		Enabled:    true,
		ValidFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: &until,
		Conditions: &Combinator{Op: CombinatorOr, Children: []Condition{
			&Criterion{Field: "customer_tier", Operator: OpEquals, Value: "PLATINUM"},
			&Criterion{Field: "amount", Operator: OpBetween, Values: []interface{}{100000.0, 1000000.0}},
		}},
		Actions:  RuleActions{MarginAdjustment: &MarginAdjustmentAction{BaseMarginOverride: &override}},
		Metadata: RuleMetadata{CreatedBy: "pricing-desk", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Rule
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Priority, decoded.Priority)
	require.NotNil(t, decoded.Actions.MarginAdjustment.BaseMarginOverride)
	assert.Equal(t, 35.0, *decoded.Actions.MarginAdjustment.BaseMarginOverride)

	root, ok := decoded.Conditions.(*Combinator)
	require.True(t, ok)
	assert.Equal(t, CombinatorOr, root.Op)
	require.Len(t, root.Children, 2)
	between := root.Children[1].(*Criterion)
	assert.Equal(t, OpBetween, between.Operator)
	assert.Len(t, between.Values, 2)
}

func TestNewCombinator_Arity(t *testing.T) {
	leaf := &Criterion{Field: "office", Operator: OpEquals, Value: "SG"}

	_, err := NewCombinator(CombinatorNot, leaf, leaf)
	assert.Error(t, err)

	_, err = NewCombinator(CombinatorAnd)
	assert.Error(t, err)

	_, err = NewCombinator(CombinatorOp("XOR"), leaf)
	assert.Error(t, err)

	c, err := NewCombinator(CombinatorNot, leaf)
	require.NoError(t, err)
	assert.Len(t, c.Children, 1)
}

func TestCombinator_ValidateDetectsCycle(t *testing.T) {
	leaf := &Criterion{Field: "office", Operator: OpEquals, Value: "SG"}
	inner := &Combinator{Op: CombinatorAnd, Children: []Condition{leaf}}
	outer := &Combinator{Op: CombinatorAnd, Children: []Condition{inner}}
	inner.Children = append(inner.Children, outer)

	assert.Error(t, outer.Validate())
}

func TestCriterion_Validate(t *testing.T) {
	assert.Error(t, (&Criterion{Operator: OpEquals}).Validate())
	assert.Error(t, (&Criterion{Field: "office"}).Validate())
	assert.NoError(t, (&Criterion{Field: "office", Operator: OpEquals, Value: "SG"}).Validate())
}

func TestRule_ActiveAt(t *testing.T) {
	until := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	rule := Rule{
		Enabled:    true,
		ValidFrom:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: &until,
	}

	assert.True(t, rule.ActiveAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rule.ActiveAt(rule.ValidFrom))
	assert.True(t, rule.ActiveAt(until))
	assert.False(t, rule.ActiveAt(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, rule.ActiveAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	rule.Enabled = false
	assert.False(t, rule.ActiveAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}
