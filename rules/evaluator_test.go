// rules/evaluator_test.go
package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joshmo01/FX-MS/model"
)

func testContext() *model.TransactionContext {
	volume := 2_500_000.0
	return &model.TransactionContext{
		Timestamp:            time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		CustomerID:           "CUST-042",
		CustomerSegment:      "INSTITUTIONAL",
		CustomerTier:         "PLATINUM",
		CustomerAnnualVolume: &volume,
		CurrencyPair:         "USDINR",
		BaseCurrency:         "USD",
		QuoteCurrency:        "INR",
		CurrencyCategory:     "EXOTIC",
		Amount:               250000,
		Direction:            model.DirectionBuy,
		Office:               "SG",
		Region:               "APAC",
		TimeOfDay:            "10:30",
		DayOfWeek:            "MONDAY",
		Extensions: map[string]interface{}{
			"channel": "API",
			"limits":  map[string]interface{}{"daily": 100000.0, "monthly": 2000000.0},
		},
	}
}

func crit(field string, op model.CriterionOperator, value interface{}) *model.Criterion {
	return &model.Criterion{Field: field, Operator: op, Value: value}
}

func critValues(field string, op model.CriterionOperator, values ...interface{}) *model.Criterion {
	return &model.Criterion{Field: field, Operator: op, Values: values}
}

func TestEvaluator_Operators(t *testing.T) {
	e := NewEvaluator()
	ctx := testContext()

	tests := []struct {
		name string
		cond model.Condition
		want bool
	}{
		{"equals match", crit("customer_segment", model.OpEquals, "INSTITUTIONAL"), true},
		{"equals mismatch", crit("customer_segment", model.OpEquals, "RETAIL"), false},
		{"equals numeric coercion", crit("amount", model.OpEquals, 250000), true},
		{"not equals", crit("office", model.OpNotEquals, "LDN"), true},
		{"greater than", crit("amount", model.OpGreaterThan, 100000.0), true},
		{"greater than fails", crit("amount", model.OpGreaterThan, 250000.0), false},
		{"greater or equal boundary", crit("amount", model.OpGreaterThanOrEqual, 250000.0), true},
		{"less than", crit("amount", model.OpLessThan, 500000.0), true},
		{"less or equal boundary", crit("amount", model.OpLessThanOrEqual, 250000.0), true},
		{"numeric against string is false", crit("amount", model.OpGreaterThan, "abc"), false},
		{"in match", critValues("office", model.OpIn, "SG", "HK"), true},
		{"in miss", critValues("office", model.OpIn, "LDN", "NYC"), false},
		{"in empty list never matches", critValues("office", model.OpIn), false},
		{"not in", critValues("office", model.OpNotIn, "LDN"), true},
		{"not in empty list always matches", critValues("office", model.OpNotIn), true},
		{"contains substring", crit("currency_pair", model.OpContains, "INR"), true},
		{"contains map key", crit("limits", model.OpContains, "daily"), true},
		{"contains map key miss", crit("limits", model.OpContains, "weekly"), false},
		{"not contains", crit("currency_pair", model.OpNotContains, "EUR"), true},
		{"not contains map key", crit("limits", model.OpNotContains, "weekly"), true},
		{"between inclusive", critValues("amount", model.OpBetween, 250000.0, 300000.0), true},
		{"between outside", critValues("amount", model.OpBetween, 300000.0, 400000.0), false},
		{"between needs two bounds", critValues("amount", model.OpBetween, 100000.0), false},
		{"not between wrong arity matches", critValues("amount", model.OpNotBetween, 100000.0), true},
		{"not between", critValues("amount", model.OpNotBetween, 300000.0, 400000.0), true},
		{"within hours", critValues("time_of_day", model.OpWithinHours, "09:00", "17:00"), true},
		{"within hours boundary", critValues("time_of_day", model.OpWithinHours, "10:30", "17:00"), true},
		{"outside hours", critValues("time_of_day", model.OpOutsideHours, "12:00", "14:00"), true},
		{"overnight window spans midnight", critValues("time_of_day", model.OpWithinHours, "22:00", "11:00"), true},
		{"overnight window excludes midday", critValues("time_of_day", model.OpWithinHours, "22:00", "06:00"), false},
		{"regex match", crit("customer_id", model.OpMatchesRegex, `^CUST-\d+$`), true},
		{"regex bad pattern is false", crit("customer_id", model.OpMatchesRegex, `([`), false},
		{"starts with", crit("currency_pair", model.OpStartsWith, "USD"), true},
		{"ends with", crit("currency_pair", model.OpEndsWith, "INR"), true},
		{"extension field", crit("channel", model.OpEquals, "API"), true},
		{"unknown operator is false", crit("office", model.CriterionOperator("LIKE"), "SG"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Evaluate(tt.cond, ctx))
		})
	}
}

func TestEvaluator_MissingFields(t *testing.T) {
	e := NewEvaluator()
	ctx := &model.TransactionContext{CustomerSegment: "RETAIL"}

	// Only an explicit null equality matches an absent field.
	assert.True(t, e.Evaluate(crit("is_holiday", model.OpEquals, nil), ctx))

	assert.False(t, e.Evaluate(crit("is_holiday", model.OpEquals, true), ctx))
	assert.False(t, e.Evaluate(crit("office", model.OpNotEquals, "SG"), ctx))
	assert.False(t, e.Evaluate(critValues("office", model.OpNotIn, "SG"), ctx))
	assert.False(t, e.Evaluate(crit("amount", model.OpGreaterThan, 0.0), ctx))
	assert.False(t, e.Evaluate(critValues("time_of_day", model.OpOutsideHours, "09:00", "17:00"), ctx))
}

func TestEvaluator_Combinators(t *testing.T) {
	e := NewEvaluator()
	ctx := testContext()

	and := &model.Combinator{Op: model.CombinatorAnd, Children: []model.Condition{
		crit("customer_segment", model.OpEquals, "INSTITUTIONAL"),
		crit("amount", model.OpGreaterThan, 100000.0),
	}}
	assert.True(t, e.Evaluate(and, ctx))

	or := &model.Combinator{Op: model.CombinatorOr, Children: []model.Condition{
		crit("office", model.OpEquals, "LDN"),
		crit("office", model.OpEquals, "SG"),
	}}
	assert.True(t, e.Evaluate(or, ctx))

	not := &model.Combinator{Op: model.CombinatorNot, Children: []model.Condition{
		crit("customer_segment", model.OpEquals, "RETAIL"),
	}}
	assert.True(t, e.Evaluate(not, ctx))

	nested := &model.Combinator{Op: model.CombinatorAnd, Children: []model.Condition{
		or,
		not,
		&model.Combinator{Op: model.CombinatorNot, Children: []model.Condition{
			crit("amount", model.OpLessThan, 1000.0),
		}},
	}}
	assert.True(t, e.Evaluate(nested, ctx))

	// A nil tree matches everything.
	assert.True(t, e.Evaluate(nil, ctx))
}

func TestEvaluator_Deterministic(t *testing.T) {
	e := NewEvaluator()
	ctx := testContext()
	cond := &model.Combinator{Op: model.CombinatorAnd, Children: []model.Condition{
		crit("customer_segment", model.OpEquals, "INSTITUTIONAL"),
		critValues("amount", model.OpBetween, 100000.0, 500000.0),
		critValues("time_of_day", model.OpWithinHours, "09:00", "17:00"),
	}}

	first := e.Evaluate(cond, ctx)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, e.Evaluate(cond, ctx))
	}
}
