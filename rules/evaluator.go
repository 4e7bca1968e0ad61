// rules/evaluator.go
package rules

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joshmo01/FX-MS/model"
)

// Evaluator decides whether a condition tree matches a transaction context.
// Evaluation is total: structurally valid trees never produce errors, and any
// comparison that does not make sense (missing field, type mismatch, bad
// bounds) simply fails to match.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns true when the condition tree matches the context. A nil
// condition matches everything.
func (e *Evaluator) Evaluate(cond model.Condition, ctx *model.TransactionContext) bool {
	if cond == nil {
		return true
	}
	switch n := cond.(type) {
	case *model.Criterion:
		return e.evaluateCriterion(n, ctx)
	case *model.Combinator:
		return e.evaluateCombinator(n, ctx)
	}
	return false
}

func (e *Evaluator) evaluateCombinator(c *model.Combinator, ctx *model.TransactionContext) bool {
	switch c.Op {
	case model.CombinatorAnd:
		for _, child := range c.Children {
			if !e.Evaluate(child, ctx) {
				return false
			}
		}
		return len(c.Children) > 0
	case model.CombinatorOr:
		for _, child := range c.Children {
			if e.Evaluate(child, ctx) {
				return true
			}
		}
		return false
	case model.CombinatorNot:
		if len(c.Children) != 1 {
			return false
		}
		return !e.Evaluate(c.Children[0], ctx)
	}
	return false
}

func (e *Evaluator) evaluateCriterion(c *model.Criterion, ctx *model.TransactionContext) bool {
	fieldValue, present := ctx.Field(c.Field)
	if !present {
		// An absent field only satisfies an explicit null-equality check.
		return c.Operator == model.OpEquals && c.Value == nil
	}

	switch c.Operator {
	case model.OpEquals:
		return looseEqual(fieldValue, c.Value)
	case model.OpNotEquals:
		return !looseEqual(fieldValue, c.Value)
	case model.OpGreaterThan:
		cmp, ok := compare(fieldValue, c.Value)
		return ok && cmp > 0
	case model.OpGreaterThanOrEqual:
		cmp, ok := compare(fieldValue, c.Value)
		return ok && cmp >= 0
	case model.OpLessThan:
		cmp, ok := compare(fieldValue, c.Value)
		return ok && cmp < 0
	case model.OpLessThanOrEqual:
		cmp, ok := compare(fieldValue, c.Value)
		return ok && cmp <= 0
	case model.OpIn:
		return contains(c.Values, fieldValue)
	case model.OpNotIn:
		return !contains(c.Values, fieldValue)
	case model.OpContains:
		return containsValue(fieldValue, c.Value)
	case model.OpNotContains:
		return !containsValue(fieldValue, c.Value)
	case model.OpBetween:
		in, ok := between(fieldValue, c.Values)
		return ok && in
	case model.OpNotBetween:
		in, ok := between(fieldValue, c.Values)
		return !ok || !in
	case model.OpWithinHours:
		in, ok := withinHours(fieldValue, c.Values)
		return ok && in
	case model.OpOutsideHours:
		in, ok := withinHours(fieldValue, c.Values)
		return ok && !in
	case model.OpMatchesRegex:
		pattern, ok := c.Value.(string)
		if !ok {
			return false
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(asString(fieldValue))
	case model.OpStartsWith:
		return strings.HasPrefix(asString(fieldValue), asString(c.Value))
	case model.OpEndsWith:
		return strings.HasSuffix(asString(fieldValue), asString(c.Value))
	}
	return false
}

// looseEqual compares with numeric coercion so that 100 and 100.0 agree
// regardless of the JSON decoding path.
func looseEqual(a, b interface{}) bool {
	if af, aok := asNumber(a); aok {
		if bf, bok := asNumber(b); bok {
			return af == bf
		}
		return false
	}
	return asString(a) == asString(b) && a != nil && b != nil
}

// compare orders two values. Both numeric compares numerically, both strings
// compares lexically; anything else is incomparable.
func compare(a, b interface{}) (int, bool) {
	if af, aok := asNumber(a); aok {
		bf, bok := asNumber(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if !aok || !bok {
		return 0, false
	}
	return strings.Compare(as, bs), true
}

func contains(values []interface{}, v interface{}) bool {
	for _, candidate := range values {
		if looseEqual(v, candidate) {
			return true
		}
	}
	return false
}

// containsValue checks substring containment for strings, membership for
// slice-valued fields and key presence for map-valued fields.
func containsValue(fieldValue, operand interface{}) bool {
	switch fv := fieldValue.(type) {
	case string:
		return strings.Contains(fv, asString(operand))
	case []interface{}:
		return contains(fv, operand)
	case []string:
		for _, s := range fv {
			if s == asString(operand) {
				return true
			}
		}
	case map[string]interface{}:
		for key := range fv {
			if looseEqual(key, operand) {
				return true
			}
		}
	}
	return false
}

// between checks fieldValue against an inclusive [low, high] pair. The ok
// result is false when the bounds are not exactly two comparable values.
func between(fieldValue interface{}, bounds []interface{}) (in bool, ok bool) {
	if len(bounds) != 2 {
		return false, false
	}
	lowCmp, ok1 := compare(fieldValue, bounds[0])
	highCmp, ok2 := compare(fieldValue, bounds[1])
	if !ok1 || !ok2 {
		return false, false
	}
	return lowCmp >= 0 && highCmp <= 0, true
}

// withinHours checks an HH:MM field value against a [start, end] window.
// A window whose start is after its end wraps past midnight.
func withinHours(fieldValue interface{}, bounds []interface{}) (in bool, ok bool) {
	if len(bounds) != 2 {
		return false, false
	}
	t, ok := minutesOfDay(fieldValue)
	if !ok {
		return false, false
	}
	start, ok1 := minutesOfDay(bounds[0])
	end, ok2 := minutesOfDay(bounds[1])
	if !ok1 || !ok2 {
		return false, false
	}
	if start <= end {
		return t >= start && t <= end, true
	}
	return t >= start || t <= end, true
}

func minutesOfDay(v interface{}) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}
