// rules/resolver.go
package rules

import (
	"sort"
	"time"

	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
)

const maxAlternatives = 2

// Resolver selects the winning rule of a type for a transaction context.
// Resolution is deterministic: the same rule set and context always produce
// the same winner and alternatives.
type Resolver struct {
	repo      *Repository
	evaluator *Evaluator
	trail     *AuditTrail
}

func NewResolver(repo *Repository, evaluator *Evaluator, trail *AuditTrail) *Resolver {
	return &Resolver{repo: repo, evaluator: evaluator, trail: trail}
}

// Resolve evaluates all active rules of the given type against the context
// and returns the highest-priority match plus up to two alternatives. When
// nothing matches the result carries UseDefault so callers fall back to
// segment defaults.
func (r *Resolver) Resolve(ruleType model.RuleType, ctx *model.TransactionContext) *model.EvaluationResult {
	started := time.Now()

	at := ctx.Timestamp
	if at.IsZero() {
		at = started
	}

	var matched []*model.Rule
	for _, rule := range r.repo.ByType(ruleType) {
		if !rule.ActiveAt(at) {
			continue
		}
		if rule.Conditions != nil {
			if err := rule.Conditions.Validate(); err != nil {
				logger.Warn("Skipping rule " + rule.ID + " with invalid condition tree: " + err.Error())
				continue
			}
		}
		if r.evaluator.Evaluate(rule.Conditions, ctx) {
			matched = append(matched, rule)
		}
	}

	// Stable sort keeps load order for equal priorities.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})

	result := &model.EvaluationResult{
		Matched: len(matched) > 0,
		Elapsed: time.Since(started),
	}
	if len(matched) > 0 {
		result.WinningRule = matched[0]
		result.Actions = &matched[0].Actions
		n := len(matched) - 1
		if n > maxAlternatives {
			n = maxAlternatives
		}
		result.Alternatives = matched[1 : 1+n]
	} else {
		result.UseDefault = true
	}

	r.audit(ruleType, ctx, result)
	return result
}

func (r *Resolver) audit(ruleType model.RuleType, ctx *model.TransactionContext, result *model.EvaluationResult) {
	if r.trail == nil {
		return
	}
	entry := AuditEntry{
		Timestamp:  time.Now(),
		RuleType:   ruleType,
		Context:    ctx,
		Matched:    result.Matched,
		UseDefault: result.UseDefault,
		Elapsed:    result.Elapsed,
	}
	if result.WinningRule != nil {
		entry.WinningRule = result.WinningRule.ID
	}
	for _, alt := range result.Alternatives {
		entry.Alternatives = append(entry.Alternatives, alt.ID)
	}
	r.trail.Append(entry)
}

// Trail exposes the resolver's audit trail.
func (r *Resolver) Trail() *AuditTrail {
	return r.trail
}
