// model/rule.go
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RuleType determines which action payload a rule carries and which
// resolution pool it competes in.
type RuleType string

const (
	RuleTypeProviderSelection RuleType = "PROVIDER_SELECTION"
	RuleTypeMarginAdjustment  RuleType = "MARGIN_ADJUSTMENT"
)

// CombinatorOp is a logical operator combining child conditions.
type CombinatorOp string

const (
	CombinatorAnd CombinatorOp = "AND"
	CombinatorOr  CombinatorOp = "OR"
	CombinatorNot CombinatorOp = "NOT"
)

// CriterionOperator is a comparison operator for a single criterion.
type CriterionOperator string

const (
	OpEquals             CriterionOperator = "EQUALS"
	OpNotEquals          CriterionOperator = "NOT_EQUALS"
	OpGreaterThan        CriterionOperator = "GREATER_THAN"
	OpGreaterThanOrEqual CriterionOperator = "GREATER_THAN_OR_EQUAL"
	OpLessThan           CriterionOperator = "LESS_THAN"
	OpLessThanOrEqual    CriterionOperator = "LESS_THAN_OR_EQUAL"
	OpIn                 CriterionOperator = "IN"
	OpNotIn              CriterionOperator = "NOT_IN"
	OpContains           CriterionOperator = "CONTAINS"
	OpNotContains        CriterionOperator = "NOT_CONTAINS"
	OpBetween            CriterionOperator = "BETWEEN"
	OpNotBetween         CriterionOperator = "NOT_BETWEEN"
	OpWithinHours        CriterionOperator = "WITHIN_HOURS"
	OpOutsideHours       CriterionOperator = "OUTSIDE_HOURS"
	OpMatchesRegex       CriterionOperator = "MATCHES_REGEX"
	OpStartsWith         CriterionOperator = "STARTS_WITH"
	OpEndsWith           CriterionOperator = "ENDS_WITH"
)

// Condition is a node in a rule's condition tree: either a *Criterion leaf
// or a *Combinator over child conditions.
type Condition interface {
	isCondition()
	// Validate reports structural errors (bad combinator arity, cycles).
	// Structural errors are construction/load-time concerns; evaluation of an
	// accepted tree never fails.
	Validate() error
}

// Criterion is a single field comparison.
type Criterion struct {
	Field    string            `json:"field"`
	Operator CriterionOperator `json:"operator"`
	Value    interface{}       `json:"value,omitempty"`
	Values   []interface{}     `json:"values,omitempty"`
}

func (*Criterion) isCondition() {}

func (c *Criterion) Validate() error {
	if c.Field == "" {
		return fmt.Errorf("criterion field cannot be empty")
	}
	if c.Operator == "" {
		return fmt.Errorf("criterion operator cannot be empty")
	}
	return nil
}

// Combinator combines child conditions with AND/OR/NOT logic.
type Combinator struct {
	Op       CombinatorOp `json:"operator"`
	Children []Condition  `json:"criteria"`
}

func (*Combinator) isCondition() {}

func (c *Combinator) Validate() error {
	return c.validate(map[*Combinator]bool{})
}

func (c *Combinator) validate(seen map[*Combinator]bool) error {
	if seen[c] {
		return fmt.Errorf("condition tree contains a cycle")
	}
	seen[c] = true
	defer delete(seen, c)

	switch c.Op {
	case CombinatorAnd, CombinatorOr:
		if len(c.Children) == 0 {
			return fmt.Errorf("%s combinator requires at least one child", c.Op)
		}
	case CombinatorNot:
		if len(c.Children) != 1 {
			return fmt.Errorf("NOT combinator requires exactly one child, got %d", len(c.Children))
		}
	default:
		return fmt.Errorf("unknown combinator operator: %q", c.Op)
	}

	for _, child := range c.Children {
		if nested, ok := child.(*Combinator); ok {
			if err := nested.validate(seen); err != nil {
				return err
			}
			continue
		}
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewCombinator builds a combinator, rejecting invalid arity at build time.
func NewCombinator(op CombinatorOp, children ...Condition) (*Combinator, error) {
	c := &Combinator{Op: op, Children: children}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// UnmarshalCondition decodes a condition node from JSON. Combinator nodes
// carry an "operator" plus "criteria" array; criterion nodes carry a "field".
func UnmarshalCondition(data []byte) (Condition, error) {
	var probe struct {
		Field    string            `json:"field"`
		Operator string            `json:"operator"`
		Criteria []json.RawMessage `json:"criteria"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	if probe.Criteria != nil || probe.Field == "" {
		comb := &Combinator{Op: CombinatorOp(probe.Operator)}
		for _, raw := range probe.Criteria {
			child, err := UnmarshalCondition(raw)
			if err != nil {
				return nil, err
			}
			comb.Children = append(comb.Children, child)
		}
		return comb, nil
	}

	var crit Criterion
	if err := json.Unmarshal(data, &crit); err != nil {
		return nil, err
	}
	return &crit, nil
}

// MarshalCondition encodes a condition node back to its JSON wire shape.
func MarshalCondition(cond Condition) ([]byte, error) {
	switch n := cond.(type) {
	case *Criterion:
		return json.Marshal(n)
	case *Combinator:
		children := make([]json.RawMessage, 0, len(n.Children))
		for _, child := range n.Children {
			raw, err := MarshalCondition(child)
			if err != nil {
				return nil, err
			}
			children = append(children, raw)
		}
		return json.Marshal(struct {
			Op       CombinatorOp      `json:"operator"`
			Children []json.RawMessage `json:"criteria"`
		}{n.Op, children})
	default:
		return nil, fmt.Errorf("unknown condition node type %T", cond)
	}
}

// ProviderSelectionAction narrows or overrides the provider set for routing.
type ProviderSelectionAction struct {
	PreferredProviders []string `json:"preferred_providers,omitempty"`
	ExcludedProviders  []string `json:"excluded_providers,omitempty"`
	ObjectiveOverride  string   `json:"routing_objective_override,omitempty"`
	ForceProvider      bool     `json:"force_provider,omitempty"`
}

// MarginAdjustmentAction overrides components of the margin calculation.
// All fields are optional; nil means "leave the default in place".
type MarginAdjustmentAction struct {
	BaseMarginOverride       *float64 `json:"base_margin_override,omitempty"`
	AdditionalMarginBps      *float64 `json:"additional_margin_bps,omitempty"`
	TierAdjustmentMultiplier *float64 `json:"tier_adjustment_multiplier,omitempty"`
	MinMarginBps             *float64 `json:"min_margin_bps,omitempty"`
	MaxMarginBps             *float64 `json:"max_margin_bps,omitempty"`
}

// RuleActions is the tagged action payload; exactly the member matching the
// rule's type is set.
type RuleActions struct {
	ProviderSelection *ProviderSelectionAction `json:"provider_selection,omitempty"`
	MarginAdjustment  *MarginAdjustmentAction  `json:"margin_adjustment,omitempty"`
}

// RuleMetadata carries authoring information.
type RuleMetadata struct {
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Rule is one business rule. Rules are loaded read-only; retirement happens
// by disabling or validity expiry, never by mutation mid-evaluation.
type Rule struct {
	ID         string       `json:"rule_id"`
	Name       string       `json:"rule_name"`
	Type       RuleType     `json:"rule_type"`
	Priority   int          `json:"priority" validate:"gte=0,lte=1000"`
	Enabled    bool         `json:"enabled"`
	ValidFrom  time.Time    `json:"valid_from"`
	ValidUntil *time.Time   `json:"valid_until,omitempty"`
	Conditions Condition    `json:"-"`
	Actions    RuleActions  `json:"actions"`
	Metadata   RuleMetadata `json:"metadata"`
}

type ruleAlias Rule

type ruleWire struct {
	ruleAlias
	Conditions json.RawMessage `json:"conditions,omitempty"`
}

// UnmarshalJSON decodes a rule including its condition tree.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var wire ruleWire
	wire.Enabled = true
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = Rule(wire.ruleAlias)
	if len(wire.Conditions) > 0 {
		cond, err := UnmarshalCondition(wire.Conditions)
		if err != nil {
			return fmt.Errorf("rule %s: %w", r.ID, err)
		}
		r.Conditions = cond
	}
	return nil
}

// MarshalJSON encodes a rule including its condition tree.
func (r Rule) MarshalJSON() ([]byte, error) {
	wire := ruleWire{ruleAlias: ruleAlias(r)}
	if r.Conditions != nil {
		raw, err := MarshalCondition(r.Conditions)
		if err != nil {
			return nil, err
		}
		wire.Conditions = raw
	}
	return json.Marshal(wire)
}

// ActiveAt reports whether the rule is enabled and within its validity window.
func (r *Rule) ActiveAt(ts time.Time) bool {
	if !r.Enabled {
		return false
	}
	if ts.Before(r.ValidFrom) {
		return false
	}
	if r.ValidUntil != nil && ts.After(*r.ValidUntil) {
		return false
	}
	return true
}

// EvaluationResult is the outcome of one resolution call.
type EvaluationResult struct {
	Matched      bool          `json:"matched"`
	WinningRule  *Rule         `json:"winning_rule,omitempty"`
	Actions      *RuleActions  `json:"actions,omitempty"`
	Alternatives []*Rule       `json:"alternatives,omitempty"`
	Elapsed      time.Duration `json:"evaluation_time_ns"`
	UseDefault   bool          `json:"use_default"`
}
