// engine/orchestrator.go
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/joshmo01/FX-MS/errors"
	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
	"github.com/joshmo01/FX-MS/routing"
	"github.com/joshmo01/FX-MS/rules"
	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

// Decision is the outcome of one routing request: the ranked candidate set,
// the recommendation, and the rule that shaped the provider pool.
type Decision struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`

	SourceCurrency string             `json:"source_currency"`
	SourceType     model.CurrencyType `json:"source_type"`
	SourceAmount   float64            `json:"source_amount"`
	TargetCurrency string             `json:"target_currency"`
	TargetType     model.CurrencyType `json:"target_type"`

	Objective       model.RoutingObjective `json:"objective"`
	AppliedRuleID   string                 `json:"applied_rule_id,omitempty"`
	AppliedRuleName string                 `json:"applied_rule_name,omitempty"`
	UsedDefaults    bool                   `json:"used_defaults"`

	RailsEvaluated []string               `json:"rails_evaluated"`
	Routes         []model.CandidateRoute `json:"routes"`
	Recommended    *model.CandidateRoute  `json:"recommended_route,omitempty"`
	Alternatives   []model.CandidateRoute `json:"alternative_routes,omitempty"`

	STPEligible  bool     `json:"stp_eligible"`
	Warnings     []string `json:"warnings,omitempty"`
	EvaluationMs float64  `json:"evaluation_ms"`
}

// Orchestrator runs the decision pipeline: rule resolution, provider
// narrowing, candidate building across all rails, scoring and ranking.
type Orchestrator struct {
	snap     *refdata.Snapshot
	resolver *rules.Resolver
	scorer   *routing.Scorer
	builders []routing.RouteBuilder
}

func NewOrchestrator(snap *refdata.Snapshot, resolver *rules.Resolver) *Orchestrator {
	return &Orchestrator{
		snap:     snap,
		resolver: resolver,
		scorer:   routing.NewScorer(),
		builders: []routing.RouteBuilder{
			routing.NewFiatBuilder(snap),
			routing.NewCBDCBuilder(snap),
			routing.NewBridgeBuilder(snap),
			routing.NewStablecoinBuilder(snap),
		},
	}
}

// Decide produces a routing decision. An unreachable corridor yields a
// decision with no routes rather than an error.
func (o *Orchestrator) Decide(ctx context.Context, req *routing.RouteRequest, txCtx *model.TransactionContext) (*Decision, error) {
	started := time.Now()

	if req.RequestID == "" {
		req.RequestID = helper_util.NewRequestID("MR")
	}
	objective := req.Objective
	if objective == "" {
		objective = model.ObjectiveAuto
	}
	if !model.KnownObjective(objective) {
		return nil, apperrors.ErrUnknownObjective
	}

	result := o.resolver.Resolve(model.RuleTypeProviderSelection, txCtx)
	var action *model.ProviderSelectionAction
	if result.Actions != nil {
		action = result.Actions.ProviderSelection
	}
	providers, objective := ApplyProviderActions(o.snap, action, objective)
	providers = FilterByAmount(o.snap, providers, req.SourceCurrency, req.SourceType, req.SourceAmount)
	req.Providers = providers
	req.Objective = objective

	candidateSets := make([][]model.CandidateRoute, len(o.builders))
	g, gctx := errgroup.WithContext(ctx)
	for i, builder := range o.builders {
		i, builder := i, builder
		g.Go(func() error {
			candidateSets[i] = builder.Build(gctx, req)
			return nil
		})
	}
	g.Wait()

	var merged []model.CandidateRoute
	var railsEvaluated []string
	for i, set := range candidateSets {
		if len(set) > 0 {
			railsEvaluated = append(railsEvaluated, o.builders[i].Name())
		}
		merged = append(merged, set...)
	}

	ranked := o.scorer.Score(merged, objective)

	decision := &Decision{
		RequestID:      req.RequestID,
		Timestamp:      started.UTC(),
		SourceCurrency: req.SourceCurrency,
		SourceType:     req.SourceType,
		SourceAmount:   req.SourceAmount,
		TargetCurrency: req.TargetCurrency,
		TargetType:     req.TargetType,
		Objective:      objective,
		UsedDefaults:   result.UseDefault,
		RailsEvaluated: railsEvaluated,
		Routes:         ranked,
	}
	if result.WinningRule != nil {
		decision.AppliedRuleID = result.WinningRule.ID
		decision.AppliedRuleName = result.WinningRule.Name
	}

	if len(ranked) > 0 {
		decision.Recommended = &ranked[0]
		upper := len(ranked)
		if upper > 3 {
			upper = 3
		}
		decision.Alternatives = ranked[1:upper]
		segment := model.CustomerSegment(txCtx.CustomerSegment)
		decision.STPEligible, decision.Warnings = EvaluateSTP(o.snap, decision.Recommended, segment, req.SourceAmount, len(providers))
	} else {
		decision.Warnings = append(decision.Warnings, "No routes available for this corridor")
	}

	decision.EvaluationMs = float64(time.Since(started).Microseconds()) / 1000

	logger.Info("Routing decision completed",
		zap.String("requestID", decision.RequestID),
		zap.String("objective", string(objective)),
		zap.Int("routes", len(ranked)),
		zap.Float64("evaluationMs", decision.EvaluationMs))
	return decision, nil
}

// Snapshot exposes the reference data the orchestrator routes against.
func (o *Orchestrator) Snapshot() *refdata.Snapshot {
	return o.snap
}
