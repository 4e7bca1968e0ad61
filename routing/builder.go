// routing/builder.go
package routing

import (
	"context"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
)

// RouteRequest is the input to the candidate build pipeline. Providers is
// the eligible fiat provider set after rule actions have been applied.
type RouteRequest struct {
	RequestID      string             `json:"request_id"`
	SourceCurrency string             `json:"source_currency" validate:"required,min=3"`
	SourceType     model.CurrencyType `json:"source_type"`
	TargetCurrency string             `json:"target_currency" validate:"required,min=3"`
	TargetType     model.CurrencyType `json:"target_type"`
	SourceAmount   float64            `json:"source_amount" validate:"gt=0"`

	Objective     model.RoutingObjective `json:"objective"`
	RegulatedOnly bool                   `json:"regulated_only,omitempty"`
	Providers     []refdata.Provider     `json:"-"`
}

// RouteBuilder produces the candidate routes its rail family can offer for
// a request. Builders are pure over the request and the reference snapshot:
// an unreachable rail yields an empty slice, never an error.
type RouteBuilder interface {
	Name() string
	Build(ctx context.Context, req *RouteRequest) []model.CandidateRoute
}

// finalize derives a route's aggregates from its legs. Effective rate is
// target over source amount; fees and settlement times sum across legs;
// compliance takes the strictest leg and travel rule applies if any leg
// triggers it.
func finalize(route *model.CandidateRoute) {
	route.TotalLegs = len(route.Legs)
	route.TotalFeeBps = 0
	route.TotalSettlementSeconds = 0
	route.TravelRuleApplicable = false
	route.ComplianceLevel = ""
	for _, leg := range route.Legs {
		route.TotalFeeBps += leg.FeeBps
		route.TotalSettlementSeconds += leg.SettlementSeconds
		route.ComplianceLevel = model.MaxComplianceLevel(route.ComplianceLevel, leg.ComplianceLevel)
		route.TravelRuleApplicable = route.TravelRuleApplicable || leg.TravelRuleApplicable
	}
	if route.SourceAmount > 0 {
		route.EffectiveRate = route.TargetAmount / route.SourceAmount
	}
}
