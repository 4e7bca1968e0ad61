// routing/stablecoin.go
package routing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

const (
	onRampFeeBps   = 50
	offRampFeeBps  = 50
	onRampSeconds  = 3600
	offRampSeconds = 3600
	maxNetworks    = 2
)

// StablecoinBuilder produces fiat-to-fiat bridge routes through a pegged
// token: on-ramp, network hop, off-ramp. One candidate per stablecoin per
// network (top networks only).
type StablecoinBuilder struct {
	snap *refdata.Snapshot
}

func NewStablecoinBuilder(snap *refdata.Snapshot) *StablecoinBuilder {
	return &StablecoinBuilder{snap: snap}
}

func (b *StablecoinBuilder) Name() string { return "STABLECOIN" }

func (b *StablecoinBuilder) Build(_ context.Context, req *RouteRequest) []model.CandidateRoute {
	sourceFiat, ok := b.snap.FiatForCurrency(req.SourceCurrency, req.SourceType)
	if !ok {
		return nil
	}
	targetFiat, ok := b.snap.FiatForCurrency(req.TargetCurrency, req.TargetType)
	if !ok {
		return nil
	}

	var routes []model.CandidateRoute
	for _, code := range b.applicableStables(sourceFiat, targetFiat) {
		stable, ok := b.snap.Stablecoins[code]
		if !ok || !stable.Active {
			continue
		}
		if req.RegulatedOnly && !strings.HasPrefix(stable.RegulatoryStatus, "REGULATED") {
			continue
		}
		networks := stable.Networks
		if len(networks) > maxNetworks {
			networks = networks[:maxNetworks]
		}
		for _, network := range networks {
			if route, ok := b.buildBridge(req, sourceFiat, targetFiat, stable, network); ok {
				routes = append(routes, route)
			}
		}
	}
	return routes
}

// applicableStables returns pegged tokens usable for the corridor, sorted
// for deterministic candidate order.
func (b *StablecoinBuilder) applicableStables(sourceFiat, targetFiat string) []string {
	set := make(map[string]bool)
	for code, stable := range b.snap.Stablecoins {
		if stable.PeggedCurrency == sourceFiat || stable.PeggedCurrency == targetFiat {
			set[code] = true
		}
	}
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (b *StablecoinBuilder) buildBridge(req *RouteRequest, sourceFiat, targetFiat string, stable refdata.Stablecoin, network refdata.Network) (model.CandidateRoute, bool) {
	sourceToPeg, ok := b.snap.Rate(sourceFiat, stable.PeggedCurrency)
	if !ok {
		return model.CandidateRoute{}, false
	}
	pegToTarget, ok := b.snap.Rate(stable.PeggedCurrency, targetFiat)
	if !ok {
		return model.CandidateRoute{}, false
	}

	stableAmount := req.SourceAmount * sourceToPeg * (1 - float64(onRampFeeBps)/10000)
	targetAmount := stableAmount * pegToTarget * (1 - float64(offRampFeeBps)/10000)

	complianceScore := 70.0
	if stable.RegulatoryStatus == "REGULATED_US" {
		complianceScore = 85
	}

	route := model.CandidateRoute{
		ID:        helper_util.NewRouteID("STABLE-" + stable.Code),
		Name:      fmt.Sprintf("Stablecoin Bridge (%s on %s)", stable.Code, network.Chain),
		RouteType: "STABLE_BRIDGE_" + stable.Code,
		Legs: []model.Leg{
			{
				LegNumber:         1,
				RailType:          model.RailStablecoinBridge,
				Provider:          "On-Ramp Provider",
				SourceCurrency:    sourceFiat,
				SourceType:        model.CurrencyFiat,
				TargetCurrency:    stable.Code,
				TargetType:        model.CurrencyStablecoin,
				AmountIn:          req.SourceAmount,
				AmountOut:         stableAmount,
				Rate:              sourceToPeg,
				FeeBps:            onRampFeeBps,
				SettlementType:    model.SettlementSameDay,
				SettlementSeconds: onRampSeconds,
				ComplianceLevel:   model.ComplianceFullKYC,
				Network:           network.Chain,
			},
			{
				LegNumber:            2,
				RailType:             model.RailStablecoinBridge,
				Provider:             network.Chain + " Network",
				SourceCurrency:       stable.Code,
				SourceType:           model.CurrencyStablecoin,
				TargetCurrency:       stable.Code,
				TargetType:           model.CurrencyStablecoin,
				AmountIn:             stableAmount,
				AmountOut:            stableAmount,
				Rate:                 1,
				FeeBps:               0,
				SettlementType:       model.SettlementNearInstant,
				SettlementSeconds:    network.SettlementSeconds,
				ComplianceLevel:      model.ComplianceBasicKYC,
				TravelRuleApplicable: true,
				Network:              network.Chain,
				NetworkFeeUSD:        network.FeeUSD,
			},
			{
				LegNumber:         3,
				RailType:          model.RailStablecoinBridge,
				Provider:          "Off-Ramp Provider",
				SourceCurrency:    stable.Code,
				SourceType:        model.CurrencyStablecoin,
				TargetCurrency:    targetFiat,
				TargetType:        model.CurrencyFiat,
				AmountIn:          stableAmount,
				AmountOut:         targetAmount,
				Rate:              pegToTarget,
				FeeBps:            offRampFeeBps,
				SettlementType:    model.SettlementSameDay,
				SettlementSeconds: offRampSeconds,
				ComplianceLevel:   model.ComplianceFullKYC,
				Network:           network.Chain,
			},
		},
		SourceCurrency:     sourceFiat,
		SourceType:         model.CurrencyFiat,
		SourceAmount:       req.SourceAmount,
		TargetCurrency:     targetFiat,
		TargetType:         model.CurrencyFiat,
		TargetAmount:       targetAmount,
		SettlementType:     model.SettlementSameDay,
		SanctionsScreening: "CHAINALYSIS",
		STPEnabled:         true,
		ReliabilityScore:   stable.LiquidityScore,
		ComplianceScore:    complianceScore,
	}
	finalize(&route)
	return route, true
}
