// routing/fiat.go
package routing

import (
	"context"
	"fmt"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

// Baked-in spread charged on top of each provider's markup.
const fiatSpreadBps = 25

// Local rails settle within this many hours; anything slower goes SWIFT.
const localRailMaxHours = 4

// FiatBuilder produces one direct route per eligible fiat provider.
type FiatBuilder struct {
	snap *refdata.Snapshot
}

func NewFiatBuilder(snap *refdata.Snapshot) *FiatBuilder {
	return &FiatBuilder{snap: snap}
}

func (b *FiatBuilder) Name() string { return "FIAT" }

func (b *FiatBuilder) Build(_ context.Context, req *RouteRequest) []model.CandidateRoute {
	sourceFiat, ok := b.snap.FiatForCurrency(req.SourceCurrency, req.SourceType)
	if !ok {
		return nil
	}
	targetFiat, ok := b.snap.FiatForCurrency(req.TargetCurrency, req.TargetType)
	if !ok {
		return nil
	}
	rate, ok := b.snap.Rate(sourceFiat, targetFiat)
	if !ok {
		return nil
	}

	var routes []model.CandidateRoute
	for _, provider := range req.Providers {
		feeBps := provider.MarkupBps + fiatSpreadBps
		effectiveRate := rate * (1 + feeBps/10000)
		targetAmount := req.SourceAmount * effectiveRate

		railType := model.RailFiatSwift
		settlementType := model.SettlementTPlus2
		if provider.SettlementHours <= localRailMaxHours {
			railType = model.RailFiatLocal
			settlementType = model.SettlementSameDay
		}

		route := model.CandidateRoute{
			ID:        helper_util.NewRouteID("FIAT"),
			Name:      fmt.Sprintf("Fiat via %s", provider.Name),
			RouteType: "FIAT_DIRECT",
			Legs: []model.Leg{{
				LegNumber:         1,
				RailType:          railType,
				Provider:          provider.Name,
				SourceCurrency:    sourceFiat,
				SourceType:        model.CurrencyFiat,
				TargetCurrency:    targetFiat,
				TargetType:        model.CurrencyFiat,
				AmountIn:          req.SourceAmount,
				AmountOut:         targetAmount,
				Rate:              effectiveRate,
				FeeBps:            feeBps,
				SettlementType:    settlementType,
				SettlementSeconds: provider.SettlementHours * 3600,
				ComplianceLevel:   model.ComplianceFullKYC,
			}},
			SourceCurrency:     sourceFiat,
			SourceType:         model.CurrencyFiat,
			SourceAmount:       req.SourceAmount,
			TargetCurrency:     targetFiat,
			TargetType:         model.CurrencyFiat,
			TargetAmount:       targetAmount,
			SettlementType:     settlementType,
			SanctionsScreening: "PROVIDER",
			STPEnabled:         provider.STPEnabled,
			ReliabilityScore:   provider.ReliabilityScore * 100,
			ComplianceScore:    90,
		}
		finalize(&route)
		routes = append(routes, route)
	}
	return routes
}
