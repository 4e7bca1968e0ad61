// routing/cbdc.go
package routing

import (
	"context"
	"fmt"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

// CBDCBuilder produces the single-leg domestic mint/redeem route when source
// and target resolve to the same fiat and that fiat has an active CBDC.
type CBDCBuilder struct {
	snap *refdata.Snapshot
}

func NewCBDCBuilder(snap *refdata.Snapshot) *CBDCBuilder {
	return &CBDCBuilder{snap: snap}
}

func (b *CBDCBuilder) Name() string { return "CBDC" }

func (b *CBDCBuilder) Build(_ context.Context, req *RouteRequest) []model.CandidateRoute {
	sourceFiat, ok := b.snap.FiatForCurrency(req.SourceCurrency, req.SourceType)
	if !ok {
		return nil
	}
	targetFiat, ok := b.snap.FiatForCurrency(req.TargetCurrency, req.TargetType)
	if !ok || sourceFiat != targetFiat {
		return nil
	}
	cbdcCode, ok := b.snap.CBDCForFiat(targetFiat)
	if !ok {
		return nil
	}
	cbdc := b.snap.CBDCs[cbdcCode]

	route := model.CandidateRoute{
		ID:        helper_util.NewRouteID("CBDC-DOM"),
		Name:      fmt.Sprintf("Domestic CBDC (%s)", cbdc.Name),
		RouteType: "CBDC_DOMESTIC",
		Legs: []model.Leg{{
			LegNumber:         1,
			RailType:          model.RailCBDCDomestic,
			Provider:          cbdc.Issuer,
			SourceCurrency:    sourceFiat,
			SourceType:        model.CurrencyFiat,
			TargetCurrency:    cbdc.Code,
			TargetType:        model.CurrencyCBDC,
			AmountIn:          req.SourceAmount,
			AmountOut:         req.SourceAmount, // 1:1 mint
			Rate:              1,
			FeeBps:            0,
			SettlementType:    model.SettlementInstant,
			SettlementSeconds: cbdc.SettlementSeconds,
			ComplianceLevel:   model.ComplianceFullKYC,
		}},
		SourceCurrency:     sourceFiat,
		SourceType:         model.CurrencyFiat,
		SourceAmount:       req.SourceAmount,
		TargetCurrency:     cbdc.Code,
		TargetType:         model.CurrencyCBDC,
		TargetAmount:       req.SourceAmount,
		SettlementType:     model.SettlementInstant,
		SanctionsScreening: "CENTRAL_BANK",
		STPEnabled:         true,
		CostScore:          100,
		SpeedScore:         100,
		ReliabilityScore:   99,
		ComplianceScore:    100,
	}
	finalize(&route)
	return []model.CandidateRoute{route}
}
