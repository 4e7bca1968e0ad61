// routing/bridge.go
package routing

import (
	"context"
	"fmt"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

// mBridge platform fees: cross-border transfer plus FX spread.
const (
	mbridgeCrossBorderBps = 10
	mbridgeFXSpreadBps    = 3
	mbridgeFeeBps         = mbridgeCrossBorderBps + mbridgeFXSpreadBps
	mbridgeLegSeconds     = 10
	cbdcMintSeconds       = 5
)

// Fiat FX leg used when only the target side has a CBDC.
const (
	fxLegFeeBps  = 20
	fxLegSeconds = 14400
)

// BridgeBuilder produces cross-border CBDC routes: the two-leg mBridge
// corridor when both jurisdictions participate, and the slower FX-then-mint
// route when only the target side has a CBDC.
type BridgeBuilder struct {
	snap *refdata.Snapshot
}

func NewBridgeBuilder(snap *refdata.Snapshot) *BridgeBuilder {
	return &BridgeBuilder{snap: snap}
}

func (b *BridgeBuilder) Name() string { return "CBDC_BRIDGE" }

func (b *BridgeBuilder) Build(_ context.Context, req *RouteRequest) []model.CandidateRoute {
	sourceFiat, ok := b.snap.FiatForCurrency(req.SourceCurrency, req.SourceType)
	if !ok {
		return nil
	}
	targetFiat, ok := b.snap.FiatForCurrency(req.TargetCurrency, req.TargetType)
	if !ok || sourceFiat == targetFiat {
		return nil
	}

	var routes []model.CandidateRoute

	sourceCBDC, hasSourceCBDC := b.snap.CBDCForFiat(sourceFiat)
	targetCBDC, hasTargetCBDC := b.snap.CBDCForFiat(targetFiat)

	if hasSourceCBDC && hasTargetCBDC &&
		b.snap.CBDCs[sourceCBDC].MBridgeParticipant &&
		b.snap.CBDCs[targetCBDC].MBridgeParticipant {
		if route, ok := b.buildMBridge(req, sourceFiat, targetFiat, sourceCBDC, targetCBDC); ok {
			routes = append(routes, route)
		}
	}

	if hasTargetCBDC {
		if route, ok := b.buildFiatToCBDC(req, sourceFiat, targetFiat, targetCBDC); ok {
			routes = append(routes, route)
		}
	}

	return routes
}

func (b *BridgeBuilder) buildMBridge(req *RouteRequest, sourceFiat, targetFiat, sourceCBDC, targetCBDC string) (model.CandidateRoute, bool) {
	rate, ok := b.snap.Rate(sourceFiat, targetFiat)
	if !ok {
		return model.CandidateRoute{}, false
	}

	effectiveRate := rate * (1 + float64(mbridgeFeeBps)/10000)
	targetAmount := req.SourceAmount * effectiveRate

	route := model.CandidateRoute{
		ID:        helper_util.NewRouteID("CBDC-MB"),
		Name:      fmt.Sprintf("mBridge (%s → %s)", sourceCBDC, targetCBDC),
		RouteType: "CBDC_MBRIDGE",
		Legs: []model.Leg{
			{
				LegNumber:         1,
				RailType:          model.RailCBDCDomestic,
				Provider:          "Originating Central Bank",
				SourceCurrency:    sourceFiat,
				SourceType:        model.CurrencyFiat,
				TargetCurrency:    sourceCBDC,
				TargetType:        model.CurrencyCBDC,
				AmountIn:          req.SourceAmount,
				AmountOut:         req.SourceAmount,
				Rate:              1,
				FeeBps:            0,
				SettlementType:    model.SettlementInstant,
				SettlementSeconds: cbdcMintSeconds,
				ComplianceLevel:   model.ComplianceCentralBank,
			},
			{
				LegNumber:         2,
				RailType:          model.RailMBridge,
				Provider:          "mBridge Platform",
				SourceCurrency:    sourceCBDC,
				SourceType:        model.CurrencyCBDC,
				TargetCurrency:    targetCBDC,
				TargetType:        model.CurrencyCBDC,
				AmountIn:          req.SourceAmount,
				AmountOut:         targetAmount,
				Rate:              effectiveRate,
				FeeBps:            mbridgeFeeBps,
				SettlementType:    model.SettlementAtomic,
				SettlementSeconds: mbridgeLegSeconds,
				ComplianceLevel:   model.ComplianceCentralBank,
			},
		},
		SourceCurrency:     sourceFiat,
		SourceType:         model.CurrencyFiat,
		SourceAmount:       req.SourceAmount,
		TargetCurrency:     targetFiat,
		TargetType:         model.CurrencyFiat,
		TargetAmount:       targetAmount,
		SettlementType:     model.SettlementAtomic,
		SanctionsScreening: "BOTH_JURISDICTIONS",
		STPEnabled:         true,
		ReliabilityScore:   98,
		ComplianceScore:    100,
	}
	finalize(&route)
	return route, true
}

func (b *BridgeBuilder) buildFiatToCBDC(req *RouteRequest, sourceFiat, targetFiat, targetCBDC string) (model.CandidateRoute, bool) {
	rate, ok := b.snap.Rate(sourceFiat, targetFiat)
	if !ok {
		return model.CandidateRoute{}, false
	}
	cbdc := b.snap.CBDCs[targetCBDC]

	effectiveRate := rate * (1 + float64(fxLegFeeBps)/10000)
	targetAmount := req.SourceAmount * effectiveRate

	route := model.CandidateRoute{
		ID:        helper_util.NewRouteID("CBDC-FX"),
		Name:      fmt.Sprintf("FX to CBDC (%s → %s)", sourceFiat, targetCBDC),
		RouteType: "FIAT_TO_CBDC",
		Legs: []model.Leg{
			{
				LegNumber:         1,
				RailType:          model.RailFiatSwift,
				Provider:          "FX Provider",
				SourceCurrency:    sourceFiat,
				SourceType:        model.CurrencyFiat,
				TargetCurrency:    targetFiat,
				TargetType:        model.CurrencyFiat,
				AmountIn:          req.SourceAmount,
				AmountOut:         targetAmount,
				Rate:              effectiveRate,
				FeeBps:            fxLegFeeBps,
				SettlementType:    model.SettlementSameDay,
				SettlementSeconds: fxLegSeconds,
				ComplianceLevel:   model.ComplianceFullKYC,
			},
			{
				LegNumber:         2,
				RailType:          model.RailCBDCDomestic,
				Provider:          cbdc.Issuer,
				SourceCurrency:    targetFiat,
				SourceType:        model.CurrencyFiat,
				TargetCurrency:    targetCBDC,
				TargetType:        model.CurrencyCBDC,
				AmountIn:          targetAmount,
				AmountOut:         targetAmount,
				Rate:              1,
				FeeBps:            0,
				SettlementType:    model.SettlementInstant,
				SettlementSeconds: cbdc.SettlementSeconds,
				ComplianceLevel:   model.ComplianceFullKYC,
			},
		},
		SourceCurrency:     sourceFiat,
		SourceType:         model.CurrencyFiat,
		SourceAmount:       req.SourceAmount,
		TargetCurrency:     targetCBDC,
		TargetType:         model.CurrencyCBDC,
		TargetAmount:       targetAmount,
		SettlementType:     model.SettlementSameDay,
		SanctionsScreening: "BANK_LEVEL",
		STPEnabled:         true,
		ReliabilityScore:   95,
		ComplianceScore:    95,
	}
	finalize(&route)
	return route, true
}
