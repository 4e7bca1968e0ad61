// engine/margin.go
package engine

import (
	apperrors "github.com/joshmo01/FX-MS/errors"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
)

// MarginInputs is everything the margin calculation needs beyond the rule
// action itself.
type MarginInputs struct {
	Segment               model.CustomerSegment
	Amount                float64
	CurrencyPair          string
	NegotiatedDiscountBps float64
}

// ComputeMargin builds the itemized margin for a transaction. A nil action
// produces exactly the same result as an action with every field unset, so
// the no-rule fallback is indistinguishable from an all-default rule match.
func ComputeMargin(snap *refdata.Snapshot, in MarginInputs, action *model.MarginAdjustmentAction) (model.MarginBreakdown, error) {
	segCfg, ok := snap.SegmentConfig(in.Segment)
	if !ok {
		return model.MarginBreakdown{}, apperrors.ErrUnknownSegment
	}
	if action == nil {
		action = &model.MarginAdjustmentAction{}
	}

	base := segCfg.BaseMarginBps
	if action.BaseMarginOverride != nil {
		base = *action.BaseMarginOverride
	}

	tierMultiplier := 1.0
	if action.TierAdjustmentMultiplier != nil {
		tierMultiplier = *action.TierAdjustmentMultiplier
	}
	tier := snap.TierAdjustmentBps(in.Amount) * tierMultiplier

	category := snap.CategoryForPair(in.CurrencyPair)
	currencyFactor := snap.CurrencyFactorBps(category, in.Segment)

	additional := 0.0
	if action.AdditionalMarginBps != nil {
		additional = *action.AdditionalMarginBps
	}

	minBps := segCfg.MinMarginBps
	if action.MinMarginBps != nil {
		minBps = *action.MinMarginBps
	}
	maxBps := segCfg.MaxMarginBps
	if action.MaxMarginBps != nil {
		maxBps = *action.MaxMarginBps
	}

	total := base + tier + currencyFactor + additional - in.NegotiatedDiscountBps
	clamped := false
	if total < minBps {
		total = minBps
		clamped = true
	}
	if total > maxBps {
		total = maxBps
		clamped = true
	}

	return model.MarginBreakdown{
		BaseMarginBps:         base,
		TierAdjustmentBps:     tier,
		CurrencyFactorBps:     currencyFactor,
		AdditionalMarginBps:   additional,
		NegotiatedDiscountBps: in.NegotiatedDiscountBps,
		MinMarginBps:          minBps,
		MaxMarginBps:          maxBps,
		TotalBps:              total,
		Clamped:               clamped,
	}, nil
}
