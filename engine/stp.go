// engine/stp.go
package engine

import (
	"fmt"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
)

const daySeconds = 24 * 3600

// EvaluateSTP decides straight-through-processing eligibility for the
// recommended route and collects operational warnings for the caller.
func EvaluateSTP(snap *refdata.Snapshot, route *model.CandidateRoute, segment model.CustomerSegment, amount float64, providerCount int) (bool, []string) {
	var warnings []string
	eligible := true

	if route == nil {
		return false, warnings
	}

	if !route.STPEnabled {
		eligible = false
		warnings = append(warnings, "Route requires manual processing")
	}

	threshold := snap.STPThreshold(segment)
	if threshold > 0 && amount > threshold {
		eligible = false
		warnings = append(warnings, fmt.Sprintf("Amount exceeds STP threshold of %.0f", threshold))
	}

	if route.TotalLegs > 2 {
		warnings = append(warnings, "Route involves more than two settlement legs")
	}
	if route.TravelRuleApplicable {
		warnings = append(warnings, "Travel rule reporting applies to this route")
	}
	for _, leg := range route.Legs {
		if leg.TargetType == model.CurrencyStablecoin {
			warnings = append(warnings, "Route transits a stablecoin counterparty")
			break
		}
	}
	if route.TotalSettlementSeconds > daySeconds {
		warnings = append(warnings, fmt.Sprintf("Settlement may take up to %d hours", route.TotalSettlementSeconds/3600))
	}
	if providerCount == 1 {
		warnings = append(warnings, "Only one provider is available for this corridor")
	}

	return eligible, warnings
}
