// engine/providers.go
package engine

import (
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
)

// ApplyProviderActions narrows the active provider set according to a
// provider-selection rule action and returns the effective routing
// objective. A nil action leaves both untouched. A preferred list that
// matches nothing is ignored rather than emptying the set.
func ApplyProviderActions(snap *refdata.Snapshot, action *model.ProviderSelectionAction, objective model.RoutingObjective) ([]refdata.Provider, model.RoutingObjective) {
	available := snap.ActiveProviders()
	if action == nil {
		return available, objective
	}

	candidates := available
	if len(action.PreferredProviders) > 0 {
		preferred := make(map[string]bool, len(action.PreferredProviders))
		for _, id := range action.PreferredProviders {
			preferred[id] = true
		}
		var kept []refdata.Provider
		for _, p := range candidates {
			if preferred[p.ID] {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			candidates = kept
		}
	}

	if len(action.ExcludedProviders) > 0 {
		excluded := make(map[string]bool, len(action.ExcludedProviders))
		for _, id := range action.ExcludedProviders {
			excluded[id] = true
		}
		var kept []refdata.Provider
		for _, p := range candidates {
			if !excluded[p.ID] {
				kept = append(kept, p)
			}
		}
		candidates = kept
	}

	if action.ForceProvider && len(candidates) > 1 {
		forced := candidates[0]
		for _, p := range candidates[1:] {
			if p.ID < forced.ID {
				forced = p
			}
		}
		candidates = []refdata.Provider{forced}
	}

	if action.ObjectiveOverride != "" {
		override := model.RoutingObjective(action.ObjectiveOverride)
		if model.KnownObjective(override) {
			objective = override
		}
	}

	return candidates, objective
}

// FilterByAmount drops providers whose USD dealing bounds exclude the
// request notional. The filter is skipped when the source currency has no
// USD quote.
func FilterByAmount(snap *refdata.Snapshot, providers []refdata.Provider, sourceCurrency string, sourceType model.CurrencyType, amount float64) []refdata.Provider {
	fiat, ok := snap.FiatForCurrency(sourceCurrency, sourceType)
	if !ok {
		return providers
	}
	usdRate, ok := snap.Rate(fiat, "USD")
	if !ok {
		return providers
	}
	amountUSD := amount * usdRate

	var kept []refdata.Provider
	for _, p := range providers {
		if p.SupportsAmount(amountUSD) {
			kept = append(kept, p)
		}
	}
	return kept
}
