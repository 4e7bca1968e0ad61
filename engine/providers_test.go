// engine/providers_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
)

func providerIDs(providers []refdata.Provider) []string {
	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestApplyProviderActions_NilActionKeepsAll(t *testing.T) {
	snap := refdata.DefaultSnapshot()

	providers, objective := ApplyProviderActions(snap, nil, model.ObjectiveAuto)

	assert.Equal(t, []string{"GLOBAL_BANK_FX", "REGIONAL_BANK", "FINTECH_FX", "MONEY_TRANSFER"}, providerIDs(providers))
	assert.Equal(t, model.ObjectiveAuto, objective)
}

func TestApplyProviderActions_Preferred(t *testing.T) {
	snap := refdata.DefaultSnapshot()
	action := &model.ProviderSelectionAction{
		PreferredProviders: []string{"GLOBAL_BANK_FX", "FINTECH_FX"},
	}

	providers, _ := ApplyProviderActions(snap, action, model.ObjectiveAuto)
	assert.Equal(t, []string{"GLOBAL_BANK_FX", "FINTECH_FX"}, providerIDs(providers))
}

func TestApplyProviderActions_PreferredMatchingNothingIsIgnored(t *testing.T) {
	snap := refdata.DefaultSnapshot()
	action := &model.ProviderSelectionAction{
		PreferredProviders: []string{"NO_SUCH_PROVIDER"},
	}

	providers, _ := ApplyProviderActions(snap, action, model.ObjectiveAuto)
	assert.Len(t, providers, 4, "empty intersection falls back to the full set")
}

func TestApplyProviderActions_Excluded(t *testing.T) {
	snap := refdata.DefaultSnapshot()
	action := &model.ProviderSelectionAction{
		ExcludedProviders: []string{"REGIONAL_BANK", "MONEY_TRANSFER"},
	}

	providers, _ := ApplyProviderActions(snap, action, model.ObjectiveAuto)
	assert.Equal(t, []string{"GLOBAL_BANK_FX", "FINTECH_FX"}, providerIDs(providers))
}

func TestApplyProviderActions_ForcePicksSingleDeterministically(t *testing.T) {
	snap := refdata.DefaultSnapshot()
	action := &model.ProviderSelectionAction{
		PreferredProviders: []string{"REGIONAL_BANK", "FINTECH_FX"},
		ForceProvider:      true,
	}

	for i := 0; i < 10; i++ {
		providers, _ := ApplyProviderActions(snap, action, model.ObjectiveAuto)
		require.Len(t, providers, 1)
		assert.Equal(t, "FINTECH_FX", providers[0].ID)
	}
}

func TestApplyProviderActions_ObjectiveOverride(t *testing.T) {
	snap := refdata.DefaultSnapshot()

	action := &model.ProviderSelectionAction{ObjectiveOverride: "FASTEST"}
	_, objective := ApplyProviderActions(snap, action, model.ObjectiveAuto)
	assert.Equal(t, model.ObjectiveFastest, objective)

	action = &model.ProviderSelectionAction{ObjectiveOverride: "WARP_SPEED"}
	_, objective = ApplyProviderActions(snap, action, model.ObjectiveLowestCost)
	assert.Equal(t, model.ObjectiveLowestCost, objective, "unknown overrides are ignored")
}

func TestApplyProviderActions_ExclusionCanEmptyTheSet(t *testing.T) {
	snap := refdata.DefaultSnapshot()
	action := &model.ProviderSelectionAction{
		ExcludedProviders: []string{"GLOBAL_BANK_FX", "REGIONAL_BANK", "FINTECH_FX", "MONEY_TRANSFER"},
	}

	providers, _ := ApplyProviderActions(snap, action, model.ObjectiveAuto)
	assert.Empty(t, providers)
}

func TestFilterByAmount_DropsOutOfBoundsProviders(t *testing.T) {
	snap := refdata.DefaultSnapshot()

	kept := FilterByAmount(snap, snap.ActiveProviders(), "USD", model.CurrencyFiat, 2_000_000)
	assert.Equal(t, []string{"GLOBAL_BANK_FX", "REGIONAL_BANK"}, providerIDs(kept))

	kept = FilterByAmount(snap, snap.ActiveProviders(), "USD", model.CurrencyFiat, 500)
	assert.Equal(t, []string{"FINTECH_FX", "MONEY_TRANSFER"}, providerIDs(kept))
}

func TestFilterByAmount_ConvertsNotionalToUSD(t *testing.T) {
	snap := refdata.DefaultSnapshot()

	// 1M CNY is roughly 138k USD, above the money transfer network's cap.
	kept := FilterByAmount(snap, snap.ActiveProviders(), "CNY", model.CurrencyFiat, 1_000_000)
	assert.Equal(t, []string{"GLOBAL_BANK_FX", "REGIONAL_BANK", "FINTECH_FX"}, providerIDs(kept))
}

func TestFilterByAmount_UnquotedCurrencySkipsFilter(t *testing.T) {
	snap := refdata.DefaultSnapshot()

	kept := FilterByAmount(snap, snap.ActiveProviders(), "XXX", model.CurrencyFiat, 1)
	assert.Len(t, kept, 4)
}
