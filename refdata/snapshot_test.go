// refdata/snapshot_test.go
package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
)

func TestSnapshot_RateResolution(t *testing.T) {
	snap := DefaultSnapshot()

	rate, ok := snap.Rate("USD", "USD")
	require.True(t, ok)
	assert.Equal(t, 1.0, rate, "identity")

	rate, ok = snap.Rate("USD", "INR")
	require.True(t, ok)
	assert.Equal(t, 84.50, rate, "direct pair")

	rate, ok = snap.Rate("INR", "USD")
	require.True(t, ok)
	assert.InDelta(t, 1/84.50, rate, 1e-9, "inverse pair")

	rate, ok = snap.Rate("CNY", "AED")
	require.True(t, ok)
	assert.InDelta(t, 3.67/7.25, rate, 1e-9, "USD cross")

	_, ok = snap.Rate("XXX", "YYY")
	assert.False(t, ok)
}

func TestSnapshot_FiatForCurrency(t *testing.T) {
	snap := DefaultSnapshot()

	fiat, ok := snap.FiatForCurrency("INR", model.CurrencyFiat)
	require.True(t, ok)
	assert.Equal(t, "INR", fiat)

	fiat, ok = snap.FiatForCurrency("e-CNY", model.CurrencyCBDC)
	require.True(t, ok)
	assert.Equal(t, "CNY", fiat)

	fiat, ok = snap.FiatForCurrency("USDC", model.CurrencyStablecoin)
	require.True(t, ok)
	assert.Equal(t, "USD", fiat)

	_, ok = snap.FiatForCurrency("e-XYZ", model.CurrencyCBDC)
	assert.False(t, ok)
}

func TestSnapshot_CBDCForFiat(t *testing.T) {
	snap := DefaultSnapshot()

	code, ok := snap.CBDCForFiat("INR")
	require.True(t, ok)
	assert.Equal(t, "e-INR", code)

	_, ok = snap.CBDCForFiat("USD")
	assert.False(t, ok)
}

func TestSnapshot_TierBands(t *testing.T) {
	snap := DefaultSnapshot()

	assert.Equal(t, 50.0, snap.TierAdjustmentBps(9_999))
	assert.Equal(t, 25.0, snap.TierAdjustmentBps(10_000), "bands are half-open")
	assert.Equal(t, 0.0, snap.TierAdjustmentBps(75_000))
	assert.Equal(t, -15.0, snap.TierAdjustmentBps(100_000))
	assert.Equal(t, -40.0, snap.TierAdjustmentBps(50_000_000), "top band is unbounded")

	assert.Equal(t, "MICRO", snap.TierName(500))
	assert.Equal(t, "JUMBO", snap.TierName(2_000_000))
}

func TestSnapshot_CategoryForPair(t *testing.T) {
	snap := DefaultSnapshot()

	assert.Equal(t, model.CategoryG10, snap.CategoryForPair("EURUSD"))
	assert.Equal(t, model.CategoryMinor, snap.CategoryForPair("USDSGD"))
	assert.Equal(t, model.CategoryExotic, snap.CategoryForPair("USDINR"))
	assert.Equal(t, model.CategoryRestricted, snap.CategoryForPair("USDCNY"))
	assert.Equal(t, model.CategoryExotic, snap.CategoryForPair("USDZZZ"), "unknown leg is exotic")
	assert.Equal(t, model.CategoryExotic, snap.CategoryForPair("BAD"), "malformed pair")
}

func TestSnapshot_CurrencyFactorBps(t *testing.T) {
	snap := DefaultSnapshot()

	assert.Equal(t, 2.0, snap.CurrencyFactorBps(model.CategoryG10, model.SegmentInstitutional))
	assert.Equal(t, 2.0, snap.CurrencyFactorBps(model.CategoryG10, model.SegmentPrivateBanking))
	assert.Equal(t, 15.0, snap.CurrencyFactorBps(model.CategoryG10, model.SegmentLargeCorporate))
	assert.Equal(t, 50.0, snap.CurrencyFactorBps(model.CategoryG10, model.SegmentRetail))
	assert.Equal(t, 0.0, snap.CurrencyFactorBps(model.CurrencyCategory("FRONTIER"), model.SegmentRetail))
}

func TestSnapshot_ActiveProviders(t *testing.T) {
	snap := DefaultSnapshot()

	providers := snap.ActiveProviders()
	require.Len(t, providers, 4, "market data feeds are not routing providers")
	assert.Equal(t, "GLOBAL_BANK_FX", providers[0].ID)

	p, ok := snap.ProviderByID("FINTECH_FX")
	require.True(t, ok)
	assert.Equal(t, 8.0, p.MarkupBps)

	_, ok = snap.ProviderByID("NOPE")
	assert.False(t, ok)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	logger.InitLogger(t.TempDir())

	snap, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Len(t, snap.Providers, 5)
}

func TestLoad_PartialFileMergesDefaults(t *testing.T) {
	logger.InitLogger(t.TempDir())
	dir := t.TempDir()
	doc := `{"rates": {"USDINR": 85.00}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refdata.json"), []byte(doc), 0o644))

	snap, err := Load(dir)
	require.NoError(t, err)

	rate, ok := snap.Rate("USD", "INR")
	require.True(t, ok)
	assert.Equal(t, 85.00, rate, "file overrides the rate table")
	assert.NotEmpty(t, snap.Segments, "omitted sections fall back to defaults")

	code, ok := snap.CBDCForFiat("INR")
	require.True(t, ok)
	assert.Equal(t, "e-INR", code, "indexes are rebuilt after merge")
}

func TestLoad_MalformedFileFails(t *testing.T) {
	logger.InitLogger(t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refdata.json"), []byte("{nope"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
