// refdata/snapshot.go
package refdata

import (
	"github.com/joshmo01/FX-MS/model"
)

// Provider is a fiat FX liquidity provider. Amount bounds are in USD; a zero
// MaxAmountUSD is unbounded.
type Provider struct {
	ID               string  `json:"provider_id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Active           bool    `json:"is_active"`
	MarkupBps        float64 `json:"markup_bps"`
	SettlementHours  int     `json:"settlement_hours"`
	ReliabilityScore float64 `json:"reliability_score"`
	STPEnabled       bool    `json:"stp_enabled"`
	MinAmountUSD     float64 `json:"min_amount_usd,omitempty"`
	MaxAmountUSD     float64 `json:"max_amount_usd,omitempty"`
}

// SupportsAmount reports whether a USD notional falls inside the provider's
// dealing bounds.
func (p Provider) SupportsAmount(amountUSD float64) bool {
	if amountUSD < p.MinAmountUSD {
		return false
	}
	if p.MaxAmountUSD > 0 && amountUSD > p.MaxAmountUSD {
		return false
	}
	return true
}

// CBDC is a central bank digital currency registration.
type CBDC struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Issuer             string `json:"issuer"`
	FiatCurrency       string `json:"fiat_currency"`
	Technology         string `json:"technology"`
	Active             bool   `json:"is_active"`
	SettlementSeconds  int    `json:"settlement_seconds"`
	MBridgeParticipant bool   `json:"mbridge_participant"`
}

// Network is a blockchain settlement network for a stablecoin.
type Network struct {
	Chain             string  `json:"chain"`
	SettlementSeconds int     `json:"settlement_seconds"`
	FeeUSD            float64 `json:"fee_usd"`
}

// Stablecoin is a fiat-pegged token registration.
type Stablecoin struct {
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Issuer           string    `json:"issuer"`
	PeggedCurrency   string    `json:"pegged_currency"`
	RegulatoryStatus string    `json:"regulatory_status"`
	Active           bool      `json:"is_active"`
	LiquidityScore   float64   `json:"liquidity_score"`
	Networks         []Network `json:"networks"`
}

// Snapshot is an immutable bundle of reference data used by the routing and
// pricing pipelines. Build one at startup (or on reload) and share it
// read-only; never mutate a published snapshot.
type Snapshot struct {
	Providers   []Provider                                    `json:"providers"`
	CBDCs       map[string]CBDC                               `json:"cbdc"`
	Stablecoins map[string]Stablecoin                         `json:"stablecoins"`
	Rates       map[string]float64                            `json:"rates"`
	Segments    map[model.CustomerSegment]model.SegmentConfig `json:"segments"`
	AmountTiers []model.AmountTierConfig                      `json:"amount_tiers"`

	CurrencyMarkups map[model.CurrencyCategory]model.CurrencyMarkup `json:"currency_markups"`
	CategoryMembers map[model.CurrencyCategory][]string             `json:"category_members"`

	STPThresholds map[model.CustomerSegment]float64 `json:"stp_thresholds"`

	cbdcByFiat map[string]string
	categoryOf map[string]model.CurrencyCategory
}

// buildIndexes derives the lookup maps. Called once after construction.
func (s *Snapshot) buildIndexes() {
	s.cbdcByFiat = make(map[string]string, len(s.CBDCs))
	for code, c := range s.CBDCs {
		if c.Active {
			s.cbdcByFiat[c.FiatCurrency] = code
		}
	}
	s.categoryOf = make(map[string]model.CurrencyCategory)
	for cat, members := range s.CategoryMembers {
		for _, ccy := range members {
			s.categoryOf[ccy] = cat
		}
	}
}

// CBDCForFiat returns the active CBDC code for a fiat currency, if any.
func (s *Snapshot) CBDCForFiat(fiat string) (string, bool) {
	code, ok := s.cbdcByFiat[fiat]
	return code, ok
}

// FiatForCurrency maps a currency of any type back to its underlying fiat:
// CBDCs map to their issuing fiat, stablecoins to their peg, fiat to itself.
func (s *Snapshot) FiatForCurrency(code string, typ model.CurrencyType) (string, bool) {
	switch typ {
	case model.CurrencyCBDC:
		if c, ok := s.CBDCs[code]; ok {
			return c.FiatCurrency, true
		}
		return "", false
	case model.CurrencyStablecoin:
		if st, ok := s.Stablecoins[code]; ok {
			return st.PeggedCurrency, true
		}
		return "", false
	default:
		return code, true
	}
}

// Rate returns the mid rate from source to target fiat. Resolution order:
// identity, direct pair, inverse pair, then a USD cross of the two legs.
func (s *Snapshot) Rate(source, target string) (float64, bool) {
	if source == target {
		return 1, true
	}
	if r, ok := s.Rates[source+target]; ok && r > 0 {
		return r, true
	}
	if r, ok := s.Rates[target+source]; ok && r > 0 {
		return 1 / r, true
	}
	srcUSD, ok1 := s.usdLeg(source)
	tgtUSD, ok2 := s.usdLeg(target)
	if !ok1 || !ok2 || srcUSD == 0 {
		return 0, false
	}
	return tgtUSD / srcUSD, true
}

// usdLeg returns units of the currency per one USD.
func (s *Snapshot) usdLeg(ccy string) (float64, bool) {
	if ccy == "USD" {
		return 1, true
	}
	if r, ok := s.Rates["USD"+ccy]; ok && r > 0 {
		return r, true
	}
	if r, ok := s.Rates[ccy+"USD"]; ok && r > 0 {
		return 1 / r, true
	}
	return 0, false
}

// CategoryForPair classifies a 6-char currency pair by its least liquid leg.
func (s *Snapshot) CategoryForPair(pair string) model.CurrencyCategory {
	if len(pair) != 6 {
		return model.CategoryExotic
	}
	base := s.categoryFor(pair[:3])
	quote := s.categoryFor(pair[3:])
	if base.rank() > quote.rank() {
		return model.CurrencyCategory(base)
	}
	return model.CurrencyCategory(quote)
}

type rankedCategory model.CurrencyCategory

func (s *Snapshot) categoryFor(ccy string) rankedCategory {
	if cat, ok := s.categoryOf[ccy]; ok {
		return rankedCategory(cat)
	}
	return rankedCategory(model.CategoryExotic)
}

func (c rankedCategory) rank() int {
	switch model.CurrencyCategory(c) {
	case model.CategoryG10:
		return 0
	case model.CategoryMinor:
		return 1
	case model.CategoryExotic:
		return 2
	case model.CategoryRestricted:
		return 3
	}
	return 2
}

// SegmentConfig returns the margin envelope for a segment.
func (s *Snapshot) SegmentConfig(segment model.CustomerSegment) (model.SegmentConfig, bool) {
	cfg, ok := s.Segments[segment]
	return cfg, ok
}

// TierAdjustmentBps returns the margin adjustment for a notional amount.
// Bands are half-open [min, max); a zero max is unbounded.
func (s *Snapshot) TierAdjustmentBps(amount float64) float64 {
	for _, t := range s.AmountTiers {
		if amount >= t.MinAmount && (t.MaxAmount == 0 || amount < t.MaxAmount) {
			return t.AdjustmentBps
		}
	}
	return 0
}

// TierName returns the name of the tier band a notional amount falls in.
func (s *Snapshot) TierName(amount float64) string {
	for _, t := range s.AmountTiers {
		if amount >= t.MinAmount && (t.MaxAmount == 0 || amount < t.MaxAmount) {
			return t.Name
		}
	}
	return ""
}

// CurrencyFactorBps returns the per-category markup for a segment class.
func (s *Snapshot) CurrencyFactorBps(category model.CurrencyCategory, segment model.CustomerSegment) float64 {
	markup, ok := s.CurrencyMarkups[category]
	if !ok {
		return 0
	}
	switch segment {
	case model.SegmentInstitutional, model.SegmentPrivateBanking:
		return markup.InstitutionalBps
	case model.SegmentLargeCorporate, model.SegmentMidMarket, model.SegmentSmallBusiness:
		return markup.CorporateBps
	default:
		return markup.RetailBps
	}
}

// STPThreshold returns the straight-through-processing notional ceiling for
// a segment (zero when the segment is unknown).
func (s *Snapshot) STPThreshold(segment model.CustomerSegment) float64 {
	return s.STPThresholds[segment]
}

// ActiveProviders returns the active non-market-data providers in their
// registration order.
func (s *Snapshot) ActiveProviders() []Provider {
	out := make([]Provider, 0, len(s.Providers))
	for _, p := range s.Providers {
		if p.Active && p.Type != "MARKET_DATA" {
			out = append(out, p)
		}
	}
	return out
}

// ProviderByID returns a provider by its identifier.
func (s *Snapshot) ProviderByID(id string) (Provider, bool) {
	for _, p := range s.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}
