// model/pricing.go
package model

// CustomerSegment classifies a customer for margin defaults.
type CustomerSegment string

const (
	SegmentInstitutional  CustomerSegment = "INSTITUTIONAL"
	SegmentLargeCorporate CustomerSegment = "LARGE_CORPORATE"
	SegmentMidMarket      CustomerSegment = "MID_MARKET"
	SegmentSmallBusiness  CustomerSegment = "SMALL_BUSINESS"
	SegmentRetail         CustomerSegment = "RETAIL"
	SegmentPrivateBanking CustomerSegment = "PRIVATE_BANKING"
)

// SegmentConfig holds the default margin envelope for a customer segment,
// in basis points.
type SegmentConfig struct {
	BaseMarginBps float64 `json:"base_margin_bps"`
	MinMarginBps  float64 `json:"min_margin_bps"`
	MaxMarginBps  float64 `json:"max_margin_bps"`
}

// AmountTierConfig maps a half-open notional band [MinAmount, MaxAmount) to
// a margin adjustment in basis points. A zero MaxAmount means unbounded.
type AmountTierConfig struct {
	Name          string  `json:"name"`
	MinAmount     float64 `json:"min_amount"`
	MaxAmount     float64 `json:"max_amount,omitempty"`
	AdjustmentBps float64 `json:"adjustment_bps"`
}

// CurrencyCategory classifies a currency pair for margin purposes.
type CurrencyCategory string

const (
	CategoryG10        CurrencyCategory = "G10"
	CategoryMinor      CurrencyCategory = "MINOR"
	CategoryExotic     CurrencyCategory = "EXOTIC"
	CategoryRestricted CurrencyCategory = "RESTRICTED"
)

// CurrencyMarkup is the per-category margin factor, split by customer class.
type CurrencyMarkup struct {
	RetailBps        float64 `json:"retail_bps"`
	CorporateBps     float64 `json:"corporate_bps"`
	InstitutionalBps float64 `json:"institutional_bps"`
}

// MarginBreakdown itemizes a computed margin. TotalBps is the clamped sum;
// the components record the pre-clamp contributions.
type MarginBreakdown struct {
	BaseMarginBps        float64 `json:"base_margin_bps"`
	TierAdjustmentBps    float64 `json:"tier_adjustment_bps"`
	CurrencyFactorBps    float64 `json:"currency_factor_bps"`
	AdditionalMarginBps  float64 `json:"additional_margin_bps"`
	NegotiatedDiscountBps float64 `json:"negotiated_discount_bps"`
	MinMarginBps         float64 `json:"min_margin_bps"`
	MaxMarginBps         float64 `json:"max_margin_bps"`
	TotalBps             float64 `json:"total_bps"`
	Clamped              bool    `json:"clamped"`
	RuleApplied          string  `json:"rule_applied,omitempty"`
}
