// model/route.go
package model

// CurrencyType is the settlement medium of a currency code.
type CurrencyType string

const (
	CurrencyFiat       CurrencyType = "FIAT"
	CurrencyCBDC       CurrencyType = "CBDC"
	CurrencyStablecoin CurrencyType = "STABLECOIN"
)

// RailType identifies the settlement rail a leg executes on.
type RailType string

const (
	RailFiatSwift        RailType = "FIAT_SWIFT"
	RailFiatLocal        RailType = "FIAT_LOCAL"
	RailCBDCDomestic     RailType = "CBDC_DOMESTIC"
	RailMBridge          RailType = "MBRIDGE"
	RailStablecoinBridge RailType = "STABLECOIN_BRIDGE"
)

// SettlementType is a coarse settlement-speed classification.
type SettlementType string

const (
	SettlementInstant     SettlementType = "INSTANT"
	SettlementNearInstant SettlementType = "NEAR_INSTANT"
	SettlementAtomic      SettlementType = "ATOMIC"
	SettlementSameDay     SettlementType = "SAME_DAY"
	SettlementTPlus2      SettlementType = "T_PLUS_2"
)

// ComplianceLevel is ordered: higher rank means stricter requirements.
type ComplianceLevel string

const (
	ComplianceBasicKYC    ComplianceLevel = "BASIC_KYC"
	ComplianceFullKYC     ComplianceLevel = "FULL_KYC"
	ComplianceCentralBank ComplianceLevel = "CENTRAL_BANK"
)

var complianceRank = map[ComplianceLevel]int{
	ComplianceBasicKYC:    1,
	ComplianceFullKYC:     2,
	ComplianceCentralBank: 3,
}

// Rank returns the ordering rank of the compliance level (unknown levels
// rank lowest).
func (c ComplianceLevel) Rank() int {
	return complianceRank[c]
}

// MaxComplianceLevel returns the stricter of two levels.
func MaxComplianceLevel(a, b ComplianceLevel) ComplianceLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Leg is one atomic conversion step within a candidate route. Immutable once
// built; owned exclusively by its candidate.
type Leg struct {
	LegNumber            int             `json:"leg_number"`
	RailType             RailType        `json:"rail_type"`
	Provider             string          `json:"provider"`
	SourceCurrency       string          `json:"source_currency"`
	SourceType           CurrencyType    `json:"source_type"`
	TargetCurrency       string          `json:"target_currency"`
	TargetType           CurrencyType    `json:"target_type"`
	AmountIn             float64         `json:"amount_in"`
	AmountOut            float64         `json:"amount_out"`
	Rate                 float64         `json:"rate"`
	FeeBps               float64         `json:"fee_bps"`
	SettlementType       SettlementType  `json:"settlement_type"`
	SettlementSeconds    int             `json:"settlement_seconds"`
	ComplianceLevel      ComplianceLevel `json:"compliance_level"`
	TravelRuleApplicable bool            `json:"travel_rule_applicable,omitempty"`
	Network              string          `json:"network,omitempty"`
	NetworkFeeUSD        float64         `json:"network_fee_usd,omitempty"`
}

// CandidateRoute is an ordered chain of legs plus derived aggregates and,
// after scoring, the four dimension scores and the overall score. Built
// fresh per request; never persisted by the core.
type CandidateRoute struct {
	ID        string   `json:"route_id"`
	Name      string   `json:"route_name"`
	RouteType string   `json:"route_type"`
	Legs      []Leg    `json:"legs"`
	TotalLegs int      `json:"total_legs"`

	SourceCurrency string       `json:"source_currency"`
	SourceType     CurrencyType `json:"source_type"`
	SourceAmount   float64      `json:"source_amount"`
	TargetCurrency string       `json:"target_currency"`
	TargetType     CurrencyType `json:"target_type"`
	TargetAmount   float64      `json:"target_amount"`

	EffectiveRate          float64         `json:"effective_rate"`
	TotalFeeBps            float64         `json:"total_fee_bps"`
	TotalSettlementSeconds int             `json:"total_settlement_seconds"`
	SettlementType         SettlementType  `json:"settlement_type"`
	ComplianceLevel        ComplianceLevel `json:"compliance_level"`
	TravelRuleApplicable   bool            `json:"travel_rule_applicable"`
	SanctionsScreening     string          `json:"sanctions_screening,omitempty"`
	STPEnabled             bool            `json:"stp_enabled"`

	CostScore        float64 `json:"cost_score"`
	SpeedScore       float64 `json:"speed_score"`
	ReliabilityScore float64 `json:"reliability_score"`
	ComplianceScore  float64 `json:"compliance_score"`
	OverallScore     float64 `json:"overall_score"`
}

// RoutingObjective selects the scoring weight vector.
type RoutingObjective string

const (
	ObjectiveAuto                RoutingObjective = "AUTO"
	ObjectiveLowestCost          RoutingObjective = "LOWEST_COST"
	ObjectiveFastest             RoutingObjective = "FASTEST"
	ObjectiveCBDCPreferred       RoutingObjective = "CBDC_PREFERRED"
	ObjectiveStablecoinPreferred RoutingObjective = "STABLECOIN_PREFERRED"
	ObjectiveFiatPreferred       RoutingObjective = "FIAT_PREFERRED"
)

// ObjectiveWeights is the scoring weight vector; the four weights sum to 1.
type ObjectiveWeights struct {
	Cost        float64 `json:"cost"`
	Speed       float64 `json:"speed"`
	Reliability float64 `json:"reliability"`
	Compliance  float64 `json:"compliance"`
}

var objectiveWeights = map[RoutingObjective]ObjectiveWeights{
	ObjectiveLowestCost:          {Cost: 0.50, Speed: 0.15, Reliability: 0.20, Compliance: 0.15},
	ObjectiveFastest:             {Cost: 0.15, Speed: 0.50, Reliability: 0.20, Compliance: 0.15},
	ObjectiveCBDCPreferred:       {Cost: 0.25, Speed: 0.25, Reliability: 0.25, Compliance: 0.25},
	ObjectiveStablecoinPreferred: {Cost: 0.35, Speed: 0.30, Reliability: 0.20, Compliance: 0.15},
	ObjectiveFiatPreferred:       {Cost: 0.30, Speed: 0.20, Reliability: 0.30, Compliance: 0.20},
	ObjectiveAuto:                {Cost: 0.30, Speed: 0.25, Reliability: 0.25, Compliance: 0.20},
}

// WeightsFor returns the weight vector for an objective, falling back to
// AUTO for unknown objectives.
func WeightsFor(objective RoutingObjective) ObjectiveWeights {
	if w, ok := objectiveWeights[objective]; ok {
		return w
	}
	return objectiveWeights[ObjectiveAuto]
}

// KnownObjective reports whether the objective has a defined weight vector.
func KnownObjective(objective RoutingObjective) bool {
	_, ok := objectiveWeights[objective]
	return ok
}
