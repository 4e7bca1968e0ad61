// refdata/defaults.go
package refdata

import (
	"github.com/joshmo01/FX-MS/model"
)

// DefaultSnapshot returns the built-in demonstration reference data. It is
// used when no refdata directory is configured or a file is absent.
func DefaultSnapshot() *Snapshot {
	s := &Snapshot{
		Providers: []Provider{
			{ID: "GLOBAL_BANK_FX", Name: "Global Bank FX", Type: "BANK", Active: true, MarkupBps: 10, SettlementHours: 24, ReliabilityScore: 0.99, STPEnabled: true, MinAmountUSD: 10_000},
			{ID: "REGIONAL_BANK", Name: "Regional Bank Treasury", Type: "BANK", Active: true, MarkupBps: 15, SettlementHours: 48, ReliabilityScore: 0.97, STPEnabled: true, MinAmountUSD: 1_000, MaxAmountUSD: 5_000_000},
			{ID: "FINTECH_FX", Name: "Fintech FX Rail", Type: "FINTECH", Active: true, MarkupBps: 8, SettlementHours: 4, ReliabilityScore: 0.95, STPEnabled: true, MinAmountUSD: 100, MaxAmountUSD: 1_000_000},
			{ID: "MONEY_TRANSFER", Name: "Money Transfer Network", Type: "MTO", Active: true, MarkupBps: 25, SettlementHours: 2, ReliabilityScore: 0.93, STPEnabled: false, MinAmountUSD: 1, MaxAmountUSD: 50_000},
			{ID: "MARKET_FEED", Name: "Market Data Feed", Type: "MARKET_DATA", Active: true, MarkupBps: 0, SettlementHours: 0, ReliabilityScore: 1.0, STPEnabled: false},
		},
		CBDCs: map[string]CBDC{
			"e-INR": {Code: "e-INR", Name: "Digital Rupee", Issuer: "Reserve Bank of India", FiatCurrency: "INR", Technology: "R3_CORDA", Active: true, SettlementSeconds: 5, MBridgeParticipant: false},
			"e-CNY": {Code: "e-CNY", Name: "Digital Yuan", Issuer: "People's Bank of China", FiatCurrency: "CNY", Technology: "PERMISSIONED_DLT", Active: true, SettlementSeconds: 5, MBridgeParticipant: true},
			"e-HKD": {Code: "e-HKD", Name: "Digital Hong Kong Dollar", Issuer: "Hong Kong Monetary Authority", FiatCurrency: "HKD", Technology: "PERMISSIONED_DLT", Active: true, SettlementSeconds: 5, MBridgeParticipant: true},
			"e-THB": {Code: "e-THB", Name: "Digital Baht", Issuer: "Bank of Thailand", FiatCurrency: "THB", Technology: "PERMISSIONED_DLT", Active: true, SettlementSeconds: 5, MBridgeParticipant: true},
			"e-AED": {Code: "e-AED", Name: "Digital Dirham", Issuer: "Central Bank of the UAE", FiatCurrency: "AED", Technology: "PERMISSIONED_DLT", Active: true, SettlementSeconds: 5, MBridgeParticipant: true},
			"e-SGD": {Code: "e-SGD", Name: "Digital Singapore Dollar", Issuer: "Monetary Authority of Singapore", FiatCurrency: "SGD", Technology: "PERMISSIONED_DLT", Active: true, SettlementSeconds: 5, MBridgeParticipant: false},
		},
		Stablecoins: map[string]Stablecoin{
			"USDC": {Code: "USDC", Name: "USD Coin", Issuer: "Circle", PeggedCurrency: "USD", RegulatoryStatus: "REGULATED_US", Active: true, LiquidityScore: 95,
				Networks: []Network{
					{Chain: "ETHEREUM", SettlementSeconds: 60, FeeUSD: 5.0},
					{Chain: "SOLANA", SettlementSeconds: 1, FeeUSD: 0.01},
					{Chain: "POLYGON", SettlementSeconds: 5, FeeUSD: 0.05},
				}},
			"USDT": {Code: "USDT", Name: "Tether", Issuer: "Tether Ltd", PeggedCurrency: "USD", RegulatoryStatus: "OFFSHORE", Active: true, LiquidityScore: 98,
				Networks: []Network{
					{Chain: "ETHEREUM", SettlementSeconds: 60, FeeUSD: 5.0},
					{Chain: "TRON", SettlementSeconds: 3, FeeUSD: 1.0},
				}},
			"EURC": {Code: "EURC", Name: "Euro Coin", Issuer: "Circle", PeggedCurrency: "EUR", RegulatoryStatus: "REGULATED_US", Active: true, LiquidityScore: 80,
				Networks: []Network{
					{Chain: "ETHEREUM", SettlementSeconds: 60, FeeUSD: 5.0},
				}},
			"XSGD": {Code: "XSGD", Name: "StraitsX SGD", Issuer: "StraitsX", PeggedCurrency: "SGD", RegulatoryStatus: "REGULATED_SG", Active: true, LiquidityScore: 70,
				Networks: []Network{
					{Chain: "ETHEREUM", SettlementSeconds: 60, FeeUSD: 5.0},
					{Chain: "POLYGON", SettlementSeconds: 5, FeeUSD: 0.05},
				}},
		},
		Rates: map[string]float64{
			"USDINR": 84.50,
			"EURINR": 89.20,
			"GBPINR": 106.50,
			"EURUSD": 1.0557,
			"USDSGD": 1.34,
			"USDCNY": 7.25,
			"USDHKD": 7.82,
			"USDTHB": 34.50,
			"USDAED": 3.67,
		},
		Segments: map[model.CustomerSegment]model.SegmentConfig{
			model.SegmentInstitutional:  {BaseMarginBps: 5, MinMarginBps: 2, MaxMarginBps: 20},
			model.SegmentLargeCorporate: {BaseMarginBps: 25, MinMarginBps: 10, MaxMarginBps: 75},
			model.SegmentMidMarket:      {BaseMarginBps: 75, MinMarginBps: 40, MaxMarginBps: 150},
			model.SegmentSmallBusiness:  {BaseMarginBps: 150, MinMarginBps: 100, MaxMarginBps: 250},
			model.SegmentRetail:         {BaseMarginBps: 300, MinMarginBps: 200, MaxMarginBps: 500},
			model.SegmentPrivateBanking: {BaseMarginBps: 50, MinMarginBps: 20, MaxMarginBps: 100},
		},
		AmountTiers: []model.AmountTierConfig{
			{Name: "MICRO", MinAmount: 0, MaxAmount: 10_000, AdjustmentBps: 50},
			{Name: "SMALL", MinAmount: 10_000, MaxAmount: 50_000, AdjustmentBps: 25},
			{Name: "MEDIUM", MinAmount: 50_000, MaxAmount: 100_000, AdjustmentBps: 0},
			{Name: "LARGE", MinAmount: 100_000, MaxAmount: 500_000, AdjustmentBps: -15},
			{Name: "XLARGE", MinAmount: 500_000, MaxAmount: 1_000_000, AdjustmentBps: -25},
			{Name: "JUMBO", MinAmount: 1_000_000, AdjustmentBps: -40},
		},
		CurrencyMarkups: map[model.CurrencyCategory]model.CurrencyMarkup{
			model.CategoryG10:        {RetailBps: 50, CorporateBps: 15, InstitutionalBps: 2},
			model.CategoryMinor:      {RetailBps: 100, CorporateBps: 30, InstitutionalBps: 5},
			model.CategoryExotic:     {RetailBps: 200, CorporateBps: 75, InstitutionalBps: 15},
			model.CategoryRestricted: {RetailBps: 300, CorporateBps: 100, InstitutionalBps: 25},
		},
		CategoryMembers: map[model.CurrencyCategory][]string{
			model.CategoryG10:        {"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD", "NZD", "SEK", "NOK"},
			model.CategoryMinor:      {"SGD", "HKD", "AED", "DKK", "PLN"},
			model.CategoryExotic:     {"INR", "THB", "IDR", "PHP", "VND", "BRL", "MXN", "ZAR"},
			model.CategoryRestricted: {"CNY", "MYR", "KRW", "TWD"},
		},
		STPThresholds: map[model.CustomerSegment]float64{
			model.SegmentInstitutional:  10_000_000,
			model.SegmentLargeCorporate: 5_000_000,
			model.SegmentMidMarket:      1_000_000,
			model.SegmentSmallBusiness:  500_000,
			model.SegmentRetail:         100_000,
			model.SegmentPrivateBanking: 2_000_000,
		},
	}
	s.buildIndexes()
	return s
}
