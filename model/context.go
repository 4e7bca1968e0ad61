// model/context.go
package model

import (
	"time"
)

// Direction of the transaction from the customer's perspective.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// TransactionContext is the immutable request snapshot rules are evaluated
// against. It carries a fixed set of typed fields plus an open-ended
// Extensions map for forward-compatible attributes. Field lookup resolves
// typed fields first, then Extensions; a name absent from both is missing.
type TransactionContext struct {
	Timestamp time.Time `json:"timestamp"`

	// Customer fields
	CustomerID           string   `json:"customer_id,omitempty"`
	CustomerSegment      string   `json:"customer_segment,omitempty"`
	CustomerTier         string   `json:"customer_tier,omitempty"`
	CustomerAnnualVolume *float64 `json:"customer_annual_volume,omitempty"`

	// Currency fields
	CurrencyPair     string `json:"currency_pair,omitempty"`
	BaseCurrency     string `json:"base_currency,omitempty"`
	QuoteCurrency    string `json:"quote_currency,omitempty"`
	CurrencyCategory string `json:"currency_category,omitempty"`

	// Transaction fields
	Amount     float64   `json:"amount,omitempty"`
	AmountTier string    `json:"amount_tier,omitempty"`
	Direction  Direction `json:"direction,omitempty"`

	// Location fields
	Office string `json:"office,omitempty"`
	Region string `json:"region,omitempty"`

	// Temporal fields
	TimeOfDay string `json:"time_of_day,omitempty"` // HH:MM
	DayOfWeek string `json:"day_of_week,omitempty"`
	IsHoliday *bool  `json:"is_holiday,omitempty"`

	// Extensions holds additional attributes not covered by the typed fields.
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Field resolves a named field against the context. Typed fields win over
// Extensions; the boolean reports whether the field is present at all.
func (c *TransactionContext) Field(name string) (interface{}, bool) {
	if v, ok := c.typedField(name); ok {
		return v, true
	}
	if c.Extensions != nil {
		if v, ok := c.Extensions[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (c *TransactionContext) typedField(name string) (interface{}, bool) {
	switch name {
	case "timestamp":
		if c.Timestamp.IsZero() {
			return nil, false
		}
		return c.Timestamp, true
	case "customer_id":
		return stringField(c.CustomerID)
	case "customer_segment":
		return stringField(c.CustomerSegment)
	case "customer_tier":
		return stringField(c.CustomerTier)
	case "customer_annual_volume":
		if c.CustomerAnnualVolume == nil {
			return nil, false
		}
		return *c.CustomerAnnualVolume, true
	case "currency_pair":
		return stringField(c.CurrencyPair)
	case "base_currency":
		return stringField(c.BaseCurrency)
	case "quote_currency":
		return stringField(c.QuoteCurrency)
	case "currency_category":
		return stringField(c.CurrencyCategory)
	case "amount":
		if c.Amount == 0 {
			return nil, false
		}
		return c.Amount, true
	case "amount_tier":
		return stringField(c.AmountTier)
	case "direction":
		return stringField(string(c.Direction))
	case "office":
		return stringField(c.Office)
	case "region":
		return stringField(c.Region)
	case "time_of_day":
		return stringField(c.TimeOfDay)
	case "day_of_week":
		return stringField(c.DayOfWeek)
	case "is_holiday":
		if c.IsHoliday == nil {
			return nil, false
		}
		return *c.IsHoliday, true
	}
	return nil, false
}

func stringField(v string) (interface{}, bool) {
	if v == "" {
		return nil, false
	}
	return v, true
}
