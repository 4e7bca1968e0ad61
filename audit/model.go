// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

type DecisionLog struct {
	Timestamp      time.Time       `json:"timestamp"`
	RequestID      string          `json:"request_id"`
	CustomerID     string          `json:"customer_id,omitempty"`
	SourceCurrency string          `json:"source_currency"`
	TargetCurrency string          `json:"target_currency"`
	SourceAmount   float64         `json:"source_amount"`
	Objective      string          `json:"objective"`
	AppliedRuleID  string          `json:"applied_rule_id,omitempty"`
	RecommendedID  string          `json:"recommended_route_id,omitempty"`
	RouteCount     int             `json:"route_count"`
	STPEligible    bool            `json:"stp_eligible"`
	Details        json.RawMessage `json:"details,omitempty"`
}
