// controller/controllers.go
package controller

import (
	"github.com/joshmo01/FX-MS/service"
)

type Controllers struct {
	Routing *RoutingController
	Pricing *PricingController
	Rules   *RuleController
	Audit   *AuditController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Routing: NewRoutingController(services.Routing),
		Pricing: NewPricingController(services.Pricing),
		Rules:   NewRuleController(services.Rules),
		Audit:   NewAuditController(services.Audit),
	}
}
