// service/services.go
package service

import (
	"github.com/joshmo01/FX-MS/audit"
	"github.com/joshmo01/FX-MS/engine"
	"github.com/joshmo01/FX-MS/refdata"
	"github.com/joshmo01/FX-MS/rules"
	"github.com/joshmo01/FX-MS/util"
)

type Services struct {
	Routing IRoutingService
	Pricing IPricingService
	Rules   IRuleService
	Audit   audit.Service
}

func InitializeServices(
	snap *refdata.Snapshot,
	repo *rules.Repository,
	loader *rules.Loader,
	trail *rules.AuditTrail,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	eventBus *util.EventBus,
) (*Services, error) {
	resolver := rules.NewResolver(repo, rules.NewEvaluator(), trail)
	orchestrator := engine.NewOrchestrator(snap, resolver)

	services := &Services{
		Routing: NewRoutingService(orchestrator, auditService, validationUtil, eventBus),
		Pricing: NewPricingService(snap, resolver, eventBus),
		Rules:   NewRuleService(repo, loader, trail, eventBus),
		Audit:   auditService,
	}

	return services, nil
}
