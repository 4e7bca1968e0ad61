// service/routing_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/joshmo01/FX-MS/audit"
	"github.com/joshmo01/FX-MS/db"
	"github.com/joshmo01/FX-MS/engine"
	apperrors "github.com/joshmo01/FX-MS/errors"
	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/routing"
	"github.com/joshmo01/FX-MS/util"
)

// IRoutingService is the routing decision entry point.
type IRoutingService interface {
	GetRoute(ctx context.Context, req *routing.RouteRequest, txCtx *model.TransactionContext) (*engine.Decision, error)
}

// RoutingService wraps the orchestrator with request validation, decision
// caching, audit logging and event publication.
type RoutingService struct {
	orchestrator   *engine.Orchestrator
	auditService   audit.Service
	validationUtil *util.ValidationUtil
	eventBus       *util.EventBus
}

// DecisionEvent is the decision.completed payload: the decision together
// with the context it was made for.
type DecisionEvent struct {
	Decision *engine.Decision
	Context  *model.TransactionContext
}

func NewRoutingService(orchestrator *engine.Orchestrator, auditService audit.Service, validationUtil *util.ValidationUtil, eventBus *util.EventBus) *RoutingService {
	s := &RoutingService{
		orchestrator:   orchestrator,
		auditService:   auditService,
		validationUtil: validationUtil,
		eventBus:       eventBus,
	}
	eventBus.Subscribe(util.EventDecisionCompleted, s.onDecisionCompleted)
	return s
}

func (s *RoutingService) onDecisionCompleted(_ context.Context, event util.Event) error {
	payload, ok := event.Payload.(DecisionEvent)
	if !ok {
		return nil
	}
	return s.logDecision(payload.Decision, payload.Context)
}

func (s *RoutingService) GetRoute(ctx context.Context, req *routing.RouteRequest, txCtx *model.TransactionContext) (*engine.Decision, error) {
	if err := s.validationUtil.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRouteRequest, err)
	}
	if txCtx == nil {
		txCtx = &model.TransactionContext{}
	}

	cacheKey := decisionCacheKey(req, txCtx)
	if db.RedisClient != nil {
		cached, err := db.GetCachedDecision(ctx, cacheKey)
		if err != nil {
			logger.Warn("Decision cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	decision, err := s.orchestrator.Decide(ctx, req, txCtx)
	if err != nil {
		return nil, err
	}

	if db.RedisClient != nil {
		if err := db.CacheDecision(ctx, cacheKey, decision); err != nil {
			logger.Warn("Failed to cache decision", zap.Error(err))
		}
	}

	s.eventBus.Publish(ctx, util.EventDecisionCompleted, DecisionEvent{Decision: decision, Context: txCtx})

	return decision, nil
}

func (s *RoutingService) logDecision(decision *engine.Decision, txCtx *model.TransactionContext) error {
	if s.auditService == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := audit.DecisionLog{
		Timestamp:      decision.Timestamp,
		RequestID:      decision.RequestID,
		CustomerID:     txCtx.CustomerID,
		SourceCurrency: decision.SourceCurrency,
		TargetCurrency: decision.TargetCurrency,
		SourceAmount:   decision.SourceAmount,
		Objective:      string(decision.Objective),
		AppliedRuleID:  decision.AppliedRuleID,
		RouteCount:     len(decision.Routes),
		STPEligible:    decision.STPEligible,
	}
	if decision.Recommended != nil {
		entry.RecommendedID = decision.Recommended.ID
		if details, err := json.Marshal(decision.Recommended); err == nil {
			entry.Details = details
		}
	}
	if err := s.auditService.LogDecision(ctx, entry); err != nil {
		logger.Error("Failed to log routing decision",
			zap.Error(err),
			zap.String("requestID", decision.RequestID))
		return err
	}
	return nil
}

// decisionCacheKey identifies a decision by everything that can change it.
func decisionCacheKey(req *routing.RouteRequest, txCtx *model.TransactionContext) string {
	return fmt.Sprintf("%s:%s:%s:%s:%.2f:%s:%s:%s",
		req.SourceCurrency, req.SourceType,
		req.TargetCurrency, req.TargetType,
		req.SourceAmount, req.Objective,
		txCtx.CustomerID, txCtx.CustomerSegment)
}
