// service/pricing_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/joshmo01/FX-MS/db"
	"github.com/joshmo01/FX-MS/engine"
	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
	"github.com/joshmo01/FX-MS/rules"
	"github.com/joshmo01/FX-MS/util"
	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

// QuoteRequest asks for a margin quote over a transaction context.
type QuoteRequest struct {
	Context               model.TransactionContext `json:"context"`
	NegotiatedDiscountBps float64                  `json:"negotiated_discount_bps,omitempty"`
}

// QuoteResponse is an itemized margin quote.
type QuoteResponse struct {
	RequestID    string                `json:"request_id"`
	Timestamp    time.Time             `json:"timestamp"`
	CurrencyPair string                `json:"currency_pair"`
	Amount       float64               `json:"amount"`
	Segment      model.CustomerSegment `json:"segment"`
	Margin       model.MarginBreakdown `json:"margin"`
	UsedDefaults bool                  `json:"used_defaults"`
}

// IPricingService computes rule-adjusted margin quotes.
type IPricingService interface {
	GetQuote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error)
}

type PricingService struct {
	snap     *refdata.Snapshot
	resolver *rules.Resolver
	eventBus *util.EventBus
}

func NewPricingService(snap *refdata.Snapshot, resolver *rules.Resolver, eventBus *util.EventBus) *PricingService {
	return &PricingService{snap: snap, resolver: resolver, eventBus: eventBus}
}

func (s *PricingService) GetQuote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	txCtx := &req.Context

	cacheKey := quoteCacheKey(req)
	if db.RedisClient != nil {
		cached, err := db.GetCachedQuote(ctx, cacheKey)
		if err != nil {
			logger.Warn("Quote cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return s.respond(req, *cached, cached.RuleApplied == ""), nil
		}
	}

	result := s.resolver.Resolve(model.RuleTypeMarginAdjustment, txCtx)
	var action *model.MarginAdjustmentAction
	if result.Actions != nil {
		action = result.Actions.MarginAdjustment
	}

	breakdown, err := engine.ComputeMargin(s.snap, engine.MarginInputs{
		Segment:               model.CustomerSegment(txCtx.CustomerSegment),
		Amount:                txCtx.Amount,
		CurrencyPair:          txCtx.CurrencyPair,
		NegotiatedDiscountBps: req.NegotiatedDiscountBps,
	}, action)
	if err != nil {
		return nil, err
	}
	if result.WinningRule != nil {
		breakdown.RuleApplied = result.WinningRule.ID
	}

	if db.RedisClient != nil {
		if err := db.CacheQuote(ctx, cacheKey, &breakdown); err != nil {
			logger.Warn("Failed to cache quote", zap.Error(err))
		}
	}

	response := s.respond(req, breakdown, result.UseDefault)
	s.eventBus.Publish(ctx, util.EventQuoteComputed, response)
	return response, nil
}

func (s *PricingService) respond(req *QuoteRequest, breakdown model.MarginBreakdown, usedDefaults bool) *QuoteResponse {
	return &QuoteResponse{
		RequestID:    helper_util.NewRequestID("RT"),
		Timestamp:    time.Now().UTC(),
		CurrencyPair: req.Context.CurrencyPair,
		Amount:       req.Context.Amount,
		Segment:      model.CustomerSegment(req.Context.CustomerSegment),
		Margin:       breakdown,
		UsedDefaults: usedDefaults,
	}
}

func quoteCacheKey(req *QuoteRequest) string {
	return fmt.Sprintf("%s:%s:%.2f:%s:%.2f",
		req.Context.CurrencyPair,
		req.Context.CustomerSegment,
		req.Context.Amount,
		req.Context.CustomerID,
		req.NegotiatedDiscountBps)
}
