// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshmo01/FX-MS/engine"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/routing"
	"github.com/joshmo01/FX-MS/rules"
	"github.com/joshmo01/FX-MS/service"
)

// MockRoutingService is a mock implementation of service.IRoutingService
type MockRoutingService struct {
	mock.Mock
}

func (m *MockRoutingService) GetRoute(ctx context.Context, req *routing.RouteRequest, txCtx *model.TransactionContext) (*engine.Decision, error) {
	args := m.Called(ctx, req, txCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Decision), args.Error(1)
}

// MockPricingService is a mock implementation of service.IPricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) GetQuote(ctx context.Context, req *service.QuoteRequest) (*service.QuoteResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuoteResponse), args.Error(1)
}

// MockRuleService is a mock implementation of service.IRuleService
type MockRuleService struct {
	mock.Mock
}

func (m *MockRuleService) ListRules(ctx context.Context, ruleType model.RuleType, limit, offset int) ([]*model.Rule, error) {
	args := m.Called(ctx, ruleType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Rule), args.Error(1)
}

func (m *MockRuleService) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rule), args.Error(1)
}

func (m *MockRuleService) Reload(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRuleService) AuditTrail(ctx context.Context, limit int) []rules.AuditEntry {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]rules.AuditEntry)
}
