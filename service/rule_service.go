// service/rule_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/joshmo01/FX-MS/db"
	apperrors "github.com/joshmo01/FX-MS/errors"
	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/rules"
	"github.com/joshmo01/FX-MS/util"
)

// Reload is serialized across instances through a Redis lock so two
// concurrent reloads cannot interleave their repository swaps.
const (
	reloadLockResource = "rules-reload"
	reloadLockTTL      = 30 * time.Second
)

// IRuleService exposes the loaded rule set for inspection and reload.
type IRuleService interface {
	ListRules(ctx context.Context, ruleType model.RuleType, limit, offset int) ([]*model.Rule, error)
	GetRule(ctx context.Context, ruleID string) (*model.Rule, error)
	Reload(ctx context.Context) (int, error)
	AuditTrail(ctx context.Context, limit int) []rules.AuditEntry
}

type RuleService struct {
	repo     *rules.Repository
	loader   *rules.Loader
	trail    *rules.AuditTrail
	eventBus *util.EventBus
}

func NewRuleService(repo *rules.Repository, loader *rules.Loader, trail *rules.AuditTrail, eventBus *util.EventBus) *RuleService {
	return &RuleService{repo: repo, loader: loader, trail: trail, eventBus: eventBus}
}

func (s *RuleService) ListRules(_ context.Context, ruleType model.RuleType, limit, offset int) ([]*model.Rule, error) {
	var all []*model.Rule
	if ruleType == "" {
		all = s.repo.All()
	} else {
		all = s.repo.ByType(ruleType)
	}
	if offset >= len(all) {
		return []*model.Rule{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *RuleService) GetRule(_ context.Context, ruleID string) (*model.Rule, error) {
	return s.repo.ByID(ruleID)
}

func (s *RuleService) Reload(ctx context.Context) (int, error) {
	if db.RedisClient != nil {
		locked, err := db.LockResource(ctx, reloadLockResource, reloadLockTTL)
		if err != nil {
			logger.Warn("Reload lock unavailable, reloading without it", zap.Error(err))
		} else if !locked {
			return 0, apperrors.ErrReloadInProgress
		} else {
			defer func() {
				if err := db.UnlockResource(ctx, reloadLockResource); err != nil {
					logger.Warn("Failed to release reload lock", zap.Error(err))
				}
			}()
		}
	}

	count, err := s.loader.Load()
	if err != nil {
		return 0, err
	}
	s.eventBus.Publish(ctx, util.EventRulesReloaded, count)
	return count, nil
}

func (s *RuleService) AuditTrail(_ context.Context, limit int) []rules.AuditEntry {
	return s.trail.Recent(limit)
}
