// util/validation_util.go

package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/joshmo01/FX-MS/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

// ValidateRule checks rule fields and the structural validity of its
// condition tree. Rules failing validation are skipped at load time.
func (v *ValidationUtil) ValidateRule(rule *model.Rule) error {
	if rule.ID == "" {
		return fmt.Errorf("rule ID cannot be empty")
	}
	if rule.Name == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if rule.Type != model.RuleTypeProviderSelection && rule.Type != model.RuleTypeMarginAdjustment {
		return fmt.Errorf("rule type must be PROVIDER_SELECTION or MARGIN_ADJUSTMENT")
	}
	if err := v.validate.Struct(rule); err != nil {
		return err
	}
	if rule.ValidFrom.IsZero() {
		return fmt.Errorf("rule valid_from cannot be empty")
	}
	if rule.ValidUntil != nil && rule.ValidUntil.Before(rule.ValidFrom) {
		return fmt.Errorf("rule valid_until cannot precede valid_from")
	}
	switch rule.Type {
	case model.RuleTypeProviderSelection:
		if rule.Actions.ProviderSelection == nil {
			return fmt.Errorf("provider selection rule must carry a provider_selection action")
		}
	case model.RuleTypeMarginAdjustment:
		if rule.Actions.MarginAdjustment == nil {
			return fmt.Errorf("margin adjustment rule must carry a margin_adjustment action")
		}
	}
	if rule.Conditions != nil {
		if err := rule.Conditions.Validate(); err != nil {
			return fmt.Errorf("rule conditions invalid: %w", err)
		}
	}
	return nil
}

// ValidateStruct runs tag-based validation on any request payload.
func (v *ValidationUtil) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}
