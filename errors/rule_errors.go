// errors/rule_errors.go
package errors

import "errors"

var (
	ErrRuleNotFound        = errors.New("rule not found")
	ErrInvalidRuleData     = errors.New("invalid rule data")
	ErrInvalidRuleType     = errors.New("invalid rule type")
	ErrMalformedCondition  = errors.New("malformed condition tree")
	ErrInternalServer      = errors.New("internal server error")
	ErrInvalidPagination   = errors.New("invalid pagination parameters")
	ErrRuleReloadFailed    = errors.New("rule reload failed")
	ErrReloadInProgress    = errors.New("rule reload already in progress")
	ErrUnsupportedOperator = errors.New("unsupported criterion operator")
)
