// errors/route_errors.go
package errors

import "errors"

var (
	ErrInvalidRouteRequest = errors.New("invalid route request")
	ErrUnknownObjective    = errors.New("unknown routing objective")
	ErrUnknownSegment      = errors.New("unknown customer segment")
	ErrNoRatesAvailable    = errors.New("no rates available for currency pair")
	ErrCacheOperation      = errors.New("cache operation failed")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrAuditUnavailable    = errors.New("decision log store unavailable")
)
