// controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshmo01/FX-MS/audit"
	apperrors "github.com/joshmo01/FX-MS/errors"
	"github.com/joshmo01/FX-MS/util"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	decisions := r.Group("/decisions")
	{
		decisions.GET("/logs", ac.QueryLogs)
	}
}

// QueryLogs endpoint. The window defaults to the last 24 hours; from/to take
// RFC 3339 timestamps, customer_id and request_id narrow the search.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	if ac.auditService == nil {
		util.RespondWithError(c, http.StatusServiceUnavailable, "Decision log store not configured", apperrors.ErrAuditUnavailable)
		return
	}

	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", apperrors.ErrInvalidTimeRange)
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", apperrors.ErrInvalidTimeRange)
			return
		}
		to = parsed
	}
	if to.Before(from) {
		util.RespondWithError(c, http.StatusBadRequest, "Window end precedes its start", apperrors.ErrInvalidTimeRange)
		return
	}

	logs, err := ac.auditService.QueryLogs(c, from, to, c.Query("customer_id"), c.Query("request_id"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query decision logs", apperrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
