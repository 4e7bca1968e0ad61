// controller/rule_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshmo01/FX-MS/errors"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/service"
	"github.com/joshmo01/FX-MS/util"
	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

type RuleController struct {
	ruleService service.IRuleService
}

func NewRuleController(ruleService service.IRuleService) *RuleController {
	return &RuleController{
		ruleService: ruleService,
	}
}

// RegisterRoutes registers the API routes
func (rc *RuleController) RegisterRoutes(r *gin.RouterGroup) {
	rules := r.Group("/rules")
	{
		rules.GET("", rc.ListRules)
		rules.GET("/:id", rc.GetRule)
		rules.POST("/reload", rc.ReloadRules)
		rules.GET("/audit", rc.AuditTrail)
	}
}

// ListRules endpoint
func (rc *RuleController) ListRules(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", apperrors.ErrInvalidPagination)
		return
	}

	ruleType := model.RuleType(c.Query("type"))
	ruleList, err := rc.ruleService.ListRules(c, ruleType, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list rules", apperrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": ruleList, "count": len(ruleList)})
}

// GetRule endpoint
func (rc *RuleController) GetRule(c *gin.Context) {
	ruleID := c.Param("id")
	rule, err := rc.ruleService.GetRule(c, ruleID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRuleNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Rule not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get rule", apperrors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, rule)
}

// ReloadRules endpoint
func (rc *RuleController) ReloadRules(c *gin.Context) {
	count, err := rc.ruleService.Reload(c)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrReloadInProgress):
			util.RespondWithError(c, http.StatusConflict, "Rule reload already in progress", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Rule reload failed", apperrors.ErrRuleReloadFailed)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules_loaded": count})
}

// AuditTrail endpoint
func (rc *RuleController) AuditTrail(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid limit parameter", apperrors.ErrInvalidPagination)
		return
	}

	entries := rc.ruleService.AuditTrail(c, limit)
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
