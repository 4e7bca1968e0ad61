// controller/routing_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshmo01/FX-MS/errors"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/routing"
	"github.com/joshmo01/FX-MS/service"
	"github.com/joshmo01/FX-MS/util"
)

type RoutingController struct {
	routingService service.IRoutingService
}

func NewRoutingController(routingService service.IRoutingService) *RoutingController {
	return &RoutingController{
		routingService: routingService,
	}
}

// RouteDecisionPayload is the POST body: the corridor request plus the
// transaction context rules are evaluated against.
type RouteDecisionPayload struct {
	routing.RouteRequest
	Context *model.TransactionContext `json:"context,omitempty"`
}

// RegisterRoutes registers the API routes
func (rc *RoutingController) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/routes")
	{
		routes.POST("", rc.GetRoute)
	}
}

// GetRoute endpoint
func (rc *RoutingController) GetRoute(c *gin.Context) {
	var payload RouteDecisionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid route request", apperrors.ErrInvalidRouteRequest)
		return
	}

	decision, err := rc.routingService.GetRoute(c, &payload.RouteRequest, payload.Context)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidRouteRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid route request", err)
		case errors.Is(err, apperrors.ErrUnknownObjective):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown routing objective", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute route", apperrors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, decision)
}
