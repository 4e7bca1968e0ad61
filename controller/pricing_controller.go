// controller/pricing_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshmo01/FX-MS/errors"
	"github.com/joshmo01/FX-MS/service"
	"github.com/joshmo01/FX-MS/util"
)

type PricingController struct {
	pricingService service.IPricingService
}

func NewPricingController(pricingService service.IPricingService) *PricingController {
	return &PricingController{
		pricingService: pricingService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PricingController) RegisterRoutes(r *gin.RouterGroup) {
	quotes := r.Group("/quotes")
	{
		quotes.POST("", pc.GetQuote)
	}
}

// GetQuote endpoint
func (pc *PricingController) GetQuote(c *gin.Context) {
	var req service.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid quote request", err)
		return
	}

	quote, err := pc.pricingService.GetQuote(c, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnknownSegment):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown customer segment", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute quote", apperrors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}
