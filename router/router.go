// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshmo01/FX-MS/controller"
	"github.com/joshmo01/FX-MS/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	controllers.Routing.RegisterRoutes(api)
	controllers.Pricing.RegisterRoutes(api)
	controllers.Rules.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)

	return router
}
