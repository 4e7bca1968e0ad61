// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/joshmo01/FX-MS/audit"
	"github.com/joshmo01/FX-MS/config"
	"github.com/joshmo01/FX-MS/controller"
	"github.com/joshmo01/FX-MS/db"
	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/refdata"
	"github.com/joshmo01/FX-MS/router"
	"github.com/joshmo01/FX-MS/rules"
	"github.com/joshmo01/FX-MS/service"
	"github.com/joshmo01/FX-MS/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Load reference data
	snap, err := refdata.Load(config.GetString("refdata.dir"))
	if err != nil {
		logger.Fatal("Failed to load reference data", zap.Error(err))
	}

	// Initialize rule engine
	validationUtil := util.NewValidationUtil()
	repo := rules.NewRepository()
	loader := rules.NewLoader(config.GetString("rules.dir"), repo, validationUtil)
	if _, err := loader.Load(); err != nil {
		logger.Warn("Initial rule load failed, starting with an empty rule set", zap.Error(err))
	}
	trail := rules.NewAuditTrail(config.GetInt("rules.auditCapacity"))

	if config.GetBool("rules.watchFiles") {
		watcher := rules.NewWatcher(loader, eventBus)
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("Failed to start rules watcher", zap.Error(err))
		}
	}

	// Initialize audit logging
	var auditService audit.Service
	if auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url")); err != nil {
		logger.Warn("Decision log store unavailable, audit logging disabled", zap.Error(err))
	} else {
		auditService = audit.NewService(auditRepository)
	}

	// Initialize services
	services, err := service.InitializeServices(snap, repo, loader, trail, auditService, validationUtil, eventBus)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Initialize controllers
	controllers := controller.InitializeControllers(services)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, 100, time.Minute) // 100 requests per minute

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
