// @title           Capstone Estimation API
// @version         1.0
// @description     Construction cost estimation and progress billing backend.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cusloyola/CAPSTONE-sub000/docs"
	"github.com/cusloyola/CAPSTONE-sub000/handlers"
	"github.com/cusloyola/CAPSTONE-sub000/repository"
	"github.com/cusloyola/CAPSTONE-sub000/services"
	"github.com/cusloyola/CAPSTONE-sub000/storage"
)

var auditRunning int32

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:8080",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func main() {
	db := storage.InitDB()
	gormDB := storage.InitGormDB()

	store := repository.NewSQLStore(db)
	consumptionStore := repository.NewGormConsumptionStore(gormDB)

	rollupSvc := services.NewRollupService(store)
	costSvc := services.NewCostService(store)
	estimationSvc := services.NewEstimationService(store, costSvc, log.Default())
	idSvc := services.NewIDService(store)
	billingSvc := services.NewBillingService(store, idSvc)
	consumptionSvc := services.NewConsumptionService(consumptionStore, log.Default())

	// Nightly roll-up audit at 2 AM: recompute every parent total and log
	// drift against the stored values.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("0 2 * * *", func() {
		if !atomic.CompareAndSwapInt32(&auditRunning, 0, 1) {
			log.Println("Previous roll-up audit still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&auditRunning, 0)

		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Minute)
		defer cancel()

		log.Println("Starting nightly roll-up audit")
		if err := rollupSvc.AuditParentTotals(ctx, cronLogger); err != nil {
			log.Printf("Roll-up audit failed: %v", err)
			cronLogger.Printf("Roll-up audit failed: %v", err)
			return
		}
		log.Println("Nightly roll-up audit completed")
	})
	if err != nil {
		log.Fatalf("Failed to schedule roll-up audit cron job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// ==================== AUTH ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))

	api := r.Group("/api", handlers.RequireAuth(db))

	// ==================== QUANTITY TAKE-OFF ====================
	api.POST("/qto/dimensions", handlers.SubmitDimensions(rollupSvc))
	api.PUT("/qto/dimensions/:qto_id", handlers.UpdateDimension(rollupSvc))
	api.DELETE("/qto/dimensions/:qto_id", handlers.DeleteDimension(rollupSvc))
	api.POST("/qto/allowance", handlers.ApplyAllowance(rollupSvc))

	// ==================== COST COMPOSITION ====================
	api.POST("/cost/labor", handlers.AddLaborEntry(costSvc))
	api.DELETE("/cost/labor/:labor_entry_id", handlers.DeleteLaborEntry(costSvc))
	api.POST("/cost/mto", handlers.AddMTORow(costSvc))
	api.DELETE("/cost/mto/:mto_row_id", handlers.DeleteMTORow(costSvc))

	// ==================== FINAL ESTIMATION ====================
	api.GET("/estimation/:proposal_id/final_cost", handlers.GetFinalCost(estimationSvc))
	api.GET("/estimation/:proposal_id/export", handlers.ExportFinalCost(estimationSvc))
	api.POST("/estimation/final", handlers.SaveFinalEstimation(estimationSvc))

	// ==================== PROGRESS BILLING ====================
	api.POST("/billing", handlers.CreateBilling(billingSvc))
	api.POST("/billing/copy/:billing_id", handlers.CopyBilling(billingSvc))
	api.POST("/billing/accomplishment", handlers.RecordAccomplishment(billingSvc))
	api.POST("/billing/accomplishment_log", handlers.AppendAccomplishmentLog(billingSvc))
	api.GET("/billing/:billing_id/weighted_summary", handlers.GetWeightedSummary(estimationSvc))
	api.GET("/billing/:billing_id/report", handlers.GenerateBillingPDF(billingSvc, estimationSvc))
	api.GET("/projects/:project_id/progress_curve", handlers.CumulativeProgress(billingSvc))

	// ==================== MATERIAL CONSUMPTION ====================
	api.POST("/material_requests/:request_id/approve", handlers.ApproveMaterialRequest(consumptionSvc))
	api.POST("/material_requests/:request_id/reject", handlers.RejectMaterialRequest(consumptionSvc))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cronCtx := c.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(20 * time.Second):
		log.Println("Warning: cron jobs did not finish before shutdown deadline")
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
