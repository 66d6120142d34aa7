// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "spendwise/internal/docs" // registers swagger docs
	"spendwise/internal/handlers"
	"spendwise/internal/middleware"
	"spendwise/internal/services"
)

// Services bundles the service layer the router dispatches to.
type Services struct {
	Budgets services.BudgetServicer
	Reports services.ReportServicer
	Stats   services.StatsServicer
	Audit   services.AuditServicer
}

// NewRouter builds the gin engine with every public and protected route.
func NewRouter(svc Services) *gin.Engine {
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	reportHandler := handlers.NewReportHandler(svc.Reports, svc.Audit)
	statsHandler := handlers.NewStatsHandler(svc.Stats)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	reports := protected.Group("/reports")
	reports.POST("", reportHandler.CreateReport)
	reports.GET("", reportHandler.ListReports)
	reports.GET("/:id", reportHandler.GetReport)
	reports.PUT("/:id", reportHandler.UpdateReport)
	reports.DELETE("/:id", reportHandler.DeleteReport)
	reports.GET("/:id/chart", reportHandler.GetReportChart)

	protected.GET("/stats", statsHandler.GetStats)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
