// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/itissulav/Kharcha/internal/integration/entrypoint/controller"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health      *controller.HealthController
	Account     *controller.AccountController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Limit       *controller.LimitController
	Recurrence  *controller.RecurrenceController
	Stats       *controller.StatsController
	Settings    *controller.SettingsController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	recurrenceLimit  *middleware.RateLimiter
	metricsHandler   http.Handler
	corsAllowOrigins []string
}

// NewRouter creates a new router instance with all dependencies.
// A nil metricsHandler leaves /metrics unrouted.
func NewRouter(
	controllers Controllers,
	recurrenceLimit *middleware.RateLimiter,
	metricsHandler http.Handler,
	corsAllowOrigins []string,
) *Router {
	return &Router{
		controllers:      controllers,
		recurrenceLimit:  recurrenceLimit,
		metricsHandler:   metricsHandler,
		corsAllowOrigins: corsAllowOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), requestid.New(), middleware.RequestLogger())
	r.engine.Use(cors.New(r.corsConfig()))

	r.setupOperationalRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if len(r.corsAllowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = r.corsAllowOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Request-ID")
	config.ExposeHeaders = []string{"X-Request-ID"}
	return config
}

// setupOperationalRoutes configures health and metrics endpoints.
func (r *Router) setupOperationalRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")

	accounts := v1.Group("/accounts")
	{
		accounts.POST("", c.Account.Create)
		accounts.GET("", c.Account.List)
		accounts.GET("/total-balance", c.Account.TotalBalance)
		accounts.GET("/:id", c.Account.Get)
		accounts.PATCH("/:id", c.Account.Update)
		accounts.DELETE("/:id", c.Account.Delete)
		accounts.GET("/:id/transactions", c.Account.Transactions)
	}

	categories := v1.Group("/categories")
	{
		categories.POST("", c.Category.Create)
		categories.GET("", c.Category.List)
		categories.GET("/budgets", c.Category.Budgets)
		categories.PATCH("/:id", c.Category.Update)
		categories.DELETE("/:id", c.Category.Delete)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.POST("", c.Transaction.Create)
		transactions.GET("", c.Transaction.List)
		transactions.GET("/recent", c.Transaction.Recent)
		transactions.GET("/credits/this-month", c.Transaction.CreditsThisMonth)
		transactions.PUT("/:id", c.Transaction.Update)
		transactions.DELETE("/:id", c.Transaction.Delete)
	}

	v1.POST("/limits/evaluate", c.Limit.Evaluate)

	recurrence := v1.Group("/recurrence")
	{
		run := []gin.HandlerFunc{c.Recurrence.Run}
		if r.recurrenceLimit != nil {
			run = append([]gin.HandlerFunc{r.recurrenceLimit.Middleware()}, run...)
		}
		recurrence.POST("/run", run...)
		recurrence.POST("/backfill", c.Recurrence.Backfill)
	}

	stats := v1.Group("/stats")
	{
		stats.GET("/month", c.Stats.Month)
		stats.GET("/summary", c.Stats.Summary)
		stats.GET("/category-spend/:id", c.Stats.CategorySpend)
		stats.GET("/breakdown", c.Stats.Breakdown)
		stats.GET("/trailing", c.Stats.Trailing)
		stats.GET("/monthly", c.Stats.Monthly)
		stats.GET("/daily", c.Stats.Daily)
		stats.GET("/weekly", c.Stats.Weekly)
		stats.GET("/top-categories", c.Stats.TopCategories)
		stats.GET("/credit-categories", c.Stats.CreditCategories)
	}

	settings := v1.Group("/settings")
	{
		settings.GET("", c.Settings.Get)
		settings.PUT("", c.Settings.Update)
		settings.POST("/monthly-alert/dismiss", c.Settings.DismissMonthlyAlert)
		settings.POST("/reset", c.Settings.Reset)
	}
}

// Engine returns the configured engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
