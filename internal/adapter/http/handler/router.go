package handler

import (
	"billing-engine/internal/adapter/http/middleware"
	"billing-engine/internal/core/ports"
	"billing-engine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	InvoiceSvc     *service.InvoiceService
	CustomerSvc    *service.CustomerService
	PassTrigger    PassTrigger
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL and, when wired, Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")

	invoiceHandler := NewInvoiceHandler(deps.InvoiceSvc)
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/pending/count", invoiceHandler.PendingCount)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.POST("", invoiceHandler.Create)
	}

	customerHandler := NewCustomerHandler(deps.CustomerSvc)
	customers := v1.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.POST("", customerHandler.Create)
	}

	billingHandler := NewBillingHandler(deps.PassTrigger)
	billing := v1.Group("/billing")
	{
		billing.POST("/run", billingHandler.Run)
	}

	return r
}
