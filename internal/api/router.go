package api

import (
	v1 "github.com/billfold/billfold/internal/api/v1"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Invoice *v1.InvoiceHandler
	Report  *v1.ReportHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SentryMiddleware(cfg))
	router.Use(
		middleware.CORSMiddleware,
		middleware.RequestIDMiddleware,
		middleware.UserIDMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.GetInvoices)
		invoices.GET("/draft", handlers.Invoice.NewDraftInvoice)
		invoices.POST("/totals", handlers.Invoice.ComputeTotals)
		invoices.POST("/email-link", handlers.Invoice.EmailInvoiceLink)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PATCH("/:id/payment", handlers.Invoice.SetPaymentDate)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	// Directory routes backing invoice autofill
	router.GET("/customers", handlers.Invoice.GetCustomers)
	router.GET("/customers/balances", handlers.Report.CustomerBalances)
	router.GET("/products", handlers.Invoice.GetProducts)

	// Reporting routes
	router.GET("/dashboard", handlers.Report.Dashboard)
}
