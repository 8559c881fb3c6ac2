package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"alazab/internal/domain"
	"alazab/internal/handler"
	"alazab/internal/middleware"
	"alazab/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	syncH *handler.SyncHandler,
	reviewH *handler.ReviewHandler,
	projectH *handler.ProjectHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Invoice records
	invoices := protected.Group("/invoices")
	invoices.GET("", invoiceH.List)
	invoices.POST("", adminOnly, invoiceH.Create)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id", adminOnly, invoiceH.Update)
	invoices.DELETE("/:id", adminOnly, invoiceH.Delete)
	invoices.GET("/:id/files", invoiceH.ListFiles)
	invoices.GET("/:id/files/:kind", invoiceH.DownloadDocument)
	invoices.GET("/:id/audit", invoiceH.AuditTrail)

	// Billing source synchronization
	sync := protected.Group("/sync", adminOnly)
	sync.POST("/invoice", syncH.SyncInvoice)
	sync.POST("/batch", syncH.SyncBatch)

	protected.GET("/storage/status", syncH.StorageStatus)

	// Department reviews
	reviews := protected.Group("/reviews")
	reviews.POST("", reviewH.Submit)
	reviews.GET("/document/:documentId", reviewH.ListByDocument)
	reviews.GET("/status/:documentId", reviewH.Status)

	// Construction projects
	projects := protected.Group("/projects")
	projects.GET("", projectH.List)
	projects.POST("", adminOnly, projectH.Create)
	projects.GET("/:id", projectH.GetByID)
	projects.POST("/:id/gallery/sync", adminOnly, projectH.SyncGallery)

	// Reports
	protected.GET("/reports/invoices.xlsx", adminOnly, reportH.InvoiceRegister)

	return r
}
