package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/donorhub/donorhub-api/docs"
	"github.com/donorhub/donorhub-api/internal/api/handler"
	"github.com/donorhub/donorhub-api/internal/api/middleware"
	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// Deps bundles the constructed services and infrastructure handles the
// router mounts. Construction happens in cmd/server.
type Deps struct {
	Log       zerolog.Logger
	Identity  ports.IdentityService
	Users     ports.UserService
	Donations ports.DonationService
	Products  ports.ProductService
	Blogs     ports.BlogService
	Fundings  ports.FundingService
	Contacts  ports.ContactService
	Audit     ports.AuditRepository
	Mongo     *mongo.Database
	Redis     *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("donorhub"))

	// --- Guards ---
	authn := middleware.Authenticate(deps.Identity)
	authnOpt := middleware.AuthenticateOptional(deps.Identity)
	active := middleware.RequireActive()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	sellers := middleware.RequireRole(domain.RoleMerchant, domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Users)
	adminHandler := handler.NewAdminHandler(deps.Users, deps.Audit)
	donationHandler := handler.NewDonationHandler(deps.Donations)
	donorHandler := handler.NewDonorHandler(deps.Users)
	productHandler := handler.NewProductHandler(deps.Products)
	blogHandler := handler.NewBlogHandler(deps.Blogs)
	fundingHandler := handler.NewFundingHandler(deps.Fundings)
	contactHandler := handler.NewContactHandler(deps.Contacts)

	// --- Auth routes ---
	e.POST("/auth/add-user", authHandler.AddUser)
	e.GET("/auth/me", authHandler.Me, authn)
	e.POST("/auth/request-merchant", authHandler.RequestMerchant, authn, active)

	// --- Admin routes ---
	admin := e.Group("/admin", authn, adminOnly)
	admin.PATCH("/approve-merchant/:id", adminHandler.ApproveMerchant)
	admin.PATCH("/reject-merchant/:id", adminHandler.RejectMerchant)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/role", adminHandler.SetRole)
	admin.PATCH("/users/:id/status", adminHandler.SetStatus)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/audit", adminHandler.ListAudit)

	// --- Donation routes ---
	e.POST("/donation-requests", donationHandler.Create, authn, active)
	e.GET("/donation-requests", donationHandler.List, authnOpt)
	e.GET("/donation-requests/:id", donationHandler.Get)
	e.PATCH("/donation-requests/:id/respond", donationHandler.Respond, authn, active)
	e.PATCH("/donation-requests/:id/status", donationHandler.UpdateStatus, authn)
	e.DELETE("/donation-requests/:id", donationHandler.Delete, authn)

	// --- Donor search ---
	e.GET("/search-donors", donorHandler.Search)
	e.GET("/search-donors-dynamic", donorHandler.SearchDynamic)

	// --- Product routes ---
	e.POST("/products", productHandler.Create, authn, active, sellers)
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.PATCH("/products/:id/edit", productHandler.Edit, authn, active)
	e.PATCH("/products/:id/update-stock", productHandler.UpdateStock, authn, active)
	e.PATCH("/products/:id/stock-out", productHandler.StockOut, authn, active)
	e.DELETE("/products/:id", productHandler.Delete, authn, active)

	// --- Blog routes ---
	e.POST("/blogs", blogHandler.Create, authn, active)
	e.GET("/blogs", blogHandler.List, authnOpt)
	e.GET("/blogs/:id", blogHandler.Get, authnOpt)
	e.PATCH("/blogs/:id/publish", blogHandler.Publish, authn, adminOnly)
	e.PATCH("/blogs/:id/unpublish", blogHandler.Unpublish, authn, adminOnly)
	e.DELETE("/blogs/:id", blogHandler.Delete, authn)

	// --- Funding routes ---
	e.POST("/create-payment-intent", fundingHandler.CreateIntent)
	e.POST("/fundings", fundingHandler.Record, authn)
	e.GET("/fundings", fundingHandler.List)
	e.GET("/fundings/total", fundingHandler.Total)

	// --- Contact routes ---
	e.POST("/contacts", contactHandler.Submit)
	e.GET("/contacts", contactHandler.List, authn, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies reachable?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
