package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/config"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/handler"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Session  *handler.SessionHandler
	Sale     *handler.SaleHandler
	Report   *handler.ReportHandler
	Menu     *handler.MenuHandler
	Modifier *handler.ModifierHandler
	Pizza    *handler.PizzaHandler
	Settings *handler.SettingsHandler
	Staff    *handler.StaffHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	AuthService     *service.AuthService
	SettingsService *service.SettingsService
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.UseJSONFieldNames()
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		v1.POST("/auth/login", deps.RateLimiter.Middleware(), h.Auth.Login)

		// Protected routes, limited per staff member
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.AuthService))
		protected.Use(deps.RateLimiter.Middleware())
		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	registerSessionRoutes(protected, h, deps)
	registerSaleRoutes(protected, h, deps)
	registerReportRoutes(protected, h, deps)
	registerMenuRoutes(protected, h, deps)
	registerPizzaRoutes(protected, h, deps)
	registerSettingsRoutes(protected, h, deps)
	registerStaffRoutes(protected, h, deps)
	registerPrinterRoutes(protected, h, deps)
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	session := protected.Group("/session")
	{
		session.GET("", h.Session.GetSession)
		session.POST("/items", h.Session.AddItem)
		session.POST("/pizzas", h.Session.AddPizza)
		session.PUT("/items/:id", h.Session.ReplaceItem)
		session.PATCH("/items/:id/quantity", h.Session.UpdateQuantity)
		session.DELETE("/items/:id", h.Session.RemoveItem)
		session.DELETE("/cart", h.Session.ClearCart)
		session.PUT("/customer", h.Session.SetCustomer)
		session.POST("/authorization", h.Session.Authorize)
		session.DELETE("/authorization", h.Session.DismissAuthorization)
		session.POST("/finalize",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Required: true}),
			h.Session.Finalize,
		)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequireCapability(deps.SettingsService, entity.CapabilityKanban))
	{
		sales.GET("", h.Sale.ListSales)
		sales.GET("/:id", h.Sale.GetSale)
		sales.POST("/:id/edit", h.Sale.EditSale)
		sales.POST("/:id/void", h.Sale.VoidSale)
		sales.POST("/:id/reprint", h.Sale.Reprint)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireCapability(deps.SettingsService, entity.CapabilityReports))
	{
		reports.GET("/day", h.Report.GetDayReport)
		reports.GET("/closures", h.Report.ListClosures)
		reports.GET("/closures/:id", h.Report.GetClosure)
		reports.POST("/closures",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Report.CloseDay,
		)
	}
}

// Reading the catalog is open to every role since orders are taken from it.
func registerMenuRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	menu := protected.Group("/menu")
	{
		menu.GET("/categories", h.Menu.ListMenu)
		menu.GET("/categories/:id", h.Menu.GetCategory)
		menu.GET("/items/:id", h.Menu.GetMenuItem)
		menu.GET("/modifier-groups", h.Modifier.ListGroups)
		menu.GET("/modifier-groups/:id", h.Modifier.GetGroup)
	}

	manage := protected.Group("/menu")
	manage.Use(middleware.RequireCapability(deps.SettingsService, entity.CapabilityMenu))
	{
		manage.POST("/categories", h.Menu.CreateCategory)
		manage.PUT("/categories/:id", h.Menu.UpdateCategory)
		manage.DELETE("/categories/:id", h.Menu.DeleteCategory)

		manage.POST("/items", h.Menu.CreateMenuItem)
		manage.PUT("/items/:id", h.Menu.UpdateMenuItem)
		manage.DELETE("/items/:id", h.Menu.DeleteMenuItem)

		manage.POST("/modifier-groups", h.Modifier.CreateGroup)
		manage.PUT("/modifier-groups/:id", h.Modifier.UpdateGroup)
		manage.DELETE("/modifier-groups/:id", h.Modifier.DeleteGroup)
	}
}

func registerPizzaRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	pizza := protected.Group("/pizza")
	{
		pizza.GET("/ingredients", h.Pizza.ListIngredients)
		pizza.GET("/base-prices", h.Pizza.ListBasePrices)
	}

	manage := protected.Group("/pizza")
	manage.Use(middleware.RequireCapability(deps.SettingsService, entity.CapabilityMenu))
	{
		manage.POST("/ingredients", h.Pizza.CreateIngredient)
		manage.PUT("/ingredients/:id", h.Pizza.UpdateIngredient)
		manage.DELETE("/ingredients/:id", h.Pizza.DeleteIngredient)
		manage.PUT("/base-prices", h.Pizza.UpdateBasePrices)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/settings", h.Settings.GetSettings)

	settings := protected.Group("/settings")
	settings.Use(middleware.RequireCapability(deps.SettingsService, entity.CapabilitySettings))
	{
		settings.PUT("", h.Settings.UpdateSettings)
		settings.PATCH("", h.Settings.UpdateSettings)
	}
}

// Changing staff can grant the admin role, so writes stay with admins even
// when another role holds the settings capability.
func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	staff := protected.Group("/staff")
	staff.Use(middleware.RequireCapability(deps.SettingsService, entity.CapabilitySettings))
	{
		staff.GET("", h.Staff.ListStaff)
		staff.GET("/:id", h.Staff.GetStaff)
		staff.POST("", middleware.RequireAdmin(), h.Staff.CreateStaff)
		staff.PUT("/:id", middleware.RequireAdmin(), h.Staff.UpdateStaff)
		staff.DELETE("/:id", middleware.RequireAdmin(), h.Staff.DeleteStaff)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test",
			middleware.RequireCapability(deps.SettingsService, entity.CapabilitySettings),
			h.Printer.TestPrint,
		)
	}
}
