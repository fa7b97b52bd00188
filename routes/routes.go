package routes

import (
	"context"
	"fmt"

	"oh-crepe-api/cache"
	"oh-crepe-api/config"
	"oh-crepe-api/handlers"
	"oh-crepe-api/middleware"
	"oh-crepe-api/models"
	"oh-crepe-api/repository"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto r.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger, menuCache cache.Cache) error {
	fee, err := cfg.Orders.Fee()
	if err != nil {
		return fmt.Errorf("failed to configure orders: %w", err)
	}

	users := repository.NewUserRepository(db)
	menu := repository.NewMenuRepository(db)
	orders := repository.NewOrderRepository(db)
	carts := repository.NewCartRepository(db)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authSvc := services.NewAuthService(users, auth, log)
	menuSvc := services.NewMenuService(menu, menuCache, log)
	orderSvc := services.NewOrderService(orders, menu, carts, log, services.OrderOptions{
		DeliveryFee: fee,
		DeliveryETA: cfg.Orders.DeliveryETA,
	})
	userSvc := services.NewUserService(users, orders, menu, log)
	cartSvc := services.NewCartService(carts, menu, log)
	analyticsSvc := services.NewAnalyticsService(orders, users, menu)

	public := handlers.NewPublicHandler(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	authH := handlers.NewAuthHandler(authSvc, auth, log)
	menuH := handlers.NewMenuHandler(menuSvc, log)
	orderH := handlers.NewOrderHandler(orderSvc, log)
	cartH := handlers.NewCartHandler(cartSvc, log)
	userH := handlers.NewUserHandler(userSvc, log)
	dashH := handlers.NewDashboardHandler(analyticsSvc, log)

	authRequired := auth.AuthRequired()
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	r.GET("/health", public.Health)
	r.GET("/", public.Welcome)
	r.NoRoute(public.NotFound)

	api := r.Group("/api")

	// ── Auth ───────────────────────────────────────────────────────
	{
		api.POST("/auth/register", authH.Register)
		api.POST("/auth/login", authH.Login)
		api.POST("/auth/verify", authH.Verify)
		api.GET("/auth/me", authRequired, authH.Me)
	}

	// ── Menu: reads are public, writes are admin only ──────────────
	menuGroup := api.Group("/menu")
	{
		menuGroup.GET("", menuH.List)
		menuGroup.GET("/available", menuH.ListAvailable)
		menuGroup.GET("/categories/list", menuH.Categories)
		menuGroup.GET("/:id", menuH.Get)

		admin := menuGroup.Group("", authRequired, adminOnly)
		admin.POST("", menuH.Create)
		admin.PUT("/:id", menuH.Update)
		admin.PATCH("/:id/toggle-availability", menuH.ToggleAvailability)
		admin.DELETE("/:id", menuH.Delete)
	}

	// ── Orders ─────────────────────────────────────────────────────
	api.GET("/orders/state-machine", public.StateMachine)
	orderGroup := api.Group("/orders", authRequired)
	{
		orderGroup.GET("", orderH.List)
		orderGroup.GET("/:id", orderH.Get)
		orderGroup.GET("/:id/history", orderH.History)
		orderGroup.POST("", middleware.RoleRequired(models.RoleCustomer), orderH.PlaceOrder)
		orderGroup.PATCH("/:id/status", middleware.RoleRequired(models.RoleStaff, models.RoleAdmin), orderH.UpdateStatus)
	}

	// ── Cart (customer) ────────────────────────────────────────────
	cartGroup := api.Group("/cart", authRequired, middleware.RoleRequired(models.RoleCustomer))
	{
		cartGroup.GET("", cartH.Get)
		cartGroup.DELETE("", cartH.Clear)
		cartGroup.POST("/items", cartH.AddItem)
		cartGroup.PATCH("/items/:menuItemId", cartH.SetQuantity)
		cartGroup.DELETE("/items/:menuItemId", cartH.RemoveItem)
	}

	// ── Admin ──────────────────────────────────────────────────────
	userGroup := api.Group("/users", authRequired, adminOnly)
	{
		userGroup.GET("", userH.List)
		userGroup.POST("", userH.Create)
		userGroup.GET("/stats/overview", userH.Stats)
		userGroup.GET("/:id", userH.Get)
		userGroup.PATCH("/:id/role", userH.UpdateRole)
		userGroup.DELETE("/:id", userH.Delete)
	}
	api.GET("/dashboard", authRequired, adminOnly, dashH.Get)

	return nil
}
