package routes

import (
	"github.com/farmdirect/backend-go/handlers"
	customMiddleware "github.com/farmdirect/backend-go/middleware"
	"github.com/farmdirect/backend-go/models"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(e *echo.Echo, h *handlers.Handler) {
	// Public routes
	e.POST("/register", h.SignUp)
	e.POST("/login", h.Login)
	e.GET("/products", h.GetProducts)
	e.GET("/products/:id", h.GetProduct)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Protected API routes
	api := e.Group("/api")
	api.Use(customMiddleware.AuthMiddleware())

	// User routes
	api.GET("/users/me", h.GetUserProfile)
	api.PUT("/users/me", h.UpdateUserProfile)
	api.GET("/users/me/addresses", h.GetUserAddresses)
	api.POST("/users/me/addresses", h.AddUserAddress)
	api.PUT("/users/me/addresses/:id", h.UpdateUserAddress)
	api.DELETE("/users/me/addresses/:id", h.DeleteUserAddress)

	// Farmer onboarding
	farmer := api.Group("", customMiddleware.RequireRole(models.RoleFarmer))
	farmer.POST("/farmers", h.CreateFarmerProfile)
	farmer.GET("/farmers/me", h.GetMyFarmerProfile)
	farmer.GET("/products/mine", h.GetMyProducts)
	farmer.POST("/products", h.CreateProduct)
	farmer.PUT("/products/:id", h.UpdateProduct)
	farmer.DELETE("/products/:id", h.DeleteProduct)
	farmer.GET("/orders/farmer", h.GetFarmerOrders)

	// Cart routes
	api.GET("/cart", h.GetCart)
	api.POST("/cart", h.AddToCart)
	api.PUT("/cart/quantity", h.UpdateCartItemQuantity)
	api.DELETE("/cart/:productId", h.RemoveFromCart)

	// Wishlist routes
	api.GET("/wishlist", h.GetWishlist)
	api.POST("/wishlist", h.AddToWishlist)
	api.DELETE("/wishlist/:productId", h.RemoveFromWishlist)

	// Order routes. Notifications live under /orders to match the
	// frontend's fetch path.
	api.POST("/orders", h.CreateOrder)
	api.GET("/orders/mine", h.GetMyOrders)
	api.GET("/orders/notifications", h.GetNotifications)
	api.PUT("/orders/notifications/:id/read", h.MarkNotificationRead)
	api.GET("/orders/:id", h.GetOrder)
	api.PUT("/orders/:id/status", h.UpdateOrderStatus,
		customMiddleware.RequireRole(models.RoleFarmer, models.RoleAdmin))

	// Admin moderation
	admin := api.Group("/admin", customMiddleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", h.AdminListUsers)
	admin.GET("/orders", h.AdminListOrders)
	admin.GET("/farmers", h.ListFarmers)
	admin.PUT("/farmers/:id/approve", h.ApproveFarmer)
	admin.PUT("/farmers/:id/reject", h.RejectFarmer)
}
