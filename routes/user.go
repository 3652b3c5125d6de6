package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/storefront-labs/storefront-api/controllers/cart"
	orderControllers "github.com/storefront-labs/storefront-api/controllers/order"
	productcontroller "github.com/storefront-labs/storefront-api/controllers/product"
	"github.com/storefront-labs/storefront-api/middleware"
	"github.com/storefront-labs/storefront-api/service"
)

// SetupPublicRoutes registers the unauthenticated catalog reads.
func SetupPublicRoutes(r *gin.Engine, svc *service.Service) {
	r.GET("/products", productcontroller.GetProducts(svc))
	r.GET("/products/:id", productcontroller.GetProductByID(svc))
}

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, svc *service.Service) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireUser)
	{
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(svc))
			cartGroup.POST("/", cartControllers.AddItem(svc))
			cartGroup.PUT("/:line_id", cartControllers.SetQuantity(svc))
			cartGroup.POST("/:line_id/increment", cartControllers.Increment(svc))
			cartGroup.POST("/:line_id/decrement", cartControllers.Decrement(svc))
			cartGroup.DELETE("/:line_id", cartControllers.RemoveItem(svc))
			cartGroup.DELETE("/", cartControllers.ClearCart(svc))
		}

		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("/checkout", orderControllers.Checkout(svc))
			orderGroup.GET("/", orderControllers.GetUserOrders(svc))
			orderGroup.POST("/:orderID/cancel", orderControllers.CancelOwnOrder(svc))
		}
	}
}
