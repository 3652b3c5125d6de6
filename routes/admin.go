package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/storefront-labs/storefront-api/controllers/order"
	productcontroller "github.com/storefront-labs/storefront-api/controllers/product"
	"github.com/storefront-labs/storefront-api/middleware"
	"github.com/storefront-labs/storefront-api/service"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, svc *service.Service, feed *orderControllers.Feed) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAPIKey)
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(svc))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(svc))
			productAdmin.PUT("/:id/stock", productcontroller.SetStock(svc))
			productAdmin.GET("", productcontroller.GetProducts(svc))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(svc))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(svc))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(svc))
			orderAdmin.GET("/ws", feed.Handler())
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByID(svc))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(svc))
			orderAdmin.POST("/:orderID/cancel", orderControllers.CancelOrder(svc))
		}

		reports := adminGroup.Group("/reports")
		{
			reports.GET("/revenue", orderControllers.GetRevenue(svc))
			reports.GET("/spend/:user_id", orderControllers.GetUserSpend(svc))
			reports.GET("/best-sellers", orderControllers.GetBestSellers(svc))
		}
	}
}
