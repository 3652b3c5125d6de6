package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/storefront-labs/storefront-api/controllers/order"
	"github.com/storefront-labs/storefront-api/service"
)

// SetupRoutes is the single entry-point that wires up the public, user, and
// admin route groups.
func SetupRoutes(r *gin.Engine, svc *service.Service, feed *orderControllers.Feed) {
	// Public catalog reads (no middleware)
	SetupPublicRoutes(r, svc)

	// User routes (JWT-protected)
	SetupUserRoutes(r, svc)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, svc, feed)
}
