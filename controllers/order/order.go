package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/service"
	"github.com/storefront-labs/storefront-api/store"
)

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func statusFor(err error) int {
	var insufficient *store.InsufficientStockError
	var transition *store.InvalidTransitionError
	switch {
	case errors.As(err, &insufficient):
		return http.StatusConflict
	case errors.As(err, &transition):
		return http.StatusConflict
	case errors.Is(err, store.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// POST /user/orders/checkout
func Checkout(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		order, err := svc.Checkout(userIDVal.(string))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /user/orders
func GetUserOrders(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orders, err := svc.OrdersByUser(userIDVal.(string))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrders(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.AllOrders()
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID
func GetOrderByID(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}
		order, err := svc.Order(orderID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatus(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := svc.SetOrderStatus(orderID, newStatus)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /admin/orders/:orderID/cancel
func CancelOrder(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}
		order, err := svc.CancelOrder(orderID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /user/orders/:orderID/cancel
func CancelOwnOrder(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}
		order, err := svc.Order(orderID)
		if err != nil || order.UserID != userIDVal.(string) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		cancelled, err := svc.CancelOrder(orderID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cancelled)
	}
}

// GET /admin/reports/revenue
func GetRevenue(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := svc.TotalRevenueCents()
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"total_revenue_cents": total})
	}
}

// GET /admin/reports/spend/:user_id
func GetUserSpend(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		total, err := svc.TotalSpentCentsBy(userID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "total_spent_cents": total})
	}
}

// GET /admin/reports/best-sellers
func GetBestSellers(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		sellers, err := svc.BestSellers(limit)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sellers)
	}
}

func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderID must be a number"})
		return 0, err
	}
	return uint(id), nil
}
