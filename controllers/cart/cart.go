package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storefront-labs/storefront-api/service"
	"github.com/storefront-labs/storefront-api/store"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type SetQuantityInput struct {
	Quantity int `json:"quantity"`
}

func currentUser(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userIDVal.(string), true
}

func statusFor(err error) int {
	var insufficient *store.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GET /user/cart
func GetCart(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		lines, total, err := svc.Cart(userID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": lines, "total_cents": total})
	}
}

// POST /user/cart
func AddItem(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		line, err := svc.AddItem(userID, input.ProductID, input.Quantity)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

// PUT /user/cart/:line_id
func SetQuantity(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		lineID, err := parseLineID(c)
		if err != nil {
			return
		}
		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		line, removed, err := svc.SetQuantity(userID, lineID, input.Quantity)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		if removed {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

// POST /user/cart/:line_id/increment
func Increment(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		lineID, err := parseLineID(c)
		if err != nil {
			return
		}
		line, err := svc.Increment(userID, lineID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

// POST /user/cart/:line_id/decrement
func Decrement(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		lineID, err := parseLineID(c)
		if err != nil {
			return
		}
		line, removed, err := svc.Decrement(userID, lineID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		if removed {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

// DELETE /user/cart/:line_id
func RemoveItem(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		lineID, err := parseLineID(c)
		if err != nil {
			return
		}
		if err := svc.RemoveItem(userID, lineID); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearCart(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		if err := svc.ClearCart(userID); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func parseLineID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("line_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "line_id must be a number"})
		return 0, err
	}
	return uint(id), nil
}
