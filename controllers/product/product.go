package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/service"
	"github.com/storefront-labs/storefront-api/store"
)

type ProductInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
}

type SetStockInput struct {
	Stock int `json:"stock" binding:"min=0"`
}

// GET /products
func GetProducts(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Products()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseProductID(c)
		if err != nil {
			return
		}
		product, err := svc.Product(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /admin/products
func CreateProduct(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			PriceCents:  input.PriceCents,
			Stock:       input.Stock,
		}
		if err := svc.CreateProduct(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseProductID(c)
		if err != nil {
			return
		}
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		product := models.Product{
			ID:          id,
			Name:        input.Name,
			Description: input.Description,
			PriceCents:  input.PriceCents,
		}
		if err := svc.UpdateProduct(&product); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
	}
}

// DELETE /admin/products/:id
func DeleteProduct(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseProductID(c)
		if err != nil {
			return
		}
		if err := svc.DeleteProduct(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// PUT /admin/products/:id/stock
func SetStock(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseProductID(c)
		if err != nil {
			return
		}
		var input SetStockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := svc.SetStock(id, input.Stock); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
	}
}

func parseProductID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return 0, err
	}
	return uint(id), nil
}
