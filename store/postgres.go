package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/storefront-labs/storefront-api/models"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// ---------- products ----------

func (s *Gorm) CreateProduct(p *models.Product) error {
	return s.db.Create(p).Error
}

func (s *Gorm) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Gorm) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Gorm) UpdateProduct(p *models.Product) error {
	res := s.db.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"price_cents": p.PriceCents,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *Gorm) DeleteProduct(id uint) error {
	res := s.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Gorm) SetStock(productID uint, stock int) error {
	res := s.db.Model(&models.Product{}).Where("id = ?", productID).
		Update("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	return nil
}

// ---------- cart ----------

func (s *Gorm) UpsertLine(line *models.CartItem) error {
	return s.db.Save(line).Error
}

func (s *Gorm) GetLine(userID string, productID uint) (*models.CartItem, error) {
	var line models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart line for product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}
	return &line, nil
}

func (s *Gorm) GetLineByID(id uint) (*models.CartItem, error) {
	var line models.CartItem
	if err := s.db.First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart line %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &line, nil
}

func (s *Gorm) DeleteLine(id uint) error {
	res := s.db.Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart line %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Gorm) ListLines(userID string) ([]models.CartItem, error) {
	var lines []models.CartItem
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Gorm) ClearCart(userID string) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// ---------- orders ----------

func (s *Gorm) PlaceOrder(order *models.Order) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartItem{}).Error
	})
}

func (s *Gorm) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

func (s *Gorm) ListOrdersByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Gorm) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Gorm) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	res := s.db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return nil
}

// ---------- reports ----------

func (s *Gorm) TotalRevenueCents() (int64, error) {
	var total int64
	err := s.db.Raw(
		`SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE status = ?`,
		models.OrderStatusConfirmed,
	).Scan(&total).Error
	return total, err
}

func (s *Gorm) TotalSpentCentsBy(userID string) (int64, error) {
	var total int64
	err := s.db.Raw(
		`SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE status = ? AND user_id = ?`,
		models.OrderStatusConfirmed, userID,
	).Scan(&total).Error
	return total, err
}

func (s *Gorm) BestSellers(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []ProductSales
	err := s.db.Raw(`
		SELECT oi.product_id AS product_id, p.name AS name, SUM(oi.quantity) AS units
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status <> ?
		GROUP BY oi.product_id, p.name
		ORDER BY units DESC
		LIMIT ?`,
		models.OrderStatusCancelled, limit,
	).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// touch keeps updated_at honest on raw ledger updates.
func touch() time.Time { return time.Now().UTC() }
