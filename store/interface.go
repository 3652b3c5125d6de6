package store

import "github.com/storefront-labs/storefront-api/models"

// ProductStore covers the catalog surface the admin endpoints need. The order
// core itself only reads products and moves stock through the StockLedger.
type ProductStore interface {
	CreateProduct(p *models.Product) error
	GetProduct(id uint) (*models.Product, error)
	ListProducts() ([]models.Product, error)
	UpdateProduct(p *models.Product) error
	DeleteProduct(id uint) error
	SetStock(productID uint, stock int) error
}

// StockLedger owns per-product available quantity. Reserve and Release move
// units in and out of reservation, and each is a single atomic
// read-modify-write.
type StockLedger interface {
	// Reserve atomically checks available >= qty and decrements it. On
	// shortfall it returns *InsufficientStockError and leaves stock unchanged.
	Reserve(productID uint, qty int) error
	// Release atomically returns qty units reserved earlier. It refuses to
	// hand back more than is recorded as reserved (ErrStockInconsistency).
	Release(productID uint, qty int) error
	// StockOf is an advisory read. Callers must not rely on it for the
	// correctness of a later Reserve.
	StockOf(productID uint) (int, error)
}

// CartStore persists pending cart lines, one per (user, product).
type CartStore interface {
	UpsertLine(line *models.CartItem) error
	GetLine(userID string, productID uint) (*models.CartItem, error)
	GetLineByID(id uint) (*models.CartItem, error)
	DeleteLine(id uint) error
	ListLines(userID string) ([]models.CartItem, error)
	ClearCart(userID string) error
}

// ProductSales is one row of the best-sellers report.
type ProductSales struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
}

// OrderStore persists orders and answers the reporting reads.
type OrderStore interface {
	// PlaceOrder persists the order with its items and clears the owning
	// user's cart in one storage transaction.
	PlaceOrder(order *models.Order) error
	GetOrder(id uint) (*models.Order, error)
	ListOrdersByUser(userID string) ([]models.Order, error)
	ListOrders() ([]models.Order, error)
	UpdateOrderStatus(id uint, status models.OrderStatus) error

	TotalRevenueCents() (int64, error)
	TotalSpentCentsBy(userID string) (int64, error)
	BestSellers(limit int) ([]ProductSales, error)
}

// Store is the full storage contract consumed by the service layer.
type Store interface {
	ProductStore
	StockLedger
	CartStore
	OrderStore
}
