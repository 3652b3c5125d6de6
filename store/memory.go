package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/storefront-labs/storefront-api/models"
)

// Memory is an in-process Store backing the test suite. Every operation runs
// under one mutex, so each ledger call is a single atomic read-modify-write
// just like the SQL implementation.
type Memory struct {
	mu sync.Mutex

	products map[uint]*models.Product
	lines    map[uint]*models.CartItem
	orders   map[uint]*models.Order

	nextProductID uint
	nextLineID    uint
	nextOrderID   uint
}

func NewMemory() *Memory {
	return &Memory{
		products: make(map[uint]*models.Product),
		lines:    make(map[uint]*models.CartItem),
		orders:   make(map[uint]*models.Order),
	}
}

// ---------- products ----------

func (m *Memory) CreateProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextProductID++
	p.ID = m.nextProductID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *Memory) GetProduct(id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) ListProducts() ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpdateProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.products[p.ID]
	if !ok {
		return fmt.Errorf("product %d: %w", p.ID, ErrNotFound)
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.PriceCents = p.PriceCents
	cur.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) DeleteProduct(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

func (m *Memory) SetStock(productID uint, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// ---------- stock ledger ----------

func (m *Memory) Reserve(productID uint, qty int) error {
	if qty <= 0 {
		return errors.New("reserve quantity must be positive")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if p.Stock < qty {
		return &InsufficientStockError{ProductID: productID, Requested: qty, Available: p.Stock}
	}
	p.Stock -= qty
	p.Reserved += qty
	return nil
}

func (m *Memory) Release(productID uint, qty int) error {
	if qty <= 0 {
		return errors.New("release quantity must be positive")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if p.Reserved < qty {
		return fmt.Errorf("release of %d units for product %d exceeds recorded reservations: %w",
			qty, productID, ErrStockInconsistency)
	}
	p.Reserved -= qty
	p.Stock += qty
	return nil
}

func (m *Memory) StockOf(productID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return 0, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	return p.Stock, nil
}

// ---------- cart ----------

func (m *Memory) UpsertLine(line *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if line.ID == 0 {
		// Honor the (user, product) uniqueness the SQL index provides.
		for _, l := range m.lines {
			if l.UserID == line.UserID && l.ProductID == line.ProductID {
				line.ID = l.ID
				break
			}
		}
	}
	if line.ID == 0 {
		m.nextLineID++
		line.ID = m.nextLineID
	}
	cp := *line
	m.lines[line.ID] = &cp
	return nil
}

func (m *Memory) GetLine(userID string, productID uint) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lines {
		if l.UserID == userID && l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("cart line for product %d: %w", productID, ErrNotFound)
}

func (m *Memory) GetLineByID(id uint) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[id]
	if !ok {
		return nil, fmt.Errorf("cart line %d: %w", id, ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (m *Memory) DeleteLine(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lines[id]; !ok {
		return fmt.Errorf("cart line %d: %w", id, ErrNotFound)
	}
	delete(m.lines, id)
	return nil
}

func (m *Memory) ListLines(userID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CartItem
	for _, l := range m.lines {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ClearCart(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.lines {
		if l.UserID == userID {
			delete(m.lines, id)
		}
	}
	return nil
}

// ---------- orders ----------

func (m *Memory) PlaceOrder(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextOrderID++
	order.ID = m.nextOrderID
	for i := range order.Items {
		order.Items[i].ID = uint(i + 1)
		order.Items[i].OrderID = order.ID
	}
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	m.orders[order.ID] = &cp
	for id, l := range m.lines {
		if l.UserID == order.UserID {
			delete(m.lines, id)
		}
	}
	return nil
}

func (m *Memory) GetOrder(id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *Memory) ListOrdersByUser(userID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			cp := *o
			cp.Items = append([]models.OrderItem(nil), o.Items...)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListOrders() ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		cp := *o
		cp.Items = append([]models.OrderItem(nil), o.Items...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	o.Status = status
	return nil
}

// ---------- reports ----------

func (m *Memory) TotalRevenueCents() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, o := range m.orders {
		if o.Status == models.OrderStatusConfirmed {
			total += o.TotalCents
		}
	}
	return total, nil
}

func (m *Memory) TotalSpentCentsBy(userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, o := range m.orders {
		if o.UserID == userID && o.Status == models.OrderStatusConfirmed {
			total += o.TotalCents
		}
	}
	return total, nil
}

func (m *Memory) BestSellers(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	units := make(map[uint]int)
	for _, o := range m.orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		for _, it := range o.Items {
			units[it.ProductID] += it.Quantity
		}
	}
	out := make([]ProductSales, 0, len(units))
	for id, n := range units {
		name := ""
		if p, ok := m.products[id]; ok {
			name = p.Name
		}
		out = append(out, ProductSales{ProductID: id, Name: name, Units: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
