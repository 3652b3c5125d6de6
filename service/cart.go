package service

import (
	"fmt"
	"time"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/store"
)

// CartLine is a cart item joined with its product for display: the price here
// is the catalog's current price, not a snapshot, so the cart total can drift
// with price changes (unlike an order total).
type CartLine struct {
	ID             uint   `json:"id"`
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

// AddItem adds qty units of a product to the user's cart, merging with an
// existing line for the same product. The stock check here is advisory only;
// the binding reservation happens at checkout.
func (s *Service) AddItem(userID string, productID uint, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	unlock := s.lockUser(userID)
	defer unlock()

	newQty := qty
	line, err := s.store.GetLine(userID, productID)
	switch {
	case err == nil:
		newQty = line.Quantity + qty
	case isNotFound(err):
		line = &models.CartItem{UserID: userID, ProductID: productID}
	default:
		return nil, err
	}

	if err := s.checkAdvisoryStock(productID, newQty); err != nil {
		return nil, err
	}

	line.Quantity = newQty
	line.AddedAt = time.Now()
	if err := s.store.UpsertLine(line); err != nil {
		return nil, fmt.Errorf("upsert cart line: %w", err)
	}
	return line, nil
}

// SetQuantity sets a line's quantity. A quantity <= 0 deletes the line;
// removed reports whether that happened.
func (s *Service) SetQuantity(userID string, lineID uint, qty int) (line *models.CartItem, removed bool, err error) {
	unlock := s.lockUser(userID)
	defer unlock()
	return s.setQuantityLocked(userID, lineID, qty)
}

// Increment raises a line's quantity by one.
func (s *Service) Increment(userID string, lineID uint) (*models.CartItem, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	cur, err := s.ownedLine(userID, lineID)
	if err != nil {
		return nil, err
	}
	line, _, err := s.setQuantityLocked(userID, lineID, cur.Quantity+1)
	return line, err
}

// Decrement lowers a line's quantity by one; a line at quantity 1 is deleted.
func (s *Service) Decrement(userID string, lineID uint) (line *models.CartItem, removed bool, err error) {
	unlock := s.lockUser(userID)
	defer unlock()

	cur, err := s.ownedLine(userID, lineID)
	if err != nil {
		return nil, false, err
	}
	return s.setQuantityLocked(userID, lineID, cur.Quantity-1)
}

// RemoveItem deletes a line unconditionally.
func (s *Service) RemoveItem(userID string, lineID uint) error {
	unlock := s.lockUser(userID)
	defer unlock()

	if _, err := s.ownedLine(userID, lineID); err != nil {
		return err
	}
	return s.store.DeleteLine(lineID)
}

// ClearCart deletes every line of the user's cart.
func (s *Service) ClearCart(userID string) error {
	unlock := s.lockUser(userID)
	defer unlock()
	return s.store.ClearCart(userID)
}

// Cart returns the user's lines priced at current catalog prices, plus the
// live total.
func (s *Service) Cart(userID string) ([]CartLine, int64, error) {
	lines, err := s.store.ListLines(userID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CartLine, 0, len(lines))
	var total int64
	for _, l := range lines {
		p, err := s.store.GetProduct(l.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("price cart line %d: %w", l.ID, err)
		}
		subtotal := int64(l.Quantity) * p.PriceCents
		out = append(out, CartLine{
			ID:             l.ID,
			ProductID:      l.ProductID,
			ProductName:    p.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: p.PriceCents,
			SubtotalCents:  subtotal,
		})
		total += subtotal
	}
	return out, total, nil
}

func (s *Service) setQuantityLocked(userID string, lineID uint, qty int) (*models.CartItem, bool, error) {
	line, err := s.ownedLine(userID, lineID)
	if err != nil {
		return nil, false, err
	}
	if qty <= 0 {
		if err := s.store.DeleteLine(lineID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}
	if err := s.checkAdvisoryStock(line.ProductID, qty); err != nil {
		return nil, false, err
	}
	line.Quantity = qty
	line.AddedAt = time.Now()
	if err := s.store.UpsertLine(line); err != nil {
		return nil, false, err
	}
	return line, false, nil
}

// ownedLine loads a cart line and hides other users' lines behind NotFound.
func (s *Service) ownedLine(userID string, lineID uint) (*models.CartItem, error) {
	line, err := s.store.GetLineByID(lineID)
	if err != nil {
		return nil, err
	}
	if line.UserID != userID {
		return nil, fmt.Errorf("cart line %d: %w", lineID, store.ErrNotFound)
	}
	return line, nil
}

// checkAdvisoryStock rejects quantities that visibly exceed availability.
// This is a UI courtesy, not a reservation: stock may still run out between
// here and checkout, where Reserve performs the authoritative check.
func (s *Service) checkAdvisoryStock(productID uint, qty int) error {
	available, err := s.store.StockOf(productID)
	if err != nil {
		return err
	}
	if qty > available {
		return &store.InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
	}
	return nil
}
