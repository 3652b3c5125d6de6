package store

import (
	"errors"
	"fmt"
)

// The ledger is deliberately written as single conditional UPDATEs rather
// than a read-then-save pair: two checkouts racing for the last units must
// serialize on the row, and the guard in the WHERE clause is what makes the
// check and the decrement one indivisible step.

const (
	reserveSQL = `UPDATE products SET stock = stock - ?, reserved = reserved + ?, updated_at = ? WHERE id = ? AND stock >= ? AND deleted_at IS NULL`
	releaseSQL = `UPDATE products SET stock = stock + ?, reserved = reserved - ?, updated_at = ? WHERE id = ? AND reserved >= ? AND deleted_at IS NULL`
	stockSQL   = `SELECT stock FROM products WHERE id = ? AND deleted_at IS NULL`
)

func (s *Gorm) Reserve(productID uint, qty int) error {
	if qty <= 0 {
		return errors.New("reserve quantity must be positive")
	}
	res := s.db.Exec(reserveSQL, qty, qty, touch(), productID, qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// Nothing matched: the product is gone or short on stock. Re-read to tell
	// the two apart; the read is only for the error message.
	available, err := s.StockOf(productID)
	if err != nil {
		return err
	}
	return &InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
}

func (s *Gorm) Release(productID uint, qty int) error {
	if qty <= 0 {
		return errors.New("release quantity must be positive")
	}
	res := s.db.Exec(releaseSQL, qty, qty, touch(), productID, qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if _, err := s.StockOf(productID); err != nil {
		return err
	}
	return fmt.Errorf("release of %d units for product %d exceeds recorded reservations: %w",
		qty, productID, ErrStockInconsistency)
}

func (s *Gorm) StockOf(productID uint) (int, error) {
	var stock int
	res := s.db.Raw(stockSQL, productID).Scan(&stock)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	return stock, nil
}
