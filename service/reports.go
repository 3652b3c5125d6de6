package service

import "github.com/storefront-labs/storefront-api/store"

// TotalRevenueCents sums the totals of confirmed orders.
func (s *Service) TotalRevenueCents() (int64, error) {
	return s.store.TotalRevenueCents()
}

// TotalSpentCentsBy sums the confirmed-order totals of one user.
func (s *Service) TotalSpentCentsBy(userID string) (int64, error) {
	return s.store.TotalSpentCentsBy(userID)
}

// BestSellers returns products ranked by units sold across non-cancelled
// orders.
func (s *Service) BestSellers(limit int) ([]store.ProductSales, error) {
	return s.store.BestSellers(limit)
}
