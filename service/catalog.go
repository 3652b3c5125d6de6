package service

import (
	"errors"

	"github.com/storefront-labs/storefront-api/models"
)

// Catalog management for the admin facade. The order core never calls these;
// it only reads prices and moves stock through the ledger.

func (s *Service) CreateProduct(p *models.Product) error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.PriceCents < 0 {
		return errors.New("product price cannot be negative")
	}
	if p.Stock < 0 {
		return errors.New("product stock cannot be negative")
	}
	return s.store.CreateProduct(p)
}

func (s *Service) UpdateProduct(p *models.Product) error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.PriceCents < 0 {
		return errors.New("product price cannot be negative")
	}
	return s.store.UpdateProduct(p)
}

func (s *Service) Product(id uint) (*models.Product, error) {
	return s.store.GetProduct(id)
}

func (s *Service) Products() ([]models.Product, error) {
	return s.store.ListProducts()
}

func (s *Service) DeleteProduct(id uint) error {
	return s.store.DeleteProduct(id)
}

// SetStock is the admin's absolute stock write. It does not touch reserved
// units.
func (s *Service) SetStock(productID uint, stock int) error {
	if stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return s.store.SetStock(productID, stock)
}
