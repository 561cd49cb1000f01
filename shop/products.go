package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/easyrepo"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/models"
	"github.com/raywall/storefront/validation"
)

// ProductService manages PRODUCT#<id>/METADATA records.
type ProductService struct {
	store *easyrepo.EasyService[models.Product]
}

// NewProductService builds a product service over table.
func NewProductService(table dyndb.Table, opts ...easyrepo.Option) *ProductService {
	store := easyrepo.NewService[models.Product](table, keys.Product, opts...)
	store.RegisterCreateHook(func(_ context.Context, p *models.Product) error {
		if p.ProductID == "" {
			p.ProductID = uuid.NewString()
		}
		return nil
	})
	return &ProductService{store: store}
}

// List returns every valid product in the table.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.store.List(ctx)
}

// Get returns one product or an apperr.ErrNotFound error.
func (s *ProductService) Get(ctx context.Context, productID string) (*models.Product, error) {
	return s.store.Get(ctx, keys.ProductKey(productID))
}

// Create stores a new product. A missing id is generated; a taken one is a Conflict.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	p := in.Product()
	if err := s.store.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies any of name, price, imageUrl and amountInStock.
func (s *ProductService) Update(ctx context.Context, productID string, fields map[string]any) (*models.Product, error) {
	return s.store.Update(ctx, keys.ProductKey(productID), fields)
}

// Delete removes a product. Cart items that reference it are left in place.
func (s *ProductService) Delete(ctx context.Context, productID string) error {
	return s.store.Delete(ctx, keys.ProductKey(productID))
}
