package shop

import (
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/easyrepo"
	"github.com/raywall/storefront/pkg/metrics"
)

// Services bundles every use case over one table.
type Services struct {
	Users    *UserService
	Products *ProductService
	Carts    *CartService
}

// New wires the services to table. m may be nil.
func New(table dyndb.Table, m *metrics.Processor) *Services {
	opts := []easyrepo.Option{easyrepo.WithMetrics(m)}
	users := NewUserService(table, opts...)
	products := NewProductService(table, opts...)
	return &Services{
		Users:    users,
		Products: products,
		Carts:    NewCartService(table, users, products, opts...),
	}
}
