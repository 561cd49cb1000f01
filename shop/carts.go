package shop

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/easyrepo"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/models"
	"github.com/raywall/storefront/pkg/apperr"
	"github.com/raywall/storefront/update"
	"github.com/raywall/storefront/validation"
	"github.com/rs/zerolog/log"
)

// CartService manages cart headers and their items. Header and items share
// the CART#<cartId> partition.
type CartService struct {
	table    dyndb.Table
	carts    *easyrepo.EasyService[models.Cart]
	items    *easyrepo.EasyService[models.CartItem]
	users    *UserService
	products *ProductService
}

// NewCartService builds the cart service. Users and products back the
// existence checks done before a cart or item is written.
func NewCartService(table dyndb.Table, users *UserService, products *ProductService, opts ...easyrepo.Option) *CartService {
	s := &CartService{
		table:    table,
		carts:    easyrepo.NewService[models.Cart](table, keys.Cart, opts...),
		items:    easyrepo.NewService[models.CartItem](table, keys.CartItem, opts...),
		users:    users,
		products: products,
	}
	s.carts.RegisterCreateHook(func(_ context.Context, c *models.Cart) error {
		if c.CartID == "" {
			c.CartID = uuid.NewString()
		}
		return nil
	})
	// items of a missing cart cannot be changed, even if orphans remain
	s.items.RegisterUpdateHook(func(ctx context.Context, plan *update.Plan) error {
		t, ids := keys.IDs(plan.Key)
		if t != keys.CartItem {
			return apperr.Validation("not a cart item key")
		}
		_, err := s.carts.Get(ctx, keys.CartKey(ids[0]))
		return err
	})
	return s
}

// CreateCart opens a cart for an existing user.
func (s *CartService) CreateCart(ctx context.Context, in models.CartInput) (*models.Cart, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, in.UserID); err != nil {
		return nil, err
	}
	c := models.Cart{UserID: in.UserID}
	if err := s.carts.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCarts returns every cart header, only those of userID when it is set.
func (s *CartService) ListCarts(ctx context.Context, userID string) ([]models.Cart, error) {
	all, err := s.carts.List(ctx)
	if err != nil || userID == "" {
		return all, err
	}
	owned := make([]models.Cart, 0, len(all))
	for _, c := range all {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

// GetCart returns the header of cartID with its valid items. A non-empty
// userID must own the cart, otherwise the cart is reported as not found.
func (s *CartService) GetCart(ctx context.Context, cartID, userID string) (*models.CartView, error) {
	header, err := s.carts.Get(ctx, keys.CartKey(cartID))
	if err != nil {
		return nil, err
	}
	if userID != "" && header.UserID != userID {
		return nil, apperr.NotFound(keys.Cart.String())
	}

	items, err := s.items.Query(ctx, keys.ItemNamespace(cartID), keys.PrefixItem)
	if err != nil {
		return nil, err
	}
	return &models.CartView{Cart: *header, Items: items}, nil
}

// AddItem puts amount units of a product in the cart, summing with the
// amount already there. The read and the write are separate requests, so
// concurrent adds of the same product may lose an increment.
func (s *CartService) AddItem(ctx context.Context, cartID string, in models.CartItemInput) (*models.CartItem, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	header, err := s.carts.Get(ctx, keys.CartKey(cartID))
	if err != nil {
		return nil, err
	}
	if _, err := s.products.Get(ctx, in.ProductID); err != nil {
		return nil, err
	}

	key := keys.CartItemKey(cartID, in.ProductID)
	existing, err := s.items.Get(ctx, key)
	switch {
	case err == nil:
		if existing.Amount > update.MaxInteger-*in.Amount {
			return nil, apperr.Validation("invalid input", apperr.Issue{Field: "amount", Message: "is too large"})
		}
		return s.items.Update(ctx, key, map[string]any{"amount": existing.Amount + *in.Amount})
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	item := models.CartItem{
		CartID:    cartID,
		ProductID: in.ProductID,
		Amount:    *in.Amount,
		UserID:    in.UserID,
	}
	if item.UserID == "" {
		item.UserID = header.UserID
	}
	if err := s.items.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SetItemAmount partially updates one item of the cart.
func (s *CartService) SetItemAmount(ctx context.Context, cartID, productID string, fields map[string]any) (*models.CartItem, error) {
	return s.items.Update(ctx, keys.CartItemKey(cartID, productID), fields)
}

// RemoveItem deletes one item of the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) error {
	return s.items.Delete(ctx, keys.CartItemKey(cartID, productID))
}

// DeleteCart removes the header and then every record under ITEM# in the
// cart partition, malformed ones included.
func (s *CartService) DeleteCart(ctx context.Context, cartID string) error {
	if err := s.carts.Delete(ctx, keys.CartKey(cartID)); err != nil {
		return err
	}

	raw, err := s.table.Query(ctx, keys.ItemNamespace(cartID), keys.PrefixItem)
	if err != nil {
		return apperr.Storage("query cart items", err)
	}
	if len(raw) == 0 {
		return nil
	}
	doomed := make([]keys.Key, 0, len(raw))
	for _, item := range raw {
		if k, ok := dyndb.KeyOf(item); ok {
			doomed = append(doomed, k)
		}
	}
	if err := s.table.BatchWrite(ctx, nil, doomed); err != nil {
		return apperr.Storage("delete cart items", err)
	}
	log.Ctx(ctx).Debug().Str("cart_id", cartID).Int("items", len(doomed)).Msg("cart items removed")
	return nil
}

// CleanupCarts deletes every record whose SK starts with CART# that is not a
// valid cart header, and returns the deleted keys. Not transactional.
func (s *CartService) CleanupCarts(ctx context.Context) ([]keys.Key, error) {
	raw, err := s.table.Scan(ctx, keys.Filter{SKPrefix: keys.PrefixCart})
	if err != nil {
		return nil, apperr.Storage("scan cart records", err)
	}

	doomed := make([]keys.Key, 0)
	for _, item := range raw {
		k, ok := dyndb.KeyOf(item)
		if !ok {
			continue
		}
		if _, err := s.carts.Decode(item); err != nil {
			log.Ctx(ctx).Info().Err(err).Str("pk", k.PK).Str("sk", k.SK).Msg("removing invalid cart record")
			doomed = append(doomed, k)
		}
	}

	if len(doomed) > 0 {
		if err := s.table.BatchWrite(ctx, nil, doomed); err != nil {
			return nil, apperr.Storage("delete invalid cart records", err)
		}
	}
	return doomed, nil
}
