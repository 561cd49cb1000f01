package shop

import (
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/pkg/apperr"
)

// CheckRecord classifies a raw record and validates it against the schema of
// its entity, the same way reads do.
func (s *Services) CheckRecord(item dyndb.Item) (keys.EntityType, error) {
	k, ok := dyndb.KeyOf(item)
	if !ok {
		return keys.Unknown, apperr.Validation("record has no PK/SK")
	}

	var err error
	t := keys.Classify(k.PK, k.SK)
	switch t {
	case keys.User:
		_, err = s.Users.store.Decode(item)
	case keys.Product:
		_, err = s.Products.store.Decode(item)
	case keys.Cart:
		_, err = s.Carts.carts.Decode(item)
	case keys.CartItem:
		_, err = s.Carts.items.Decode(item)
	default:
		return keys.Unknown, apperr.Validation("record " + k.String() + " is not a known entity")
	}
	return t, err
}
