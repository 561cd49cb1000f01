// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package keys

import (
	"fmt"
	"strings"
)

// Attribute names of the table key.
const (
	AttrPK = "PK"
	AttrSK = "SK"
)

// Discriminator prefixes and fixed sort keys.
const (
	PrefixUser    = "USER#"
	PrefixProduct = "PRODUCT#"
	PrefixCart    = "CART#"
	PrefixItem    = "ITEM#"

	SortProfile  = "PROFILE"
	SortMetadata = "METADATA"
)

// EntityType is the kind of record a key identifies.
type EntityType int

const (
	Unknown EntityType = iota
	User
	Product
	Cart
	CartItem
)

func (t EntityType) String() string {
	switch t {
	case User:
		return "user"
	case Product:
		return "product"
	case Cart:
		return "cart"
	case CartItem:
		return "cart item"
	default:
		return "unknown"
	}
}

// Key is the primary key of a record in the shared table.
type Key struct {
	PK string
	SK string
}

func (k Key) String() string {
	return k.PK + "/" + k.SK
}

// arity is the number of ids each entity type is keyed by.
var arity = map[EntityType]int{
	User:     1,
	Product:  1,
	Cart:     1,
	CartItem: 2,
}

// ToKey derives the storage key of an entity from its ids.
//
//	User(userId), Product(productId), Cart(cartId), CartItem(cartId, productId)
func ToKey(t EntityType, ids ...string) (Key, error) {
	n, ok := arity[t]
	if !ok {
		return Key{}, fmt.Errorf("keys: cannot build key for %s entity", t)
	}
	if len(ids) != n {
		return Key{}, fmt.Errorf("keys: %s key needs %d id(s), got %d", t, n, len(ids))
	}
	for _, id := range ids {
		if !validID(id) {
			return Key{}, fmt.Errorf("keys: invalid %s id %q", t, id)
		}
	}

	switch t {
	case User:
		return UserKey(ids[0]), nil
	case Product:
		return ProductKey(ids[0]), nil
	case Cart:
		return CartKey(ids[0]), nil
	default:
		return CartItemKey(ids[0], ids[1]), nil
	}
}

func UserKey(userID string) Key       { return Key{PK: PrefixUser + userID, SK: SortProfile} }
func ProductKey(productID string) Key { return Key{PK: PrefixProduct + productID, SK: SortMetadata} }
func CartKey(cartID string) Key       { return Key{PK: PrefixCart + cartID, SK: PrefixCart + cartID} }

func CartItemKey(cartID, productID string) Key {
	return Key{PK: ItemNamespace(cartID), SK: PrefixItem + productID}
}

// ItemNamespace is the partition holding the items of a cart.
func ItemNamespace(cartID string) string {
	return PrefixCart + cartID
}

// Classify infers the entity type of a record from its key. It never fails:
// anything that does not match a known layout is Unknown.
func Classify(pk, sk string) EntityType {
	t, _ := parse(pk, sk)
	return t
}

// IDs is the inverse of ToKey. For an Unknown key it returns nil ids.
func IDs(k Key) (EntityType, []string) {
	return parse(k.PK, k.SK)
}

func parse(pk, sk string) (EntityType, []string) {
	switch {
	case strings.HasPrefix(pk, PrefixUser):
		id := pk[len(PrefixUser):]
		if sk == SortProfile && validID(id) {
			return User, []string{id}
		}
	case strings.HasPrefix(pk, PrefixProduct):
		id := pk[len(PrefixProduct):]
		if sk == SortMetadata && validID(id) {
			return Product, []string{id}
		}
	case strings.HasPrefix(pk, PrefixCart):
		cartID := pk[len(PrefixCart):]
		if !validID(cartID) {
			break
		}
		if strings.HasPrefix(sk, PrefixItem) {
			productID := sk[len(PrefixItem):]
			if validID(productID) {
				return CartItem, []string{cartID, productID}
			}
			break
		}
		if sk == PrefixCart+cartID {
			return Cart, []string{cartID}
		}
	}
	return Unknown, nil
}

// validID rejects empty ids and ids that would nest another discriminator
// (e.g. "CART#CART#1"), which would make the mapping ambiguous.
func validID(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	for _, p := range []string{PrefixUser, PrefixProduct, PrefixCart, PrefixItem} {
		if strings.HasPrefix(id, p) {
			return false
		}
	}
	return true
}

// Filter selects candidate records of one type during a scan. Empty fields
// are not applied.
type Filter struct {
	PKPrefix string
	SKEquals string
	SKPrefix string
}

// Match reports whether a key satisfies the filter.
func (f Filter) Match(k Key) bool {
	if f.PKPrefix != "" && !strings.HasPrefix(k.PK, f.PKPrefix) {
		return false
	}
	if f.SKEquals != "" && k.SK != f.SKEquals {
		return false
	}
	if f.SKPrefix != "" && !strings.HasPrefix(k.SK, f.SKPrefix) {
		return false
	}
	return true
}

// ScanFilter returns the filter selecting records of type t.
func ScanFilter(t EntityType) Filter {
	switch t {
	case User:
		return Filter{PKPrefix: PrefixUser, SKEquals: SortProfile}
	case Product:
		return Filter{PKPrefix: PrefixProduct, SKEquals: SortMetadata}
	case Cart:
		return Filter{PKPrefix: PrefixCart, SKPrefix: PrefixCart}
	case CartItem:
		return Filter{PKPrefix: PrefixCart, SKPrefix: PrefixItem}
	default:
		return Filter{}
	}
}
