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
package update

import "github.com/raywall/storefront/keys"

// FieldKind says how a candidate value is checked and normalized.
type FieldKind int

const (
	KindString FieldKind = iota
	KindURL
	KindNumber
	KindInteger
)

// Field is one mutable attribute of an entity type.
type Field struct {
	Name string
	Kind FieldKind
	// Min is the inclusive floor of numeric kinds.
	Min float64
}

// schema is the static set of mutable and identity fields of one entity type.
type schema struct {
	mutable  []Field
	identity []string
}

var baseIdentity = []string{"id", keys.AttrPK, keys.AttrSK}

var schemas = map[keys.EntityType]schema{
	keys.User: {
		mutable:  []Field{{Name: "userName", Kind: KindString}},
		identity: []string{"userId"},
	},
	keys.Product: {
		mutable: []Field{
			{Name: "name", Kind: KindString},
			{Name: "price", Kind: KindNumber, Min: 0},
			{Name: "imageUrl", Kind: KindURL},
			{Name: "amountInStock", Kind: KindInteger, Min: 0},
		},
		identity: []string{"productId"},
	},
	// Cart headers carry only identity; they are never patched.
	keys.Cart: {
		identity: []string{"cartId", "userId"},
	},
	keys.CartItem: {
		mutable:  []Field{{Name: "amount", Kind: KindInteger, Min: 1}},
		identity: []string{"cartId", "productId", "userId"},
	},
}

// MutableFields lists the fields an entity type accepts in a partial update,
// in the order they are assigned aliases.
func MutableFields(t keys.EntityType) []Field {
	s, ok := schemas[t]
	if !ok {
		return nil
	}
	out := make([]Field, len(s.mutable))
	copy(out, s.mutable)
	return out
}

func (s schema) isIdentity(name string) bool {
	for _, id := range baseIdentity {
		if id == name {
			return true
		}
	}
	for _, id := range s.identity {
		if id == name {
			return true
		}
	}
	return false
}

func (s schema) field(name string) (Field, bool) {
	for _, f := range s.mutable {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
