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

// Package models holds the storefront entities as stored in the table and
// the request bodies that create them.
package models

import "github.com/raywall/storefront/keys"

// User is stored under USER#<userId> / PROFILE.
type User struct {
	UserID   string `json:"userId" dynamodbav:"userId" validate:"required"`
	UserName string `json:"userName" dynamodbav:"userName" validate:"required,notblank"`
}

func (u User) Key() keys.Key { return keys.UserKey(u.UserID) }

// Product is stored under PRODUCT#<productId> / METADATA.
type Product struct {
	ProductID     string  `json:"productId" dynamodbav:"productId" validate:"required"`
	Name          string  `json:"name" dynamodbav:"name" validate:"required,notblank"`
	Price         float64 `json:"price" dynamodbav:"price" validate:"gte=0"`
	ImageURL      string  `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty" validate:"omitempty,url"`
	AmountInStock int     `json:"amountInStock" dynamodbav:"amountInStock" validate:"gte=0,lte=9007199254740992"`
}

func (p Product) Key() keys.Key { return keys.ProductKey(p.ProductID) }

// Cart is the header record of a cart, stored under CART#<cartId> / CART#<cartId>.
type Cart struct {
	CartID string `json:"cartId" dynamodbav:"cartId" validate:"required"`
	UserID string `json:"userId" dynamodbav:"userId" validate:"required"`
}

func (c Cart) Key() keys.Key { return keys.CartKey(c.CartID) }

// CartItem is one line of a cart, stored under CART#<cartId> / ITEM#<productId>.
// It references the product by id only.
type CartItem struct {
	CartID    string `json:"cartId" dynamodbav:"cartId" validate:"required"`
	ProductID string `json:"productId" dynamodbav:"productId" validate:"required"`
	Amount    int    `json:"amount" dynamodbav:"amount" validate:"gte=1,lte=9007199254740992"`
	UserID    string `json:"userId,omitempty" dynamodbav:"userId,omitempty"`
}

func (i CartItem) Key() keys.Key { return keys.CartItemKey(i.CartID, i.ProductID) }

// CartView is the cart aggregate: the header plus its surviving items.
type CartView struct {
	Cart
	Items []CartItem `json:"items"`
}

// UserInput is the body of POST /users. UserID is generated when empty.
type UserInput struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName" validate:"required,notblank"`
}

func (in UserInput) User() User {
	return User{UserID: in.UserID, UserName: in.UserName}
}

// ProductInput is the body of POST /products. Pointer fields tell a missing
// value apart from an explicit zero.
type ProductInput struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name" validate:"required,notblank"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	ImageURL      string   `json:"imageUrl" validate:"omitempty,url"`
	AmountInStock *int     `json:"amountInStock" validate:"required,gte=0,lte=9007199254740992"`
}

func (in ProductInput) Product() Product {
	p := Product{ProductID: in.ProductID, Name: in.Name, ImageURL: in.ImageURL}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.AmountInStock != nil {
		p.AmountInStock = *in.AmountInStock
	}
	return p
}

// CartInput is the body of POST /cart.
type CartInput struct {
	UserID string `json:"userId" validate:"required"`
}

// CartItemInput is the body of POST /cart/{id}/items.
type CartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Amount    *int   `json:"amount" validate:"required,gte=1,lte=9007199254740992"`
	UserID    string `json:"userId"`
}
