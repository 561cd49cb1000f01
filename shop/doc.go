// Package shop holds the storefront use cases: users, products and carts.
//
// Each service is a thin layer over an easyrepo.EasyService bound to the
// shared table. CartService also aggregates a cart header with its items,
// cascades header deletes to the items and sweeps malformed cart records.
package shop
