// Package keys is the key schema of the storefront table.
//
// Users, products, carts and cart items share one table. Each record is
// addressed by a (PK, SK) pair and its entity type is inferred from the key
// prefixes, never from a stored type tag:
//
//	User      USER#<userId>       PROFILE
//	Product   PRODUCT#<productId> METADATA
//	Cart      CART#<cartId>       CART#<cartId>
//	CartItem  CART#<cartId>       ITEM#<productId>
//
// A cart header and its items live in the same partition, so the whole
// aggregate is reachable from the cart id.
//
// ToKey and IDs are inverse on valid input; Classify is total and returns
// Unknown for anything it does not recognise, so scans can filter safely.
package keys
