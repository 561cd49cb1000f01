// Package storefront is a JSON API for users, products and shopping carts
// kept in a single DynamoDB table.
//
// Every entity shares one table addressed by string PK/SK keys:
//
//	USER#<userId>       PROFILE
//	PRODUCT#<productId> METADATA
//	CART#<cartId>       CART#<cartId>      (cart header, owner in userId)
//	CART#<cartId>       ITEM#<productId>   (cart item)
//
// Packages:
//
//   - keys: key schema, entity classification and scan filters.
//   - validation: request and stored record validation (validator/v10).
//   - update: partial update plans with per-entity mutable fields.
//   - dyndb: the table, on DynamoDB or in memory.
//   - easyrepo: typed repositories and services over dyndb.
//   - shop: user, product and cart use cases.
//   - pkg/transport: gorilla/mux routes, HTTP server and Lambda adapter.
//   - pkg/seed: table reset from a local or S3 seed file.
//
// Quick start against DynamoDB Local:
//
//	export CONFIG_FILE_PATH=examples/config.local.yaml
//	go run ./cmd/toolkit reset -source examples/seed.json
//	go run ./cmd/server
//
// Binaries:
//
//   - cmd/server: serves the API over HTTP (runtime local) or API Gateway
//     proxy events (runtime lambda).
//   - cmd/toolkit: validate, reset and cleanup commands.
package storefront
