// Package models defines the core domain models for the group-buy tracker.
//
// # Models
//
//   - GroupBuy: one bulk-purchase event with a title and its orders
//   - Order: one buyer's line item within a GroupBuy
//   - Collection: every GroupBuy the session knows about, newest first
//
// Buyers are identified by name strings; there are no user accounts.
//
// # Design Principles
//
// 1. **Values, not pointers**: a Collection is replaced wholesale on every
// change, so models are plain values that can be copied and compared.
//
// 2. **Ownership by nesting**: a GroupBuy owns its Orders directly. There is no
// Order table and no back-reference, so orphaned orders cannot exist.
//
// 3. **Stable wire names**: JSON tags match the persisted layout under the
// versioned storage key. Changing a tag means bumping the key.
package models
