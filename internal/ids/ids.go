// Package ids generates opaque identifiers for group buys and orders.
package ids

import "github.com/google/uuid"

// New returns a time-ordered UUIDv7 string.
// UUIDv7 carries 74 random bits after the millisecond timestamp, so two IDs
// minted in the same clock tick still differ. Falls back to a random UUIDv4 if
// the v7 generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
