package groupbuy

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmynk/groupbuy/internal/models"
)

// Normalize returns c with nil order lists replaced by empty ones, so a
// collection decoded from "orders": null compares equal to one built here.
// c is not modified.
func Normalize(c models.Collection) models.Collection {
	if c == nil {
		return models.Collection{}
	}
	next := make(models.Collection, len(c))
	copy(next, c)
	for i := range next {
		if next[i].Orders == nil {
			next[i].Orders = []models.Order{}
		}
	}
	return next
}

// Validate checks the invariants every reachable collection satisfies:
// unique non-empty group buy ids, non-blank titles, and per group buy unique
// order ids with non-blank names, price >= 0 and quantity >= 1.
func Validate(c models.Collection) error {
	groupIDs := make(map[string]bool, len(c))
	for _, gb := range c {
		if gb.ID == "" {
			return fmt.Errorf("%w: group buy %q has no id", ErrInvalidCollection, gb.Title)
		}
		if groupIDs[gb.ID] {
			return fmt.Errorf("%w: duplicate group buy id %s", ErrInvalidCollection, gb.ID)
		}
		groupIDs[gb.ID] = true
		if strings.TrimSpace(gb.Title) == "" {
			return fmt.Errorf("%w: group buy %s has no title", ErrInvalidCollection, gb.ID)
		}

		orderIDs := make(map[string]bool, len(gb.Orders))
		for _, o := range gb.Orders {
			if o.ID == "" || orderIDs[o.ID] {
				return fmt.Errorf("%w: group buy %s has a missing or duplicate order id %q", ErrInvalidCollection, gb.ID, o.ID)
			}
			orderIDs[o.ID] = true
			if strings.TrimSpace(o.BuyerName) == "" || strings.TrimSpace(o.ItemName) == "" {
				return fmt.Errorf("%w: order %s is missing buyer or item", ErrInvalidCollection, o.ID)
			}
			if o.Price < 0 || math.IsNaN(o.Price) || math.IsInf(o.Price, 0) || o.Quantity < 1 {
				return fmt.Errorf("%w: order %s has price %v and quantity %d", ErrInvalidCollection, o.ID, o.Price, o.Quantity)
			}
		}
	}
	return nil
}
