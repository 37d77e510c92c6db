// Package calculator derives totals, progress and filtered views from orders.
// Everything here is recomputed on each call; nothing is cached.
package calculator

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mmynk/groupbuy/internal/models"
)

// Total sums price × quantity over all orders.
func Total(orders []models.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.LineTotal()
	}
	return sum
}

// Collected sums price × quantity over paid orders only.
func Collected(orders []models.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.IsPaid {
			sum += o.LineTotal()
		}
	}
	return sum
}

// ProgressPercent returns collected/total as a percentage, or 0 when the total is 0.
func ProgressPercent(orders []models.Order) float64 {
	total := Total(orders)
	if total <= 0 {
		return 0
	}
	return Collected(orders) / total * 100
}

// ItemCount returns the number of orders.
func ItemCount(orders []models.Order) int {
	return len(orders)
}

// QuantitySum adds up every order's quantity.
func QuantitySum(orders []models.Order) int {
	sum := 0
	for _, o := range orders {
		sum += o.Quantity
	}
	return sum
}

// Filter keeps orders whose buyer or item name contains query, ignoring case.
// A blank query returns orders as given. Order is preserved and the input is
// never modified.
func Filter(orders []models.Order, query string) []models.Order {
	query = strings.TrimSpace(query)
	if query == "" {
		return orders
	}

	fold := cases.Fold()
	needle := fold.String(query)

	matched := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(fold.String(o.BuyerName), needle) ||
			strings.Contains(fold.String(o.ItemName), needle) {
			matched = append(matched, o)
		}
	}
	return matched
}
