package groupbuy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/groupbuy/internal/models"
)

// OrderFields is validated order data ready to be stored.
type OrderFields struct {
	BuyerName string
	ItemName  string
	Price     float64
	Quantity  int
	IsPaid    bool
}

// ParseOrder validates raw form input.
// Buyer and item must be non-blank, price must parse to a finite number >= 0,
// and quantity must parse to an integer >= 1. Bad values are rejected, never
// clamped. Every error wraps ErrInvalidOrder.
func ParseOrder(in models.OrderInput) (OrderFields, error) {
	buyer := strings.TrimSpace(in.BuyerName)
	if buyer == "" {
		return OrderFields{}, fmt.Errorf("%w: buyer name is required", ErrInvalidOrder)
	}
	item := strings.TrimSpace(in.ItemName)
	if item == "" {
		return OrderFields{}, fmt.Errorf("%w: item name is required", ErrInvalidOrder)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil {
		return OrderFields{}, fmt.Errorf("%w: price %q is not a number", ErrInvalidOrder, in.Price)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return OrderFields{}, fmt.Errorf("%w: price must be a non-negative number, got %q", ErrInvalidOrder, in.Price)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil {
		return OrderFields{}, fmt.Errorf("%w: quantity %q is not a whole number", ErrInvalidOrder, in.Quantity)
	}
	if quantity < 1 {
		return OrderFields{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidOrder, quantity)
	}

	return OrderFields{
		BuyerName: buyer,
		ItemName:  item,
		Price:     price,
		Quantity:  quantity,
		IsPaid:    in.IsPaid,
	}, nil
}
