package groupbuy

import (
	"github.com/mmynk/groupbuy/internal/calculator"
	"github.com/mmynk/groupbuy/internal/models"
)

// DeletePreview describes what a delete would discard.
// The presentation layer shows it before asking for confirmation.
type DeletePreview struct {
	GroupBuyID string  `json:"groupBuyId"`
	OrderID    string  `json:"orderId,omitempty"`
	Title      string  `json:"title"`
	OrderCount int     `json:"orderCount"`
	Total      float64 `json:"total"`
}

// PreviewDeleteGroupBuy reports the group buy and every order that
// DeleteGroupBuy would remove.
func PreviewDeleteGroupBuy(c models.Collection, id string) (DeletePreview, error) {
	gb, ok := Find(c, id)
	if !ok {
		return DeletePreview{}, ErrNotFound
	}
	return DeletePreview{
		GroupBuyID: gb.ID,
		Title:      gb.Title,
		OrderCount: calculator.ItemCount(gb.Orders),
		Total:      calculator.Total(gb.Orders),
	}, nil
}

// PreviewDeleteOrder reports the single order DeleteOrder would remove.
// Title is the order's item name.
func PreviewDeleteOrder(c models.Collection, groupBuyID, orderID string) (DeletePreview, error) {
	gb, ok := Find(c, groupBuyID)
	if !ok {
		return DeletePreview{}, ErrNotFound
	}
	order, ok := FindOrder(gb, orderID)
	if !ok {
		return DeletePreview{}, ErrNotFound
	}
	return DeletePreview{
		GroupBuyID: gb.ID,
		OrderID:    order.ID,
		Title:      order.ItemName,
		OrderCount: 1,
		Total:      order.LineTotal(),
	}, nil
}
