package groupbuy

import (
	"fmt"

	"github.com/mmynk/groupbuy/internal/models"
)

// Action names a kind of state change.
type Action string

const (
	ActionCreateGroupBuy  Action = "create_group_buy"
	ActionDeleteGroupBuy  Action = "delete_group_buy"
	ActionAddOrder        Action = "add_order"
	ActionEditOrder       Action = "edit_order"
	ActionToggleOrderPaid Action = "toggle_order_paid"
	ActionDeleteOrder     Action = "delete_order"
)

// Intent is one user action against the collection.
// Only the fields relevant to Action are read.
type Intent struct {
	Action     Action            `json:"action"`
	GroupBuyID string            `json:"groupBuyId,omitempty"`
	OrderID    string            `json:"orderId,omitempty"`
	Title      string            `json:"title,omitempty"`
	Order      models.OrderInput `json:"order"`
}

// Apply runs the intent and returns the next collection.
// On error the input collection is returned unchanged.
func (r *Reducer) Apply(c models.Collection, in Intent) (models.Collection, error) {
	switch in.Action {
	case ActionCreateGroupBuy:
		return r.CreateGroupBuy(c, in.Title)
	case ActionDeleteGroupBuy:
		return DeleteGroupBuy(c, in.GroupBuyID)
	case ActionAddOrder:
		return r.AddOrder(c, in.GroupBuyID, in.Order)
	case ActionEditOrder:
		return EditOrder(c, in.GroupBuyID, in.OrderID, in.Order)
	case ActionToggleOrderPaid:
		return ToggleOrderPaid(c, in.GroupBuyID, in.OrderID)
	case ActionDeleteOrder:
		return DeleteOrder(c, in.GroupBuyID, in.OrderID)
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownAction, in.Action)
	}
}

// Reduce is Apply without the error: (state, intent) -> state.
func (r *Reducer) Reduce(c models.Collection, in Intent) models.Collection {
	next, _ := r.Apply(c, in)
	return next
}
