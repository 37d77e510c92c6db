package models

// GroupBuy represents one group-purchase event.
// New orders are prepended, so Orders is newest first.
type GroupBuy struct {
	// ID is the unique identifier for the group buy (UUID format).
	ID string `json:"id"`

	// Title is the display name of the event (e.g., "Friday Tea").
	// Set at creation and never edited.
	Title string `json:"title"`

	// CreatedAt is the Unix timestamp in milliseconds when the group buy was created.
	CreatedAt int64 `json:"createdAt"`

	// Orders are the line items recorded for this event.
	// Order IDs are unique within one GroupBuy.
	Orders []Order `json:"orders"`
}

// Collection is the full persisted state: every GroupBuy, newest first.
type Collection []GroupBuy

// Order represents a single buyer's line item.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string `json:"id"`

	// BuyerName is who placed the order.
	BuyerName string `json:"buyerName"`

	// ItemName is what was ordered (e.g., "Latte").
	ItemName string `json:"itemName"`

	// Price is the unit price. Never negative.
	Price float64 `json:"price"`

	// Quantity is the number of units. Always at least 1.
	Quantity int `json:"quantity"`

	// IsPaid reports whether the buyer has paid for this line.
	IsPaid bool `json:"isPaid"`

	// CreatedAt is the Unix timestamp in milliseconds when the order was recorded.
	CreatedAt int64 `json:"createdAt"`
}

// LineTotal returns price times quantity.
func (o Order) LineTotal() float64 {
	return o.Price * float64(o.Quantity)
}

// OrderInput carries the raw form values for creating or editing an order.
// Price and Quantity stay strings until groupbuy.ParseOrder validates them.
type OrderInput struct {
	BuyerName string `json:"buyerName"`
	ItemName  string `json:"itemName"`
	Price     string `json:"price"`
	Quantity  string `json:"quantity"`
	IsPaid    bool   `json:"isPaid"`
}
