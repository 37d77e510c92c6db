// Package groupbuy implements the operations that change a group-buy collection.
//
// Every operation is a pure transformation: it takes the current collection and
// returns a new one without touching the input. When an operation fails, it
// returns the input collection unchanged together with an error describing why
// (ErrEmptyTitle, ErrInvalidOrder or ErrNotFound). Callers persist the returned
// collection only when the error is nil.
package groupbuy

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/groupbuy/internal/ids"
	"github.com/mmynk/groupbuy/internal/models"
)

// maxIDAttempts bounds retries when a generated order id is already taken.
const maxIDAttempts = 8

// Reducer owns the id generator and clock used by operations that create
// entities. Operations that only rearrange existing data are package functions.
type Reducer struct {
	newID func() string
	now   func() time.Time
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Reducer) { r.newID = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(r *Reducer) { r.now = fn }
}

// NewReducer creates a Reducer with UUIDv7 ids and the wall clock.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{newID: ids.New, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateGroupBuy prepends a new, empty group buy with the given title.
func (r *Reducer) CreateGroupBuy(c models.Collection, title string) (models.Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return c, ErrEmptyTitle
	}

	gb := models.GroupBuy{
		ID:        r.newID(),
		Title:     title,
		CreatedAt: r.now().UnixMilli(),
		Orders:    []models.Order{},
	}

	next := make(models.Collection, 0, len(c)+1)
	next = append(next, gb)
	next = append(next, c...)
	return next, nil
}

// DeleteGroupBuy removes a group buy and, with it, all of its orders.
func DeleteGroupBuy(c models.Collection, id string) (models.Collection, error) {
	i := indexOf(c, id)
	if i < 0 {
		return c, ErrNotFound
	}

	next := make(models.Collection, 0, len(c)-1)
	next = append(next, c[:i]...)
	next = append(next, c[i+1:]...)
	return next, nil
}

// AddOrder validates input and prepends a new order to the group buy.
func (r *Reducer) AddOrder(c models.Collection, groupBuyID string, in models.OrderInput) (models.Collection, error) {
	i := indexOf(c, groupBuyID)
	if i < 0 {
		return c, ErrNotFound
	}
	fields, err := ParseOrder(in)
	if err != nil {
		return c, err
	}

	gb := c[i]
	id, err := r.uniqueOrderID(gb)
	if err != nil {
		return c, err
	}

	order := models.Order{
		ID:        id,
		BuyerName: fields.BuyerName,
		ItemName:  fields.ItemName,
		Price:     fields.Price,
		Quantity:  fields.Quantity,
		IsPaid:    fields.IsPaid,
		CreatedAt: r.now().UnixMilli(),
	}

	orders := make([]models.Order, 0, len(gb.Orders)+1)
	orders = append(orders, order)
	orders = append(orders, gb.Orders...)
	gb.Orders = orders
	return replaceAt(c, i, gb), nil
}

// EditOrder validates input and overwrites the order's editable fields.
// ID and CreatedAt are kept.
func EditOrder(c models.Collection, groupBuyID, orderID string, in models.OrderInput) (models.Collection, error) {
	i, j := locate(c, groupBuyID, orderID)
	if j < 0 {
		return c, ErrNotFound
	}
	fields, err := ParseOrder(in)
	if err != nil {
		return c, err
	}

	return updateOrder(c, i, j, func(o *models.Order) {
		o.BuyerName = fields.BuyerName
		o.ItemName = fields.ItemName
		o.Price = fields.Price
		o.Quantity = fields.Quantity
		o.IsPaid = fields.IsPaid
	}), nil
}

// ToggleOrderPaid flips the order's paid flag.
func ToggleOrderPaid(c models.Collection, groupBuyID, orderID string) (models.Collection, error) {
	i, j := locate(c, groupBuyID, orderID)
	if j < 0 {
		return c, ErrNotFound
	}
	return updateOrder(c, i, j, func(o *models.Order) { o.IsPaid = !o.IsPaid }), nil
}

// DeleteOrder removes one order from its group buy.
func DeleteOrder(c models.Collection, groupBuyID, orderID string) (models.Collection, error) {
	i, j := locate(c, groupBuyID, orderID)
	if j < 0 {
		return c, ErrNotFound
	}

	gb := c[i]
	orders := make([]models.Order, 0, len(gb.Orders)-1)
	orders = append(orders, gb.Orders[:j]...)
	orders = append(orders, gb.Orders[j+1:]...)
	gb.Orders = orders
	return replaceAt(c, i, gb), nil
}

// Find returns the group buy with the given id.
func Find(c models.Collection, id string) (models.GroupBuy, bool) {
	i := indexOf(c, id)
	if i < 0 {
		return models.GroupBuy{}, false
	}
	return c[i], true
}

// FindOrder returns the order with the given id inside gb.
func FindOrder(gb models.GroupBuy, orderID string) (models.Order, bool) {
	j := orderIndex(gb, orderID)
	if j < 0 {
		return models.Order{}, false
	}
	return gb.Orders[j], true
}

func (r *Reducer) uniqueOrderID(gb models.GroupBuy) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := r.newID()
		if id != "" && orderIndex(gb, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("order in group buy %s: %w", gb.ID, ErrDuplicateID)
}

func indexOf(c models.Collection, id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

func orderIndex(gb models.GroupBuy, orderID string) int {
	for j := range gb.Orders {
		if gb.Orders[j].ID == orderID {
			return j
		}
	}
	return -1
}

// locate returns the group buy and order indexes, or j < 0 if either is missing.
func locate(c models.Collection, groupBuyID, orderID string) (i, j int) {
	i = indexOf(c, groupBuyID)
	if i < 0 {
		return -1, -1
	}
	return i, orderIndex(c[i], orderID)
}

// replaceAt returns a copy of c with position i set to gb.
func replaceAt(c models.Collection, i int, gb models.GroupBuy) models.Collection {
	next := make(models.Collection, len(c))
	copy(next, c)
	next[i] = gb
	return next
}

// updateOrder copies the path from the collection down to order j and applies fn to the copy.
func updateOrder(c models.Collection, i, j int, fn func(*models.Order)) models.Collection {
	gb := c[i]
	orders := make([]models.Order, len(gb.Orders))
	copy(orders, gb.Orders)
	fn(&orders[j])
	gb.Orders = orders
	return replaceAt(c, i, gb)
}
