package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/groupbuy/internal/calculator"
	"github.com/mmynk/groupbuy/internal/groupbuy"
	"github.com/mmynk/groupbuy/internal/metrics"
	"github.com/mmynk/groupbuy/internal/models"
	"github.com/mmynk/groupbuy/internal/storage"
)

// saveTimeout bounds one write-through. Saves outlive the caller's context so a
// dropped request cannot leave applied state unsaved.
const saveTimeout = 5 * time.Second

// GroupBuyService holds the session's collection and writes it through to storage.
// Intents are applied one at a time; the collection is replaced, never edited.
type GroupBuyService struct {
	reducer *groupbuy.Reducer
	store   *storage.Persistent[models.Collection]
	metrics *metrics.Metrics

	mu    sync.Mutex
	state models.Collection
}

// NewGroupBuyService loads the collection from store once and returns a service
// ready to take intents. m may be nil.
func NewGroupBuyService(ctx context.Context, store *storage.Persistent[models.Collection], reducer *groupbuy.Reducer, m *metrics.Metrics) *GroupBuyService {
	s := &GroupBuyService{
		reducer: reducer,
		store:   store,
		metrics: m,
	}

	store.Check(func(c models.Collection) error {
		return groupbuy.Validate(groupbuy.Normalize(c))
	})
	if m != nil {
		store.OnError(func(op string, err error) {
			m.StoreFailures.WithLabelValues(op).Inc()
		})
		store.Subscribe(s.observe)
	}

	s.state = groupbuy.Normalize(store.Load(ctx))
	s.observe(s.state)

	slog.Info("Group buys loaded", "key", store.Key(), "count", len(s.state))
	return s
}

// Snapshot returns the current collection. Callers must not modify it.
func (s *GroupBuyService) Snapshot() models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// List returns one summary row per group buy, newest first.
func (s *GroupBuyService) List() []calculator.Summary {
	return calculator.SummarizeAll(s.Snapshot())
}

// Get returns one group buy.
func (s *GroupBuyService) Get(id string) (models.GroupBuy, error) {
	gb, ok := groupbuy.Find(s.Snapshot(), id)
	if !ok {
		return models.GroupBuy{}, fmt.Errorf("group buy %s: %w", id, groupbuy.ErrNotFound)
	}
	return gb, nil
}

// Detail returns the detail view of one group buy filtered by query.
func (s *GroupBuyService) Detail(id, query string) (calculator.DetailView, error) {
	gb, err := s.Get(id)
	if err != nil {
		return calculator.DetailView{}, err
	}
	return calculator.Detail(gb, query), nil
}

// PreviewDeleteGroupBuy reports what deleting the group buy would discard.
func (s *GroupBuyService) PreviewDeleteGroupBuy(id string) (groupbuy.DeletePreview, error) {
	return groupbuy.PreviewDeleteGroupBuy(s.Snapshot(), id)
}

// PreviewDeleteOrder reports what deleting the order would discard.
func (s *GroupBuyService) PreviewDeleteOrder(groupBuyID, orderID string) (groupbuy.DeletePreview, error) {
	return groupbuy.PreviewDeleteOrder(s.Snapshot(), groupBuyID, orderID)
}

// Dispatch applies one intent. On success the new collection becomes current
// and is saved; on failure the current collection is returned unchanged with
// the reducer's error.
func (s *GroupBuyService) Dispatch(ctx context.Context, in groupbuy.Intent) (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, in)
	s.record(in.Action, err)
	if err != nil {
		slog.Warn("Intent rejected",
			"action", in.Action,
			"group_buy_id", in.GroupBuyID,
			"order_id", in.OrderID,
			"error", err,
		)
		return s.state, err
	}

	s.state = next
	s.save(ctx, next)

	slog.Info("Intent applied",
		"action", in.Action,
		"group_buy_id", in.GroupBuyID,
		"order_id", in.OrderID,
		"group_buys", len(next),
	)
	return next, nil
}

// CreateGroupBuy creates a group buy and returns it.
func (s *GroupBuyService) CreateGroupBuy(ctx context.Context, title string) (models.GroupBuy, error) {
	next, err := s.Dispatch(ctx, groupbuy.Intent{Action: groupbuy.ActionCreateGroupBuy, Title: title})
	if err != nil {
		return models.GroupBuy{}, err
	}
	return next[0], nil
}

// DeleteGroupBuy deletes a group buy and its orders.
func (s *GroupBuyService) DeleteGroupBuy(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, groupbuy.Intent{Action: groupbuy.ActionDeleteGroupBuy, GroupBuyID: id})
	return err
}

// AddOrder adds an order to a group buy and returns it.
func (s *GroupBuyService) AddOrder(ctx context.Context, groupBuyID string, in models.OrderInput) (models.Order, error) {
	next, err := s.Dispatch(ctx, groupbuy.Intent{Action: groupbuy.ActionAddOrder, GroupBuyID: groupBuyID, Order: in})
	if err != nil {
		return models.Order{}, err
	}
	gb, _ := groupbuy.Find(next, groupBuyID)
	return gb.Orders[0], nil
}

// EditOrder replaces an order's fields and returns the result.
func (s *GroupBuyService) EditOrder(ctx context.Context, groupBuyID, orderID string, in models.OrderInput) (models.Order, error) {
	next, err := s.Dispatch(ctx, groupbuy.Intent{
		Action:     groupbuy.ActionEditOrder,
		GroupBuyID: groupBuyID,
		OrderID:    orderID,
		Order:      in,
	})
	if err != nil {
		return models.Order{}, err
	}
	return findOrder(next, groupBuyID, orderID), nil
}

// ToggleOrderPaid flips an order's paid flag and returns the result.
func (s *GroupBuyService) ToggleOrderPaid(ctx context.Context, groupBuyID, orderID string) (models.Order, error) {
	next, err := s.Dispatch(ctx, groupbuy.Intent{
		Action:     groupbuy.ActionToggleOrderPaid,
		GroupBuyID: groupBuyID,
		OrderID:    orderID,
	})
	if err != nil {
		return models.Order{}, err
	}
	return findOrder(next, groupBuyID, orderID), nil
}

// DeleteOrder removes an order.
func (s *GroupBuyService) DeleteOrder(ctx context.Context, groupBuyID, orderID string) error {
	_, err := s.Dispatch(ctx, groupbuy.Intent{
		Action:     groupbuy.ActionDeleteOrder,
		GroupBuyID: groupBuyID,
		OrderID:    orderID,
	})
	return err
}

// Replace swaps in a whole collection, as an import does.
// The collection must pass groupbuy.Validate.
func (s *GroupBuyService) Replace(ctx context.Context, c models.Collection) error {
	c = groupbuy.Normalize(c)
	if err := groupbuy.Validate(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = c
	s.save(ctx, c)

	slog.Info("Collection replaced", "group_buys", len(c))
	return nil
}

func (s *GroupBuyService) save(ctx context.Context, c models.Collection) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	s.store.Save(ctx, c)
}

func (s *GroupBuyService) record(action groupbuy.Action, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Intents.WithLabelValues(string(action), ResultOf(err)).Inc()
}

func (s *GroupBuyService) observe(c models.Collection) {
	if s.metrics == nil {
		return
	}
	orders := 0
	for _, gb := range c {
		orders += len(gb.Orders)
	}
	s.metrics.CollectionSize.Set(float64(len(c)))
	s.metrics.OrderCount.Set(float64(orders))
}

// ResultOf classifies a reducer error for metrics and logs.
func ResultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, groupbuy.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, groupbuy.ErrEmptyTitle),
		errors.Is(err, groupbuy.ErrInvalidOrder),
		errors.Is(err, groupbuy.ErrInvalidCollection),
		errors.Is(err, groupbuy.ErrUnknownAction):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

func findOrder(c models.Collection, groupBuyID, orderID string) models.Order {
	gb, _ := groupbuy.Find(c, groupBuyID)
	o, _ := groupbuy.FindOrder(gb, orderID)
	return o
}
