package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Operation names passed to error hooks.
const (
	OpLoad = "load"
	OpSave = "save"
)

// Load reads key from m and decodes it as JSON into a T.
// It returns def if the key is absent, the read fails, or the value does not parse.
func Load[T any](ctx context.Context, m Medium, key string, def T) T {
	v, _, err := load(ctx, m, key, def)
	if err != nil {
		slog.Warn("Failed to load stored value, using default", "key", key, "error", err)
	}
	return v
}

// Save encodes v as JSON and writes it under key.
// Failures are logged, not returned; the result only reports whether the write landed.
func Save[T any](ctx context.Context, m Medium, key string, v T) bool {
	if err := save(ctx, m, key, v); err != nil {
		slog.Error("Failed to save value", "key", key, "error", err)
		return false
	}
	return true
}

func load[T any](ctx context.Context, m Medium, key string, def T) (T, bool, error) {
	raw, ok, err := m.GetItem(ctx, key)
	if err != nil {
		return def, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return def, false, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return v, true, nil
}

func save[T any](ctx context.Context, m Medium, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := m.SetItem(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Persistent binds a medium, a fixed key and a default value for one T.
// Subscribers see every value passed to Save, whether or not the write landed.
type Persistent[T any] struct {
	medium Medium
	key    string
	def    T

	mu      sync.Mutex
	subs    map[int]func(T)
	nextSub int
	onError func(op string, err error)
	check   func(T) error
}

// NewPersistent creates a Persistent for key in medium.
func NewPersistent[T any](medium Medium, key string, def T) *Persistent[T] {
	return &Persistent[T]{
		medium: medium,
		key:    key,
		def:    def,
		subs:   make(map[int]func(T)),
	}
}

// Key returns the storage key.
func (p *Persistent[T]) Key() string {
	return p.key
}

// OnError registers fn to be told about every absorbed failure.
func (p *Persistent[T]) OnError(fn func(op string, err error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = fn
}

// Check registers fn to vet every stored value Load decodes.
// A value fn rejects is treated like one that does not parse.
func (p *Persistent[T]) Check(fn func(T) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.check = fn
}

// Load returns the stored value, or the default.
func (p *Persistent[T]) Load(ctx context.Context) T {
	v, found, err := load(ctx, p.medium, p.key, p.def)
	if err == nil && found {
		p.mu.Lock()
		check := p.check
		p.mu.Unlock()
		if check != nil {
			if cerr := check(v); cerr != nil {
				v, err = p.def, fmt.Errorf("failed to validate %s: %w", p.key, cerr)
			}
		}
	}
	if err != nil {
		slog.Warn("Failed to load stored value, using default", "key", p.key, "error", err)
		p.reportError(OpLoad, err)
		return v
	}
	slog.Debug("Stored value loaded", "key", p.key, "found", found)
	return v
}

// Save writes v and notifies subscribers. It reports whether the write landed.
func (p *Persistent[T]) Save(ctx context.Context, v T) bool {
	ok := true
	if err := save(ctx, p.medium, p.key, v); err != nil {
		slog.Error("Failed to save value", "key", p.key, "error", err)
		p.reportError(OpSave, err)
		ok = false
	}

	p.mu.Lock()
	subs := make([]func(T), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return ok
}

// Subscribe calls fn after every Save. The returned func unsubscribes.
func (p *Persistent[T]) Subscribe(fn func(T)) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *Persistent[T]) reportError(op string, err error) {
	p.mu.Lock()
	fn := p.onError
	p.mu.Unlock()
	if fn != nil {
		fn(op, err)
	}
}
