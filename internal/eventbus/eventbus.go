// Package eventbus is a minimal in-process event dispatcher keyed by the
// event's dynamic type.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

type entry struct {
	id int
	fn func(context.Context, any)
}

// Bus fans events out to the handlers registered for their type.
type Bus struct {
	mu      sync.RWMutex
	nextID  int
	entries map[reflect.Type][]entry
}

// New creates an empty Bus.
func New() *Bus { return &Bus{entries: make(map[reflect.Type][]entry)} }

func (b *Bus) add(t reflect.Type, fn func(context.Context, any)) (remove func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.entries[t] = append(b.entries[t], entry{id: id, fn: fn})
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		es := b.entries[t]
		for i := range es {
			if es[i].id == id {
				b.entries[t] = append(es[:i:i], es[i+1:]...)
				break
			}
		}
		if len(b.entries[t]) == 0 {
			delete(b.entries, t)
		}
	}
}

func (b *Bus) emit(ctx context.Context, e any) {
	b.mu.RLock()
	es := append([]entry(nil), b.entries[reflect.TypeOf(e)]...)
	b.mu.RUnlock()
	for _, en := range es {
		en.fn(ctx, e)
	}
}

var global atomic.Pointer[Bus]

// Use installs b as the process-wide bus. A nil bus disables publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the process-wide bus for events of type T.
// The returned function removes the subscription.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	b := global.Load()
	if b == nil {
		return func() {}
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	return b.add(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
}

// Publish delivers e to every subscriber of its type.
func Publish[T any](ctx context.Context, e T) {
	if b := global.Load(); b != nil {
		b.emit(ctx, e)
	}
}
