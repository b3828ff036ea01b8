// Package eventbus is the in-process dispatch channel between the
// client core and optional observers such as the OpenTelemetry
// subscriber. The core publishes plain event structs; nothing in the
// send path depends on whether anyone is listening.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

type registration struct {
	id int64
	fn func(context.Context, any)
}

// Bus is a simple in-process event dispatcher.
type Bus struct {
	mu     sync.RWMutex
	nextID int64
	byType map[reflect.Type][]registration
}

// New creates an empty Bus.
func New() *Bus { return &Bus{byType: make(map[reflect.Type][]registration)} }

func (b *Bus) subscribe(t reflect.Type, fn func(context.Context, any)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.byType[t] = append(b.byType[t], registration{id: id, fn: fn})
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		regs := b.byType[t]
		for i, reg := range regs {
			if reg.id == id {
				regs = append(regs[:i], regs[i+1:]...)
				break
			}
		}
		if len(regs) == 0 {
			delete(b.byType, t)
		} else {
			b.byType[t] = regs
		}
	}
}

// emit dispatches e to every handler registered for its dynamic type.
// Handlers run synchronously on the publishing goroutine.
func (b *Bus) emit(ctx context.Context, e any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	regs := append([]registration(nil), b.byType[reflect.TypeOf(e)]...)
	b.mu.RUnlock()
	for _, reg := range regs {
		reg.fn(ctx, e)
	}
}

var global atomic.Pointer[Bus]

// Use installs the global bus. Passing nil disables event publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the global bus. The returned function
// removes the registration; it is a no-op when no bus is installed.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	b := global.Load()
	if b == nil {
		return func() {}
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	return b.subscribe(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
}

// Publish sends e through the global bus.
func Publish[T any](ctx context.Context, e T) {
	if b := global.Load(); b != nil {
		b.emit(ctx, e)
	}
}
