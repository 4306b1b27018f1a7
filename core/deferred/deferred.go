// Package deferred runs single-shot delayed operations and keeps at most one
// of them in flight per key.
package deferred

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrInFlight = errors.New("operation already in progress")

// Task is the future result of a function run once after a delay.
type Task[T any] struct {
	done chan struct{}
	val  T
}

// After runs fn once `delay` has elapsed.
func After[T any](delay time.Duration, fn func() T) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	time.AfterFunc(delay, func() {
		t.val = fn()
		close(t.done)
	})
	return t
}

// Resolved returns a task that is already done.
func Resolved[T any](val T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), val: val}
	close(t.done)
	return t
}

func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the result is ready or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the result and true once the task is done.
func (t *Task[T]) Result() (T, bool) {
	select {
	case <-t.done:
		return t.val, true
	default:
		var zero T
		return zero, false
	}
}

// Guard lets one operation per key run at a time.
type Guard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{keys: make(map[string]struct{})}
}

// Acquire claims `key`; it fails with ErrInFlight while the key is held.
func (g *Guard) Acquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.keys[key]; ok {
		return ErrInFlight
	}
	g.keys[key] = struct{}{}
	return nil
}

func (g *Guard) Release(key string) {
	g.mu.Lock()
	delete(g.keys, key)
	g.mu.Unlock()
}

func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.keys[key]
	return ok
}
