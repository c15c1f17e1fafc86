// Package store provides single-writer observable values: the current
// location and the notification queue.
package store

import "sync"

// Observable holds a value and notifies registered observers synchronously,
// in registration order, each time it changes.
type Observable[T any] struct {
	mu        sync.RWMutex
	value     T
	observers map[int]func(T)
	order     []int
	nextID    int
}

// NewObservable creates an observable holding initial
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		observers: make(map[int]func(T)),
	}
}

// Get returns the current value
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set replaces the value and notifies observers
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	o.value = value
	observers := o.snapshotObservers()
	o.mu.Unlock()

	for _, fn := range observers {
		fn(value)
	}
}

// Update derives the next value from the current one under the write lock
func (o *Observable[T]) Update(fn func(T) T) {
	o.mu.Lock()
	o.value = fn(o.value)
	value := o.value
	observers := o.snapshotObservers()
	o.mu.Unlock()

	for _, obs := range observers {
		obs(value)
	}
}

// Subscribe registers fn, calls it immediately with the current value and
// returns a function that removes it.
func (o *Observable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.observers[id] = fn
	o.order = append(o.order, id)
	value := o.value
	o.mu.Unlock()

	fn(value)

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.observers, id)
			for i, v := range o.order {
				if v == id {
					o.order = append(o.order[:i], o.order[i+1:]...)
					break
				}
			}
		})
	}
}

// snapshotObservers must be called with the lock held. Observers run
// outside the lock so they may read the value or unsubscribe.
func (o *Observable[T]) snapshotObservers() []func(T) {
	out := make([]func(T), 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.observers[id])
	}
	return out
}
