// Package modules is a registry of lazily loaded content keyed by planet id.
// Each loader runs at most once, in the background, the first time its id is
// requested.
package modules

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Status is the load state of a registered id.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Loader builds the content for one id.
type Loader[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	load    Loader[T]
	started bool
	done    chan struct{}
	val     T
	err     error
}

// Registry maps ids to loaders and caches their results.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	onReady []func(id string, err error)
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]*entry[T])}
}

// Register adds or replaces the loader for id. Replacing discards any
// cached result.
func (r *Registry[T]) Register(id string, load Loader[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry[T]{load: load, done: make(chan struct{})}
}

// IDs returns the registered ids, sorted.
func (r *Registry[T]) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// OnReady registers fn to run after any loader finishes, successfully or
// not. It runs on the loader's goroutine.
func (r *Registry[T]) OnReady(fn func(id string, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReady = append(r.onReady, fn)
}

// Request returns the content for id if it is ready, and otherwise starts
// the loader (once) and reports pending. ctx is handed to the loader.
func (r *Registry[T]) Request(ctx context.Context, id string) (T, Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	e, ok := r.entries[id]
	if !ok {
		return zero, StatusUnknown
	}
	select {
	case <-e.done:
		if e.err != nil {
			return zero, StatusFailed
		}
		return e.val, StatusReady
	default:
	}
	if !e.started {
		e.started = true
		go r.run(ctx, id, e)
	}
	return zero, StatusPending
}

func (r *Registry[T]) run(ctx context.Context, id string, e *entry[T]) {
	val, err := safeLoad(ctx, e.load)

	r.mu.Lock()
	e.val, e.err = val, err
	close(e.done)
	hooks := slices.Clone(r.onReady)
	r.mu.Unlock()

	for _, fn := range hooks {
		fn(id, err)
	}
}

func safeLoad[T any](ctx context.Context, load Loader[T]) (val T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("loader panicked: %v", p)
		}
	}()
	return load(ctx)
}

// Status reports the state of id without starting its loader.
func (r *Registry[T]) Status(id string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	switch {
	case !ok:
		return StatusUnknown
	case !e.started:
		return StatusPending
	}
	select {
	case <-e.done:
		if e.err != nil {
			return StatusFailed
		}
		return StatusReady
	default:
		return StatusPending
	}
}

// Err returns the load error for a failed id, or nil.
func (r *Registry[T]) Err(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	select {
	case <-e.done:
		return e.err
	default:
		return nil
	}
}

// Wait requests id and blocks until it has loaded or ctx is done.
func (r *Registry[T]) Wait(ctx context.Context, id string) (T, error) {
	var zero T
	if _, st := r.Request(ctx, id); st == StatusUnknown {
		return zero, fmt.Errorf("module %q is not registered", id)
	}

	r.mu.Lock()
	e := r.entries[id]
	r.mu.Unlock()

	select {
	case <-e.done:
		return e.val, e.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
