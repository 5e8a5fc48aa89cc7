package viewstate

import (
	"context"
	"errors"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/session"
)

// LoadFunc fetches and derives a screen's data. Multiple API calls inside a
// LoadFunc run as an ordered sequence, not a fan-out.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Reconciler drives one screen's State through Loading, Success and Error.
type Reconciler[T any] struct {
	load           LoadFunc[T]
	store          session.Store
	onUnauthorized func()

	mu         sync.Mutex
	state      State[T]
	inFlight   bool
	generation uint64
}

// Option configures a Reconciler during construction.
type Option[T any] func(*Reconciler[T])

// WithUnauthorizedHandler registers the navigation signal fired after the
// session is cleared on a 401.
func WithUnauthorizedHandler[T any](fn func()) Option[T] {
	return func(r *Reconciler[T]) {
		if fn != nil {
			r.onUnauthorized = fn
		}
	}
}

// New creates a Reconciler for one screen. store may not be nil; the
// reconciler owns the session-clearing side of the 401 contract.
func New[T any](store session.Store, load LoadFunc[T], opts ...Option[T]) *Reconciler[T] {
	r := &Reconciler[T]{
		load:           load,
		store:          store,
		onUnauthorized: func() {},
		state:          State[T]{Phase: PhaseLoading},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current render state.
func (r *Reconciler[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Reload transitions to Loading and runs the load function. A reload issued
// while another is in flight is ignored, matching the one-request-per-screen
// rule. The call blocks until the load completes; screens run it from their
// own task.
func (r *Reconciler[T]) Reload(ctx context.Context) {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		return
	}
	r.inFlight = true
	r.generation++
	gen := r.generation
	r.state = State[T]{Phase: PhaseLoading}
	r.mu.Unlock()

	data, err := r.load(ctx)

	r.mu.Lock()
	r.inFlight = false
	if gen != r.generation {
		// The screen moved on while this request was in flight; the result
		// is discarded rather than cancelled.
		r.mu.Unlock()
		return
	}
	if err == nil {
		r.state = State[T]{Phase: PhaseSuccess, Data: data}
		r.mu.Unlock()
		return
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		r.mu.Unlock()
		// Session clearance is an atomic observable effect of any 401,
		// regardless of which screen triggered the call. The redirect
		// bypasses normal error display.
		_ = r.store.Clear(ctx)
		r.onUnauthorized()
		return
	}
	r.state = State[T]{Phase: PhaseError, Message: ErrorMessage(err)}
	r.mu.Unlock()
}

// Update mutates the Success data in place, for derived-state changes (a
// new selection) that must not trigger a full reload. No-op outside Success.
func (r *Reconciler[T]) Update(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Phase == PhaseSuccess {
		fn(&r.state.Data)
	}
}

// Invalidate marks any in-flight result stale, so a response landing after
// the screen's dependencies changed is dropped.
func (r *Reconciler[T]) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
}

// Secondary runs a non-critical fetch whose failure must not take the screen
// out of Success; any error degrades to the placeholder value.
func Secondary[V any](ctx context.Context, placeholder V, fetch func(context.Context) (V, error)) V {
	v, err := fetch(ctx)
	if err != nil {
		return placeholder
	}
	return v
}
