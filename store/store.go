// Package store holds application state and serializes the dispatch of
// actions through a reducer. It is the runtime counterpart to the director
// and compose packages: they produce creators, effects and a reducer; the
// store executes them.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/duxkit/duxkit/action"
)

// InitActionType is the action dispatched once at construction to seed the
// initial state. Reducers that don't recognize it fall back to their
// defaults, which is the point.
const InitActionType = "@@init"

// Subscriber is notified with the new state after each successful dispatch.
// Notifications run synchronously on the dispatching goroutine.
type Subscriber func(action.State)

// Store is a state container. Dispatches are serialized; reads are
// lock-free.
type Store struct {
	reducer  action.Reducer
	dispatch DispatchFunc

	// state holds the current action.State. Written only under mu, read
	// freely.
	state atomic.Value

	// mu serializes reduce-then-swap so dispatches observe each other.
	mu sync.Mutex

	subMu sync.RWMutex
	subs  map[string]Subscriber

	pool pond.Pool
}

// Option configures a Store.
type Option func(*config)

type config struct {
	middleware []Middleware
	workers    int
}

// WithMiddleware wraps the dispatch path, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithWorkers gives the store a worker pool of the given size, enabling Go.
func WithWorkers(count int) Option {
	return func(c *config) {
		c.workers = count
	}
}

// New creates a Store around the given reducer and seeds the initial state
// by dispatching InitActionType through it.
func New(reducer action.Reducer, opts ...Option) (*Store, error) {
	if reducer == nil {
		return nil, ErrReducerRequired
	}

	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Store{
		reducer: reducer,
		subs:    make(map[string]Subscriber),
	}

	s.dispatch = chain(s.apply, cfg.middleware)

	if cfg.workers > 0 {
		s.pool = pond.NewPool(cfg.workers)
	}

	initial, err := reducer(nil, action.Action{Type: InitActionType})
	if err != nil {
		return nil, err
	}

	s.state.Store(initial)

	return s, nil
}

// GetState returns the current state without taking the dispatch lock. The
// returned map must be treated as read-only.
func (s *Store) GetState() action.State {
	state, _ := s.state.Load().(action.State)

	return state
}

// Dispatch runs the action through the middleware chain and the reducer.
// On success the new state is stored and subscribers are notified; on
// failure the state is left untouched.
func (s *Store) Dispatch(ctx context.Context, act action.Action) error {
	return s.dispatch(ctx, act)
}

// apply is the innermost dispatch handler.
func (s *Store) apply(_ context.Context, act action.Action) error {
	start := time.Now()

	s.mu.Lock()

	current := s.GetState()

	next, err := s.reducer(current, act)
	if err != nil {
		s.mu.Unlock()
		dispatches.WithLabelValues(outcomeError).Inc()
		dispatchDuration.WithLabelValues(outcomeError).Observe(time.Since(start).Seconds())

		return err
	}

	s.state.Store(next)
	s.mu.Unlock()

	dispatches.WithLabelValues(outcomeSuccess).Inc()
	dispatchDuration.WithLabelValues(outcomeSuccess).Observe(time.Since(start).Seconds())

	s.notify(next)

	return nil
}

func (s *Store) notify(state action.State) {
	s.subMu.RLock()

	listeners := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}

	s.subMu.RUnlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn Subscriber) func() {
	id := uuid.NewString()

	s.subMu.Lock()
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Run executes a thunk synchronously, binding its dispatch to this store
// and the given context.
func (s *Store) Run(ctx context.Context, thunk action.Thunk) error {
	if thunk == nil {
		return ErrNilThunk
	}

	dispatch := func(act action.Action) error {
		return s.Dispatch(ctx, act)
	}

	return thunk(ctx, dispatch, s.GetState)
}

// Go executes a thunk on the store's worker pool. The returned task can be
// waited on for the thunk's error.
func (s *Store) Go(ctx context.Context, thunk action.Thunk) (pond.Task, error) { //nolint:ireturn
	if thunk == nil {
		return nil, ErrNilThunk
	}

	if s.pool == nil {
		return nil, ErrNoWorkerPool
	}

	return s.pool.SubmitErr(func() error {
		return s.Run(ctx, thunk)
	}), nil
}

// Close stops the worker pool, waiting for in-flight thunks. Stores built
// without workers close as a no-op.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}
