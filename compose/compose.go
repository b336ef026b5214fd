// Package compose aggregates several directors into one combined action
// mapping and one combined reducer, keyed by state slice. The reducer merge
// itself is delegated to an injectable combination function; CombineReducers
// is the stated default.
package compose

import (
	"fmt"
	"maps"
	"slices"

	"github.com/duxkit/duxkit/action"
	"github.com/duxkit/duxkit/director"
)

// Combinator merges a mapping of slice reducers into a single reducer. Its
// contract: the returned reducer dispatches each incoming action to every
// sub-reducer against that slice's own sub-state, and assembles a composite
// state keyed the same way.
type Combinator func(reducers map[string]action.Reducer) action.Reducer

// Slice binds a director to its key in the composite state. By convention
// the key is the director's name, but it doesn't have to be.
type Slice struct {
	Key      string
	Director *director.Director
}

// Of is shorthand for a Slice keyed by the director's own name.
func Of(d *director.Director) Slice {
	return Slice{Key: d.Name(), Director: d}
}

// Composition is the aggregate handed to the store: nested creator and
// effect mappings plus one combined reducer. It is built once by Combine and
// immutable thereafter.
type Composition struct {
	actions map[string]map[string]action.Creator
	effects map[string]map[string]action.Effect
	reducer action.Reducer
}

// Option configures Combine.
type Option func(*options)

type options struct {
	combine Combinator
}

// WithCombinator injects the reducer combination function. The default is
// CombineReducers.
func WithCombinator(fn Combinator) Option {
	return func(o *options) {
		if fn != nil {
			o.combine = fn
		}
	}
}

// Combine aggregates the given directors, in order. Beyond what the injected
// combinator does, it performs no validation of its own; a duplicate slice
// key keeps the last director given for it.
func Combine(directors []Slice, opts ...Option) Composition {
	cfg := options{combine: CombineReducers}

	for _, opt := range opts {
		opt(&cfg)
	}

	comp := Composition{
		actions: make(map[string]map[string]action.Creator, len(directors)),
		effects: make(map[string]map[string]action.Effect, len(directors)),
	}

	reducers := make(map[string]action.Reducer, len(directors))

	for _, s := range directors {
		comp.actions[s.Key] = s.Director.Actions()
		comp.effects[s.Key] = s.Director.Effects()
		reducers[s.Key] = s.Director.Reducer()
	}

	comp.reducer = cfg.combine(reducers)

	return comp
}

// Actions returns a copy of the two-level creator mapping: slice key, then
// transition name.
func (c Composition) Actions() map[string]map[string]action.Creator {
	return maps.Clone(c.actions)
}

// Action returns one slice's creator for the named transition.
func (c Composition) Action(sliceKey, name string) (action.Creator, bool) {
	creator, ok := c.actions[sliceKey][name]

	return creator, ok
}

// Effects returns a copy of the two-level effect mapping.
func (c Composition) Effects() map[string]map[string]action.Effect {
	return maps.Clone(c.effects)
}

// Effect returns one slice's effect creator for the named transition.
func (c Composition) Effect(sliceKey, name string) (action.Effect, bool) {
	eff, ok := c.effects[sliceKey][name]

	return eff, ok
}

// Reducer returns the combined reducer, the one the store actually invokes.
func (c Composition) Reducer() action.Reducer {
	return c.reducer
}

// SliceError wraps a sub-reducer failure with the slice key it came from.
type SliceError struct {
	Key string
	Err error
}

func (e *SliceError) Error() string {
	return fmt.Sprintf("slice %s: %v", e.Key, e.Err)
}

func (e *SliceError) Unwrap() error {
	return e.Err
}

// CombineReducers is the default reducer combination collaborator. The
// returned reducer runs every slice reducer against its own sub-state for
// each incoming action and assembles the composite result. Slices are
// processed in sorted key order so failures report deterministically; the
// first failing slice aborts the dispatch.
func CombineReducers(reducers map[string]action.Reducer) action.Reducer {
	sliceKeys := slices.Sorted(maps.Keys(reducers))

	return func(state action.State, act action.Action) (action.State, error) {
		next := make(action.State, len(sliceKeys))

		for _, key := range sliceKeys {
			sub, _ := state[key].(action.State)

			out, err := reducers[key](sub, act)
			if err != nil {
				return nil, &SliceError{Key: key, Err: err}
			}

			next[key] = out
		}

		return next, nil
	}
}
