// Package action defines the data model shared by directors, composers, and
// stores: type-tagged actions, state slices, and the function shapes of the
// store contract (reducers, creators, dispatch, and the asynchronous-dispatch
// thunk convention).
package action

import (
	"context"
	"maps"
)

// Payload holds the caller-supplied fields of an action. Payloads are plain
// data owned by the caller; creators copy them before tagging.
type Payload map[string]any

// Clone returns a shallow copy of the payload. A nil payload clones to an
// empty, non-nil one.
func (p Payload) Clone() Payload {
	if p == nil {
		return Payload{}
	}

	return maps.Clone(p)
}

// State is one director's state slice, or a composite of slices keyed by
// slice name. Reducers treat it as immutable input and return a new value
// (or the same one, unchanged) rather than mutating in place.
type State map[string]any

// Clone returns a shallow copy of the state. A nil state clones to an empty,
// non-nil one.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}

	return maps.Clone(s)
}

// Action is a transient, type-tagged value dispatched to a reducer. The Type
// is a composite key (see the keys package); the payload carries everything
// else. Actions are created per dispatch and never retained by a director.
type Action struct {
	Type    string
	Payload Payload
}

// Field returns a payload field, or nil if absent.
func (a Action) Field(name string) any {
	return a.Payload[name]
}

// Creator builds a plain action from a payload. A nil payload means an
// action with no fields beyond its type.
type Creator func(payload Payload) Action

// Reducer is a pure function from a state and an incoming action to the next
// state. Reducers return the input state unchanged (same reference) for
// actions they do not recognize.
type Reducer func(state State, act Action) (State, error)

// Dispatch delivers a plain action to the store.
type Dispatch func(act Action) error

// GetState reads the store's current state.
type GetState func() State

// Thunk is the asynchronous-dispatch calling convention: instead of a plain
// action, the caller hands the store a function which the store invokes with
// its own dispatch and state access. All scheduling, retry, and cancellation
// beyond the context is the thunk's own business.
type Thunk func(ctx context.Context, dispatch Dispatch, getState GetState) error

// Effect builds a thunk from a payload. It is the asynchronous counterpart
// of Creator.
type Effect func(payload Payload) Thunk
