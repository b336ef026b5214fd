// Package director synthesizes named groups of state transitions for a
// unidirectional-data-flow store. Given a namespace and an ordered list of
// transition definitions, Construct produces in one pass: a mapping of
// callable action creators, a mapping of asynchronous effect creators, and a
// single reducer that routes incoming actions by their composite type key.
// The director only produces values compatible with a host store; it never
// holds state of its own.
package director

import (
	"errors"
	"maps"

	"github.com/duxkit/duxkit/action"
	"github.com/duxkit/duxkit/keys"
)

// Director is the synthesized unit: one namespace, its action and effect
// creators, and one composed reducer. Directors are immutable after
// construction; build a new one to change behavior.
type Director struct {
	name        string
	transitions []*transition
	actions     map[string]action.Creator
	effects     map[string]action.Effect
	logger      Logger
}

// Option configures optional director behavior at construction time.
type Option func(*Director)

// WithLogger sets the logger used around effect execution.
func WithLogger(logger Logger) Option {
	return func(d *Director) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Construct validates and normalizes the transition table and synthesizes
// the director. Declaration order is preserved: it determines reducer
// dispatch priority (the first transition whose base key matches an incoming
// action wins). All invalid transitions are reported together in one joined
// error; no creator is usable until the whole table validates.
func Construct(name string, transitions []Transition, opts ...Option) (*Director, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	d := &Director{
		name:    name,
		actions: make(map[string]action.Creator),
		effects: make(map[string]action.Effect),
		logger:  NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(d)
	}

	var errs []error

	seen := make(map[string]bool, len(transitions))

	for _, cfg := range transitions {
		if err := cfg.validate(); err != nil {
			errs = append(errs, wrapConfigError(name, cfg.Name, err))

			continue
		}

		if seen[cfg.Name] {
			errs = append(errs, wrapConfigError(name, cfg.Name, ErrDuplicateTransition))

			continue
		}

		seen[cfg.Name] = true

		desc := cfg.normalize(name)
		d.transitions = append(d.transitions, desc)

		if desc.kind == variantAsync {
			d.effects[desc.name] = d.newEffect(desc)
		} else {
			d.actions[desc.name] = d.newCreator(desc)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return d, nil
}

// Name returns the director's namespace, conventionally also its slice key.
func (d *Director) Name() string {
	return d.name
}

// Action returns the creator for the named transition, if it has one.
// Async transitions have effects instead; see Effect.
func (d *Director) Action(name string) (action.Creator, bool) {
	creator, ok := d.actions[name]

	return creator, ok
}

// Effect returns the effect creator for the named async transition.
func (d *Director) Effect(name string) (action.Effect, bool) {
	eff, ok := d.effects[name]

	return eff, ok
}

// Actions returns a copy of the creator mapping, keyed by transition name.
func (d *Director) Actions() map[string]action.Creator {
	return maps.Clone(d.actions)
}

// Effects returns a copy of the effect mapping, keyed by transition name.
func (d *Director) Effects() map[string]action.Effect {
	return maps.Clone(d.effects)
}

// Reducer returns the director's single composed reducer.
func (d *Director) Reducer() action.Reducer {
	return d.reduce
}

// newCreator synthesizes the plain action creator for a non-async
// transition.
func (d *Director) newCreator(desc *transition) action.Creator {
	typ := desc.key.String()

	if desc.kind == variantCreate {
		create := desc.create

		return func(payload action.Payload) action.Action {
			actionsCreated.WithLabelValues(d.name, desc.name).Inc()

			// Create owns the entire outgoing body; raw payload
			// fields do not survive around it.
			return action.Action{Type: typ, Payload: create(payload).Clone()}
		}
	}

	return func(payload action.Payload) action.Action {
		actionsCreated.WithLabelValues(d.name, desc.name).Inc()

		return action.Action{Type: typ, Payload: payload.Clone()}
	}
}

// reduce is the director's reducer. It defaults a nil state to an empty
// slice, routes by base key in declaration order, and leaves actions for
// other directors untouched so composed reducers are safe to share.
func (d *Director) reduce(state action.State, act action.Action) (action.State, error) {
	if state == nil {
		state = action.State{}
	}

	incoming := keys.Parse(act.Type)

	for _, desc := range d.transitions {
		if !desc.key.SameBase(incoming) {
			continue
		}

		// First declared match wins.
		if desc.branches == nil {
			actionsRouted.WithLabelValues(d.name, desc.name).Inc()

			return desc.reduce(state, act)
		}

		sub, ok := incoming.Sub()
		if !ok {
			dispatchErrors.WithLabelValues(d.name, desc.name).Inc()

			return nil, &DispatchError{
				Director:   d.name,
				Transition: desc.name,
				Type:       act.Type,
				Valid:      desc.order,
				Err:        ErrMissingSubKey,
			}
		}

		branch, ok := desc.branches[sub]
		if !ok {
			dispatchErrors.WithLabelValues(d.name, desc.name).Inc()

			return nil, &DispatchError{
				Director:   d.name,
				Transition: desc.name,
				Type:       act.Type,
				Valid:      desc.order,
				Err:        ErrUnknownSubKey,
			}
		}

		actionsRouted.WithLabelValues(d.name, desc.name).Inc()

		return branch(state, act)
	}

	actionsIgnored.WithLabelValues(d.name).Inc()

	return state, nil
}
