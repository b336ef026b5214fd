package director

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/duxkit/duxkit/action"
	"github.com/duxkit/duxkit/keys"
)

// AsyncFunc is caller-supplied asynchronous business logic. It receives the
// completion capability table, the creation-time payload, and the store's
// dispatch and state access, so it can dispatch additional actions directly
// if needed. Success and failure signaling are entirely its own: it chooses
// which completion callback to invoke, zero or more times, from any
// scheduling context. The framework does not retry, time out, cancel, or
// deduplicate on its behalf.
type AsyncFunc func(
	ctx context.Context,
	done Done,
	payload action.Payload,
	dispatch action.Dispatch,
	getState action.GetState,
) error

// Completion dispatches one result payload, tagged with the composite key it
// was built for.
type Completion func(payload action.Payload) error

// Done is the completion capability table handed to async logic. A flat
// transition completes through Complete; a branching transition completes
// through Branch (or the Success/Error shorthands). Using the wrong side
// returns an error naming the valid branch names.
type Done struct {
	director   string
	transition string
	key        keys.Key
	dispatch   action.Dispatch
	branches   map[string]action.Reducer
	order      []string
}

// Complete dispatches the result payload tagged with the transition's base
// key. Only valid for transitions with a flat reduce function.
func (d Done) Complete(payload action.Payload) error {
	if len(d.order) > 0 {
		return &DispatchError{
			Director:   d.director,
			Transition: d.transition,
			Type:       d.key.String(),
			Valid:      d.order,
			Err:        ErrFlatCompletion,
		}
	}

	return d.dispatch(action.Action{Type: d.key.String(), Payload: payload.Clone()})
}

// Branch returns the completion callback for the named branch. The callback
// dispatches its payload tagged with "<director>:<transition>:<branch>".
// The closure is bound to the dispatch and key at effect-invocation time.
func (d Done) Branch(name string) Completion {
	return func(payload action.Payload) error {
		if _, ok := d.branches[name]; !ok {
			return &DispatchError{
				Director:   d.director,
				Transition: d.transition,
				Type:       d.key.String(),
				Valid:      d.order,
				Err:        ErrUnknownBranch,
			}
		}

		key := keys.MakeSub(d.key.Namespace, d.key.Name, name)

		return d.dispatch(action.Action{Type: key.String(), Payload: payload.Clone()})
	}
}

// Success completes through the conventional "success" branch.
func (d Done) Success(payload action.Payload) error {
	return d.Branch("success")(payload)
}

// Error completes through the conventional "error" branch.
func (d Done) Error(payload action.Payload) error {
	return d.Branch("error")(payload)
}

// newEffect synthesizes the effect creator for an async transition. The
// returned effect captures the payload; the thunk it builds conforms to the
// asynchronous-dispatch middleware convention and wraps the async logic with
// logging, metrics, and a span.
func (d *Director) newEffect(desc *transition) action.Effect {
	return func(payload action.Payload) action.Thunk {
		captured := payload.Clone()

		return func(ctx context.Context, dispatch action.Dispatch, getState action.GetState) error {
			ctx, span := startEffectSpan(ctx, d.name, desc.name)
			defer span.End()

			d.logger.EffectStarted(ctx, d.name, desc.name)
			effectsStarted.WithLabelValues(d.name, desc.name).Inc()

			done := Done{
				director:   d.name,
				transition: desc.name,
				key:        desc.key,
				dispatch:   dispatch,
				branches:   desc.branches,
				order:      desc.order,
			}

			start := time.Now()
			err := desc.async(ctx, done, captured, dispatch, getState)
			elapsed := time.Since(start)

			outcome := outcomeSuccess

			if err != nil {
				outcome = outcomeError

				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "completed")
			}

			effectsCompleted.WithLabelValues(d.name, desc.name, outcome).Inc()
			effectDuration.WithLabelValues(d.name, desc.name, outcome).Observe(elapsed.Seconds())

			d.logger.EffectCompleted(ctx, d.name, desc.name, elapsed, err)

			return err
		}
	}
}
