package director_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duxkit/duxkit/action"
	"github.com/duxkit/duxkit/director"
)

// capture collects dispatched actions for assertions.
type capture struct {
	actions []action.Action
}

func (c *capture) dispatch(act action.Action) error {
	c.actions = append(c.actions, act)

	return nil
}

func TestFlatAsyncCompletion(t *testing.T) {
	t.Parallel()

	d, err := director.Construct("calc", []director.Transition{
		{
			Name: "load",
			Async: func(
				_ context.Context,
				done director.Done,
				payload action.Payload,
				_ action.Dispatch,
				_ action.GetState,
			) error {
				return done.Complete(action.Payload{"value": payload["input"]})
			},
			Reduce: func(state action.State, act action.Action) (action.State, error) {
				next := state.Clone()
				next["value"] = act.Field("value")

				return next, nil
			},
		},
	})
	require.NoError(t, err)

	load, ok := d.Effect("load")
	require.True(t, ok)

	sink := &capture{}
	thunk := load(action.Payload{"input": 42})

	err = thunk(context.Background(), sink.dispatch, func() action.State { return nil })
	require.NoError(t, err)

	require.Len(t, sink.actions, 1)
	assert.Equal(t, action.Action{
		Type:    "calc:load",
		Payload: action.Payload{"value": 42},
	}, sink.actions[0])

	// Reducing the completion transforms state the same as a direct call.
	state, err := d.Reducer()(action.State{}, sink.actions[0])
	require.NoError(t, err)
	assert.Equal(t, action.State{"value": 42}, state)
}

func TestBranchingAsyncCompletion(t *testing.T) {
	t.Parallel()

	record := func(field string) action.Reducer {
		return func(state action.State, act action.Action) (action.State, error) {
			next := state.Clone()
			next[field] = act.Field("payload")

			return next, nil
		}
	}

	d, err := director.Construct("user", []director.Transition{
		{
			Name: "save",
			Async: func(
				_ context.Context,
				done director.Done,
				payload action.Payload,
				_ action.Dispatch,
				_ action.GetState,
			) error {
				if payload["fail"] == true {
					return done.Error(action.Payload{"payload": "denied"})
				}

				return done.Success(action.Payload{"payload": "saved"})
			},
			Branches: []director.Branch{
				{Name: "success", Reduce: record("ok")},
				{Name: "error", Reduce: record("err")},
			},
		},
	})
	require.NoError(t, err)

	save, _ := d.Effect("save")
	sink := &capture{}

	err = save(nil)(context.Background(), sink.dispatch, func() action.State { return nil })
	require.NoError(t, err)
	require.Len(t, sink.actions, 1)
	assert.Equal(t, "user:save:success", sink.actions[0].Type)

	err = save(action.Payload{"fail": true})(context.Background(), sink.dispatch, func() action.State { return nil })
	require.NoError(t, err)
	require.Len(t, sink.actions, 2)
	assert.Equal(t, "user:save:error", sink.actions[1].Type)

	state, err := d.Reducer()(action.State{}, sink.actions[0])
	require.NoError(t, err)
	assert.Equal(t, action.State{"ok": "saved"}, state)
}

func TestAsyncReceivesPayloadDispatchAndState(t *testing.T) {
	t.Parallel()

	var (
		seenPayload action.Payload
		seenState   action.State
	)

	d, err := director.Construct("probe", []director.Transition{
		{
			Name: "run",
			Async: func(
				_ context.Context,
				done director.Done,
				payload action.Payload,
				dispatch action.Dispatch,
				getState action.GetState,
			) error {
				seenPayload = payload
				seenState = getState()

				// Async logic may dispatch additional actions directly.
				if err := dispatch(action.Action{Type: "other:ping"}); err != nil {
					return err
				}

				return done.Complete(nil)
			},
			Reduce: func(state action.State, _ action.Action) (action.State, error) {
				return state, nil
			},
		},
	})
	require.NoError(t, err)

	run, _ := d.Effect("run")
	sink := &capture{}

	err = run(action.Payload{"id": "p-1"})(
		context.Background(),
		sink.dispatch,
		func() action.State { return action.State{"ready": true} },
	)
	require.NoError(t, err)

	assert.Equal(t, action.Payload{"id": "p-1"}, seenPayload)
	assert.Equal(t, action.State{"ready": true}, seenState)

	require.Len(t, sink.actions, 2)
	assert.Equal(t, "other:ping", sink.actions[0].Type)
	assert.Equal(t, "probe:run", sink.actions[1].Type)
}

func TestCompleteOnBranchingTransitionFails(t *testing.T) {
	t.Parallel()

	passthrough := func(state action.State, _ action.Action) (action.State, error) { return state, nil }

	d, err := director.Construct("d", []director.Transition{
		{
			Name: "foo",
			Async: func(
				_ context.Context,
				done director.Done,
				_ action.Payload,
				_ action.Dispatch,
				_ action.GetState,
			) error {
				return done.Complete(nil)
			},
			Branches: []director.Branch{{Name: "ok", Reduce: passthrough}},
		},
	})
	require.NoError(t, err)

	foo, _ := d.Effect("foo")

	err = foo(nil)(context.Background(), (&capture{}).dispatch, func() action.State { return nil })
	require.ErrorIs(t, err, director.ErrFlatCompletion)

	var dispatchErr *director.DispatchError

	require.ErrorAs(t, err, &dispatchErr)
	assert.Equal(t, []string{"ok"}, dispatchErr.Valid)
}

func TestUnknownBranchCompletionFails(t *testing.T) {
	t.Parallel()

	passthrough := func(state action.State, _ action.Action) (action.State, error) { return state, nil }

	d, err := director.Construct("d", []director.Transition{
		{
			Name: "foo",
			Async: func(
				_ context.Context,
				done director.Done,
				_ action.Payload,
				_ action.Dispatch,
				_ action.GetState,
			) error {
				return done.Branch("nope")(nil)
			},
			Branches: []director.Branch{{Name: "ok", Reduce: passthrough}},
		},
	})
	require.NoError(t, err)

	foo, _ := d.Effect("foo")

	err = foo(nil)(context.Background(), (&capture{}).dispatch, func() action.State { return nil })
	require.ErrorIs(t, err, director.ErrUnknownBranch)
}

func TestEffectPropagatesAsyncError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	d, err := director.Construct("d", []director.Transition{
		{
			Name: "explode",
			Async: func(
				_ context.Context,
				_ director.Done,
				_ action.Payload,
				_ action.Dispatch,
				_ action.GetState,
			) error {
				return errBoom
			},
			Reduce: func(state action.State, _ action.Action) (action.State, error) {
				return state, nil
			},
		},
	}, director.WithLogger(director.NewSlogLogger(slogt.New(t))))
	require.NoError(t, err)

	explode, _ := d.Effect("explode")

	err = explode(nil)(context.Background(), (&capture{}).dispatch, func() action.State { return nil })
	require.ErrorIs(t, err, errBoom)
}

func TestEffectCapturesPayloadAtCreation(t *testing.T) {
	t.Parallel()

	d, err := director.Construct("d", []director.Transition{
		{
			Name: "echo",
			Async: func(
				_ context.Context,
				done director.Done,
				payload action.Payload,
				_ action.Dispatch,
				_ action.GetState,
			) error {
				return done.Complete(payload)
			},
			Reduce: func(state action.State, _ action.Action) (action.State, error) {
				return state, nil
			},
		},
	})
	require.NoError(t, err)

	echo, _ := d.Effect("echo")

	payload := action.Payload{"n": 1}
	thunk := echo(payload)

	// Mutations after effect creation are not observed by the thunk.
	payload["n"] = 2

	sink := &capture{}
	require.NoError(t, thunk(context.Background(), sink.dispatch, func() action.State { return nil }))
	require.Len(t, sink.actions, 1)
	assert.Equal(t, 1, sink.actions[0].Field("n"))
}
