package store

import "errors"

var (
	// ErrReducerRequired occurs when a store is created without a reducer.
	ErrReducerRequired = errors.New("a reducer is required")

	// ErrNoWorkerPool occurs when Go is called on a store built without workers.
	ErrNoWorkerPool = errors.New("store has no worker pool")

	// ErrNilThunk occurs when Run or Go is given a nil thunk.
	ErrNilThunk = errors.New("thunk must not be nil")
)
