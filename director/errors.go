package director

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors, returned by Construct before any action can be
// created. These are caller bugs: fix the transition table, don't retry.
var (
	// ErrNameRequired indicates that a director name is required.
	ErrNameRequired = errors.New("director name is required")
	// ErrTransitionNameRequired indicates that a transition name is required.
	ErrTransitionNameRequired = errors.New("transition name is required")
	// ErrDuplicateTransition indicates that a transition name was declared twice.
	ErrDuplicateTransition = errors.New("duplicate transition name")
	// ErrEmptyTransition indicates a transition that defines nothing at all.
	ErrEmptyTransition = errors.New("transition defines no reducer and no creator")
	// ErrReduceRequired indicates a transition with a creator but no way to reduce.
	ErrReduceRequired = errors.New("transition requires a reduce function or branches")
	// ErrAmbiguousReduce indicates a transition with both a flat reduce function and branches.
	ErrAmbiguousReduce = errors.New("transition defines both a reduce function and branches")
	// ErrCreateAsyncConflict indicates a transition with both a create and an async function.
	ErrCreateAsyncConflict = errors.New("transition defines both create and async")
	// ErrCreatorRequired indicates a branching transition with no create or async function.
	ErrCreatorRequired = errors.New("branching transition requires create or async")
	// ErrBranchNameRequired indicates that a branch name is required.
	ErrBranchNameRequired = errors.New("branch name is required")
	// ErrBranchReduceRequired indicates that a branch requires a reduce function.
	ErrBranchReduceRequired = errors.New("branch requires a reduce function")
	// ErrDuplicateBranch indicates that a branch name was declared twice.
	ErrDuplicateBranch = errors.New("duplicate branch name")
)

// Dispatch-time errors, raised when the reducer recognizes an action's base
// key but cannot route it within a branching transition.
var (
	// ErrMissingSubKey indicates an action type with no third component where one is required.
	ErrMissingSubKey = errors.New("action type has no sub key")
	// ErrUnknownSubKey indicates an action type whose sub key matches no branch.
	ErrUnknownSubKey = errors.New("unrecognized sub key")
)

// Completion errors, returned by a Done capability used against the shape of
// its transition.
var (
	// ErrFlatCompletion indicates Complete was called on a branching transition.
	ErrFlatCompletion = errors.New("transition completes through branches, not Complete")
	// ErrUnknownBranch indicates a completion callback for a branch that does not exist.
	ErrUnknownBranch = errors.New("transition has no such branch")
)

// ConfigError wraps a construction-time validation failure with the director
// and transition it belongs to. Construct joins one ConfigError per invalid
// transition so a single pass surfaces every problem.
type ConfigError struct {
	Director   string
	Transition string
	Err        error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("director %s: transition %q: %v", e.Director, e.Transition, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DispatchError wraps a dispatch-time routing failure. Valid carries the
// branch names the transition does recognize, in declaration order.
type DispatchError struct {
	Director   string
	Transition string
	Type       string
	Valid      []string
	Err        error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("director %s: transition %q: %v for action type %q (valid sub keys: %s)",
		e.Director, e.Transition, e.Err, e.Type, strings.Join(e.Valid, ", "))
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// wrapConfigError wraps an error with director and transition context.
func wrapConfigError(directorName, transitionName string, err error) error {
	if err == nil {
		return nil
	}

	return &ConfigError{
		Director:   directorName,
		Transition: transitionName,
		Err:        err,
	}
}
