package director

import (
	"fmt"

	"github.com/duxkit/duxkit/action"
	"github.com/duxkit/duxkit/keys"
)

// CreateFunc transforms the caller's payload before the type tag is attached.
// The returned payload is the entire body of the outgoing action: nothing
// from the raw payload survives unless the function carries it over.
type CreateFunc func(payload action.Payload) action.Payload

// Transition describes one named state transition. Exactly one of Reduce or
// Branches must be set; Create and Async are optional and mutually exclusive.
// The three valid shapes are:
//
//   - Reduce only: a direct transition. The synthesized creator echoes the
//     payload it is given, tagged with "<director>:<name>".
//   - Create plus Reduce or Branches: the creator pipes the payload through
//     Create before tagging.
//   - Async plus Reduce or Branches: the transition produces an Effect
//     instead of a Creator; the async function signals completion through a
//     Done capability, which dispatches the tagged result.
//
// Branches require a Create or Async function, since only those shapes can
// produce the sub-keyed action types the branches route on.
type Transition struct {
	// Name is the transition's key within the director. It becomes the
	// second component of the action type and must not contain the key
	// separator.
	Name string

	// Reduce handles every action whose base key matches this transition.
	Reduce action.Reducer

	// Branches route matching actions by their sub key, typically for
	// success/error follow-ups of async work. Declaration order is kept
	// for error reporting.
	Branches []Branch

	// Create transforms the payload at action-creation time.
	Create CreateFunc

	// Async is caller-supplied asynchronous business logic. The framework
	// performs no retry, timeout, or deduplication on its behalf.
	Async AsyncFunc
}

// Branch binds one sub-transition name to its reduce function.
type Branch struct {
	Name   string
	Reduce action.Reducer
}

// validate checks a transition's shape before construction.
func (t Transition) validate() error {
	if t.Name == "" {
		return ErrTransitionNameRequired
	}

	hasReduce := t.Reduce != nil
	hasBranches := len(t.Branches) > 0

	if !hasReduce && !hasBranches {
		if t.Create == nil && t.Async == nil {
			return ErrEmptyTransition
		}

		return ErrReduceRequired
	}

	if hasReduce && hasBranches {
		return ErrAmbiguousReduce
	}

	if t.Create != nil && t.Async != nil {
		return ErrCreateAsyncConflict
	}

	if hasBranches && t.Create == nil && t.Async == nil {
		return ErrCreatorRequired
	}

	seen := make(map[string]bool, len(t.Branches))

	for _, b := range t.Branches {
		if b.Name == "" {
			return ErrBranchNameRequired
		}

		if b.Reduce == nil {
			return fmt.Errorf("%w: %s", ErrBranchReduceRequired, b.Name)
		}

		if seen[b.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateBranch, b.Name)
		}

		seen[b.Name] = true
	}

	return nil
}

// variant tags the shape of a transition. It is resolved once at
// construction so neither the reducer nor the creators inspect shapes at
// dispatch time.
type variant int

const (
	variantDirect variant = iota // bare reducer, echo creator
	variantCreate                // payload-transforming creator
	variantAsync                 // effect creator
)

func (v variant) String() string {
	switch v {
	case variantCreate:
		return "create"
	case variantAsync:
		return "async"
	default:
		return "reduce"
	}
}

// transition is the normalized internal descriptor for one transition: the
// variant tag plus its handler table.
type transition struct {
	name     string
	key      keys.Key
	kind     variant
	create   CreateFunc
	async    AsyncFunc
	reduce   action.Reducer
	branches map[string]action.Reducer
	order    []string
}

// normalize resolves a validated Transition into its descriptor.
func (t Transition) normalize(namespace string) *transition {
	kind := variantDirect

	switch {
	case t.Async != nil:
		kind = variantAsync
	case t.Create != nil:
		kind = variantCreate
	}

	desc := &transition{
		name:   t.Name,
		key:    keys.Make(namespace, t.Name),
		kind:   kind,
		create: t.Create,
		async:  t.Async,
		reduce: t.Reduce,
	}

	if len(t.Branches) > 0 {
		desc.branches = make(map[string]action.Reducer, len(t.Branches))
		desc.order = make([]string, 0, len(t.Branches))

		for _, b := range t.Branches {
			desc.branches[b.Name] = b.Reduce
			desc.order = append(desc.order, b.Name)
		}
	}

	return desc
}
