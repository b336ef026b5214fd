package director

import "github.com/duxkit/duxkit/action"

// Builder provides a fluent API for assembling a director's transition
// table. It is sugar over Construct; validation still happens in Build.
type Builder struct {
	name        string
	transitions []Transition
	opts        []Option
}

// NewBuilder creates a builder for a director with the given namespace.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Reduce adds a direct transition: a bare reduce function whose creator
// echoes the payload it is given.
func (b *Builder) Reduce(name string, reduce action.Reducer) *Builder {
	b.transitions = append(b.transitions, Transition{Name: name, Reduce: reduce})

	return b
}

// Create adds a transition whose creator pipes the payload through create
// before tagging.
func (b *Builder) Create(name string, create CreateFunc, reduce action.Reducer) *Builder {
	b.transitions = append(b.transitions, Transition{Name: name, Create: create, Reduce: reduce})

	return b
}

// CreateBranches adds a payload-transforming transition with a branching
// reduce table.
func (b *Builder) CreateBranches(name string, create CreateFunc, branches ...Branch) *Builder {
	b.transitions = append(b.transitions, Transition{Name: name, Create: create, Branches: branches})

	return b
}

// Async adds an async transition with a flat reduce function; its Done
// completes through Complete.
func (b *Builder) Async(name string, async AsyncFunc, reduce action.Reducer) *Builder {
	b.transitions = append(b.transitions, Transition{Name: name, Async: async, Reduce: reduce})

	return b
}

// AsyncBranches adds an async transition with a branching reduce table; its
// Done completes through Branch (or the Success/Error shorthands).
func (b *Builder) AsyncBranches(name string, async AsyncFunc, branches ...Branch) *Builder {
	b.transitions = append(b.transitions, Transition{Name: name, Async: async, Branches: branches})

	return b
}

// WithOptions appends construction options applied in Build.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)

	return b
}

// Build constructs the director.
func (b *Builder) Build() (*Director, error) {
	return Construct(b.name, b.transitions, b.opts...)
}
