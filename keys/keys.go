// Package keys implements the composite type keys that tag actions: two or
// three name components joined by a fixed separator, as in "account:login" or
// "account:login:success". The first component is a director's namespace, the
// second a transition name, and the optional third a branch (sub-transition)
// name. The absent third component is a distinct state, not an empty string.
package keys

import (
	"strings"

	"github.com/duxkit/duxkit/optional"
)

// Separator joins the components of a composite key. It is fixed and never
// escaped: namespace, transition, and branch names must not contain it.
// Construction does not validate this; callers own choosing safe names.
const Separator = ":"

// Key identifies a transition, and optionally one of its branches, within a
// director namespace. Keys are small immutable values; compare them with
// SameBase or by their String form.
type Key struct {
	Namespace string
	Name      string
	sub       optional.Value[string]
}

// Make builds the two-component key for a transition.
func Make(namespace, name string) Key {
	return Key{Namespace: namespace, Name: name}
}

// MakeSub builds the three-component key for one branch of a transition.
func MakeSub(namespace, name, sub string) Key {
	return Key{Namespace: namespace, Name: name, sub: optional.Some(sub)}
}

// Parse decodes an action type string into a Key. The first component becomes
// the namespace, the second the transition name, and the third (when present)
// the branch name. Components past the third are discarded, matching the
// historical split-then-index decoding.
func Parse(typ string) Key {
	parts := strings.Split(typ, Separator)

	key := Key{Namespace: parts[0]}

	if len(parts) > 1 {
		key.Name = parts[1]
	}

	if len(parts) > 2 {
		key.sub = optional.Some(parts[2])
	}

	return key
}

// Sub returns the branch component and whether it is present.
func (k Key) Sub() (string, bool) {
	return k.sub.Get()
}

// HasSub returns true if the key carries a branch component.
func (k Key) HasSub() bool {
	return k.sub.NonEmpty()
}

// Base returns the namespace and transition components joined by the
// separator, dropping any branch component. A key parsed from a
// single-component type string yields just that component, so it can never
// collide with a real transition base key.
func (k Key) Base() string {
	if k.Name == "" {
		return k.Namespace
	}

	return k.Namespace + Separator + k.Name
}

// SameBase reports whether two keys address the same transition.
func (k Key) SameBase(other Key) bool {
	return k.Base() == other.Base()
}

// String encodes the key back into an action type string.
func (k Key) String() string {
	if sub, ok := k.sub.Get(); ok {
		return k.Base() + Separator + sub
	}

	return k.Base()
}
