package director

import "gopkg.in/yaml.v3"

// Descriptor is a serializable summary of a director's transition table,
// for debugging and documentation.
type Descriptor struct {
	Name        string                 `json:"name"        yaml:"name"`
	Transitions []TransitionDescriptor `json:"transitions" yaml:"transitions"`
}

// TransitionDescriptor describes one transition: its kind ("reduce",
// "create", or "async"), the action type it produces or handles, and its
// branch names in declaration order.
type TransitionDescriptor struct {
	Name     string   `json:"name"               yaml:"name"`
	Kind     string   `json:"kind"               yaml:"kind"`
	Type     string   `json:"type"               yaml:"type"`
	Branches []string `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// Describe returns a descriptor of the director in declaration order.
func (d *Director) Describe() Descriptor {
	desc := Descriptor{
		Name:        d.name,
		Transitions: make([]TransitionDescriptor, 0, len(d.transitions)),
	}

	for _, t := range d.transitions {
		desc.Transitions = append(desc.Transitions, TransitionDescriptor{
			Name:     t.name,
			Kind:     t.kind.String(),
			Type:     t.key.String(),
			Branches: t.order,
		})
	}

	return desc
}

// YAML renders the descriptor as YAML.
func (d Descriptor) YAML() (string, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
