package network

import (
	"errors"
	"fmt"
)

// ErrUnknownObjective indicates an Objective outside the four known ones.
var ErrUnknownObjective = errors.New("network: unknown objective")

// Kind distinguishes spanning trees from closed tours.
type Kind int

const (
	// Tree is an acyclic spanning network with n-1 edges.
	Tree Kind = iota
	// Tour is a closed loop visiting every node once.
	Tour
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Tour {
		return "tour"
	}

	return "tree"
}

// Objective is one network design goal.
type Objective int

const (
	MaxRidership Objective = iota
	MaxRevenue
	MinTrackLength
	MinTrackLengthLoop
)

var objectiveNames = [...]struct{ title, slug string }{
	MaxRidership:       {"Maximum Ridership", "max-ridership"},
	MaxRevenue:         {"Maximum Revenue", "max-revenue"},
	MinTrackLength:     {"Minimum Track Length", "min-track-length"},
	MinTrackLengthLoop: {"Minimum Track Length Loop", "min-track-length-loop"},
}

// DefaultObjectives returns the four objectives in their canonical order.
func DefaultObjectives() []Objective {
	return []Objective{MaxRidership, MaxRevenue, MinTrackLength, MinTrackLengthLoop}
}

// Valid reports whether o is one of the four known objectives.
func (o Objective) Valid() bool {
	return o >= MaxRidership && o <= MinTrackLengthLoop
}

// String returns the human title, e.g. "Maximum Ridership".
func (o Objective) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Objective(%d)", int(o))
	}

	return objectiveNames[o].title
}

// Slug returns the URL-safe name, e.g. "max-ridership".
func (o Objective) Slug() string {
	if !o.Valid() {
		return fmt.Sprintf("objective-%d", int(o))
	}

	return objectiveNames[o].slug
}

// Kind returns Tour for MinTrackLengthLoop and Tree otherwise.
func (o Objective) Kind() Kind {
	if o == MinTrackLengthLoop {
		return Tour
	}

	return Tree
}

// ParseObjective accepts a slug or a title.
func ParseObjective(s string) (Objective, error) {
	for o := MaxRidership; o <= MinTrackLengthLoop; o++ {
		if s == objectiveNames[o].slug || s == objectiveNames[o].title {
			return o, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownObjective)
}

// MarshalText encodes the slug.
func (o Objective) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%d: %w", int(o), ErrUnknownObjective)
	}

	return []byte(o.Slug()), nil
}

// UnmarshalText decodes a slug or a title.
func (o *Objective) UnmarshalText(b []byte) error {
	v, err := ParseObjective(string(b))
	if err != nil {
		return err
	}
	*o = v

	return nil
}

// MarshalText encodes "tree" or "tour".
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes "tree" or "tour".
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "tree":
		*k = Tree
	case "tour":
		*k = Tour
	default:
		return fmt.Errorf("network: unknown kind %q", b)
	}

	return nil
}
