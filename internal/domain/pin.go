package domain

import "fmt"

// PinRole distinguishes the two kinds of terminal on a component
type PinRole string

const (
	PinInput  PinRole = "input"
	PinOutput PinRole = "output"
)

// Pin is a terminal of a component. It has no identity beyond its owner id,
// role and index within the owner's pins of that role.
type Pin struct {
	Owner int     `json:"owner"`
	Role  PinRole `json:"role"`
	Index int     `json:"index"`
}

// NewPins creates count pins of the given role for the component owner
func NewPins(owner int, role PinRole, count int) []Pin {
	if count < 0 {
		count = 0
	}
	pins := make([]Pin, count)
	for i := range pins {
		pins[i] = Pin{Owner: owner, Role: role, Index: i}
	}
	return pins
}

// Ref returns the serializable reference to this pin
func (p Pin) Ref() PinRef {
	return PinRef{Owner: p.Owner, Index: p.Index}
}

func (p Pin) String() string {
	return fmt.Sprintf("%d.%s[%d]", p.Owner, p.Role, p.Index)
}

// PinRef addresses a pin by owner id and index; the role is implied by which
// end of a wire it sits on.
type PinRef struct {
	Owner int `json:"owner" yaml:"owner"`
	Index int `json:"index" yaml:"index"`
}
