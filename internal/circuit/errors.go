package circuit

import "errors"

var (
	// ErrIncompleteConnection is returned when a resolution is attempted with an empty slot
	ErrIncompleteConnection = errors.New("connection needs both a start and an end pin")
	// ErrSelfLoop is returned when both pins belong to the same component
	ErrSelfLoop = errors.New("cannot wire a component to itself")
	// ErrRoleMismatch is returned when both pins are inputs or both are outputs
	ErrRoleMismatch = errors.New("a wire must connect an output pin to an input pin")
	// ErrUnknownComponent is returned when an id is not in the graph
	ErrUnknownComponent = errors.New("unknown component")
	// ErrPinOutOfRange is returned when a pin index does not exist on its component
	ErrPinOutOfRange = errors.New("pin index out of range")
	// ErrTemplateNotFound is returned when a component references a missing template
	ErrTemplateNotFound = errors.New("gate template not found")
)
