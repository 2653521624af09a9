package domain

import "fmt"

// Wire is a directed connection from an output pin to an input pin.
// Wires hold owner ids only, never component references.
type Wire struct {
	From PinRef `json:"from" yaml:"from"`
	To   PinRef `json:"to" yaml:"to"`
}

// WireState is the persisted form of a Wire. Since wires only hold ids the
// two are the same shape.
type WireState = Wire

// NewWire builds a wire between an output pin and an input pin
func NewWire(from, to Pin) Wire {
	return Wire{From: from.Ref(), To: to.Ref()}
}

// Key identifies the wire by its endpoint pair
func (w Wire) Key() string {
	return fmt.Sprintf("%d:%d->%d:%d", w.From.Owner, w.From.Index, w.To.Owner, w.To.Index)
}

// Touches reports whether either end of the wire belongs to the component
func (w Wire) Touches(componentID int) bool {
	return w.From.Owner == componentID || w.To.Owner == componentID
}

// FeedsInput reports whether the wire ends at the given input pin
func (w Wire) FeedsInput(to PinRef) bool {
	return w.To == to
}
