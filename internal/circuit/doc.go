// Package circuit implements the live circuit model: the component graph and
// the wire resolution engine.
//
// Graph owns the placed components in render order together with an id index.
// WireManager owns the wires and the two pending slots of a connection being
// drawn. Wires refer to components by id only and are looked up through the
// graph, so both halves can be rebuilt from flat serialized state.
//
// Neither type is safe for concurrent use; the editor mutates them from one
// event loop.
package circuit
