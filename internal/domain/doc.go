// Package domain defines the core types of the gatesim logic-circuit editor.
//
// This package contains the entities and value objects that make up a circuit:
// placed gate components, their pins, the wires between pins, reusable gate
// templates, and the persisted simulation snapshot.
//
// # Core Types
//
// Component is a placed gate instance. Its pins are derived from the gate
// template at creation time and are never persisted; a component serializes to
// a ComponentState holding only its id, template name, position and scale.
//
// Pin identifies a terminal by (owner id, role, index). Pins carry no pointer
// to their owner, so wires and pins can be rebuilt from flat data.
//
// Wire is a directed edge from an output pin to an input pin, stored as a pair
// of PinRefs. Two wires with the same endpoints are the same wire.
//
// GateTemplate is the named definition a component is instantiated from: pin
// counts, appearance and the activation source text.
//
// Simulation is the persisted form of a whole circuit: component states, wire
// states and the viewport.
//
// # Design Principles
//
// - No storage or presentation dependencies
// - Components reference templates and each other by name or id only
// - Value types wherever the data is copied into serialized state
package domain
