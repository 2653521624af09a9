package service

import (
	"encoding/json"

	"gatesim/internal/domain"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint identifies a simulation state
type Fingerprint [blake2b.Size256]byte

func fingerprint(sim domain.Simulation) Fingerprint {
	data, err := json.Marshal(sim)
	if err != nil {
		return Fingerprint{}
	}
	return blake2b.Sum256(data)
}

// markClean records sim as the last saved or loaded state
func (m *Manager) markClean(sim domain.Simulation) {
	m.saved = fingerprint(sim)
}

// Dirty reports whether the canvas changed since the last save or load
func (m *Manager) Dirty() bool {
	return fingerprint(m.State()) != m.saved
}
