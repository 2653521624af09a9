package service

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrSimulationNotFound is returned when no state is stored under a name
	ErrSimulationNotFound = errors.New("simulation not found")
	// ErrEmptyName is returned for blank simulation names
	ErrEmptyName = errors.New("simulation name is empty")
	// ErrUsage is returned when a command gets the wrong arguments
	ErrUsage = errors.New("usage")
)

// reported marks an error that has already been shown to the user
type reported struct {
	error
}

func (r reported) Unwrap() error {
	return r.error
}

// fail shows err through the notifier once and returns it
func (m *Manager) fail(err error) error {
	if err == nil {
		return nil
	}
	var r reported
	if errors.As(err, &r) {
		return err
	}
	m.logger.Error("operation failed", zap.String("simulation", m.Name()), zap.Error(err))
	m.notifier.Notify(KindError, err.Error())
	return reported{err}
}
