// Package lifecycle holds the document state machine of one workspace.
//
// Every processing attempt is tagged with a generation token when it begins.
// Complete and Fail apply only when the token still matches the current
// generation, so a response that arrives after Reset is dropped instead of
// overwriting newer state.
package lifecycle

import (
	"sync"
	"time"

	"bridge/internal/domain"
)

// Token identifies one processing attempt.
type Token uint64

// State is a point-in-time copy of the machine.
type State struct {
	Status       domain.LifecycleStatus
	Document     *domain.Document
	Result       *domain.BridgeResult
	ErrorMessage string
	Generation   Token
	UpdatedAt    time.Time
}

// Machine is safe for concurrent use.
type Machine struct {
	mu         sync.RWMutex
	status     domain.LifecycleStatus
	document   *domain.Document
	result     *domain.BridgeResult
	errMessage string
	generation Token
	updatedAt  time.Time
	now        func() time.Time
}

// New returns a machine in the Idle state.
func New() *Machine {
	m := &Machine{status: domain.StatusIdle, now: time.Now}
	m.updatedAt = m.now()
	return m
}

// Begin moves Idle to Processing and returns the attempt's token.
// Any other starting state yields domain.ErrNotIdle.
func (m *Machine) Begin(doc domain.Document) (Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != domain.StatusIdle {
		return 0, domain.ErrNotIdle
	}
	m.generation++
	m.status = domain.StatusProcessing
	m.document = &doc
	m.result = nil
	m.errMessage = ""
	m.updatedAt = m.now()
	return m.generation, nil
}

// Complete moves Processing to Success. It reports false, changing nothing,
// when the token is stale or the machine is not processing.
func (m *Machine) Complete(token Token, result *domain.BridgeResult) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.current(token) {
		return false
	}
	m.status = domain.StatusSuccess
	m.result = result
	m.updatedAt = m.now()
	return true
}

// Fail moves Processing to Error, retaining message and the document.
func (m *Machine) Fail(token Token, message string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.current(token) {
		return false
	}
	m.status = domain.StatusError
	m.errMessage = message
	m.updatedAt = m.now()
	return true
}

// Reset returns to Idle and clears the document, result and error message.
// Resetting while Processing abandons the in-flight attempt.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == domain.StatusProcessing {
		m.generation++
	}
	m.status = domain.StatusIdle
	m.document = nil
	m.result = nil
	m.errMessage = ""
	m.updatedAt = m.now()
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return State{
		Status:       m.status,
		Document:     m.document,
		Result:       m.result,
		ErrorMessage: m.errMessage,
		Generation:   m.generation,
		UpdatedAt:    m.updatedAt,
	}
}

// Status returns the current status.
func (m *Machine) Status() domain.LifecycleStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Machine) current(token Token) bool {
	return m.status == domain.StatusProcessing && token == m.generation
}
