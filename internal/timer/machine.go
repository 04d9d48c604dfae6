package timer

import (
	"context"
	"sync"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

const DefaultDurationMinutes = 25

// Machine is the countdown state machine for a single user. The tick loop
// that drives it is owned here: pause and reset cancel it as a transition
// action, never as a side effect of anything else.
type Machine struct {
	// startMu serializes start transitions. Starting spans a session insert
	// between the state check and the transition, so mu alone cannot keep
	// two concurrent starts from both observing Idle.
	startMu sync.Mutex

	mu sync.Mutex

	userID    uint64
	state     State
	duration  int // seconds
	remaining int // seconds
	sessionID uint64
	taskName  string

	fired  bool // completion side effects ran
	cancel context.CancelFunc
}

// Snapshot is the externally visible timer state.
type Snapshot struct {
	State            State  `json:"state"`
	Minutes          int    `json:"minutes"`
	Seconds          int    `json:"seconds"`
	RemainingSeconds int    `json:"remaining_seconds"`
	DurationMinutes  int    `json:"duration_minutes"`
	TaskName         string `json:"task_name"`
	SessionID        uint64 `json:"session_id,omitempty"`
}

func NewMachine(userID uint64) *Machine {
	return &Machine{
		userID:    userID,
		state:     StateIdle,
		duration:  DefaultDurationMinutes * 60,
		remaining: DefaultDurationMinutes * 60,
	}
}

// begin moves Idle or Completed into Running with a fresh session.
func (m *Machine) begin(sessionID uint64, durationMinutes int, taskName string, cancel context.CancelFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateRunning
	m.duration = durationMinutes * 60
	m.remaining = m.duration
	m.sessionID = sessionID
	m.taskName = taskName
	m.fired = false
	m.cancel = cancel
}

// resume moves Paused back to Running without touching the elapsed time or
// the session reference.
func (m *Machine) resume(cancel context.CancelFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateRunning
	m.cancel = cancel
}

// Pause suspends the countdown. Only valid from Running.
func (m *Machine) Pause() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRunning {
		return false
	}
	m.stopTicking()
	m.state = StatePaused
	return true
}

// Reset returns to Idle with the default duration from any state. The
// session reference is dropped; the underlying row is not mutated.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTicking()
	m.state = StateIdle
	m.duration = DefaultDurationMinutes * 60
	m.remaining = m.duration
	m.sessionID = 0
	m.taskName = ""
	m.fired = false
}

// Tick advances the countdown by one second. It reports true exactly once,
// on the tick that reaches zero; the caller runs the completion side
// effects. The remainder never goes negative.
func (m *Machine) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRunning {
		return false
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining > 0 {
		return false
	}
	m.stopTicking()
	m.state = StateCompleted
	if m.fired {
		return false
	}
	m.fired = true
	return true
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:            m.state,
		Minutes:          m.remaining / 60,
		Seconds:          m.remaining % 60,
		RemainingSeconds: m.remaining,
		DurationMinutes:  m.duration / 60,
		TaskName:         m.taskName,
		SessionID:        m.sessionID,
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) SessionID() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// stopTicking cancels the tick loop. Caller holds m.mu.
func (m *Machine) stopTicking() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
