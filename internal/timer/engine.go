package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"focustube/internal/apperr"
	"focustube/internal/ledger"
)

// Engine holds one machine per user and drives the running ones with a
// one-second ticker each. Every tick loop hangs off the engine's base
// context, so shutting the engine down cancels them all.
type Engine struct {
	Sessions *Service
	Ledger   *ledger.Service
	Logger   *slog.Logger

	baseCtx context.Context

	mu       sync.Mutex
	machines map[uint64]*Machine
}

type StartInput struct {
	DurationMinutes int
	TaskName        string
}

func NewEngine(ctx context.Context, sessions *Service, ledgerSvc *ledger.Service, logger *slog.Logger) *Engine {
	return &Engine{
		Sessions: sessions,
		Ledger:   ledgerSvc,
		Logger:   logger,
		baseCtx:  ctx,
		machines: make(map[uint64]*Machine),
	}
}

func (e *Engine) machine(userID uint64) *Machine {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.machines[userID]
	if !ok {
		m = NewMachine(userID)
		e.machines[userID] = m
	}
	return m
}

// Start begins a new countdown from Idle (creating a session row) or
// resumes a paused one (reusing the existing session). Starting an already
// running timer is a conflict.
func (e *Engine) Start(ctx context.Context, userID uint64, in StartInput) (Snapshot, error) {
	m := e.machine(userID)
	m.startMu.Lock()
	defer m.startMu.Unlock()

	switch m.State() {
	case StateRunning:
		return Snapshot{}, fmt.Errorf("%w: timer already running", apperr.ErrConflict)

	case StatePaused:
		tickCtx, cancel := context.WithCancel(e.baseCtx)
		m.resume(cancel)
		go e.runTicker(tickCtx, m)
		return m.Snapshot(), nil

	default: // Idle or Completed
		minutes := in.DurationMinutes
		if minutes <= 0 {
			minutes = DefaultDurationMinutes
		}
		sess, err := e.Sessions.CreateSession(ctx, userID, minutes, in.TaskName)
		if err != nil {
			return Snapshot{}, err
		}

		tickCtx, cancel := context.WithCancel(e.baseCtx)
		m.begin(sess.ID, minutes, sess.TaskName, cancel)
		go e.runTicker(tickCtx, m)
		return m.Snapshot(), nil
	}
}

func (e *Engine) Pause(userID uint64) (Snapshot, error) {
	m := e.machine(userID)
	if !m.Pause() {
		return Snapshot{}, fmt.Errorf("%w: timer is not running", apperr.ErrConflict)
	}
	return m.Snapshot(), nil
}

func (e *Engine) Reset(userID uint64) Snapshot {
	m := e.machine(userID)
	m.Reset()
	return m.Snapshot()
}

func (e *Engine) State(userID uint64) Snapshot {
	return e.machine(userID).Snapshot()
}

func (e *Engine) runTicker(ctx context.Context, m *Machine) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.Tick() {
				e.complete(m)
				return
			}
		}
	}
}

// complete runs the completion side effects: mark the session done, then
// award the focus bonus through the shared ledger. The machine guarantees
// this is reached at most once per session; the idempotency key keyed to
// the session id keeps the award single even across process retries.
func (e *Engine) complete(m *Machine) {
	sessionID := m.SessionID()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Sessions.CompleteSession(ctx, sessionID); err != nil {
		e.Logger.Error("failed to mark session completed",
			slog.Uint64("session_id", sessionID),
			slog.Any("error", err))
		return
	}

	idem := fmt.Sprintf("pomodoro:%d", sessionID)
	if _, err := e.Ledger.Award(ctx, m.userID, ledger.AwardInput{
		Action: ledger.ActionPomodoroCompleted,
		Points: ledger.PointsPomodoroCompleted,
		Achievement: &ledger.AchievementInput{
			Type:        "pomodoro",
			Name:        "Focus Master",
			Description: "Completed a Pomodoro session",
		},
		IdemKey: &idem,
	}); err != nil {
		e.Logger.Error("session completed but award failed",
			slog.Uint64("session_id", sessionID),
			slog.Any("error", err))
		return
	}

	e.Logger.Info("pomodoro completed",
		slog.Uint64("user_id", m.userID),
		slog.Uint64("session_id", sessionID))
}
