// Package oauth implements the Google sign-in handshake: a loopback
// callback server, browser hand-off, and an explicit state machine driving
// the whole exchange.
package oauth

import "sync"

// State is the handshake's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateWaitingForCallback
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaitingForCallback:
		return "waiting_for_callback"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventKind enumerates the discrete events that drive the handshake.
type EventKind int

const (
	// EventStarted fires once the callback listener is up and the browser
	// hand-off has begun.
	EventStarted EventKind = iota
	// EventCodeReceived carries the authorization code from the callback.
	EventCodeReceived
	// EventErrorReceived carries an explicit error from the provider.
	EventErrorReceived
	// EventStateMismatch marks a callback whose state nonce does not match
	// ours. Ignored silently: it is not our flow's response.
	EventStateMismatch
	// EventBrowserOpenFailed marks a browser that could not be launched.
	EventBrowserOpenFailed
	// EventTimeout marks the deadline for the user to finish signing in.
	EventTimeout
	// EventCanceled marks caller-initiated cancellation (e.g. Ctrl-C).
	EventCanceled
)

// Event is one input to the state machine.
type Event struct {
	Kind   EventKind
	Code   string // authorization code, for EventCodeReceived
	Reason string // human-readable failure reason
}

// FSM is the handshake state machine. Transitions and their side effects
// (cleanup hooks) are explicit so the whole flow is testable without a
// browser or a real callback server.
//
// One FSM serves one handshake. Starting a second handshake while another
// is in flight creates an independent FSM; flows are not single-flight.
type FSM struct {
	mu       sync.Mutex
	state    State
	code     string
	reason   string
	cleanups []func()
}

// NewFSM returns a machine in the idle state.
func NewFSM() *FSM {
	return &FSM{state: StateIdle}
}

// OnCleanup registers a hook to run exactly once when the machine settles,
// regardless of outcome: stop timers, close the listener, and so on.
// Registering on an already-settled machine runs the hook immediately.
func (f *FSM) OnCleanup(fn func()) {
	f.mu.Lock()
	settled := f.state == StateSucceeded || f.state == StateFailed
	if !settled {
		f.cleanups = append(f.cleanups, fn)
	}
	f.mu.Unlock()
	if settled {
		fn()
	}
}

// Apply feeds one event to the machine and returns the resulting state.
// Events that have no transition from the current state are ignored, which
// also makes every event a no-op after settlement.
func (f *FSM) Apply(ev Event) State {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateIdle:
		if ev.Kind == EventStarted {
			f.state = StateWaitingForCallback
		}
	case StateWaitingForCallback:
		switch ev.Kind {
		case EventCodeReceived:
			f.code = ev.Code
			f.settle(StateSucceeded)
		case EventErrorReceived:
			f.fail(ev.Reason, "the provider reported an error")
		case EventBrowserOpenFailed:
			f.fail(ev.Reason, "could not open a browser")
		case EventTimeout:
			f.fail(ev.Reason, "timed out waiting for sign-in")
		case EventCanceled:
			f.fail(ev.Reason, "sign-in was canceled")
		case EventStateMismatch:
			// Not our callback; keep waiting.
		}
	case StateSucceeded, StateFailed:
		// Settled; nothing more can happen.
	}

	return f.state
}

func (f *FSM) fail(reason, fallback string) {
	if reason == "" {
		reason = fallback
	}
	f.reason = reason
	f.settle(StateFailed)
}

// settle moves to a terminal state and runs the cleanup hooks once.
// Callers hold f.mu.
func (f *FSM) settle(s State) {
	f.state = s
	hooks := f.cleanups
	f.cleanups = nil
	for _, fn := range hooks {
		fn()
	}
}

// State returns the current state.
func (f *FSM) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Code returns the authorization code after a successful settlement.
func (f *FSM) Code() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code
}

// FailureReason returns the human-readable reason after a failed settlement.
func (f *FSM) FailureReason() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reason
}

// Settled reports whether the machine reached a terminal state.
func (f *FSM) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateSucceeded || f.state == StateFailed
}
