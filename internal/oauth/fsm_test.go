package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartMovesToWaiting(t *testing.T) {
	fsm := NewFSM()
	assert.Equal(t, StateIdle, fsm.State())

	fsm.Apply(Event{Kind: EventStarted})
	assert.Equal(t, StateWaitingForCallback, fsm.State())
	assert.False(t, fsm.Settled())
}

func TestCodeReceivedSucceeds(t *testing.T) {
	fsm := NewFSM()
	fsm.Apply(Event{Kind: EventStarted})

	fsm.Apply(Event{Kind: EventCodeReceived, Code: "auth-code"})

	assert.Equal(t, StateSucceeded, fsm.State())
	assert.Equal(t, "auth-code", fsm.Code())
	assert.True(t, fsm.Settled())
}

func TestStateMismatchIsIgnored(t *testing.T) {
	fsm := NewFSM()
	fsm.Apply(Event{Kind: EventStarted})

	fsm.Apply(Event{Kind: EventStateMismatch})

	// Still waiting: a stray callback must neither succeed nor fail the flow.
	assert.Equal(t, StateWaitingForCallback, fsm.State())
	assert.False(t, fsm.Settled())

	// The real callback can still land afterwards.
	fsm.Apply(Event{Kind: EventCodeReceived, Code: "real-code"})
	assert.Equal(t, StateSucceeded, fsm.State())
	assert.Equal(t, "real-code", fsm.Code())
}

func TestErrorReceivedFailsWithProviderReason(t *testing.T) {
	fsm := NewFSM()
	fsm.Apply(Event{Kind: EventStarted})

	fsm.Apply(Event{Kind: EventErrorReceived, Reason: "access_denied"})

	assert.Equal(t, StateFailed, fsm.State())
	assert.Equal(t, "access_denied", fsm.FailureReason())
}

func TestFailureReasonsAreDistinct(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want string
	}{
		{"browser open failed", Event{Kind: EventBrowserOpenFailed}, "could not open a browser"},
		{"timeout", Event{Kind: EventTimeout}, "timed out waiting for sign-in"},
		{"canceled", Event{Kind: EventCanceled}, "sign-in was canceled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsm := NewFSM()
			fsm.Apply(Event{Kind: EventStarted})
			fsm.Apply(tc.ev)
			assert.Equal(t, StateFailed, fsm.State())
			assert.Equal(t, tc.want, fsm.FailureReason())
		})
	}
}

func TestEventsAfterSettlementAreIgnored(t *testing.T) {
	fsm := NewFSM()
	fsm.Apply(Event{Kind: EventStarted})
	fsm.Apply(Event{Kind: EventErrorReceived, Reason: "access_denied"})

	fsm.Apply(Event{Kind: EventCodeReceived, Code: "late-code"})

	assert.Equal(t, StateFailed, fsm.State())
	assert.Empty(t, fsm.Code())
	assert.Equal(t, "access_denied", fsm.FailureReason())
}

func TestEventsBeforeStartAreIgnored(t *testing.T) {
	fsm := NewFSM()
	fsm.Apply(Event{Kind: EventCodeReceived, Code: "early"})
	assert.Equal(t, StateIdle, fsm.State())
	assert.Empty(t, fsm.Code())
}

func TestCleanupRunsExactlyOnceOnSettlement(t *testing.T) {
	fsm := NewFSM()
	var calls int
	fsm.OnCleanup(func() { calls++ })
	fsm.Apply(Event{Kind: EventStarted})
	assert.Zero(t, calls)

	fsm.Apply(Event{Kind: EventTimeout})
	assert.Equal(t, 1, calls)

	// Further events must not re-run hooks.
	fsm.Apply(Event{Kind: EventErrorReceived, Reason: "late"})
	assert.Equal(t, 1, calls)
}

func TestCleanupRunsOnSuccessToo(t *testing.T) {
	fsm := NewFSM()
	var calls int
	fsm.OnCleanup(func() { calls++ })
	fsm.Apply(Event{Kind: EventStarted})
	fsm.Apply(Event{Kind: EventCodeReceived, Code: "c"})
	assert.Equal(t, 1, calls)
}
