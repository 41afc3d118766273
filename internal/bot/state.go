package bot

import "sync"

// State is what the controller expects next from a given user.
type State int

const (
	// Idle means no multi-turn interaction is in flight.
	Idle State = iota
	// AwaitingTicker means the next text message is treated as a ticker.
	AwaitingTicker
	// AwaitingCalculator means the next text message is a calculator payload.
	AwaitingCalculator
)

// session is the per-user conversation record. Created on first event,
// lives for the process lifetime, lost on restart. The mutex serializes
// events from the same user: two rapid submissions run in arrival order
// instead of interleaving through the state machine.
type session struct {
	mu    sync.Mutex
	state State
}
