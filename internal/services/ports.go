// Package services applies user intents to the store and mirrors the result
// to the remote endpoint. Services are the only mutators of persisted state;
// every operation re-reads the state, mutates a copy and writes the whole
// thing back.
package services

// Pusher is the outbound sync port. Implementations send asynchronously and
// never report remote-side success or failure.
type Pusher interface {
	Push(action string, data any)
}

// NopPusher disables mirroring, for tests and offline use.
type NopPusher struct{}

func (NopPusher) Push(string, any) {}
