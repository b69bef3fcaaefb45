package game

import "time"

// Sink delivers server messages to one connected player. Implementations
// must not block; the room lock is held while messages are queued.
type Sink interface {
	Send(msg ServerMessage)
}

// PeriodicTickerChannelCreator abstracts time.Ticker so the game clock
// can be driven from tests.
type PeriodicTickerChannelCreator interface {
	Create(d time.Duration) <-chan time.Time
}
