package game

import (
	"time"

	"github.com/rs/zerolog/log"
)

// RunClock is the game clock: a fixed-period sweep across every active
// room, ending games whose time window has closed or whose roster no
// longer sustains play. This is the only code path that ends a game on
// time alone. Blocks until stop is closed, so run it on its own
// goroutine.
func (s *Service) RunClock(tickerCreator PeriodicTickerChannelCreator, stop <-chan struct{}) {
	ticks := tickerCreator.Create(s.tuning.SweepInterval)
	for {
		select {
		case <-stop:
			return
		case now := <-ticks:
			s.Sweep(now)
		}
	}
}

// Sweep runs one clock pass. Each room's lock is taken before its phase
// or timer is inspected, so a sweep never races a player action.
func (s *Service) Sweep(now time.Time) {
	s.locker.RLock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.locker.RUnlock()

	for _, room := range rooms {
		room.mu.Lock()
		if room.checkEnd(now) {
			log.Info().Str("room", room.id).Str("reason", string(room.timer.Reason)).Msg("game ended")
			room.broadcastState()
		}
		room.mu.Unlock()
	}
}
