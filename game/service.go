package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Service is the room registry: it owns every active room, allocates
// ids, and serializes all room mutation behind each room's lock.
// Cross-room operations run fully in parallel.
type Service struct {
	locker sync.RWMutex
	rooms  map[string]*Room
	idGen  Idgen
	tuning Tuning

	now     func() time.Time
	rngIntn func(n int) int
}

func NewService() *Service {
	return &Service{
		rooms:   make(map[string]*Room),
		idGen:   NewIdGen(),
		tuning:  DefaultTuning(),
		now:     time.Now,
		rngIntn: rand.Intn,
	}
}

func (s *Service) room(roomID string) *Room {
	s.locker.RLock()
	defer s.locker.RUnlock()
	return s.rooms[roomID]
}

// RoomCount reports how many rooms are currently alive.
func (s *Service) RoomCount() int {
	s.locker.RLock()
	defer s.locker.RUnlock()
	return len(s.rooms)
}

// CreateRoom opens a new room with the caller as host and sole member.
func (s *Service) CreateRoom(playerID, name string, sink Sink) *Room {
	roomID := s.idGen.Generate()
	room := NewRoom(roomID, s.tuning, s.rngIntn)
	player := NewPlayer(playerID, name, sink)

	s.locker.Lock()
	s.rooms[roomID] = room
	s.locker.Unlock()

	room.mu.Lock()
	room.addPlayer(player, s.now())
	player.send(ServerMessage{Type: msgConnected, Data: map[string]string{
		"playerId": playerID,
		"roomId":   roomID,
	}})
	room.broadcastState()
	room.mu.Unlock()

	log.Info().Str("room", roomID).Str("player", playerID).Msg("room created")
	return room
}

// JoinRoom adds the caller to an existing lobby. Missing rooms and
// rooms past the lobby phase are reported back to the caller; these
// are the only actions that surface room-level errors.
func (s *Service) JoinRoom(roomID, playerID, name string, sink Sink) error {
	room := s.room(roomID)
	if room == nil {
		return ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.phase != PHASE_LOBBY {
		return ErrRoomNotJoinable
	}
	player := NewPlayer(playerID, name, sink)
	room.addPlayer(player, s.now())
	player.send(ServerMessage{Type: msgConnected, Data: map[string]string{
		"playerId": playerID,
		"roomId":   roomID,
	}})
	room.broadcastState()
	log.Info().Str("room", roomID).Str("player", playerID).Int("players", len(room.players)).Msg("player joined")
	return nil
}

// Leave removes the caller from their room. The last departure tears
// the room down; a departing host hands the room to the
// longest-tenured remaining member. Disconnects land here too.
func (s *Service) Leave(roomID, playerID string) {
	room := s.room(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	empty := room.removePlayer(playerID)
	if !empty {
		room.broadcastState()
	}
	room.mu.Unlock()

	if empty {
		s.locker.Lock()
		delete(s.rooms, roomID)
		s.locker.Unlock()
		s.idGen.Dispose(roomID)
		log.Info().Str("room", roomID).Msg("room torn down")
		return
	}
	log.Info().Str("room", roomID).Str("player", playerID).Msg("player left")
}

// UpdateSettings applies a host's partial patch. Non-host and off-phase
// calls are silently dropped.
func (s *Service) UpdateSettings(roomID, callerID string, patch SettingsPatch) {
	room := s.room(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.applySettings(callerID, patch) {
		room.broadcastState()
	}
}

// AssignColor records the color a player wears. Host-only, lobby-only.
func (s *Service) AssignColor(roomID, callerID string, act AssignColorAction) {
	room := s.room(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.assignColor(callerID, act.PlayerID, act.ColorHex, act.Confidence) {
		room.broadcastState()
	}
}

// StartGame flips a lobby into a live game. The returned error carries
// the user-facing start refusal, if any.
func (s *Service) StartGame(roomID, callerID string) error {
	room := s.room(roomID)
	if room == nil {
		return ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	before := room.phase
	if err := room.startGame(callerID, s.now()); err != nil {
		return err
	}
	if room.phase == PHASE_PLAYING && before == PHASE_LOBBY {
		room.broadcastState()
		log.Info().Str("room", roomID).Int("players", len(room.players)).Msg("game started")
	}
	return nil
}

// ActivateShield pops one banked shield charge for the caller.
func (s *Service) ActivateShield(roomID, playerID string) {
	room := s.room(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	p, ok := room.players[playerID]
	if !ok {
		return
	}
	notice := room.activateShield(p, s.now())
	if notice != nil {
		p.send(ServerMessage{Type: msgNotice, Data: notice})
	}
	if notice != nil && notice.Severity == "ok" {
		room.broadcastState()
	}
}

// StartEarn hands the caller a crafting challenge.
func (s *Service) StartEarn(roomID, playerID string, typ EarnTaskType) {
	room := s.room(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	p, ok := room.players[playerID]
	if !ok {
		return
	}
	notice := room.startEarnTask(p, typ, s.now())
	if notice != nil {
		p.send(ServerMessage{Type: msgNotice, Data: notice})
	}
	if notice != nil && notice.Severity == "ok" {
		room.broadcastState()
	}
}

// Shoot resolves one trigger pull: an attack shot runs targeting and
// damage, an earn shot scores the crafting sample. The shooter gets a
// private advisory; the room gets a fresh snapshot.
func (s *Service) Shoot(roomID, playerID string, act ShootAction) {
	room := s.room(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.phase != PHASE_PLAYING {
		return
	}
	p, ok := room.players[playerID]
	if !ok {
		return
	}
	now := s.now()

	if act.Kind == ShotEarn {
		if notice := room.resolveEarn(p, act.Craft, now); notice != nil {
			p.send(ServerMessage{Type: msgNotice, Data: notice})
		}
		room.broadcastState()
		return
	}

	if !p.Alive {
		p.send(ServerMessage{Type: msgNotice, Data: warnNotice("You are out of the game")})
		return
	}
	if !room.canShoot(p) {
		p.send(ServerMessage{Type: msgNotice, Data: warnNotice("Out of bullets, craft more")})
		return
	}
	if room.settings.Mode == ModeLimited {
		p.Bullets = p.Bullets.Spend()
	}

	var notice *Notice
	switch {
	case !act.HasTarget:
		notice = warnNotice("No target in view")
	default:
		target := room.resolveTarget(p, act.Torso)
		if target == nil {
			notice = warnNotice("Missed")
		} else {
			shielded, killed := room.applyDamage(p, target, now)
			switch {
			case killed:
				notice = okNotice(fmt.Sprintf("Eliminated %s", target.Name))
			case shielded:
				notice = warnNotice(fmt.Sprintf("%s's shield absorbed the hit", target.Name))
			default:
				notice = okNotice(fmt.Sprintf("Hit %s", target.Name))
			}
			if room.checkEnd(now) {
				log.Info().Str("room", roomID).Str("reason", string(room.timer.Reason)).Msg("game ended")
			}
		}
	}
	p.send(ServerMessage{Type: msgNotice, Data: notice})
	room.broadcastState()
}
