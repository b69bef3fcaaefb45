package game

import (
	"sync"
	"time"
)

type RoomPhase int

const (
	PHASE_LOBBY RoomPhase = iota
	PHASE_PLAYING
	PHASE_RESULTS
)

func (p RoomPhase) String() string {
	switch p {
	case PHASE_PLAYING:
		return "playing"
	case PHASE_RESULTS:
		return "results"
	default:
		return "lobby"
	}
}

// EndReason records why a game left the playing phase.
type EndReason string

const (
	EndByTime        EndReason = "time"
	EndByElimination EndReason = "elimination"
)

// Timer is one game's time window. EndedAt stays zero while the game
// is running.
type Timer struct {
	StartAt int64     `json:"startAt"`
	EndAt   int64     `json:"endAt"`
	EndedAt int64     `json:"endedAt"`
	Reason  EndReason `json:"reason,omitempty"`
}

// Room is one isolated game session. Every mutation of its state — a
// player action or a clock sweep — happens under mu; cross-room work
// never shares state.
type Room struct {
	mu sync.Mutex

	id       string
	hostID   string
	phase    RoomPhase
	settings Settings
	timer    *Timer
	tuning   Tuning

	players map[string]*Player
	order   []string // join order, drives iteration and tie-breaks

	nextJoinSeq int
	rngIntn     func(n int) int
}

func NewRoom(id string, tuning Tuning, rngIntn func(n int) int) *Room {
	return &Room{
		id:       id,
		phase:    PHASE_LOBBY,
		settings: DefaultSettings(),
		tuning:   tuning,
		players:  make(map[string]*Player),
		rngIntn:  rngIntn,
	}
}

func (r *Room) ID() string { return r.id }

// orderedPlayers returns the roster in join order.
func (r *Room) orderedPlayers() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// addPlayer appends a member and recomputes teams. The first member
// becomes host.
func (r *Room) addPlayer(p *Player, now time.Time) {
	p.JoinedAt = now.UnixMilli()
	p.joinSeq = r.nextJoinSeq
	r.nextJoinSeq++
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	if len(r.order) == 1 {
		r.hostID = p.ID
	}
	assignTeams(r.orderedPlayers(), r.settings.GameType)
}

// removePlayer takes a member out of the roster. If the host departs,
// the longest-tenured remaining member is promoted. Returns true when
// the room is now empty and should be torn down.
func (r *Room) removePlayer(playerID string) (empty bool) {
	if _, ok := r.players[playerID]; !ok {
		return len(r.players) == 0
	}
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if len(r.players) == 0 {
		return true
	}
	if r.hostID == playerID {
		r.hostID = r.nextHost()
	}
	assignTeams(r.orderedPlayers(), r.settings.GameType)
	return false
}

func (r *Room) nextHost() string {
	var next *Player
	for _, p := range r.orderedPlayers() {
		if next == nil || p.JoinedAt < next.JoinedAt ||
			(p.JoinedAt == next.JoinedAt && p.joinSeq < next.joinSeq) {
			next = p
		}
	}
	return next.ID
}

// applySettings merges a host patch while in lobby and re-partitions
// teams, since gameType may have flipped. Non-host and off-phase calls
// are silent no-ops.
func (r *Room) applySettings(callerID string, patch SettingsPatch) bool {
	if r.phase != PHASE_LOBBY || callerID != r.hostID {
		return false
	}
	r.settings = r.settings.Apply(patch)
	assignTeams(r.orderedPlayers(), r.settings.GameType)
	return true
}

// assignColor records the color a player physically wears. Host-only,
// lobby-only.
func (r *Room) assignColor(callerID, targetID, hex string, confidence float64) bool {
	if r.phase != PHASE_LOBBY || callerID != r.hostID {
		return false
	}
	target, ok := r.players[targetID]
	if !ok {
		return false
	}
	target.AssignColor(hex, confidence)
	return true
}

// startGame moves lobby→playing: re-arms every player per the current
// settings and opens the timer window.
func (r *Room) startGame(callerID string, now time.Time) error {
	if r.phase != PHASE_LOBBY || callerID != r.hostID {
		return nil // silent per authorization policy
	}
	if len(r.players) < 2 {
		return ErrNeedMorePlayers
	}
	for _, p := range r.players {
		if !p.HasColor() {
			return ErrMissingColors
		}
	}
	for _, p := range r.players {
		p.resetForGame(r.settings)
	}
	start := now.UnixMilli()
	r.timer = &Timer{
		StartAt: start,
		EndAt:   start + int64(r.settings.GameSeconds)*1000,
	}
	r.phase = PHASE_PLAYING
	return nil
}

// endGame moves playing→results and stamps the end reason. Idempotent:
// ending an already-ended room is a no-op.
func (r *Room) endGame(reason EndReason, now time.Time) bool {
	if r.phase != PHASE_PLAYING {
		return false
	}
	r.phase = PHASE_RESULTS
	if r.timer != nil {
		r.timer.EndedAt = now.UnixMilli()
		r.timer.Reason = reason
	}
	return true
}

// checkEnd evaluates both end conditions — time expiry, then
// elimination — and ends the game if either holds. This single
// function backs the periodic sweep and every reactive end trigger.
func (r *Room) checkEnd(now time.Time) bool {
	if r.phase != PHASE_PLAYING || r.timer == nil {
		return false
	}
	if now.UnixMilli() >= r.timer.EndAt {
		return r.endGame(EndByTime, now)
	}
	if r.eliminationReached() {
		return r.endGame(EndByElimination, now)
	}
	return false
}

// eliminationReached reports whether too few sides are left standing:
// chaos needs at least 2 living players, team mode at least 2 living
// teams.
func (r *Room) eliminationReached() bool {
	if r.settings.GameType == GameTypeTeam {
		teams := make(map[Team]struct{})
		for _, p := range r.players {
			if p.Alive && p.Team != TeamNone {
				teams[p.Team] = struct{}{}
			}
		}
		return len(teams) < 2
	}
	alive := 0
	for _, p := range r.players {
		if p.Alive {
			alive++
		}
	}
	return alive < 2
}
