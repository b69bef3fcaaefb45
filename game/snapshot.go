package game

import "sort"

// ServerMessage is the outbound envelope. Type discriminates the payload.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	msgRoomUpdate = "room:update"
	msgNotice     = "notice"
	msgError      = "error"
	msgConnected  = "connected"
)

// Notice is a transient advisory shown only to the acting player,
// distinct from the room-wide state broadcast.
type Notice struct {
	Severity string `json:"severity"` // "ok" | "warn"
	Message  string `json:"message"`
}

func okNotice(msg string) *Notice   { return &Notice{Severity: "ok", Message: msg} }
func warnNotice(msg string) *Notice { return &Notice{Severity: "warn", Message: msg} }

// PlayerSnapshot is the per-player slice of the broadcast. It carries
// the assigned color only as hex — raw RGB and other players'
// observations never leave the server.
type PlayerSnapshot struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Team               Team      `json:"team,omitempty"`
	AssignedColorHex   string    `json:"assignedColorHex,omitempty"`
	AssignedConfidence float64   `json:"assignedConfidence,omitempty"`
	HP                 int       `json:"hp"`
	Alive              bool      `json:"alive"`
	Bullets            Bullets   `json:"bullets"`
	Shields            int       `json:"shields"`
	ShieldActiveUntil  int64     `json:"shieldActiveUntil"`
	EarnTask           *EarnTask `json:"earnTask,omitempty"`
	Stats              Stats     `json:"stats"`
}

// RoomSnapshot is the full room state pushed to every member after a
// mutation.
type RoomSnapshot struct {
	ID       string                    `json:"id"`
	HostID   string                    `json:"hostId"`
	Phase    string                    `json:"phase"`
	Settings Settings                  `json:"settings"`
	Timer    *Timer                    `json:"timer,omitempty"`
	Players  map[string]PlayerSnapshot `json:"players"`
	Order    []string                  `json:"order"`
	Results  *GameResults              `json:"results,omitempty"`
}

// PlayerRank is one row of a chaos-mode scoreboard.
type PlayerRank struct {
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	Kills       int    `json:"kills"`
	DamageDealt int    `json:"damageDealt"`
	Hits        int    `json:"hits"`
}

// TeamScore aggregates one side's performance.
type TeamScore struct {
	Team        Team `json:"team"`
	Kills       int  `json:"kills"`
	DamageDealt int  `json:"damageDealt"`
}

// GameResults is the on-demand win computation, present in snapshots
// only once the room has reached results.
type GameResults struct {
	WinnerPlayerID string       `json:"winnerPlayerId,omitempty"`
	WinnerTeam     Team         `json:"winnerTeam,omitempty"`
	Ranking        []PlayerRank `json:"ranking,omitempty"`
	TeamScores     []TeamScore  `json:"teamScores,omitempty"`
}

// snapshot renders the room for broadcast. Callers hold the room lock.
func (r *Room) snapshot() RoomSnapshot {
	players := make(map[string]PlayerSnapshot, len(r.players))
	for id, p := range r.players {
		players[id] = PlayerSnapshot{
			ID:                 p.ID,
			Name:               p.Name,
			Team:               p.Team,
			AssignedColorHex:   p.AssignedColorHex,
			AssignedConfidence: p.AssignedConfidence,
			HP:                 p.HP,
			Alive:              p.Alive,
			Bullets:            p.Bullets,
			Shields:            p.Shields,
			ShieldActiveUntil:  p.ShieldActiveUntil,
			EarnTask:           p.EarnTask,
			Stats:              p.Stats,
		}
	}
	snap := RoomSnapshot{
		ID:       r.id,
		HostID:   r.hostID,
		Phase:    r.phase.String(),
		Settings: r.settings,
		Timer:    r.timer,
		Players:  players,
		Order:    append([]string(nil), r.order...),
	}
	if r.phase == PHASE_RESULTS {
		res := r.computeResults()
		snap.Results = &res
	}
	return snap
}

// computeResults ranks the finished game. Chaos: kills, then damage,
// then hits. Team: kills per side, damage breaks ties, team A wins a
// full tie.
func (r *Room) computeResults() GameResults {
	if r.settings.GameType == GameTypeTeam {
		scores := map[Team]*TeamScore{
			TeamA: {Team: TeamA},
			TeamB: {Team: TeamB},
		}
		for _, p := range r.players {
			if s, ok := scores[p.Team]; ok {
				s.Kills += p.Stats.Kills
				s.DamageDealt += p.Stats.DamageDealt
			}
		}
		a, b := scores[TeamA], scores[TeamB]
		winner := TeamA
		if b.Kills > a.Kills || (b.Kills == a.Kills && b.DamageDealt > a.DamageDealt) {
			winner = TeamB
		}
		return GameResults{
			WinnerTeam: winner,
			TeamScores: []TeamScore{*a, *b},
		}
	}

	ranking := make([]PlayerRank, 0, len(r.players))
	for _, p := range r.orderedPlayers() {
		ranking = append(ranking, PlayerRank{
			PlayerID:    p.ID,
			Name:        p.Name,
			Kills:       p.Stats.Kills,
			DamageDealt: p.Stats.DamageDealt,
			Hits:        p.Stats.Hits,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Kills != ranking[j].Kills {
			return ranking[i].Kills > ranking[j].Kills
		}
		if ranking[i].DamageDealt != ranking[j].DamageDealt {
			return ranking[i].DamageDealt > ranking[j].DamageDealt
		}
		return ranking[i].Hits > ranking[j].Hits
	})
	res := GameResults{Ranking: ranking}
	if len(ranking) > 0 {
		res.WinnerPlayerID = ranking[0].PlayerID
	}
	return res
}

// broadcastState pushes the current snapshot to every member. Sinks are
// non-blocking, so this is safe under the room lock.
func (r *Room) broadcastState() {
	snap := r.snapshot()
	msg := ServerMessage{Type: msgRoomUpdate, Data: snap}
	for _, p := range r.players {
		p.send(msg)
	}
}
