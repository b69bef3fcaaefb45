package game

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

// Team is a side in team games. Empty means unassigned (chaos games,
// or a lobby that hasn't been partitioned yet).
type Team string

const (
	TeamNone Team = ""
	TeamA    Team = "A"
	TeamB    Team = "B"
)

const maxNameRunes = 24

// Bullets is an ammo count that can also be the standard-mode
// "unlimited" sentinel. Keeping the sentinel out of the numeric field
// avoids infinity arithmetic on the wire.
type Bullets struct {
	Unlimited bool
	Count     int
}

func UnlimitedBullets() Bullets   { return Bullets{Unlimited: true} }
func FiniteBullets(n int) Bullets { return Bullets{Count: max(n, 0)} }

// CanSpend reports whether one shot's worth of ammo is available.
func (b Bullets) CanSpend() bool {
	return b.Unlimited || b.Count > 0
}

// Spend consumes one bullet. Unlimited ammo is never decremented.
func (b Bullets) Spend() Bullets {
	if b.Unlimited || b.Count == 0 {
		return b
	}
	b.Count--
	return b
}

// Add grants extra bullets; a no-op on unlimited ammo.
func (b Bullets) Add(n int) Bullets {
	if !b.Unlimited {
		b.Count += n
	}
	return b
}

func (b Bullets) MarshalJSON() ([]byte, error) {
	if b.Unlimited {
		return json.Marshal("unlimited")
	}
	return json.Marshal(b.Count)
}

func (b *Bullets) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "unlimited" {
			*b = UnlimitedBullets()
			return nil
		}
		*b = Bullets{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*b = FiniteBullets(n)
	return nil
}

// EarnTaskType is what a pending crafting challenge pays out.
type EarnTaskType string

const (
	EarnBullet EarnTaskType = "bullet"
	EarnShield EarnTaskType = "shield"
)

// EarnTask is a limited-mode crafting challenge: sample the target
// color before the deadline to collect the reward.
type EarnTask struct {
	Type           EarnTaskType `json:"type"`
	TargetColorHex string       `json:"targetColorHex"`
	ExpiresAt      int64        `json:"expiresAt"`
}

// HitLogEntry records one resolved hit for post-game review.
type HitLogEntry struct {
	Time        int64  `json:"time"`
	TargetID    string `json:"targetId"`
	TargetName  string `json:"targetName"`
	Damage      int    `json:"damage"`
	WasShielded bool   `json:"wasShielded"`
}

// Stats accrue per player over one game.
type Stats struct {
	Hits        int           `json:"hits"`
	Kills       int           `json:"kills"`
	DamageDealt int           `json:"damageDealt"`
	HitLog      []HitLogEntry `json:"hitLog"`
}

// Player is one room member. All mutation happens under the owning
// room's lock.
type Player struct {
	ID       string
	Name     string
	JoinedAt int64 // unix ms, host-succession and team ordering
	joinSeq  int   // tie-break for identical JoinedAt

	Team               Team
	AssignedColorHex   string
	AssignedRGB        RGB
	AssignedConfidence float64
	hasColor           bool

	HP                int
	Alive             bool
	Bullets           Bullets
	Shields           int
	ShieldActiveUntil int64 // unix ms, 0 = inactive
	EarnTask          *EarnTask

	Stats Stats

	sink Sink
}

// NewPlayer builds a room member with a sanitized display name.
func NewPlayer(id, name string, sink Sink) *Player {
	return &Player{
		ID:   id,
		Name: sanitizeName(name),
		sink: sink,
	}
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Anonymous"
	}
	if utf8.RuneCountInString(name) > maxNameRunes {
		name = string([]rune(name)[:maxNameRunes])
	}
	return name
}

// HasColor reports whether the host has assigned this player a worn color.
func (p *Player) HasColor() bool { return p.hasColor }

// AssignColor sets the color the player physically wears.
func (p *Player) AssignColor(hex string, confidence float64) {
	p.AssignedColorHex = NormalizeHex(hex)
	p.AssignedRGB = ParseHex(p.AssignedColorHex)
	p.AssignedConfidence = clampFloat(confidence, 0, 1)
	p.hasColor = true
}

// ShieldActive reports whether an activated shield window still covers now.
func (p *Player) ShieldActive(now time.Time) bool {
	return p.ShieldActiveUntil > now.UnixMilli()
}

// resetForGame re-arms the player for a fresh game under the given settings.
func (p *Player) resetForGame(s Settings) {
	p.HP = s.MaxHP
	p.Alive = true
	p.Shields = clampInt(s.InitialShields, 0, s.ShieldCap)
	p.ShieldActiveUntil = 0
	p.EarnTask = nil
	p.Stats = Stats{}
	if s.Mode == ModeLimited {
		p.Bullets = FiniteBullets(s.InitialBullets)
	} else {
		p.Bullets = UnlimitedBullets()
	}
}

// send queues an outbound message for this player, dropping it if the
// connection can't keep up. Never blocks the room lock.
func (p *Player) send(msg ServerMessage) {
	if p.sink != nil {
		p.sink.Send(msg)
	}
}
