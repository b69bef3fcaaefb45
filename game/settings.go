package game

// GameType selects how victims and winners are grouped.
type GameType string

// Mode selects the ammo economy.
type Mode string

const (
	GameTypeTeam  GameType = "team"
	GameTypeChaos GameType = "chaos"

	ModeStandard Mode = "standard"
	ModeLimited  Mode = "limited"
)

// Settings is a room's lobby configuration. Host-mutable while the room
// is in the lobby phase, frozen afterwards.
type Settings struct {
	GameType          GameType `json:"gameType"`
	Mode              Mode     `json:"mode"`
	GameSeconds       int      `json:"gameSeconds"`
	DamagePerHit      int      `json:"damagePerHit"`
	MaxHP             int      `json:"maxHp"`
	InitialBullets    int      `json:"initialBullets"`
	InitialShields    int      `json:"initialShields"`
	ShieldDurationSec int      `json:"shieldDurationSec"`
	ShieldCap         int      `json:"shieldCap"`
}

// SettingsPatch is a partial update; nil fields leave the current value
// untouched. Unknown enum literals are dropped rather than rejected.
type SettingsPatch struct {
	GameType          *string `json:"gameType"`
	Mode              *string `json:"mode"`
	GameSeconds       *int    `json:"gameSeconds"`
	DamagePerHit      *int    `json:"damagePerHit"`
	MaxHP             *int    `json:"maxHp"`
	InitialBullets    *int    `json:"initialBullets"`
	InitialShields    *int    `json:"initialShields"`
	ShieldDurationSec *int    `json:"shieldDurationSec"`
	ShieldCap         *int    `json:"shieldCap"`
}

// Clamp bounds for each numeric setting.
const (
	minGameSeconds       = 30
	maxGameSeconds       = 3600
	minDamagePerHit      = 1
	maxDamagePerHit      = 200
	minMaxHP             = 10
	maxMaxHP             = 500
	minInitialBullets    = 0
	maxInitialBullets    = 999
	minInitialShields    = 0
	maxInitialShields    = 2
	minShieldDurationSec = 5
	maxShieldDurationSec = 60
	minShieldCap         = 0
	maxShieldCap         = 2
)

// DefaultSettings is the configuration a freshly created room starts with.
func DefaultSettings() Settings {
	return Settings{
		GameType:          GameTypeTeam,
		Mode:              ModeStandard,
		GameSeconds:       180,
		DamagePerHit:      25,
		MaxHP:             100,
		InitialBullets:    10,
		InitialShields:    1,
		ShieldDurationSec: 10,
		ShieldCap:         2,
	}
}

// Apply merges a patch into s field by field, clamping every numeric
// value into its documented range. It never fails; hostile input is
// sanitized, not reported.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.GameType != nil {
		switch GameType(*p.GameType) {
		case GameTypeTeam, GameTypeChaos:
			s.GameType = GameType(*p.GameType)
		}
	}
	if p.Mode != nil {
		switch Mode(*p.Mode) {
		case ModeStandard, ModeLimited:
			s.Mode = Mode(*p.Mode)
		}
	}
	if p.GameSeconds != nil {
		s.GameSeconds = clampInt(*p.GameSeconds, minGameSeconds, maxGameSeconds)
	}
	if p.DamagePerHit != nil {
		s.DamagePerHit = clampInt(*p.DamagePerHit, minDamagePerHit, maxDamagePerHit)
	}
	if p.MaxHP != nil {
		s.MaxHP = clampInt(*p.MaxHP, minMaxHP, maxMaxHP)
	}
	if p.InitialBullets != nil {
		s.InitialBullets = clampInt(*p.InitialBullets, minInitialBullets, maxInitialBullets)
	}
	if p.InitialShields != nil {
		s.InitialShields = clampInt(*p.InitialShields, minInitialShields, maxInitialShields)
	}
	if p.ShieldDurationSec != nil {
		s.ShieldDurationSec = clampInt(*p.ShieldDurationSec, minShieldDurationSec, maxShieldDurationSec)
	}
	if p.ShieldCap != nil {
		s.ShieldCap = clampInt(*p.ShieldCap, minShieldCap, maxShieldCap)
	}
	return s
}
