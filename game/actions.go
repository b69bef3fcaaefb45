package game

import "encoding/json"

// ClientMessage is the inbound envelope. Data is decoded once at the
// boundary into the action's typed payload; handlers never see raw JSON.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	actUpdateSettings = "settings:update"
	actAssignColor    = "color:assign"
	actStartGame      = "game:start"
	actShoot          = "game:shoot"
	actShieldActivate = "shield:activate"
	actEarnStart      = "earn:start"
	actLeaveRoom      = "room:leave"
)

// ShotKind distinguishes a combat trigger pull from a crafting sample.
type ShotKind string

const (
	ShotAttack ShotKind = "attack"
	ShotEarn   ShotKind = "earn"
)

// AssignColorAction sets the color a player physically wears.
type AssignColorAction struct {
	PlayerID   string  `json:"playerId"`
	ColorHex   string  `json:"colorHex"`
	Confidence float64 `json:"confidence"`
}

// EarnStartAction requests a new crafting challenge.
type EarnStartAction struct {
	Type EarnTaskType `json:"type"`
}

// ShootAction is one trigger pull with the vision pipeline's readings
// attached: a torso sample for targeting and a crafting sample for
// earn resolution.
type ShootAction struct {
	Kind      ShotKind    `json:"kind"`
	HasTarget bool        `json:"hasTarget"`
	Torso     Observation `json:"torso"`
	Craft     Observation `json:"craft"`
}
