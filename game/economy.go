package game

import (
	"fmt"
	"time"
)

// earnPalette is the curated set of crafting targets: colors distinct
// enough to tell apart on a phone camera and common enough to find on
// real-world objects mid-game.
var earnPalette = []string{
	"#e53935", // red
	"#fb8c00", // orange
	"#fdd835", // yellow
	"#43a047", // green
	"#00897b", // teal
	"#00acc1", // cyan
	"#1e88e5", // blue
	"#3949ab", // indigo
	"#8e24aa", // purple
	"#d81b60", // pink
	"#6d4c41", // brown
	"#ffffff", // white
}

// startEarnTask hands the player a fresh crafting challenge, replacing
// any pending one. Limited mode only, living players only, and shield
// tasks are refused at the cap.
func (r *Room) startEarnTask(p *Player, typ EarnTaskType, now time.Time) *Notice {
	if r.phase != PHASE_PLAYING || r.settings.Mode != ModeLimited {
		return nil
	}
	if !p.Alive {
		return warnNotice("You are out of the game")
	}
	if typ != EarnBullet && typ != EarnShield {
		return nil
	}
	if typ == EarnShield && p.Shields >= r.settings.ShieldCap {
		return warnNotice("Shield storage is full")
	}
	color := earnPalette[r.rngIntn(len(earnPalette))]
	p.EarnTask = &EarnTask{
		Type:           typ,
		TargetColorHex: color,
		ExpiresAt:      now.Add(r.tuning.EarnTaskDuration).UnixMilli(),
	}
	return okNotice(fmt.Sprintf("Find and shoot %s", color))
}

// resolveEarn scores a crafting sample against the pending task. The
// task is cleared on success or expiry; a mismatch inside the time
// window keeps it alive for another try.
func (r *Room) resolveEarn(p *Player, obs Observation, now time.Time) *Notice {
	task := p.EarnTask
	if task == nil {
		return warnNotice("No crafting task active")
	}
	if now.UnixMilli() >= task.ExpiresAt {
		p.EarnTask = nil
		return warnNotice("Crafting task expired")
	}
	if obs.Confidence < r.tuning.EarnConfidenceFloor {
		return warnNotice("Sample too uncertain, steady the camera")
	}
	d := ColorDistance(obs.RGB, ParseHex(task.TargetColorHex))
	if d > r.tuning.earnThreshold(obs.Confidence) {
		return warnNotice("Wrong color, keep looking")
	}
	p.EarnTask = nil
	switch task.Type {
	case EarnShield:
		p.Shields = clampInt(p.Shields+1, 0, r.settings.ShieldCap)
		return okNotice("Shield charge crafted")
	default:
		p.Bullets = p.Bullets.Add(1)
		return okNotice("Bullet crafted")
	}
}
