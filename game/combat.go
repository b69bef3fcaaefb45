package game

import "time"

// canShoot gates trigger pulls: the dead never shoot, and limited mode
// requires ammo in the magazine. Standard mode is unlimited.
func (r *Room) canShoot(p *Player) bool {
	if !p.Alive {
		return false
	}
	if r.settings.Mode == ModeLimited {
		return p.Bullets.CanSpend()
	}
	return true
}

// applyDamage resolves one landed hit. An active shield absorbs the
// damage entirely; the hit is still logged and counted toward the
// shooter's hits and damageDealt. Crossing from alive to 0 hp credits
// the shooter with exactly one kill.
func (r *Room) applyDamage(shooter, target *Player, now time.Time) (shielded, killed bool) {
	damage := clampInt(r.settings.DamagePerHit, 1, 999)
	shielded = target.ShieldActive(now)
	if !shielded {
		target.HP = max(target.HP-damage, 0)
		if target.Alive && target.HP <= 0 {
			target.Alive = false
			shooter.Stats.Kills++
			killed = true
		}
	}
	shooter.Stats.Hits++
	shooter.Stats.DamageDealt += damage
	shooter.Stats.HitLog = append(shooter.Stats.HitLog, HitLogEntry{
		Time:        now.UnixMilli(),
		TargetID:    target.ID,
		TargetName:  target.Name,
		Damage:      damage,
		WasShielded: shielded,
	})
	return shielded, killed
}

// activateShield consumes one banked charge and opens a protection
// window. Reactivation is blocked until the current window expires;
// shields never stack.
func (r *Room) activateShield(p *Player, now time.Time) *Notice {
	if r.phase != PHASE_PLAYING {
		return nil
	}
	if !p.Alive {
		return warnNotice("You are out of the game")
	}
	if p.ShieldActive(now) {
		return warnNotice("Shield already active")
	}
	if p.Shields <= 0 {
		return warnNotice("No shield charges left")
	}
	p.Shields--
	p.ShieldActiveUntil = now.UnixMilli() + int64(r.settings.ShieldDurationSec)*1000
	return okNotice("Shield up")
}
