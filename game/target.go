package game

// resolveTarget maps a torso color observation to the most plausible
// victim: the nearest assigned color among living opponents, accepted
// only inside the confidence-scaled window. Candidates iterate in join
// order, so ties go to the earlier-joined player. Returns nil when the
// shot resolves to nobody.
func (r *Room) resolveTarget(shooter *Player, obs Observation) *Player {
	var best *Player
	var bestDist float64
	for _, candidate := range r.orderedPlayers() {
		if candidate.ID == shooter.ID || !candidate.Alive || !candidate.HasColor() {
			continue
		}
		if r.settings.GameType == GameTypeTeam && candidate.Team == shooter.Team {
			continue
		}
		d := ColorDistance(obs.RGB, candidate.AssignedRGB)
		if best == nil || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best == nil || bestDist > r.tuning.targetThreshold(obs.Confidence) {
		return nil
	}
	return best
}
