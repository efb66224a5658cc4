package sim

// Agent action state machine: Wandering → Aiming → Charging → Wandering.
// Evaluated once per agent per tick, highest-priority producer of movement
// intent. Only Rage agents ever leave Wandering.

// updateActions runs the state machine for every agent, writing each
// agent's base movement intent. Target selection reads the pre-tick
// snapshot so it is independent of arena mutation order.
func (w *World) updateActions(dt float64, snap []MoodelSnapshot) {
	for _, m := range w.moodels {
		m.stateTimer.Tick(dt)
		m.abilityCooldown.Tick(dt)

		switch m.action {
		case ActionWandering:
			// Finished, not JustFinished: an agent that turned rage after its
			// cooldown had already lapsed attacks on its next tick.
			if m.mood == MoodRage && m.abilityCooldown.Finished() {
				if target, ok := w.nearestEligibleTarget(m, snap); ok {
					m.action = ActionAiming
					m.aimTargetID = target
					m.stateTimer.SetDuration(w.cfg.RageAimDuration)
					m.stateTimer.Reset()
					m.chargeHits = 0
					m.intent = Vec2{}
					continue
				}
				// No eligible victim right now; try again after a fresh
				// cooldown.
				w.rearmAbilityCooldown(m)
			}
			m.intent = wanderIntent(m, w.elapsed, &w.cfg, w.rng)

		case ActionAiming:
			// Aiming pauses the agent completely.
			m.intent = Vec2{}
			target, alive := w.byID[m.aimTargetID]
			if !alive {
				m.action = ActionWandering
				continue
			}
			if m.stateTimer.JustFinished() {
				// Freeze the victim's position now; the charge never
				// re-aims, so a moving victim can be missed.
				m.action = ActionCharging
				m.chargeTarget = target.pos
				m.stateTimer.SetDuration(w.cfg.RageChargeDuration)
				m.stateTimer.Reset()
			}

		case ActionCharging:
			m.intent = normalizeOrZero(m.chargeTarget.Sub(m.pos))
			if m.stateTimer.JustFinished() || m.chargeHits >= w.cfg.RageBurnoutHits {
				m.action = ActionWandering
				w.rearmAbilityCooldown(m)
			}
		}
	}
}

// rearmAbilityCooldown resamples the rage cooldown uniformly from the
// configured range and restarts it.
func (w *World) rearmAbilityCooldown(m *Moodel) {
	span := w.cfg.RageCooldownMax - w.cfg.RageCooldownMin
	m.abilityCooldown.SetDuration(w.cfg.RageCooldownMin + w.rng.Float64()*span)
	m.abilityCooldown.Reset()
}

// nearestEligibleTarget picks the closest other live, non-Rage agent by raw
// Euclidean distance. Ties break first-encountered in arena order.
func (w *World) nearestEligibleTarget(self *Moodel, snap []MoodelSnapshot) (int, bool) {
	best := -1
	bestDist := 0.0
	for _, s := range snap {
		if s.ID == self.id || s.Mood == MoodRage {
			continue
		}
		d := dist(self.pos, s.Position)
		if best == -1 || d < bestDist {
			best = s.ID
			bestDist = d
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
