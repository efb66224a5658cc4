package sim

// Flocking and containment forces. Both apply only to agents currently
// Wandering: any other action is a priority override and receives neither
// contribution.

// applyMagnetism adds mood-driven cohesion/separation forces to each
// Wandering agent's intent. Neighbor positions and moods come from the
// pre-tick snapshot so the result does not depend on arena update order.
func (w *World) applyMagnetism(snap []MoodelSnapshot) {
	for _, m := range w.moodels {
		if m.action != ActionWandering {
			continue
		}

		var cohesion, separation Vec2
		friendly := 0

		for _, other := range snap {
			if other.ID == m.id {
				continue
			}
			d := dist(m.pos, other.Position)
			if d >= w.cfg.VisionRadius {
				continue
			}
			if d < w.cfg.SeparationDistance {
				away := normalizeOrZero(m.pos.Sub(other.Position))
				// The +0.1 keeps coincident agents from producing a
				// singular repulsion.
				separation = separation.Add(away.Mul(1.0 / (d + 0.1)))
			}
			factor := AttractionFactor(m.mood, other.Mood)
			if factor != 0 {
				cohesion = cohesion.Add(other.Position.Sub(m.pos).Mul(factor))
				if factor > 0 {
					friendly++
				}
			}
		}

		// Cohesion averages over friendly neighbors; separation does not —
		// its per-neighbor distance scaling already attenuates it.
		if friendly > 0 {
			cohesion = cohesion.Mul(1.0 / float64(friendly))
		}

		force := cohesion.Mul(w.cfg.CohesionStrength).
			Add(separation.Mul(w.cfg.SeparationStrength))
		m.intent = m.intent.Add(force)
	}
}

// applyBoundaryAvoidance steers Wandering agents away from the play-area
// edges. The force is fixed-magnitude per axis and intentionally large
// enough to dominate wander and flocking near a wall; a corner receives
// force on both axes, unnormalized.
func (w *World) applyBoundaryAvoidance() {
	min := w.playArea.Min()
	max := w.playArea.Max()

	for _, m := range w.moodels {
		if m.action != ActionWandering {
			continue
		}

		var force Vec2
		if m.pos.X() < min.X()+w.cfg.AvoidanceMargin {
			force[0] = w.cfg.AvoidanceStrength
		}
		if m.pos.X() > max.X()-w.cfg.AvoidanceMargin {
			force[0] = -w.cfg.AvoidanceStrength
		}
		if m.pos.Y() < min.Y()+w.cfg.AvoidanceMargin {
			force[1] = w.cfg.AvoidanceStrength
		}
		if m.pos.Y() > max.Y()-w.cfg.AvoidanceMargin {
			force[1] = -w.cfg.AvoidanceStrength
		}
		m.intent = m.intent.Add(force)
	}
}
