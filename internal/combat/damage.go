package combat

import (
	"fmt"
	"math"

	"github.com/samdwyer/monsterarena/internal/decision"
	"github.com/samdwyer/monsterarena/internal/gamedata"
)

// Narration shared by base-strength effects.
const (
	lineVeryEffective    = "It is very effective!"
	lineNotVeryEffective = "It is not very effective..."
	lineCritical         = "Critical hit!"
)

const (
	critMultiplier   = 2.0
	sameElementBonus = 1.5
	randomLow        = 0.85
	randomHigh       = 1.0
	baseDivisor      = 3.0
)

func isEffectivenessLine(line string) bool {
	return line == lineVeryEffective || line == lineNotVeryEffective
}

// magnitude computes the hit points a damage or heal effect moves.
type magnitude struct {
	strength gamedata.Strength
	value    int
	element  gamedata.Element
}

// amount returns the hit points and the narration produced so far. When a
// draw is pending it returns the label of that draw instead of an amount.
func (m magnitude) amount(user, subj Combatant, src *decision.Source) (int, []string, string) {
	switch m.strength {
	case gamedata.StrengthAbs:
		return m.value, nil, ""
	case gamedata.StrengthRel:
		return int(math.Ceil(float64(subj.MaxHP()) * float64(m.value) / 100)), nil, ""
	}

	var lines []string
	elemental := m.element.Against(subj.Element())
	switch {
	case elemental > 1:
		lines = append(lines, lineVeryEffective)
	case elemental < 1:
		lines = append(lines, lineNotVeryEffective)
	}

	crit, ok := src.DrawBool(critChance(user, subj))
	if !ok {
		return 0, lines, labelCritical
	}
	critFactor := 1.0
	if crit {
		critFactor = critMultiplier
		lines = append(lines, lineCritical)
	}

	random, ok := src.DrawReal(randomLow, randomHigh)
	if !ok {
		return 0, lines, labelRandom
	}

	stab := 1.0
	if m.element == user.Element() {
		stab = sameElementBonus
	}
	v := float64(m.value) * elemental *
		(user.Stat(gamedata.StatATK) / subj.Stat(gamedata.StatDEF)) *
		critFactor * stab * random / baseDivisor
	return int(math.Ceil(v)), lines, ""
}

// critChance is 10^-(target speed / user speed) as a percentage, so a faster
// user crits more often.
func critChance(user, subj Combatant) float64 {
	ratio := subj.Stat(gamedata.StatSPD) / user.Stat(gamedata.StatSPD)
	return math.Pow(10, -ratio) * 100
}

// Damage removes health from its subject.
type Damage struct {
	onTarget  bool
	hitRate   int
	magnitude magnitude
}

// RequiresTarget reports whether the effect lands on the chosen target.
func (e *Damage) RequiresTarget() bool { return e.onTarget }

// Expand returns the effect itself as its only step.
func (e *Damage) Expand(*decision.Source) ([]Step, bool) { return single(e), true }

// Execute rolls the hit and removes health from the subject.
func (e *Damage) Execute(user, target Combatant, src *decision.Source) Outcome {
	subj := subject(user, target, e.onTarget)
	if user.Fainted() || subj.Fainted() {
		return failed()
	}
	hit, ok := src.DrawBool(hitChance(e.hitRate, user, subj, e.onTarget))
	if !ok {
		return needs(src, labelAttackHit, nil)
	}
	if !hit {
		return failed()
	}

	amount, lines, pending := e.magnitude.amount(user, subj, src)
	if pending != "" {
		return needs(src, pending, lines)
	}
	lines = append(lines, subj.TakeDamage(amount, subj == user, src.IsFirstExecution()))
	if subj.Fainted() {
		lines = append(lines, fmt.Sprintf("%s faints!", subj.Name()))
	}
	return succeeded(lines...)
}

// Heal restores health to its subject.
type Heal struct {
	onTarget  bool
	hitRate   int
	magnitude magnitude
}

// RequiresTarget reports whether the effect lands on the chosen target.
func (e *Heal) RequiresTarget() bool { return e.onTarget }

// Expand returns the effect itself as its only step.
func (e *Heal) Expand(*decision.Source) ([]Step, bool) { return single(e), true }

// Execute rolls the hit and restores health to the subject.
func (e *Heal) Execute(user, target Combatant, src *decision.Source) Outcome {
	subj := subject(user, target, e.onTarget)
	if user.Fainted() || subj.Fainted() {
		return failed()
	}
	hit, ok := src.DrawBool(hitChance(e.hitRate, user, subj, e.onTarget))
	if !ok {
		return needs(src, labelHealingHit, nil)
	}
	if !hit {
		return failed()
	}

	amount, lines, pending := e.magnitude.amount(user, subj, src)
	if pending != "" {
		return needs(src, pending, lines)
	}
	return succeeded(append(lines, subj.Heal(amount, src.IsFirstExecution()))...)
}
