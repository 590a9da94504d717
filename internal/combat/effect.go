package combat

import (
	"fmt"
	"strings"

	"github.com/samdwyer/monsterarena/internal/decision"
	"github.com/samdwyer/monsterarena/internal/gamedata"
)

// Labels name the chance decisions an operator is asked about in debug mode.
const (
	labelAttackHit   = "attack hit"
	labelHealingHit  = "healing hit"
	labelCritical    = "critical hit"
	labelRandom      = "random factor"
	labelProtectHit  = "protection hit"
	labelProtectTime = "protection duration"
	labelContinueHit = "continue effect hit"
	labelRepeatCount = "repeat count"
)

// Effect is one entry of an action.
type Effect interface {
	// RequiresTarget reports whether the effect lands on the chosen target.
	RequiresTarget() bool
	// Expand turns the effect into the steps that execute this round. It
	// reports false when a debug source is waiting for an answer.
	Expand(src *decision.Source) ([]Step, bool)
}

// Step is an effect that executes directly.
type Step interface {
	Effect
	Execute(user, target Combatant, src *decision.Source) Outcome
}

// NewEffect compiles a validated effect definition. The element is that of
// the action the effect belongs to.
func NewEffect(def gamedata.EffectDef, element gamedata.Element) (Effect, error) {
	onTarget := def.Subject == gamedata.SubjectTarget
	switch def.Kind {
	case gamedata.EffectDamage:
		return &Damage{onTarget: onTarget, hitRate: def.HitRate,
			magnitude: magnitude{strength: def.Strength, value: def.Value, element: element}}, nil
	case gamedata.EffectHeal:
		return &Heal{onTarget: onTarget, hitRate: def.HitRate,
			magnitude: magnitude{strength: def.Strength, value: def.Value, element: element}}, nil
	case gamedata.EffectInflictStatus:
		return &Inflict{onTarget: onTarget, status: def.Status, hitRate: def.HitRate}, nil
	case gamedata.EffectStatChange:
		return &StatChange{onTarget: onTarget, stat: def.Stat, delta: def.Value, hitRate: def.HitRate}, nil
	case gamedata.EffectProtect:
		return &Protect{guard: def.Guard, span: newSpan(def), hitRate: def.HitRate}, nil
	case gamedata.EffectContinue:
		return &Continue{hitRate: def.HitRate}, nil
	case gamedata.EffectRepeat:
		r := &Repeat{span: newSpan(def)}
		for _, nested := range def.Effects {
			e, err := NewEffect(nested, element)
			if err != nil {
				return nil, err
			}
			r.effects = append(r.effects, e)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: effect kind %v", gamedata.ErrInvalidConfig, def.Kind)
	}
}

// span is a fixed amount or an inclusive range to draw it from.
type span struct {
	fixed    int
	min, max int
	random   bool
}

func newSpan(def gamedata.EffectDef) span {
	if def.Range != nil {
		return span{min: def.Range.Min, max: def.Range.Max, random: true}
	}
	return span{fixed: def.Value}
}

func (s span) draw(src *decision.Source) (int, bool) {
	if !s.random {
		return s.fixed, true
	}
	return src.DrawInt(s.min, s.max)
}

// hitChance is the percentage chance an effect lands: the rate scaled by the
// user's precision and, for effects on the target, the target's agility.
func hitChance(rate int, user, target Combatant, onTarget bool) float64 {
	chance := float64(rate) * user.Stat(gamedata.StatPRC)
	if onTarget {
		chance /= target.Stat(gamedata.StatAGL)
	}
	return chance
}

func subject(user, target Combatant, onTarget bool) Combatant {
	if onTarget {
		return target
	}
	return user
}

func single(s Step) []Step { return []Step{s} }

// Inflict gives the subject a status condition.
type Inflict struct {
	onTarget bool
	status   gamedata.Status
	hitRate  int
}

// RequiresTarget reports whether the effect lands on the chosen target.
func (e *Inflict) RequiresTarget() bool { return e.onTarget }

// Expand returns the effect itself as its only step.
func (e *Inflict) Expand(*decision.Source) ([]Step, bool) { return single(e), true }

// Execute rolls the hit and sets the status if the subject has none.
func (e *Inflict) Execute(user, target Combatant, src *decision.Source) Outcome {
	subj := subject(user, target, e.onTarget)
	hit, ok := src.DrawBool(hitChance(e.hitRate, user, subj, e.onTarget))
	if !ok {
		return needs(src, "make target "+strings.ToLower(e.status.String()), nil)
	}
	if !hit {
		return failed()
	}
	return succeeded(subj.Inflict(e.status, src.IsFirstExecution()))
}

// StatChange moves one of the subject's statistic offsets.
type StatChange struct {
	onTarget bool
	stat     gamedata.Stat
	delta    int
	hitRate  int
}

// RequiresTarget reports whether the effect lands on the chosen target.
func (e *StatChange) RequiresTarget() bool { return e.onTarget }

// Expand returns the effect itself as its only step.
func (e *StatChange) Expand(*decision.Source) ([]Step, bool) { return single(e), true }

// Execute rolls the hit and moves the statistic offset.
func (e *StatChange) Execute(user, target Combatant, src *decision.Source) Outcome {
	subj := subject(user, target, e.onTarget)
	hit, ok := src.DrawBool(hitChance(e.hitRate, user, subj, e.onTarget))
	if !ok {
		return needs(src, fmt.Sprintf("change %s offset", e.stat), nil)
	}
	if !hit {
		return failed()
	}
	return succeeded(subj.ChangeStat(e.stat, e.delta, subj == user, src.IsFirstExecution()))
}

// Protect shields the user's health or statistics for some rounds.
type Protect struct {
	guard   gamedata.Guard
	span    span
	hitRate int
}

// RequiresTarget reports whether the effect lands on the chosen target.
func (e *Protect) RequiresTarget() bool { return false }

// Expand returns the effect itself as its only step.
func (e *Protect) Expand(*decision.Source) ([]Step, bool) { return single(e), true }

// Execute rolls the hit and starts the user's protection timer.
func (e *Protect) Execute(user, _ Combatant, src *decision.Source) Outcome {
	hit, ok := src.DrawBool(hitChance(e.hitRate, user, nil, false))
	if !ok {
		return needs(src, labelProtectHit, nil)
	}
	if !hit {
		return failed()
	}
	rounds, ok := e.span.draw(src)
	if !ok {
		return needs(src, labelProtectTime, nil)
	}
	return succeeded(user.Protect(e.guard, rounds, src.IsFirstExecution()))
}

// Continue lets the rest of the action go ahead only if it succeeds.
type Continue struct {
	hitRate int
}

// RequiresTarget reports whether the effect lands on the chosen target.
func (e *Continue) RequiresTarget() bool { return false }

// Expand returns the effect itself as its only step.
func (e *Continue) Expand(*decision.Source) ([]Step, bool) { return single(e), true }

// Execute rolls the gate. A miss ends the rest of the action.
func (e *Continue) Execute(user, _ Combatant, src *decision.Source) Outcome {
	hit, ok := src.DrawBool(hitChance(e.hitRate, user, nil, false))
	if !ok {
		return needs(src, labelContinueHit, nil)
	}
	if !hit {
		return failed()
	}
	return succeeded()
}

// Repeat runs its effects a fixed or drawn number of times.
type Repeat struct {
	span    span
	effects []Effect
}

// RequiresTarget reports whether any repeated effect lands on the target.
func (e *Repeat) RequiresTarget() bool {
	for _, nested := range e.effects {
		if nested.RequiresTarget() {
			return true
		}
	}
	return false
}

// Expand draws the repeat count and lists the nested steps that many times.
func (e *Repeat) Expand(src *decision.Source) ([]Step, bool) {
	count, ok := e.span.draw(src)
	if !ok {
		return nil, false
	}
	var steps []Step
	for i := 0; i < count; i++ {
		for _, nested := range e.effects {
			more, ok := nested.Expand(src)
			if !ok {
				return nil, false
			}
			steps = append(steps, more...)
		}
	}
	return steps, true
}
