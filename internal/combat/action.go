package combat

import (
	"fmt"

	"github.com/samdwyer/monsterarena/internal/decision"
	"github.com/samdwyer/monsterarena/internal/gamedata"
)

const lineActionFailed = "The action failed..."

// Action is a named, elemental sequence of effects.
type Action struct {
	def            gamedata.ActionDef
	effects        []Effect
	requiresTarget bool
}

// NewAction compiles a validated action definition.
func NewAction(def gamedata.ActionDef) (*Action, error) {
	a := &Action{def: def}
	for _, ed := range def.Effects {
		e, err := NewEffect(ed, def.Element)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", def.Name, err)
		}
		a.effects = append(a.effects, e)
		a.requiresTarget = a.requiresTarget || e.RequiresTarget()
	}
	return a, nil
}

// Name returns the action's configured name.
func (a *Action) Name() string { return a.def.Name }

// Element returns the element the action's damage is dealt in.
func (a *Action) Element() gamedata.Element { return a.def.Element }

// RequiresTarget reports whether the action needs a chosen target.
func (a *Action) RequiresTarget() bool { return a.requiresTarget }

// Info summarises the action as "<name>: ELEMENT <e>, Damage <d>, HitRate <r>",
// where the damage is that of the first damage effect (b = base, a = absolute,
// r = relative) and the hit rate is that of the first effect.
func (a *Action) Info() string {
	var flat []gamedata.EffectDef
	for _, e := range a.def.Effects {
		if e.Kind == gamedata.EffectRepeat {
			flat = append(flat, e.Effects...)
		} else {
			flat = append(flat, e)
		}
	}

	damage, hitRate := "--", "--"
	if len(flat) > 0 {
		hitRate = fmt.Sprint(flat[0].HitRate)
	}
	for _, e := range flat {
		if e.Kind == gamedata.EffectDamage {
			damage = fmt.Sprintf("%c%d", e.Strength.String()[0], e.Value)
			break
		}
	}
	return fmt.Sprintf("%s: ELEMENT %s, Damage %s, HitRate %s", a.def.Name, a.def.Element, damage, hitRate)
}

// Expand flattens the action's effects into the steps of one execution.
func (a *Action) Expand(src *decision.Source) ([]Step, bool) {
	var steps []Step
	for _, e := range a.effects {
		more, ok := e.Expand(src)
		if !ok {
			return nil, false
		}
		steps = append(steps, more...)
	}
	return steps, true
}

// NewRun starts a fresh execution of the action for one round.
func (a *Action) NewRun() *Run {
	return &Run{action: a}
}

// Run is one execution of an action. It remembers how far the execution got
// so that, when a debug source suspends it, the next call continues with the
// same step and returns only narration that was not returned before.
//
// Every step is its own decision point: the source is rewound before a step
// runs and reset once the step completes.
type Run struct {
	action        *Action
	steps         []Step
	expanded      bool
	started       bool
	next          int
	shown         int
	effectiveness bool
	done          bool
}

// Done reports whether the action has finished.
func (r *Run) Done() bool { return r.done }

// Execute runs or resumes the action. The outcome's lines are the narration
// produced since the previous call. A Failed outcome means the action as a
// whole failed; it still carries the banner and failure lines.
func (r *Run) Execute(user, target Combatant, src *decision.Source) Outcome {
	if r.done {
		return succeeded()
	}
	if !r.action.requiresTarget && target == nil {
		target = user
	}

	if !r.expanded {
		src.Rewind()
		steps, ok := r.action.Expand(src)
		if !ok {
			return needs(src, labelRepeatCount, nil)
		}
		src.ResetDecisionPoint()
		r.steps, r.expanded = steps, true
	}

	var out []string
	if !r.started {
		r.started = true
		out = append(out, fmt.Sprintf("%s uses %s!", user.Name(), r.action.Name()))
		if user.Status().PreventsAction() {
			r.done = true
			return succeeded(out...)
		}
		if r.action.requiresTarget && (target == nil || target.Fainted()) {
			r.done = true
			return succeeded(append(out, lineActionFailed)...)
		}
	}

	for r.next < len(r.steps) {
		step := r.steps[r.next]
		src.Rewind()
		o := step.Execute(user, target, src)

		lines := r.filter(o.Lines)
		if len(lines) > r.shown {
			out = append(out, lines[r.shown:]...)
			r.shown = len(lines)
		}
		if o.Result == NeedsInput {
			o.Lines = out
			return o
		}

		src.ResetDecisionPoint()
		r.shown = 0
		for _, l := range lines {
			if isEffectivenessLine(l) {
				r.effectiveness = true
			}
		}

		first := r.next == 0
		r.next++
		if o.Result == Failed {
			if first {
				r.done = true
				return Outcome{Result: Failed, Lines: append(out, lineActionFailed)}
			}
			if _, ok := step.(*Continue); ok {
				break
			}
		}
	}

	r.done = true
	return succeeded(out...)
}

// filter drops effectiveness lines once one has been shown for this action.
func (r *Run) filter(lines []string) []string {
	if !r.effectiveness {
		return lines
	}
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if !isEffectivenessLine(l) {
			kept = append(kept, l)
		}
	}
	return kept
}
