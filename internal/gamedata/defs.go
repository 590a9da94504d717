// Package gamedata provides the configuration model of the arena: actions,
// monsters and the loaders that read them from JSON, YAML or the line format.
package gamedata

// File is the full contents of one configuration source.
type File struct {
	Actions  []ActionDef  `json:"actions" yaml:"actions"`
	Monsters []MonsterDef `json:"monsters" yaml:"monsters"`
}

// ActionDef defines a named action and the ordered effects it applies.
type ActionDef struct {
	Name    string      `json:"name" yaml:"name" jsonschema:"required"`
	Element Element     `json:"element" yaml:"element" jsonschema:"required"`
	Effects []EffectDef `json:"effects" yaml:"effects" jsonschema:"required"`
}

// EffectDef defines one effect. Which fields apply depends on Kind:
//
//	damage, heal            Subject, Strength, Value (magnitude), HitRate
//	inflictStatusCondition  Subject, Status, HitRate
//	inflictStatChange       Subject, Stat, Value (offset), HitRate
//	protectStat             Guard, Value (rounds) or Range, HitRate
//	continue                HitRate
//	repeat                  Value (count) or Range, Effects
type EffectDef struct {
	Kind     EffectKind  `json:"kind" yaml:"kind" jsonschema:"required"`
	Subject  Subject     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Strength Strength    `json:"strength,omitempty" yaml:"strength,omitempty"`
	Value    int         `json:"value,omitempty" yaml:"value,omitempty"`
	Stat     Stat        `json:"stat,omitempty" yaml:"stat,omitempty"`
	Status   Status      `json:"status,omitempty" yaml:"status,omitempty"`
	Guard    Guard       `json:"guard,omitempty" yaml:"guard,omitempty"`
	Range    *Range      `json:"range,omitempty" yaml:"range,omitempty"`
	HitRate  int         `json:"hitRate,omitempty" yaml:"hitRate,omitempty"`
	Effects  []EffectDef `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// Range is an inclusive interval a count or duration is drawn from.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// MonsterDef defines a monster template. Speed, attack and defense are the
// base values of the corresponding statistics.
type MonsterDef struct {
	Name    string   `json:"name" yaml:"name" jsonschema:"required"`
	Element Element  `json:"element" yaml:"element" jsonschema:"required"`
	HP      int      `json:"hp" yaml:"hp" jsonschema:"required"`
	Attack  int      `json:"atk" yaml:"atk" jsonschema:"required"`
	Defense int      `json:"def" yaml:"def" jsonschema:"required"`
	Speed   int      `json:"spd" yaml:"spd" jsonschema:"required"`
	Actions []string `json:"actions" yaml:"actions" jsonschema:"required"`
}

// MaxActions is the number of actions a monster may know.
const MaxActions = 4

// RequiresTarget reports whether the effect, or anything it repeats, lands on
// the chosen target.
func (d EffectDef) RequiresTarget() bool {
	if d.Kind == EffectRepeat {
		for _, e := range d.Effects {
			if e.RequiresTarget() {
				return true
			}
		}
		return false
	}
	return d.Subject == SubjectTarget
}

// RequiresTarget reports whether choosing this action needs a target.
func (d ActionDef) RequiresTarget() bool {
	for _, e := range d.Effects {
		if e.RequiresTarget() {
			return true
		}
	}
	return false
}

func cloneEffects(effects []EffectDef) []EffectDef {
	if effects == nil {
		return nil
	}
	out := make([]EffectDef, len(effects))
	for i, e := range effects {
		if e.Range != nil {
			r := *e.Range
			e.Range = &r
		}
		e.Effects = cloneEffects(e.Effects)
		out[i] = e
	}
	return out
}

func (d ActionDef) clone() ActionDef {
	d.Effects = cloneEffects(d.Effects)
	return d
}

func (d MonsterDef) clone() MonsterDef {
	if d.Actions != nil {
		d.Actions = append(make([]string, 0, len(d.Actions)), d.Actions...)
	}
	return d
}
