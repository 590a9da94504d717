package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownName is returned when text does not name a known enum value.
var ErrUnknownName = errors.New("unknown name")

// Element is the elemental affinity of a monster or action.
type Element int

const (
	ElementNormal Element = iota + 1
	ElementFire
	ElementWater
	ElementEarth
)

var elementNames = []string{"", "NORMAL", "FIRE", "WATER", "EARTH"}

// String returns the element name as written in configuration files.
func (e Element) String() string { return nameOf(elementNames, int(e)) }

// Against returns the damage multiplier of this element attacking defender.
// Water beats fire, fire beats earth and earth beats water.
func (e Element) Against(defender Element) float64 {
	switch {
	case e == ElementNormal || defender == ElementNormal || e == defender:
		return 1.0
	case e.beats() == defender:
		return 2.0
	case defender.beats() == e:
		return 0.5
	default:
		return 1.0
	}
}

func (e Element) beats() Element {
	switch e {
	case ElementWater:
		return ElementFire
	case ElementFire:
		return ElementEarth
	case ElementEarth:
		return ElementWater
	default:
		return 0
	}
}

// ParseElement converts a name such as "FIRE" into an Element.
func ParseElement(s string) (Element, error) {
	i, err := parseName(elementNames, "element", s)
	return Element(i), err
}

// MarshalText encodes the Element by name.
func (e Element) MarshalText() ([]byte, error) { return marshalName(elementNames, int(e), "element") }

// UnmarshalText decodes an Element name.
func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	*e = v
	return err
}

// Stat names one of the five modifiable statistics.
type Stat int

const (
	StatATK Stat = iota + 1
	StatDEF
	StatSPD
	StatPRC
	StatAGL
)

var statNames = []string{"", "ATK", "DEF", "SPD", "PRC", "AGL"}

// Stats lists every statistic in display order.
var Stats = []Stat{StatATK, StatDEF, StatSPD, StatPRC, StatAGL}

// String returns the stat name as written in configuration files.
func (s Stat) String() string { return nameOf(statNames, int(s)) }

// Divisor is the base of the offset scaling curve. Precision and agility
// move in thirds, the other statistics in halves.
func (s Stat) Divisor() float64 {
	if s == StatPRC || s == StatAGL {
		return 3
	}
	return 2
}

// ParseStat converts a name such as "ATK" into a Stat.
func ParseStat(s string) (Stat, error) {
	i, err := parseName(statNames, "stat", s)
	return Stat(i), err
}

// MarshalText encodes the Stat by name.
func (s Stat) MarshalText() ([]byte, error) { return marshalName(statNames, int(s), "stat") }

// UnmarshalText decodes a Stat name.
func (s *Stat) UnmarshalText(b []byte) error {
	v, err := ParseStat(string(b))
	*s = v
	return err
}

// Status is the condition a monster currently suffers from.
type Status int

const (
	StatusOK Status = iota + 1
	StatusBurn
	StatusQuicksand
	StatusWet
	StatusSleep
)

var statusNames = []string{"", "OK", "BURN", "QUICKSAND", "WET", "SLEEP"}

// String returns the status name as written in configuration files.
func (s Status) String() string { return nameOf(statusNames, int(s)) }

// Weakens returns the statistic this status reduces, if any.
func (s Status) Weakens() (Stat, bool) {
	switch s {
	case StatusBurn:
		return StatATK, true
	case StatusQuicksand:
		return StatSPD, true
	case StatusWet:
		return StatDEF, true
	default:
		return 0, false
	}
}

// PreventsAction reports whether a monster with this status skips its action.
func (s Status) PreventsAction() bool {
	return s == StatusSleep
}

// ParseStatus converts a name such as "BURN" into a Status.
func ParseStatus(s string) (Status, error) {
	i, err := parseName(statusNames, "status condition", s)
	return Status(i), err
}

// MarshalText encodes the Status by name.
func (s Status) MarshalText() ([]byte, error) {
	return marshalName(statusNames, int(s), "status condition")
}

// UnmarshalText decodes a Status name.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	*s = v
	return err
}

// Strength selects how a damage or heal magnitude is computed.
type Strength int

const (
	// StrengthBase scales with attack, defense, elements and a random factor.
	StrengthBase Strength = iota + 1
	// StrengthAbs is a fixed number of hit points.
	StrengthAbs
	// StrengthRel is a percentage of the target's maximum health.
	StrengthRel
)

var strengthNames = []string{"", "base", "abs", "rel"}

// String returns the strength name as written in configuration files.
func (s Strength) String() string { return nameOf(strengthNames, int(s)) }

// ParseStrength converts "base", "abs" or "rel" into a Strength.
func ParseStrength(s string) (Strength, error) {
	i, err := parseName(strengthNames, "strength", s)
	return Strength(i), err
}

// MarshalText encodes the Strength by name.
func (s Strength) MarshalText() ([]byte, error) { return marshalName(strengthNames, int(s), "strength") }

// UnmarshalText decodes a Strength name.
func (s *Strength) UnmarshalText(b []byte) error {
	v, err := ParseStrength(string(b))
	*s = v
	return err
}

// Guard is what a protection shields.
type Guard int

const (
	GuardHealth Guard = iota + 1
	GuardStats
)

var guardNames = []string{"", "health", "stats"}

// String returns the guard name as written in configuration files.
func (g Guard) String() string { return nameOf(guardNames, int(g)) }

// ParseGuard converts "health" or "stats" into a Guard.
func ParseGuard(s string) (Guard, error) {
	i, err := parseName(guardNames, "protection", s)
	return Guard(i), err
}

// MarshalText encodes the Guard by name.
func (g Guard) MarshalText() ([]byte, error) { return marshalName(guardNames, int(g), "protection") }

// UnmarshalText decodes a Guard name.
func (g *Guard) UnmarshalText(b []byte) error {
	v, err := ParseGuard(string(b))
	*g = v
	return err
}

// Subject is the monster an effect lands on.
type Subject int

const (
	SubjectUser Subject = iota + 1
	SubjectTarget
)

var subjectNames = []string{"", "user", "target"}

// String returns the subject name as written in configuration files.
func (s Subject) String() string { return nameOf(subjectNames, int(s)) }

// ParseSubject converts "user" or "target" into a Subject.
func ParseSubject(s string) (Subject, error) {
	i, err := parseName(subjectNames, "subject", s)
	return Subject(i), err
}

// MarshalText encodes the Subject by name.
func (s Subject) MarshalText() ([]byte, error) { return marshalName(subjectNames, int(s), "subject") }

// UnmarshalText decodes a Subject name.
func (s *Subject) UnmarshalText(b []byte) error {
	v, err := ParseSubject(string(b))
	*s = v
	return err
}

// EffectKind is the variant of an effect definition.
type EffectKind int

const (
	EffectDamage EffectKind = iota + 1
	EffectHeal
	EffectInflictStatus
	EffectStatChange
	EffectProtect
	EffectRepeat
	EffectContinue
)

var effectKindNames = []string{"", "damage", "heal", "inflictStatusCondition",
	"inflictStatChange", "protectStat", "repeat", "continue"}

// String returns the effect kind name as written in configuration files.
func (k EffectKind) String() string { return nameOf(effectKindNames, int(k)) }

// ParseEffectKind converts a keyword such as "damage" into an EffectKind.
func ParseEffectKind(s string) (EffectKind, error) {
	i, err := parseName(effectKindNames, "effect", s)
	return EffectKind(i), err
}

// MarshalText encodes the EffectKind by name.
func (k EffectKind) MarshalText() ([]byte, error) {
	return marshalName(effectKindNames, int(k), "effect")
}

// UnmarshalText decodes an EffectKind name.
func (k *EffectKind) UnmarshalText(b []byte) error {
	v, err := ParseEffectKind(string(b))
	*k = v
	return err
}

func nameOf(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func parseName(names []string, what, s string) (int, error) {
	for i := 1; i < len(names); i++ {
		if strings.EqualFold(names[i], s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownName, what, s)
}

func marshalName(names []string, i int, what string) ([]byte, error) {
	if i <= 0 || i >= len(names) {
		return nil, fmt.Errorf("%w: %s %d", ErrUnknownName, what, i)
	}
	return []byte(names[i]), nil
}
