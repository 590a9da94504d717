package gamedata

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a configuration is well formed but breaks
// a game rule.
var ErrInvalidConfig = errors.New("invalid configuration")

// Catalog holds validated action and monster definitions and provides lookups.
type Catalog struct {
	actions  map[string]*ActionDef
	monsters map[string]*MonsterDef
	file     File
}

// NewCatalog validates a configuration and indexes it by name.
// Nothing is returned unless every definition is valid.
func NewCatalog(file File) (*Catalog, error) {
	file.Actions = cloneActions(file.Actions)
	file.Monsters = cloneMonsters(file.Monsters)
	c := &Catalog{
		actions:  make(map[string]*ActionDef, len(file.Actions)),
		monsters: make(map[string]*MonsterDef, len(file.Monsters)),
		file:     file,
	}

	for i := range file.Actions {
		a := &file.Actions[i]
		if err := validateAction(a); err != nil {
			return nil, err
		}
		if _, dup := c.actions[a.Name]; dup {
			return nil, fmt.Errorf("%w: action %q is defined twice", ErrInvalidConfig, a.Name)
		}
		c.actions[a.Name] = a
	}

	for i := range file.Monsters {
		m := &file.Monsters[i]
		if err := c.validateMonster(m); err != nil {
			return nil, err
		}
		if _, dup := c.monsters[m.Name]; dup {
			return nil, fmt.Errorf("%w: monster %q is defined twice", ErrInvalidConfig, m.Name)
		}
		c.monsters[m.Name] = m
	}

	return c, nil
}

// LoadCatalog reads and validates a configuration file.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(file)
}

// LoadDefaultCatalog loads the embedded catalog.
func LoadDefaultCatalog() (*Catalog, error) {
	file, err := Load[File](DefaultFile)
	if err != nil {
		return nil, err
	}
	if len(file.Monsters) == 0 {
		return nil, errors.New("no monsters loaded from " + DefaultFile)
	}
	return NewCatalog(file)
}

// Action returns a copy of the action with the given name, or nil if not found.
func (c *Catalog) Action(name string) *ActionDef {
	a, ok := c.actions[name]
	if !ok {
		return nil
	}
	cp := a.clone()
	return &cp
}

// Monster returns a copy of the monster with the given name, or nil if not found.
func (c *Catalog) Monster(name string) *MonsterDef {
	m, ok := c.monsters[name]
	if !ok {
		return nil
	}
	cp := m.clone()
	return &cp
}

// Actions returns copies of all action definitions in file order.
func (c *Catalog) Actions() []ActionDef {
	return cloneActions(c.file.Actions)
}

// Monsters returns copies of all monster definitions in file order.
func (c *Catalog) Monsters() []MonsterDef {
	return cloneMonsters(c.file.Monsters)
}

func cloneActions(defs []ActionDef) []ActionDef {
	out := make([]ActionDef, len(defs))
	for i, d := range defs {
		out[i] = d.clone()
	}
	return out
}

func cloneMonsters(defs []MonsterDef) []MonsterDef {
	out := make([]MonsterDef, len(defs))
	for i, d := range defs {
		out[i] = d.clone()
	}
	return out
}

// ActionCount returns the number of actions in the catalog.
func (c *Catalog) ActionCount() int {
	return len(c.file.Actions)
}

// MonsterCount returns the number of monsters in the catalog.
func (c *Catalog) MonsterCount() int {
	return len(c.file.Monsters)
}

func validateAction(a *ActionDef) error {
	if a.Name == "" {
		return fmt.Errorf("%w: action without a name", ErrInvalidConfig)
	}
	if a.Element == 0 {
		return fmt.Errorf("%w: action %q has no element", ErrInvalidConfig, a.Name)
	}
	if len(a.Effects) == 0 {
		return fmt.Errorf("%w: action %q has no effects", ErrInvalidConfig, a.Name)
	}
	for i := range a.Effects {
		if err := validateEffect(&a.Effects[i], false); err != nil {
			return fmt.Errorf("action %q effect %d: %w", a.Name, i+1, err)
		}
	}
	return nil
}

func validateEffect(e *EffectDef, nested bool) error {
	if err := checkPercent("hit rate", e.HitRate); err != nil && e.Kind != EffectRepeat {
		return err
	}

	switch e.Kind {
	case EffectDamage, EffectHeal:
		if e.Subject == 0 {
			return fmt.Errorf("%w: %s has no subject", ErrInvalidConfig, e.Kind)
		}
		switch e.Strength {
		case StrengthRel:
			return checkPercent("relative strength", e.Value)
		case StrengthBase, StrengthAbs:
			least := 0
			if e.Kind == EffectHeal {
				least = 1
			}
			if e.Value < least {
				return fmt.Errorf("%w: %s strength %d is below %d", ErrInvalidConfig, e.Kind, e.Value, least)
			}
		default:
			return fmt.Errorf("%w: %s has no strength type", ErrInvalidConfig, e.Kind)
		}

	case EffectInflictStatus:
		if e.Subject == 0 {
			return fmt.Errorf("%w: %s has no subject", ErrInvalidConfig, e.Kind)
		}
		if e.Status == 0 || e.Status == StatusOK {
			return fmt.Errorf("%w: %s needs BURN, QUICKSAND, WET or SLEEP", ErrInvalidConfig, e.Kind)
		}

	case EffectStatChange:
		if e.Subject == 0 {
			return fmt.Errorf("%w: %s has no subject", ErrInvalidConfig, e.Kind)
		}
		if e.Stat == 0 {
			return fmt.Errorf("%w: %s has no statistic", ErrInvalidConfig, e.Kind)
		}
		if e.Value < -MaxOffset || e.Value > MaxOffset {
			return fmt.Errorf("%w: offset %d is not in [%d, %d]", ErrInvalidConfig, e.Value, -MaxOffset, MaxOffset)
		}

	case EffectProtect:
		if e.Guard == 0 {
			return fmt.Errorf("%w: %s needs health or stats", ErrInvalidConfig, e.Kind)
		}
		if err := checkAmount("protection duration", e); err != nil {
			return err
		}

	case EffectContinue:

	case EffectRepeat:
		if nested {
			return fmt.Errorf("%w: repeat cannot contain another repeat", ErrInvalidConfig)
		}
		if err := checkAmount("repeat count", e); err != nil {
			return err
		}
		if len(e.Effects) == 0 {
			return fmt.Errorf("%w: repeat has no effects", ErrInvalidConfig)
		}
		for i := range e.Effects {
			if err := validateEffect(&e.Effects[i], true); err != nil {
				return fmt.Errorf("repeated effect %d: %w", i+1, err)
			}
		}

	default:
		return fmt.Errorf("%w: unknown effect kind %d", ErrInvalidConfig, e.Kind)
	}
	return nil
}

// MaxOffset bounds a statistic's offset in both directions.
const MaxOffset = 5

func checkPercent(what string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: %s %d is not in [0, 100]", ErrInvalidConfig, what, v)
	}
	return nil
}

func checkAmount(what string, e *EffectDef) error {
	if e.Range != nil {
		if e.Range.Min < 1 || e.Range.Min > e.Range.Max {
			return fmt.Errorf("%w: %s range [%d, %d] is empty or not positive",
				ErrInvalidConfig, what, e.Range.Min, e.Range.Max)
		}
		return nil
	}
	if e.Value < 1 {
		return fmt.Errorf("%w: %s %d is not positive", ErrInvalidConfig, what, e.Value)
	}
	return nil
}

func (c *Catalog) validateMonster(m *MonsterDef) error {
	if m.Name == "" {
		return fmt.Errorf("%w: monster without a name", ErrInvalidConfig)
	}
	if m.Element == 0 {
		return fmt.Errorf("%w: monster %q has no element", ErrInvalidConfig, m.Name)
	}
	for _, v := range []int{m.HP, m.Attack, m.Defense, m.Speed} {
		if v < 1 {
			return fmt.Errorf("%w: monster %q has a statistic below 1", ErrInvalidConfig, m.Name)
		}
	}
	if len(m.Actions) == 0 || len(m.Actions) > MaxActions {
		return fmt.Errorf("%w: monster %q must know 1 to %d actions", ErrInvalidConfig, m.Name, MaxActions)
	}
	seen := make(map[string]bool, len(m.Actions))
	for _, name := range m.Actions {
		if c.actions[name] == nil {
			return fmt.Errorf("%w: monster %q uses unknown action %q", ErrInvalidConfig, m.Name, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: monster %q lists action %q twice", ErrInvalidConfig, m.Name, name)
		}
		seen[name] = true
	}
	return nil
}
