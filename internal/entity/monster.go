// Package entity provides the monsters that fight in a competition.
package entity

import (
	"fmt"
	"math"

	"github.com/samdwyer/monsterarena/internal/combat"
	"github.com/samdwyer/monsterarena/internal/gamedata"
)

// Ensure Monster implements combat.Combatant at compile time.
var _ combat.Combatant = (*Monster)(nil)

// statusFactor scales the statistic weakened by a status condition.
const statusFactor = 0.75

// burnFraction is the share of maximum health lost to burning each turn.
const burnFraction = 0.1

type statistic struct {
	base   float64
	offset int
}

// effective applies the offset curve: each positive step adds 1/divisor of
// the base value, each negative step divides by one more divisor step.
func (s statistic) effective(divisor float64) float64 {
	off := float64(s.offset)
	if s.offset >= 0 {
		return s.base * (divisor + off) / divisor
	}
	return s.base * divisor / (divisor - off)
}

// Monster is one combatant: its health, statistics, status and protection.
type Monster struct {
	name      string
	element   gamedata.Element
	maxHP     int
	hp        int
	stats     map[gamedata.Stat]*statistic
	status    gamedata.Status
	guard     gamedata.Guard
	guardLeft int
	fainted   bool
	actions   []string
}

// New creates a fresh monster from its definition. An empty name keeps the
// definition's name.
func New(def gamedata.MonsterDef, name string) *Monster {
	if name == "" {
		name = def.Name
	}
	return &Monster{
		name:    name,
		element: def.Element,
		maxHP:   def.HP,
		hp:      def.HP,
		stats: map[gamedata.Stat]*statistic{
			gamedata.StatATK: {base: float64(def.Attack)},
			gamedata.StatDEF: {base: float64(def.Defense)},
			gamedata.StatSPD: {base: float64(def.Speed)},
			gamedata.StatPRC: {base: 1},
			gamedata.StatAGL: {base: 1},
		},
		status:  gamedata.StatusOK,
		actions: append([]string(nil), def.Actions...),
	}
}

// Name returns the monster's display name.
func (m *Monster) Name() string { return m.name }

// Element returns the monster's element.
func (m *Monster) Element() gamedata.Element { return m.element }

// MaxHP returns the health the monster started with.
func (m *Monster) MaxHP() int { return m.maxHP }

// Status returns the current status condition.
func (m *Monster) Status() gamedata.Status { return m.status }

// Fainted reports whether the monster's health has ever reached zero.
func (m *Monster) Fainted() bool { return m.fainted }

// Guard returns what the monster is protected against, if anything.
func (m *Monster) Guard() gamedata.Guard { return m.guard }

// Offset returns the stage a statistic is raised or lowered by.
func (m *Monster) Offset(s gamedata.Stat) int { return m.stats[s].offset }

// HP returns the current health, never below zero.
func (m *Monster) HP() int {
	return max(m.hp, 0)
}

// Actions returns the names of the actions this monster knows.
func (m *Monster) Actions() []string {
	return append([]string(nil), m.actions...)
}

// Knows reports whether the monster can use the named action.
func (m *Monster) Knows(action string) bool {
	for _, a := range m.actions {
		if a == action {
			return true
		}
	}
	return false
}

// Stat returns the effective value of a statistic after offset and status.
func (m *Monster) Stat(s gamedata.Stat) float64 {
	v := m.stats[s].effective(s.Divisor())
	if weak, ok := m.status.Weakens(); ok && weak == s {
		v *= statusFactor
	}
	return v
}

// TakeDamage removes health unless the monster is protected against damage
// from others. The returned line describes what happened.
func (m *Monster) TakeDamage(amount int, selfInflicted, apply bool) string {
	if m.guard == gamedata.GuardHealth && !selfInflicted {
		return fmt.Sprintf("%s is protected and takes no damage!", m.name)
	}
	if apply {
		m.loseHP(amount)
	}
	return fmt.Sprintf("%s takes %d damage!", m.name, amount)
}

// Heal restores health up to the maximum. A fainted monster stays fainted.
func (m *Monster) Heal(amount int, apply bool) string {
	if apply && !m.fainted {
		m.hp = min(m.maxHP, m.hp+amount)
	}
	return fmt.Sprintf("%s gains back %d health!", m.name, amount)
}

// ChangeStat moves a statistic's offset, clamped to the allowed range.
// Stat protection only blocks decreases caused by other monsters.
func (m *Monster) ChangeStat(s gamedata.Stat, delta int, selfInflicted, apply bool) string {
	if m.guard == gamedata.GuardStats && !selfInflicted && delta < 0 {
		return fmt.Sprintf("%s is protected and is unaffected!", m.name)
	}
	if apply {
		st := m.stats[s]
		st.offset = max(-gamedata.MaxOffset, min(gamedata.MaxOffset, st.offset+delta))
	}
	if delta >= 0 {
		return fmt.Sprintf("%s's %s rises!", m.name, s)
	}
	return fmt.Sprintf("%s's %s decreases...", m.name, s)
}

// Inflict gives the monster a status condition if it has none. The returned
// line is empty when the monster already suffers from something.
func (m *Monster) Inflict(status gamedata.Status, apply bool) string {
	if m.status != gamedata.StatusOK {
		return ""
	}
	if apply {
		m.status = status
	}
	return gainLine(status, m.name)
}

// Recover clears the current status condition.
func (m *Monster) Recover(apply bool) string {
	line := loseLine(m.status, m.name)
	if apply {
		m.status = gamedata.StatusOK
	}
	return line
}

// StatusLine describes the status condition persisting.
func (m *Monster) StatusLine() string {
	return hasLine(m.status, m.name)
}

// Protect shields health or statistics for the given number of rounds.
// The counter includes the round the protection is applied in.
func (m *Monster) Protect(guard gamedata.Guard, rounds int, apply bool) string {
	if apply {
		m.guard = guard
		m.guardLeft = rounds + 1
	}
	if guard == gamedata.GuardHealth {
		return fmt.Sprintf("%s is now protected against damage!", m.name)
	}
	return fmt.Sprintf("%s is now protected against status changes!", m.name)
}

// BurnDamage returns the health a burning monster loses at the end of its turn.
func (m *Monster) BurnDamage() int {
	return int(math.Ceil(float64(m.maxHP) * burnFraction))
}

// Burn applies the end-of-turn burn tick.
func (m *Monster) Burn(apply bool) string {
	amount := m.BurnDamage()
	if apply {
		m.loseHP(amount)
	}
	return fmt.Sprintf("%s takes %d damage from burning!", m.name, amount)
}

func (m *Monster) loseHP(amount int) {
	m.hp -= amount
	if m.hp <= 0 {
		m.fainted = true
	}
}

// NextRound counts down the protection. It returns a line when the
// protection runs out, otherwise an empty string.
func (m *Monster) NextRound() string {
	if m.guardLeft == 0 {
		return ""
	}
	m.guardLeft--
	if m.guardLeft > 0 {
		return ""
	}
	m.guard = 0
	return fmt.Sprintf("%s's protection fades away...", m.name)
}
