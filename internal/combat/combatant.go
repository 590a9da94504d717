// Package combat provides the effects and actions monsters use on each other.
package combat

import (
	"github.com/samdwyer/monsterarena/internal/gamedata"
)

// Combatant is the interface for any monster that can take part in combat.
//
// Mutating methods take an apply flag. They always return the narration for
// the change but only touch state when apply is true, so an effect can be
// re-run while an operator answers questions without changing anything twice.
type Combatant interface {
	// Identity
	Name() string
	Element() gamedata.Element
	Fainted() bool

	// Stats
	MaxHP() int
	Stat(s gamedata.Stat) float64
	Status() gamedata.Status

	// Mutations
	TakeDamage(amount int, selfInflicted, apply bool) string
	Heal(amount int, apply bool) string
	ChangeStat(s gamedata.Stat, delta int, selfInflicted, apply bool) string
	Inflict(status gamedata.Status, apply bool) string
	Protect(guard gamedata.Guard, rounds int, apply bool) string
}
