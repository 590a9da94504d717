package entity

import "github.com/samdwyer/monsterarena/internal/gamedata"

// StatView is a read-only view of one statistic.
type StatView struct {
	Stat      gamedata.Stat
	Base      float64
	Offset    int
	Effective float64
}

// Snapshot is an owned copy of a monster's observable state.
type Snapshot struct {
	Name        string
	Element     gamedata.Element
	HP          int
	MaxHP       int
	Status      gamedata.Status
	Fainted     bool
	Guard       gamedata.Guard
	GuardRounds int
	Stats       []StatView
	Actions     []string
}

// Snapshot copies the monster's state for display.
func (m *Monster) Snapshot() Snapshot {
	stats := make([]StatView, 0, len(gamedata.Stats))
	for _, s := range gamedata.Stats {
		stats = append(stats, StatView{
			Stat:      s,
			Base:      m.stats[s].base,
			Offset:    m.stats[s].offset,
			Effective: m.Stat(s),
		})
	}
	return Snapshot{
		Name:        m.name,
		Element:     m.element,
		HP:          m.HP(),
		MaxHP:       m.maxHP,
		Status:      m.status,
		Fainted:     m.Fainted(),
		Guard:       m.guard,
		GuardRounds: m.guardLeft,
		Stats:       stats,
		Actions:     m.Actions(),
	}
}
