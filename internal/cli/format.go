package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/samdwyer/monsterarena/internal/entity"
	"github.com/samdwyer/monsterarena/internal/game"
	"github.com/samdwyer/monsterarena/internal/gamedata"
)

// healthBoxes is the width of the health bar in the show output.
const healthBoxes = 20

func healthBar(hp, maxHP int) string {
	filled := 0
	if maxHP > 0 {
		filled = int(math.Ceil(healthBoxes * float64(hp) / float64(maxHP)))
	}
	filled = min(max(filled, 0), healthBoxes)
	return "[" + strings.Repeat("X", filled) + strings.Repeat("_", healthBoxes-filled) + "]"
}

func standingLine(s game.Standing) string {
	marker := ""
	if s.Choosing {
		marker = "*"
	}
	status := s.Monster.Status.String()
	if s.Monster.Fainted {
		status = "FAINTED"
	}
	return fmt.Sprintf("%s %d %s%s (%s)", healthBar(s.Monster.HP, s.Monster.MaxHP), s.Number, marker, s.Monster.Name, status)
}

func statsLines(m entity.Snapshot) []string {
	parts := []string{fmt.Sprintf("HP %d/%d", m.HP, m.MaxHP)}
	for _, v := range m.Stats {
		switch {
		case v.Offset > 0:
			parts = append(parts, fmt.Sprintf("%s %d(+%d)", v.Stat, int(v.Base), v.Offset))
		case v.Offset < 0:
			parts = append(parts, fmt.Sprintf("%s %d(%d)", v.Stat, int(v.Base), v.Offset))
		default:
			parts = append(parts, fmt.Sprintf("%s %d", v.Stat, int(v.Base)))
		}
	}
	return []string{"STATS OF " + m.Name, strings.Join(parts, ", ")}
}

func monsterLine(d gamedata.MonsterDef) string {
	return fmt.Sprintf("%s: ELEMENT %s, HP %d, ATK %d, DEF %d, SPD %d",
		d.Name, d.Element, d.HP, d.Attack, d.Defense, d.Speed)
}
