package gamedata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is returned for malformed lines in the line format.
var ErrSyntax = errors.New("syntax error")

// ParseText reads the line-oriented configuration format:
//
//	action Ember FIRE
//	damage target base 40 90
//	repeat random 2 4
//	damage target abs 5 100
//	end repeat
//	end action
//	monster Emberling FIRE 90 12 9 11 Ember Tackle
//
// Blank lines and lines starting with '#' are ignored.
func ParseText(r io.Reader) (File, error) {
	p := &textParser{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.parseLine(fields); err != nil {
			return File{}, fmt.Errorf("line %d: %w", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return File{}, err
	}
	if p.action != nil {
		return File{}, fmt.Errorf("line %d: %w: action %q is not closed", p.line, ErrSyntax, p.action.Name)
	}
	return p.file, nil
}

type textParser struct {
	file   File
	line   int
	action *ActionDef
	repeat *EffectDef
}

func (p *textParser) parseLine(fields []string) error {
	switch {
	case fields[0] == "action":
		if p.action != nil {
			return fmt.Errorf("%w: action %q is not closed", ErrSyntax, p.action.Name)
		}
		if len(fields) != 3 {
			return fmt.Errorf("%w: want \"action NAME ELEMENT\"", ErrSyntax)
		}
		element, err := ParseElement(fields[2])
		if err != nil {
			return err
		}
		p.action = &ActionDef{Name: fields[1], Element: element}
		return nil

	case fields[0] == "monster":
		if p.action != nil {
			return fmt.Errorf("%w: monster inside action %q", ErrSyntax, p.action.Name)
		}
		m, err := parseMonster(fields[1:])
		if err != nil {
			return err
		}
		p.file.Monsters = append(p.file.Monsters, m)
		return nil

	case fields[0] == "end":
		return p.parseEnd(fields)
	}

	if p.action == nil {
		return fmt.Errorf("%w: unexpected %q outside an action", ErrSyntax, fields[0])
	}

	if fields[0] == "repeat" {
		if p.repeat != nil {
			return fmt.Errorf("%w: repeat blocks cannot be nested", ErrSyntax)
		}
		def := EffectDef{Kind: EffectRepeat}
		if err := parseAmount(&def, fields[1:], false); err != nil {
			return err
		}
		p.repeat = &def
		return nil
	}

	effect, err := parseEffect(fields)
	if err != nil {
		return err
	}
	if p.repeat != nil {
		p.repeat.Effects = append(p.repeat.Effects, effect)
	} else {
		p.action.Effects = append(p.action.Effects, effect)
	}
	return nil
}

func (p *textParser) parseEnd(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("%w: want \"end action\" or \"end repeat\"", ErrSyntax)
	}
	switch fields[1] {
	case "repeat":
		if p.repeat == nil {
			return fmt.Errorf("%w: end repeat without repeat", ErrSyntax)
		}
		p.action.Effects = append(p.action.Effects, *p.repeat)
		p.repeat = nil
	case "action":
		if p.action == nil {
			return fmt.Errorf("%w: end action without action", ErrSyntax)
		}
		if p.repeat != nil {
			return fmt.Errorf("%w: repeat is not closed", ErrSyntax)
		}
		p.file.Actions = append(p.file.Actions, *p.action)
		p.action = nil
	default:
		return fmt.Errorf("%w: unknown block %q", ErrSyntax, fields[1])
	}
	return nil
}

func parseEffect(fields []string) (EffectDef, error) {
	kind, err := ParseEffectKind(fields[0])
	if err != nil {
		return EffectDef{}, err
	}
	def := EffectDef{Kind: kind}
	args := fields[1:]

	switch kind {
	case EffectDamage, EffectHeal:
		// SUBJECT STRENGTH VALUE RATE
		if len(args) != 4 {
			return def, fmt.Errorf("%w: want \"%s user|target base|abs|rel VALUE RATE\"", ErrSyntax, kind)
		}
		if def.Subject, err = ParseSubject(args[0]); err != nil {
			return def, err
		}
		if def.Strength, err = ParseStrength(args[1]); err != nil {
			return def, err
		}
		if def.Value, err = atoi(args[2]); err != nil {
			return def, err
		}
		def.HitRate, err = atoi(args[3])

	case EffectInflictStatus:
		if len(args) != 3 {
			return def, fmt.Errorf("%w: want \"%s user|target CONDITION RATE\"", ErrSyntax, kind)
		}
		if def.Subject, err = ParseSubject(args[0]); err != nil {
			return def, err
		}
		if def.Status, err = ParseStatus(args[1]); err != nil {
			return def, err
		}
		def.HitRate, err = atoi(args[2])

	case EffectStatChange:
		if len(args) != 4 {
			return def, fmt.Errorf("%w: want \"%s user|target STAT OFFSET RATE\"", ErrSyntax, kind)
		}
		if def.Subject, err = ParseSubject(args[0]); err != nil {
			return def, err
		}
		if def.Stat, err = ParseStat(args[1]); err != nil {
			return def, err
		}
		if def.Value, err = atoi(args[2]); err != nil {
			return def, err
		}
		def.HitRate, err = atoi(args[3])

	case EffectProtect:
		if len(args) < 3 {
			return def, fmt.Errorf("%w: want \"%s health|stats ROUNDS|random MIN MAX RATE\"", ErrSyntax, kind)
		}
		if def.Guard, err = ParseGuard(args[0]); err != nil {
			return def, err
		}
		if err := parseAmount(&def, args[1:len(args)-1], true); err != nil {
			return def, err
		}
		def.HitRate, err = atoi(args[len(args)-1])

	case EffectContinue:
		if len(args) != 1 {
			return def, fmt.Errorf("%w: want \"continue RATE\"", ErrSyntax)
		}
		def.HitRate, err = atoi(args[0])

	default:
		return def, fmt.Errorf("%w: unexpected %q", ErrSyntax, fields[0])
	}
	return def, err
}

// parseAmount reads "N" or "random MIN MAX" into Value or Range.
func parseAmount(def *EffectDef, args []string, duration bool) error {
	what := "count"
	if duration {
		what = "duration"
	}
	switch {
	case len(args) == 1:
		v, err := atoi(args[0])
		def.Value = v
		return err
	case len(args) == 3 && args[0] == "random":
		lo, err := atoi(args[1])
		if err != nil {
			return err
		}
		hi, err := atoi(args[2])
		if err != nil {
			return err
		}
		def.Range = &Range{Min: lo, Max: hi}
		return nil
	default:
		return fmt.Errorf("%w: want %s \"N\" or \"random MIN MAX\"", ErrSyntax, what)
	}
}

func parseMonster(args []string) (MonsterDef, error) {
	// NAME ELEMENT HP ATK DEF SPD ACTION...
	if len(args) < 7 {
		return MonsterDef{}, fmt.Errorf("%w: want \"monster NAME ELEMENT HP ATK DEF SPD ACTION...\"", ErrSyntax)
	}
	m := MonsterDef{Name: args[0]}
	var err error
	if m.Element, err = ParseElement(args[1]); err != nil {
		return m, err
	}
	values := []*int{&m.HP, &m.Attack, &m.Defense, &m.Speed}
	for i, v := range values {
		if *v, err = atoi(args[2+i]); err != nil {
			return m, err
		}
	}
	m.Actions = append([]string(nil), args[6:]...)
	return m, nil
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrSyntax, s)
	}
	return v, nil
}
