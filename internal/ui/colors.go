package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/monsterarena/internal/gamedata"
)

// PaletteFile is the embedded color table.
const PaletteFile = "palette.json"

// Palette colors monsters by element.
type Palette struct {
	elements  map[gamedata.Element]tcell.Color
	fainted   tcell.Color
	highlight tcell.Color
}

// NewPalette builds a palette from hex colors keyed by element name plus
// "fainted" and "highlight".
func NewPalette(hex map[string]string) (*Palette, error) {
	p := &Palette{
		elements:  make(map[gamedata.Element]tcell.Color),
		fainted:   tcell.ColorGray,
		highlight: tcell.ColorYellow,
	}
	for key, value := range hex {
		color, err := ParseHexColor(value)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", key, err)
		}
		switch key {
		case "fainted":
			p.fainted = color
		case "highlight":
			p.highlight = color
		default:
			element, err := gamedata.ParseElement(key)
			if err != nil {
				return nil, fmt.Errorf("palette: %w", err)
			}
			p.elements[element] = color
		}
	}
	return p, nil
}

// LoadPalette reads the embedded palette.
func LoadPalette() (*Palette, error) {
	hex, err := gamedata.Load[map[string]string](PaletteFile)
	if err != nil {
		return nil, err
	}
	return NewPalette(hex)
}

// Element returns the color of an element, white if none is set.
func (p *Palette) Element(e gamedata.Element) tcell.Color {
	if c, ok := p.elements[e]; ok {
		return c
	}
	return tcell.ColorWhite
}

// Fainted returns the color used for fainted monsters.
func (p *Palette) Fainted() tcell.Color { return p.fainted }

// Highlight returns the color of the input line.
func (p *Palette) Highlight() tcell.Color { return p.highlight }

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}
