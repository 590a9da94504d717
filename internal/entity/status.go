package entity

import (
	"fmt"

	"github.com/samdwyer/monsterarena/internal/gamedata"
)

var gainFormats = map[gamedata.Status]string{
	gamedata.StatusBurn:      "%s caught on fire!",
	gamedata.StatusQuicksand: "%s gets caught by quicksand!",
	gamedata.StatusWet:       "%s becomes soaking wet!",
	gamedata.StatusSleep:     "%s falls asleep!",
}

var hasFormats = map[gamedata.Status]string{
	gamedata.StatusBurn:      "%s is burning!",
	gamedata.StatusQuicksand: "%s is caught in quicksand!",
	gamedata.StatusWet:       "%s is soaking wet!",
	gamedata.StatusSleep:     "%s is asleep!",
}

var loseFormats = map[gamedata.Status]string{
	gamedata.StatusBurn:      "%s's burning has faded!",
	gamedata.StatusQuicksand: "%s escaped the quicksand!",
	gamedata.StatusWet:       "%s dried up!",
	gamedata.StatusSleep:     "%s woke up!",
}

func gainLine(s gamedata.Status, name string) string { return statusLine(gainFormats, s, name) }
func hasLine(s gamedata.Status, name string) string  { return statusLine(hasFormats, s, name) }
func loseLine(s gamedata.Status, name string) string { return statusLine(loseFormats, s, name) }

func statusLine(formats map[gamedata.Status]string, s gamedata.Status, name string) string {
	format, ok := formats[s]
	if !ok {
		return ""
	}
	return fmt.Sprintf(format, name)
}
