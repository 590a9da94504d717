package game

import (
	"github.com/samdwyer/monsterarena/internal/combat"
	"github.com/samdwyer/monsterarena/internal/gamedata"
)

// Setup is a validated catalog with its actions compiled for play.
type Setup struct {
	catalog *gamedata.Catalog
	actions map[string]*combat.Action
}

// NewSetup compiles every action of the catalog.
func NewSetup(catalog *gamedata.Catalog) (*Setup, error) {
	s := &Setup{
		catalog: catalog,
		actions: make(map[string]*combat.Action, catalog.ActionCount()),
	}
	for _, def := range catalog.Actions() {
		a, err := combat.NewAction(def)
		if err != nil {
			return nil, err
		}
		s.actions[def.Name] = a
	}
	return s, nil
}

// LoadSetup reads, validates and compiles a configuration file.
func LoadSetup(path string) (*Setup, error) {
	catalog, err := gamedata.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return NewSetup(catalog)
}

// DefaultSetup compiles the embedded catalog.
func DefaultSetup() (*Setup, error) {
	catalog, err := gamedata.LoadDefaultCatalog()
	if err != nil {
		return nil, err
	}
	return NewSetup(catalog)
}

// Catalog returns the definitions the setup was built from.
func (s *Setup) Catalog() *gamedata.Catalog {
	return s.catalog
}

// Action returns the compiled action with the given name, or nil if not found.
func (s *Setup) Action(name string) *combat.Action {
	return s.actions[name]
}
