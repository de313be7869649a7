package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/armory/internal/game/inventory"
)

// Source produces firearm definitions. postgres.FirearmRepository satisfies
// it, as does YAMLDir.
//
// Postcondition: every returned definition passes Validate, or an error is
// returned.
type Source interface {
	LoadFirearms(ctx context.Context) ([]*inventory.FirearmDef, error)
}

// Sink persists firearm definitions. postgres.FirearmRepository satisfies
// it, as does YAMLDir.
type Sink interface {
	Save(ctx context.Context, def *inventory.FirearmDef) error
}

// YAMLDir reads and writes one <id>.yaml file per firearm in Dir.
type YAMLDir struct {
	Dir string
}

// LoadFirearms implements Source using inventory.LoadFirearms.
func (y YAMLDir) LoadFirearms(_ context.Context) ([]*inventory.FirearmDef, error) {
	return inventory.LoadFirearms(y.Dir)
}

// Save implements Sink, writing def to Dir/<def.ID>.yaml. Dir is created if
// needed.
//
// Precondition: def passes Validate.
func (y YAMLDir) Save(_ context.Context, def *inventory.FirearmDef) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("importer: YAMLDir.Save: %q: %w", def.ID, err)
	}
	data, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("importer: YAMLDir.Save: serialising %q: %w", def.ID, err)
	}
	if err := os.MkdirAll(y.Dir, 0755); err != nil {
		return fmt.Errorf("importer: YAMLDir.Save: creating %s: %w", y.Dir, err)
	}
	path := filepath.Join(y.Dir, def.ID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("importer: YAMLDir.Save: writing %s: %w", path, err)
	}
	return nil
}
