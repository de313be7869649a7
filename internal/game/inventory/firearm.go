// Package inventory provides firearm definitions, their YAML loader, and live
// firearm instances that mount attachments.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/armory/internal/game/attachment"
)

// BaseCode is the attachment code a firearm carries in its default
// configuration.
type BaseCode uint32

// FirearmDef defines a firearm item type and the attachments it accepts.
type FirearmDef struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	BaseCode    BaseCode                `yaml:"base_code"`
	Attachments []attachment.Definition `yaml:"attachments"`
}

// Validate checks that the FirearmDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff ID and Name are set, every attachment is
// valid, attachment codes occupy disjoint bits, and BaseCode is composed of
// attachment codes with at most one per slot.
func (d *FirearmDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}

	var used uint32
	names := make(map[attachment.Name]bool, len(d.Attachments))
	for i, a := range d.Attachments {
		if err := a.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("attachments[%d]: %w", i, err))
			continue
		}
		if names[a.Name] {
			errs = append(errs, fmt.Errorf("attachments[%d]: duplicate name %s", i, a.Name))
		}
		names[a.Name] = true
		if used&a.Code != 0 {
			errs = append(errs, fmt.Errorf("attachments[%d]: code %#x overlaps another attachment", i, a.Code))
		}
		used |= a.Code
	}

	base := uint32(d.BaseCode)
	if base&^used != 0 {
		errs = append(errs, fmt.Errorf("base_code %#x has bits outside the attachment codes", base))
	}
	slots := make(map[attachment.Slot]attachment.Name)
	for _, a := range d.Attachments {
		if a.Code == 0 || base&a.Code != a.Code {
			continue
		}
		if other, taken := slots[a.Slot]; taken {
			errs = append(errs, fmt.Errorf("base_code mounts %s and %s in slot %s", other, a.Name, a.Slot))
		}
		slots[a.Slot] = a.Name
	}

	if len(errs) > 0 {
		return fmt.Errorf("firearm validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// CodeWith returns the base code with id's code added.
func (d *FirearmDef) CodeWith(id attachment.Identifier) uint32 {
	return attachment.AddCode(id, d.BaseCode)
}

// CodeWithout returns the base code with id's code removed.
func (d *FirearmDef) CodeWithout(id attachment.Identifier) uint32 {
	return attachment.SubtractFromCode(d.BaseCode, id)
}

// LoadFirearms reads all *.yaml files from dir in lexicographic order, parses
// each as a FirearmDef, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid FirearmDefs or the first encountered error.
func LoadFirearms(dir string) ([]*FirearmDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadFirearms: cannot read directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	var firearms []*FirearmDef
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadFirearms: cannot read file %q: %w", path, err)
		}
		var d FirearmDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadFirearms: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadFirearms: invalid firearm in %q: %w", path, err)
		}
		firearms = append(firearms, &d)
	}
	return firearms, nil
}
