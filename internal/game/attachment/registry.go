package attachment

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
)

// Definition is the unresolved form of an attachment as stored in content
// files and the database.
type Definition struct {
	Code uint32 `yaml:"code"`
	Name Name   `yaml:"name"`
	Slot Slot   `yaml:"slot"`
}

// Validate checks that d can be resolved into an Identifier.
func (d Definition) Validate() error {
	var errs []error
	if d.Code == 0 {
		errs = append(errs, errors.New("code must not be zero"))
	}
	if d.Name == NameNone || !d.Name.Valid() {
		errs = append(errs, fmt.Errorf("name %s is not an attachment", d.Name))
	}
	if !d.Slot.Valid() {
		errs = append(errs, fmt.Errorf("slot %s is not valid", d.Slot))
	}
	return errors.Join(errs...)
}

// Registry maps each firearm item type to the ordered list of attachments
// available for it. Registry is the only producer of resolved identifiers.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	byFirearm map[string][]Identifier
	total     int
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Len() == 0.
func NewRegistry() *Registry {
	return &Registry{byFirearm: make(map[string][]Identifier)}
}

// Register resolves defs into identifiers available for firearm, preserving
// their order.
//
// Precondition:  firearm is non-empty and not yet registered.
// Postcondition: Attachments(firearm) returns one identifier per def; on
// error the registry is unchanged.
func (r *Registry) Register(firearm string, defs ...Definition) error {
	if firearm == "" {
		return errors.New("attachment: Registry.Register: firearm must not be empty")
	}
	ids := make([]Identifier, 0, len(defs))
	seen := make(map[Name]bool, len(defs))
	for i, d := range defs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("attachment: Registry.Register: %s[%d]: %w", firearm, i, err)
		}
		if seen[d.Name] {
			return fmt.Errorf("attachment: Registry.Register: %s: duplicate attachment %s", firearm, d.Name)
		}
		seen[d.Name] = true
		ids = append(ids, resolve(d.Code, d.Name, d.Slot))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byFirearm[firearm]; exists {
		return fmt.Errorf("attachment: Registry.Register: firearm %q already registered", firearm)
	}
	r.order = append(r.order, firearm)
	r.byFirearm[firearm] = ids
	r.total += len(ids)
	return nil
}

// Attachments returns a copy of the identifiers registered for firearm.
//
// Postcondition: ok is true iff firearm is registered.
func (r *Registry) Attachments(firearm string) ([]Identifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.byFirearm[firearm]
	if !ok {
		return nil, false
	}
	return slices.Clone(ids), true
}

// Firearms returns the registered firearm item types in registration order.
func (r *Registry) Firearms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of identifiers across all firearms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// All yields each firearm with its attachments, in registration order. The
// sequence iterates over a snapshot taken when iteration starts.
func (r *Registry) All() iter.Seq2[string, []Identifier] {
	return func(yield func(string, []Identifier) bool) {
		if r == nil {
			return
		}
		r.mu.RLock()
		order := slices.Clone(r.order)
		lists := make([][]Identifier, len(order))
		for i, f := range order {
			lists[i] = r.byFirearm[f]
		}
		r.mu.RUnlock()

		for i, f := range order {
			if !yield(f, slices.Clone(lists[i])) {
				return
			}
		}
	}
}
