package inventory

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/armory/internal/game/attachment"
)

// Registry holds all loaded firearm definitions indexed by ID, together with
// the attachment registry built from them.
type Registry struct {
	mu          sync.RWMutex
	firearms    map[string]*FirearmDef
	order       []string
	attachments *attachment.Registry
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		firearms:    make(map[string]*FirearmDef),
		attachments: attachment.NewRegistry(),
	}
}

// BuildRegistry registers every def into a new Registry.
//
// Postcondition: returns a Registry containing all defs, or the first
// registration error.
func BuildRegistry(defs []*FirearmDef) (*Registry, error) {
	r := NewRegistry()
	for _, d := range defs {
		if err := r.RegisterFirearm(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterFirearm adds d and its attachments to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Firearm(d.ID) returns d; returns error if d.ID already
// registered or d is invalid.
func (r *Registry) RegisterFirearm(d *FirearmDef) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("inventory: Registry.RegisterFirearm: %q: %w", d.ID, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.firearms[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterFirearm: firearm ID %q already registered", d.ID)
	}
	if err := r.attachments.Register(d.ID, d.Attachments...); err != nil {
		return fmt.Errorf("inventory: Registry.RegisterFirearm: %w", err)
	}
	r.firearms[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

// Firearm returns the FirearmDef for the given id and whether it was found.
func (r *Registry) Firearm(id string) (*FirearmDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.firearms[id]
	return d, ok
}

// AllFirearms returns all registered FirearmDefs in registration order.
//
// Postcondition: len(result) == number of registered firearms.
func (r *Registry) AllFirearms() []*FirearmDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*FirearmDef, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.firearms[id])
	}
	return out
}

// Attachments returns the attachment registry backing this Registry.
func (r *Registry) Attachments() *attachment.Registry {
	return r.attachments
}

// NewFirearm creates a live firearm of the registered type id in its base
// configuration.
//
// Postcondition: returns ErrFirearmNotFound if id is not registered.
func (r *Registry) NewFirearm(id string) (*Firearm, error) {
	def, ok := r.Firearm(id)
	if !ok {
		return nil, fmt.Errorf("inventory: Registry.NewFirearm: %q: %w", id, ErrFirearmNotFound)
	}
	available, _ := r.attachments.Attachments(id)
	return newFirearm(def, available), nil
}
