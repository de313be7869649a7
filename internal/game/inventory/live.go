package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/armory/internal/game/attachment"
)

var (
	// ErrFirearmNotFound is returned when a firearm type is not registered.
	ErrFirearmNotFound = errors.New("firearm not found")
	// ErrAttachmentUnavailable is returned when a firearm cannot carry an attachment.
	ErrAttachmentUnavailable = errors.New("attachment not available for firearm")
	// ErrAttachmentNotMounted is returned when removing an attachment that is not mounted.
	ErrAttachmentNotMounted = errors.New("attachment not mounted")
)

// MountedAttachment is an attachment currently fitted to a live firearm.
type MountedAttachment struct {
	Code uint32
	Name attachment.Name
	Slot attachment.Slot
}

// AttachmentName implements attachment.Live.
func (m MountedAttachment) AttachmentName() attachment.Name { return m.Name }

// AttachmentSlot implements attachment.Live.
func (m MountedAttachment) AttachmentSlot() attachment.Slot { return m.Slot }

// Firearm is a live firearm instance whose attachment code records which of
// its available attachments are mounted.
//
// Firearm is not safe for concurrent mutation.
type Firearm struct {
	Serial    uuid.UUID
	def       *FirearmDef
	available []attachment.Identifier
	code      uint32
}

func newFirearm(def *FirearmDef, available []attachment.Identifier) *Firearm {
	return &Firearm{
		Serial:    uuid.New(),
		def:       def,
		available: available,
		code:      uint32(def.BaseCode),
	}
}

// Def returns the firearm's definition.
func (f *Firearm) Def() *FirearmDef { return f.def }

// Code returns the current attachment code.
func (f *Firearm) Code() uint32 { return f.code }

// Available returns the identifiers this firearm can mount.
func (f *Firearm) Available() []attachment.Identifier {
	out := make([]attachment.Identifier, len(f.available))
	copy(out, f.available)
	return out
}

// Mounted returns the attachments whose code bits are set, in definition order.
func (f *Firearm) Mounted() []MountedAttachment {
	var out []MountedAttachment
	for _, id := range f.available {
		if f.isSet(id) {
			out = append(out, MountedAttachment{Code: id.Code(), Name: id.Name(), Slot: id.Slot()})
		}
	}
	return out
}

// HasAttachment reports whether an attachment matching id by name and slot is
// mounted. An id with the zero slot matches on name alone.
func (f *Firearm) HasAttachment(id attachment.Identifier) bool {
	resolved, ok := f.lookup(id)
	return ok && f.isSet(resolved)
}

// AddAttachment mounts id, replacing whatever occupied its slot.
//
// Postcondition: HasAttachment(id) is true, or ErrAttachmentUnavailable is
// returned and the code is unchanged.
func (f *Firearm) AddAttachment(id attachment.Identifier) error {
	resolved, ok := f.lookup(id)
	if !ok {
		return fmt.Errorf("inventory: Firearm.AddAttachment: %s on %s: %w", id, f.def.ID, ErrAttachmentUnavailable)
	}
	code := f.code
	for _, other := range f.available {
		if other.Slot() == resolved.Slot() && f.isSet(other) {
			code = attachment.SubtractFromCode(code, other)
		}
	}
	f.code = attachment.AddCode(resolved, code)
	return nil
}

// RemoveAttachment unmounts id.
//
// Postcondition: HasAttachment(id) is false on success.
func (f *Firearm) RemoveAttachment(id attachment.Identifier) error {
	resolved, ok := f.lookup(id)
	if !ok {
		return fmt.Errorf("inventory: Firearm.RemoveAttachment: %s on %s: %w", id, f.def.ID, ErrAttachmentUnavailable)
	}
	if !f.isSet(resolved) {
		return fmt.Errorf("inventory: Firearm.RemoveAttachment: %s on %s: %w", id, f.def.ID, ErrAttachmentNotMounted)
	}
	f.code = attachment.SubtractFromCode(f.code, resolved)
	return nil
}

// ResetToBase restores the firearm's default configuration.
func (f *Firearm) ResetToBase() {
	f.code = uint32(f.def.BaseCode)
}

func (f *Firearm) isSet(id attachment.Identifier) bool {
	return id.Code() != 0 && f.code&id.Code() == id.Code()
}

// lookup finds the resolved identifier for id among the available ones.
func (f *Firearm) lookup(id attachment.Identifier) (attachment.Identifier, bool) {
	for _, a := range f.available {
		if id.Resolved() {
			if a.Equal(id) {
				return a, true
			}
			continue
		}
		if a.Name() == id.Name() && (id.Slot() == attachment.SlotUnassigned || a.Slot() == id.Slot()) {
			return a, true
		}
	}
	return attachment.Identifier{}, false
}
