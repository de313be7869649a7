package attachment

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Identifier names one attachment: its protocol code bit-mask, its Name and
// the Slot it mounts in. A zero code means the identifier has not been
// resolved against a firearm's attachment list.
//
// Identifier is an immutable value. It is comparable, so == agrees with Equal
// and identifiers may be used directly as map keys.
type Identifier struct {
	code uint32
	name Name
	slot Slot
}

// Live is a mounted attachment owned by a firearm instance. Live values do
// not expose a code comparable with Identifier codes.
type Live interface {
	AttachmentName() Name
	AttachmentSlot() Slot
}

// New returns an unresolved Identifier for name with the zero slot.
func New(name Name) Identifier {
	return Identifier{name: name}
}

// NewWithSlot returns an unresolved Identifier for name mounted in slot.
func NewWithSlot(name Name, slot Slot) Identifier {
	return Identifier{name: name, slot: slot}
}

// resolve is reserved for the registry, which binds names to the codes a
// firearm actually uses.
func resolve(code uint32, name Name, slot Slot) Identifier {
	return Identifier{code: code, name: name, slot: slot}
}

// Code returns the attachment code bit-mask.
func (id Identifier) Code() uint32 { return id.code }

// Name returns the attachment name.
func (id Identifier) Name() Name { return id.name }

// Slot returns the attachment slot.
func (id Identifier) Slot() Slot { return id.slot }

// Resolved reports whether id carries a non-zero code.
func (id Identifier) Resolved() bool { return id.code != 0 }

// Equal reports whether id and other agree on Name, Code, and Slot.
func (id Identifier) Equal(other Identifier) bool {
	return id.name == other.name && id.code == other.code && id.slot == other.slot
}

// NotEqual is the negation of Equal: true when any field differs.
func (id Identifier) NotEqual(other Identifier) bool {
	return !id.Equal(other)
}

// AllFieldsDiffer reports whether Name, Code, and Slot all differ at once.
// Older plugin code used this as its inequality test; it is not the
// negation of Equal.
func (id Identifier) AllFieldsDiffer(other Identifier) bool {
	return id.name != other.name && id.code != other.code && id.slot != other.slot
}

// Matches reports whether live has the same Name and Slot as id. The code is
// not compared.
func (id Identifier) Matches(live Live) bool {
	if live == nil {
		return false
	}
	return id.name == live.AttachmentName() && id.slot == live.AttachmentSlot()
}

// MatchesLive is Matches with the operands in live-first order.
func MatchesLive(live Live, id Identifier) bool {
	return id.Matches(live)
}

// MismatchesLive reports whether live differs from id in Name or Slot.
func MismatchesLive(live Live, id Identifier) bool {
	return !id.Matches(live)
}

// Hash returns a structural hash of Name, Code, and Slot. Equal identifiers
// always hash equally.
func (id Identifier) Hash() uint64 {
	var buf [6]byte
	binary.LittleEndian.PutUint32(buf[:4], id.code)
	buf[4] = byte(id.name)
	buf[5] = byte(id.slot)
	return xxhash.Sum64(buf[:])
}

// String returns the canonical text of the Name. Code and Slot are ignored.
func (id Identifier) String() string {
	return id.name.String()
}
