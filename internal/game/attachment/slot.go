package attachment

import "fmt"

// Slot is the mounting position an attachment occupies on a firearm. A
// firearm carries at most one attachment per slot.
type Slot uint8

const (
	SlotUnassigned Slot = iota
	SlotSight
	SlotBarrel
	SlotSideRail
	SlotBottomRail
	SlotAmmunition
	SlotStability
	SlotStock
	SlotBody
	slotCount
)

var slotText = [slotCount]string{
	SlotUnassigned: "Unassigned",
	SlotSight:      "Sight",
	SlotBarrel:     "Barrel",
	SlotSideRail:   "SideRail",
	SlotBottomRail: "BottomRail",
	SlotAmmunition: "Ammunition",
	SlotStability:  "Stability",
	SlotStock:      "Stock",
	SlotBody:       "Body",
}

func (s Slot) String() string {
	if s < slotCount {
		return slotText[s]
	}
	return fmt.Sprintf("Slot(%d)", uint8(s))
}

// Valid reports whether s is a member of the enumeration.
func (s Slot) Valid() bool {
	return s < slotCount
}

// ParseSlot returns the Slot whose canonical text is exactly s.
func ParseSlot(s string) (Slot, bool) {
	for i, text := range slotText {
		if text == s {
			return Slot(i), true
		}
	}
	return SlotUnassigned, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("attachment: invalid slot %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Slot) UnmarshalText(text []byte) error {
	parsed, ok := ParseSlot(string(text))
	if !ok {
		return fmt.Errorf("attachment: unknown slot %q", text)
	}
	*s = parsed
	return nil
}
