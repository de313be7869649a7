// Package attachment identifies firearm attachments by code, name, and
// mounting slot, and resolves them by name against a registry of the
// attachments each firearm can carry.
package attachment

import "fmt"

// Name enumerates every known attachment kind. The zero value is NameNone.
type Name uint8

const (
	NameNone Name = iota
	NameIronSights
	NameDotSight
	NameHoloSight
	NameNightVisionSight
	NameAmmoSight
	NameScopeSight
	NameStandardStock
	NameExtendedStock
	NameRetractedStock
	NameLightweightStock
	NameHeavyStock
	NameRecoilReducingStock
	NameNoRifleStock
	NameForegrip
	NameLaser
	NameFlashlight
	NameAmmoCounter
	NameStandardBarrel
	NameExtendedBarrel
	NameShortBarrel
	NameHeavyBarrel
	NameSoundSuppressor
	NameFlashHider
	NameMuzzleBrake
	NameMuzzleBooster
	NameStandardMagFMJ
	NameStandardMagAP
	NameStandardMagJHP
	NameExtendedMagFMJ
	NameExtendedMagAP
	NameExtendedMagJHP
	NameDrumMagFMJ
	NameDrumMagAP
	NameDrumMagJHP
	NameLowcapMagFMJ
	NameLowcapMagAP
	NameLowcapMagJHP
	NameCylinderMag4
	NameCylinderMag6
	NameCylinderMag8
	NameCarbineBody
	NameRifleBody
	NameShortBody
	NameShotgunChoke
	NameShotgunWideShot
	NameShotgunSingleShot
	NameShotgunDoubleShot
	nameCount
)

var nameText = [nameCount]string{
	NameNone:                "None",
	NameIronSights:          "IronSights",
	NameDotSight:            "DotSight",
	NameHoloSight:           "HoloSight",
	NameNightVisionSight:    "NightVisionSight",
	NameAmmoSight:           "AmmoSight",
	NameScopeSight:          "ScopeSight",
	NameStandardStock:       "StandardStock",
	NameExtendedStock:       "ExtendedStock",
	NameRetractedStock:      "RetractedStock",
	NameLightweightStock:    "LightweightStock",
	NameHeavyStock:          "HeavyStock",
	NameRecoilReducingStock: "RecoilReducingStock",
	NameNoRifleStock:        "NoRifleStock",
	NameForegrip:            "Foregrip",
	NameLaser:               "Laser",
	NameFlashlight:          "Flashlight",
	NameAmmoCounter:         "AmmoCounter",
	NameStandardBarrel:      "StandardBarrel",
	NameExtendedBarrel:      "ExtendedBarrel",
	NameShortBarrel:         "ShortBarrel",
	NameHeavyBarrel:         "HeavyBarrel",
	NameSoundSuppressor:     "SoundSuppressor",
	NameFlashHider:          "FlashHider",
	NameMuzzleBrake:         "MuzzleBrake",
	NameMuzzleBooster:       "MuzzleBooster",
	NameStandardMagFMJ:      "StandardMagFMJ",
	NameStandardMagAP:       "StandardMagAP",
	NameStandardMagJHP:      "StandardMagJHP",
	NameExtendedMagFMJ:      "ExtendedMagFMJ",
	NameExtendedMagAP:       "ExtendedMagAP",
	NameExtendedMagJHP:      "ExtendedMagJHP",
	NameDrumMagFMJ:          "DrumMagFMJ",
	NameDrumMagAP:           "DrumMagAP",
	NameDrumMagJHP:          "DrumMagJHP",
	NameLowcapMagFMJ:        "LowcapMagFMJ",
	NameLowcapMagAP:         "LowcapMagAP",
	NameLowcapMagJHP:        "LowcapMagJHP",
	NameCylinderMag4:        "CylinderMag4",
	NameCylinderMag6:        "CylinderMag6",
	NameCylinderMag8:        "CylinderMag8",
	NameCarbineBody:         "CarbineBody",
	NameRifleBody:           "RifleBody",
	NameShortBody:           "ShortBody",
	NameShotgunChoke:        "ShotgunChoke",
	NameShotgunWideShot:     "ShotgunWideShot",
	NameShotgunSingleShot:   "ShotgunSingleShot",
	NameShotgunDoubleShot:   "ShotgunDoubleShot",
}

var namesByText = func() map[string]Name {
	m := make(map[string]Name, nameCount)
	for n, text := range nameText {
		m[text] = Name(n)
	}
	return m
}()

// String returns the canonical display text of n.
func (n Name) String() string {
	if n < nameCount {
		return nameText[n]
	}
	return fmt.Sprintf("Name(%d)", uint8(n))
}

// Valid reports whether n is a member of the enumeration.
func (n Name) Valid() bool {
	return n < nameCount
}

// Names returns every known Name in declaration order, NameNone included.
func Names() []Name {
	out := make([]Name, 0, nameCount)
	for n := NameNone; n < nameCount; n++ {
		out = append(out, n)
	}
	return out
}

// ParseName returns the Name whose canonical text is exactly s.
// Matching is case-sensitive and does not trim.
func ParseName(s string) (Name, bool) {
	n, ok := namesByText[s]
	return n, ok
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("attachment: invalid name %d", uint8(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, ok := ParseName(string(text))
	if !ok {
		return fmt.Errorf("attachment: unknown name %q", text)
	}
	*n = parsed
	return nil
}
