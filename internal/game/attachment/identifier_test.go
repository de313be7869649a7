package attachment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/armory/internal/game/attachment"
)

type liveStub struct {
	name attachment.Name
	slot attachment.Slot
}

func (l liveStub) AttachmentName() attachment.Name { return l.name }
func (l liveStub) AttachmentSlot() attachment.Slot { return l.slot }

func drawName(t *rapid.T, label string) attachment.Name {
	return rapid.SampledFrom(attachment.Names()).Draw(t, label)
}

func drawSlot(t *rapid.T, label string) attachment.Slot {
	return attachment.Slot(rapid.IntRange(0, int(attachment.SlotBody)).Draw(t, label))
}

func drawIdentifier(t *rapid.T, label string) attachment.Identifier {
	return attachment.Resolve(
		rapid.Uint32().Draw(t, label+"_code"),
		drawName(t, label+"_name"),
		drawSlot(t, label+"_slot"),
	)
}

func TestNew_DefaultsCodeAndSlot(t *testing.T) {
	id := attachment.New(attachment.NameFlashlight)
	assert.Equal(t, uint32(0), id.Code())
	assert.Equal(t, attachment.NameFlashlight, id.Name())
	assert.Equal(t, attachment.SlotUnassigned, id.Slot())
	assert.False(t, id.Resolved())
}

func TestNewWithSlot_DefaultsCode(t *testing.T) {
	id := attachment.NewWithSlot(attachment.NameLaser, attachment.SlotSideRail)
	assert.Equal(t, uint32(0), id.Code())
	assert.Equal(t, attachment.NameLaser, id.Name())
	assert.Equal(t, attachment.SlotSideRail, id.Slot())
}

func TestZeroIdentifier_IsTotal(t *testing.T) {
	var id attachment.Identifier
	assert.Equal(t, "None", id.String())
	assert.True(t, id.Equal(attachment.Identifier{}))
	assert.False(t, id.NotEqual(attachment.Identifier{}))
	assert.Equal(t, attachment.Identifier{}.Hash(), id.Hash())
	assert.False(t, id.Matches(nil))
}

func TestProperty_Equal_IffAllFieldsMatch(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		b := drawIdentifier(rt, "b")
		want := a.Name() == b.Name() && a.Code() == b.Code() && a.Slot() == b.Slot()
		if a.Equal(b) != want {
			rt.Fatalf("Equal(%v, %v) = %v, want %v", a, b, a.Equal(b), want)
		}
		if (a == b) != want {
			rt.Fatalf("== disagrees with field comparison for %v, %v", a, b)
		}
	})
}

func TestProperty_NotEqual_IsNegationOfEqual(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		b := drawIdentifier(rt, "b")
		if a.NotEqual(b) == a.Equal(b) {
			rt.Fatalf("NotEqual must negate Equal for %v, %v", a, b)
		}
	})
}

func TestNotEqual_SingleFieldDifference(t *testing.T) {
	a := attachment.Resolve(4, attachment.NameFlashlight, attachment.SlotBarrel)
	b := attachment.Resolve(8, attachment.NameFlashlight, attachment.SlotBarrel)
	assert.True(t, a.NotEqual(b), "differing code alone makes identifiers unequal")
	assert.False(t, a.AllFieldsDiffer(b), "AllFieldsDiffer needs every field to differ")
}

func TestProperty_AllFieldsDiffer_RequiresEveryField(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		b := drawIdentifier(rt, "b")
		want := a.Name() != b.Name() && a.Code() != b.Code() && a.Slot() != b.Slot()
		if a.AllFieldsDiffer(b) != want {
			rt.Fatalf("AllFieldsDiffer(%v, %v) = %v, want %v", a, b, a.AllFieldsDiffer(b), want)
		}
	})
}

func TestProperty_Matches_IgnoresCodeAndIsSymmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		x := liveStub{name: drawName(rt, "x_name"), slot: drawSlot(rt, "x_slot")}
		want := a.Name() == x.name && a.Slot() == x.slot
		if a.Matches(x) != want {
			rt.Fatalf("Matches(%v, %+v) = %v, want %v", a, x, a.Matches(x), want)
		}
		if attachment.MatchesLive(x, a) != want {
			rt.Fatal("MatchesLive must agree with Matches")
		}
		if attachment.MismatchesLive(x, a) == want {
			rt.Fatal("MismatchesLive must negate MatchesLive")
		}
	})
}

func TestMatches_UnresolvedIdentifier(t *testing.T) {
	live := liveStub{name: attachment.NameFlashlight, slot: attachment.SlotBarrel}
	id := attachment.NewWithSlot(attachment.NameFlashlight, attachment.SlotBarrel)
	assert.True(t, id.Matches(live))
	assert.False(t, attachment.New(attachment.NameFlashlight).Matches(live))
}

func TestProperty_Hash_ConsistentWithEqual(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		b := attachment.Resolve(a.Code(), a.Name(), a.Slot())
		if a.Hash() != b.Hash() {
			rt.Fatalf("equal identifiers hashed differently: %v", a)
		}
	})
}

func TestHash_DistinguishesFields(t *testing.T) {
	base := attachment.Resolve(4, attachment.NameFlashlight, attachment.SlotBarrel)
	others := []attachment.Identifier{
		attachment.Resolve(8, attachment.NameFlashlight, attachment.SlotBarrel),
		attachment.Resolve(4, attachment.NameLaser, attachment.SlotBarrel),
		attachment.Resolve(4, attachment.NameFlashlight, attachment.SlotSideRail),
	}
	for _, o := range others {
		assert.NotEqual(t, base.Hash(), o.Hash(), "hash collision with %v", o)
	}
}

func TestIdentifier_UsableAsMapKey(t *testing.T) {
	seen := map[attachment.Identifier]int{}
	a := attachment.Resolve(4, attachment.NameFlashlight, attachment.SlotBarrel)
	seen[a]++
	seen[attachment.Resolve(4, attachment.NameFlashlight, attachment.SlotBarrel)]++
	seen[attachment.NewWithSlot(attachment.NameFlashlight, attachment.SlotBarrel)]++
	assert.Len(t, seen, 2)
	assert.Equal(t, 2, seen[a])
}

func TestProperty_String_IsNameText(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		if a.String() != a.Name().String() {
			rt.Fatalf("String() = %q, want %q", a.String(), a.Name().String())
		}
	})
}
