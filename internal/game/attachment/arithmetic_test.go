package attachment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/armory/internal/game/attachment"
)

type baseCode uint32

func TestProperty_AddCode(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		n := rapid.Uint32().Draw(rt, "n")
		if got := attachment.AddCode(a, n); got != a.Code()+n {
			rt.Fatalf("AddCode(%d, %d) = %d", a.Code(), n, got)
		}
		if attachment.AddCode(a, baseCode(n)) != attachment.AddCode(a, n) {
			rt.Fatal("AddCode must treat base codes like plain integers")
		}
	})
}

func TestProperty_SubtractCode(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawIdentifier(rt, "a")
		n := rapid.Uint32().Draw(rt, "n")
		if got := attachment.SubtractCode(a, n); got != a.Code()-n {
			rt.Fatalf("SubtractCode(%d, %d) = %d", a.Code(), n, got)
		}
		if got := attachment.SubtractFromCode(n, a); got != n-a.Code() {
			rt.Fatalf("SubtractFromCode(%d, %d) = %d", n, a.Code(), got)
		}
		if attachment.SubtractFromCode(baseCode(n), a) != attachment.SubtractFromCode(n, a) {
			rt.Fatal("SubtractFromCode must treat base codes like plain integers")
		}
	})
}

func TestArithmetic_Wraps(t *testing.T) {
	id := attachment.Resolve(4, attachment.NameFlashlight, attachment.SlotBarrel)
	assert.Equal(t, uint32(math.MaxUint32-1), attachment.SubtractCode(id, uint32(6)))
	assert.Equal(t, uint32(2), attachment.SubtractFromCode(uint32(6), id))
	assert.Equal(t, uint32(3), attachment.AddCode(id, uint32(math.MaxUint32)))
}

func TestArithmetic_UnresolvedIdentifierIsZeroCode(t *testing.T) {
	id := attachment.New(attachment.NameLaser)
	assert.Equal(t, uint32(7), attachment.AddCode(id, uint32(7)))
	assert.Equal(t, uint32(7), attachment.SubtractFromCode(uint32(7), id))
}
