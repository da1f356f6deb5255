package segment_test

import (
	"slices"
	"testing"

	"github.com/aretw0/typeset/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Families(t *testing.T) {
	assert.Equal(t, segment.TypeNumeric, segment.TypeInteger.Parent())
	assert.Equal(t, segment.TypeNone, segment.TypeAlphanumeric.Parent())

	assert.True(t, segment.TypeInteger.Is(segment.TypeInteger))
	assert.True(t, segment.TypeInteger.Is(segment.TypeAlphanumeric))
	assert.False(t, segment.TypeInteger.Is(segment.TypeText))
	assert.True(t, segment.TypeVarBound.Is(segment.TypeCased))
	assert.True(t, segment.TypeRParenthesis.Is(segment.TypePair))
	assert.False(t, segment.TypePoint.Is(segment.TypeOperator))

	assert.Equal(t, segment.TypeAlphanumeric, segment.TypeVarBound.Root())
	assert.Equal(t, segment.TypeObject, segment.TypeFraction.Root())
}

func TestType_LegacyCodes(t *testing.T) {
	assert.Equal(t, 2, segment.TypeAlphanumeric.Code())
	assert.Equal(t, 4, segment.TypeNumeric.Code())
	assert.Equal(t, 16, segment.TypeInteger.Code())
	assert.Equal(t, 20, segment.TypeMantissa.Code())

	// The arithmetic scheme makes unrelated codes collide; Is does not.
	assert.Equal(t, segment.TypeCased.Code(), segment.TypeNonDecimal.Code())
	assert.NotEqual(t, segment.TypeCased, segment.TypeNonDecimal)
	assert.False(t, segment.TypeCased.Is(segment.TypeNumeric))
}

func TestType_ParseRoundTrip(t *testing.T) {
	for _, typ := range segment.Types() {
		got, err := segment.ParseType(typ.String())
		require.NoError(t, err, typ.String())
		assert.Equal(t, typ, got)
	}

	got, err := segment.ParseType("  Integer ")
	require.NoError(t, err)
	assert.Equal(t, segment.TypeInteger, got)

	_, err = segment.ParseType("bogus")
	assert.ErrorIs(t, err, segment.ErrUnknownType)

	assert.Equal(t, "type(999)", segment.Type(999).String())
	assert.False(t, segment.Type(999).Valid())
}

func TestTypeChain(t *testing.T) {
	c := segment.NewTypeChain("recurring integer", segment.TypeInteger, segment.TypeVinculum)
	require.NotNil(t, c)

	assert.Equal(t, "recurring integer", c.String())
	assert.Equal(t, segment.TypeInteger, c.Code())
	assert.Equal(t, segment.TypeVinculum, c.Next().Code())
	assert.Nil(t, c.Next().Next())

	assert.True(t, c.Contains(segment.TypeVinculum))
	assert.False(t, c.Contains(segment.TypeDot))
	link, ok := c.Get(segment.TypeVinculum)
	require.True(t, ok)
	assert.Equal(t, segment.TypeVinculum, link.Code())

	assert.Nil(t, segment.NewTypeChain("nothing"))
}

func TestTypeChain_Equal(t *testing.T) {
	iv := segment.NewTypeChain("a", segment.TypeInteger, segment.TypeVinculum)
	i := segment.NewTypeChain("b", segment.TypeInteger)
	id := segment.NewTypeChain("c", segment.TypeInteger, segment.TypeDot)

	assert.True(t, iv.Equal(i), "a missing tail matches any tail")
	assert.True(t, i.Equal(iv))
	assert.False(t, iv.Equal(id))
	assert.False(t, iv.Equal(nil))
	assert.True(t, (*segment.TypeChain)(nil).Equal(nil))
}

func TestTypeChain_Concat(t *testing.T) {
	head := segment.NewTypeChain("head", segment.TypeInteger)
	tail := segment.NewTypeChain("tail", segment.TypeVinculum, segment.TypeDot)

	joined := head.Concat(tail)
	assert.Equal(t, "head", joined.String())
	assert.Equal(t,
		[]segment.Type{segment.TypeInteger, segment.TypeVinculum, segment.TypeDot},
		slices.Collect(joined.All()))
	assert.Nil(t, head.Next(), "concat must not modify the receiver")
}
