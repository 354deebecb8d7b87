package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "options-payoff/internal/errors"
)

func TestPosition_Valid(t *testing.T) {
	good := NewPosition(Call, Long, 100, 5, 1)
	assert.True(t, good.Valid())
	assert.True(t, good.WithPremium(0).Valid(), "zero premium is allowed")

	tests := []struct {
		name string
		p    Position
	}{
		{"zero value", Position{}},
		{"blank kind and direction", Position{Strike: 100, Premium: 5, Quantity: 1}},
		{"unknown kind", good.WithKind("FUTURE")},
		{"lowercase kind", good.WithKind("call")},
		{"blank direction", good.WithDirection("")},
		{"zero strike", good.WithStrike(0)},
		{"negative premium", good.WithPremium(-1)},
		{"zero quantity", good.WithQuantity(0)},
		{"NaN strike", good.WithStrike(math.NaN())},
		{"infinite premium", good.WithPremium(math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.p.Valid())
		})
	}
}

func TestPosition_SettersCopy(t *testing.T) {
	orig := NewPosition(Call, Long, 100, 5, 1)
	orig.ID = "leg-1"
	orig.Label = "hedge"

	edited := orig.
		WithKind(Put).
		WithDirection(Short).
		WithStrike(95).
		WithPremium(2.5).
		WithQuantity(3)

	assert.Equal(t, Call, orig.Kind)
	assert.Equal(t, 100.0, orig.Strike)
	assert.Equal(t, 5.0, orig.Premium)

	assert.Equal(t, Put, edited.Kind)
	assert.Equal(t, Short, edited.Direction)
	assert.Equal(t, 95.0, edited.Strike)
	assert.Equal(t, 2.5, edited.Premium)
	assert.Equal(t, 3, edited.Quantity)
	assert.Equal(t, "leg-1", edited.ID)
	assert.Equal(t, "hedge", edited.Label)
	assert.False(t, edited.IsCall())
	assert.False(t, edited.IsLong())
	assert.True(t, orig.IsCall())
	assert.True(t, orig.IsLong())
}

func TestPosition_Mirror(t *testing.T) {
	p := NewPosition(Put, Long, 90, 2, 2)
	assert.Equal(t, Short, p.Mirror().Direction)
	assert.Equal(t, p, p.Mirror().Mirror())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "LONG CALL 100@8x1", NewPosition(Call, Long, 100, 8, 1).String())
	assert.Equal(t, "SHORT PUT 95.5@2.25x3", NewPosition(Put, Short, 95.5, 2.25, 3).String())
}

func TestParseKindAndDirection(t *testing.T) {
	for _, in := range []string{"call", "CALL", "ce", "c"} {
		kind, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, Call, kind, in)
	}
	kind, err := ParseKind("pe")
	require.NoError(t, err)
	assert.Equal(t, Put, kind)

	dir, err := ParseDirection("sell")
	require.NoError(t, err)
	assert.Equal(t, Short, dir)

	_, err = ParseKind("future")
	assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation))
	_, err = ParseDirection("hold")
	assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation))
}
