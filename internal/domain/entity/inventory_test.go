package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
)

func TestParseQuantity(t *testing.T) {
	valid := []struct {
		in   any
		want int64
	}{
		{int(7), 7},
		{int64(-3), -3},
		{float64(12), 12},
		{json.Number("42"), 42},
		{"15", 15},
		{"-8", -8},
		{"0", 0},
	}
	for _, tc := range valid {
		got, err := ParseQuantity(tc.in)
		require.NoError(t, err, "%v (%T)", tc.in, tc.in)
		assert.Equal(t, tc.want, got)
	}

	invalid := []any{nil, "muchos", "2.5", 2.5, json.Number("1.5"), true, []any{1}, map[string]any{}}
	for _, in := range invalid {
		_, err := ParseQuantity(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%v (%T)", in, in)
	}
}
