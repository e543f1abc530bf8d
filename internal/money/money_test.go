package money_test

import (
	"encoding/json"
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/money"
)

func TestFromString(t *testing.T) {
	d, err := money.FromString("123456.78")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("123456.78")))

	d, err = money.FromString(" 1200,50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("1200.50")))

	_, err = money.FromString("not-a-number")
	require.Error(t, err)
}

func TestMustFromString(t *testing.T) {
	d := money.MustFromString("999.99")
	assert.True(t, d.Equal(dec.RequireFromString("999.99")))

	assert.Panics(t, func() {
		money.MustFromString("invalid")
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"json number", json.Number("1500.25"), "1500.25"},
		{"string", "20", "20"},
		{"float", 10.5, "10.5"},
		{"int", 3, "3"},
		{"int64", int64(4), "4"},
		{"decimal", dec.RequireFromString("7.7"), "7.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec.RequireFromString(tt.want)), "got %s", got)
		})
	}

	_, err := money.Parse(map[string]any{})
	assert.Error(t, err)
	_, err = money.Parse(true)
	assert.Error(t, err)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, json.Number("1234.5"), money.Number(dec.RequireFromString("1234.50")))
}

func TestRound2(t *testing.T) {
	assert.True(t, money.Round2(dec.RequireFromString("10.555")).Equal(dec.RequireFromString("10.56")))
}
