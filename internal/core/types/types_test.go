package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_Construction(t *testing.T) {
	assert.Equal(t, Quantity(120_000), NewQuantityFromInt(12))
	assert.Equal(t, Quantity(25_000), NewQuantityFromFloat64(2.5))
	assert.Equal(t, Quantity(12_345), NewQuantityFromInt64Scaled(12_345))
}

func TestQuantity_String(t *testing.T) {
	assert.Equal(t, "12.0000", NewQuantityFromInt(12).String())
	assert.Equal(t, "2.5000", NewQuantityFromFloat64(2.5).String())
	assert.Equal(t, "0.0001", Quantity(1).String())
	assert.Equal(t, "-3.2500", NewQuantityFromFloat64(-3.25).String())
	assert.Equal(t, "0.0000", Quantity(0).String())
}

func TestQuantity_Arithmetic(t *testing.T) {
	q := NewQuantityFromInt(5)
	assert.Equal(t, NewQuantityFromInt(60), q.MulInt(12))
	assert.Equal(t, NewQuantityFromInt(3), NewQuantityFromInt(3).Min(NewQuantityFromInt(7)))
	assert.Equal(t, NewQuantityFromInt(3), NewQuantityFromInt(7).Min(NewQuantityFromInt(3)))

	assert.True(t, Quantity(0).IsZero())
	assert.True(t, Quantity(1).IsPositive())
	assert.True(t, Quantity(-1).IsNegative())
}

func TestQuantity_Decimal(t *testing.T) {
	cost := NewMoney(2.00)
	total := cost.Mul(NewQuantityFromInt(60).Decimal())
	assert.Equal(t, "120.00", FormatMoney(total))

	fractional := NewMoney(4.00).Mul(NewQuantityFromFloat64(1.25).Decimal())
	assert.Equal(t, "5.00", FormatMoney(fractional))
}

func TestQuantity_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Qty Quantity `json:"qty"`
	}

	out, err := json.Marshal(payload{Qty: NewQuantityFromFloat64(2.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"qty":2.5000}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"qty":12.75}`), &in))
	assert.Equal(t, NewQuantityFromFloat64(12.75), in.Qty)

	require.NoError(t, json.Unmarshal([]byte(`{"qty":"3.5"}`), &in))
	assert.Equal(t, NewQuantityFromFloat64(3.5), in.Qty)

	require.NoError(t, json.Unmarshal([]byte(`{"qty":null}`), &in))
	assert.True(t, in.Qty.IsZero())

	// beyond 4 digits truncates
	require.NoError(t, json.Unmarshal([]byte(`{"qty":1.123456}`), &in))
	assert.Equal(t, Quantity(11_234), in.Qty)
}

func TestMoney_Formatting(t *testing.T) {
	assert.Equal(t, "150.00", FormatMoney(NewMoney(150)))
	assert.Equal(t, "30.50", FormatMoney(MustMoney("30.5")))
	assert.Equal(t, "0.00", FormatMoney(ZeroMoney()))

	m, err := NewMoneyFromString("12.345")
	require.NoError(t, err)
	assert.Equal(t, "12.35", FormatMoney(m))
}
