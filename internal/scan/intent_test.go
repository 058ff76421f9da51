package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent_OrderMode(t *testing.T) {
	intent, err := ParseIntent([]byte(`{"mode":"order","orderId":"o1","code":"111","quantity":2,"price":4.5}`))
	require.NoError(t, err)

	require.NotNil(t, intent.Order)
	assert.Nil(t, intent.Catalog)
	assert.Equal(t, "o1", intent.Order.OrderID)
	assert.Equal(t, "111", intent.Order.Code)
	assert.Equal(t, 2, intent.Order.Quantity)
	assert.Equal(t, 4.5, intent.Order.Price)
}

func TestParseIntent_CatalogMode(t *testing.T) {
	intent, err := ParseIntent([]byte(`{"mode":"catalog","code":"111"}`))
	require.NoError(t, err)

	require.NotNil(t, intent.Catalog)
	assert.Nil(t, intent.Order)
	assert.Equal(t, "111", intent.Catalog.Code)
}

func TestParseIntent_Errors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"bad json", `{`},
		{"missing code", `{"mode":"order","orderId":"o1"}`},
		{"order mode without orderId", `{"mode":"order","code":"111"}`},
		{"unknown mode", `{"mode":"inventory","code":"111"}`},
		{"empty mode", `{"code":"111"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIntent([]byte(tc.payload))
			require.Error(t, err)
		})
	}
}

func TestParseIntent_UnknownModeSentinel(t *testing.T) {
	_, err := ParseIntent([]byte(`{"mode":"inventory","code":"111"}`))
	require.ErrorIs(t, err, ErrUnknownMode)
}
