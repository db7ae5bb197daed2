package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitDaysUnmarshal(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		var d TransitDays
		require.NoError(t, json.Unmarshal([]byte(`3`), &d))
		assert.True(t, d.Numeric)
		assert.Equal(t, 3, d.NumOr(99))
		assert.Equal(t, "3", d.String())
	})

	t.Run("range string", func(t *testing.T) {
		var d TransitDays
		require.NoError(t, json.Unmarshal([]byte(`"1-2"`), &d))
		assert.False(t, d.Numeric)
		assert.Equal(t, 99, d.NumOr(99))
		assert.Equal(t, "1-2", d.String())
	})

	t.Run("garbage", func(t *testing.T) {
		var d TransitDays
		assert.Error(t, json.Unmarshal([]byte(`{}`), &d))
	})
}

func testRates() RatesData {
	return RatesData{
		Source: "simulated",
		Rates: []Rate{
			{Carrier: "USPS", Service: "Priority Mail", Price: 14.50, Days: TransitDays{Text: "2", Value: 2, Numeric: true}},
			{Carrier: "UPS", Service: "Ground", Price: 12.99, Days: TransitDays{Text: "3", Value: 3, Numeric: true}},
			{Carrier: "FedEx", Service: "2Day", Price: 21.24, Days: TransitDays{Text: "1-2"}},
			{Carrier: "UPS", Service: "Next Day Air", Price: 19.80, Days: TransitDays{Text: "1", Value: 1, Numeric: true}},
		},
	}
}

func TestRatesCheapest(t *testing.T) {
	cheapest, ok := testRates().Cheapest()
	require.True(t, ok)
	assert.Equal(t, "UPS", cheapest.Carrier)
	assert.Equal(t, "Ground", cheapest.Service)

	_, ok = RatesData{}.Cheapest()
	assert.False(t, ok)
}

func TestRatesFastest(t *testing.T) {
	// FedEx 2Day quotes a "1-2" range; without a numeric day count it
	// must sort behind every numeric quote.
	fastest, ok := testRates().Fastest()
	require.True(t, ok)
	assert.Equal(t, "Next Day Air", fastest.Service)

	_, ok = RatesData{}.Fastest()
	assert.False(t, ok)
}

func TestRatesSavings(t *testing.T) {
	// Spread between the most and least expensive quote: 21.24 - 12.99.
	assert.InDelta(t, 8.25, testRates().Savings(), 0.001)
	assert.Zero(t, RatesData{}.Savings())

	one := RatesData{Rates: []Rate{{Price: 10}}}
	assert.Zero(t, one.Savings())
}
