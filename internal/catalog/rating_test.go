package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingMarshalsTwoDecimals(t *testing.T) {
	cases := map[string]Rating{
		"4.20": NewRating(4.2),
		"3.90": NewRating(3.9),
		"0.00": {},
		"5.00": NewRating(5),
		"4.57": NewRating(4.567),
	}
	for want, rating := range cases {
		encoded, err := json.Marshal(rating)
		require.NoError(t, err)
		assert.Equal(t, want, string(encoded))
	}
}

func TestRatingUnmarshal(t *testing.T) {
	var rating Rating
	require.NoError(t, json.Unmarshal([]byte(`4.2`), &rating))
	assert.Equal(t, "4.20", rating.String())

	require.NoError(t, json.Unmarshal([]byte(`"3.85"`), &rating))
	assert.Equal(t, "3.85", rating.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &rating))
	assert.Equal(t, "0.00", rating.String())

	assert.Error(t, json.Unmarshal([]byte(`"great"`), &rating))
}

func TestRatingFromDecimal(t *testing.T) {
	rating := RatingFromDecimal(decimal.RequireFromString("4.20"))
	assert.Equal(t, "4.20", rating.String())
	assert.True(t, rating.Decimal().Equal(decimal.RequireFromString("4.2")))
}

func TestRatingInRange(t *testing.T) {
	assert.True(t, NewRating(0).InRange())
	assert.True(t, NewRating(5).InRange())
	assert.False(t, NewRating(5.01).InRange())
	assert.False(t, NewRating(-0.5).InRange())
}
