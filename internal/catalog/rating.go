package catalog

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

const ratingPlaces = 2

// Rating is an average rating kept at two fractional digits. The zero value
// is 0.00.
type Rating struct {
	value decimal.Decimal
}

func NewRating(value float64) Rating {
	return RatingFromDecimal(decimal.NewFromFloat(value))
}

func RatingFromDecimal(value decimal.Decimal) Rating {
	return Rating{value: value.Round(ratingPlaces)}
}

func ParseRating(text string) (Rating, error) {
	value, err := decimal.NewFromString(text)
	if err != nil {
		return Rating{}, fmt.Errorf("parse rating %q: %w", text, err)
	}
	return RatingFromDecimal(value), nil
}

func (r Rating) Decimal() decimal.Decimal {
	return r.value.Round(ratingPlaces)
}

func (r Rating) String() string {
	return r.value.StringFixed(ratingPlaces)
}

// InRange reports whether the rating lies within [0.00, 5.00].
func (r Rating) InRange() bool {
	return !r.value.IsNegative() && r.value.LessThanOrEqual(decimal.NewFromInt(5))
}

// MarshalJSON emits a bare JSON number with exactly two decimals.
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (r *Rating) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if text == "" || text == "null" {
		*r = Rating{}
		return nil
	}
	parsed, err := ParseRating(text)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
