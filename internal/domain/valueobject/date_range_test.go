package valueobject_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/domain/valueobject"
)

func TestParseDateRange(t *testing.T) {
	t.Run("parses both bounds", func(t *testing.T) {
		r, err := valueobject.ParseDateRange("2023-01-01", "2023-01-31")

		require.NoError(t, err)
		require.NotNil(t, r.Start)
		require.NotNil(t, r.End)
		assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *r.Start)
		assert.Equal(t, time.Date(2023, 1, 31, 23, 59, 59, 0, time.UTC), *r.End)
		assert.True(t, r.IsActive())
		assert.Equal(t, "2023-01-01 to 2023-01-31", r.String())
	})

	t.Run("empty bounds are open", func(t *testing.T) {
		r, err := valueobject.ParseDateRange("", "  ")

		require.NoError(t, err)
		assert.Nil(t, r.Start)
		assert.Nil(t, r.End)
		assert.False(t, r.IsActive())
		assert.Equal(t, "any to any", r.String())
	})

	t.Run("same day is valid", func(t *testing.T) {
		_, err := valueobject.ParseDateRange("2023-05-05", "2023-05-05")
		assert.NoError(t, err)
	})

	t.Run("returns invalid range when start is after end", func(t *testing.T) {
		_, err := valueobject.ParseDateRange("2023-02-01", "2023-01-31")
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("returns malformed date for bad input", func(t *testing.T) {
		_, err := valueobject.ParseDateRange("01/02/2023", "")
		assert.ErrorIs(t, err, domain.ErrMalformedDate)
		assert.Contains(t, err.Error(), "01/02/2023")

		_, err = valueobject.ParseDateRange("", "2023-13-01")
		assert.ErrorIs(t, err, domain.ErrMalformedDate)
	})
}

func TestDateRange_Contains(t *testing.T) {
	r, err := valueobject.ParseDateRange("2023-01-01", "2023-01-31")
	require.NoError(t, err)

	t.Run("includes late evening of the last day", func(t *testing.T) {
		assert.True(t, r.Contains(time.Date(2023, 1, 31, 23, 0, 0, 0, time.UTC)))
	})

	t.Run("excludes the following day", func(t *testing.T) {
		assert.False(t, r.Contains(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("includes the first instant", func(t *testing.T) {
		assert.True(t, r.Contains(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("compares zoned times on their wall clock", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		// 08:00 in Tokyo is still Jan 31 in UTC, but the wall clock says Feb 1.
		assert.False(t, r.Contains(time.Date(2023, 2, 1, 8, 0, 0, 0, tokyo)))

		pacific := time.FixedZone("PST", -8*60*60)
		// 23:00 Jan 31 in California is Feb 1 in UTC.
		assert.True(t, r.Contains(time.Date(2023, 1, 31, 23, 0, 0, 0, pacific)))
	})

	t.Run("open range contains everything", func(t *testing.T) {
		assert.True(t, valueobject.DateRange{}.Contains(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestNormalizeTime(t *testing.T) {
	zone := time.FixedZone("", -3*60*60)
	in := time.Date(2024, 3, 10, 14, 30, 15, 500, zone)

	out := valueobject.NormalizeTime(in)

	assert.Equal(t, time.Date(2024, 3, 10, 14, 30, 15, 500, time.UTC), out)
	assert.Equal(t, out, valueobject.NormalizeTime(out))
}
