package dedupe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/photo-locations/internal/domain"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
	"github.com/marcos-nsantos/photo-locations/internal/usecase/dedupe"
)

// metersNorth is the latitude delta of m meters along a meridian.
func metersNorth(m float64) float64 {
	return m / 111_194.93
}

func record(id string, lat, lng float64) entity.LocationRecord {
	return entity.LocationRecord{ID: id, Latitude: lat, Longitude: lng}
}

func ids(records []entity.LocationRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestService_Deduplicate(t *testing.T) {
	svc := dedupe.NewService()

	t.Run("drops the second of two records 30m apart at 200m", func(t *testing.T) {
		records := []entity.LocationRecord{
			record("a", 45, 7),
			record("b", 45+metersNorth(30), 7),
		}

		kept, err := svc.Deduplicate(records, 200)

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(kept))
	})

	t.Run("keeps both records 30m apart at 10m", func(t *testing.T) {
		records := []entity.LocationRecord{
			record("a", 45, 7),
			record("b", 45+metersNorth(30), 7),
		}

		kept, err := svc.Deduplicate(records, 10)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(kept))
	})

	t.Run("threshold zero removes only exact duplicates", func(t *testing.T) {
		records := []entity.LocationRecord{
			record("a", 45, 7),
			record("b", 45, 7),
			record("c", 45+metersNorth(1), 7),
		}

		kept, err := svc.Deduplicate(records, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(kept))
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		records := []entity.LocationRecord{
			record("far", 10, 10),
			record("first", 45, 7),
			record("near-first", 45+metersNorth(50), 7),
			record("chain", 45+metersNorth(150), 7),
		}

		kept, err := svc.Deduplicate(records, 100)

		require.NoError(t, err)
		assert.Equal(t, []string{"far", "first", "chain"}, ids(kept))
	})

	t.Run("is idempotent", func(t *testing.T) {
		records := []entity.LocationRecord{
			record("a", 45, 7),
			record("b", 45+metersNorth(120), 7),
			record("c", 45+metersNorth(250), 7),
			record("d", 45+metersNorth(260), 7),
			record("e", -33.86, 151.2),
			record("f", -33.86, 151.2),
		}

		for _, threshold := range []float64{0, 10, 150, 200, 1000} {
			once, err := svc.Deduplicate(records, threshold)
			require.NoError(t, err)

			twice, err := svc.Deduplicate(once, threshold)
			require.NoError(t, err)

			assert.Equal(t, once, twice, "threshold %v", threshold)
		}
	})

	t.Run("drops records without a valid coordinate", func(t *testing.T) {
		records := []entity.LocationRecord{
			record("zero", 0, 0),
			record("a", 45, 7),
			record("bad", 100, 7),
		}

		kept, err := svc.Deduplicate(records, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(kept))
	})

	t.Run("does not modify the input", func(t *testing.T) {
		records := []entity.LocationRecord{record("a", 45, 7), record("b", 45, 7)}

		_, err := svc.Deduplicate(records, 10)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(records))
	})

	t.Run("empty input", func(t *testing.T) {
		kept, err := svc.Deduplicate(nil, 200)

		require.NoError(t, err)
		assert.Empty(t, kept)
	})

	t.Run("rejects negative and nan thresholds", func(t *testing.T) {
		_, err := svc.Deduplicate(nil, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidThreshold)

		_, err = svc.Deduplicate(nil, math.NaN())
		assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
	})
}
