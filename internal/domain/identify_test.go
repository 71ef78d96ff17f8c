package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(lat, lon float64, agency string, year, month, day int, bcg float64) Sample {
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return Sample{
		Lat: lat, Lon: lon, Agency: agency,
		Date: date, Year: year, Month: month, Day: day,
		BCG: bcg, HUC8: "01080205",
	}
}

func TestAssignIdentifiers(t *testing.T) {
	t.Run("same coordinates share a site ID", func(t *testing.T) {
		samples := []Sample{
			sampleAt(41.5, -72.7, "CTDEEP", 2019, 6, 14, 3),
			sampleAt(42.1, -71.9, "MADEP", 2019, 7, 2, 4),
			sampleAt(41.5, -72.7, "CTDEEP", 2020, 6, 20, 2),
		}

		out, err := AssignIdentifiers(samples)
		require.NoError(t, err)
		require.Len(t, out, 3)

		assert.Equal(t, 1, out[0].SiteID)
		assert.Equal(t, 2, out[1].SiteID)
		assert.Equal(t, 1, out[2].SiteID)
	})

	t.Run("exact equality only", func(t *testing.T) {
		samples := []Sample{
			sampleAt(41.5, -72.7, "CTDEEP", 2019, 6, 14, 3),
			sampleAt(41.5000001, -72.7, "CTDEEP", 2019, 6, 14, 3),
		}

		out, err := AssignIdentifiers(samples)
		require.NoError(t, err)
		assert.NotEqual(t, out[0].SiteID, out[1].SiteID)
	})

	t.Run("agency splits site-agency ID but not site ID", func(t *testing.T) {
		samples := []Sample{
			sampleAt(41.5, -72.7, "CTDEEP", 2019, 6, 14, 3),
			sampleAt(41.5, -72.7, "EPA", 2019, 6, 14, 3),
			sampleAt(41.5, -72.7, "CTDEEP", 2020, 5, 1, 2),
		}

		out, err := AssignIdentifiers(samples)
		require.NoError(t, err)

		assert.Equal(t, out[0].SiteID, out[1].SiteID)
		assert.NotEqual(t, out[0].SiteAgencyID, out[1].SiteAgencyID)
		assert.Equal(t, out[0].SiteAgencyID, out[2].SiteAgencyID)
	})

	t.Run("first appearance order", func(t *testing.T) {
		samples := []Sample{
			sampleAt(43.0, -70.0, "NHDES", 2018, 8, 1, 5),
			sampleAt(41.5, -72.7, "CTDEEP", 2019, 6, 14, 3),
			sampleAt(43.0, -70.0, "NHDES", 2019, 8, 1, 5),
		}

		out, err := AssignIdentifiers(samples)
		require.NoError(t, err)

		assert.Equal(t, 1, out[0].SiteID)
		assert.Equal(t, 2, out[1].SiteID)
		assert.Equal(t, 1, out[2].SiteID)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		samples := []Sample{
			sampleAt(41.5, -72.7, "CTDEEP", 2019, 6, 14, 3),
			sampleAt(42.1, -71.9, "MADEP", 2019, 7, 2, 4),
		}

		out1, err := AssignIdentifiers(samples)
		require.NoError(t, err)
		out2, err := AssignIdentifiers(samples)
		require.NoError(t, err)

		for i := range out1 {
			assert.Equal(t, out1[i].SiteID, out2[i].SiteID)
			assert.Equal(t, out1[i].SiteAgencyID, out2[i].SiteAgencyID)
		}
	})

	t.Run("NaN coordinate rejects the run", func(t *testing.T) {
		samples := []Sample{
			sampleAt(41.5, -72.7, "CTDEEP", 2019, 6, 14, 3),
			sampleAt(math.NaN(), -72.7, "CTDEEP", 2019, 6, 14, 3),
		}

		_, err := AssignIdentifiers(samples)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingCoordinates)
	})

	t.Run("empty input", func(t *testing.T) {
		out, err := AssignIdentifiers(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
