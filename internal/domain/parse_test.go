package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSampleRecord(t *testing.T) {
	t.Run("complete record", func(t *testing.T) {
		raw := RawSampleRecord{
			Lat:         "41.5234",
			Lon:         "-72.7512",
			Agency:      "CTDEEP",
			Date:        "2019-06-14",
			BCG:         "3.5",
			HUC8:        "01080205",
			HUC12:       "010802050304",
			ReachID:     "6076231",
			StreamOrder: "3",
			DrainSqKm:   "42.7",
		}

		s, err := ParseSampleRecord(raw)

		require.NoError(t, err)
		assert.Equal(t, 41.5234, s.Lat)
		assert.Equal(t, -72.7512, s.Lon)
		assert.Equal(t, "CTDEEP", s.Agency)
		assert.Equal(t, time.Date(2019, 6, 14, 0, 0, 0, 0, time.UTC), s.Date)
		assert.Equal(t, 2019, s.Year)
		assert.Equal(t, 6, s.Month)
		assert.Equal(t, 14, s.Day)
		assert.Equal(t, 3.5, s.BCG)
		assert.Equal(t, "01080205", s.HUC8)
		assert.Equal(t, "010802050304", s.HUC12)
		assert.Equal(t, "6076231", s.ReachID)
		assert.Equal(t, 3, s.StreamOrder)
		assert.Equal(t, 42.7, s.DrainSqKm)
		assert.True(t, strings.HasPrefix(s.RecordID, "bcg-"))
	})

	t.Run("slash date layout", func(t *testing.T) {
		raw := RawSampleRecord{Lat: "41.5", Lon: "-72.7", Agency: "MADEP", Date: "6/3/2018", BCG: "2"}
		s, err := ParseSampleRecord(raw)

		require.NoError(t, err)
		assert.Equal(t, 2018, s.Year)
		assert.Equal(t, 6, s.Month)
		assert.Equal(t, 3, s.Day)
	})

	t.Run("missing latitude rejected", func(t *testing.T) {
		raw := RawSampleRecord{Lat: "", Lon: "-72.7", Date: "2019-06-14"}
		_, err := ParseSampleRecord(raw)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingCoordinates)
	})

	t.Run("NA longitude rejected", func(t *testing.T) {
		raw := RawSampleRecord{Lat: "41.5", Lon: "NA", Date: "2019-06-14"}
		_, err := ParseSampleRecord(raw)

		assert.ErrorIs(t, err, ErrMissingCoordinates)
	})

	t.Run("garbage coordinate rejected", func(t *testing.T) {
		raw := RawSampleRecord{Lat: "41.5", Lon: "west of the bridge", Date: "2019-06-14"}
		_, err := ParseSampleRecord(raw)

		assert.ErrorIs(t, err, ErrMissingCoordinates)
	})

	t.Run("unparsable date rejected", func(t *testing.T) {
		raw := RawSampleRecord{Lat: "41.5", Lon: "-72.7", Date: "June 14th"}
		_, err := ParseSampleRecord(raw)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnparsableDate)
	})

	t.Run("optional fields degrade to zero", func(t *testing.T) {
		raw := RawSampleRecord{Lat: "41.5", Lon: "-72.7", Date: "2019-06-14", BCG: "NA", StreamOrder: "third"}
		s, err := ParseSampleRecord(raw)

		require.NoError(t, err)
		assert.Zero(t, s.BCG)
		assert.Zero(t, s.StreamOrder)
		assert.Zero(t, s.DrainSqKm)
	})

	t.Run("deterministic record ID", func(t *testing.T) {
		raw := RawSampleRecord{Lat: "41.5", Lon: "-72.7", Agency: "CTDEEP", Date: "2019-06-14", BCG: "3"}

		s1, err := ParseSampleRecord(raw)
		require.NoError(t, err)
		s2, err := ParseSampleRecord(raw)
		require.NoError(t, err)

		assert.Equal(t, s1.RecordID, s2.RecordID)
	})

	t.Run("different dates produce different IDs", func(t *testing.T) {
		a := RawSampleRecord{Lat: "41.5", Lon: "-72.7", Agency: "CTDEEP", Date: "2019-06-14"}
		b := RawSampleRecord{Lat: "41.5", Lon: "-72.7", Agency: "CTDEEP", Date: "2019-06-15"}

		s1, err := ParseSampleRecord(a)
		require.NoError(t, err)
		s2, err := ParseSampleRecord(b)
		require.NoError(t, err)

		assert.NotEqual(t, s1.RecordID, s2.RecordID)
	})
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"iso layout", "2019-06-14", time.Date(2019, 6, 14, 0, 0, 0, 0, time.UTC), false},
		{"short slash layout", "6/3/2018", time.Date(2018, 6, 3, 0, 0, 0, 0, time.UTC), false},
		{"padded slash layout", "06/03/2018", time.Date(2018, 6, 3, 0, 0, 0, 0, time.UTC), false},
		{"surrounding whitespace", " 2019-06-14 ", time.Date(2019, 6, 14, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"nonsense", "soon", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
