package domain

import (
	"fmt"
	"math"
)

type coordKey struct {
	lat, lon float64
}

type siteAgencyKey struct {
	lat, lon float64
	agency   string
}

// AssignIdentifiers assigns each sample a site ID keyed by exact (lat, lon)
// equality and a finer site-agency ID keyed by (lat, lon, agency). IDs are
// sequential integers starting at 1, assigned in order of first appearance,
// so the mapping is reproducible for a fixed input ordering.
//
// Coordinates must be present; a NaN coordinate means an unparsed record
// reached this stage and the whole run is rejected rather than assigning a
// spurious identifier.
func AssignIdentifiers(samples []Sample) ([]SiteSample, error) {
	siteIDs := make(map[coordKey]int)
	siteAgencyIDs := make(map[siteAgencyKey]int)

	out := make([]SiteSample, 0, len(samples))
	for i, s := range samples {
		if math.IsNaN(s.Lat) || math.IsNaN(s.Lon) {
			return nil, fmt.Errorf("assign identifiers: record %d: %w", i, ErrMissingCoordinates)
		}

		ck := coordKey{lat: s.Lat, lon: s.Lon}
		siteID, ok := siteIDs[ck]
		if !ok {
			siteID = len(siteIDs) + 1
			siteIDs[ck] = siteID
		}

		sak := siteAgencyKey{lat: s.Lat, lon: s.Lon, agency: s.Agency}
		siteAgencyID, ok := siteAgencyIDs[sak]
		if !ok {
			siteAgencyID = len(siteAgencyIDs) + 1
			siteAgencyIDs[sak] = siteAgencyID
		}

		out = append(out, SiteSample{
			Sample:       s,
			SiteID:       siteID,
			SiteAgencyID: siteAgencyID,
		})
	}
	return out, nil
}
