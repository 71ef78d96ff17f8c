package domain

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Divergence reports a static site attribute that varies across records
// sharing a site ID. The first-seen value wins in the aggregate output; the
// divergence is surfaced so the upstream merge can be fixed.
type Divergence struct {
	SiteID int
	Field  string
	First  string
	Other  string
}

func (d Divergence) String() string {
	return fmt.Sprintf("site %d: %s diverges: first %q, also %q", d.SiteID, d.Field, d.First, d.Other)
}

// AggregateYearly collapses the (winter-filtered) records to one row per
// (site ID, year): mean, n, min, max, and range of the BCG score, plus static
// site attributes taken from the first record seen for the site across the
// whole input — not per group, so every year of a site reports identical
// attributes. Attribute divergences within a site are returned as
// diagnostics; the first value still wins.
//
// Output is sorted by site ID, then year. Range is exactly 0 when min == max.
func AggregateYearly(records []SiteSample) ([]YearlyAggregate, []Divergence) {
	siteFirst := make(map[int]SiteSample)
	divergences := checkStaticAttributes(records, siteFirst)

	groupScores := make(map[siteYearKey][]float64)
	var order []siteYearKey
	for _, r := range records {
		k := siteYearKey{r.SiteID, r.Year}
		if _, ok := groupScores[k]; !ok {
			order = append(order, k)
		}
		groupScores[k] = append(groupScores[k], r.BCG)
	}

	out := make([]YearlyAggregate, 0, len(order))
	for _, k := range order {
		scores := groupScores[k]
		min, max := scores[0], scores[0]
		for _, v := range scores[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		first := siteFirst[k.siteID]
		out = append(out, YearlyAggregate{
			SiteID:      k.siteID,
			Year:        k.year,
			MeanBCG:     stat.Mean(scores, nil),
			SampleCount: len(scores),
			MinBCG:      min,
			MaxBCG:      max,
			Range:       max - min,

			Lat:         first.Lat,
			Lon:         first.Lon,
			Agency:      first.Agency,
			HUC8:        first.HUC8,
			HUC12:       first.HUC12,
			ReachID:     first.ReachID,
			StreamOrder: first.StreamOrder,
			DrainSqKm:   first.DrainSqKm,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SiteID != out[j].SiteID {
			return out[i].SiteID < out[j].SiteID
		}
		return out[i].Year < out[j].Year
	})

	return out, divergences
}

// checkStaticAttributes records the first sample per site into siteFirst and
// reports each (site, field) whose value differs from the first occurrence.
// One diagnostic per (site, field), carrying the first conflicting value.
func checkStaticAttributes(records []SiteSample, siteFirst map[int]SiteSample) []Divergence {
	var divergences []Divergence
	seen := make(map[string]bool)

	report := func(siteID int, field, first, other string) {
		if first == other {
			return
		}
		key := fmt.Sprintf("%d|%s", siteID, field)
		if seen[key] {
			return
		}
		seen[key] = true
		divergences = append(divergences, Divergence{SiteID: siteID, Field: field, First: first, Other: other})
	}

	for _, r := range records {
		first, ok := siteFirst[r.SiteID]
		if !ok {
			siteFirst[r.SiteID] = r
			continue
		}
		report(r.SiteID, "huc8", first.HUC8, r.HUC8)
		report(r.SiteID, "huc12", first.HUC12, r.HUC12)
		report(r.SiteID, "comid", first.ReachID, r.ReachID)
		report(r.SiteID, "stream_order", fmt.Sprint(first.StreamOrder), fmt.Sprint(r.StreamOrder))
		report(r.SiteID, "drain_sqkm", fmt.Sprintf("%g", first.DrainSqKm), fmt.Sprintf("%g", r.DrainSqKm))
	}
	return divergences
}
