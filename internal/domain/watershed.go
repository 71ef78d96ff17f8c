package domain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultCutoffYear excludes readings at or before this year from survey
// planning; only sites revisited this century inform the watershed summary.
const DefaultCutoffYear = 2000

// SelectMostRecent keeps the single yearly aggregate with the maximum year
// for each site. On a tied year — possible only if the input carries
// duplicate (site, year) rows — the first row encountered wins. Output is
// sorted by site ID.
func SelectMostRecent(rows []YearlyAggregate) []YearlyAggregate {
	latest := make(map[int]YearlyAggregate)
	var order []int
	for _, row := range rows {
		best, ok := latest[row.SiteID]
		if !ok {
			latest[row.SiteID] = row
			order = append(order, row.SiteID)
			continue
		}
		if row.Year > best.Year {
			latest[row.SiteID] = row
		}
	}

	sort.Ints(order)
	out := make([]YearlyAggregate, 0, len(order))
	for _, siteID := range order {
		out = append(out, latest[siteID])
	}
	return out
}

// AggregateWatershed restricts the most-recent-per-site rows to years
// strictly after cutoffYear and summarizes them by HUC8: mean BCG score,
// contributing-site count, and an integer grade. Output is sorted by HUC8.
//
// The grade rounds the mean half away from zero (math.Round): 2.5 grades
// as 3, 3.5 as 4.
func AggregateWatershed(rows []YearlyAggregate, cutoffYear int) []WatershedSummary {
	groups := make(map[string][]float64)
	for _, row := range rows {
		if row.Year <= cutoffYear {
			continue
		}
		groups[row.HUC8] = append(groups[row.HUC8], row.MeanBCG)
	}

	hucs := make([]string, 0, len(groups))
	for huc := range groups {
		hucs = append(hucs, huc)
	}
	sort.Strings(hucs)

	out := make([]WatershedSummary, 0, len(hucs))
	for _, huc := range hucs {
		scores := groups[huc]
		mean := stat.Mean(scores, nil)
		out = append(out, WatershedSummary{
			HUC8:      huc,
			MeanBCG:   mean,
			SiteCount: len(scores),
			Grade:     int(math.Round(mean)),
		})
	}
	return out
}

// LabelWatersheds fills in region names from the reference mapping. Unmapped
// HUC8 codes keep an empty name; names never affect the numeric summary.
func LabelWatersheds(summaries []WatershedSummary, names map[string]string) []WatershedSummary {
	out := make([]WatershedSummary, len(summaries))
	for i, s := range summaries {
		s.Name = names[s.HUC8]
		out[i] = s
	}
	return out
}
