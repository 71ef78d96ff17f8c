package domain

import "sort"

// winterMonths are outside the assessment season.
var winterMonths = map[int]bool{12: true, 1: true, 2: true}

// FilterSeason drops records collected in meteorological winter (Dec, Jan,
// Feb) and returns the survivors along with the removed count. It never
// recomputes counts or flags: those describe the full population and are
// reported alongside the filtered data as context.
//
// Output order is deterministic: sorted by site ID, original input order
// within a site.
func FilterSeason(records []SiteSample) ([]SiteSample, int) {
	kept := make([]SiteSample, 0, len(records))
	for _, r := range records {
		if winterMonths[r.Month] {
			continue
		}
		kept = append(kept, r)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].SiteID < kept[j].SiteID
	})

	return kept, len(records) - len(kept)
}
