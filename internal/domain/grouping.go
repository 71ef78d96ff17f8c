package domain

type siteYearKey struct {
	siteID, year int
}

type siteMonthKey struct {
	siteID, year, month int
}

type siteDateKey struct {
	siteID, year, month, day int
}

// ComputeGroupStats counts records at the four time granularities, computes
// the per-site distinct-agency count and the per-(site, year) BCG range, and
// derives the multi-sampling flags. It returns an augmented copy; identifiers
// on the input are never mutated.
//
// The counts reflect the complete record set passed in. Callers run this
// before any season filtering so that winter visits still count toward a
// site's multi-sampling history.
func ComputeGroupStats(records []SiteSample) []SiteSample {
	siteCounts := make(map[int]int)
	yearCounts := make(map[siteYearKey]int)
	monthCounts := make(map[siteMonthKey]int)
	dateCounts := make(map[siteDateKey]int)
	siteAgencies := make(map[int]map[string]struct{})

	yearMin := make(map[siteYearKey]float64)
	yearMax := make(map[siteYearKey]float64)

	for _, r := range records {
		yk := siteYearKey{r.SiteID, r.Year}

		siteCounts[r.SiteID]++
		yearCounts[yk]++
		monthCounts[siteMonthKey{r.SiteID, r.Year, r.Month}]++
		dateCounts[siteDateKey{r.SiteID, r.Year, r.Month, r.Day}]++

		agencies, ok := siteAgencies[r.SiteID]
		if !ok {
			agencies = make(map[string]struct{})
			siteAgencies[r.SiteID] = agencies
		}
		agencies[r.Agency] = struct{}{}

		if n := yearCounts[yk]; n == 1 {
			yearMin[yk] = r.BCG
			yearMax[yk] = r.BCG
		} else {
			if r.BCG < yearMin[yk] {
				yearMin[yk] = r.BCG
			}
			if r.BCG > yearMax[yk] {
				yearMax[yk] = r.BCG
			}
		}
	}

	now := clock.Now()
	out := make([]SiteSample, len(records))
	for i, r := range records {
		yk := siteYearKey{r.SiteID, r.Year}
		stats := GroupStats{
			SiteCount:   siteCounts[r.SiteID],
			YearCount:   yearCounts[yk],
			MonthCount:  monthCounts[siteMonthKey{r.SiteID, r.Year, r.Month}],
			DateCount:   dateCounts[siteDateKey{r.SiteID, r.Year, r.Month, r.Day}],
			AgencyCount: len(siteAgencies[r.SiteID]),
			AnnualRange: yearMax[yk] - yearMin[yk],
		}

		r.Stats = stats
		r.Flags = deriveFlags(stats)
		r.CleanedAt = now
		out[i] = r
	}
	return out
}

// deriveFlags maps grouping statistics to the six multi-sampling flags.
// A base flag requires its group count to exceed 1. The same-agency variant
// additionally requires a single agency across the site's entire history;
// these are independent conditions, both evaluated, so a same-agency flag is
// never set without its base flag.
func deriveFlags(s GroupStats) FlagSet {
	sameAgency := s.AgencyCount == 1
	return FlagSet{
		MultiYear:  s.YearCount > 1,
		MultiMonth: s.MonthCount > 1,
		MultiDate:  s.DateCount > 1,

		SameAgencyYear:  s.YearCount > 1 && sameAgency,
		SameAgencyMonth: s.MonthCount > 1 && sameAgency,
		SameAgencyDate:  s.DateCount > 1 && sameAgency,
	}
}
