// Package domain models multi-agency Biological Condition Gradient (BCG)
// stream-monitoring samples and implements the cleaning and aggregation core
// of the survey pipeline.
//
// # Data Source
//
// Samples originate from a merged table of state and federal monitoring
// programs. Each row is one site visit: WGS-84 coordinates, the reporting
// agency, a collection date, a numeric BCG proxy score, hydrologic unit codes
// (HUC8/HUC12), and NHDPlus stream-network attributes (COMID, Strahler
// stream order, upstream drainage area). The upstream merge drops rows with
// null coordinates; any that slip through are rejected here with a reported
// count, never silently assigned an identifier.
//
// # Site Identity
//
// A site is an exact (lat, lon) pair — two records belong to the same site
// iff both coordinates are bit-for-bit equal. Integer site IDs are assigned
// in order of first appearance in the input, so a fixed input ordering always
// reproduces the same mapping. Site-agency IDs partition further by agency:
// same coordinates but a different agency yields a different site-agency ID
// under the same site ID.
//
// # Multi-Sampling Flags
//
// Group counts are computed at four granularities (site, site-year,
// site-year-month, site-date) over the FULL dataset, before any season
// filtering. A base multi-sample flag is true when its group count exceeds 1.
// The same-agency variant additionally requires that exactly one agency
// accounts for the site's entire sampling history; it can never be true when
// the base flag is false. Winter records therefore still count toward a
// site's multi-sampling history even though they are excluded from yearly
// aggregation — a deliberate cross-population choice carried over from the
// original survey workflow.
//
// # Season Exclusion
//
// Meteorological winter (December, January, February) is outside the
// assessment season. [FilterSeason] removes those months after flags are
// computed and before yearly aggregation.
//
// # Aggregation
//
// [AggregateYearly] collapses the filtered records to one row per
// (site, year): mean, n, min, max, and range of the BCG score. Static site
// attributes are carried from the first record seen for the site; when they
// diverge within a site the first value wins and the divergence is reported
// as a diagnostic. [SelectMostRecent] then keeps each site's latest year,
// and [AggregateWatershed] restricts to years after the survey cutoff and
// summarizes by HUC8, grading each watershed by the mean score rounded half
// away from zero.
package domain
