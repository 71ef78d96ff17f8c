package domain

import "time"

// RawSampleRecord represents one row of the merged multi-agency sample CSV.
// All fields arrive as strings; the upstream merge preserves each agency's
// original formatting, so parsing happens here rather than in the loader.
type RawSampleRecord struct {
	Lat         string `json:"Lat"`
	Lon         string `json:"Lon"`
	Agency      string `json:"Agency"` // reporting agency or state code, e.g. "CTDEEP"
	Date        string `json:"Date"`
	BCG         string `json:"BCG"`          // BCG proxy score
	HUC8        string `json:"HUC8"`         // 8-digit hydrologic unit code
	HUC12       string `json:"HUC12"`        // 12-digit hydrologic unit code
	ReachID     string `json:"COMID"`        // NHDPlus reach identifier
	StreamOrder string `json:"StreamOrder"`  // Strahler stream order
	DrainSqKm   string `json:"DrainSqKm"`    // upstream drainage area
}

// Sample is the typed form of one biological observation after parsing.
type Sample struct {
	RecordID string `json:"record_id"`

	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Agency string  `json:"agency"`

	Date  time.Time `json:"date"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Day   int       `json:"day"`

	BCG float64 `json:"bcg"`

	HUC8        string  `json:"huc8"`
	HUC12       string  `json:"huc12,omitempty"`
	ReachID     string  `json:"comid,omitempty"`
	StreamOrder int     `json:"stream_order,omitempty"`
	DrainSqKm   float64 `json:"drain_sqkm,omitempty"`
}

// GroupStats holds the per-record grouping counts computed over the full
// dataset. Counts are always >= 1: every record belongs to its own group.
type GroupStats struct {
	SiteCount   int `json:"site_n"`       // records sharing the site
	YearCount   int `json:"site_yr_n"`    // records sharing (site, year)
	MonthCount  int `json:"site_mo_yr_n"` // records sharing (site, year, month)
	DateCount   int `json:"site_date_n"`  // records sharing (site, exact date)
	AgencyCount int `json:"agency_n"`     // distinct agencies that ever sampled the site

	// AnnualRange is max-min of the BCG score within the (site, year) group.
	AnnualRange float64 `json:"bcg_annual_range"`
}

// FlagSet marks records that are part of a multi-sampling group. The
// SameAgency variants are true only when the base flag is true and a single
// agency accounts for all of the site's sampling history.
type FlagSet struct {
	MultiYear  bool `json:"multi_sample_yr"`
	MultiMonth bool `json:"multi_sample_mo_yr"`
	MultiDate  bool `json:"multi_sample_date"`

	SameAgencyYear  bool `json:"same_agency_yr"`
	SameAgencyMonth bool `json:"same_agency_mo_yr"`
	SameAgencyDate  bool `json:"same_agency_date"`
}

// SiteSample is a Sample augmented with identifiers, grouping statistics,
// and multi-sampling flags. One SiteSample per valid input record.
type SiteSample struct {
	Sample

	SiteID       int `json:"site_id"`
	SiteAgencyID int `json:"site_agency_id"`

	Stats GroupStats `json:"stats"`
	Flags FlagSet    `json:"flags"`

	CleanedAt time.Time `json:"cleaned_at"`
}

// YearlyAggregate is one row per (site, year) over the winter-filtered
// dataset. Static site attributes are carried from the first record seen for
// the site; see AggregateYearly for the divergence policy.
type YearlyAggregate struct {
	SiteID int `json:"site_id"`
	Year   int `json:"year"`

	MeanBCG     float64 `json:"bcg_mean"`
	SampleCount int     `json:"n"`
	MinBCG      float64 `json:"bcg_min"`
	MaxBCG      float64 `json:"bcg_max"`
	Range       float64 `json:"bcg_range"`

	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Agency      string  `json:"agency"`
	HUC8        string  `json:"huc8"`
	HUC12       string  `json:"huc12,omitempty"`
	ReachID     string  `json:"comid,omitempty"`
	StreamOrder int     `json:"stream_order,omitempty"`
	DrainSqKm   float64 `json:"drain_sqkm,omitempty"`
}

// WatershedSummary is one row per HUC8, computed from each contributing
// site's most recent post-cutoff yearly aggregate.
type WatershedSummary struct {
	HUC8      string  `json:"huc8"`
	Name      string  `json:"name,omitempty"` // from the optional reference mapping
	MeanBCG   float64 `json:"bcg_mean"`
	SiteCount int     `json:"site_n"`
	Grade     int     `json:"grade"` // MeanBCG rounded half away from zero
}
