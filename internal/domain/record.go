package domain

// SpotRecord is the ingestion-time canonical shape of a spot. It exists only
// inside the pipeline and in the snapshot artifact; once persisted its
// non-transient attributes live on in Spot.
//
// Lat and Lng are pointers because raw feeds may omit coordinates (geocoding
// happens outside this system). LastSeen is an RFC 3339 UTC timestamp stamped
// every time the record is normalized.
type SpotRecord struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Address     string     `json:"address" yaml:"address"`
	Summary     string     `json:"summary" yaml:"summary"`
	Lat         *float64   `json:"lat" yaml:"lat"`
	Lng         *float64   `json:"lng" yaml:"lng"`
	OfficialURL *string    `json:"official_url" yaml:"official_url"`
	CostRange   *CostRange `json:"cost_range" yaml:"cost_range"`
	AgeMin      *int       `json:"age_min" yaml:"age_min"`
	AgeMax      *int       `json:"age_max" yaml:"age_max"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Images      []string   `json:"images" yaml:"images"`
	Hours       *string    `json:"hours" yaml:"hours"`
	Source      string     `json:"source" yaml:"source"`
	LastSeen    string     `json:"last_seen" yaml:"last_seen"`
}
