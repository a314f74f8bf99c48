package dispatch

// Config carries the tunables of the dispatch engine.
type Config struct {
	// AverageSpeedKmh is used to project response times from distances.
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
	// MaxCandidates truncates recommendation lists; zero means unlimited.
	MaxCandidates int `json:"max_candidates"`
}

const defaultAverageSpeedKmh = 50.0

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.AverageSpeedKmh <= 0 {
		c.AverageSpeedKmh = defaultAverageSpeedKmh
	}
}
