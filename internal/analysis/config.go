package analysis

import "time"

// ProbabilityBand is a clamped linear model: clamp(Base - Slope*gap, Min, Max).
type ProbabilityBand struct {
	Base  float64 `yaml:"base"`
	Slope float64 `yaml:"slope"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// BoostBand bounds synthetic boost generation.
type BoostBand struct {
	MultiplierMin float64       `yaml:"multiplier_min"`
	MultiplierMax float64       `yaml:"multiplier_max"`
	BaselineMin   int           `yaml:"baseline_min"` // American price, e.g. -110
	BaselineMax   int           `yaml:"baseline_max"` // American price, e.g. +110
	MaxPerGame    int           `yaml:"max_per_game"`
	Lifetime      time.Duration `yaml:"lifetime"`
}

// Config holds analysis configuration
type Config struct {
	MinEV         float64 `yaml:"min_ev"`         // Minimum boost EV in percent (5.0 = 5%)
	MinGap        float64 `yaml:"min_gap"`        // Minimum line gap in points for a middle
	StakePerLeg   float64 `yaml:"stake_per_leg"`  // Units staked on each side of a middle
	StandardPrice int     `yaml:"standard_price"` // Price assumed when a feed omits spread/total juice
	KellyFraction float64 `yaml:"kelly_fraction"` // Fraction of Kelly used to size boosts

	SpreadBand ProbabilityBand `yaml:"spread_band"`
	TotalBand  ProbabilityBand `yaml:"total_band"`
	Boost      BoostBand       `yaml:"boost"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MinEV:         5.0,
		MinGap:        3.0,
		StakePerLeg:   100,
		StandardPrice: -110,
		KellyFraction: 0.25,
		SpreadBand:    ProbabilityBand{Base: 20, Slope: 2, Min: 5, Max: 25},
		TotalBand:     ProbabilityBand{Base: 25, Slope: 1.5, Min: 8, Max: 30},
		Boost: BoostBand{
			MultiplierMin: 1.2,
			MultiplierMax: 2.0,
			BaselineMin:   -110,
			BaselineMax:   110,
			MaxPerGame:    3,
			Lifetime:      6 * time.Hour,
		},
	}
}
