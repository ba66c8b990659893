package lcd

import (
	"math"
	"time"

	"github.com/hupe1980/placematch/distance"
)

// MatchConfig holds the per-search matching parameters.
type MatchConfig struct {
	// MinScore is the acceptance threshold. Only candidates scoring strictly
	// above it are accepted.
	MinScore float32 `yaml:"min_score" json:"min_score"`

	// MinTimeSeparation is the minimum gap between the query and a candidate
	// timestamp. Closer candidates are never scored, which keeps a place
	// from matching observations taken moments earlier.
	MinTimeSeparation time.Duration `yaml:"min_time_separation" json:"min_time_separation"`

	// Metric selects the similarity function. Defaults to cosine.
	Metric distance.Metric `yaml:"metric" json:"metric"`

	// MaxMatches caps LayerSearchResults.Matches. 0 keeps every accepted
	// candidate.
	MaxMatches int `yaml:"max_matches" json:"max_matches"`
}

// DefaultMatchConfig returns the default matching parameters.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		MinScore:          0.8,
		MinTimeSeparation: 0,
		Metric:            distance.MetricCosine,
		MaxMatches:        0,
	}
}

// Validate checks the configuration.
func (c MatchConfig) Validate() error {
	if math.IsNaN(float64(c.MinScore)) {
		return &ErrInvalidConfig{Field: "min_score", Reason: "must not be NaN"}
	}
	if c.MinTimeSeparation < 0 {
		return &ErrInvalidConfig{Field: "min_time_separation", Reason: "must not be negative"}
	}
	if _, err := distance.Provider(c.Metric); err != nil {
		return &ErrInvalidConfig{Field: "metric", Reason: "is not supported", cause: err}
	}
	if c.MaxMatches < 0 {
		return &ErrInvalidConfig{Field: "max_matches", Reason: "must not be negative"}
	}
	return nil
}

func (c MatchConfig) scorer() distance.Func {
	fn, err := distance.Provider(c.Metric)
	if err != nil {
		panic(&ErrInvalidConfig{Field: "metric", Reason: "is not supported", cause: err})
	}
	return fn
}
