package lcd

import (
	"testing"
	"time"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/model"
	"github.com/stretchr/testify/assert"
)

func TestTemporallySeparated(t *testing.T) {
	base := time.Unix(500, 0)

	tests := []struct {
		name     string
		a, b     time.Time
		min      time.Duration
		expected bool
	}{
		{"NoConstraint", base, base, 0, true},
		{"Equal", base, base, time.Second, false},
		{"Before", base, base.Add(-9 * time.Second), 10 * time.Second, false},
		{"After", base, base.Add(9 * time.Second), 10 * time.Second, false},
		{"ExactlyAtLimit", base, base.Add(-10 * time.Second), 10 * time.Second, true},
		{"FarAfter", base, base.Add(time.Hour), 10 * time.Second, true},
		{"Saturated", time.Time{}, time.Unix(1<<40, 0), time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TemporallySeparated(tt.a, tt.b, tt.min))
		})
	}
}

func TestIsEligible(t *testing.T) {
	base := time.Unix(100, 0)
	query := descriptor.MustNew([]float32{1}, descriptor.WithTimestamp(base))
	near := descriptor.MustNew([]float32{1}, descriptor.WithTimestamp(base.Add(2*time.Second)))
	far := descriptor.MustNew([]float32{1}, descriptor.WithTimestamp(base.Add(time.Minute)))

	cfg := DefaultMatchConfig()
	cfg.MinTimeSeparation = 30 * time.Second

	candidates := model.NewNodeSet(1, 2)

	assert.True(t, IsEligible(query, far, 1, candidates, cfg))
	assert.False(t, IsEligible(query, near, 1, candidates, cfg), "too close in time")
	assert.False(t, IsEligible(query, far, 3, candidates, cfg), "not a candidate")
	assert.False(t, IsEligible(query, far, 1, model.NodeSet{}, cfg), "empty candidate set")

	cfg.MinTimeSeparation = 0
	assert.True(t, IsEligible(query, near, 2, candidates, cfg))
}

func TestScanBudget(t *testing.T) {
	assert.True(t, Unlimited.Allows(1_000_000))
	assert.True(t, ScanBudget(-1).Allows(5))
	assert.True(t, ScanBudget(2).Allows(1))
	assert.False(t, ScanBudget(2).Allows(2))
}
