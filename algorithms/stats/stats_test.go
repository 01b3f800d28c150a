package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoments(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want MomentResult
	}{
		{
			name: "ic1",
			data: []float64{0.04, 0.1, 0.09, 0},
			want: MomentResult{Mean: 0.0575, StdDev: 0.040233692348578, Skewness: -0.3238799938616294},
		},
		{
			name: "ic2",
			data: []float64{0.33, 0.28, 0.06, 0.69},
			want: MomentResult{Mean: 0.34, StdDev: 0.22616365755797, Skewness: 0.44747395374570403},
		},
		{
			name: "zeros",
			data: []float64{0, 0, 0, 0},
			want: MomentResult{},
		},
		{
			name: "single",
			data: []float64{0.7},
			want: MomentResult{Mean: 0.7},
		},
		{
			name: "empty",
			want: MomentResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Moments(tt.data)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-12)
			assert.InDelta(t, tt.want.StdDev, got.StdDev, 1e-12)
			assert.InDelta(t, tt.want.Skewness, got.Skewness, 1e-9)
		})
	}
}

func TestSkewnessConstantIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Skewness([]float64{0.1, 0.1, 0.1}))
	assert.Equal(t, 0.0, Skewness(nil))
}

func TestQuartilesAndWhiskers(t *testing.T) {
	q := Quartiles([]float64{0.33, 0.28, 0.06, 0.69})
	assert.InDelta(t, 0.305, q.Q2, 1e-12)
	assert.InDelta(t, 0.195, q.IQR, 1e-12)

	w := Whiskers(q, DefaultWhiskerK)
	assert.InDelta(t, -0.0675, w.Lower, 1e-12)
	assert.InDelta(t, 0.7125, w.Upper, 1e-12)

	q = Quartiles([]float64{0.04, 0.1, 0.09, 0})
	w = Whiskers(q, DefaultWhiskerK)
	assert.InDelta(t, 0.065, q.Q2, 1e-12)
	assert.InDelta(t, 0.0625, q.IQR, 1e-12)
	assert.InDelta(t, -0.06375, w.Lower, 1e-12)
	assert.InDelta(t, 0.18625, w.Upper, 1e-12)

	assert.Equal(t, QuartileInfo{}, Quartiles(nil))
}
