package hcdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
)

var (
	cMajor  = tis.PCP{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}
	fsMajor = tis.PCP{0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0}
	gMajor  = tis.PCP{0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1}
)

func repeat(p tis.PCP, n int) []tis.PCP {
	out := make([]tis.PCP, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func threeChords() []tis.PCP {
	chroma := repeat(cMajor, 20)
	chroma = append(chroma, repeat(fsMajor, 20)...)
	return append(chroma, repeat(gMajor, 20)...)
}

func TestAnalyzeShortPiece(t *testing.T) {
	chroma := []tis.PCP{
		{1},
		{},
		{0, 1},
	}

	res := NewAnalyzer(DefaultParams()).Analyze(chroma)

	require.Len(t, res.Function, 3)
	assert.Equal(t, 0.0, res.Function[0])
	assert.InDelta(t, 0.0011653782054331983, res.Function[1], 1e-12)
	assert.Equal(t, 0.0, res.Function[2])
	assert.Equal(t, []int{0}, res.Peaks)
	assert.Equal(t, []float64{0}, res.Magnitudes)
}

func TestAnalyzeDegeneratePieces(t *testing.T) {
	a := NewAnalyzer(DefaultParams())

	res := a.Analyze(nil)
	assert.Empty(t, res.Function)
	assert.Equal(t, []int{0}, res.Peaks)

	res = a.Analyze([]tis.PCP{cMajor})
	assert.Equal(t, []float64{0}, res.Function)
	assert.Equal(t, []int{0}, res.Peaks)

	res = a.Analyze([]tis.PCP{cMajor, gMajor})
	assert.Equal(t, []float64{0, 0}, res.Function)
	assert.Equal(t, []int{0}, res.Peaks)
}

func TestAnalyzeChordChanges(t *testing.T) {
	tests := []struct {
		name   string
		metric tis.DistanceMetric
		mags   []float64
	}{
		{"euclidean", tis.EuclideanDistance, []float64{0, 4.00824300923659, 4.267101150109668}},
		{"cosine", tis.CosineDistance, []float64{0, 0.08521202353964685, 0.12374895737298852}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			params.Distance = tt.metric

			res := NewAnalyzer(params).Analyze(threeChords())

			require.Len(t, res.Function, 60)
			assert.Equal(t, 0.0, res.Function[0])
			assert.Equal(t, 0.0, res.Function[59])
			assert.Equal(t, []int{0, 19, 40}, res.Peaks)
			assert.InDeltaSlice(t, tt.mags, res.Magnitudes, 1e-9)
		})
	}
}

func TestPickPeaks(t *testing.T) {
	peaks, mags := PickPeaks([]float64{0, 5, 1, 3, 3, 2, 4, 1, 9})
	// index 1 is below the search range, 3/4 is a plateau, 8 is the last frame
	assert.Equal(t, []int{0, 6}, peaks)
	assert.Equal(t, []float64{0, 4}, mags)

	for i := 1; i < len(peaks); i++ {
		assert.Greater(t, peaks[i], peaks[i-1])
	}
}

func TestCentroidDistanceCosineFallback(t *testing.T) {
	zero := make([]float64, 12)
	one := make([]float64, 12)
	one[0] = 3
	one[1] = 4

	assert.InDelta(t, 5.0, centroidDistance(zero, one, tis.CosineDistance), 1e-12)
	assert.InDelta(t, 0.0, centroidDistance(one, one, tis.CosineDistance), 1e-12)
}
