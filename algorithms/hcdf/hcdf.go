package hcdf

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/sonido-tonal/algorithms/common"
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

// Params configures the harmonic change detection function
type Params struct {
	// Sigma is the standard deviation (in frames) of the Gaussian applied
	// along time to every centroid row
	Sigma float64 `json:"sigma"`

	// Distance compares the smoothed centroids either side of a frame
	Distance tis.DistanceMetric `json:"distance"`
}

// DefaultParams returns sigma 5 with Euclidean distance
func DefaultParams() Params {
	return Params{
		Sigma:    5,
		Distance: tis.EuclideanDistance,
	}
}

// Result holds the HCDF of a piece and its peaks.
//
// Peaks always starts with the sentinel index 0 (magnitude 0), followed by
// the strictly increasing indices of the strict local maxima of Function.
type Result struct {
	Peaks      []int     `json:"peaks"`
	Magnitudes []float64 `json:"magnitudes"`
	Function   []float64 `json:"function"`
}

// Analyzer computes the Harmonic Change Detection Function over the Tonal
// Interval Space.
//
// HCDF OUTLINE:
// 1. every chroma frame is mapped to its TIV, giving 12 real rows over time
// 2. each row is blurred along time with a Gaussian
// 3. frame j scores the distance between the smoothed centroids at j-1, j+1
// 4. strict local maxima of the score mark harmonic changes
type Analyzer struct {
	params Params
	logger logging.Logger
}

// NewAnalyzer creates an HCDF analyzer
func NewAnalyzer(params Params) *Analyzer {
	return &Analyzer{
		params: params,
		logger: logging.WithFields(logging.Fields{"component": "hcdf"}),
	}
}

// Params returns the analyzer configuration
func (a *Analyzer) Params() Params {
	return a.params
}

// Analyze runs the full HCDF on the frames of one piece. Pieces too short to
// hold a peak return the sentinel only.
func (a *Analyzer) Analyze(chroma []tis.PCP) Result {
	series := CentroidSeries(chroma)
	if series != nil {
		series = Smooth(series, a.params.Sigma)
	}
	fn := ChangeFunction(series, a.params.Distance)
	peaks, mags := PickPeaks(fn)

	a.logger.Debug("harmonic change detected", logging.Fields{
		"frames": len(chroma),
		"peaks":  len(peaks) - 1,
	})

	return Result{
		Peaks:      peaks,
		Magnitudes: mags,
		Function:   fn,
	}
}

// CentroidSeries returns the 12 x N matrix of TIV real and imaginary parts,
// one column per frame. It returns nil for an empty piece.
func CentroidSeries(chroma []tis.PCP) *mat.Dense {
	if len(chroma) == 0 {
		return nil
	}

	series := mat.NewDense(2*tis.NumCoefficients, len(chroma), nil)
	for t, pcp := range chroma {
		parts := tis.FromPCP(pcp).Parts()
		for r, v := range parts {
			series.Set(r, t, v)
		}
	}
	return series
}

// Smooth blurs every row independently along time
func Smooth(series *mat.Dense, sigma float64) *mat.Dense {
	rows, cols := series.Dims()
	out := mat.NewDense(rows, cols, nil)
	for r := range rows {
		out.SetRow(r, common.GaussianFilter1D(mat.Row(nil, r, series), sigma))
	}
	return out
}

// ChangeFunction scores each frame by the distance between the centroids of
// its neighbours. The first and last frames are always 0; the output has one
// value per column of series (nil series gives an empty function).
func ChangeFunction(series *mat.Dense, metric tis.DistanceMetric) []float64 {
	if series == nil {
		return []float64{}
	}

	_, n := series.Dims()
	fn := make([]float64, n)
	for j := 1; j < n-1; j++ {
		prev := mat.Col(nil, j-1, series)
		next := mat.Col(nil, j+1, series)
		fn[j] = centroidDistance(prev, next, metric)
	}
	return fn
}

// centroidDistance compares two real centroid columns. Cosine distance is
// 1 - cos and falls back to Euclidean when either side is the zero vector.
func centroidDistance(a, b []float64, metric tis.DistanceMetric) float64 {
	if metric == tis.CosineDistance && !common.IsZero(a) && !common.IsZero(b) {
		return 1 - floats.Dot(a, b)/(floats.Norm(a, 2)*floats.Norm(b, 2))
	}
	return floats.Distance(a, b, 2)
}

// PickPeaks returns the strict local maxima of fn for 2 <= i <= len(fn)-2,
// preceded by the sentinel (0, 0)
func PickPeaks(fn []float64) ([]int, []float64) {
	peaks := []int{0}
	mags := []float64{0}
	for i := 2; i < len(fn)-1; i++ {
		if fn[i] > fn[i-1] && fn[i] > fn[i+1] {
			peaks = append(peaks, i)
			mags = append(mags, fn[i])
		}
	}
	return peaks, mags
}
