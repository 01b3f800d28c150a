package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MomentResult holds the low order moments of a feature trajectory
type MomentResult struct {
	Mean     float64 `json:"mean"`     // First raw moment
	StdDev   float64 `json:"std_dev"`  // Population standard deviation
	Skewness float64 `json:"skewness"` // Biased third standardized moment
}

// Moments computes mean, population standard deviation and biased skewness.
//
// Skewness is m3 / m2^(3/2) with central moments divided by N (no small
// sample correction). Constant or empty data has zero skewness.
func Moments(data []float64) MomentResult {
	switch len(data) {
	case 0:
		return MomentResult{}
	case 1:
		return MomentResult{Mean: data[0]}
	}

	mean, std := stat.PopMeanStdDev(data, nil)
	return MomentResult{
		Mean:     mean,
		StdDev:   std,
		Skewness: skewness(data, mean),
	}
}

// Skewness returns the biased sample skewness of data
func Skewness(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return skewness(data, stat.Mean(data, nil))
}

func skewness(data []float64, mean float64) float64 {
	var m2, m3 float64
	for _, v := range data {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	n := float64(len(data))
	m2 /= n
	m3 /= n

	// relative threshold so that rounding noise on constant data is not amplified
	if m2 <= 1e-14*mean*mean || m2 == 0 {
		return 0
	}

	s := m3 / math.Pow(m2, 1.5)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return s
}
