package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic numeric helpers shared by the tonal algorithms, on top of gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopStdDev calculates the population standard deviation (divides by N)
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	_, std := stat.PopMeanStdDev(data, nil)
	return std
}

// GeometricMean returns the geometric mean, or 0 when any value is not
// strictly positive
func GeometricMean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	for _, v := range data {
		if v <= 0 {
			return 0.0
		}
	}
	return stat.GeometricMean(data, nil)
}

// Percentile calculates the p-th percentile (p between 0 and 1), linearly
// interpolating between the closest ranks of the sorted data
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 1 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// L1Norm returns the sum of absolute values
func L1Norm(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Norm(data, 1)
}

// L2Norm returns the Euclidean norm
func L2Norm(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Norm(data, 2)
}

// IsZero reports whether every value is exactly zero
func IsZero(data []float64) bool {
	for _, v := range data {
		if v != 0 {
			return false
		}
	}
	return true
}

// NormalizeSum scales data so that it sums to one. A zero sum returns a
// zero vector of the same length.
func NormalizeSum(data []float64) []float64 {
	out := make([]float64, len(data))
	total := floats.Sum(data)
	if total == 0 {
		return out
	}
	floats.ScaleTo(out, 1/total, data)
	return out
}

// Entropy computes the Shannon entropy of a probability distribution in the
// given logarithm base. Non-positive entries contribute nothing.
func Entropy(p []float64, base float64) float64 {
	h := 0.0
	for _, v := range p {
		if v > 0 {
			h -= v * math.Log(v)
		}
	}
	if h == 0 {
		return 0.0
	}
	return h / math.Log(base)
}

// LinRegression performs simple linear regression and returns slope, intercept, r²
func LinRegression(x, y []float64) (slope, intercept, rSquared float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, 0
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	rSquared = stat.RSquared(x, y, nil, alpha, beta)
	if math.IsNaN(rSquared) || math.IsInf(rSquared, 0) {
		rSquared = 0.0
	}

	return beta, alpha, rSquared
}

// GaussianKernel returns the normalised Gaussian weights for the given sigma,
// truncated at truncate standard deviations.
func GaussianKernel(sigma, truncate float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		x := float64(i)
		kernel[i+radius] = math.Exp(-0.5 * x * x / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

// GaussianFilter1D smooths data with a Gaussian of standard deviation sigma
// (truncated at 4 sigma). Samples outside the signal are mirrored about the
// edges (d c b a | a b c d | d c b a). A non-positive sigma returns a copy.
func GaussianFilter1D(data []float64, sigma float64) []float64 {
	out := make([]float64, len(data))
	if sigma <= 0 || len(data) == 0 {
		copy(out, data)
		return out
	}

	kernel := GaussianKernel(sigma, 4.0)
	radius := len(kernel) / 2
	n := len(data)

	for i := range data {
		acc := 0.0
		for k, w := range kernel {
			acc += w * data[reflectIndex(i+k-radius, n)]
		}
		out[i] = acc
	}

	return out
}

// reflectIndex maps any integer onto [0, n) using half-sample symmetric
// reflection
func reflectIndex(i, n int) int {
	period := 2 * n
	m := ((i % period) + period) % period
	if m >= n {
		m = period - 1 - m
	}
	return m
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
