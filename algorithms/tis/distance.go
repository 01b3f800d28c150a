package tis

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-tonal/algorithms/common"
)

// DistanceMetric selects how two TIVs are compared
type DistanceMetric int

const (
	EuclideanDistance DistanceMetric = iota
	CosineDistance
)

func (m DistanceMetric) String() string {
	switch m {
	case EuclideanDistance:
		return "euclidean"
	case CosineDistance:
		return "cosine"
	default:
		return "unknown"
	}
}

// ParseDistanceMetric maps "euclidean" or "cosine" to a DistanceMetric
func ParseDistanceMetric(name string) (DistanceMetric, error) {
	switch name {
	case "euclidean":
		return EuclideanDistance, nil
	case "cosine":
		return CosineDistance, nil
	default:
		return EuclideanDistance, fmt.Errorf("unknown distance metric %q", name)
	}
}

// DistanceFunction compares two complex vectors of equal length
type DistanceFunction func(a, b []complex128) float64

// Func returns the distance function implementing m
func (m DistanceMetric) Func() DistanceFunction {
	if m == CosineDistance {
		return ComplexCosineDistance
	}
	return ComplexEuclideanDistance
}

// ComplexEuclideanDistance is sqrt(sum |a_k - b_k|^2)
func ComplexEuclideanDistance(a, b []complex128) float64 {
	sum := 0.0
	for k := range a {
		d := a[k] - b[k]
		sum += real(d)*real(d) + imag(d)*imag(d)
	}
	return math.Sqrt(sum)
}

// ComplexCosineDistance is the angle (radians) between a and b seen as real
// vectors of concatenated real and imaginary parts. A zero vector on either
// side gives 0.
func ComplexCosineDistance(a, b []complex128) float64 {
	var dot, na, nb float64
	for k := range a {
		dot += real(a[k])*real(b[k]) + imag(a[k])*imag(b[k])
		na += real(a[k])*real(a[k]) + imag(a[k])*imag(a[k])
		nb += real(b[k])*real(b[k]) + imag(b[k])*imag(b[k])
	}
	if na == 0 || nb == 0 {
		return 0
	}

	cos := common.Clamp(dot/(math.Sqrt(na)*math.Sqrt(nb)), -1, 1)
	d := math.Acos(cos)
	if math.IsNaN(d) {
		return 0
	}
	return d
}

// Distance compares two full TIVs
func Distance(a, b TIV, metric DistanceMetric) float64 {
	return metric.Func()(a[:], b[:])
}

// CoefficientDistance compares a single coefficient of two TIVs
func CoefficientDistance(a, b TIV, k Coefficient, metric DistanceMetric) float64 {
	return metric.Func()(a[k:k+1], b[k:k+1])
}
