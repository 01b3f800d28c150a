package features

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/RyanBlaney/sonido-tonal/algorithms/common"
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// slopeNormalizer is the steepest slope a normalised chroma vector reaches
// in practice; slopes are rescaled by it
const slopeNormalizer = 0.039

// Complexity computes tonal complexity features per chroma frame.
//
// All features are scaled so that a flat profile scores 1 and a single
// pitch class scores close to 0. Frames with no energy score 0 everywhere.
// Input is expected to be normalised (see NormalizedChroma).
type Complexity struct{}

var complexityFeatures = []namedFeature{
	{CompDiff, nullChromaReturnsZero(SumChromaDiff)},
	{CompStd, nullChromaReturnsZero(ChromaStd)},
	{CompSlope, nullChromaReturnsZero(NegativeSlope)},
	{CompEntropy, nullChromaReturnsZero(ShannonEntropy)},
	{CompSparse, nullChromaReturnsZero(NonSparseness)},
	{CompFlatness, nullChromaReturnsZero(Flatness)},
	{CompFifth, nullChromaReturnsZero(AngularDeviation)},
}

// Run returns the ComplexityFeatures columns keyed like data
func (Complexity) Run(data *dataset.Table) (*dataset.Table, error) {
	return extractFrames(data, complexityFeatures)
}

// SortFifths reorders a chroma vector along the circle of fifths
func SortFifths(c tis.PCP) tis.PCP {
	var sorted tis.PCP
	for q := range tis.NumPitchClasses {
		sorted[q] = c[(q*7)%tis.NumPitchClasses]
	}
	return sorted
}

// SumChromaDiff is 1 - sum|c[q+1] - c[q]| / 2, circularly
func SumChromaDiff(c tis.PCP) float64 {
	sum := 0.0
	for q := range tis.NumPitchClasses {
		sum += math.Abs(c[(q+1)%tis.NumPitchClasses] - c[q])
	}
	return 1 - sum/2
}

// ChromaStd is 1 - std / (1/sqrt(12)) with the population deviation
func ChromaStd(c tis.PCP) float64 {
	return 1 - common.PopStdDev(c[:])*math.Sqrt(tis.NumPitchClasses)
}

// NegativeSlope fits a line to the chroma values sorted in descending order
// and returns 1 - |slope| / 0.039
func NegativeSlope(c tis.PCP) float64 {
	y := slices.Clone(c[:])
	slices.Sort(y)
	slices.Reverse(y)

	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}

	slope, _, _ := common.LinRegression(x, y)
	return 1 - math.Abs(slope)/slopeNormalizer
}

// ShannonEntropy is the entropy of the chroma vector in base 12, so a
// uniform profile scores 1
func ShannonEntropy(c tis.PCP) float64 {
	return common.Entropy(c[:], tis.NumPitchClasses)
}

// NonSparseness is 1 - (sqrt(12) - L1/L2) / (sqrt(12) - 1)
func NonSparseness(c tis.PCP) float64 {
	l2 := common.L2Norm(c[:])
	if l2 == 0 {
		return 0
	}
	root := math.Sqrt(tis.NumPitchClasses)
	return 1 - (root-common.L1Norm(c[:])/l2)/(root-1)
}

// Flatness is the geometric over the arithmetic mean. Any non-positive
// value makes the geometric mean 0.
func Flatness(c tis.PCP) float64 {
	amean := common.Mean(c[:])
	if amean <= 0 {
		return 0
	}
	return common.GeometricMean(c[:]) / amean
}

// AngularDeviation measures how spread the fifth-ordered chroma is around
// the circle: sqrt(1 - |sum f[q] e^(2 pi i q / 12)|), floored at 0
func AngularDeviation(c tis.PCP) float64 {
	fifths := SortFifths(c)

	var sum complex128
	for q, v := range fifths {
		angle := 2 * math.Pi * float64(q) / tis.NumPitchClasses
		sum += complex(v, 0) * cmplx.Exp(complex(0, angle))
	}
	return math.Sqrt(math.Max(0, 1-cmplx.Abs(sum)))
}
