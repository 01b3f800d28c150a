package tis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-tonal/algorithms/common"
)

// NumPitchClasses is the chroma dimension (C, C#, ..., B)
const NumPitchClasses = 12

// NumCoefficients is the number of DFT coefficients kept in a TIV
const NumCoefficients = 6

// Coefficient indexes one of the six interval coefficients of a TIV
type Coefficient int

const (
	Chromaticity Coefficient = iota
	Dyadicity
	Triadicity
	DiminishedQuality
	Diatonicity
	WholeToneness
)

func (c Coefficient) String() string {
	switch c {
	case Chromaticity:
		return "chromaticity"
	case Dyadicity:
		return "dyadicity"
	case Triadicity:
		return "triadicity"
	case DiminishedQuality:
		return "dim_quality"
	case Diatonicity:
		return "diatonicity"
	case WholeToneness:
		return "wholetoneness"
	default:
		return fmt.Sprintf("coefficient(%d)", int(c))
	}
}

// Weights are the perceptual weights applied to DFT coefficients 1..6
var Weights = [NumCoefficients]float64{3, 8, 11.5, 15, 14.5, 7.5}

// maxNorm is the norm of a TIV in which every coefficient reaches its weight
var maxNorm = func() float64 {
	sum := 0.0
	for _, w := range Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}()

// ErrPCPLength is returned when a chroma vector does not have 12 bins
var ErrPCPLength = errors.New("pitch class profile must have 12 bins")

// PCP is a pitch class profile (one chroma frame)
type PCP [NumPitchClasses]float64

// ParsePCP validates the length of v and converts it into a PCP
func ParsePCP(v []float64) (PCP, error) {
	var p PCP
	if len(v) != NumPitchClasses {
		return p, fmt.Errorf("%w: got %d", ErrPCPLength, len(v))
	}
	copy(p[:], v)
	return p, nil
}

// IsZero reports whether every bin is zero
func (p PCP) IsZero() bool {
	return common.IsZero(p[:])
}

// TIV is a Tonal Interval Vector: DFT coefficients 1..6 of a pitch class
// profile, normalised by its DC component and perceptually weighted.
//
// The six coefficients relate to interval content:
//   - k=1 chromaticity (minor seconds)
//   - k=2 dyadicity (major seconds, quartal)
//   - k=3 triadicity (major/minor thirds)
//   - k=4 diminished quality (minor thirds, tritone)
//   - k=5 diatonicity (fifths)
//   - k=6 whole-toneness (whole tone scale)
type TIV [NumCoefficients]complex128

// FromPCP computes the TIV of a pitch class profile. A profile with no
// energy (all zero, or DC component exactly zero) maps to the zero TIV.
func FromPCP(p PCP) TIV {
	var v TIV
	if p.IsZero() {
		return v
	}

	// DC component, summed directly so that cancelling profiles are exactly zero
	energy := floats.Sum(p[:])
	if energy == 0 {
		return v
	}

	spectrum := fft.FFTReal(p[:])

	for k := range NumCoefficients {
		v[k] = spectrum[k+1] / complex(energy, 0) * complex(Weights[k], 0)
	}
	return v
}

// IsZero reports whether every coefficient is zero
func (v TIV) IsZero() bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}
	return true
}

// Magnitudes returns |X_k| for each coefficient
func (v TIV) Magnitudes() [NumCoefficients]float64 {
	var m [NumCoefficients]float64
	for k, c := range v {
		m[k] = cmplx.Abs(c)
	}
	return m
}

// Norm returns the Euclidean norm of the complex vector
func (v TIV) Norm() float64 {
	sum := 0.0
	for _, c := range v {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(sum)
}

// Coefficient returns |X_k| divided by its weight, clamped to [0, 1]. FFT
// rounding can push a single-pitch profile a few ulps above 1.
func (v TIV) Coefficient(k Coefficient) float64 {
	return common.Clamp(cmplx.Abs(v[k])/Weights[k], 0, 1)
}

// Dissonance is 1 - ||v|| / ||weights||, clamped to [0, 1]; the zero TIV
// has dissonance 1
func (v TIV) Dissonance() float64 {
	return common.Clamp(1-v.Norm()/maxNorm, 0, 1)
}

// CoefficientEntropy is the natural-log Shannon entropy of the magnitude
// profile normalised to sum one. A zero TIV has entropy 0.
func (v TIV) CoefficientEntropy() float64 {
	m := v.Magnitudes()
	return common.Entropy(common.NormalizeSum(m[:]), math.E)
}

// Parts returns the TIV as 12 reals: real and imaginary parts of each
// coefficient, interleaved
func (v TIV) Parts() [2 * NumCoefficients]float64 {
	var parts [2 * NumCoefficients]float64
	for k, c := range v {
		parts[2*k] = real(c)
		parts[2*k+1] = imag(c)
	}
	return parts
}
