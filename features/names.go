package features

import "github.com/RyanBlaney/sonido-tonal/dataset"

// Complexity feature columns
const (
	CompDiff     = "comp_diff"
	CompStd      = "comp_std"
	CompSlope    = "comp_slope"
	CompEntropy  = "comp_entr"
	CompSparse   = "comp_sparse"
	CompFlatness = "comp_flat"
	CompFifth    = "comp_fifth"
)

// Template feature columns
const (
	IC1      = "ic1"
	IC2      = "ic2"
	IC3      = "ic3"
	IC4      = "ic4"
	IC5      = "ic5"
	IC6      = "ic6"
	ChordMaj = "chord_maj"
	ChordMin = "chord_min"
	ChordDim = "chord_dim"
	ChordAug = "chord_aug"
)

// Tonal Interval Space feature columns
const (
	Dissonance    = "dissonance"
	Chromaticity  = "chromaticity"
	Dyadicity     = "dyadicity"
	Triadicity    = "triadicity"
	DimQuality    = "dim_quality"
	Diatonicity   = "diatonicity"
	WholeToneness = "wholetoneness"
	CoefEntropy   = "coef_entropy"

	CosTonalDisp = "cos_tonal_disp"
	EucTonalDisp = "euc_tonal_disp"
	CosDist      = "cos_dist"
	EucDist      = "euc_dist"
)

// Harmonic change columns
const (
	HCDFPeakIdx      = "hcdf_peak_idx"
	HCDFPeakMag      = "hcdf_peak_mag"
	HCDFPeakInterval = "hcdf_peak_interval"
)

// Feature groups
var (
	ChromaFeatures = dataset.ChromaColumns

	IntervalFeatures = []string{IC1, IC2, IC3, IC4, IC5, IC6}
	ChordFeatures    = []string{ChordMaj, ChordMin, ChordDim, ChordAug}
	TemplateFeatures = append(append([]string{}, IntervalFeatures...), ChordFeatures...)

	ComplexityFeatures = []string{CompDiff, CompStd, CompSlope, CompEntropy, CompSparse, CompFlatness, CompFifth}

	TISCoefficients       = []string{Chromaticity, Dyadicity, Triadicity, DimQuality, Diatonicity, WholeToneness}
	TISVerticalFeatures   = append(append([]string{Dissonance}, TISCoefficients...), CoefEntropy)
	TISBasicFeatures      = append([]string{Dissonance}, TISCoefficients...)
	TISHorizontalFeatures = []string{CosTonalDisp, EucTonalDisp, CosDist, EucDist}
	TISComplexityFeatures = []string{CosTonalDisp, EucTonalDisp, CosDist, EucDist, CoefEntropy}

	HarmRhythmFeatures = []string{HCDFPeakInterval, HCDFPeakMag}
)
