package features

import (
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// TISVertical computes per-frame Tonal Interval Space features: dissonance,
// the six normalised coefficient magnitudes and the coefficient entropy
type TISVertical struct{}

// Run returns the TISVerticalFeatures columns keyed like data
func (TISVertical) Run(data *dataset.Table) (*dataset.Table, error) {
	pcps, err := ChromaFrames(data)
	if err != nil {
		return nil, err
	}
	tivs := tis.FromPCPs(pcps)

	out := dataset.FromKeys(data.Keys())
	if err := out.SetColumn(Dissonance, tivs.Dissonance()); err != nil {
		return nil, err
	}
	for k, name := range TISCoefficients {
		if err := out.SetColumn(name, tivs.Coefficients(tis.Coefficient(k))); err != nil {
			return nil, err
		}
	}
	if err := out.SetColumn(CoefEntropy, tivs.CoefficientEntropy()); err != nil {
		return nil, err
	}
	return out, nil
}
