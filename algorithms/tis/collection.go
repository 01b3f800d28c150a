package tis

// Collection is an ordered sequence of TIVs, one per chroma frame
type Collection []TIV

// FromPCPs computes the TIV of every frame
func FromPCPs(pcps []PCP) Collection {
	c := make(Collection, len(pcps))
	for i, p := range pcps {
		c[i] = FromPCP(p)
	}
	return c
}

// Magnitudes returns the N x 6 magnitude matrix
func (c Collection) Magnitudes() [][NumCoefficients]float64 {
	out := make([][NumCoefficients]float64, len(c))
	for i, v := range c {
		out[i] = v.Magnitudes()
	}
	return out
}

// Coefficients returns the normalised magnitude of coefficient k per frame
func (c Collection) Coefficients(k Coefficient) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = v.Coefficient(k)
	}
	return out
}

// Dissonance returns the dissonance of every frame
func (c Collection) Dissonance() []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = v.Dissonance()
	}
	return out
}

// CoefficientEntropy returns the coefficient entropy of every frame
func (c Collection) CoefficientEntropy() []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = v.CoefficientEntropy()
	}
	return out
}

// Mean returns the elementwise mean TIV; empty collections give the zero TIV
func (c Collection) Mean() TIV {
	var mean TIV
	if len(c) == 0 {
		return mean
	}
	for _, v := range c {
		for k := range v {
			mean[k] += v[k]
		}
	}
	n := complex(float64(len(c)), 0)
	for k := range mean {
		mean[k] /= n
	}
	return mean
}
