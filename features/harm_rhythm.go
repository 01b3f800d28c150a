package features

import (
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// HarmRhythm derives harmonic rhythm from an HCDF segmentation: the number
// of frames between consecutive peaks of a piece (0 for the last segment)
// and the magnitude of each peak.
type HarmRhythm struct{}

// Run returns the HarmRhythmFeatures columns keyed like data
func (HarmRhythm) Run(data *dataset.Table) (*dataset.Table, error) {
	idx, err := data.Column(HCDFPeakIdx)
	if err != nil {
		return nil, err
	}
	mags, err := data.Column(HCDFPeakMag)
	if err != nil {
		return nil, err
	}

	intervals := make([]float64, data.Len())
	for _, g := range data.Groups() {
		for i := 0; i+1 < len(g.Rows); i++ {
			intervals[g.Rows[i]] = idx[g.Rows[i+1]] - idx[g.Rows[i]]
		}
	}

	out := dataset.FromKeys(data.Keys())
	if err := out.SetColumn(HCDFPeakInterval, intervals); err != nil {
		return nil, err
	}
	if err := out.SetColumn(HCDFPeakMag, mags); err != nil {
		return nil, err
	}
	return out, nil
}
