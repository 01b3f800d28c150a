package features

import (
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// FrameFeature computes one scalar from a single chroma frame
type FrameFeature func(c tis.PCP) float64

// namedFeature binds a frame feature to its output column
type namedFeature struct {
	name string
	fn   FrameFeature
}

// nullChromaReturnsZero forces feature to 0 on all-zero frames
func nullChromaReturnsZero(feature FrameFeature) FrameFeature {
	return func(c tis.PCP) float64 {
		if c.IsZero() {
			return 0
		}
		return feature(c)
	}
}

// ChromaFrames extracts the 12 chroma columns of data as pitch class profiles
func ChromaFrames(data *dataset.Table) ([]tis.PCP, error) {
	rows, err := data.Rows(dataset.ChromaColumns)
	if err != nil {
		return nil, err
	}
	pcps := make([]tis.PCP, len(rows))
	for i, r := range rows {
		copy(pcps[i][:], r)
	}
	return pcps, nil
}

// extractFrames applies every feature to every chroma frame and returns a
// table with the same keys and one column per feature
func extractFrames(data *dataset.Table, feats []namedFeature) (*dataset.Table, error) {
	pcps, err := ChromaFrames(data)
	if err != nil {
		return nil, err
	}

	out := dataset.FromKeys(data.Keys())
	for _, f := range feats {
		values := make([]float64, len(pcps))
		for i, p := range pcps {
			values[i] = f.fn(p)
		}
		if err := out.SetColumn(f.name, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// pcpsAt gathers the frames at the given row positions
func pcpsAt(pcps []tis.PCP, rows []int) []tis.PCP {
	out := make([]tis.PCP, len(rows))
	for i, r := range rows {
		out[i] = pcps[r]
	}
	return out
}
