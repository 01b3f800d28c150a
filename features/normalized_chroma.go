package features

import (
	"github.com/RyanBlaney/sonido-tonal/algorithms/common"
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// NormalizedChroma divides every chroma frame by its L1 norm. Zero frames
// stay zero and non-chroma columns pass through untouched.
type NormalizedChroma struct{}

// Run returns a copy of data with normalised chroma columns
func (NormalizedChroma) Run(data *dataset.Table) (*dataset.Table, error) {
	rows, err := data.Rows(dataset.ChromaColumns)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		norm := common.L1Norm(row)
		if norm == 0 {
			continue
		}
		for q := range row {
			row[q] /= norm
		}
	}

	out := data.Copy()
	for q, name := range dataset.ChromaColumns {
		column := make([]float64, len(rows))
		for i, row := range rows {
			column[i] = row[q]
		}
		if err := out.SetColumn(name, column); err != nil {
			return nil, err
		}
	}
	return out, nil
}
