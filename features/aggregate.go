package features

import (
	"math"

	"github.com/RyanBlaney/sonido-tonal/algorithms/stats"
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// Statistic names used as column suffixes
const (
	StatMean         = "mean"
	StatStd          = "std"
	StatMedian       = "median"
	StatIQR          = "iqr"
	StatSkewness     = "skewness"
	StatLowerWhisker = "lower_whisker"
	StatUpperWhisker = "upper_whisker"
)

// summarizer reduces a feature trajectory to a fixed list of statistics
type summarizer struct {
	names []string
	fn    func(values []float64) []float64
}

// aggregate collapses every piece into a single row keyed (piece, 0) with
// one column per input column and statistic, named <column>_<statistic>.
// NaN cells are ignored; a piece with no valid values yields NaN.
func aggregate(data *dataset.Table, s summarizer) (*dataset.Table, error) {
	inputs := data.Columns()

	columns := make([]string, 0, len(inputs)*len(s.names))
	for _, c := range inputs {
		for _, stat := range s.names {
			columns = append(columns, c+"_"+stat)
		}
	}
	out, err := dataset.New(columns...)
	if err != nil {
		return nil, err
	}

	cells := make([][]float64, len(inputs))
	for i, c := range inputs {
		if cells[i], err = data.Column(c); err != nil {
			return nil, err
		}
	}

	for _, g := range data.Groups() {
		row := make([]float64, 0, len(columns))
		for _, all := range cells {
			values := make([]float64, 0, len(g.Rows))
			for _, r := range g.Rows {
				if !math.IsNaN(all[r]) {
					values = append(values, all[r])
				}
			}

			if len(values) == 0 {
				for range s.names {
					row = append(row, math.NaN())
				}
				continue
			}
			row = append(row, s.fn(values)...)
		}
		if err := out.AppendRow(dataset.Key{Piece: g.Piece}, row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MeanAndStd summarises every feature by its mean and population standard
// deviation per piece
type MeanAndStd struct{}

func (MeanAndStd) Run(data *dataset.Table) (*dataset.Table, error) {
	return aggregate(data, summarizer{
		names: []string{StatMean, StatStd},
		fn: func(v []float64) []float64 {
			m := stats.Moments(v)
			return []float64{m.Mean, m.StdDev}
		},
	})
}

// MedianAndIQR summarises every feature by its median and interquartile
// range per piece
type MedianAndIQR struct{}

func (MedianAndIQR) Run(data *dataset.Table) (*dataset.Table, error) {
	return aggregate(data, summarizer{
		names: []string{StatMedian, StatIQR},
		fn: func(v []float64) []float64 {
			q := stats.Quartiles(v)
			return []float64{q.Q2, q.IQR}
		},
	})
}

// SkewnessAndWhiskers summarises every feature by its skewness and the
// Tukey fences q1 - 1.5 iqr and q3 + 1.5 iqr per piece
type SkewnessAndWhiskers struct{}

func (SkewnessAndWhiskers) Run(data *dataset.Table) (*dataset.Table, error) {
	return aggregate(data, summarizer{
		names: []string{StatSkewness, StatLowerWhisker, StatUpperWhisker},
		fn: func(v []float64) []float64 {
			w := stats.Whiskers(stats.Quartiles(v), stats.DefaultWhiskerK)
			return []float64{stats.Skewness(v), w.Lower, w.Upper}
		},
	})
}
