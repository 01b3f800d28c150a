package features

import (
	"fmt"

	"github.com/RyanBlaney/sonido-tonal/algorithms/hcdf"
	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

// HCDFSegmentation splits every piece at the peaks of its Harmonic Change
// Detection Function and sums each segment into one row.
//
// With real peaks p_0 < p_1 < ... < p_{P-1} (sentinel removed), segment i
// spans frames [p_i, p_{i+1} - 1] for i < P-1. The tail starting at the last
// peak is not emitted. Each row is keyed by the first frame of its segment
// and carries every input column summed, plus hcdf_peak_idx (frame index of
// p_i within the piece) and hcdf_peak_mag. Peak columns already present in
// the input are replaced.
type HCDFSegmentation struct {
	analyzer *hcdf.Analyzer
	logger   logging.Logger
}

// NewHCDFSegmentation creates the segmentation task
func NewHCDFSegmentation(params hcdf.Params) *HCDFSegmentation {
	return &HCDFSegmentation{
		analyzer: hcdf.NewAnalyzer(params),
		logger:   logging.WithFields(logging.Fields{"component": "hcdf_segmentation"}),
	}
}

// Run segments every piece of data
func (s *HCDFSegmentation) Run(data *dataset.Table) (*dataset.Table, error) {
	pcps, err := ChromaFrames(data)
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, name := range []string{HCDFPeakIdx, HCDFPeakMag} {
		if data.HasColumn(name) {
			stale = append(stale, name)
		}
	}
	if len(stale) > 0 {
		if data, err = data.Drop(stale); err != nil {
			return nil, fmt.Errorf("hcdf segmentation: %w", err)
		}
	}

	columns := append(data.Columns(), HCDFPeakIdx, HCDFPeakMag)
	out, err := dataset.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("hcdf segmentation: %w", err)
	}

	for _, g := range data.Groups() {
		res := s.analyzer.Analyze(pcpsAt(pcps, g.Rows))

		peaks := res.Peaks[1:]
		mags := res.Magnitudes[1:]
		if len(peaks) < 2 {
			s.logger.Warn("piece has no complete harmonic segment", logging.Fields{
				"piece":  g.Piece,
				"frames": len(g.Rows),
				"peaks":  len(peaks),
			})
			continue
		}

		for i := 0; i < len(peaks)-1; i++ {
			left, right := peaks[i], peaks[i+1]-1
			values := make([]float64, len(columns))
			for _, r := range g.Rows[left : right+1] {
				row := data.Row(r)
				for c, v := range row {
					values[c] += v
				}
			}
			values[len(columns)-2] = float64(left)
			values[len(columns)-1] = mags[i]

			if err := out.AppendRow(data.Key(g.Rows[left]), values); err != nil {
				return nil, err
			}
		}

		s.logger.Debug("piece segmented", logging.Fields{
			"piece":    g.Piece,
			"frames":   len(g.Rows),
			"segments": len(peaks) - 1,
		})
	}

	return out, nil
}
