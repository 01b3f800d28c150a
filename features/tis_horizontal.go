package features

import (
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// TISHorizontal computes per-piece Tonal Interval Space features relating
// each frame to the rest of its piece: the distance to the piece's tonal
// centre (tonal dispersion) and the distance to the next frame.
type TISHorizontal struct{}

// Run returns the TISHorizontalFeatures columns keyed like data
func (TISHorizontal) Run(data *dataset.Table) (*dataset.Table, error) {
	pcps, err := ChromaFrames(data)
	if err != nil {
		return nil, err
	}

	n := data.Len()
	columns := map[string][]float64{
		CosTonalDisp: make([]float64, n),
		EucTonalDisp: make([]float64, n),
		CosDist:      make([]float64, n),
		EucDist:      make([]float64, n),
	}

	for _, g := range data.Groups() {
		piece := pcpsAt(pcps, g.Rows)
		tivs := tis.FromPCPs(piece)
		centre := TonalCenter(piece)

		scatter(columns[CosTonalDisp], g.Rows, TonalDispersion(tivs, centre, tis.CosineDistance))
		scatter(columns[EucTonalDisp], g.Rows, TonalDispersion(tivs, centre, tis.EuclideanDistance))
		scatter(columns[CosDist], g.Rows, SequentialDistance(tivs, tis.CosineDistance))
		scatter(columns[EucDist], g.Rows, SequentialDistance(tivs, tis.EuclideanDistance))
	}

	out := dataset.FromKeys(data.Keys())
	for _, name := range TISHorizontalFeatures {
		if err := out.SetColumn(name, columns[name]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// scatter writes values back into dst at the given row positions
func scatter(dst []float64, rows []int, values []float64) {
	for i, r := range rows {
		dst[r] = values[i]
	}
}

// TonalCenter is the TIV of the mean chroma of a piece
func TonalCenter(pcps []tis.PCP) tis.TIV {
	var mean tis.PCP
	if len(pcps) == 0 {
		return tis.TIV{}
	}
	for _, p := range pcps {
		for q := range mean {
			mean[q] += p[q]
		}
	}
	for q := range mean {
		mean[q] /= float64(len(pcps))
	}
	return tis.FromPCP(mean)
}

// TonalDispersion is the distance of every TIV to the tonal centre
func TonalDispersion(tivs tis.Collection, centre tis.TIV, metric tis.DistanceMetric) []float64 {
	out := make([]float64, len(tivs))
	for i, v := range tivs {
		out[i] = tis.Distance(v, centre, metric)
	}
	return out
}

// CoefficientDispersion is TonalDispersion restricted to coefficient k
func CoefficientDispersion(tivs tis.Collection, centre tis.TIV, k tis.Coefficient, metric tis.DistanceMetric) []float64 {
	out := make([]float64, len(tivs))
	for i, v := range tivs {
		out[i] = tis.CoefficientDistance(v, centre, k, metric)
	}
	return out
}

// SequentialDistance is the distance from every TIV to the next one; the
// last frame has no successor and scores 0
func SequentialDistance(tivs tis.Collection, metric tis.DistanceMetric) []float64 {
	out := make([]float64, len(tivs))
	for i := 0; i+1 < len(tivs); i++ {
		out[i] = tis.Distance(tivs[i], tivs[i+1], metric)
	}
	return out
}
