package features

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}

type frame struct {
	piece  string
	ms     int
	chroma []float64
}

func chromaTable(t *testing.T, frames ...frame) *dataset.Table {
	t.Helper()
	tbl := dataset.MustNew(dataset.ChromaColumns...)
	for _, f := range frames {
		key := dataset.Key{Piece: f.piece, Time: time.Duration(f.ms) * time.Millisecond}
		require.NoError(t, tbl.AppendRow(key, f.chroma))
	}
	return tbl
}

// sequence lays out chroma rows of one piece 100ms apart
func sequence(piece string, rows ...[]float64) []frame {
	frames := make([]frame, len(rows))
	for i, r := range rows {
		frames[i] = frame{piece: piece, ms: 100 * i, chroma: r}
	}
	return frames
}

func column(t *testing.T, tbl *dataset.Table, name string) []float64 {
	t.Helper()
	values, err := tbl.Column(name)
	require.NoError(t, err)
	return values
}

func zeros() []float64 {
	return make([]float64, 12)
}

func flat() []float64 {
	row := make([]float64, 12)
	for i := range row {
		row[i] = 1.0 / 12
	}
	return row
}

func spike(at int) []float64 {
	row := make([]float64, 12)
	row[at] = 1
	return row
}

var (
	rowA = []float64{0.03, 0.07, 0.11, 0.09, 0.01, 0.04, 0.06, 0.13, 0.06, 0.21, 0.12, 0.07}
	rowB = []float64{0.02, 0.08, 0.14, 0.05, 0.01, 0.15, 0.10, 0.05, 0.03, 0.07, 0.18, 0.12}

	tisRows = [][]float64{
		{1.20, 5.10, 0.90, 1.60, 2.50, 3.30, 6.00, 0.20, 0.30, 0.10, 0.02, 0.01},
		{2.10, 1.50, 9.40, 6.10, 5.20, 2.20, 3.00, 0.40, 0.20, 0.50, 0.07, 0.04},
		{0.30, 1.10, 4.90, 2.30, 2.40, 0.25, 5.37, 0.52, 0.13, 0.16, 2.02, 1.01},
		zeros(),
		{0.02, 0.01, 1.95, 1.69, 5.23, 4.35, 2.62, 0.26, 0.39, 0.10, 0.02, 0.01},
	}
)
