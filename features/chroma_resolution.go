package features

import (
	"fmt"
	"strconv"
	"time"

	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

// Global is the resolution that sums a whole piece into a single frame
const Global time.Duration = 0

// ChromaResolution resamples every piece onto a coarser time grid by
// summing all frames that fall into the same bin. Bins are aligned at time 0
// and keyed by their start; empty bins between the first and last frame of a
// piece become zero rows. The Global resolution emits one row per piece
// keyed at time 0.
type ChromaResolution struct {
	Resolution time.Duration
	logger     logging.Logger
}

// NewChromaResolution creates the task; resolution is in seconds, 0 for
// Global
func NewChromaResolution(seconds float64) *ChromaResolution {
	return &ChromaResolution{
		Resolution: dataset.Seconds(seconds),
		logger:     logging.WithFields(logging.Fields{"component": "chroma_resolution"}),
	}
}

// Run resamples every piece of data
func (c *ChromaResolution) Run(data *dataset.Table) (*dataset.Table, error) {
	if c.Resolution < 0 {
		return nil, fmt.Errorf("negative resolution %s", c.Resolution)
	}
	if err := data.Require(dataset.ChromaColumns...); err != nil {
		return nil, err
	}

	columns := data.Columns()
	out := dataset.MustNew(columns...)

	for _, g := range data.Groups() {
		if c.Resolution == Global {
			sum := make([]float64, len(columns))
			for _, r := range g.Rows {
				addRow(sum, data.Row(r))
			}
			if err := out.AppendRow(dataset.Key{Piece: g.Piece}, sum); err != nil {
				return nil, err
			}
			continue
		}

		bins := make(map[int64][]float64)
		first, last := int64(0), int64(0)
		for i, r := range g.Rows {
			b := floorDiv(int64(data.Key(r).Time), int64(c.Resolution))
			if i == 0 || b < first {
				first = b
			}
			if i == 0 || b > last {
				last = b
			}
			if bins[b] == nil {
				bins[b] = make([]float64, len(columns))
			}
			addRow(bins[b], data.Row(r))
		}

		for b := first; b <= last; b++ {
			sum, ok := bins[b]
			if !ok {
				sum = make([]float64, len(columns))
			}
			key := dataset.Key{Piece: g.Piece, Time: time.Duration(b) * c.Resolution}
			if err := out.AppendRow(key, sum); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Debug("chroma resampled", logging.Fields{
		"resolution": FormatResolution(c.Resolution),
		"frames_in":  data.Len(),
		"frames_out": out.Len(),
	})
	return out, nil
}

func addRow(dst, row []float64) {
	for i, v := range row {
		dst[i] += v
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FormatResolution names a resolution for column suffixes: "100ms", "10s",
// "global"
func FormatResolution(d time.Duration) string {
	if d == Global {
		return "global"
	}
	if d%time.Second == 0 {
		return strconv.FormatInt(int64(d/time.Second), 10) + "s"
	}
	if d%time.Millisecond == 0 {
		return strconv.FormatInt(int64(d/time.Millisecond), 10) + "ms"
	}
	return d.String()
}
