package catalogue

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/features"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}

var (
	rowA    = []float64{0.03, 0.07, 0.11, 0.09, 0.01, 0.04, 0.06, 0.13, 0.06, 0.21, 0.12, 0.07}
	cMajor  = []float64{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}
	fsMajor = []float64{0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0}
	gMajor  = []float64{0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1}
)

func appendFrames(t *testing.T, tbl *dataset.Table, piece string, rows ...[]float64) {
	t.Helper()
	for i, r := range rows {
		key := dataset.Key{Piece: piece, Time: time.Duration(i) * 100 * time.Millisecond}
		require.NoError(t, tbl.AppendRow(key, r))
	}
}

func repeat(row []float64, n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = row
	}
	return rows
}

func TestNamesAndLookup(t *testing.T) {
	names := Names()
	assert.Len(t, names, 9)
	assert.Equal(t, []string{"tis_complexity_segmented", "tis_basic_segmented", "harm_rhythm"}, NamesOf(Segmented))
	assert.Equal(t, []string{"tis_complexity_res", "tis_basic_res", "complexity", "template_based"}, NamesOf(Resampled))

	e, err := Lookup("tis_basic_local_res")
	require.NoError(t, err)
	assert.Equal(t, FixedResolution, e.Kind)
	assert.Equal(t, 0.1, e.Resolution)

	_, err = Lookup("chords")
	assert.True(t, errors.Is(err, ErrUnknownPipeline))
}

func TestCombinations(t *testing.T) {
	assert.Equal(t, [][]string{
		{"a"}, {"b"}, {"c"},
		{"a", "b"}, {"a", "c"}, {"b", "c"},
		{"a", "b", "c"},
	}, Combinations([]string{"a", "b", "c"}))
	assert.Empty(t, Combinations(nil))
	assert.Len(t, DefaultCombinations(), 127)
}

func TestBuild(t *testing.T) {
	e, err := Lookup("complexity")
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Suffix = "_dup"
	fp := e.Build(0.5, opts)
	assert.Equal(t, "complexity", fp.Name)
	assert.Len(t, fp.Pipeline().Tasks(), 5)
	assert.Equal(t, "_dup", fp.Features.Suffix)

	res, ok := fp.Prep[0].(*features.ChromaResolution)
	require.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, res.Resolution)

	local, err := Lookup("tis_complexity_local_res")
	require.NoError(t, err)
	res, ok = local.Build(10, opts).Prep[0].(*features.ChromaResolution)
	require.True(t, ok)
	assert.Equal(t, 100*time.Millisecond, res.Resolution)
}

func TestRunResolutions(t *testing.T) {
	data := dataset.MustNew(dataset.ChromaColumns...)
	appendFrames(t, data, "bach_2", rowA)
	appendFrames(t, data, "vivaldi_1", rowA, rowA)

	out, err := NewRunner(DefaultOptions(), 2).RunResolutions(context.Background(), data, "complexity", []float64{0.1, 0})
	require.NoError(t, err)

	assert.Equal(t, []dataset.Key{{Piece: "bach_2"}, {Piece: "vivaldi_1"}}, out.Keys())
	columns := out.Columns()
	assert.Len(t, columns, 2*2*len(features.ComplexityFeatures))
	assert.Equal(t, "comp_diff_mean_100ms", columns[0])
	assert.Contains(t, columns, "comp_fifth_std_global")

	for _, name := range []string{"comp_diff_mean_100ms", "comp_diff_mean_global"} {
		values, err := out.Column(name)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.65, 0.65}, values, 1e-7, name)
	}

	std, err := out.Column("comp_diff_std_100ms")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0}, std, 1e-12)
}

func TestRunSegmented(t *testing.T) {
	data := dataset.MustNew(dataset.ChromaColumns...)
	var rows [][]float64
	for _, chord := range [][]float64{cMajor, fsMajor, gMajor} {
		rows = append(rows, repeat(chord, 20)...)
	}
	appendFrames(t, data, "bach_2", rows...)
	appendFrames(t, data, "short", cMajor, gMajor, cMajor)

	// resolutions are ignored by segmented pipelines
	out, err := NewRunner(DefaultOptions(), 4).RunResolutions(context.Background(), data, "harm_rhythm", []float64{0.1, 0.5})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"hcdf_peak_interval_skewness", "hcdf_peak_interval_lower_whisker", "hcdf_peak_interval_upper_whisker",
		"hcdf_peak_mag_skewness", "hcdf_peak_mag_lower_whisker", "hcdf_peak_mag_upper_whisker",
	}, out.Columns())
	require.Equal(t, 2, out.Len())

	mag, err := out.Value(0, "hcdf_peak_mag_upper_whisker")
	require.NoError(t, err)
	assert.InDelta(t, 4.00824300923659, mag, 1e-9)

	for _, v := range out.Row(1) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRunJoinsPipelines(t *testing.T) {
	data := dataset.MustNew(dataset.ChromaColumns...)
	appendFrames(t, data, "bach_2", rowA, rowA)

	names := []string{"tis_basic_res", "tis_basic_local_res"}
	out, err := NewRunner(DefaultOptions(), 1).Run(context.Background(), data, names, []float64{0})
	require.NoError(t, err)

	columns := out.Columns()
	assert.Contains(t, columns, "dissonance_mean_global")
	assert.Contains(t, columns, "dissonance_mean")
	assert.Len(t, columns, 4*len(features.TISBasicFeatures))

	global, err := out.Value(0, "dissonance_mean_global")
	require.NoError(t, err)
	local, err := out.Value(0, "dissonance_mean")
	require.NoError(t, err)
	// scaling a profile does not change its normalised TIV
	assert.InDelta(t, local, global, 1e-12)
}

func TestRunErrors(t *testing.T) {
	runner := NewRunner(DefaultOptions(), 0)
	data := dataset.MustNew("c1")

	_, err := runner.RunResolutions(context.Background(), data, "nope", DefaultResolutions)
	assert.True(t, errors.Is(err, ErrUnknownPipeline))

	_, err = runner.RunResolutions(context.Background(), data, "complexity", DefaultResolutions)
	assert.True(t, errors.Is(err, dataset.ErrMissingColumn))

	_, err = runner.RunResolutions(context.Background(), data, "complexity", nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.RunResolutions(ctx, dataset.MustNew(dataset.ChromaColumns...), "complexity", DefaultResolutions)
	assert.True(t, errors.Is(err, context.Canceled))
}
