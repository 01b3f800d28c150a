// Package catalogue names the feature pipelines that can be extracted from
// a chroma dataset and runs them over one or more time resolutions.
package catalogue

import (
	"errors"
	"fmt"
	"slices"

	"github.com/RyanBlaney/sonido-tonal/algorithms/hcdf"
	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/features"
	"github.com/RyanBlaney/sonido-tonal/pipeline"
)

// ErrUnknownPipeline is returned for names missing from the catalogue
var ErrUnknownPipeline = errors.New("unknown pipeline")

// Kind tells how a pipeline uses the time axis
type Kind int

const (
	// Resampled pipelines sum chroma into bins of a requested resolution
	Resampled Kind = iota
	// Segmented pipelines split pieces at harmonic changes
	Segmented
	// FixedResolution pipelines always resample at their own resolution
	FixedResolution
)

func (k Kind) String() string {
	switch k {
	case Resampled:
		return "resolution"
	case Segmented:
		return "segmented"
	case FixedResolution:
		return "fixed_resolution"
	default:
		return "unknown"
	}
}

// Options are the knobs shared by every catalogue pipeline
type Options struct {
	HCDF   hcdf.Params
	Suffix string
}

// DefaultOptions returns the default HCDF parameters and join suffix
func DefaultOptions() Options {
	return Options{
		HCDF:   hcdf.DefaultParams(),
		Suffix: dataset.DefaultSuffix,
	}
}

// Entry is a named pipeline recipe
type Entry struct {
	Name string
	Kind Kind
	// Resolution in seconds, only meaningful for FixedResolution entries
	Resolution float64

	build func(resolution float64, opts Options) *pipeline.FeaturePipeline
}

// Build assembles the pipeline. resolution is ignored by Segmented and
// FixedResolution entries.
func (e Entry) Build(resolution float64, opts Options) *pipeline.FeaturePipeline {
	if e.Kind == FixedResolution {
		resolution = e.Resolution
	}
	fp := e.build(resolution, opts)
	fp.Name = e.Name
	if fp.Features != nil && opts.Suffix != "" {
		fp.Features.Suffix = opts.Suffix
	}
	return fp
}

var entries = []Entry{
	{Name: "tis_complexity_segmented", Kind: Segmented, build: tisComplexitySegmented},
	{Name: "tis_basic_segmented", Kind: Segmented, build: tisBasicSegmented},
	{Name: "harm_rhythm", Kind: Segmented, build: harmRhythm},
	{Name: "tis_complexity_res", Kind: Resampled, build: tisComplexityRes},
	{Name: "tis_basic_res", Kind: Resampled, build: tisBasicRes},
	{Name: "complexity", Kind: Resampled, build: complexity},
	{Name: "template_based", Kind: Resampled, build: templateBased},
	{Name: "tis_complexity_local_res", Kind: FixedResolution, Resolution: 0.1, build: tisComplexityRes},
	{Name: "tis_basic_local_res", Kind: FixedResolution, Resolution: 0.1, build: tisBasicRes},
}

// Entries returns the full catalogue in a stable order
func Entries() []Entry {
	return slices.Clone(entries)
}

// Names returns the names of every entry
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// NamesOf returns the names of entries of the given kind
func NamesOf(kind Kind) []string {
	var names []string
	for _, e := range entries {
		if e.Kind == kind {
			names = append(names, e.Name)
		}
	}
	return names
}

// Lookup finds an entry by name
func Lookup(name string) (Entry, error) {
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownPipeline, name)
}

// Combinations lists every non-empty combination of names, shortest first,
// each combination in the order the names were given
func Combinations(names []string) [][]string {
	var out [][]string
	for size := 1; size <= len(names); size++ {
		idx := make([]int, size)
		for i := range idx {
			idx[i] = i
		}
		for {
			comb := make([]string, size)
			for i, j := range idx {
				comb[i] = names[j]
			}
			out = append(out, comb)

			// advance the rightmost index that still has room
			i := size - 1
			for i >= 0 && idx[i] == len(names)-size+i {
				i--
			}
			if i < 0 {
				break
			}
			idx[i]++
			for j := i + 1; j < size; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
	return out
}

// DefaultCombinations combines the segmented and resampled pipelines
func DefaultCombinations() [][]string {
	return Combinations(append(NamesOf(Segmented), NamesOf(Resampled)...))
}

func resampled(resolution float64, normalize bool) []pipeline.Task {
	tasks := []pipeline.Task{features.NewChromaResolution(resolution)}
	if normalize {
		tasks = append(tasks, features.NormalizedChroma{})
	}
	return tasks
}

func complexity(resolution float64, _ Options) *pipeline.FeaturePipeline {
	return &pipeline.FeaturePipeline{
		Prep:     resampled(resolution, true),
		Features: pipeline.NewTaskGroup(features.Complexity{}),
		Columns:  features.ComplexityFeatures,
		Stats:    features.MeanAndStd{},
	}
}

func templateBased(resolution float64, _ Options) *pipeline.FeaturePipeline {
	return &pipeline.FeaturePipeline{
		Prep:     resampled(resolution, true),
		Features: pipeline.NewTaskGroup(features.TemplateBased{}),
		Columns:  features.TemplateFeatures,
		Stats:    features.MeanAndStd{},
	}
}

func tisBasicRes(resolution float64, _ Options) *pipeline.FeaturePipeline {
	return &pipeline.FeaturePipeline{
		Prep:     resampled(resolution, false),
		Features: pipeline.NewTaskGroup(features.TISVertical{}),
		Columns:  features.TISBasicFeatures,
		Stats:    features.MeanAndStd{},
	}
}

func tisComplexityRes(resolution float64, _ Options) *pipeline.FeaturePipeline {
	return &pipeline.FeaturePipeline{
		Prep:     resampled(resolution, false),
		Features: pipeline.NewTaskGroup(features.TISVertical{}, features.TISHorizontal{}),
		Columns:  features.TISComplexityFeatures,
		Stats:    features.MedianAndIQR{},
	}
}

func tisBasicSegmented(_ float64, opts Options) *pipeline.FeaturePipeline {
	return &pipeline.FeaturePipeline{
		Prep:     []pipeline.Task{features.NewHCDFSegmentation(opts.HCDF)},
		Features: pipeline.NewTaskGroup(features.TISVertical{}),
		Columns:  features.TISBasicFeatures,
		Stats:    features.MeanAndStd{},
	}
}

func tisComplexitySegmented(_ float64, opts Options) *pipeline.FeaturePipeline {
	return &pipeline.FeaturePipeline{
		Prep:     []pipeline.Task{features.NewHCDFSegmentation(opts.HCDF)},
		Features: pipeline.NewTaskGroup(features.TISVertical{}, features.TISHorizontal{}),
		Columns:  features.TISComplexityFeatures,
		Stats:    features.MedianAndIQR{},
	}
}

func harmRhythm(_ float64, opts Options) *pipeline.FeaturePipeline {
	return &pipeline.FeaturePipeline{
		Prep:     []pipeline.Task{features.NewHCDFSegmentation(opts.HCDF)},
		Features: pipeline.NewTaskGroup(features.HarmRhythm{}),
		Columns:  features.HarmRhythmFeatures,
		Stats:    features.SkewnessAndWhiskers{},
	}
}
