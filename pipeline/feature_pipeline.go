package pipeline

import (
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// FeaturePipeline is the standard shape of a feature extraction run:
//  1. preparation tasks (resampling, normalisation, segmentation)
//  2. a TaskGroup of feature extractors sharing the prepared table
//  3. selection of the feature columns to keep
//  4. an optional statistics task collapsing every piece into one row
type FeaturePipeline struct {
	Name     string
	Prep     []Task
	Features *TaskGroup
	Columns  []string
	Stats    Task
}

// Pipeline assembles the stages into a sequential Pipeline
func (f *FeaturePipeline) Pipeline() *Pipeline {
	p := New(f.Prep...)
	if f.Features != nil {
		p.AddTask(f.Features)
	}
	if len(f.Columns) > 0 {
		p.AddTask(SelectColumns{Columns: f.Columns})
	}
	if f.Stats != nil {
		p.AddTask(f.Stats)
	}
	return p
}

// Run executes the assembled pipeline on data
func (f *FeaturePipeline) Run(data *dataset.Table) (*dataset.Table, error) {
	return f.Pipeline().Run(data)
}
