package pipeline

import (
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

// Pipeline runs tasks sequentially, feeding each task the output of the
// previous one
type Pipeline struct {
	tasks  []Task
	logger logging.Logger
}

// New creates a pipeline from the given tasks
func New(tasks ...Task) *Pipeline {
	return &Pipeline{
		tasks:  tasks,
		logger: logging.WithFields(logging.Fields{"component": "pipeline"}),
	}
}

// AddTask appends a task to the pipeline
func (p *Pipeline) AddTask(t Task) {
	p.tasks = append(p.tasks, t)
}

// Tasks returns the tasks in execution order
func (p *Pipeline) Tasks() []Task {
	return append([]Task(nil), p.tasks...)
}

// Run copies data and chains every task on it
func (p *Pipeline) Run(data *dataset.Table) (*dataset.Table, error) {
	out := data.Copy()
	for i, t := range p.tasks {
		start := time.Now()

		next, err := t.Run(out)
		if err != nil {
			return nil, fmt.Errorf("task %d (%s): %w", i, TaskName(t), err)
		}
		out = next

		p.logger.Debug("task finished", logging.Fields{
			"task":     TaskName(t),
			"rows":     out.Len(),
			"columns":  len(out.Columns()),
			"duration": time.Since(start),
		})
	}
	return out, nil
}

// TaskGroup runs every task on the same input and joins all outputs by
// (piece, time) onto a copy of that input. Column names already taken get
// Suffix appended.
type TaskGroup struct {
	tasks  []Task
	Suffix string
}

// NewTaskGroup creates a group with the default "_" suffix
func NewTaskGroup(tasks ...Task) *TaskGroup {
	return &TaskGroup{
		tasks:  tasks,
		Suffix: dataset.DefaultSuffix,
	}
}

// AddTask appends a task to the group
func (g *TaskGroup) AddTask(t Task) {
	g.tasks = append(g.tasks, t)
}

// Run executes every task on the same copy of data
func (g *TaskGroup) Run(data *dataset.Table) (*dataset.Table, error) {
	input := data.Copy()
	acc := input
	for i, t := range g.tasks {
		out, err := t.Run(input)
		if err != nil {
			return nil, fmt.Errorf("group task %d (%s): %w", i, TaskName(t), err)
		}
		acc = acc.Join(out, g.Suffix)
	}
	return acc, nil
}
