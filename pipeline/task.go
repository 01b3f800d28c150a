package pipeline

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// Task transforms a table into a new table. Tasks are configured at
// construction and must not modify their input.
type Task interface {
	Run(data *dataset.Table) (*dataset.Table, error)
}

// TaskFunc adapts a plain function to the Task interface
type TaskFunc func(data *dataset.Table) (*dataset.Table, error)

// Run calls f(data)
func (f TaskFunc) Run(data *dataset.Table) (*dataset.Table, error) {
	return f(data)
}

// Named is implemented by tasks that want a custom name in logs
type Named interface {
	Name() string
}

// TaskName returns a short name for t
func TaskName(t Task) string {
	if n, ok := t.(Named); ok {
		return n.Name()
	}
	name := fmt.Sprintf("%T", t)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// SelectColumns keeps only the given columns, in the given order
type SelectColumns struct {
	Columns []string
}

// Run returns the selected columns; a missing column is ErrMissingColumn
func (s SelectColumns) Run(data *dataset.Table) (*dataset.Table, error) {
	return data.Select(s.Columns)
}

// RemoveColumns drops the given columns
type RemoveColumns struct {
	Columns []string
}

// Run returns data without the columns; a missing column is ErrMissingColumn
func (r RemoveColumns) Run(data *dataset.Table) (*dataset.Table, error) {
	return data.Drop(r.Columns)
}
