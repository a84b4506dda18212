package storage

import (
	"errors"

	"github.com/revelaction/reval/probe"
)

var ErrTaskNotFound = errors.New("task not found")

// RecordWriter defines write operations for probing datasets
type RecordWriter interface {
	// Write persists the records of a task, replacing any records
	// previously written for it.
	Write(task string, records []probe.Record) error
}

// RecordReader defines read operations for probing datasets
type RecordReader interface {
	// Read returns the records of a task in the order they were written.
	Read(task string) ([]probe.Record, error)

	// Tasks returns the names of the stored tasks, sorted alphabetically.
	Tasks() ([]string, error)
}

// RecordRepository combines read and write operations
type RecordRepository interface {
	RecordReader
	RecordWriter
}
