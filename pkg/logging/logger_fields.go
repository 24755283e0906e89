package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

// Import pipeline fields

// Phase names the import phase, e.g. "Importing Nodes..."
func Phase(description string) Field {
	return String("phase", description)
}

// File is the input file being imported
func File(path string) Field {
	return String("file", path)
}

// Batch is the 1-based index of a batch within a phase
func Batch(n int) Field {
	return Int("batch", n)
}

// Rows is the number of records in a batch or written by a statement
func Rows(n int) Field {
	return Int("rows", n)
}

// RunID tags every line logged by one import run
func RunID(id string) Field {
	return String("run_id", id)
}

// Pin is a node name in "<instance>.<port>" or net form
func Pin(name string) Field {
	return String("pin", name)
}
