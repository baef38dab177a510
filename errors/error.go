package errors

import (
	"fmt"
)

// UnknownColumnError occurs when a column name is not present in a Schema
type UnknownColumnError struct{ Name string }

// Error returns a textual representation of this UnknownColumnError
func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("Column %s does not exist", e.Name)
}

// DuplicateColumnError occurs when a header declares the same column name twice
type DuplicateColumnError struct{ Name string }

// Error returns a textual representation of this DuplicateColumnError
func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("Column %s is declared more than once", e.Name)
}

// RowWidthError occurs when a Row's width does not match its stream's Schema
type RowWidthError struct {
	Index    uint64
	Expected int
	Actual   int
}

// Error returns a textual representation of this RowWidthError
func (e RowWidthError) Error() string {
	return fmt.Sprintf("Row %d has %d cells, expected %d", e.Index, e.Actual, e.Expected)
}

// EvaluationError occurs when user transformation code fails against a row.
// It carries the offending row index and the underlying cause.
type EvaluationError struct {
	Index uint64
	Cause error
}

// Error returns a textual representation of this EvaluationError
func (e EvaluationError) Error() string {
	return fmt.Sprintf("Evaluation failed for row %d: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying cause of this EvaluationError
func (e EvaluationError) Unwrap() error {
	return e.Cause
}

// CorrespondenceError occurs when a result arrives for an index with no
// pending row. It indicates a pool or dispatch defect, never a data condition,
// and is always fatal.
type CorrespondenceError struct{ Index uint64 }

// Error returns a textual representation of this CorrespondenceError
func (e CorrespondenceError) Error() string {
	return fmt.Sprintf("Result for index %d does not correspond to any pending row", e.Index)
}

// SerializationError occurs when a transformation result has a type the
// serializer cannot represent
type SerializationError struct{ Value interface{} }

// Error returns a textual representation of this SerializationError
func (e SerializationError) Error() string {
	return fmt.Sprintf("Cannot serialize value of type %T", e.Value)
}

// InterruptedError occurs when a run is cancelled by an interrupt signal.
// It is not a data error: the run terminates early with a distinct exit
// status and without diagnostic noise.
type InterruptedError struct{}

// Error returns a textual representation of this InterruptedError
func (e InterruptedError) Error() string {
	return "Interrupted"
}

// ClosedSinkError occurs when the output sink is closed by its consumer
// before the stream completes. Like interruption, it terminates the run early
// with a distinct exit status and no diagnostic noise.
type ClosedSinkError struct{}

// Error returns a textual representation of this ClosedSinkError
func (e ClosedSinkError) Error() string {
	return "Output closed by consumer"
}
