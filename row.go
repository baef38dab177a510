package tabr

// Row is a single record of a delimited stream: an ordered sequence of textual
// cells. A well-formed stream presents rows whose width matches the stream's
// Schema exactly; a width mismatch is a structural error, never silently
// tolerated.
type Row []string

// Clone returns an independent copy of this Row.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// Task pairs a Row with its stable index. Indices are assigned in read order,
// start at zero, increase monotonically and are never reused. Ownership of a
// Task transfers from the task source to a worker for the duration of
// evaluation.
type Task struct {
	Index uint64
	Row   Row
}

// Result pairs a Task index with the outcome of evaluating the user
// transformation against that Task's Row. Exactly one of Value and Err is
// meaningful: a worker which fails to evaluate a row reports the failure here
// rather than aborting, so the collector can decide whether to tolerate it.
type Result struct {
	Index uint64
	Value interface{}
	Err   error
}
