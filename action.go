package tabr

// Action turns reconciled (row, result) pairs into zero, one or many output
// rows. Implementations are stateful: Reduce folds into an accumulator,
// GroupBy buffers groups, Reverse buffers the whole stream. Dispatch is called
// once per input row, in output order (submission order under sequential or
// ordered-parallel execution, completion order under unordered execution).
// Finish is called exactly once after the last Dispatch and is where
// stream-end actions emit their output. Abort is called instead of Finish
// when a run terminates early: everything fully serialized must be flushed
// and nothing else, so streaming actions flush their writer and buffering
// actions emit nothing.
type Action interface {
	Dispatch(row Row, value Value) error
	Finish() error
	Abort() error
}

// Transformation is the user-supplied per-row computation together with its
// hook lifecycle. One live instance exists per worker; binding mutations made
// by Before, Eval and After persist across rows for the lifetime of that
// worker and are never shared with other workers.
type Transformation interface {
	// Before runs the caller's "before" hooks against the task about to be
	// evaluated, mutating worker-local bindings.
	Before(t Task) error
	// Eval evaluates the main transformation code against the task, returning
	// the dynamically typed result.
	Eval(t Task) (interface{}, error)
	// After runs the caller's "after" hooks against the just-evaluated task
	// and its result.
	After(t Task, result interface{}) error
}

// TransformationFactory constructs a fresh Transformation for a single worker.
// The caller's init hooks run exactly once during construction: init is part
// of worker construction, not of task execution, so a pool of N workers runs
// init N times and each worker owns its bindings exclusively.
type TransformationFactory func(worker int) (Transformation, error)
