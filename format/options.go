// Package format converts transformation results into canonical textual
// cells. Conversion happens in two steps: a Converter maps a native result
// onto the closed tabr.Value variant (consulting caller-registered handlers
// for custom types first), and Cell renders a Value as text according to a
// set of formatting Options.
package format

// Options controls the textual rendering of Values.
type Options struct {
	// NullToken is emitted for absent values. Defaults to the empty string.
	NullToken string
	// TrueToken is emitted for boolean true. Defaults to "true".
	TrueToken string
	// FalseToken is emitted for boolean false. Defaults to "false".
	FalseToken string
	// SeqSeparator joins the stringified elements of a collection. Defaults
	// to "|".
	SeqSeparator string
	// KeepNative leaves Null, Bool, Int and Float results as native values
	// for sinks that can represent them, such as the JSON writer. Text sinks
	// ignore it.
	KeepNative bool
}

// DefaultOptions returns the default formatting Options.
func DefaultOptions() Options {
	return Options{
		NullToken:    "",
		TrueToken:    "true",
		FalseToken:   "false",
		SeqSeparator: "|",
	}
}
