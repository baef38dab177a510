package tabr

import "time"

// Kind identifies the variant stored in a Value. The set of kinds is closed:
// the serializer consumes it exhaustively and anything outside it is rejected
// when converting from a native result (see format.Converter).
type Kind uint8

const (
	// KindNull represents the absence of a value
	KindNull Kind = iota
	// KindBool represents a boolean value
	KindBool
	// KindInt represents an integer value
	KindInt
	// KindFloat represents a floating-point value
	KindFloat
	// KindString represents a textual value
	KindString
	// KindSeq represents an ordered collection of Values
	KindSeq
	// KindTime represents a date/time value
	KindTime
	// KindError represents an error condition carried as a value
	KindError
)

// Value is the dynamically typed outcome of a user transformation, represented
// as a closed tagged variant rather than a bare interface{} so that downstream
// consumers can dispatch exhaustively.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
	t    time.Time
	err  error
}

// Null returns the absent Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a textual Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Seq returns an ordered-collection Value.
func Seq(vs ...Value) Value { return Value{kind: KindSeq, seq: vs} }

// Time returns a date/time Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// ErrorValue returns a Value carrying an error condition.
func ErrorValue(err error) Value { return Value{kind: KindError, err: err} }

// Kind returns the variant stored in this Value.
func (v Value) Kind() Kind { return v.kind }

// IsNull returns true iff this Value is the absent Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolVal returns the boolean stored in this Value. Valid only for KindBool.
func (v Value) BoolVal() bool { return v.b }

// IntVal returns the integer stored in this Value. Valid only for KindInt.
func (v Value) IntVal() int64 { return v.i }

// FloatVal returns the float stored in this Value. Valid only for KindFloat.
func (v Value) FloatVal() float64 { return v.f }

// StringVal returns the string stored in this Value. Valid only for KindString.
func (v Value) StringVal() string { return v.s }

// SeqVal returns the elements stored in this Value. Valid only for KindSeq.
func (v Value) SeqVal() []Value { return v.seq }

// TimeVal returns the time stored in this Value. Valid only for KindTime.
func (v Value) TimeVal() time.Time { return v.t }

// ErrVal returns the error stored in this Value. Valid only for KindError.
func (v Value) ErrVal() error { return v.err }

// Native returns the Value as a plain Go value, primarily for JSON output
// sinks which keep native types.
func (v Value) Native() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSeq:
		out := make([]interface{}, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Native()
		}
		return out
	case KindTime:
		return v.t
	default:
		return v.err.Error()
	}
}
