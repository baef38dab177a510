package format

import (
	"reflect"
	"time"

	"github.com/go-tabr/tabr"
	"github.com/go-tabr/tabr/errors"
)

// Handler converts a value of a caller-registered type into a tabr.Value.
type Handler func(v interface{}) (tabr.Value, error)

// Converter maps native transformation results onto the closed tabr.Value
// variant. Caller-registered handlers are consulted before the built-in
// types; anything unhandled is a SerializationError, never a silent fallback.
type Converter struct {
	handlers map[reflect.Type]Handler
}

// CreateConverter returns a new Converter with no custom handlers.
func CreateConverter() *Converter {
	return &Converter{handlers: make(map[reflect.Type]Handler)}
}

// Register installs a Handler for a custom type. Registering a type twice
// replaces the previous Handler.
func (c *Converter) Register(t reflect.Type, h Handler) {
	c.handlers[t] = h
}

// FromNative converts a native result into a tabr.Value.
func (c *Converter) FromNative(v interface{}) (tabr.Value, error) {
	if v == nil {
		return tabr.Null(), nil
	}
	if h, ok := c.handlers[reflect.TypeOf(v)]; ok {
		return h(v)
	}
	switch tv := v.(type) {
	case tabr.Value:
		return tv, nil
	case bool:
		return tabr.Bool(tv), nil
	case int:
		return tabr.Int(int64(tv)), nil
	case int32:
		return tabr.Int(int64(tv)), nil
	case int64:
		return tabr.Int(tv), nil
	case uint64:
		return tabr.Int(int64(tv)), nil
	case float32:
		return tabr.Float(float64(tv)), nil
	case float64:
		return tabr.Float(tv), nil
	case string:
		return tabr.String(tv), nil
	case time.Time:
		return tabr.Time(tv), nil
	case error:
		return tabr.ErrorValue(tv), nil
	case []interface{}:
		seq := make([]tabr.Value, len(tv))
		for i, e := range tv {
			ev, err := c.FromNative(e)
			if err != nil {
				return tabr.Null(), err
			}
			seq[i] = ev
		}
		return tabr.Seq(seq...), nil
	case []string:
		seq := make([]tabr.Value, len(tv))
		for i, e := range tv {
			seq[i] = tabr.String(e)
		}
		return tabr.Seq(seq...), nil
	case []int:
		seq := make([]tabr.Value, len(tv))
		for i, e := range tv {
			seq[i] = tabr.Int(int64(e))
		}
		return tabr.Seq(seq...), nil
	case []float64:
		seq := make([]tabr.Value, len(tv))
		for i, e := range tv {
			seq[i] = tabr.Float(e)
		}
		return tabr.Seq(seq...), nil
	default:
		return tabr.Null(), errors.SerializationError{Value: v}
	}
}
