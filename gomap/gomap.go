package gomap

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/JohnAD/slone/ir"
)

var (
	ErrType  = errors.New("unsupported type")
	ErrValue = errors.New("value mismatch")
)

// Scalar tags shared with package bridge.
const (
	numTag  = "num"
	boolTag = "bool"
)

// Marshal maps v onto an object tree. v must be a struct, a map with
// string keys, or a pointer to either.
func Marshal(v any) (*ir.Tree, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil pointer", ErrValue)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		return marshalTree(rv)
	}
	return nil, fmt.Errorf("%w: cannot marshal %s as a document", ErrType, rv.Kind())
}

// Unmarshal fills the value pointed to by v from t.
func Unmarshal(t *ir.Tree, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: need a non-nil pointer", ErrValue)
	}
	return unmarshalTree(t, rv.Elem())
}
