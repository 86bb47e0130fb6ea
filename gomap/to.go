package gomap

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/JohnAD/slone/ir"
)

func unmarshalTree(t *ir.Tree, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		if t.Kind() != ir.ObjectKind {
			return fmt.Errorf("%w: list into %s", ErrValue, rv.Type())
		}
		byName := map[string]fieldInfo{}
		for _, fi := range structFields(rv.Type()) {
			byName[fi.name] = fi
		}
		for _, e := range t.Entries() {
			name, ok := e.Name()
			if !ok {
				continue
			}
			fi, ok := byName[name]
			if !ok {
				continue
			}
			if err := unmarshalEntry(e, rv.Field(fi.index)); err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
		}
		return nil
	case reflect.Map:
		if t.Kind() != ir.ObjectKind {
			return fmt.Errorf("%w: list into %s", ErrValue, rv.Type())
		}
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return fmt.Errorf("%w: map key %s", ErrType, kt)
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(rv.Type()))
		}
		for _, e := range t.Entries() {
			name, ok := e.Name()
			if !ok {
				continue
			}
			ev := reflect.New(rv.Type().Elem()).Elem()
			if err := unmarshalEntry(e, ev); err != nil {
				return fmt.Errorf("key %s: %w", name, err)
			}
			rv.SetMapIndex(reflect.ValueOf(name).Convert(kt), ev)
		}
		return nil
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), t.Len(), t.Len())
		for i, e := range t.Entries() {
			if err := unmarshalEntry(e, out.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		rv.Set(out)
		return nil
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(treeToAny(t)))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrType, rv.Kind())
}

func unmarshalEntry(e *ir.Entry, rv reflect.Value) error {
	if e.ValueKind() == ir.NullValue {
		rv.SetZero()
		return nil
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	if e.ValueKind() == ir.TreeValue {
		return unmarshalTree(e.Tree(), rv)
	}
	v := e.StringValue()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(v)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValue, err)
		}
		rv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValue, err)
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValue, err)
		}
		rv.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValue, err)
		}
		rv.SetFloat(f)
		return nil
	case reflect.Interface:
		if rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(scalarToAny(e)))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrType, rv.Kind())
}

func scalarToAny(e *ir.Entry) any {
	v := e.StringValue()
	if tag, ok := e.Type(); ok {
		switch tag {
		case numTag:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		case boolTag:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return v
}

// treeToAny loses duplicate names inside objects; interface targets get
// the JSON-style shapes map[string]any and []any.
func treeToAny(t *ir.Tree) any {
	if t.Kind() == ir.ListKind {
		out := make([]any, 0, t.Len())
		for _, e := range t.Entries() {
			out = append(out, entryToAny(e))
		}
		return out
	}
	out := make(map[string]any, t.Len())
	for _, e := range t.Entries() {
		name, ok := e.Name()
		if !ok {
			continue
		}
		out[name] = entryToAny(e)
	}
	return out
}

func entryToAny(e *ir.Entry) any {
	switch e.ValueKind() {
	case ir.NullValue:
		return nil
	case ir.TreeValue:
		return treeToAny(e.Tree())
	}
	return scalarToAny(e)
}
