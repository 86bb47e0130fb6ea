package gomap

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/JohnAD/slone/ir"
)

func marshalTree(rv reflect.Value) (*ir.Tree, error) {
	switch rv.Kind() {
	case reflect.Struct:
		t := ir.NewTree()
		for _, fi := range structFields(rv.Type()) {
			fv := rv.Field(fi.index)
			if fi.omitEmpty && fv.IsZero() {
				continue
			}
			e := ir.NewEntry()
			if err := e.SetName(fi.name); err != nil {
				return nil, err
			}
			if err := marshalEntry(e, fv); err != nil {
				return nil, fmt.Errorf("field %s: %w", fi.name, err)
			}
			if err := t.Append(e); err != nil {
				return nil, err
			}
		}
		return t, nil
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key %s", ErrType, kt)
		}
		// maps are unordered; sort keys so output is stable
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		t := ir.NewTree()
		for _, k := range keys {
			e := ir.NewEntry()
			if err := e.SetName(k); err != nil {
				return nil, err
			}
			mv := rv.MapIndex(reflect.ValueOf(k).Convert(kt))
			if err := marshalEntry(e, mv); err != nil {
				return nil, fmt.Errorf("key %s: %w", k, err)
			}
			if err := t.Append(e); err != nil {
				return nil, err
			}
		}
		return t, nil
	case reflect.Slice, reflect.Array:
		t := ir.NewList()
		for i := 0; i < rv.Len(); i++ {
			e := ir.NewEntry()
			if err := marshalEntry(e, rv.Index(i)); err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			if err := t.Append(e); err != nil {
				return nil, err
			}
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrType, rv.Kind())
}

func marshalEntry(e *ir.Entry, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			e.SetNull()
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return e.SetString(rv.String())
	case reflect.Bool:
		if err := e.SetType(boolTag); err != nil {
			return err
		}
		return e.SetString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if err := e.SetType(numTag); err != nil {
			return err
		}
		return e.SetString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if err := e.SetType(numTag); err != nil {
			return err
		}
		return e.SetString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		if err := e.SetType(numTag); err != nil {
			return err
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		return e.SetString(strconv.FormatFloat(rv.Float(), 'g', -1, bits))
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			e.SetNull()
			return nil
		}
		sub, err := marshalTree(rv)
		if err != nil {
			return err
		}
		return e.SetTree(sub)
	case reflect.Struct, reflect.Array:
		sub, err := marshalTree(rv)
		if err != nil {
			return err
		}
		return e.SetTree(sub)
	}
	return fmt.Errorf("%w: %s", ErrType, rv.Kind())
}
