package bridge

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/JohnAD/slone/ir"
)

// ToYAML renders t as YAML, entries in document order.
func ToYAML(t *ir.Tree) ([]byte, error) {
	v, err := yamlValue(t)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

func yamlValue(t *ir.Tree) (any, error) {
	if t.Kind() == ir.ListKind {
		out := []any{}
		for _, e := range t.Entries() {
			v, err := entryYAML(e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	ms := yaml.MapSlice{}
	for _, e := range t.Entries() {
		name, _ := e.Name()
		v, err := entryYAML(e)
		if err != nil {
			return nil, err
		}
		ms = append(ms, yaml.MapItem{Key: name, Value: v})
	}
	return ms, nil
}

func entryYAML(e *ir.Entry) (any, error) {
	switch e.ValueKind() {
	case ir.NullValue:
		return nil, nil
	case ir.TreeValue:
		return yamlValue(e.Tree())
	}
	v := e.StringValue()
	if tag, ok := e.Type(); ok {
		switch tag {
		case numTag:
			if i, err := strconv.ParseInt(v, 10, 64); err == nil {
				return i, nil
			}
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
			return nil, fmt.Errorf("%w: %q is not a number", ErrConvert, v)
		case boolTag:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a bool", ErrConvert, v)
			}
			return b, nil
		}
	}
	return v, nil
}

// FromYAML builds a tree from a YAML mapping. Key order is preserved
// via ordered decoding; scalar kinds are tagged the same way FromJSON
// tags them.
func FromYAML(d []byte) (*ir.Tree, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, convertErr(err)
	}
	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value must be a mapping", ErrConvert)
	}
	root := ir.NewTree()
	if err := fillObject(root, ms); err != nil {
		return nil, err
	}
	return root, nil
}

func fillObject(t *ir.Tree, ms yaml.MapSlice) error {
	for _, item := range ms {
		e := ir.NewEntry()
		if err := e.SetName(fmt.Sprint(item.Key)); err != nil {
			return convertErr(err)
		}
		if err := setFromAny(e, item.Value); err != nil {
			return err
		}
		if err := t.Append(e); err != nil {
			return convertErr(err)
		}
	}
	return nil
}

func setFromAny(e *ir.Entry, v any) error {
	switch x := v.(type) {
	case nil:
		e.SetNull()
		return nil
	case yaml.MapSlice:
		sub := ir.NewTree()
		if err := e.SetTree(sub); err != nil {
			return convertErr(err)
		}
		return fillObject(sub, x)
	case []any:
		sub := ir.NewList()
		if err := e.SetTree(sub); err != nil {
			return convertErr(err)
		}
		for _, it := range x {
			le := ir.NewEntry()
			if err := setFromAny(le, it); err != nil {
				return err
			}
			if err := sub.Append(le); err != nil {
				return convertErr(err)
			}
		}
		return nil
	case string:
		return convertErr(e.SetString(x))
	case bool:
		if err := e.SetType(boolTag); err != nil {
			return convertErr(err)
		}
		return convertErr(e.SetString(strconv.FormatBool(x)))
	case int, int64, uint64, float64:
		if err := e.SetType(numTag); err != nil {
			return convertErr(err)
		}
		return convertErr(e.SetString(fmt.Sprint(x)))
	default:
		return convertErr(e.SetString(fmt.Sprint(x)))
	}
}
