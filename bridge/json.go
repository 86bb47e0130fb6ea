package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/JohnAD/slone/ir"
)

var ErrConvert = errors.New("conversion error")

// Type tags whose values cross the bridge as bare JSON/YAML scalars.
const (
	numTag  = "num"
	boolTag = "bool"
)

func convertErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrConvert, err)
}

// ToJSON renders t as a compact JSON document, entries in document
// order. Values tagged "num" or "bool" are emitted bare and must hold
// a well-formed literal.
func ToJSON(t *ir.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTree(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTree(buf *bytes.Buffer, t *ir.Tree) error {
	if t.Kind() == ir.ListKind {
		buf.WriteByte('[')
		for i, e := range t.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	buf.WriteByte('{')
	for i, e := range t.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := e.Name()
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := writeValue(buf, e); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, e *ir.Entry) error {
	switch e.ValueKind() {
	case ir.NullValue:
		buf.WriteString("null")
		return nil
	case ir.TreeValue:
		return writeTree(buf, e.Tree())
	}
	v := e.StringValue()
	if tag, ok := e.Type(); ok {
		switch tag {
		case numTag:
			var f float64
			if json.Unmarshal([]byte(v), &f) != nil {
				return fmt.Errorf("%w: %q is not a number", ErrConvert, v)
			}
			buf.WriteString(v)
			return nil
		case boolTag:
			if v != "true" && v != "false" {
				return fmt.Errorf("%w: %q is not a bool", ErrConvert, v)
			}
			buf.WriteString(v)
			return nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// FromJSON builds a tree from a JSON object, preserving key order and
// tagging numbers and bools so ToJSON round-trips them.
func FromJSON(d []byte) (*ir.Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, convertErr(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrConvert)
	}
	root := ir.NewTree()
	if err := readObject(dec, root); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level object", ErrConvert)
	}
	return root, nil
}

func readObject(dec *json.Decoder, t *ir.Tree) error {
	for dec.More() {
		ktok, err := dec.Token()
		if err != nil {
			return convertErr(err)
		}
		e := ir.NewEntry()
		if err := e.SetName(ktok.(string)); err != nil {
			return convertErr(err)
		}
		if err := readValue(dec, e); err != nil {
			return err
		}
		if err := t.Append(e); err != nil {
			return convertErr(err)
		}
	}
	_, err := dec.Token()
	return convertErr(err)
}

func readArray(dec *json.Decoder, t *ir.Tree) error {
	for dec.More() {
		e := ir.NewEntry()
		if err := readValue(dec, e); err != nil {
			return err
		}
		if err := t.Append(e); err != nil {
			return convertErr(err)
		}
	}
	_, err := dec.Token()
	return convertErr(err)
}

func readValue(dec *json.Decoder, e *ir.Entry) error {
	tok, err := dec.Token()
	if err != nil {
		return convertErr(err)
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			sub := ir.NewTree()
			if err := e.SetTree(sub); err != nil {
				return convertErr(err)
			}
			return readObject(dec, sub)
		case '[':
			sub := ir.NewList()
			if err := e.SetTree(sub); err != nil {
				return convertErr(err)
			}
			return readArray(dec, sub)
		}
		return fmt.Errorf("%w: unexpected %q", ErrConvert, v.String())
	case string:
		return convertErr(e.SetString(v))
	case json.Number:
		if err := e.SetType(numTag); err != nil {
			return convertErr(err)
		}
		return convertErr(e.SetString(v.String()))
	case bool:
		if err := e.SetType(boolTag); err != nil {
			return convertErr(err)
		}
		return convertErr(e.SetString(strconv.FormatBool(v)))
	default:
		e.SetNull()
		return nil
	}
}
