package encode

import (
	"bytes"
	"io"
	"strings"

	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/token"
)

type EncState struct {
	depth, indent int
	fragment      bool

	Color func(ColorAttr, string) string
}

// Encode writes the canonical rendering of t to w. With no options the
// output is plain text suitable for byte comparison; colors and
// fragment mode are opt-in.
func Encode(t *ir.Tree, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.Color == nil {
		es.Color = func(_ ColorAttr, s string) string { return s }
	}
	if !es.fragment {
		if err := writeLn(w, es.Color(HeaderColor, token.Header)); err != nil {
			return err
		}
		if ref, ok := t.SchemaRef(); ok {
			if err := writeLn(w, es.Color(SchemaColor, token.SchemaMarker+" "+ref)); err != nil {
				return err
			}
		}
	}
	return encodeEntries(t, w, es)
}

// String renders t to a string. Writes to the in-memory buffer cannot
// fail, so no error is returned.
func String(t *ir.Tree, opts ...EncodeOption) string {
	var buf bytes.Buffer
	_ = Encode(t, &buf, opts...)
	return buf.String()
}

func writeLn(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

func (es *EncState) pad() string {
	return strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
}

func encodeEntries(t *ir.Tree, w io.Writer, es *EncState) error {
	for _, e := range t.Entries() {
		if err := encodeEntry(t.Kind(), e, w, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeEntry(kind ir.Kind, e *ir.Entry, w io.Writer, es *EncState) error {
	cur := es.pad()
	if kind == ir.ObjectKind {
		name, ok := e.Name()
		switch {
		case !ok:
			cur += es.Color(NothingColor, token.PunctNothing)
		case chooseForm(name) == straightForm:
			cur += es.Color(NameColor, quote(name))
		default:
			var err error
			cur, err = es.emitMulti(w, cur, name, NameColor)
			if err != nil {
				return err
			}
		}
		cur += " " + es.Color(SepColor, token.PunctAssign) + " "
	}
	if tag, ok := e.Type(); ok {
		cur += es.Color(TagColor, quote(tag)) + " "
	}
	switch e.ValueKind() {
	case ir.NullValue:
		return writeLn(w, cur+es.Color(NullColor, token.PunctNull))
	case ir.TreeValue:
		sub := e.Tree()
		op, cl := token.PunctObjectOpen, token.PunctObjectClose
		if sub.Kind() == ir.ListKind {
			op, cl = token.PunctListOpen, token.PunctListClose
		}
		if err := writeLn(w, cur+es.Color(SepColor, op)); err != nil {
			return err
		}
		es.depth++
		if err := encodeEntries(sub, w, es); err != nil {
			return err
		}
		es.depth--
		return writeLn(w, es.pad()+es.Color(SepColor, cl))
	default:
		v := e.StringValue()
		if chooseForm(v) == straightForm {
			return writeLn(w, cur+es.Color(ValueColor, quote(v)))
		}
		cur, err := es.emitMulti(w, cur, v, ValueColor)
		if err != nil {
			return err
		}
		return writeLn(w, cur)
	}
}

// emitMulti writes the passage or packed rendering of s: the opener at
// the end of cur, fragment lines one level deeper, then returns the
// unterminated closer line. The caller continues it with " = " when s
// was an entry name, or terminates it when s was the value.
func (es *EncState) emitMulti(w io.Writer, cur, s string, attr ColorAttr) (string, error) {
	op, cl := token.PunctPassageOpen, token.PunctPassageClose
	var segs []string
	if chooseForm(s) == passageForm {
		for _, ln := range passageSegments(s) {
			segs = append(segs, quote(ln))
		}
	} else {
		op, cl = token.PunctPackedOpen, token.PunctPackedClose
		for _, seg := range packedSegments(s) {
			segs = append(segs, quoteSeg(seg))
		}
	}
	if err := writeLn(w, cur+es.Color(SepColor, op)); err != nil {
		return "", err
	}
	es.depth++
	pad := es.pad()
	for _, seg := range segs {
		if err := writeLn(w, pad+es.Color(attr, seg)); err != nil {
			return "", err
		}
	}
	es.depth--
	return es.pad() + es.Color(SepColor, cl), nil
}
