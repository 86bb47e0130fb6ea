package token

import (
	"errors"
	"testing"
)

type escTest struct {
	in, out string
}

func TestEscapeTable(t *testing.T) {
	tests := []escTest{
		{"", ""},
		{"plain", "plain"},
		{"tab\there", `tab\there`},
		{"line\nbreak", `line\nbreak`},
		{"vt\vff\f", `vt\vff\f`},
		{"cr\r", `cr\r`},
		{"\x1b[0m", `\e[0m`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"\x01", `\0x01`},
		{"\x1f", `\0x1f`},
		{"héllo ∞", "héllo ∞"},
	}
	for _, tst := range tests {
		got := Escape(tst.in)
		if got != tst.out {
			t.Errorf("Escape(%q) = %q, want %q", tst.in, got, tst.out)
		}
		back, err := Unescape(tst.out)
		if err != nil {
			t.Errorf("Unescape(%q): %v", tst.out, err)
			continue
		}
		if back != tst.in {
			t.Errorf("Unescape(%q) = %q, want %q", tst.out, back, tst.in)
		}
		if n := EscapedLen(tst.in); n != len([]rune(tst.out)) {
			t.Errorf("EscapedLen(%q) = %d, want %d", tst.in, n, len([]rune(tst.out)))
		}
	}
}

func TestEscapeControlSweep(t *testing.T) {
	for r := rune(1); r < 0x20; r++ {
		s := string(r)
		esc := Escape(s)
		if esc == s {
			t.Errorf("control %#x not escaped", r)
			continue
		}
		back, err := Unescape(esc)
		if err != nil {
			t.Errorf("control %#x: %v", r, err)
			continue
		}
		if back != s {
			t.Errorf("control %#x: round trip gave %q", r, back)
		}
	}
}

func TestUnescapeUnknown(t *testing.T) {
	tests := []escTest{
		{in: `\q`, out: `\q`},
		{in: `trailing\`, out: `trailing\`},
		{in: `\0x`, out: `\0x`},
		{in: `\0xzz`, out: `\0xzz`},
		{in: `\0x1F`, out: "\x1f"}, // upper hex accepted on decode
	}
	for _, tst := range tests {
		got, err := Unescape(tst.in)
		if err != nil {
			t.Errorf("Unescape(%q): %v", tst.in, err)
			continue
		}
		if got != tst.out {
			t.Errorf("Unescape(%q) = %q, want %q", tst.in, got, tst.out)
		}
	}
}

func TestUnescapeNUL(t *testing.T) {
	for _, in := range []string{"a\x00b", `\0x00`} {
		if _, err := Unescape(in); !errors.Is(err, ErrNUL) {
			t.Errorf("Unescape(%q) err = %v, want ErrNUL", in, err)
		}
	}
}
