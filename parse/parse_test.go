package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/token"
)

const hdr = "#! SLONE 1.0\n"

// round-trip documents: every input is canonical, so re-encoding the
// parsed tree must reproduce the input byte for byte.
func TestParseRoundTrip(t *testing.T) {
	docs := []string{
		hdr,
		hdr + `"name" = "Jane"` + "\n",
		hdr + `"k" = ""` + "\n",
		hdr + "\"r\" = \"a�b\"\n",
		hdr + "#% schemas/pet.slone\n" + `"a" = "b"` + "\n",
		hdr + `"gone" = ?` + "\n" + `_ = "anon"` + "\n",
		hdr + `"id" = "uuid" ?` + "\n",
		hdr + `"age" = "num" "33"` + "\n",
		hdr + `"x" = "1"` + "\n" + `"x" = "2"` + "\n" + `"x" = "3"` + "\n",
		hdr + `"empty" = {` + "\n" + "}\n",
		hdr + `"none" = {{` + "\n" + "}}\n",
		hdr + `"pet" = {` + "\n" +
			`  "name" = "Mia"` + "\n" +
			`  "age" = "num" "4"` + "\n" +
			"}\n",
		hdr + `"pets" = {{` + "\n" +
			`  "cat"` + "\n" +
			"  ?\n" +
			"  {{\n" +
			`    "nested"` + "\n" +
			"  }}\n" +
			"}}\n",
		hdr + `"poem" = <<` + "\n" +
			`  "line one"` + "\n" +
			`  "line two"` + "\n" +
			">>\n",
		hdr + "<<\n" +
			`  "first"` + "\n" +
			`  "second"` + "\n" +
			`>> = "v"` + "\n",
		hdr + `"blob" = <<<` + "\n" +
			`  "` + strings.Repeat("a", 128) + `"` + "\n" +
			`  "aa"` + "\n" +
			">>>\n",
	}
	for _, d := range docs {
		tr, err := Parse([]byte(d))
		if err != nil {
			t.Errorf("Parse(%q): %s", d, err)
			continue
		}
		if got := encode.String(tr); got != d {
			t.Errorf("round trip of %q:\ngot  %q", d, got)
		}
	}
}

func TestParseValues(t *testing.T) {
	tr, err := Parse([]byte(hdr +
		`"age" = "num" "33"` + "\n" +
		`"note" = ?` + "\n" +
		`"poem" = <<` + "\n" +
		`  "one"` + "\n" +
		`  "two"` + "\n" +
		">>\n" +
		`"blob" = <<<` + "\n" +
		`  "ab"` + "\n" +
		`  "cd"` + "\n" +
		">>>\n"))
	if err != nil {
		t.Fatal(err)
	}
	age := tr.Get("age")
	if tag, ok := age.Type(); !ok || tag != "num" {
		t.Errorf("age type = (%q, %v), want (num, true)", tag, ok)
	}
	if age.StringValue() != "33" {
		t.Errorf("age = %q, want 33", age.StringValue())
	}
	if !tr.Get("note").IsNull() {
		t.Error("note should be null")
	}
	if got := tr.Get("poem").StringValue(); got != "one\ntwo" {
		t.Errorf("poem = %q, want fragments joined by newline", got)
	}
	if got := tr.Get("blob").StringValue(); got != "abcd" {
		t.Errorf("blob = %q, want fragments concatenated", got)
	}
}

func TestParseSchemaRef(t *testing.T) {
	tr, err := Parse([]byte(hdr + "#% v1 schemas/pet\n"))
	if err != nil {
		t.Fatal(err)
	}
	if ref, ok := tr.SchemaRef(); !ok || ref != "v1 schemas/pet" {
		t.Errorf("schema ref = (%q, %v)", ref, ok)
	}
	tr, err = Parse([]byte(hdr))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.SchemaRef(); ok {
		t.Error("schema ref should be absent")
	}
}

func TestParseUnnamedName(t *testing.T) {
	tr, err := Parse([]byte(hdr + `_ = "anon"` + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	e := tr.At(0)
	if _, ok := e.Name(); ok {
		t.Error("entry should be unnamed")
	}
	if e.StringValue() != "anon" {
		t.Errorf("value = %q, want anon", e.StringValue())
	}
}

func TestParseEmptyContainerKinds(t *testing.T) {
	tr, err := Parse([]byte(hdr +
		`"o" = {` + "\n" + "}\n" +
		`"l" = {{` + "\n" + "}}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if k := tr.Get("o").Tree().Kind(); k != ir.ObjectKind {
		t.Errorf("o kind = %s, want object", k)
	}
	if k := tr.Get("l").Tree().Kind(); k != ir.ListKind {
		t.Errorf("l kind = %s, want list", k)
	}
}

type parseErrTest struct {
	in string
	e  error
}

func TestParseErrs(t *testing.T) {
	tests := []parseErrTest{
		{"", ErrHeader},
		{"#! SLONE 1.0", ErrHeader}, // no terminating newline
		{"#! SLONE 2.0\n", ErrHeader},
		{"plain text\n", ErrHeader},
		{hdr + "#%schemas/pet\n", ErrHeader},
		{hdr + "#% unterminated", ErrHeader},
		{hdr + `"k"` + "\n", ErrGrammar},
		{hdr + `"k" =` + "\n", ErrGrammar},
		{hdr + `"k" = _` + "\n", ErrGrammar},
		{hdr + `? = "v"` + "\n", ErrGrammar},
		{hdr + `_ "v"` + "\n", ErrGrammar},
		{hdr + `"k" = ? "extra"` + "\n", ErrGrammar},
		{hdr + `"k" = =` + "\n", ErrGrammar},
		{hdr + `"k" = "bad tag" "v"` + "\n", ErrGrammar},
		{hdr + ` "k" = "v"` + "\n", ErrGrammar},  // odd indent
		{hdr + `  "k" = "v"` + "\n", ErrGrammar}, // over-indented
		{hdr + "}\n", ErrGrammar},
		{hdr + `"a" = {` + "\n" + `  "b" = "c"` + "\n", ErrGrammar},
		{hdr + `"a" = { "b" = "c" }` + "\n", ErrGrammar}, // containers span lines
		{hdr + `"l" = {{` + "\n" + `  "x" = "y"` + "\n" + "}}\n", ErrGrammar},
		{hdr + `"p" = <<` + "\n" + `  "a" "b"` + "\n" + ">>\n", ErrGrammar},
		{hdr + `"p" = <<` + "\n" + "  ?\n" + ">>\n", ErrGrammar},
		// tokenizer faults surface as grammar errors
		{hdr + `"k" = "unterminated` + "\n", ErrGrammar},
		{hdr + `"k" = "a\0x00b"` + "\n", ErrGrammar},
		{hdr + "\"k\" = \"a\xffb\"\n", ErrGrammar},
		{hdr + "\n" + `"k" = "v"` + "\n", ErrGrammar},
		{hdr + `"k" =  "v"` + "\n", ErrGrammar},
		{hdr + `"k" = "v"`, ErrGrammar},
	}
	for _, tst := range tests {
		_, err := Parse([]byte(tst.in))
		if err == nil {
			t.Errorf("Parse(%q): expected error", tst.in)
			continue
		}
		if !errors.Is(err, tst.e) {
			t.Errorf("Parse(%q): got %v, want %v", tst.in, err, tst.e)
		}
		if !errors.Is(err, ErrGrammar) {
			t.Errorf("Parse(%q): %v does not wrap the grammar error root", tst.in, err)
		}
		var ge *GrammarError
		if !errors.As(err, &ge) {
			t.Errorf("Parse(%q): %v is not a GrammarError", tst.in, err)
		}
	}
}

func TestParseErrPos(t *testing.T) {
	_, err := Parse([]byte(hdr + `"k" = =` + "\n"))
	var ge *GrammarError
	if !errors.As(err, &ge) {
		t.Fatalf("got %v, want GrammarError", err)
	}
	want := token.Pos{Line: 1, Col: 6}
	if ge.Pos != want {
		t.Errorf("pos = %s, want %s", ge.Pos, want)
	}
	if ge.Tok != "=" {
		t.Errorf("tok = %q, want =", ge.Tok)
	}
}

func TestParseDepthLimit(t *testing.T) {
	doc := hdr + `"a" = {` + "\n" + `  "b" = {` + "\n" + "  }\n" + "}\n"
	if _, err := Parse([]byte(doc)); err != nil {
		t.Fatalf("within default depth: %s", err)
	}
	_, err := Parse([]byte(doc), MaxDepth(2))
	if !errors.Is(err, ErrDepth) {
		t.Errorf("got %v, want ErrDepth", err)
	}
	if !errors.Is(err, ErrGrammar) {
		t.Errorf("%v does not wrap the grammar error root", err)
	}
}

func TestParseDeepList(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(hdr)
	const n = 10
	for i := 0; i < n; i++ {
		sb.WriteString(strings.Repeat("  ", i))
		if i == 0 {
			sb.WriteString(`"deep" = {{` + "\n")
		} else {
			sb.WriteString("{{\n")
		}
	}
	for i := n - 1; i >= 0; i-- {
		sb.WriteString(strings.Repeat("  ", i))
		sb.WriteString("}}\n")
	}
	d := sb.String()
	tr, err := Parse([]byte(d))
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.String(tr); got != d {
		t.Errorf("deep list round trip:\ngot %q", got)
	}
}
