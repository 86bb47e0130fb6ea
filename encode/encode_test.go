package encode

import (
	"strings"
	"testing"

	"github.com/JohnAD/slone/ir"
)

func TestChooseForm(t *testing.T) {
	tests := []struct {
		in   string
		want strForm
	}{
		{"", straightForm},
		{"hello", straightForm},
		{strings.Repeat("x", MaxSegment), straightForm},
		{strings.Repeat("x", MaxSegment+1), packedForm},
		// each tab escapes to two code points
		{strings.Repeat("\t", 64), straightForm},
		{strings.Repeat("\t", 65), packedForm},
		{"one\ntwo", passageForm},
		{"trailing\n", passageForm},
		// a non-newline control character disqualifies passage
		{"one\ntwo\tthree", straightForm},
		{"one\n" + strings.Repeat("x", MaxSegment+1), packedForm},
	}
	for _, tst := range tests {
		if got := chooseForm(tst.in); got != tst.want {
			t.Errorf("chooseForm(%q) = %d, want %d", tst.in, got, tst.want)
		}
	}
}

func TestPassageSegments(t *testing.T) {
	got := passageSegments("a\nb\n\nc")
	want := []string{"a", "b", "", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %d segments, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPackedSegments(t *testing.T) {
	s := strings.Repeat("a", MaxSegment+2)
	segs := packedSegments(s)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if len(segs[0]) != MaxSegment || segs[1] != "aa" {
		t.Errorf("segments %d/%q, want %d/aa", len(segs[0]), segs[1], MaxSegment)
	}

	// an escape never straddles a segment boundary
	s = strings.Repeat("a", MaxSegment-1) + "\tbb"
	segs = packedSegments(s)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0] != strings.Repeat("a", MaxSegment-1) {
		t.Errorf("first segment should stop before the escape")
	}
	if segs[1] != `\tbb` {
		t.Errorf("second segment = %q, want %q", segs[1], `\tbb`)
	}
}

func doc(t *testing.T) *ir.Tree {
	t.Helper()
	root := ir.NewTree()
	add := func(e *ir.Entry, err error) *ir.Entry {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		if err := root.Append(e); err != nil {
			t.Fatal(err)
		}
		return e
	}
	add(ir.StringEntry("name", "Jane"))
	age := add(ir.StringEntry("age", "33"))
	if err := age.SetType("num"); err != nil {
		t.Fatal(err)
	}
	nt := ir.NewEntry()
	nt.SetNull()
	if err := nt.SetName("note"); err != nil {
		t.Fatal(err)
	}
	add(nt, nil)
	anon := ir.NewEntry()
	if err := anon.SetString("anon"); err != nil {
		t.Fatal(err)
	}
	add(anon, nil)
	pets := add(ir.StringEntry("pets", ""))
	l := ir.NewList()
	if err := pets.SetTree(l); err != nil {
		t.Fatal(err)
	}
	cat := ir.NewEntry()
	if err := cat.SetString("cat"); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(cat); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestEncodeDocument(t *testing.T) {
	want := "#! SLONE 1.0\n" +
		`"name" = "Jane"` + "\n" +
		`"age" = "num" "33"` + "\n" +
		`"note" = ?` + "\n" +
		`_ = "anon"` + "\n" +
		`"pets" = {{` + "\n" +
		`  "cat"` + "\n" +
		"}}\n"
	if got := String(doc(t)); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeSchemaLine(t *testing.T) {
	root := ir.NewTree()
	root.SetSchemaRef("schemas/pet")
	want := "#! SLONE 1.0\n#% schemas/pet\n"
	if got := String(root); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeFragment(t *testing.T) {
	got := String(doc(t), Fragment(true))
	if strings.Contains(got, "#!") {
		t.Error("fragment output should not carry the header")
	}
	if !strings.HasPrefix(got, `"name" = "Jane"`+"\n") {
		t.Errorf("unexpected fragment start: %q", got)
	}
}

func TestEncodeDepth(t *testing.T) {
	root := ir.NewTree()
	e, err := ir.StringEntry("k", "v")
	if err != nil {
		t.Fatal(err)
	}
	if err := root.Append(e); err != nil {
		t.Fatal(err)
	}
	want := `    "k" = "v"` + "\n"
	if got := String(root, Fragment(true), Depth(2)); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodePassageValue(t *testing.T) {
	root := ir.NewTree()
	e, err := ir.StringEntry("poem", "line one\nline two")
	if err != nil {
		t.Fatal(err)
	}
	if err := root.Append(e); err != nil {
		t.Fatal(err)
	}
	want := `"poem" = <<` + "\n" +
		`  "line one"` + "\n" +
		`  "line two"` + "\n" +
		">>\n"
	if got := String(root, Fragment(true)); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodePackedValue(t *testing.T) {
	root := ir.NewTree()
	e, err := ir.StringEntry("blob", strings.Repeat("a", MaxSegment+2))
	if err != nil {
		t.Fatal(err)
	}
	if err := root.Append(e); err != nil {
		t.Fatal(err)
	}
	want := `"blob" = <<<` + "\n" +
		`  "` + strings.Repeat("a", MaxSegment) + `"` + "\n" +
		`  "aa"` + "\n" +
		">>>\n"
	if got := String(root, Fragment(true)); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeMultilineName(t *testing.T) {
	root := ir.NewTree()
	e, err := ir.StringEntry("x", "v")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetName("first\nsecond"); err != nil {
		t.Fatal(err)
	}
	if err := root.Append(e); err != nil {
		t.Fatal(err)
	}
	want := "<<\n" +
		`  "first"` + "\n" +
		`  "second"` + "\n" +
		`>> = "v"` + "\n"
	if got := String(root, Fragment(true)); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeEscapes(t *testing.T) {
	root := ir.NewTree()
	e, err := ir.StringEntry("k", "a\tb\"c\\d\x07")
	if err != nil {
		t.Fatal(err)
	}
	if err := root.Append(e); err != nil {
		t.Fatal(err)
	}
	want := `"k" = "a\tb\"c\\d\0x07"` + "\n"
	if got := String(root, Fragment(true)); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeColors(t *testing.T) {
	root := ir.NewTree()
	e, err := ir.StringEntry("k", "v")
	if err != nil {
		t.Fatal(err)
	}
	if err := root.Append(e); err != nil {
		t.Fatal(err)
	}
	marks := 0
	opt := func(es *EncState) {
		es.Color = func(_ ColorAttr, s string) string {
			marks++
			return "[" + s + "]"
		}
	}
	got := String(root, opt)
	want := "[#! SLONE 1.0]\n" + `["k"] [=] ["v"]` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if marks != 4 {
		t.Errorf("colorizer called %d times, want 4", marks)
	}
}
