package bridge

import (
	"errors"
	"strings"
	"testing"

	"github.com/JohnAD/slone/ir"
)

const petYAML = `name: Jane
age: 33
tall: false
nickname: null
pets:
- cat
- dog
home:
  city: Omaha
`

func TestFromYAML(t *testing.T) {
	tr, err := FromYAML([]byte(petYAML))
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"name", "age", "tall", "nickname", "pets", "home"}
	for i, n := range wantNames {
		got, _ := tr.At(i).Name()
		if got != n {
			t.Errorf("entry %d: got %q, want %q", i, got, n)
		}
	}
	age := tr.Get("age")
	if tag, _ := age.Type(); tag != "num" || age.StringValue() != "33" {
		t.Errorf("age: got (%q, %q)", tag, age.StringValue())
	}
	tall := tr.Get("tall")
	if tag, _ := tall.Type(); tag != "bool" || tall.StringValue() != "false" {
		t.Errorf("tall: got (%q, %q)", tag, tall.StringValue())
	}
	if !tr.Get("nickname").IsNull() {
		t.Error("nickname should be null")
	}
	pets := tr.Get("pets").Tree()
	if pets == nil || pets.Kind() != ir.ListKind || pets.Len() != 2 {
		t.Fatal("pets should be a two-entry list")
	}
	if pets.At(0).StringValue() != "cat" {
		t.Errorf("pets[0] = %q", pets.At(0).StringValue())
	}
	home := tr.Get("home").Tree()
	if home == nil || home.Get("city").StringValue() != "Omaha" {
		t.Error("nested mapping lost")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	tr, err := FromYAML([]byte(petYAML))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToYAML(tr)
	if err != nil {
		t.Fatal(err)
	}
	tr2, err := FromYAML(out)
	if err != nil {
		t.Fatalf("re-reading %q: %s", out, err)
	}
	if !ir.Equal(tr, tr2) {
		t.Errorf("trees differ after a YAML cycle:\n%s", out)
	}
}

func TestToYAMLOrder(t *testing.T) {
	root := ir.NewTree()
	for _, n := range []string{"zebra", "apple", "mango"} {
		e, err := ir.StringEntry(n, "v")
		if err != nil {
			t.Fatal(err)
		}
		if err := root.Append(e); err != nil {
			t.Fatal(err)
		}
	}
	out, err := ToYAML(root)
	if err != nil {
		t.Fatal(err)
	}
	za := strings.Index(string(out), "zebra")
	ap := strings.Index(string(out), "apple")
	ma := strings.Index(string(out), "mango")
	if za < 0 || ap < 0 || ma < 0 || !(za < ap && ap < ma) {
		t.Errorf("order not preserved:\n%s", out)
	}
}

func TestFromYAMLErrs(t *testing.T) {
	if _, err := FromYAML([]byte("- a\n- b\n")); !errors.Is(err, ErrConvert) {
		t.Errorf("sequence top level: got %v, want ErrConvert", err)
	}
	if _, err := FromYAML([]byte("just a scalar\n")); !errors.Is(err, ErrConvert) {
		t.Errorf("scalar top level: got %v, want ErrConvert", err)
	}
}

func TestToYAMLBadNum(t *testing.T) {
	root := ir.NewTree()
	e, err := ir.StringEntry("k", "NaN-ish")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetType("num"); err != nil {
		t.Fatal(err)
	}
	if err := root.Append(e); err != nil {
		t.Fatal(err)
	}
	if _, err := ToYAML(root); !errors.Is(err, ErrConvert) {
		t.Errorf("got %v, want ErrConvert", err)
	}
}
