package patch

import (
	"testing"

	"github.com/JohnAD/slone/parse"
)

const petDoc = "#! SLONE 1.0\n" +
	`"name" = "Jane"` + "\n" +
	`"age" = "num" "33"` + "\n" +
	`"pets" = {{` + "\n" +
	`  "cat"` + "\n" +
	"}}\n"

func TestApply(t *testing.T) {
	tr, err := parse.Parse([]byte(petDoc))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Apply(tr, []byte(`[
		{"op": "replace", "path": "/name", "value": "June"},
		{"op": "add", "path": "/pets/-", "value": "dog"},
		{"op": "remove", "path": "/age"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Get("name").StringValue(); got != "June" {
		t.Errorf("name = %q, want June", got)
	}
	if out.Get("age") != nil {
		t.Error("age should be removed")
	}
	pets := out.Get("pets").Tree()
	if pets.Len() != 2 || pets.At(1).StringValue() != "dog" {
		t.Errorf("pets not extended: %d entries", pets.Len())
	}
	// the input tree is untouched
	if got := tr.Get("name").StringValue(); got != "Jane" {
		t.Errorf("input mutated: name = %q", got)
	}
}

func TestApplyBadPatch(t *testing.T) {
	tr, err := parse.Parse([]byte(petDoc))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(tr, []byte(`{"not": "a patch"}`)); err == nil {
		t.Error("expected decode error")
	}
	if _, err := Apply(tr, []byte(`[{"op": "remove", "path": "/missing"}]`)); err == nil {
		t.Error("expected apply error")
	}
}

func TestMerge(t *testing.T) {
	tr, err := parse.Parse([]byte(petDoc))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Merge(tr, []byte(`{"name": null, "city": "Omaha", "age": 34}`))
	if err != nil {
		t.Fatal(err)
	}
	if out.Get("name") != nil {
		t.Error("merge null should delete the member")
	}
	if got := out.Get("city").StringValue(); got != "Omaha" {
		t.Errorf("city = %q, want Omaha", got)
	}
	age := out.Get("age")
	if tag, _ := age.Type(); tag != "num" || age.StringValue() != "34" {
		t.Errorf("age = (%q, %q), want (num, 34)", tag, age.StringValue())
	}
}
