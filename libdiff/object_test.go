package libdiff

import (
	"strings"
	"testing"

	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/parse"
)

func mustParse(t *testing.T, body string) *ir.Tree {
	t.Helper()
	tr, err := parse.Parse([]byte("#! SLONE 1.0\n" + body))
	if err != nil {
		t.Fatalf("parse %q: %s", body, err)
	}
	return tr
}

func TestDiffEqual(t *testing.T) {
	body := `"a" = "1"` + "\n" + `"b" = "2"` + "\n"
	if cs := Diff(mustParse(t, body), mustParse(t, body)); len(cs) != 0 {
		t.Errorf("equal trees: got %d changes", len(cs))
	}
}

func TestDiffAddRemove(t *testing.T) {
	from := mustParse(t, `"a" = "1"`+"\n"+`"b" = "2"`+"\n")
	to := mustParse(t, `"a" = "1"`+"\n"+`"c" = "3"`+"\n")
	cs := Diff(from, to)
	if len(cs) != 2 {
		t.Fatalf("got %d changes, want 2", len(cs))
	}
	var removed, added *Change
	for i := range cs {
		switch cs[i].Kind {
		case Removed:
			removed = &cs[i]
		case Added:
			added = &cs[i]
		}
	}
	if removed == nil || removed.Path != "$.b" || removed.To != "" {
		t.Errorf("removed = %+v", removed)
	}
	if !strings.Contains(removed.From, `"b" = "2"`) {
		t.Errorf("removed.From = %q", removed.From)
	}
	if added == nil || added.Path != "$.c" || added.From != "" {
		t.Errorf("added = %+v", added)
	}
}

func TestDiffModified(t *testing.T) {
	from := mustParse(t, `"a" = "1"`+"\n")
	to := mustParse(t, `"a" = "one"`+"\n")
	cs := Diff(from, to)
	if len(cs) != 1 {
		t.Fatalf("got %d changes, want 1", len(cs))
	}
	c := cs[0]
	if c.Kind != Modified || c.Path != "$.a" {
		t.Errorf("change = %+v", c)
	}
	if !strings.Contains(c.From, `"1"`) || !strings.Contains(c.To, `"one"`) {
		t.Errorf("From/To = %q / %q", c.From, c.To)
	}
}

func TestDiffUnnamedEntryPaths(t *testing.T) {
	from := mustParse(t, `_ = "a1"`+"\n"+`_ = "a2"`+"\n")
	to := mustParse(t, `_ = "a1"`+"\n"+`_ = "b2"`+"\n")
	cs := Diff(from, to)
	if len(cs) != 1 {
		t.Fatalf("got %d changes, want 1", len(cs))
	}
	if cs[0].Kind != Modified || cs[0].Path != "$._#1" {
		t.Errorf("change = %+v", cs[0])
	}
}

func TestDiffTypeTagChange(t *testing.T) {
	from := mustParse(t, `"a" = "33"`+"\n")
	to := mustParse(t, `"a" = "num" "33"`+"\n")
	cs := Diff(from, to)
	if len(cs) != 1 || cs[0].Kind != Modified {
		t.Fatalf("changes = %+v", cs)
	}
}

func TestDiffNested(t *testing.T) {
	from := mustParse(t, `"pet" = {`+"\n"+`  "name" = "Mia"`+"\n"+"}\n")
	to := mustParse(t, `"pet" = {`+"\n"+`  "name" = "Rex"`+"\n"+"}\n")
	cs := Diff(from, to)
	if len(cs) != 1 {
		t.Fatalf("got %d changes, want 1", len(cs))
	}
	if cs[0].Path != "$.pet.name" || cs[0].Kind != Modified {
		t.Errorf("change = %+v", cs[0])
	}
}

func TestDiffKindChange(t *testing.T) {
	from := mustParse(t, `"x" = {`+"\n"+"}\n")
	to := mustParse(t, `"x" = {{`+"\n"+"}}\n")
	cs := Diff(from, to)
	if len(cs) != 1 || cs[0].Kind != Modified || cs[0].Path != "$.x" {
		t.Errorf("changes = %+v", cs)
	}
}

func TestDiffList(t *testing.T) {
	from := mustParse(t, `"l" = {{`+"\n"+`  "a"`+"\n"+`  "b"`+"\n"+`  "c"`+"\n"+"}}\n")
	to := mustParse(t, `"l" = {{`+"\n"+`  "a"`+"\n"+`  "c"`+"\n"+`  "d"`+"\n"+"}}\n")
	cs := Diff(from, to)
	if len(cs) != 2 {
		t.Fatalf("got %d changes, want 2: %+v", len(cs), cs)
	}
	// "b" drops out, "d" comes in; "a" and "c" match by value
	kinds := map[ChangeKind]string{}
	for _, c := range cs {
		kinds[c.Kind] = c.Path
	}
	if kinds[Removed] != "$.l[1]" {
		t.Errorf("removed at %q, want $.l[1]", kinds[Removed])
	}
	if kinds[Added] != "$.l[2]" {
		t.Errorf("added at %q, want $.l[2]", kinds[Added])
	}
}

func TestDiffDuplicateNames(t *testing.T) {
	from := mustParse(t, `"x" = "1"`+"\n"+`"x" = "2"`+"\n")
	to := mustParse(t, `"x" = "1"`+"\n"+`"x" = "two"`+"\n")
	cs := Diff(from, to)
	if len(cs) != 1 {
		t.Fatalf("got %d changes, want 1: %+v", len(cs), cs)
	}
	if cs[0].Path != "$.x#1" {
		t.Errorf("path = %q, want $.x#1", cs[0].Path)
	}
}

func TestChangeKindString(t *testing.T) {
	if Added.String() != "added" || Removed.String() != "removed" || Modified.String() != "modified" {
		t.Error("ChangeKind string forms wrong")
	}
}

func TestText(t *testing.T) {
	from := "a\nb\nc\n"
	to := "a\nx\nc\n"
	got := Text(from, to)
	want := "  a\n- b\n+ x\n  c\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if Text("same\n", "same\n") != "  same\n" {
		t.Error("unchanged text should render with context prefixes")
	}
}
