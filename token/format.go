package token

// Header is the exact first line of every SLONE document.
const Header = "#! SLONE 1.0"

// SchemaMarker prefixes the optional schema-reference line. The marker
// is followed by one space; everything after that is opaque to the
// codec.
const SchemaMarker = "#%"

// Punctuation identifiers. Multi-character identifiers are produced by
// the tokenizer accumulating a run of punctuation code points.
const (
	PunctAssign       = "="
	PunctNull         = "?"
	PunctNothing      = "_"
	PunctObjectOpen   = "{"
	PunctObjectClose  = "}"
	PunctListOpen     = "{{"
	PunctListClose    = "}}"
	PunctPassageOpen  = "<<"
	PunctPassageClose = ">>"
	PunctPackedOpen   = "<<<"
	PunctPackedClose  = ">>>"
)

// IsPunct reports whether r belongs to the SLONE punctuation set.
func IsPunct(r rune) bool {
	switch r {
	case '=', '?', '_', '{', '}', '<', '>':
		return true
	}
	return false
}
