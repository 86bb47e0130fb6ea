package token

import "fmt"

// Pos is a zero-based line/column position in the source document.
// Columns count code points, not bytes.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("(line=%d, col=%d)", p.Line, p.Col)
}
