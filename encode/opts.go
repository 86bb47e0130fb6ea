package encode

type EncodeOption func(*EncState)

// Depth sets the starting indentation depth, for rendering a subtree as
// it would appear nested inside a larger document.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// Fragment suppresses the header and schema lines, rendering entries
// only.
func Fragment(v bool) EncodeOption {
	return func(es *EncState) { es.fragment = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
