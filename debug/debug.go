// Package debug gates diagnostic output on SLONE_DEBUG_* environment
// variables.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Tokens bool
	Parse  bool
	Diff   bool
	Patch  bool
	Query  bool
	LSP    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("SLONE_DEBUG_TOKENS")
	d.Parse = boolEnv("SLONE_DEBUG_PARSE")
	d.Diff = boolEnv("SLONE_DEBUG_DIFF")
	d.Patch = boolEnv("SLONE_DEBUG_PATCH")
	d.Query = boolEnv("SLONE_DEBUG_QUERY")
	d.LSP = boolEnv("SLONE_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Parse() bool {
	return d.Parse
}
func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Query() bool {
	return d.Query
}
func LSP() bool {
	return d.LSP
}
