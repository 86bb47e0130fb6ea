package ir

import "errors"

// ErrContract marks a violation of the tree construction contract:
// NUL in content, an illegal type tag, a nothing value, or an attempt
// to share or cycle a subtree. These are programming errors on the
// caller's side, caught at construction time so that encoding is total.
var ErrContract = errors.New("contract violation")
