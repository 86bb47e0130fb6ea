// Package libdiff computes differences between SLONE trees.
//
// Diff walks two trees and reports added, removed, and modified
// entries with path addresses. Text produces a line diff of two
// canonical renderings; because canonical output is stable, the line
// diff only ever shows real changes.
package libdiff
