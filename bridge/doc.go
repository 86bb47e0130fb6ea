// Package bridge converts trees to and from JSON and YAML.
//
// The conversions preserve entry order in both directions. They are
// lossy where the formats disagree: type tags other than "num" and
// "bool" do not survive a trip through JSON or YAML, and an entry with
// no name comes out under the empty key.
package bridge
