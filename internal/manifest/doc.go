// Package manifest accumulates the package.json fragment produced while
// composing configuration: devDependencies, dependencies and scripts. A
// Fragment is a value; every With* call returns a new one, so composition
// steps pass it along explicitly instead of sharing a mutable accumulator.
package manifest
