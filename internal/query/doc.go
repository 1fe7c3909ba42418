// Package query compiles find options into the boolean query document that
// the search engine executes.
//
// The compiler is the enforcement point for namespace isolation: every
// compiled document carries a type clause that restricts each requested type
// to the namespaces it may be read from. Compilation is a pure function of
// the options and a read-only type registry; it starts no goroutines and
// keeps no state between calls.
package query
