// Package bconf implements the bconf configuration language: a lexer,
// recursive-descent parser, and resolver runtime that turn source text into
// a fully resolved tree of primitive values.
//
// The language supports hierarchical dotted/indexed key paths, typed
// scalars (integers, floats, strings with escapes and embedded
// expressions, booleans, null), objects and arrays, scoped variables with
// cross-file import/export, base-document composition via extends, and an
// extensible tag/statement system that turns bare function-call syntax
// into user-defined value transformations.
//
// # Quick start
//
//	result, err := bconf.Parse(`
//		$p = 8080
//		server {
//			host = "0.0.0.0"
//			port = $p
//		}
//	`)
//
// Parse returns the resolved document as Data and exported variables as
// Variables, both built from nil, bool, int64, float64, string, []any, and
// *Object unless WithUnwrap(false) is passed — Object keeps the
// source's key order, unlike a plain map.
//
// # Extending the language
//
// Tags (identifier(...) call syntax) and statements (bare key followed by a
// value-shaped token) are dispatched through a resolver table. Register
// custom resolvers with WithTagResolver and WithStatementResolver; see
// ResolverContext for the callback surface available to a resolver body.
package bconf
