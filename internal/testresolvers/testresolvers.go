// Package testresolvers provides TagResolver and StatementResolver
// implementations that exercise every ResolverContext method, for use only
// from the parent module's tests.
package testresolvers

import (
	"fmt"

	"github.com/bconf-lang/go-bconf"
)

// Echo is a TagResolver that returns its single argument unchanged,
// exercising ResolverContext.Next and the tag fallback/registration path
// side by side.
func Echo(ctx *bconf.ResolverContext) (bconf.Value, error) {
	v, present, err := ctx.Next()
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, nil
	}

	return v, nil
}

// Uppercase is a TagResolver over a string argument, used to confirm a
// resolver's returned Value is spliced into an embedded expression the same
// way a built-in tag's is.
func Uppercase(ctx *bconf.ResolverContext) (bconf.Value, error) {
	v, present, err := ctx.Next()
	if err != nil {
		return nil, err
	}

	s, ok := v.(string)
	if !present || !ok {
		return nil, fmt.Errorf("upper requires a string argument")
	}

	out := make([]byte, len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}

		out[i] = c
	}

	return string(out), nil
}

// Lookup is a TagResolver exercising ResolverContext.Lookup against the
// already-materialized result tree.
func Lookup(ctx *bconf.ResolverContext) (bconf.Value, error) {
	v, present, err := ctx.Next()
	if err != nil {
		return nil, err
	}

	path, ok := v.(bconf.KeyPath)
	if !present || !ok {
		return nil, fmt.Errorf("lookup requires a key-path argument")
	}

	val, found := ctx.Lookup(path)
	if !found {
		return nil, fmt.Errorf("lookup: key %q not found", path.String())
	}

	return val, nil
}

// SetVar is a StatementResolver exercising VariablesSet: "setvar name
// value" declares $name in the current scope. The name argument is a bare
// (non-$) identifier, since a real $-sigil token is resolved to its bound
// value by the time a resolver sees it rather than left as a name to
// declare.
func SetVar(ctx *bconf.ResolverContext) (bconf.StatementAction, error) {
	nameVal, present, err := ctx.Next()
	if err != nil {
		return bconf.StatementAction{}, err
	}

	name, ok := nameVal.(string)
	if !present || !ok || name == "" {
		return bconf.StatementAction{}, fmt.Errorf("setvar requires a variable name")
	}

	value, present, err := ctx.Next()
	if err != nil {
		return bconf.StatementAction{}, err
	}

	if !present {
		return bconf.StatementAction{}, fmt.Errorf("setvar requires a value")
	}

	if !ctx.VariablesSet("$"+name, value, bconf.VariableSetArgs{Override: true}) {
		return bconf.StatementAction{}, fmt.Errorf("setvar: could not set $%s", name)
	}

	return bconf.DiscardStatement(), nil
}

// MergeObject is a StatementResolver exercising StatementMerge: "merge $obj"
// deep-merges its object argument into the surrounding document. A '{'
// directly after the key is read as object shorthand, not as a statement, so
// the object is passed through a variable.
func MergeObject(ctx *bconf.ResolverContext) (bconf.StatementAction, error) {
	v, present, err := ctx.Next()
	if err != nil {
		return bconf.StatementAction{}, err
	}

	obj, ok := v.(*bconf.Object)
	if !present || !ok {
		return bconf.StatementAction{}, fmt.Errorf("merge requires an object argument")
	}

	return bconf.MergeStatement(obj), nil
}
