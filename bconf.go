package bconf

import "context"

// Result is the return value of a successful Parse: the unwrapped root
// object and the unwrapped exported-variables object (§6).
type Result struct {
	Data      *Object
	Variables *Object
}

// Parse lexes, parses, and resolves input, returning the fully-resolved
// result tree. Options customize resolvers, variables, the environment,
// file loading, and duplicate-key handling; see the With* functions.
func Parse(input string, opts ...Option) (*Result, error) {
	return ParseContext(context.Background(), input, opts...)
}

// ParseContext is Parse with an explicit context, threaded through to the
// configured Loader for cancellation (§5); the parser itself has no
// intrinsic cancellation point.
func ParseContext(ctx context.Context, input string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	applyOptions(cfg, opts...)

	return parseWithConfig(ctx, cfg, input, cfg.file)
}

// parseWithConfig runs one full parse over input with an already-resolved
// config, used both by the public entry points and by
// ResolverContext.Parse's recursive calls.
func parseWithConfig(ctx context.Context, cfg *config, input string, file string) (*Result, error) {
	p := newParser(ctx, cfg, file)
	p.init(NewLexer(input))

	if err := p.parseDocument(); err != nil {
		return nil, err
	}

	var data, vars Value = Value(p.result), Value(p.exported)

	if cfg.unwrap {
		data = unwrap(data)
		vars = unwrap(vars)
	}

	dataObj, _ := data.(*Object)
	varsObj, _ := vars.(*Object)

	return &Result{Data: dataObj, Variables: varsObj}, nil
}
