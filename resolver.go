package bconf

// StatementActionKind discriminates the variants a StatementResolver may
// return (§4.6).
type StatementActionKind int

const (
	// StatementDiscard drops the statement entirely; nothing is written.
	StatementDiscard StatementActionKind = iota
	// StatementMerge deep-merges Value (which must be an *Object) into the
	// current document or surrounding block root.
	StatementMerge
	// StatementCollect appends one invocation-line's arguments to a
	// *Statement record kept at the statement's key. If Value is nil, the
	// remaining parsed statement values are used as that line's arguments;
	// otherwise Value itself (expected to be an array) supplies them.
	StatementCollect
)

// StatementAction is the effect a StatementResolver requests for the
// current statement line.
type StatementAction struct {
	Kind  StatementActionKind
	Value Value
}

// DiscardStatement drops the current statement line.
func DiscardStatement() StatementAction {
	return StatementAction{Kind: StatementDiscard}
}

// MergeStatement deep-merges obj into the surrounding document/block root.
func MergeStatement(obj *Object) StatementAction {
	return StatementAction{Kind: StatementMerge, Value: obj}
}

// CollectStatement appends the remaining parsed statement values (or, if
// args is non-nil, args itself) as one invocation-line to the Statement
// record kept at the statement's key.
func CollectStatement(args ...Value) StatementAction {
	if args == nil {
		return StatementAction{Kind: StatementCollect}
	}

	return StatementAction{Kind: StatementCollect, Value: args}
}

// ResolverContext is handed to a TagResolver or StatementResolver,
// bridging it back into the live parse (§4.6).
type ResolverContext struct {
	p         *Parser
	scopeKind string
	mode      IdentifierMode
	boundary  func(Kind) bool
}

// Scope reports "root" when parsing at the top level or "object" when
// inside an object block.
func (ctx *ResolverContext) Scope() string {
	return ctx.scopeKind
}

// File returns the informational source URL/path of the document being
// parsed.
func (ctx *ResolverContext) File() string {
	return ctx.p.file
}

// Env returns the environment map in effect for this parse.
func (ctx *ResolverContext) Env() map[string]string {
	return ctx.p.cfg.env
}

// NextArgs reports the identifier mode currently used by Next.
func (ctx *ResolverContext) NextArgs() IdentifierMode {
	return ctx.mode
}

// Next pulls the next value using the context's mode, reporting success
// false at a newline/EOF/stop-token/comma (statement contexts) or RPAREN
// (tag contexts) without consuming it. An optional override changes the
// identifier mode for this call only.
func (ctx *ResolverContext) Next(modeOverride ...IdentifierMode) (Value, bool, error) {
	mode := ctx.mode
	if len(modeOverride) > 0 {
		mode = modeOverride[0]
	}

	if ctx.boundary(ctx.p.cur.Kind) {
		return nil, false, nil
	}

	v, err := ctx.p.parseValue(valueOpts{identMode: mode})
	if err != nil {
		return nil, false, err
	}

	return v, true, nil
}

// Lookup reads a value out of the already-materialized result tree,
// never from variable scope.
func (ctx *ResolverContext) Lookup(path KeyPath) (Value, bool) {
	return lookupPath(ctx.p.result, path)
}

// VariablesGet reads a $-prefixed variable by name through the active
// scope chain.
func (ctx *ResolverContext) VariablesGet(name string) (Value, bool) {
	return ctx.p.scope.Lookup(name)
}

// VariableSetArgs controls VariablesSet's behavior.
type VariableSetArgs struct {
	// Scope is "current" (default) or "root".
	Scope string
	// Override allows replacing an existing binding; defaults to false.
	Override bool
	// Export additionally writes the variable to the document's exported
	// set (read by an importing document's "import" statement).
	Export bool
	// ExportOnly writes only to the exported set, leaving scope untouched.
	ExportOnly bool
}

// VariablesSet declares or overrides a $-prefixed variable. name must
// start with '$' and contain neither '.' nor '[' nor ']'. Returns whether
// the write succeeded: it fails if the variable already exists in the
// target scope and args.Override is false.
func (ctx *ResolverContext) VariablesSet(name string, value Value, args VariableSetArgs) bool {
	if !isValidVariableName(name) {
		return false
	}

	target := ctx.p.scope
	if args.Scope == "root" {
		target = target.Root()
	}

	if !args.ExportOnly {
		if target.Has(name) && !args.Override {
			return false
		}

		target.Declare(name, value)
	}

	if args.Export || args.ExportOnly {
		ctx.p.exported.Set(name, value)
	}

	return true
}

func isValidVariableName(name string) bool {
	if len(name) < 2 || name[0] != '$' {
		return false
	}

	for _, r := range name[1:] {
		if r == '.' || r == '[' || r == ']' {
			return false
		}
	}

	return true
}

// LoadFile reads the document at path via the configured Loader, threading
// through the context the parse was started with so a custom Loader can
// observe cancellation/deadlines.
func (ctx *ResolverContext) LoadFile(path string, args LoaderArgs) (string, error) {
	return ctx.p.cfg.loader(ctx.p.ctx, ctx.p.cfg.rootDir, path, args)
}

// Parse recursively parses input as a nested document, reusing the
// caller's tag/statement resolvers, environment, and loader, with internal
// value types left unwrapped by default so the caller can inspect or merge
// them (§4.7: "important for the recursive parse entry point used by
// resolvers").
func (ctx *ResolverContext) Parse(input string, opts ...Option) (*Result, error) {
	cfg := ctx.p.cfg.clone()
	cfg.unwrap = false
	applyOptions(cfg, opts...)

	return parseWithConfig(ctx.p.ctx, cfg, input, ctx.p.file)
}

func (p *Parser) scopeKindString() string {
	if p.scope.parent == nil {
		return "root"
	}

	return "object"
}
