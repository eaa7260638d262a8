package bconf

import (
	"fmt"
	"strconv"
)

// registerBuiltinTags installs the seven built-in tags (§6) into c. User
// options applied afterward (WithTagResolver) may override any of them by
// name.
func registerBuiltinTags(c *config) {
	c.tagResolvers["ref"] = tagRef
	c.tagResolvers["env"] = tagEnv
	c.tagResolvers["string"] = tagString
	c.tagResolvers["number"] = tagNumber
	c.tagResolvers["int"] = tagInt
	c.tagResolvers["float"] = tagFloat
	c.tagResolvers["bool"] = tagBool
}

// registerBuiltinStatements installs the three built-in statements (§6).
func registerBuiltinStatements(c *config) {
	c.stmtResolvers["import"] = stmtImport
	c.stmtResolvers["export"] = stmtExport
	c.stmtResolvers["extends"] = stmtExtends
}

func nextRequired(ctx *ResolverContext, what string) (Value, error) {
	v, present, err := ctx.Next()
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, fmt.Errorf("%s requires an argument", what)
	}

	return v, nil
}

// tagRef implements `ref(path)`: one key-path, or a single number treated
// as a root-level string key.
func tagRef(ctx *ResolverContext) (Value, error) {
	v, err := nextRequired(ctx, "ref")
	if err != nil {
		return nil, err
	}

	var path KeyPath

	switch t := v.(type) {
	case KeyPath:
		path = t
	case int64:
		path = KeyPath{{Kind: KeyAlphanumeric, Name: strconv.FormatInt(t, 10)}}
	case float64:
		path = KeyPath{{Kind: KeyAlphanumeric, Name: strconv.FormatFloat(t, 'g', -1, 64)}}
	default:
		return nil, fmt.Errorf("ref requires a key-path or number argument")
	}

	val, ok := ctx.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: ref: key %q not found", ErrUnknownKey, path.String())
	}

	return val, nil
}

// tagEnv implements `env(name)`: one string, environment value, error if
// absent.
func tagEnv(ctx *ResolverContext) (Value, error) {
	v, err := nextRequired(ctx, "env")
	if err != nil {
		return nil, err
	}

	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("env requires a string argument")
	}

	val, ok := ctx.Env()[name]
	if !ok {
		return nil, fmt.Errorf("environment variable %q is not set", name)
	}

	return val, nil
}

// tagString implements `string(v)`: textual form of a primitive.
func tagString(ctx *ResolverContext) (Value, error) {
	v, err := nextRequired(ctx, "string")
	if err != nil {
		return nil, err
	}

	s, err := coerceToText(v)
	if err != nil {
		return nil, fmt.Errorf("string: %w", err)
	}

	return s, nil
}

// toNumber implements the `number(v)` conversion shared by number/int/
// float: true→1, false→0, null→0, numbers pass through, strings parsed
// with the full numeric grammar.
func toNumber(v Value) (Value, error) {
	switch t := v.(type) {
	case nil:
		return int64(0), nil
	case bool:
		if t {
			return int64(1), nil
		}

		return int64(0), nil
	case int64:
		return t, nil
	case float64:
		return t, nil
	case string:
		n, err := numericFromText(t, false)
		if err != nil {
			return nil, fmt.Errorf("number: %w", err)
		}

		return n, nil
	default:
		return nil, fmt.Errorf("number requires a primitive argument")
	}
}

func tagNumber(ctx *ResolverContext) (Value, error) {
	v, err := nextRequired(ctx, "number")
	if err != nil {
		return nil, err
	}

	return toNumber(v)
}

// tagInt implements `int(v)`: as number, then truncated toward zero.
func tagInt(ctx *ResolverContext) (Value, error) {
	v, err := nextRequired(ctx, "int")
	if err != nil {
		return nil, err
	}

	n, err := toNumber(v)
	if err != nil {
		return nil, err
	}

	switch t := n.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	default:
		return nil, fmt.Errorf("int: unreachable numeric conversion")
	}
}

// tagFloat implements `float(v)`: as number, always a float.
func tagFloat(ctx *ResolverContext) (Value, error) {
	v, err := nextRequired(ctx, "float")
	if err != nil {
		return nil, err
	}

	n, err := toNumber(v)
	if err != nil {
		return nil, err
	}

	switch t := n.(type) {
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	default:
		return nil, fmt.Errorf("float: unreachable numeric conversion")
	}
}

// tagBool implements `bool(v)`: identity for bool, null→false, number≠0→
// true, non-empty string→true.
func tagBool(ctx *ResolverContext) (Value, error) {
	v, err := nextRequired(ctx, "bool")
	if err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case int64:
		return t != 0, nil
	case float64:
		return t != 0, nil
	case string:
		return t != "", nil
	default:
		return nil, fmt.Errorf("bool requires a primitive argument")
	}
}

// importAlias is one entry of an import/export variable list:
// "$name [as $alias]".
type importAlias struct {
	name  string
	alias string
}

// parseVariableAliasList parses "{ $name [as $alias], ... }" directly
// against the token stream (rather than through ResolverContext.Next,
// which would read the brace as a generic object literal). The current
// token must be LBRACE.
func (p *Parser) parseVariableAliasList(tolerateNonVariable bool) ([]importAlias, error) {
	p.advance() // consume '{'

	var entries []importAlias

	for {
		p.skipNewlines()

		if p.cur.Kind == RBrace {
			p.advance()

			return entries, nil
		}

		if p.cur.Kind == Comma {
			p.advance()

			continue
		}

		if p.cur.Kind != Variable {
			if !tolerateNonVariable {
				return nil, errToken(p.cur, "expected a variable name")
			}

			if err := p.skipAliasListEntry(); err != nil {
				return nil, err
			}

			continue
		}

		name := p.cur.Literal
		p.advance()

		alias := ""

		if p.cur.Kind == Identifier && p.cur.Literal == "as" {
			p.advance()

			if p.cur.Kind != Variable {
				return nil, errToken(p.cur, "expected an alias variable after 'as'")
			}

			alias = p.cur.Literal
			p.advance()
		}

		entries = append(entries, importAlias{name: name, alias: alias})

		p.skipNewlines()

		if p.cur.Kind == Comma {
			p.advance()
		}
	}
}

// skipAliasListEntry discards one non-variable key/value entry inside an
// export list, per §6: "Non-variable keys in the block are ignored."
func (p *Parser) skipAliasListEntry() error {
	keyPos := p.cur.Position()

	kp, err := p.parseKeyPath()
	if err != nil {
		return err
	}

	return p.applyOperator(NewObject(), kp, keyPos, blockObject)
}

// stmtImport implements `import from "path" { $name [as $alias], ... }`.
func stmtImport(ctx *ResolverContext) (StatementAction, error) {
	kw, err := nextRequired(ctx, "import")
	if err != nil {
		return StatementAction{}, err
	}

	if s, ok := kw.(string); !ok || s != "from" {
		return StatementAction{}, fmt.Errorf("import requires the 'from' keyword")
	}

	pathVal, err := nextRequired(ctx, "import")
	if err != nil {
		return StatementAction{}, err
	}

	path, ok := pathVal.(string)
	if !ok || path == "" {
		return StatementAction{}, fmt.Errorf("import path must be a non-empty string")
	}

	p := ctx.p

	if p.cur.Kind != LBrace {
		return StatementAction{}, fmt.Errorf("import requires a { } variable list")
	}

	entries, err := p.parseVariableAliasList(false)
	if err != nil {
		return StatementAction{}, err
	}

	text, err := ctx.LoadFile(path, nil)
	if err != nil {
		return StatementAction{}, err
	}

	result, err := ctx.Parse(text)
	if err != nil {
		return StatementAction{}, err
	}

	for _, e := range entries {
		val, ok := result.Variables.Get(e.name)
		if !ok {
			return StatementAction{}, fmt.Errorf("%w: variable %s is not exported by %s", ErrUnresolvedVariable, e.name, path)
		}

		target := e.alias
		if target == "" {
			target = e.name
		}

		if p.scope.Has(target) {
			return StatementAction{}, fmt.Errorf("variable %s is already declared", target)
		}

		p.scope.Declare(target, val)
	}

	return DiscardStatement(), nil
}

// stmtExport implements `export vars { $name [as $alias], ... }`.
func stmtExport(ctx *ResolverContext) (StatementAction, error) {
	kw, err := nextRequired(ctx, "export")
	if err != nil {
		return StatementAction{}, err
	}

	if s, ok := kw.(string); !ok || s != "vars" {
		return StatementAction{}, fmt.Errorf("export requires the 'vars' keyword")
	}

	p := ctx.p

	if p.cur.Kind != LBrace {
		return StatementAction{}, fmt.Errorf("export vars requires a { } variable list")
	}

	entries, err := p.parseVariableAliasList(true)
	if err != nil {
		return StatementAction{}, err
	}

	for _, e := range entries {
		val, ok := p.scope.Lookup(e.name)
		if !ok {
			val = true
			p.scope.Declare(e.name, val)
		}

		p.exported.Set(e.name, val)

		if e.alias != "" {
			p.exported.Set(e.alias, val)
		}
	}

	return DiscardStatement(), nil
}

// stmtExtends implements `extends "path"`.
func stmtExtends(ctx *ResolverContext) (StatementAction, error) {
	v, err := nextRequired(ctx, "extends")
	if err != nil {
		return StatementAction{}, err
	}

	path, ok := v.(string)
	if !ok || path == "" {
		return StatementAction{}, fmt.Errorf("extends path must be a non-empty string")
	}

	text, err := ctx.LoadFile(path, nil)
	if err != nil {
		return StatementAction{}, err
	}

	result, err := ctx.Parse(text)
	if err != nil {
		return StatementAction{}, err
	}

	return MergeStatement(result.Data), nil
}
