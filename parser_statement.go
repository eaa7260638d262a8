package bconf

// parseStatementLine handles the "statement" branch of operator
// classification (§4.6): the key drives a resolver lookup by its first
// named part, the resolver (if any) pulls statement-mode values via
// ctx.Next, and any values it left unconsumed are parsed as "remaining
// values" before the action is applied.
func (p *Parser) parseStatementLine(container *Object, kp KeyPath, keyPos Position, stop Kind) error {
	if kp[0].Kind == KeyString {
		return errAt(keyPos, "a quoted key cannot introduce a statement")
	}

	name := kp[0].Name

	ctx := &ResolverContext{
		p:         p,
		scopeKind: p.scopeKindString(),
		mode:      IdentifierAsLiteral,
		boundary: func(k Kind) bool {
			return k == Newline || k == EOF || k == Comma || k == stop
		},
	}

	resolver, ok := p.cfg.stmtResolvers[name]

	if !ok {
		remaining, err := p.drainStatementValues(ctx)
		if err != nil {
			return err
		}

		return p.collectStatement(container, kp, keyPos, remaining)
	}

	action, err := resolver(ctx)
	if err != nil {
		return wrapAt(keyPos, err)
	}

	remaining, err := p.drainStatementValues(ctx)
	if err != nil {
		return err
	}

	return p.applyStatementAction(container, kp, keyPos, action, remaining)
}

func (p *Parser) drainStatementValues(ctx *ResolverContext) ([]Value, error) {
	var values []Value

	for {
		v, present, err := ctx.Next()
		if err != nil {
			return nil, err
		}

		if !present {
			return values, nil
		}

		values = append(values, v)
	}
}

func (p *Parser) applyStatementAction(container *Object, kp KeyPath, keyPos Position, action StatementAction, remaining []Value) error {
	switch action.Kind {
	case StatementDiscard:
		return nil

	case StatementMerge:
		obj, ok := action.Value.(*Object)
		if !ok {
			return errAt(keyPos, "merge requires an object value")
		}

		deepMerge(container, obj)

		return nil

	case StatementCollect:
		line := remaining

		if action.Value != nil {
			explicit, ok := action.Value.([]Value)
			if !ok {
				return errAt(keyPos, "collect requires an array of values")
			}

			line = explicit
		}

		return p.collectStatement(container, kp, keyPos, line)

	default:
		return errAt(keyPos, "unknown statement action")
	}
}

// collectStatement appends line as one invocation-line to the *Statement
// kept at kp, creating it on first use, routing through variable scope
// when kp is variable-headed.
func (p *Parser) collectStatement(container *Object, kp KeyPath, keyPos Position, line []Value) error {
	if kp.IsVariable() {
		name := kp[0].Name

		if len(kp) == 1 {
			existing, _ := p.scope.Lookup(name)

			stmt, ok := existing.(*Statement)
			if !ok {
				stmt = &Statement{Name: kp}
			}

			stmt.Args = append(stmt.Args, line)
			p.scope.Declare(name, stmt)

			return nil
		}

		inner := kp[1:]
		existingRoot, _ := p.scope.Lookup(name)
		root := ensureContainerKind(existingRoot, containerKindFor(inner[0]))

		if err := collectStatementInto(root, inner, kp, line); err != nil {
			return wrapAt(keyPos, err)
		}

		p.scope.Declare(name, root)

		return nil
	}

	return collectStatementInto(Value(container), kp, kp, line)
}

// collectStatementInto walks path within root (reusing the same
// parent-materialization rules as an assignment) and appends line to the
// *Statement found (or created, recorded under stmtName) at the terminal
// slot.
func collectStatementInto(root Value, path KeyPath, stmtName KeyPath, line []Value) error {
	var (
		parent Value
		last   KeyPart
	)

	if len(path) == 1 {
		parent, last = root, path[0]
	} else {
		parent, last = walkToParent(root, path)
	}

	if last.Kind == KeyIndex {
		arr := parent.(*Array)
		existing, _ := arr.Get(last.Index)

		stmt, ok := existing.(*Statement)
		if !ok {
			stmt = &Statement{Name: stmtName}
		}

		stmt.Args = append(stmt.Args, line)
		arr.Set(last.Index, stmt)

		return nil
	}

	obj := parent.(*Object)
	existing, _ := obj.Get(last.Name)

	stmt, ok := existing.(*Statement)
	if !ok {
		stmt = &Statement{Name: stmtName}
	}

	stmt.Args = append(stmt.Args, line)
	obj.Set(last.Name, stmt)

	return nil
}
