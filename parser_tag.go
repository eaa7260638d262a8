package bconf

// parseTag parses "IDENTIFIER LPAREN <value> RPAREN" (§4.6). The current
// token is the identifier; its next token is known to be LPAREN.
func (p *Parser) parseTag() (Value, error) {
	name := p.cur.Literal
	pos := p.cur.Position()
	p.advance() // consume identifier
	p.advance() // consume '('

	ctx := &ResolverContext{
		p:         p,
		scopeKind: p.scopeKindString(),
		mode:      IdentifierAsKeyPath,
		boundary:  func(k Kind) bool { return k == RParen || k == EOF },
	}

	resolver, ok := p.cfg.tagResolvers[name]

	var result Value

	if ok {
		v, err := resolver(ctx)
		if err != nil {
			return nil, wrapAt(pos, err)
		}

		result = v

		if err := p.drainTagArgs(ctx); err != nil {
			return nil, err
		}
	} else {
		v, present, err := ctx.Next()
		if err != nil {
			return nil, err
		}

		var arg Value
		if present {
			arg = v
		}

		result = &Tag{Name: name, Arg: arg}
	}

	if p.cur.Kind != RParen {
		return nil, errToken(p.cur, "expected ')'")
	}

	p.advance()

	return result, nil
}

// drainTagArgs discards any values left unconsumed by a registered tag
// resolver, per §4.6: "any unconsumed values are discarded".
func (p *Parser) drainTagArgs(ctx *ResolverContext) error {
	for {
		_, present, err := ctx.Next()
		if err != nil {
			return err
		}

		if !present {
			return nil
		}
	}
}
