package bconf

import "strconv"

// parseKeyPath parses a KeyPath per §4.3: a leading variable, alphanumeric,
// or quoted-string part, followed by any number of ".name" or "[index]"
// continuations.
func (p *Parser) parseKeyPath() (KeyPath, error) {
	first, err := p.parseKeyPart(true)
	if err != nil {
		return nil, err
	}

	parts := []KeyPart{first}

	for {
		switch p.cur.Kind {
		case Dot:
			p.advance()

			part, err := p.parseKeyPart(false)
			if err != nil {
				return nil, err
			}

			parts = append(parts, part)

		case IndexLBracket:
			p.advance()

			idx, err := p.parseIndexLiteral()
			if err != nil {
				return nil, err
			}

			parts = append(parts, KeyPart{Kind: KeyIndex, Index: idx})

		default:
			return KeyPath(parts), nil
		}
	}
}

// parseKeyPart parses a single key segment. first controls whether a
// Variable token is accepted (only legal as the leading part).
func (p *Parser) parseKeyPart(first bool) (KeyPart, error) {
	switch p.cur.Kind {
	case Identifier:
		name := p.cur.Literal
		p.advance()

		return KeyPart{Kind: KeyAlphanumeric, Name: name}, nil

	case Boolean, Null:
		// "true"/"false"/"null" are promoted to their own token kinds by the
		// lexer even in key position; as a key they are plain alphanumeric
		// names.
		name := p.cur.Literal
		p.advance()

		return KeyPart{Kind: KeyAlphanumeric, Name: name}, nil

	case Variable:
		if !first {
			return KeyPart{}, errToken(p.cur, "variable key part only allowed at the start of a key path")
		}

		name := p.cur.Literal
		p.advance()

		return KeyPart{Kind: KeyVariable, Name: name}, nil

	case DoubleQuote, TripleQuote:
		s, err := p.parseQuotedKeyString()
		if err != nil {
			return KeyPart{}, err
		}

		return KeyPart{Kind: KeyString, Name: s}, nil

	default:
		return KeyPart{}, errToken(p.cur, "expected a key, found %s", p.cur)
	}
}

// parseQuotedKeyString parses a string literal used as a key part. Embedded
// expressions are evaluated and spliced in like anywhere else a string
// appears; the result is always a plain string.
func (p *Parser) parseQuotedKeyString() (string, error) {
	pos := p.cur.Position()

	v, err := p.parseStringValue()
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", errAt(pos, "key string did not resolve to text")
	}

	return s, nil
}

// parseIndexLiteral parses the digits of an index bracket ("[" already
// consumed) and expects the closing "]".
func (p *Parser) parseIndexLiteral() (int, error) {
	if p.cur.Kind != Identifier || !isAllDigits(p.cur.Literal) {
		return 0, errToken(p.cur, "expected a non-negative integer index")
	}

	n, err := strconv.Atoi(p.cur.Literal)
	if err != nil {
		return 0, errToken(p.cur, "invalid index %q", p.cur.Literal)
	}

	p.advance()

	if p.cur.Kind != RBracket {
		return 0, errToken(p.cur, "expected ']'")
	}

	p.advance()

	return n, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
