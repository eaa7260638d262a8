package bconf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// valueOpts threads the identifiersAsValue mode (§4.4) through the
// mutually-recursive value parser so tag arguments, statement arguments,
// and ordinary value positions each classify a bare identifier correctly.
type valueOpts struct {
	identMode IdentifierMode
}

// parseValue parses one value per §4.4's dispatch table.
func (p *Parser) parseValue(opts valueOpts) (Value, error) {
	switch p.cur.Kind {
	case Identifier:
		return p.parseIdentifierValue(opts)

	case Null:
		p.advance()

		return nil, nil

	case Boolean:
		v := p.cur.Literal == "true"
		p.advance()

		return v, nil

	case LBrace:
		return p.parseObjectBody()

	case LBracket:
		return p.parseArrayBody()

	case DoubleQuote, TripleQuote:
		return p.parseStringValue()

	case Variable:
		return p.parseVariableValue()

	default:
		return nil, errToken(p.cur, "unexpected token %s, expected a value", p.cur)
	}
}

// parseIdentifierValue handles the IDENTIFIER branch of §4.4: a tag call if
// immediately followed by '(', a number if it looks like one, otherwise
// dispatched per opts.identMode.
func (p *Parser) parseIdentifierValue(opts valueOpts) (Value, error) {
	lit := p.cur.Literal

	if p.peek.Kind == LParen {
		return p.parseTag()
	}

	if looksLikeNumber(lit) {
		return p.parseNumber()
	}

	switch opts.identMode {
	case IdentifierAsKeyPath:
		return p.parseKeyPath()

	case IdentifierAsLiteral:
		v := lit
		p.advance()

		if p.cur.Kind == Dot || p.cur.Kind == IndexLBracket {
			return nil, errToken(p.cur, "dotted or indexed continuation not allowed here")
		}

		return v, nil

	default:
		return nil, errToken(p.cur, "identifier %q not allowed as a value here", lit)
	}
}

// looksLikeNumber reports whether an identifier literal is a number
// candidate per §4.4: its first character is a digit, or a '+'/'-' sign
// followed by a digit.
func looksLikeNumber(lit string) bool {
	if lit == "" {
		return false
	}

	if lit[0] >= '0' && lit[0] <= '9' {
		return true
	}

	if (lit[0] == '+' || lit[0] == '-') && len(lit) > 1 && lit[1] >= '0' && lit[1] <= '9' {
		return true
	}

	return false
}

// parseNumber consumes the current identifier (and, if followed by a DOT
// and another identifier, a fractional part) and parses it as an integer
// or float per §4.4/§8.
func (p *Parser) parseNumber() (Value, error) {
	pos := p.cur.Position()
	lit := p.cur.Literal
	p.advance()

	isFloat := false

	if p.cur.Kind == Dot && p.peek.Kind == Identifier {
		p.advance() // consume '.'
		lit += "." + p.cur.Literal
		p.advance()
		isFloat = true
	}

	v, err := numericFromText(lit, isFloat)
	if err != nil {
		return nil, wrapAt(pos, err)
	}

	return v, nil
}

// numericFromText parses lit (digits, optional underscores, optional '.'
// fraction and 'e'/'E' exponent, optional leading sign) into an int64 or
// float64, forcing float interpretation when forceFloat is set (the
// caller has already seen a '.'). Used by both ordinary number-literal
// parsing and the number()/int()/float() tag resolvers' string argument.
func numericFromText(lit string, forceFloat bool) (Value, error) {
	clean, err := stripNumberUnderscores(lit)
	if err != nil {
		return nil, err
	}

	isFloat := forceFloat || strings.ContainsAny(clean, "eE") || strings.Contains(clean, ".")

	if !isFloat {
		n, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return nil, errInvalidNumber(lit)
		}

		return n, nil
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, errInvalidNumber(lit)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("NaN and infinite values are not allowed")
	}

	return f, nil
}

// stripNumberUnderscores removes digit-group underscores, rejecting a
// leading, trailing, or doubled underscore.
func stripNumberUnderscores(lit string) (string, error) {
	if strings.HasPrefix(lit, "_") || strings.HasSuffix(lit, "_") || strings.Contains(lit, "__") {
		return "", fmt.Errorf("%w: %q has a misplaced underscore", ErrInvalidNumber, lit)
	}

	return strings.ReplaceAll(lit, "_", ""), nil
}

// parseArrayBody parses "[" ... "]": values separated by commas and/or
// newlines, empty allowed, trailing comma permitted (§4.4).
func (p *Parser) parseArrayBody() (Value, error) {
	p.advance() // consume '['

	arr := NewArray()

	for {
		p.skipNewlines()

		if p.cur.Kind == RBracket {
			p.advance()

			return arr, nil
		}

		v, err := p.parseValue(valueOpts{identMode: IdentifierDisallow})
		if err != nil {
			return nil, err
		}

		arr.Append(v)
		p.skipNewlines()

		if p.cur.Kind == Comma {
			p.advance()
		}
	}
}

// parseObjectBody parses "{" ... "}" as a nested block, pushing a child
// scope for the duration (§4.1, §5).
func (p *Parser) parseObjectBody() (Value, error) {
	p.advance() // consume '{'

	obj := NewObject()

	parentScope := p.scope
	p.scope = newScope(parentScope)

	err := p.parseBlockInto(obj, blockObject)

	p.scope = parentScope

	if err != nil {
		return nil, err
	}

	if p.cur.Kind != RBrace {
		return nil, errToken(p.cur, "expected '}'")
	}

	p.advance()

	return obj, nil
}

// parseVariableValue handles a bare VARIABLE token in value position:
// resolve it through the scope chain, error if unbound.
func (p *Parser) parseVariableValue() (Value, error) {
	name := p.cur.Literal
	pos := p.cur.Position()
	p.advance()

	v, ok := p.scope.Lookup(name)
	if !ok {
		return nil, errAtKind(ErrUnresolvedVariable, pos, "variable %s not in scope", name)
	}

	return v, nil
}
