package bconf

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// parseStringValue parses a complete double- or triple-quoted string,
// decoding escapes and splicing in embedded expressions, per §4.5. The
// opening quote must be the current token.
func (p *Parser) parseStringValue() (Value, error) {
	open := p.cur.Kind
	p.advance()

	var out []byte

	for {
		switch p.cur.Kind {
		case StringContent:
			out = append(out, p.cur.Literal...)
			p.advance()

		case EscapeSequence:
			decoded, err := decodeEscape(p.cur.Literal, p.cur.Position())
			if err != nil {
				return nil, err
			}

			out = append(out, decoded...)
			p.advance()

		case EmbeddedValueStart:
			p.advance()

			text, err := p.parseEmbeddedExpression()
			if err != nil {
				return nil, err
			}

			out = append(out, text...)

		case DoubleQuote, TripleQuote:
			if p.cur.Kind != open {
				return nil, errToken(p.cur, "mismatched string quote")
			}

			p.advance()

			return string(out), nil

		case Illegal:
			return nil, errToken(p.cur, "invalid string: %s", p.cur.Literal)

		case EOF:
			return nil, errTokenKind(ErrUnterminatedString, p.cur, "unterminated string")

		default:
			return nil, errToken(p.cur, "unexpected token %s inside string", p.cur)
		}
	}
}

// parseEmbeddedExpression parses the contents of a "${...}" inside a
// string, already past the EmbeddedValueStart token, and coerces the
// result to text per §4.5.
func (p *Parser) parseEmbeddedExpression() (string, error) {
	pos := p.cur.Position()

	var (
		v   Value
		err error
	)

	switch p.cur.Kind {
	case Identifier:
		v, err = p.parseIdentifierValue(valueOpts{identMode: IdentifierDisallow})
	case Null:
		p.advance()
	case Boolean:
		v = p.cur.Literal == "true"
		p.advance()
	case DoubleQuote, TripleQuote:
		v, err = p.parseStringValue()
	case Variable:
		v, err = p.parseVariableValue()
	default:
		return "", errToken(p.cur, "invalid embedded expression")
	}

	if err != nil {
		return "", err
	}

	text, err := coerceToText(v)
	if err != nil {
		return "", wrapAt(pos, err)
	}

	if p.cur.Kind != RBrace {
		return "", errToken(p.cur, "embedded expression must terminate with '}'")
	}

	p.advance()

	return text, nil
}

// coerceToText renders a primitive Value as embedded-expression text per
// §4.5: strings pass through, numbers format as integer or shortest-float,
// booleans as "true"/"false", null as "null". Anything else is an error.
func coerceToText(v Value) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case bool:
		if t {
			return "true", nil
		}

		return "false", nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case string:
		return t, nil
	default:
		return "", fmt.Errorf("embedded expression must yield a primitive value")
	}
}

// decodeEscape decodes one lexed EscapeSequence token's literal (including
// its leading backslash) into its replacement text.
func decodeEscape(lit string, pos Position) (string, error) {
	if len(lit) < 2 {
		return "", errAt(pos, "invalid escape sequence")
	}

	switch lit[1] {
	case '"':
		return `"`, nil
	case '\\':
		return `\`, nil
	case '$':
		return "$", nil
	case 'b':
		return "\b", nil
	case 'f':
		return "\f", nil
	case 'n':
		return "\n", nil
	case 'r':
		return "\r", nil
	case 't':
		return "\t", nil
	case 'u', 'U':
		return decodeUnicodeEscape(lit[2:], pos)
	default:
		return "", errAt(pos, "invalid escape sequence %q", lit)
	}
}

func decodeUnicodeEscape(hex string, pos Position) (string, error) {
	if len(hex) != 4 && len(hex) != 8 {
		return "", errAt(pos, "incomplete unicode escape")
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", errAt(pos, "invalid unicode escape %q", hex)
	}

	r := rune(n)
	if !utf8.ValidRune(r) {
		return "", errAt(pos, "escape denotes an invalid unicode code point")
	}

	return string(r), nil
}
