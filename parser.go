package bconf

import "context"

// blockKind distinguishes the root document block (stop token EOF, bare
// commas forbidden) from an object body block (stop token RBrace, commas
// permitted as separators), per §4.1's block loop.
type blockKind int

const (
	blockRoot blockKind = iota
	blockObject
)

// Parser is a one-token (plus one token of lookahead) recursive-descent
// parser driven by a Lexer, threading a Scope chain and the active config
// through mutually recursive key/value/string/tag/statement parsing.
type Parser struct {
	ctx context.Context
	cfg *config
	lex *Lexer

	cur  Token
	peek Token

	scope  *Scope
	result *Object
	// exported collects the variables exported via the export statement at
	// any scope depth reachable from the root document, keyed by name.
	exported *Object

	file string
}

// newParser creates a Parser bound to cfg but not yet positioned over any
// source; call init before use.
func newParser(ctx context.Context, cfg *config, file string) *Parser {
	return &Parser{ctx: ctx, cfg: cfg, file: file}
}

func (p *Parser) init(lex *Lexer) {
	p.lex = lex
	p.scope = newScope(nil)

	for name, v := range p.cfg.variables {
		p.scope.Declare(name, v)
	}

	p.result = NewObject()
	p.exported = NewObject()

	p.cur = p.readSignificant()
	p.peek = p.readSignificant()
}

// readSignificant pulls the next token from the lexer, filtering out
// Whitespace and Comment (never meaningful to the parser).
func (p *Parser) readSignificant() Token {
	for {
		t := p.lex.Next()
		if t.Kind == Whitespace || t.Kind == Comment {
			continue
		}

		return t
	}
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.readSignificant()
}

func (p *Parser) skipNewlines() {
	for p.cur.Kind == Newline {
		p.advance()
	}
}

// parseDocument runs the block loop over the root document.
func (p *Parser) parseDocument() error {
	p.cfg.logger.TraceContext(p.ctx, "parse.document.start", slogFile(p.file))

	if err := p.parseBlockInto(p.result, blockRoot); err != nil {
		return err
	}

	if p.cur.Kind != EOF {
		return errToken(p.cur, "unexpected trailing token %s", p.cur)
	}

	p.cfg.logger.TraceContext(p.ctx, "parse.document.end", slogFile(p.file))

	return nil
}

// parseBlockInto runs the §4.1 block loop, writing assignments into
// container.
func (p *Parser) parseBlockInto(container *Object, kind blockKind) error {
	for {
		p.skipNewlines()

		if kind == blockObject && p.cur.Kind == RBrace {
			return nil
		}

		if p.cur.Kind == EOF {
			if kind == blockObject {
				return errToken(p.cur, "expected '}'")
			}

			return nil
		}

		if p.cur.Kind == Comma {
			if kind == blockRoot {
				return errToken(p.cur, "unexpected ','")
			}

			p.advance()

			continue
		}

		keyPos := p.cur.Position()

		kp, err := p.parseKeyPath()
		if err != nil {
			return err
		}

		if err := p.applyOperator(container, kp, keyPos, kind); err != nil {
			return err
		}

		if p.cur.Kind == Comma {
			p.advance()
		}
	}
}

// stopKindFor returns the token kind that ends kind's block, used by
// applyOperator to recognize the true-shorthand case.
func stopKindFor(kind blockKind) Kind {
	if kind == blockObject {
		return RBrace
	}

	return EOF
}

// applyOperator classifies and executes the operator following a KeyPath,
// per §4.2.
func (p *Parser) applyOperator(container *Object, kp KeyPath, keyPos Position, kind blockKind) error {
	stop := stopKindFor(kind)

	switch {
	case p.cur.Kind == Assign:
		p.advance()

		v, err := p.parseValue(valueOpts{identMode: IdentifierDisallow})
		if err != nil {
			return err
		}

		return p.storeAssign(container, kp, keyPos, v)

	case p.cur.Kind == Append:
		p.advance()

		v, err := p.parseValue(valueOpts{identMode: IdentifierDisallow})
		if err != nil {
			return err
		}

		return p.storeAppend(container, kp, v)

	case p.cur.Kind == LBrace:
		v, err := p.parseValue(valueOpts{identMode: IdentifierDisallow})
		if err != nil {
			return err
		}

		return p.storeAssign(container, kp, keyPos, v)

	case p.cur.Kind == Newline, p.cur.Kind == EOF, p.cur.Kind == Comma, p.cur.Kind == stop:
		return p.storeAssign(container, kp, keyPos, true)

	default:
		return p.parseStatementLine(container, kp, keyPos, stop)
	}
}

// storeAssign routes a plain assignment to either the variable scope (when
// kp is variable-headed) or the result tree, per §4.3's two addressing
// modes.
func (p *Parser) storeAssign(container *Object, kp KeyPath, keyPos Position, v Value) error {
	if kp.IsVariable() {
		if err := p.assignVariablePath(kp, v); err != nil {
			return wrapAt(keyPos, err)
		}

		return nil
	}

	if err := assignPath(Value(container), kp, v, p.cfg.dup); err != nil {
		return wrapAt(keyPos, err)
	}

	return nil
}

func (p *Parser) storeAppend(container *Object, kp KeyPath, v Value) error {
	if kp.IsVariable() {
		return p.appendVariablePath(kp, v)
	}

	return appendPath(Value(container), kp, v)
}

// assignVariablePath writes through a $-headed KeyPath into the active
// scope, materializing nested object/array structure within the variable's
// own bound value when the path has more than one part.
func (p *Parser) assignVariablePath(kp KeyPath, v Value) error {
	name := kp[0].Name

	if len(kp) == 1 {
		p.scope.Declare(name, v)

		return nil
	}

	inner := kp[1:]
	existing, _ := p.scope.Lookup(name)
	root := ensureContainerKind(existing, containerKindFor(inner[0]))

	if err := assignPath(root, inner, v, p.cfg.dup); err != nil {
		return err
	}

	p.scope.Declare(name, root)

	return nil
}

func (p *Parser) appendVariablePath(kp KeyPath, v Value) error {
	name := kp[0].Name

	if len(kp) == 1 {
		existing, _ := p.scope.Lookup(name)

		arr, ok := existing.(*Array)
		if !ok {
			arr = NewArray()
		}

		arr.Append(v)
		p.scope.Declare(name, arr)

		return nil
	}

	inner := kp[1:]
	existing, _ := p.scope.Lookup(name)
	root := ensureContainerKind(existing, containerKindFor(inner[0]))

	if err := appendPath(root, inner, v); err != nil {
		return err
	}

	p.scope.Declare(name, root)

	return nil
}
