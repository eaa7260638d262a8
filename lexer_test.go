package bconf

import "testing"

func allTokens(src string) []Token {
	l := NewLexer(src)

	var toks []Token
	for {
		t := l.Next()
		toks = append(toks, t)

		if t.Kind == EOF {
			return toks
		}
	}
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "assignment",
			input: "k = 1",
			want:  []Kind{Identifier, Whitespace, Assign, Whitespace, Identifier, EOF},
		},
		{
			name:  "append operator",
			input: "k << 1",
			want:  []Kind{Identifier, Whitespace, Append, Whitespace, Identifier, EOF},
		},
		{
			name:  "index bracket after identifier",
			input: "arr[0]",
			want:  []Kind{Identifier, IndexLBracket, Identifier, RBracket, EOF},
		},
		{
			name:  "bracket not preceded by identifier is a plain LBracket",
			input: "= [0]",
			want:  []Kind{Assign, Whitespace, LBracket, Identifier, RBracket, EOF},
		},
		{
			name:  "line comment with slashes",
			input: "k = 1 // trailing\n",
			want:  []Kind{Identifier, Whitespace, Assign, Whitespace, Identifier, Whitespace, Comment, Newline, EOF},
		},
		{
			name:  "line comment with hash",
			input: "# whole line",
			want:  []Kind{Comment, EOF},
		},
		{
			name:  "variable token retains dollar sign",
			input: "$port",
			want:  []Kind{Variable, EOF},
		},
		{
			name:  "tag call opens a tagged frame",
			input: `ref(foo)`,
			want:  []Kind{Identifier, LParen, Identifier, RParen, EOF},
		},
		{
			name:  "boolean and null keywords",
			input: "true false null",
			want:  []Kind{Boolean, Whitespace, Boolean, Whitespace, Null, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := allTokens(tt.input)

			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tt.want), toks)
			}

			for i, k := range tt.want {
				if toks[i].Kind != k {
					t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
				}
			}
		})
	}
}

func TestLexerStringContent(t *testing.T) {
	l := NewLexer(`"hello"`)

	open := l.Next()
	if open.Kind != DoubleQuote {
		t.Fatalf("expected opening quote, got %s", open.Kind)
	}

	content := l.Next()
	if content.Kind != StringContent || content.Literal != "hello" {
		t.Fatalf("expected StringContent(hello), got %s(%s)", content.Kind, content.Literal)
	}

	closeTok := l.Next()
	if closeTok.Kind != DoubleQuote {
		t.Fatalf("expected closing quote, got %s", closeTok.Kind)
	}
}

func TestLexerTripleQuoteToleratesLoneQuotes(t *testing.T) {
	l := NewLexer(`"""a "b"""`)

	open := l.Next()
	if open.Kind != TripleQuote {
		t.Fatalf("expected opening triple quote, got %s", open.Kind)
	}

	var content string
	for {
		tok := l.Next()
		if tok.Kind == TripleQuote {
			break
		}

		if tok.Kind != StringContent {
			t.Fatalf("unexpected token inside triple-quoted string: %s", tok.Kind)
		}

		content += tok.Literal
	}

	if content != `a "b` {
		t.Fatalf("got content %q, want %q", content, `a "b`)
	}
}

func TestLexerEmbeddedExpressionStart(t *testing.T) {
	toks := allTokens(`"${$v}"`)

	want := []Kind{DoubleQuote, EmbeddedValueStart, Variable, RBrace, DoubleQuote, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}

	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexerEscapeSequences(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
	}{
		{name: "named escape", input: `\n`, literal: `\n`},
		{name: "short unicode escape", input: "\\u0041", literal: "\\u0041"},
		{name: "long unicode escape", input: `\U0001F600`, literal: `\U0001F600`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Lexer{src: []rune(tt.input), row: 1, col: 1, stack: []frame{{kind: frameString, str: stringDouble}}}

			tok := l.Next()
			if tok.Kind != EscapeSequence {
				t.Fatalf("got kind %s, want EscapeSequence", tok.Kind)
			}

			if tok.Literal != tt.literal {
				t.Errorf("got literal %q, want %q", tok.Literal, tt.literal)
			}
		})
	}
}

func TestLexerIllegalNewlineInString(t *testing.T) {
	l := &Lexer{src: []rune("hello\nworld"), row: 1, col: 6, stack: []frame{{kind: frameString, str: stringDouble}}}

	content := l.Next()
	if content.Kind != StringContent || content.Literal != "hello" {
		t.Fatalf("expected StringContent(hello), got %s(%s)", content.Kind, content.Literal)
	}

	bad := l.Next()
	if bad.Kind != Illegal {
		t.Fatalf("expected Illegal, got %s", bad.Kind)
	}

	if bad.Row != 1 || bad.Column != 11 {
		t.Errorf("got position %d:%d, want 1:11", bad.Row, bad.Column)
	}
}

func TestLexerRowColumnTracking(t *testing.T) {
	toks := allTokens("a\nbb")

	var last Token
	for _, tok := range toks {
		if tok.Kind == Identifier && tok.Literal == "bb" {
			last = tok
		}
	}

	if last.Row != 2 || last.Column != 1 {
		t.Errorf("got position %d:%d for second line identifier, want 2:1", last.Row, last.Column)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := &Lexer{src: []rune(""), row: 3, col: 9, stack: []frame{{kind: frameString, str: stringDouble}}}

	tok := l.nextStringToken()
	if tok.Kind != Illegal {
		t.Fatalf("expected Illegal, got %s", tok.Kind)
	}

	if tok.Row != 3 || tok.Column != 9 {
		t.Errorf("got position %d:%d, want 3:9", tok.Row, tok.Column)
	}
}
