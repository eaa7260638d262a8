package bconf

import (
	"context"
	"testing"
)

func mustParseDocument(t *testing.T, src string, opts ...Option) *Parser {
	t.Helper()

	cfg := defaultConfig()
	applyOptions(cfg, opts...)

	p := newParser(context.Background(), cfg, "")
	p.init(NewLexer(src))

	if err := p.parseDocument(); err != nil {
		t.Fatalf("parseDocument(%q): %v", src, err)
	}

	return p
}

func TestParseDocumentBareKeyShorthand(t *testing.T) {
	p := mustParseDocument(t, "debug")

	v, ok := p.result.Get("debug")
	if !ok {
		t.Fatal("expected key \"debug\" to be set")
	}

	if v != true {
		t.Errorf("got %v, want true", v)
	}
}

func TestParseDocumentAssignAndAppend(t *testing.T) {
	p := mustParseDocument(t, "k = 1\nk << 2")

	// Append onto an existing scalar replaces it with a fresh one-element
	// array, per appendTerminal's "not an *Array" fallback.
	v, ok := p.result.Get("k")
	if !ok {
		t.Fatal("expected key \"k\" to be set")
	}

	arr, ok := v.(*Array)
	if !ok {
		t.Fatalf("got %T, want *Array", v)
	}

	if arr.Len() != 1 {
		t.Fatalf("got length %d, want 1", arr.Len())
	}
}

func TestParseDocumentNestedBlockScope(t *testing.T) {
	p := mustParseDocument(t, "$p = 1\nserver {\nport = $p\n}\n")

	serverV, ok := p.result.Get("server")
	if !ok {
		t.Fatal("expected key \"server\" to be set")
	}

	server, ok := serverV.(*Object)
	if !ok {
		t.Fatalf("got %T, want *Object", serverV)
	}

	port, ok := server.Get("port")
	if !ok || port != int64(1) {
		t.Errorf("got %v, ok=%v, want int64(1), true", port, ok)
	}
}

func TestParseDocumentVariableOutOfScopeAfterBlockCloses(t *testing.T) {
	cfg := defaultConfig()
	p := newParser(context.Background(), cfg, "")
	p.init(NewLexer("obj {\n$x = 1\n}\nkey = $x"))

	if err := p.parseDocument(); err == nil {
		t.Fatal("expected an error referencing $x out of scope")
	}
}

func TestParseDocumentDuplicateKeyPolicies(t *testing.T) {
	t.Run("override replaces", func(t *testing.T) {
		p := mustParseDocument(t, "k = 1\nk = 2")

		v, _ := p.result.Get("k")
		if v != int64(2) {
			t.Errorf("got %v, want int64(2)", v)
		}
	})

	t.Run("collect wraps both values", func(t *testing.T) {
		p := mustParseDocument(t, "k = 1\nk = 2", WithDuplicateKeyPolicy(DuplicateCollect))

		v, _ := p.result.Get("k")

		coll, ok := v.(*Collection)
		if !ok {
			t.Fatalf("got %T, want *Collection", v)
		}

		if len(coll.Collected) != 2 || coll.Collected[0] != int64(1) || coll.Collected[1] != int64(2) {
			t.Errorf("got %v, want [1 2]", coll.Collected)
		}
	})

	t.Run("disallow errors", func(t *testing.T) {
		cfg := defaultConfig()
		applyOptions(cfg, WithDuplicateKeyPolicy(DuplicateDisallow))

		p := newParser(context.Background(), cfg, "")
		p.init(NewLexer("k = 1\nk = 2"))

		if err := p.parseDocument(); err == nil {
			t.Fatal("expected a duplicate-key error")
		}
	})
}

func TestParseDocumentIndexAssignPadsWithNull(t *testing.T) {
	p := mustParseDocument(t, `arr[2] = "x"`)

	v, _ := p.result.Get("arr")

	arr, ok := v.(*Array)
	if !ok {
		t.Fatalf("got %T, want *Array", v)
	}

	if arr.Len() != 3 {
		t.Fatalf("got length %d, want 3", arr.Len())
	}

	first, _ := arr.Get(0)
	if first != nil {
		t.Errorf("got %v, want nil padding at index 0", first)
	}
}

func TestParseDocumentUnresolvedStatementCollects(t *testing.T) {
	p := mustParseDocument(t, "allow from localhost\nallow from somewhere")

	v, ok := p.result.Get("allow")
	if !ok {
		t.Fatal("expected key \"allow\" to be set")
	}

	stmt, ok := v.(*Statement)
	if !ok {
		t.Fatalf("got %T, want *Statement", v)
	}

	if len(stmt.Args) != 2 {
		t.Fatalf("got %d invocation lines, want 2", len(stmt.Args))
	}

	if stmt.Args[0][0] != "from" || stmt.Args[0][1] != "localhost" {
		t.Errorf("got first invocation %v, want [from localhost]", stmt.Args[0])
	}
}

func TestParseDocumentUnexpectedTrailingToken(t *testing.T) {
	cfg := defaultConfig()
	p := newParser(context.Background(), cfg, "")
	p.init(NewLexer("k = 1 }"))

	if err := p.parseDocument(); err == nil {
		t.Fatal("expected an error for the trailing '}'")
	}
}

func TestLooksLikeNumber(t *testing.T) {
	tests := []struct {
		lit  string
		want bool
	}{
		{"1", true},
		{"-1", true},
		{"+1", true},
		{"1.5", true},
		{"-", false},
		{"+", false},
		{"foo", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := looksLikeNumber(tt.lit); got != tt.want {
			t.Errorf("looksLikeNumber(%q) = %v, want %v", tt.lit, got, tt.want)
		}
	}
}

func TestNumericFromText(t *testing.T) {
	tests := []struct {
		name       string
		lit        string
		forceFloat bool
		want       Value
		wantErr    bool
	}{
		{name: "plain integer", lit: "42", want: int64(42)},
		{name: "underscore grouping", lit: "1_000", want: int64(1000)},
		{name: "doubled underscore rejected", lit: "1__000", wantErr: true},
		{name: "leading underscore rejected", lit: "_1", wantErr: true},
		{name: "trailing underscore rejected", lit: "1_", wantErr: true},
		{name: "exponent forces float", lit: "1e3", want: 1000.0},
		{name: "decimal point forces float", lit: "1.5", want: 1.5},
		{name: "forceFloat on an integer literal", lit: "3", forceFloat: true, want: 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numericFromText(tt.lit, tt.forceFloat)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q", tt.lit)
				}

				return
			}

			if err != nil {
				t.Fatalf("numericFromText(%q): %v", tt.lit, err)
			}

			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestParseValueRejectsNaNAndInfinite(t *testing.T) {
	cfg := defaultConfig()
	p := newParser(context.Background(), cfg, "")
	p.init(NewLexer("k = 1e999999"))

	if err := p.parseDocument(); err == nil {
		t.Fatal("expected an error for an out-of-range exponent")
	}
}
