package bconf

import (
	"context"
	"fmt"
	"testing"
)

func TestTagRef(t *testing.T) {
	t.Run("resolves a sibling key by path", func(t *testing.T) {
		result, err := Parse("foo = 1\nbar = ref(foo)")
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		v, _ := result.Data.Get("bar")
		if v != int64(1) {
			t.Errorf("got %v, want int64(1)", v)
		}
	})

	t.Run("accepts a bare number as a root alphanumeric key", func(t *testing.T) {
		result, err := Parse("\"200\" = \"ok\"\nstatus = ref(200)")
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		v, _ := result.Data.Get("status")
		if v != "ok" {
			t.Errorf("got %v, want %q", v, "ok")
		}
	})

	t.Run("errors on an undefined key", func(t *testing.T) {
		_, err := Parse("val = ref(undefined)")
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestTagEnv(t *testing.T) {
	t.Run("reads from the supplied env map", func(t *testing.T) {
		result, err := Parse(`v = env("HOST")`, WithEnv(map[string]string{"HOST": "db.internal"}))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		v, _ := result.Data.Get("v")
		if v != "db.internal" {
			t.Errorf("got %v, want %q", v, "db.internal")
		}
	})

	t.Run("errors when unset", func(t *testing.T) {
		_, err := Parse(`v = env("NOT_SET_ANYWHERE")`, WithEnv(map[string]string{}))
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestTagNumberIntFloat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{name: "number() parses a numeric string", src: `v = number("3.5")`, want: 3.5},
		{name: "number() of a bool is 1 or 0", src: `v = number(true)`, want: int64(1)},
		{name: "number() of null is 0", src: `v = number(null)`, want: int64(0)},
		{name: "int() truncates toward zero", src: `v = int(3.9)`, want: int64(3)},
		{name: "float() promotes an integer", src: `v = float(3)`, want: 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.src, err)
			}

			v, _ := result.Data.Get("v")
			if v != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", v, v, tt.want, tt.want)
			}
		})
	}
}

func TestTagBool(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{name: "null is false", src: "v = bool(null)", want: false},
		{name: "nonzero number is true", src: "v = bool(1)", want: true},
		{name: "zero number is false", src: "v = bool(0)", want: false},
		{name: "empty string is false", src: `v = bool("")`, want: false},
		{name: "nonempty string is true", src: `v = bool("x")`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.src, err)
			}

			v, _ := result.Data.Get("v")
			if v != tt.want {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestTagStringCoercion(t *testing.T) {
	result, err := Parse("v = string(42)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v, _ := result.Data.Get("v")
	if v != "42" {
		t.Errorf("got %v, want %q", v, "42")
	}
}

func TestUnregisteredTagBuildsTagShape(t *testing.T) {
	result, err := ParseContext(context.Background(), `v = custom("arg")`, WithUnwrap(false))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v, _ := result.Data.Get("v")

	tag, ok := v.(*Tag)
	if !ok {
		t.Fatalf("got %T, want *Tag", v)
	}

	if tag.Name != "custom" || tag.Arg != "arg" {
		t.Errorf("got %+v, want Name=custom Arg=arg", tag)
	}
}

func TestStmtExtendsDeepMerges(t *testing.T) {
	loader := func(_ context.Context, rootDir, path string, args LoaderArgs) (string, error) {
		return "k = 1\nother = 3", nil
	}

	result, err := Parse("extends \"base\"\nk = 2", WithLoader(loader))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	k, _ := result.Data.Get("k")
	if k != int64(2) {
		t.Errorf("got k=%v, want int64(2) (later assignment wins)", k)
	}

	other, _ := result.Data.Get("other")
	if other != int64(3) {
		t.Errorf("got other=%v, want int64(3)", other)
	}
}

func TestStmtExtendsIsOrderPreserving(t *testing.T) {
	t.Run("prior content wins over a later extends", func(t *testing.T) {
		loader := func(_ context.Context, rootDir, path string, args LoaderArgs) (string, error) {
			return "k = 1", nil
		}

		result, err := Parse("k = 5\nextends \"base\"", WithLoader(loader))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		k, _ := result.Data.Get("k")
		if k != int64(5) {
			t.Errorf("got k=%v, want int64(5) (prior content must not be clobbered)", k)
		}
	})

	t.Run("each extends merges under the ones before it", func(t *testing.T) {
		loader := func(_ context.Context, rootDir, path string, args LoaderArgs) (string, error) {
			switch path {
			case "a":
				return "k = 1\nfromA = true", nil
			case "b":
				return "k = 2\nfromB = true", nil
			default:
				return "", fmt.Errorf("unknown path %q", path)
			}
		}

		result, err := Parse("extends \"a\"\nextends \"b\"", WithLoader(loader))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		k, _ := result.Data.Get("k")
		if k != int64(1) {
			t.Errorf("got k=%v, want int64(1) (first extends wins, second only fills gaps)", k)
		}

		fromA, _ := result.Data.Get("fromA")
		fromB, _ := result.Data.Get("fromB")
		if fromA != true || fromB != true {
			t.Errorf("got fromA=%v fromB=%v, want both true (gaps from each extends still fill in)", fromA, fromB)
		}
	})
}

func TestStmtImportBindsExportedVariables(t *testing.T) {
	loader := func(_ context.Context, rootDir, path string, args LoaderArgs) (string, error) {
		return "$shared = \"libvalue\"\n" + `export vars { $shared }`, nil
	}

	result, err := Parse(`import from "lib" { $shared as $local }`+"\n"+"v = $local", WithLoader(loader))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v, _ := result.Data.Get("v")
	if v != "libvalue" {
		t.Errorf("got %v, want %q", v, "libvalue")
	}
}

func TestStmtImportErrorsOnUndeclaredVariable(t *testing.T) {
	loader := func(_ context.Context, rootDir, path string, args LoaderArgs) (string, error) {
		return "k = 1", nil
	}

	_, err := Parse(`import from "lib" { $missing }`, WithLoader(loader))
	if err == nil {
		t.Fatal("expected an error: $missing is never exported")
	}
}

func TestStmtExportIgnoresNonVariableEntries(t *testing.T) {
	result, err := Parse("$a = 1\n" + `export vars { $a, port = 8080 }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v, ok := result.Variables.Get("$a")
	if !ok || v != int64(1) {
		t.Errorf("got %v, ok=%v, want int64(1), true", v, ok)
	}

	if result.Variables.Len() != 1 {
		t.Errorf("got %d exported variables, want 1 (the non-variable entry must be ignored)", result.Variables.Len())
	}
}

func TestStmtExportAliasWritesBothNames(t *testing.T) {
	result, err := Parse("$a = 1\n" + `export vars { $a as $b }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	a, aok := result.Variables.Get("$a")
	b, bok := result.Variables.Get("$b")

	if !aok || !bok || a != int64(1) || b != int64(1) {
		t.Errorf("got $a=%v(%v) $b=%v(%v), want both int64(1)", a, aok, b, bok)
	}
}
