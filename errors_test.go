package bconf

import (
	"errors"
	"testing"
)

func TestParseErrorSentinels(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{name: "unresolved variable", src: "k = $missing", want: ErrUnresolvedVariable},
		{name: "duplicate key", src: "k = 1\nk = 2", want: ErrDuplicateKey},
		{name: "invalid number", src: "k = 1__000", want: ErrInvalidNumber},
		{name: "unexpected token", src: "k = 1 }", want: ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.want == ErrDuplicateKey {
				opts = append(opts, WithDuplicateKeyPolicy(DuplicateDisallow))
			}

			_, err := Parse(tt.src, opts...)
			if err == nil {
				t.Fatalf("Parse(%q): expected an error", tt.src)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q): errors.Is(err, %v) = false, want true (err: %v)", tt.src, tt.want, err)
			}
		})
	}
}

func TestParseErrorSentinelFromResolver(t *testing.T) {
	_, err := Parse("v = ref(undefined)")
	if err == nil {
		t.Fatal("expected an error")
	}

	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("errors.Is(err, ErrUnknownKey) = false, want true (err: %v)", err)
	}
}
