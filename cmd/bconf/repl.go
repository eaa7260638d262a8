package main

import (
	"context"

	"github.com/bconf-lang/go-bconf/cmd/bconf/internal/repl"
)

// Repl starts an interactive session for trying out bconf fragments.
type Repl struct{}

// Run executes the repl command.
func (*Repl) Run(ctx context.Context) error {
	return repl.Run(ctx)
}
