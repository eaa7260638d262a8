// Command bconf is a small command-line front end for the bconf
// configuration language: it evaluates a document, watches one for
// changes, or drops into an interactive REPL.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := Run(ctx, os.Exit, os.Args[1:]...); err != nil {
		os.Exit(1)
	}
}
