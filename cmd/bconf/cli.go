package main

import (
	"context"

	"github.com/alecthomas/kong"
)

// CLI is the top-level command set for the bconf tool.
type CLI struct {
	Profile string `enum:",cpu,mem,heap,allocs,block,mutex,goroutine,trace" help:"Enable profiling and write output under the cache directory" placeholder:"MODE"`

	Eval  Eval  `cmd:"" default:"withargs" help:"Evaluate a document and print its resolved value tree"`
	Repl  Repl  `cmd:""                    help:"Start an interactive REPL over bconf fragments"`
	Watch Watch `cmd:""                    help:"Re-evaluate a document whenever it, or anything it extends/imports, changes"`
}

// Run parses args against the CLI and executes the selected command.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name(appName),
		kong.Description("Evaluate, watch, and explore bconf configuration documents."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Configuration(loadConfig, configPath("config.bconf")),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defer startProfile(cli.Profile)()

	return ktx.Run(ctx)
}
