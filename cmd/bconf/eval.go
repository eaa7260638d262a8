package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bconf-lang/go-bconf"
)

// Eval evaluates a document and prints its resolved data and exported
// variables as a read-only value tree.
type Eval struct {
	Source string `arg:"" default:"-" help:"Document to evaluate, or - for stdin" name:"source"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	text, rootDir, err := readSource(e.Source)
	if err != nil {
		return err
	}

	result, _, err := evaluate(ctx, text, rootDir)
	if err != nil {
		return err
	}

	fmt.Print(printTree("data", result.Data))

	if result.Variables != nil && result.Variables.Len() > 0 {
		fmt.Print(printTree("variables", result.Variables))
	}

	return nil
}

// readSource reads source (a file path, or "-" for stdin) and returns its
// text along with the directory imports/extends should resolve relative to.
func readSource(source string) (text, rootDir string, err error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}

		wd, _ := os.Getwd()

		return string(data), wd, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", "", err
	}

	return string(data), filepath.Dir(source), nil
}

// evaluate parses text, returning every file path loaded via extends/import
// so a caller such as watch can rebuild its watch list from the result.
func evaluate(ctx context.Context, text, rootDir string) (*bconf.Result, []string, error) {
	var touched []string

	result, err := bconf.ParseContext(ctx, text,
		bconf.WithRootDir(rootDir),
		bconf.WithLoader(trackingLoader(&touched)),
	)
	if err != nil {
		return nil, touched, err
	}

	return result, touched, nil
}

// trackingLoader reads files from the local filesystem the way the default
// loader does, recording every path it reads (path joined onto rootDir
// unless already absolute) so a caller can watch them for changes.
func trackingLoader(touched *[]string) bconf.Loader {
	return func(ctx context.Context, rootDir, path string, args bconf.LoaderArgs) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		full := path
		if !filepath.IsAbs(path) {
			full = filepath.Join(rootDir, path)
		}

		data, err := os.ReadFile(full)
		if err != nil {
			return "", err
		}

		*touched = append(*touched, full)

		return string(data), nil
	}
}
