package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bconf-lang/go-bconf"
)

// loadConfig is a kong.ConfigurationLoader that reads the tool's own flags
// from a bconf-formatted file, eating this package's own dog food (aenv's
// cli.Load does the same with the aenv language over its own config file).
//
// Example:
//
//	profile = "cpu"
//
// Flags with hyphens may also be written with underscores; command-line
// flags always win over the file.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return fileConfig{}, nil
	}

	result, err := bconf.Parse(string(text))
	if err != nil {
		// A config file that fails to parse is not fatal; Kong falls
		// back to flag defaults.
		return fileConfig{}, nil
	}

	flat := make(map[string]any)

	if result.Data != nil {
		for _, key := range result.Data.Keys() {
			val, _ := result.Data.Get(key)
			flat[key] = val
		}
	}

	return fileConfig(flat), nil
}

// fileConfig implements kong.Resolver over a flattened top-level bconf
// document.
type fileConfig map[string]any

// Validate implements kong.Resolver.
func (fileConfig) Validate(*kong.Application) error { return nil }

// Resolve implements kong.Resolver.
func (r fileConfig) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	name := flag.Name
	underscored := strings.ReplaceAll(name, "-", "_")

	if v, ok := r[name]; ok {
		return stringifyNumber(v), nil
	}

	if v, ok := r[underscored]; ok {
		return stringifyNumber(v), nil
	}

	return nil, nil
}

// stringifyNumber renders ints/floats as strings, the form Kong expects
// when resolving scalar flag values.
func stringifyNumber(v any) any {
	switch t := v.(type) {
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return v
	}
}
