package bconf

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bconf-lang/go-bconf/internal/blog"
)

// DuplicatePolicy controls what happens when a non-index key is assigned
// more than once within the same block (§4.2).
type DuplicatePolicy int

const (
	// DuplicateOverride lets the later assignment win. The default.
	DuplicateOverride DuplicatePolicy = iota
	// DuplicateCollect wraps the existing value (and every subsequent one)
	// in a *Collection.
	DuplicateCollect
	// DuplicateDisallow makes a repeated key a parse error.
	DuplicateDisallow
)

// IdentifierMode controls how a bare, non-numeric identifier is parsed as a
// value (§4.4), used to thread ResolverContext.NextArgs through tag and
// statement argument parsing.
type IdentifierMode int

const (
	// IdentifierAsKeyPath returns a KeyPath value; used for tag arguments.
	IdentifierAsKeyPath IdentifierMode = iota
	// IdentifierAsLiteral returns the identifier's literal text as a
	// string, rejecting dotted/indexed continuations; used for statement
	// arguments.
	IdentifierAsLiteral
	// IdentifierDisallow rejects a bare identifier outright.
	IdentifierDisallow
)

// LoaderArgs are the optional, resolver-supplied arguments to a Loader
// call (e.g. a cancellation/timeout budget); the default Loader ignores
// all of them.
type LoaderArgs map[string]Value

// Loader loads the text at path relative to rootDir. ctx is the context
// passed to ParseContext (or the caller's context, for a resolver's
// recursive ResolverContext.Parse), letting a custom Loader observe
// cancellation/deadlines for a blocking read (e.g. a network fetch); the
// default Loader checks ctx.Err() before reading from the local filesystem.
type Loader func(ctx context.Context, rootDir, path string, args LoaderArgs) (string, error)

// TagResolver computes the value of a tag invocation. ctx.Next pulls
// subsequent argument values using tag-mode parsing semantics
// (IdentifierAsKeyPath).
type TagResolver func(ctx *ResolverContext) (Value, error)

// StatementResolver computes the StatementAction for a statement line.
// ctx.Next pulls subsequent argument values using statement-mode parsing
// semantics (IdentifierAsLiteral).
type StatementResolver func(ctx *ResolverContext) (StatementAction, error)

// config is the fully-resolved, private option set built by applying
// Options over the defaults.
type config struct {
	tagResolvers  map[string]TagResolver
	stmtResolvers map[string]StatementResolver
	variables     map[string]Value
	env           map[string]string
	rootDir       string
	file          string
	loader        Loader
	unwrap        bool
	dup           DuplicatePolicy
	logger        blog.Logger
}

// Option configures a Parse call.
type Option func(*config)

// WithTagResolver registers (or overrides) the resolver for tag name.
func WithTagResolver(name string, r TagResolver) Option {
	return func(c *config) { c.tagResolvers[name] = r }
}

// WithStatementResolver registers (or overrides) the resolver for
// statement name.
func WithStatementResolver(name string, r StatementResolver) Option {
	return func(c *config) { c.stmtResolvers[name] = r }
}

// WithVariables seeds the root scope with pre-defined variables. Names
// must be $-prefixed to be usable from source.
func WithVariables(vars map[string]Value) Option {
	return func(c *config) {
		for k, v := range vars {
			c.variables[k] = v
		}
	}
}

// WithEnv overrides the environment map exposed to the env() tag and
// ResolverContext.Env. Defaults to the process environment.
func WithEnv(env map[string]string) Option {
	return func(c *config) { c.env = env }
}

// WithRootDir sets the base directory passed to the Loader. Defaults to
// the process working directory.
func WithRootDir(dir string) Option {
	return func(c *config) { c.rootDir = dir }
}

// WithFile sets the informational source URL/path passed through to
// resolvers via ResolverContext.File.
func WithFile(file string) Option {
	return func(c *config) { c.file = file }
}

// WithLoader overrides the default filesystem Loader.
func WithLoader(l Loader) Option {
	return func(c *config) { c.loader = l }
}

// WithUnwrap controls whether the result tree has internal types (Tag,
// Statement, KeyPath, Collection) replaced with external shapes. Defaults
// to true; resolvers that recurse via ResolverContext.Parse want false.
func WithUnwrap(unwrap bool) Option {
	return func(c *config) { c.unwrap = unwrap }
}

// WithDuplicateKeyPolicy sets the policy applied when a non-index key is
// assigned more than once in a block. Defaults to DuplicateOverride.
func WithDuplicateKeyPolicy(p DuplicatePolicy) Option {
	return func(c *config) { c.dup = p }
}

// WithLogger attaches a diagnostic logger. The parser never logs a failure
// it also returns; logging is purely a Trace-level breadcrumb trail.
func WithLogger(l blog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func defaultConfig() *config {
	c := &config{
		tagResolvers:  make(map[string]TagResolver),
		stmtResolvers: make(map[string]StatementResolver),
		variables:     make(map[string]Value),
		env:           processEnvMap(),
		rootDir:       defaultRootDir(),
		loader:        defaultLoader,
		unwrap:        true,
		dup:           DuplicateOverride,
		logger:        blog.Discard(),
	}

	registerBuiltinTags(c)
	registerBuiltinStatements(c)

	return c
}

// clone returns a shallow copy of c with its own resolver/variable maps, so
// a nested ResolverContext.Parse call can layer its own options without
// mutating the parent parse's config.
func (c *config) clone() *config {
	clone := &config{
		tagResolvers:  make(map[string]TagResolver, len(c.tagResolvers)),
		stmtResolvers: make(map[string]StatementResolver, len(c.stmtResolvers)),
		variables:     make(map[string]Value, len(c.variables)),
		env:           c.env,
		rootDir:       c.rootDir,
		file:          c.file,
		loader:        c.loader,
		unwrap:        c.unwrap,
		dup:           c.dup,
		logger:        c.logger,
	}

	for k, v := range c.tagResolvers {
		clone.tagResolvers[k] = v
	}

	for k, v := range c.stmtResolvers {
		clone.stmtResolvers[k] = v
	}

	for k, v := range c.variables {
		clone.variables[k] = v
	}

	return clone
}

func applyOptions(c *config, opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func processEnvMap() map[string]string {
	entries := os.Environ()
	m := make(map[string]string, len(entries))

	for _, e := range entries {
		k, v, ok := strings.Cut(e, "=")
		if ok {
			m[k] = v
		}
	}

	return m
}

func defaultRootDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "/"
	}

	return wd
}

func defaultLoader(ctx context.Context, rootDir, path string, _ LoaderArgs) (string, error) {
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

	return string(data), nil
}
