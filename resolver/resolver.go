// Package resolver loads the documents named by @import statements and merges their entities,
// optionally under an alias prefix, into a single graph.
package resolver

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
	"github.com/viant/typedmind/internal/logger"
	"github.com/viant/typedmind/parser"
)

// Result holds the imported entities and the problems found while resolving them
type Result struct {
	Graph  *graph.Graph
	Errors []*diagnostic.Diagnostic
}

// Resolver resolves imports recursively. Parsed documents are cached by location for the lifetime
// of the resolver, and each document's parse errors are reported once however many imports reach it.
// A resolver is not safe for concurrent use.
type Resolver struct {
	fs            afs.Service
	parserOptions []parser.Option
	cache         map[string]*parser.Result
	reported      map[string]bool
	stack         []string
}

// New creates a resolver
func New(options ...Option) *Resolver {
	result := &Resolver{cache: map[string]*parser.Result{}, reported: map[string]bool{}}
	for _, option := range options {
		option(result)
	}
	if result.fs == nil {
		result.fs = afs.New()
	}
	return result
}

// Load reads and parses the document at URL, caching the parse result
func (r *Resolver) Load(ctx context.Context, URL string) (*parser.Result, error) {
	location := url.Normalize(URL, file.Scheme)
	if cached, ok := r.cache[location]; ok {
		logger.Debug("import cache hit", logger.Fields{"url": location})
		return cached, nil
	}
	logger.Debug("reading document", logger.Fields{"url": location})
	content, err := r.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", location, err)
	}
	options := append([]parser.Option{parser.WithSource(location)}, r.parserOptions...)
	result, err := parser.Parse(string(content), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", location, err)
	}
	r.cache[location] = result
	return result, nil
}

// ResolveDocument loads the document at URL and resolves its imports relative to its directory.
// The document itself is kept on the resolution stack, so imports leading back to it are reported as circular.
func (r *Resolver) ResolveDocument(ctx context.Context, URL string) (*parser.Result, *Result, error) {
	location := url.Normalize(URL, file.Scheme)
	document, err := r.Load(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	r.stack = append(r.stack, location)
	defer r.pop()
	parent, _ := url.Split(location, file.Scheme)
	return document, r.Resolve(ctx, document.Imports, parent), nil
}

// Resolve resolves imports against baseURL. Failures never abort resolution: an unreadable or
// circular import contributes an error entry and no entities.
func (r *Resolver) Resolve(ctx context.Context, imports []*graph.Import, baseURL string) *Result {
	result := &Result{Graph: graph.NewGraph()}
	baseURL = url.Normalize(baseURL, file.Scheme)
	for _, imp := range imports {
		location := joinLocation(baseURL, imp.Path)
		if r.onStack(location) {
			cycle := append(append([]string{}, r.stack[r.indexOf(location):]...), location)
			result.Errors = append(result.Errors, diagnostic.Errorf(diagnostic.CodeImport, imp.Position,
				"circular import detected: %s", strings.Join(cycle, " -> ")))
			continue
		}
		imported, errs := r.resolveImport(ctx, imp, location)
		result.Errors = append(result.Errors, errs...)
		if imported == nil {
			continue
		}
		r.merge(result, imported, imp)
	}
	return result
}

func (r *Resolver) resolveImport(ctx context.Context, imp *graph.Import, location string) (*graph.Graph, []*diagnostic.Diagnostic) {
	logger.Debug("resolving import", logger.Fields{"url": location, "alias": imp.Alias})
	document, err := r.Load(ctx, location)
	if err != nil {
		d := diagnostic.Errorf(diagnostic.CodeImport, imp.Position, "cannot resolve import '%s': %v", imp.Path, err)
		return nil, []*diagnostic.Diagnostic{d}
	}
	var errs []*diagnostic.Diagnostic
	if !r.reported[location] {
		r.reported[location] = true
		errs = append(errs, document.ParseErrors...)
	}

	r.stack = append(r.stack, location)
	parent, _ := url.Split(location, file.Scheme)
	nested := r.Resolve(ctx, document.Imports, parent)
	r.pop()
	errs = append(errs, nested.Errors...)

	local := graph.NewGraph()
	for _, entity := range document.Graph.Entities() {
		local.Add(graph.Clone(entity))
	}
	for _, name := range graph.Merge(local, nested.Graph) {
		errs = append(errs, diagnostic.Errorf(diagnostic.CodeNamingConflict, imp.Position,
			"'%s' is declared in '%s' and in one of its imports", name, location))
	}
	if imp.Alias != "" {
		local = graph.Prefixed(local, imp.Alias)
	}
	return local, errs
}

// merge adds imported entities to result; an entity reached through two import paths is merged once
func (r *Resolver) merge(result *Result, imported *graph.Graph, imp *graph.Import) {
	for _, entity := range imported.Entities() {
		name := entity.Meta().Name
		existing := result.Graph.Lookup(name)
		if existing == nil {
			result.Graph.Add(entity)
			continue
		}
		if existing.Meta().Source == entity.Meta().Source && existing.Kind() == entity.Kind() {
			continue
		}
		result.Errors = append(result.Errors, diagnostic.Errorf(diagnostic.CodeNamingConflict, imp.Position,
			"imported entity '%s' from '%s' is already defined", name, entity.Meta().Source).
			WithSuggestion("import the document with an alias: @import \""+imp.Path+"\" as Alias"))
	}
}

// Cached returns number of parsed documents held by the resolver
func (r *Resolver) Cached() int {
	return len(r.cache)
}

func (r *Resolver) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Resolver) onStack(location string) bool {
	return r.indexOf(location) != -1
}

func (r *Resolver) indexOf(location string) int {
	for i, candidate := range r.stack {
		if candidate == location {
			return i
		}
	}
	return -1
}

// joinLocation resolves an import path against the importing document directory
func joinLocation(baseURL, location string) string {
	if strings.Contains(location, "://") || path.IsAbs(location) {
		return url.Normalize(location, file.Scheme)
	}
	relative := path.Clean(location)
	for relative == ".." || strings.HasPrefix(relative, "../") {
		baseURL, _ = url.Split(baseURL, file.Scheme)
		relative = strings.TrimPrefix(strings.TrimPrefix(relative, ".."), "/")
	}
	if relative == "" || relative == "." {
		return baseURL
	}
	return url.Join(baseURL, relative)
}
