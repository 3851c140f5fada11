package resolver

import (
	"github.com/viant/afs"
	"github.com/viant/typedmind/parser"
)

// Option represents resolver option
type Option func(*Resolver)

// WithFS sets the file system used to read imported documents
func WithFS(fs afs.Service) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithParserOptions sets options used to parse imported documents
func WithParserOptions(options ...parser.Option) Option {
	return func(r *Resolver) {
		r.parserOptions = options
	}
}
