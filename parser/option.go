package parser

// Options controls parsing
type Options struct {
	ValidateGrammar bool
	ErrorRecovery   bool
	Source          string // location stamped on parsed entities
}

// Option mutates Options
type Option func(*Options)

// DefaultOptions returns options used when none are supplied
func DefaultOptions() *Options {
	return &Options{ErrorRecovery: true}
}

// WithGrammarValidation runs the grammar validator over the parsed graph
func WithGrammarValidation(enabled bool) Option {
	return func(o *Options) {
		o.ValidateGrammar = enabled
	}
}

// WithErrorRecovery toggles recovery; when disabled the first malformed line aborts parsing
func WithErrorRecovery(enabled bool) Option {
	return func(o *Options) {
		o.ErrorRecovery = enabled
	}
}

// WithStrict disables error recovery
func WithStrict() Option {
	return WithErrorRecovery(false)
}

// WithSource sets the document location recorded on entities
func WithSource(location string) Option {
	return func(o *Options) {
		o.Source = location
	}
}
