package assign

import "github.com/katalvlaran/revmatch/logging"

// Option customizes a Builder.
type Option func(*Builder)

// WithLogger routes build logs to l. Panics on nil.
func WithLogger(l logging.Logger) Option {
	if l == nil {
		panic("assign: WithLogger(nil)")
	}

	return func(b *Builder) { b.log = l }
}

// WithSoftConstraints overrides Config.SoftConstraints.
func WithSoftConstraints(on bool) Option {
	return func(b *Builder) { b.soft = on }
}

// WithModelName sets the informational name written into the LP header.
func WithModelName(name string) Option {
	return func(b *Builder) { b.name = name }
}
