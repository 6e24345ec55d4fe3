// FILE: lixenwraith/settings/builder.go
package settings

import (
	"fmt"
	"os"
)

// ValidatorFunc validates a fully built Settings instance. It receives
// the resolver after command-line binding and should return an error
// if the configuration is unacceptable.
type ValidatorFunc func(s *Settings) error

// Builder provides a fluent interface for assembling a schema and its
// resolver in one expression.
type Builder struct {
	schema         *Schema
	defaults       any
	lookup         LookupFunc
	transform      TransformFunc
	envPrefix      string
	args           []string
	errorOnMissing bool
	validators     []ValidatorFunc
}

// NewBuilder creates a new settings builder. The command line defaults
// to os.Args[1:].
func NewBuilder() *Builder {
	return &Builder{
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
	}
}

// WithSchema uses an existing schema instead of building one from
// defaults.
func (b *Builder) WithSchema(schema *Schema) *Builder {
	b.schema = schema
	return b
}

// WithDefaults registers the exported fields of a struct as settings,
// with the field values as defaults.
func (b *Builder) WithDefaults(defaults any) *Builder {
	b.defaults = defaults
	return b
}

// WithEnvPrefix sets the environment variable prefix.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithEnvTransform sets a custom environment variable transformer.
func (b *Builder) WithEnvTransform(fn TransformFunc) *Builder {
	b.transform = fn
	return b
}

// WithLookup injects an environment lookup, replacing os.LookupEnv.
func (b *Builder) WithLookup(fn LookupFunc) *Builder {
	b.lookup = fn
	return b
}

// WithArgs sets the command-line arguments to bind. Pass an empty
// non-nil slice to disable command-line binding explicitly.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithErrorOnMissing enables strict resolution: settings with no
// default, override, or environment value return ErrNotConfigured.
func (b *Builder) WithErrorOnMissing() *Builder {
	b.errorOnMissing = true
	return b
}

// WithValidator adds a validation function that runs at the end of the
// build. Multiple validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build assembles the schema and resolver, binds the command line, and
// runs the validators.
func (b *Builder) Build() (*Settings, error) {
	schema := b.schema
	if schema == nil {
		schema = NewSchema()
	}

	if b.defaults != nil {
		if err := schema.RegisterStruct(b.defaults); err != nil {
			return nil, fmt.Errorf("failed to register defaults: %w", err)
		}
	}

	s := NewWithLookup(schema, b.lookup)
	if b.envPrefix != "" {
		s.SetEnvPrefix(b.envPrefix)
	}
	if b.transform != nil {
		s.SetEnvTransform(b.transform)
	}
	if b.errorOnMissing {
		s.SetErrorOnMissing(true)
	}

	if len(b.args) > 0 {
		if err := s.ParseCommandLine(b.args); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(s); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	}

	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Settings {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("settings build failed: %v", err))
	}
	return s
}

// BuildAndScan builds the resolver and decodes the fully resolved
// state into the provided struct pointer.
func (b *Builder) BuildAndScan(target any) error {
	s, err := b.Build()
	if err != nil {
		return err
	}
	if err := s.Scan(target); err != nil {
		return fmt.Errorf("failed to scan settings into target: %w", err)
	}
	return nil
}
