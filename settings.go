// FILE: lixenwraith/settings/settings.go
package settings

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Settings resolves setting values against an immutable Schema. Every
// Get consults, in order: the command-line override store, the
// environment (through the injected lookup), and the declared default.
// Resolution is live: two reads of the same setting may differ if the
// environment changed in between. Freeze produces the immutable
// opt-out.
//
// The override store is single-writer (one command-line bind at
// startup) and many-reader; all access is guarded by an RWMutex.
type Settings struct {
	schema         *Schema
	overrides      map[string]any // OverrideStore, created lazily
	lookup         LookupFunc
	transform      TransformFunc
	envPrefix      string
	errorOnMissing bool
	mutex          sync.RWMutex
}

// New creates a resolver over schema reading the process environment.
func New(schema *Schema) *Settings {
	return NewWithLookup(schema, os.LookupEnv)
}

// NewWithLookup creates a resolver with an injected environment
// lookup, for deterministic resolution in tests or against non-process
// key/value stores.
func NewWithLookup(schema *Schema, lookup LookupFunc) *Settings {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Settings{
		schema: schema,
		lookup: lookup,
	}
}

// Schema returns the schema this resolver reads from.
func (s *Settings) Schema() *Schema {
	return s.schema
}

// SetEnvPrefix prepends a prefix to every derived environment variable
// name: with prefix "APP_", the setting "port" reads "APP_PORT".
func (s *Settings) SetEnvPrefix(prefix string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.envPrefix = prefix
}

// SetEnvTransform replaces the default name transformation.
func (s *Settings) SetEnvTransform(fn TransformFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.transform = fn
}

// SetErrorOnMissing toggles the strict resolution mode: when enabled,
// a setting with no override, no environment value, and no default
// resolves to ErrNotConfigured instead of nil.
func (s *Settings) SetErrorOnMissing(enabled bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errorOnMissing = enabled
}

// envName derives the environment variable name for a setting.
// Callers must hold at least a read lock.
func (s *Settings) envName(name string) string {
	if s.transform != nil {
		return s.transform(name)
	}
	return defaultEnvTransform(s.envPrefix)(name)
}

// Get resolves a setting. Precedence, first hit wins: command-line
// override, environment value (coerced to the declared or inferred
// type), declared default (returned as registered, unconverted).
// Coercion failures propagate; the default is never substituted for a
// malformed environment value.
func (s *Settings) Get(name string) (any, error) {
	spec, registered := s.schema.Spec(name)
	if !registered {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}

	s.mutex.RLock()
	value, overridden := s.overrides[name]
	envVar := s.envName(name)
	strict := s.errorOnMissing
	lookup := s.lookup
	s.mutex.RUnlock()

	if overridden {
		return value, nil
	}

	if raw, exists := lookup(envVar); exists {
		return coerce(envVar, raw, spec.effectiveType())
	}

	if spec.HasDefault {
		return spec.Default, nil
	}

	if strict {
		return nil, fmt.Errorf("%w: %s has no override, environment value, or default", ErrNotConfigured, name)
	}
	return nil, nil
}

// MustGet is like Get but panics on error.
func (s *Settings) MustGet(name string) any {
	v, err := s.Get(name)
	if err != nil {
		panic(fmt.Sprintf("settings: get %s: %v", name, err))
	}
	return v
}

// SetOverride writes an already-coerced value into the override store.
// BindFlags is the usual writer; this is the escape hatch for tests
// and programmatic overrides.
func (s *Settings) SetOverride(name string, value any) error {
	if _, registered := s.schema.Spec(name); !registered {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.overrides == nil {
		s.overrides = make(map[string]any)
	}
	s.overrides[name] = value
	return nil
}

// Overridden reports whether a setting has a command-line override.
func (s *Settings) Overridden(name string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, ok := s.overrides[name]
	return ok
}

// ResetOverrides discards every command-line override, restoring
// environment/default resolution for all settings.
func (s *Settings) ResetOverrides() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.overrides = nil
}

// DiscoverEnv returns, for every schema setting whose environment
// variable is currently set, the mapping setting name -> variable name.
func (s *Settings) DiscoverEnv() map[string]string {
	s.mutex.RLock()
	lookup := s.lookup
	names := s.schema.Names()
	envVars := make(map[string]string, len(names))
	for _, name := range names {
		envVars[name] = s.envName(name)
	}
	s.mutex.RUnlock()

	discovered := make(map[string]string)
	for name, envVar := range envVars {
		if _, exists := lookup(envVar); exists {
			discovered[name] = envVar
		}
	}
	return discovered
}

// ExportEnv renders every setting whose resolved value differs from
// its default as an environment variable assignment. Settings that
// fail to resolve are skipped.
func (s *Settings) ExportEnv() map[string]string {
	exports := make(map[string]string)

	for _, name := range s.schema.Names() {
		spec, _ := s.schema.Spec(name)
		value, err := s.Get(name)
		if err != nil {
			continue
		}
		if spec.HasDefault && reflect.DeepEqual(value, spec.Default) {
			continue
		}
		if value == nil {
			continue
		}

		s.mutex.RLock()
		envVar := s.envName(name)
		s.mutex.RUnlock()

		exports[envVar] = fmt.Sprintf("%v", value)
	}

	return exports
}

// Debug returns a formatted dump of every setting with its resolution
// source and current value, for troubleshooting precedence surprises.
func (s *Settings) Debug() string {
	names := s.schema.Names()
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Settings debug info:\n")

	for _, name := range names {
		spec, _ := s.schema.Spec(name)

		source := "default"
		s.mutex.RLock()
		_, overridden := s.overrides[name]
		envVar := s.envName(name)
		lookup := s.lookup
		s.mutex.RUnlock()

		if overridden {
			source = "override"
		} else if _, exists := lookup(envVar); exists {
			source = "env(" + envVar + ")"
		} else if !spec.HasDefault {
			source = "unset"
		}

		value, err := s.Get(name)
		if err != nil {
			b.WriteString(fmt.Sprintf("  %s: <error: %v> [%s]\n", name, err, source))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %v (%s) [%s]\n", name, value, spec.effectiveType(), source))
	}

	return b.String()
}
