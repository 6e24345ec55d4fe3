// FILE: lixenwraith/settings/schema.go
package settings

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Reserved command-surface tokens. A schema containing one of these as
// a setting name fails at registration time, not at flag-build time.
var reservedNames = map[string]bool{
	"help": true,
	"h":    true,
}

// SettingSpec describes one declared setting: an optional declared
// type and an optional default. A spec with neither resolves as the
// identity: environment strings pass through unconverted and absent
// values resolve to nil.
type SettingSpec struct {
	Type       Type
	Default    any
	HasDefault bool
}

// effectiveType returns the declared type, falling back to the type
// inferred from the default's runtime type.
func (sp SettingSpec) effectiveType() Type {
	if sp.Type.IsValid() {
		return sp.Type
	}
	if sp.HasDefault {
		return inferType(sp.Default)
	}
	return Type{}
}

// Schema is the registry of declared settings for one configuration
// class. A Schema is built once, at startup, and is then read by any
// number of resolvers; Extend and Compose derive child schemas whose
// own declarations replace inherited ones wholesale.
type Schema struct {
	specs map[string]SettingSpec
	order []string // declaration order, inherited entries first
	mutex sync.RWMutex
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{
		specs: make(map[string]SettingSpec),
	}
}

// put validates the name and stores the spec, replacing any inherited
// entry of the same name while keeping its declaration position.
func (s *Schema) put(name string, spec SettingSpec) error {
	if !isValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if reservedNames[strings.ToLower(name)] {
		return fmt.Errorf("%w: %q conflicts with a built-in command-line option", ErrReservedName, name)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.specs[name]; !exists {
		s.order = append(s.order, name)
	}
	s.specs[name] = spec
	return nil
}

// Register declares a setting whose type is inferred from the runtime
// type of defaultValue. A nil default declares a legitimate null
// default with no conversion.
func (s *Schema) Register(name string, defaultValue any) error {
	return s.put(name, SettingSpec{
		Type:       inferType(defaultValue),
		Default:    defaultValue,
		HasDefault: true,
	})
}

// RegisterType declares a typed setting with no default. Resolving it
// without an override or environment value yields nil (or
// ErrNotConfigured in error-on-missing mode).
func (s *Schema) RegisterType(name string, t Type) error {
	return s.put(name, SettingSpec{Type: t})
}

// RegisterTyped declares a setting with both an explicit type and a
// default value.
func (s *Schema) RegisterTyped(name string, t Type, defaultValue any) error {
	return s.put(name, SettingSpec{
		Type:       t,
		Default:    defaultValue,
		HasDefault: true,
	})
}

// Declare registers a setting with no type and no default. It resolves
// to the raw environment string when set, and to nil otherwise.
func (s *Schema) Declare(name string) error {
	return s.put(name, SettingSpec{})
}

// RegisterStruct declares one setting per exported field of a struct,
// using the field values as defaults. The setting name is taken from
// the `setting` tag, falling back to the snake_case form of the field
// name; a tag of "-" skips the field.
func (s *Schema) RegisterStruct(defaults any) error {
	v := reflect.ValueOf(defaults)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("RegisterStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("RegisterStruct requires a struct or struct pointer, got %T", defaults)
	}

	t := v.Type()
	var failures []string

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("setting")
		if tag == "-" {
			continue
		}

		name := toSnakeCase(field.Name)
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
		}

		if err := s.Register(name, v.Field(i).Interface()); err != nil {
			failures = append(failures, fmt.Sprintf("field %s (setting %s): %v", field.Name, name, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("failed to register %d field(s): %s", len(failures), strings.Join(failures, "; "))
	}
	return nil
}

// SetDefault replaces the default value of an already-declared
// setting. This is the one sanctioned post-construction mutation,
// intended for administrative reconfiguration.
func (s *Schema) SetDefault(name string, value any) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	spec, exists := s.specs[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	spec.Default = value
	spec.HasDefault = true
	s.specs[name] = spec
	return nil
}

// Extend creates a child schema carrying a copy of the merged parent
// table. Declarations on the child replace inherited specs of the same
// name without affecting the parent.
func (s *Schema) Extend() *Schema {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	child := NewSchema()
	child.order = make([]string, len(s.order))
	copy(child.order, s.order)
	for name, spec := range s.specs {
		child.specs[name] = spec
	}
	return child
}

// Compose merges several base schemas into a new schema. Earlier bases
// take precedence over later ones on conflicting names, mirroring
// left-to-right base lookup; the result is independent of every base.
func Compose(bases ...*Schema) *Schema {
	merged := NewSchema()

	// Bases are applied most-root-first so that earlier (more derived)
	// bases overwrite later ones.
	for i := len(bases) - 1; i >= 0; i-- {
		base := bases[i]
		base.mutex.RLock()
		for _, name := range base.order {
			if _, exists := merged.specs[name]; !exists {
				merged.order = append(merged.order, name)
			}
			merged.specs[name] = base.specs[name]
		}
		base.mutex.RUnlock()
	}

	return merged
}

// Spec returns the spec for a setting name. The second return reports
// whether the name is declared.
func (s *Schema) Spec(name string) (SettingSpec, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	spec, ok := s.specs[name]
	return spec, ok
}

// Names returns all declared setting names in declaration order,
// inherited entries first.
func (s *Schema) Names() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of declared settings.
func (s *Schema) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.specs)
}
