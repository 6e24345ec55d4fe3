// FILE: lixenwraith/settings/view.go
package settings

// Snapshot is a read-only resolved view: setting names mapped to
// already-coerced values, captured at creation time. A Snapshot owns
// its values and keeps no link to the schema, the override store, or
// the environment; later changes to any of those never show through.
type Snapshot struct {
	values map[string]any
	order  []string
}

// FromEnv produces the environment-only view: for every schema
// setting, the environment is consulted and the value coerced; on
// absence or coercion failure the setting is omitted from the view
// entirely. The result therefore contains exactly the settings that
// currently exist as valid environment overrides.
func (s *Settings) FromEnv() *Snapshot {
	view := &Snapshot{values: make(map[string]any)}

	s.mutex.RLock()
	lookup := s.lookup
	names := s.schema.Names()
	envVars := make(map[string]string, len(names))
	for _, name := range names {
		envVars[name] = s.envName(name)
	}
	s.mutex.RUnlock()

	for _, name := range names {
		raw, exists := lookup(envVars[name])
		if !exists {
			continue
		}
		spec, _ := s.schema.Spec(name)
		value, err := coerce(envVars[name], raw, spec.effectiveType())
		if err != nil {
			continue // a malformed value is treated as absent
		}
		view.values[name] = copyValue(value)
		view.order = append(view.order, name)
	}

	return view
}

// Freeze captures the currently resolved value of every schema setting
// through the full pipeline (override, environment, default) into an
// immutable snapshot. Resolution errors propagate; unlike FromEnv,
// nothing is silently skipped.
func (s *Settings) Freeze() (*Snapshot, error) {
	snap := &Snapshot{values: make(map[string]any)}

	for _, name := range s.schema.Names() {
		value, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		snap.values[name] = copyValue(value)
		snap.order = append(snap.order, name)
	}

	return snap, nil
}

// Get returns a setting's captured value. Containers come back as
// copies, so callers cannot mutate the snapshot. The second return
// reports presence, distinguishing an omitted setting from a captured
// nil.
func (v *Snapshot) Get(name string) (any, bool) {
	value, ok := v.values[name]
	if !ok {
		return nil, false
	}
	return copyValue(value), true
}

// Has reports whether the snapshot captured a value for name.
func (v *Snapshot) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Names returns the captured setting names in schema order.
func (v *Snapshot) Names() []string {
	names := make([]string, len(v.order))
	copy(names, v.order)
	return names
}

// Len returns the number of captured settings.
func (v *Snapshot) Len() int {
	return len(v.values)
}

// Values returns a deep copy of the captured values.
func (v *Snapshot) Values() map[string]any {
	out := make(map[string]any, len(v.values))
	for name, value := range v.values {
		out[name] = copyValue(value)
	}
	return out
}

// copyValue deep-copies JSON-shaped containers so a snapshot never
// aliases a schema default or a previously returned value. Scalars
// pass through.
func copyValue(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = copyValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = copyValue(elem)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, elem := range val {
			out[k] = elem
		}
		return out
	default:
		return v
	}
}
