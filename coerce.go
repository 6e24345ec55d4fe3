// FILE: lixenwraith/settings/coerce.go
package settings

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Boolean vocabulary accepted by coercion, matched case-insensitively.
var (
	truthyWords = []string{"true", "1", "yes", "on"}
	falsyWords  = []string{"false", "0", "no", "off"}
)

// Layouts attempted for the date/time kinds, canonical form first.
// Parse errors from the canonical layout are the ones reported.
var (
	timeLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	clockLayouts = []string{
		"15:04:05.999999999",
		"15:04:05",
		"15:04",
	}
)

const dateLayout = "2006-01-02"

// Coerce converts a raw textual value into the declared type t.
// Coercion is idempotent on non-string input: a value that is already
// typed is returned unchanged. The zero Type is the identity: strings
// pass through untouched.
func Coerce(value any, t Type) (any, error) {
	return coerce("", value, t)
}

// coerce carries the originating environment variable name so that
// container errors can point at it. An empty origin means the value did
// not come from the environment.
func coerce(envVar string, value any, t Type) (any, error) {
	raw, isString := value.(string)
	if !isString {
		return value, nil
	}
	if !t.IsValid() {
		return raw, nil
	}

	// The "none" sentinel resolves any nullable type to nil before any
	// member type is attempted.
	if t.IsNullable() && strings.EqualFold(raw, "none") {
		return nil, nil
	}

	if t.IsUnion() {
		return coerceUnion(envVar, raw, t)
	}

	return convertString(envVar, raw, t)
}

// coerceUnion attempts each union member in declared order and returns
// the first successful conversion.
func coerceUnion(envVar, raw string, t Type) (any, error) {
	for _, member := range t.members {
		v, err := coerce(envVar, raw, member)
		if err == nil {
			return v, nil
		}
	}

	names := make([]string, len(t.members))
	for i, m := range t.members {
		names[i] = m.String()
	}
	return nil, fmt.Errorf("%w: %q was rejected by every member type (%s)",
		ErrUnionExhausted, raw, strings.Join(names, ", "))
}

// convertString performs the single-type conversion of a raw string.
func convertString(envVar, raw string, t Type) (any, error) {
	switch t.kind {
	case KindString:
		return raw, nil

	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidNumeric, err)
		}
		return n, nil

	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidNumeric, err)
		}
		return f, nil

	case KindBool:
		return convertBool(raw)

	case KindDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidNumeric, err)
		}
		return d, nil

	case KindList, KindMap:
		return convertJSON(envVar, raw, t.kind)

	case KindTime:
		return parseLayouts(raw, timeLayouts)

	case KindDate:
		v, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, err
		}
		return v, nil

	case KindClock:
		return parseLayouts(raw, clockLayouts)

	case KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		return d, nil

	case KindUUID:
		// uuid.Parse accepts hyphenated, unhyphenated, and braced
		// forms, case-insensitively.
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		return id, nil

	case KindPath:
		return filepath.Clean(raw), nil

	case KindCustom:
		// Types declared without a ParseFunc have no string conversion;
		// the raw string passes through unchanged.
		if t.parse == nil {
			return raw, nil
		}
		// ParseFunc errors propagate verbatim, unwrapped.
		return t.parse(raw)
	}

	return raw, nil
}

// convertBool matches the textual boolean vocabulary.
func convertBool(raw string) (any, error) {
	normalized := strings.ToLower(raw)
	for _, w := range truthyWords {
		if normalized == w {
			return true, nil
		}
	}
	for _, w := range falsyWords {
		if normalized == w {
			return false, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a valid boolean value (accepted: true/1/yes/on, false/0/no/off)",
		ErrInvalidBoolean, raw)
}

// convertJSON parses a container-typed value as strict JSON and
// verifies the parsed shape matches the declared container kind.
func convertJSON(envVar, raw string, kind Kind) (any, error) {
	origin := "value"
	if envVar != "" {
		origin = envVar + " environment variable"
	}

	empty := "[]"
	if kind == KindMap {
		empty = "{}"
	}

	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w in %s: empty strings are not valid JSON; use %s for an empty %s",
			ErrMalformedJSON, origin, empty, kind)
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w in %s: %v; your value: %q; use double quotes for JSON strings, e.g. [\"a\", \"b\"]",
			ErrMalformedJSON, origin, err, raw)
	}

	actual := jsonShape(parsed)
	switch kind {
	case KindList:
		if list, ok := parsed.([]any); ok {
			return list, nil
		}
	case KindMap:
		if m, ok := parsed.(map[string]any); ok {
			return m, nil
		}
	}

	return nil, fmt.Errorf("%w in %s: expected %s, got %s; change the type annotation to %s if that was intended",
		ErrJSONTypeMismatch, origin, kind, actual, actual)
}

// jsonShape names the shape of a decoded JSON value for error messages.
func jsonShape(v any) string {
	switch v.(type) {
	case []any:
		return "list"
	case map[string]any:
		return "map"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// parseLayouts tries each layout in order, reporting the canonical
// layout's error when none matches.
func parseLayouts(raw string, layouts []string) (any, error) {
	var firstErr error
	for i, layout := range layouts {
		v, err := time.Parse(layout, raw)
		if err == nil {
			return v, nil
		}
		if i == 0 {
			firstErr = err
		}
	}
	return nil, firstErr
}
