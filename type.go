// FILE: lixenwraith/settings/type.go
package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// String resolves a setting and returns it as a string, converting
// from common scalar types when the resolved value isn't one already.
func (s *Settings) String(name string) (string, error) {
	val, err := s.Get(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil // Treat nil as empty string for convenience
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case error:
		return v.Error(), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for setting %s", val, name)
	}
}

// Int64 resolves a setting and returns it as an int64, converting
// from other numeric types, parsable strings, and booleans.
func (s *Settings) Int64(name string) (int64, error) {
	val, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("value for setting %s is nil, cannot convert to int64", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		maxInt64 := int64(^uint64(0) >> 1)
		if u > uint64(maxInt64) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d (type %T) to int64 for setting %s: overflow", u, val, name)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		// Truncate float to int
		return int64(v.Float()), nil
	case reflect.String:
		str := v.String()
		if i, err := strconv.ParseInt(str, 0, 64); err == nil {
			return i, nil
		} else {
			if f, ferr := strconv.ParseFloat(str, 64); ferr == nil {
				return int64(f), nil // Truncate
			}
			return 0, fmt.Errorf("cannot convert string %q to int64 for setting %s: %w", str, name, err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for setting %s", val, name)
}

// Float64 resolves a setting and returns it as a float64.
func (s *Settings) Float64(name string) (float64, error) {
	val, err := s.Get(name)
	if err != nil {
		return 0.0, err
	}
	if val == nil {
		return 0.0, fmt.Errorf("value for setting %s is nil, cannot convert to float64", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		str := v.String()
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return f, nil
		} else {
			return 0.0, fmt.Errorf("cannot convert string %q to float64 for setting %s: %w", str, name, err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64 for setting %s", val, name)
}

// Bool resolves a setting and returns it as a bool, accepting the
// textual boolean vocabulary and numeric zero/non-zero.
func (s *Settings) Bool(name string) (bool, error) {
	val, err := s.Get(name)
	if err != nil {
		return false, err
	}
	if val == nil {
		return false, fmt.Errorf("value for setting %s is nil, cannot convert to bool", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		b, err := convertBool(v.String())
		if err != nil {
			return false, fmt.Errorf("setting %s: %w", name, err)
		}
		return b.(bool), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for setting %s", val, name)
}

// Decimal resolves a setting and returns it as a decimal.Decimal.
func (s *Settings) Decimal(name string) (decimal.Decimal, error) {
	val, err := s.Get(name)
	if err != nil {
		return decimal.Zero, err
	}

	switch v := val.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("cannot convert string %q to decimal for setting %s: %w", v, name, err)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	}

	return decimal.Zero, fmt.Errorf("cannot convert type %T to decimal for setting %s", val, name)
}

// UUID resolves a setting and returns it as a uuid.UUID.
func (s *Settings) UUID(name string) (uuid.UUID, error) {
	val, err := s.Get(name)
	if err != nil {
		return uuid.Nil, err
	}

	switch v := val.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("cannot convert string %q to uuid for setting %s: %w", v, name, err)
		}
		return id, nil
	}

	return uuid.Nil, fmt.Errorf("cannot convert type %T to uuid for setting %s", val, name)
}

// Time resolves a setting and returns it as a time.Time.
func (s *Settings) Time(name string) (time.Time, error) {
	val, err := s.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	switch v := val.(type) {
	case time.Time:
		return v, nil
	case string:
		parsed, err := parseLayouts(v, timeLayouts)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot convert string %q to time for setting %s: %w", v, name, err)
		}
		return parsed.(time.Time), nil
	}

	return time.Time{}, fmt.Errorf("cannot convert type %T to time for setting %s", val, name)
}

// Duration resolves a setting and returns it as a time.Duration.
func (s *Settings) Duration(name string) (time.Duration, error) {
	val, err := s.Get(name)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to duration for setting %s: %w", v, name, err)
		}
		return d, nil
	case int:
		return time.Duration(v), nil
	case int64:
		return time.Duration(v), nil
	}

	return 0, fmt.Errorf("cannot convert type %T to duration for setting %s", val, name)
}

// Strings resolves a list-typed setting and returns it as []string.
// Non-string elements are formatted.
func (s *Settings) Strings(name string) ([]string, error) {
	val, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, elem := range v {
			if str, ok := elem.(string); ok {
				out[i] = str
			} else {
				out[i] = fmt.Sprintf("%v", elem)
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("cannot convert type %T to []string for setting %s", val, name)
}

// StringMap resolves a map-typed setting and returns it as
// map[string]any.
func (s *Settings) StringMap(name string) (map[string]any, error) {
	val, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}

	if m, ok := val.(map[string]any); ok {
		return m, nil
	}

	// Other string-keyed map types arrive via struct registration.
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		for _, key := range rv.MapKeys() {
			out[key.String()] = rv.MapIndex(key).Interface()
		}
		return out, nil
	}

	return nil, fmt.Errorf("cannot convert type %T to map[string]any for setting %s", val, name)
}
