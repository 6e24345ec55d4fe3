// FILE: lixenwraith/settings/scan.go
package settings

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

// Scan resolves every schema setting through the full pipeline and
// decodes the result into target, which must be a non-nil pointer to a
// struct or map. Fields are matched by the `setting` tag or the
// snake_case form of the field name.
func (s *Settings) Scan(target any) error {
	snap, err := s.Freeze()
	if err != nil {
		return err
	}
	return snap.Scan(target)
}

// Scan decodes the snapshot's captured values into target.
func (v *Snapshot) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "setting",
		WeaklyTypedInput: true,
		DecodeHook:       scanDecodeHook(),
		MatchName: func(mapKey, fieldName string) bool {
			return strings.EqualFold(mapKey, fieldName) || mapKey == toSnakeCase(fieldName)
		},
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(v.values); err != nil {
		return fmt.Errorf("failed to scan snapshot: %w", err)
	}
	return nil
}

// scanDecodeHook returns the composite decode hook covering the
// setting value types that survive serialization as strings.
func scanDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToUUIDHookFunc(),
		stringToDecimalHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToUUIDHookFunc handles uuid.UUID conversion
func stringToUUIDHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(uuid.UUID{}) {
			return data, nil
		}

		id, err := uuid.Parse(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid UUID: %w", err)
		}
		return id, nil
	}
}

// stringToDecimalHookFunc handles decimal.Decimal conversion
func stringToDecimalHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(decimal.Decimal{}) {
			return data, nil
		}

		d, err := decimal.NewFromString(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid decimal: %w", err)
		}
		return d, nil
	}
}
