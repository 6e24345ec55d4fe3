// FILE: lixenwraith/settings/coerce_test.go
package settings_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/settings"
)

func TestCoerceIdempotence(t *testing.T) {
	// Non-string input passes through unchanged, whatever the type says.
	v, err := settings.Coerce(9000, settings.Int())
	require.NoError(t, err)
	assert.Equal(t, 9000, v)

	v, err = settings.Coerce(true, settings.Bool())
	require.NoError(t, err)
	assert.Equal(t, true, v)

	list := []any{"a", "b"}
	v, err = settings.Coerce(list, settings.List())
	require.NoError(t, err)
	assert.Equal(t, list, v)
}

func TestCoerceIdentity(t *testing.T) {
	// The zero Type is the identity: strings pass through.
	v, err := settings.Coerce("anything", settings.Type{})
	require.NoError(t, err)
	assert.Equal(t, "anything", v)
}

func TestCoerceBool(t *testing.T) {
	t.Run("Truthy Vocabulary", func(t *testing.T) {
		for _, raw := range []string{"true", "TRUE", "1", "yes", "Yes", "on", "ON"} {
			v, err := settings.Coerce(raw, settings.Bool())
			require.NoError(t, err, raw)
			assert.Equal(t, true, v, raw)
		}
	})

	t.Run("Falsy Vocabulary", func(t *testing.T) {
		for _, raw := range []string{"false", "False", "0", "no", "NO", "off", "Off"} {
			v, err := settings.Coerce(raw, settings.Bool())
			require.NoError(t, err, raw)
			assert.Equal(t, false, v, raw)
		}
	})

	t.Run("Rejection", func(t *testing.T) {
		_, err := settings.Coerce("maybe", settings.Bool())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrInvalidBoolean)
		assert.Contains(t, err.Error(), "maybe")
	})
}

func TestCoerceNumeric(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		v, err := settings.Coerce("9000", settings.Int())
		require.NoError(t, err)
		assert.Equal(t, int64(9000), v)
	})

	t.Run("Int Rejection Keeps Native Message", func(t *testing.T) {
		_, err := settings.Coerce("not-a-number", settings.Int())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrInvalidNumeric)
		assert.Contains(t, err.Error(), "invalid syntax")
	})

	t.Run("Float", func(t *testing.T) {
		v, err := settings.Coerce("3.14", settings.Float())
		require.NoError(t, err)
		assert.Equal(t, 3.14, v)
	})

	t.Run("Decimal", func(t *testing.T) {
		v, err := settings.Coerce("29.95", settings.Decimal())
		require.NoError(t, err)
		d, ok := v.(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, d.Equal(decimal.RequireFromString("29.95")))
	})

	t.Run("Decimal Rejection", func(t *testing.T) {
		_, err := settings.Coerce("not-a-number", settings.Decimal())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrInvalidNumeric)
	})
}

func TestCoerceContainers(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		v, err := settings.Coerce(`["a", "b"]`, settings.List())
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, v)
	})

	t.Run("Map", func(t *testing.T) {
		v, err := settings.Coerce(`{"key": "value"}`, settings.Map())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"key": "value"}, v)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := settings.Coerce(`['a', 'b']`, settings.List())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrMalformedJSON)
		assert.Contains(t, err.Error(), `"['a', 'b']"`)
		assert.Contains(t, err.Error(), "double quotes")
	})

	t.Run("Empty String", func(t *testing.T) {
		_, err := settings.Coerce("", settings.List())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrMalformedJSON)
		assert.Contains(t, err.Error(), "empty strings are not valid JSON")
		assert.Contains(t, err.Error(), "[]")

		_, err = settings.Coerce("", settings.Map())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "{}")
	})

	t.Run("Shape Mismatch", func(t *testing.T) {
		_, err := settings.Coerce(`{"a": 1}`, settings.List())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrJSONTypeMismatch)
		assert.Contains(t, err.Error(), "expected list")
		assert.Contains(t, err.Error(), "got map")
		assert.Contains(t, err.Error(), "change the type annotation")

		_, err = settings.Coerce(`["a"]`, settings.Map())
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrJSONTypeMismatch)
		assert.Contains(t, err.Error(), "expected map")
		assert.Contains(t, err.Error(), "got list")
	})
}

func TestCoerceUnion(t *testing.T) {
	t.Run("First Member Wins", func(t *testing.T) {
		u := settings.Union(settings.Int(), settings.Float())

		v, err := settings.Coerce("42", u)
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = settings.Coerce("3.5", u)
		require.NoError(t, err)
		assert.Equal(t, 3.5, v)
	})

	t.Run("Exhausted", func(t *testing.T) {
		u := settings.Union(settings.Int(), settings.Bool())
		_, err := settings.Coerce("neither", u)
		require.Error(t, err)
		assert.ErrorIs(t, err, settings.ErrUnionExhausted)
		assert.Contains(t, err.Error(), "int")
		assert.Contains(t, err.Error(), "bool")
	})

	t.Run("None Sentinel", func(t *testing.T) {
		for _, raw := range []string{"none", "None", "NONE", "nOnE"} {
			v, err := settings.Coerce(raw, settings.Optional(settings.Int()))
			require.NoError(t, err, raw)
			assert.Nil(t, v, raw)
		}

		// Nullability propagates through unions.
		u := settings.Union(settings.Optional(settings.Int()), settings.String())
		v, err := settings.Coerce("none", u)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("None Without Null Member Is Literal", func(t *testing.T) {
		v, err := settings.Coerce("none", settings.String())
		require.NoError(t, err)
		assert.Equal(t, "none", v)
	})
}

func TestCoerceStructured(t *testing.T) {
	t.Run("Time", func(t *testing.T) {
		v, err := settings.Coerce("2024-12-25T15:30:45", settings.Time())
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 12, 25, 15, 30, 45, 0, time.UTC), v)

		v, err = settings.Coerce("2024-06-15T10:30:00+05:30", settings.Time())
		require.NoError(t, err)
		parsed := v.(time.Time)
		assert.Equal(t, 10, parsed.Hour())
		assert.Equal(t, 30, parsed.Minute())
	})

	t.Run("Date", func(t *testing.T) {
		v, err := settings.Coerce("2024-06-15", settings.Date())
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), v)

		_, err = settings.Coerce("2024/06/15", settings.Date())
		assert.Error(t, err)
	})

	t.Run("Clock", func(t *testing.T) {
		v, err := settings.Coerce("02:30:00", settings.Clock())
		require.NoError(t, err)
		parsed := v.(time.Time)
		assert.Equal(t, 2, parsed.Hour())
		assert.Equal(t, 30, parsed.Minute())

		_, err = settings.Coerce("3:00 AM", settings.Clock())
		assert.Error(t, err)
	})

	t.Run("Duration", func(t *testing.T) {
		v, err := settings.Coerce("1h30m", settings.Duration())
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, v)
	})

	t.Run("UUID Accepted Forms", func(t *testing.T) {
		want := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		forms := []string{
			"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			"6BA7B810-9DAD-11D1-80B4-00C04FD430C8",
			"{6ba7b810-9dad-11d1-80b4-00c04fd430c8}",
			"6ba7b8109dad11d180b400c04fd430c8",
		}
		for _, raw := range forms {
			v, err := settings.Coerce(raw, settings.UUID())
			require.NoError(t, err, raw)
			assert.Equal(t, want, v, raw)
		}
	})

	t.Run("Path", func(t *testing.T) {
		v, err := settings.Coerce("/var/log/../lib/app", settings.Path())
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/app", v)
	})
}

func TestCoerceCustom(t *testing.T) {
	doubler := settings.Custom("doubler", func(s string) (any, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return n * 2, nil
	})

	t.Run("Parse Func Invoked", func(t *testing.T) {
		v, err := settings.Coerce("21", doubler)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("Errors Propagate Verbatim", func(t *testing.T) {
		boom := errors.New("cannot parse: bad_value")
		failing := settings.Custom("failing", func(s string) (any, error) {
			return nil, boom
		})

		_, err := settings.Coerce("bad_value", failing)
		require.Error(t, err)
		assert.Same(t, boom, err) // not wrapped
	})

	t.Run("No Parse Func Passes Raw String", func(t *testing.T) {
		opaque := settings.Custom("opaque", nil)
		v, err := settings.Coerce("from_env", opaque)
		require.NoError(t, err)
		assert.Equal(t, "from_env", v)
	})
}
