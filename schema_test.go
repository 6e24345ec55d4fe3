// FILE: lixenwraith/settings/schema_test.go
package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/settings"
)

func TestSchemaRegistration(t *testing.T) {
	t.Run("Register Infers Type", func(t *testing.T) {
		schema := settings.NewSchema()
		require.NoError(t, schema.Register("port", 8080))

		spec, ok := schema.Spec("port")
		require.True(t, ok)
		assert.Equal(t, settings.KindInt, spec.Type.Kind())
		assert.True(t, spec.HasDefault)
		assert.Equal(t, 8080, spec.Default)
	})

	t.Run("Explicit Nil Default Is A Default", func(t *testing.T) {
		schema := settings.NewSchema()
		require.NoError(t, schema.Register("token", nil))

		spec, ok := schema.Spec("token")
		require.True(t, ok)
		assert.True(t, spec.HasDefault)
		assert.Nil(t, spec.Default)
	})

	t.Run("RegisterType Has No Default", func(t *testing.T) {
		schema := settings.NewSchema()
		require.NoError(t, schema.RegisterType("timeout", settings.Duration()))

		spec, ok := schema.Spec("timeout")
		require.True(t, ok)
		assert.False(t, spec.HasDefault)
		assert.Equal(t, settings.KindDuration, spec.Type.Kind())
	})

	t.Run("Declare Is Untyped And Defaultless", func(t *testing.T) {
		schema := settings.NewSchema()
		require.NoError(t, schema.Declare("raw_value"))

		spec, ok := schema.Spec("raw_value")
		require.True(t, ok)
		assert.False(t, spec.HasDefault)
		assert.False(t, spec.Type.IsValid())
	})

	t.Run("Invalid Names Rejected", func(t *testing.T) {
		schema := settings.NewSchema()
		for _, name := range []string{"", "db.host", "db-host", "1port", "a b"} {
			err := schema.Register(name, "x")
			assert.ErrorIs(t, err, settings.ErrInvalidName, name)
		}
	})

	t.Run("Reserved Names Fail Fast", func(t *testing.T) {
		schema := settings.NewSchema()
		assert.ErrorIs(t, schema.Register("help", false), settings.ErrReservedName)
		assert.ErrorIs(t, schema.Register("Help", false), settings.ErrReservedName)
		assert.ErrorIs(t, schema.Declare("h"), settings.ErrReservedName)
	})

	t.Run("SetDefault Replaces", func(t *testing.T) {
		schema := settings.NewSchema()
		require.NoError(t, schema.RegisterType("retries", settings.Int()))
		require.NoError(t, schema.SetDefault("retries", 3))

		spec, _ := schema.Spec("retries")
		assert.True(t, spec.HasDefault)
		assert.Equal(t, 3, spec.Default)

		assert.ErrorIs(t, schema.SetDefault("unknown", 1), settings.ErrNotRegistered)
	})

	t.Run("Names Preserve Declaration Order", func(t *testing.T) {
		schema := settings.NewSchema()
		require.NoError(t, schema.Register("c", 1))
		require.NoError(t, schema.Register("a", 2))
		require.NoError(t, schema.Register("b", 3))
		assert.Equal(t, []string{"c", "a", "b"}, schema.Names())
	})
}

func TestSchemaStruct(t *testing.T) {
	type Defaults struct {
		Host       string `setting:"host"`
		MaxRetries int
		Debug      bool   `setting:"debug"`
		Ignored    string `setting:"-"`
		internal   string
	}

	schema := settings.NewSchema()
	require.NoError(t, schema.RegisterStruct(Defaults{
		Host:       "localhost",
		MaxRetries: 5,
		Debug:      true,
		Ignored:    "nope",
	}))

	spec, ok := schema.Spec("host")
	require.True(t, ok)
	assert.Equal(t, "localhost", spec.Default)

	// Untagged field falls back to snake_case.
	spec, ok = schema.Spec("max_retries")
	require.True(t, ok)
	assert.Equal(t, 5, spec.Default)

	_, ok = schema.Spec("ignored")
	assert.False(t, ok)
	_, ok = schema.Spec("internal")
	assert.False(t, ok)
}

func TestSchemaInheritance(t *testing.T) {
	t.Run("Extend Child Overrides Parent", func(t *testing.T) {
		base := settings.NewSchema()
		require.NoError(t, base.Register("x", 1))
		require.NoError(t, base.Register("y", "base"))

		child := base.Extend()
		require.NoError(t, child.Register("x", 2))
		require.NoError(t, child.Register("z", true))

		// Child sees its own override plus inherited entries.
		spec, _ := child.Spec("x")
		assert.Equal(t, 2, spec.Default)
		spec, _ = child.Spec("y")
		assert.Equal(t, "base", spec.Default)
		_, ok := child.Spec("z")
		assert.True(t, ok)

		// Parent is unaffected.
		spec, _ = base.Spec("x")
		assert.Equal(t, 1, spec.Default)
		_, ok = base.Spec("z")
		assert.False(t, ok)
	})

	t.Run("Deep Chain Most Derived Wins", func(t *testing.T) {
		a := settings.NewSchema()
		require.NoError(t, a.Register("v", "a"))
		b := a.Extend()
		require.NoError(t, b.Register("v", "b"))
		c := b.Extend()

		// The intermediate override is visible to descendants.
		spec, _ := c.Spec("v")
		assert.Equal(t, "b", spec.Default)
	})

	t.Run("Child Spec Replaces Wholesale", func(t *testing.T) {
		base := settings.NewSchema()
		require.NoError(t, base.Register("limit", 10))

		child := base.Extend()
		require.NoError(t, child.RegisterType("limit", settings.Optional(settings.Int())))

		// The child's declaration has no default: the parent's default
		// does not bleed through field-by-field.
		spec, _ := child.Spec("limit")
		assert.False(t, spec.HasDefault)
		assert.True(t, spec.Type.IsNullable())
	})

	t.Run("Compose Leftmost Base Wins", func(t *testing.T) {
		a := settings.NewSchema()
		require.NoError(t, a.Register("v", "a"))
		require.NoError(t, a.Register("only_a", 1))

		b := settings.NewSchema()
		require.NoError(t, b.Register("v", "b"))
		require.NoError(t, b.Register("only_b", 2))

		merged := settings.Compose(a, b)
		spec, _ := merged.Spec("v")
		assert.Equal(t, "a", spec.Default)
		assert.Equal(t, 3, merged.Len())

		// Result is independent of the bases.
		require.NoError(t, merged.Register("v", "merged"))
		spec, _ = a.Spec("v")
		assert.Equal(t, "a", spec.Default)
	})
}
