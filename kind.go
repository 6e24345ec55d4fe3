// FILE: lixenwraith/settings/kind.go
package settings

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies the value kind a setting resolves to.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindDecimal
	KindList
	KindMap
	KindTime
	KindDate
	KindClock
	KindDuration
	KindUUID
	KindPath
	KindCustom
	KindUnion
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDecimal:
		return "decimal"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindTime:
		return "time"
	case KindDate:
		return "date"
	case KindClock:
		return "clock"
	case KindDuration:
		return "duration"
	case KindUUID:
		return "uuid"
	case KindPath:
		return "path"
	case KindCustom:
		return "custom"
	case KindUnion:
		return "union"
	default:
		return "invalid"
	}
}

// ParseFunc converts a raw string into a custom-typed value.
// Errors returned by a ParseFunc propagate to the caller verbatim.
type ParseFunc func(s string) (any, error)

// Type describes the declared type of a setting. The zero Type is the
// identity type: raw strings pass through coercion unchanged.
type Type struct {
	kind     Kind
	nullable bool
	members  []Type // union member types, in declared order
	parse    ParseFunc
	name     string // display name for custom types
}

// Kind returns the value kind.
func (t Type) Kind() Kind { return t.kind }

// IsValid reports whether the type carries any declaration at all.
func (t Type) IsValid() bool { return t.kind != KindInvalid }

// IsUnion reports whether the type is a union of member types.
func (t Type) IsUnion() bool { return t.kind == KindUnion }

// IsNullable reports whether null is a member of the type, i.e. whether
// the "none" sentinel resolves to nil.
func (t Type) IsNullable() bool { return t.nullable }

// IsContainer reports whether the type is a JSON-parsed container.
func (t Type) IsContainer() bool { return t.kind == KindList || t.kind == KindMap }

// String returns a display form of the type, e.g. "int",
// "optional[string]" or "union[int|float]".
func (t Type) String() string {
	var base string
	switch t.kind {
	case KindUnion:
		names := make([]string, len(t.members))
		for i, m := range t.members {
			names[i] = m.String()
		}
		base = "union[" + strings.Join(names, "|") + "]"
	case KindCustom:
		base = t.name
		if base == "" {
			base = "custom"
		}
	default:
		base = t.kind.String()
	}
	if t.nullable && t.kind != KindUnion {
		return "optional[" + base + "]"
	}
	return base
}

// first returns the first union member for unions, or the type itself
// otherwise. The command surface registers flags with union wrapping
// stripped to the first member.
func (t Type) first() Type {
	if t.kind == KindUnion && len(t.members) > 0 {
		return t.members[0]
	}
	return t
}

// Type constructors.

func String() Type   { return Type{kind: KindString} }
func Int() Type      { return Type{kind: KindInt} }
func Float() Type    { return Type{kind: KindFloat} }
func Bool() Type     { return Type{kind: KindBool} }
func Decimal() Type  { return Type{kind: KindDecimal} }
func List() Type     { return Type{kind: KindList} }
func Map() Type      { return Type{kind: KindMap} }
func Time() Type     { return Type{kind: KindTime} }
func Date() Type     { return Type{kind: KindDate} }
func Clock() Type    { return Type{kind: KindClock} }
func Duration() Type { return Type{kind: KindDuration} }
func UUID() Type     { return Type{kind: KindUUID} }
func Path() Type     { return Type{kind: KindPath} }

// Custom declares a setting type converted by fn. A nil fn declares a
// type without string conversion: the raw string passes through
// coercion unchanged.
func Custom(name string, fn ParseFunc) Type {
	return Type{kind: KindCustom, name: name, parse: fn}
}

// Optional makes null a member of t. Coercing the case-insensitive
// token "none" into an optional type yields nil.
func Optional(t Type) Type {
	t.nullable = true
	return t
}

// Union declares a type whose members are attempted in order during
// coercion; the first member that converts without error wins. The
// union is nullable if any member is.
func Union(members ...Type) Type {
	u := Type{kind: KindUnion, members: members}
	for _, m := range members {
		if m.nullable {
			u.nullable = true
		}
	}
	return u
}

// inferType derives a Type from the runtime type of a default value.
// Unrecognized types yield the identity type.
func inferType(v any) Type {
	switch v.(type) {
	case nil:
		return Type{}
	case string:
		return String()
	case bool:
		return Bool()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int()
	case float32, float64:
		return Float()
	case decimal.Decimal:
		return Decimal()
	case uuid.UUID:
		return UUID()
	case time.Time:
		return Time()
	case time.Duration:
		return Duration()
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return List()
	case reflect.Map:
		return Map()
	}

	return Type{}
}
