// FILE: lixenwraith/settings/errors.go
package settings

import "errors"

// Sentinel errors for the resolution and coercion taxonomy.
// All returned errors wrap one of these, so callers can classify
// failures with errors.Is without parsing messages.
var (
	// ErrInvalidBoolean indicates a textual value outside the accepted
	// true/false vocabulary (true/1/yes/on, false/0/no/off).
	ErrInvalidBoolean = errors.New("invalid boolean")

	// ErrInvalidNumeric indicates a numeric parser rejection. The native
	// parser's message is preserved in the wrapped error.
	ErrInvalidNumeric = errors.New("invalid numeric value")

	// ErrMalformedJSON indicates a container-typed value that is not
	// parseable JSON.
	ErrMalformedJSON = errors.New("invalid JSON")

	// ErrJSONTypeMismatch indicates a container value that parses as JSON
	// but is the wrong container kind (list where a map was declared, or
	// the reverse).
	ErrJSONTypeMismatch = errors.New("JSON type mismatch")

	// ErrUnionExhausted indicates that no member of a union type accepted
	// the value.
	ErrUnionExhausted = errors.New("no union member matched")

	// ErrNotConfigured is returned by Get when error-on-missing mode is
	// enabled and a setting has no override, no environment value, and no
	// default.
	ErrNotConfigured = errors.New("setting not configured")

	// ErrNotRegistered indicates an access to a setting name absent from
	// the schema.
	ErrNotRegistered = errors.New("setting not registered")

	// ErrReservedName indicates a setting name that collides with a
	// reserved command-line token. Raised at registration time.
	ErrReservedName = errors.New("reserved setting name")

	// ErrInvalidName indicates a setting name that is not a valid
	// identifier.
	ErrInvalidName = errors.New("invalid setting name")

	// ErrSnapshotNotFound is returned when loading a snapshot from a path
	// that does not exist.
	ErrSnapshotNotFound = errors.New("snapshot file not found")
)
