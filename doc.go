// FILE: lixenwraith/settings/doc.go

// Package settings provides declarative configuration resolution for Go
// applications: a schema of named settings (default value plus optional
// explicit type) is resolved at read time against command-line
// overrides, environment variables, and declared defaults, with
// textual values coerced into the declared or inferred type.
//
// Features:
//   - Read-time precedence: CLI override > environment > default
//   - Type coercion from environment/CLI text: bool vocabulary,
//     numerics, arbitrary-precision decimals, JSON lists and maps,
//     dates/times/durations, UUIDs, paths, and custom parse hooks
//   - Optional and union types with a case-insensitive "none" sentinel
//   - Schema inheritance via Extend and Compose, most-derived wins
//   - Generated command-line surface (flag.FlagSet) driven by the schema
//   - Environment-only and frozen snapshot views
//   - Snapshot persistence in TOML, JSON, or YAML
//   - Struct scanning through mapstructure with type decode hooks
//   - Builder pattern for one-expression initialization
//
// Quick Start:
//
//	schema := settings.NewSchema()
//	schema.Register("host", "localhost")
//	schema.Register("port", 8080)
//	schema.Register("debug", false)
//
//	cfg := settings.New(schema)
//	if err := cfg.ParseCommandLine(os.Args[1:]); err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.String("host")
//	port, _ := cfg.Int64("port") // PORT=9000 in the environment wins over 8080
//
// Resolution is live: every Get re-reads the environment, so a value
// changed by the process between two reads shows through. Freeze
// captures an immutable point-in-time copy for code that must not see
// such changes; FromEnv captures only the settings that currently have
// a valid environment value.
//
// Thread Safety:
// The override store is written once, during command-line binding at
// startup, and read from any number of goroutines afterwards; all
// access is guarded by a read-write mutex. Sequence ParseCommandLine
// before spawning concurrent readers.
package settings
