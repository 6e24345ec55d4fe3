// FILE: lixenwraith/settings/cli.go
package settings

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags derives a flag.FlagSet from the schema: one long flag per
// setting, named after the setting with underscores replaced by
// dashes.
//
// Boolean settings defaulting to false become bare toggles
// (--debug); booleans defaulting to true become negated toggles
// (--no-debug); booleans without a default take one argument parsed
// through the boolean vocabulary. Container-typed settings (list, map)
// are not exposed as flags and can only be set via environment or
// default. Every other setting takes one argument whose raw text is
// re-coerced through the full engine at bind time, so union and
// "none" semantics survive.
func (s *Settings) Flags() (*flag.FlagSet, error) {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	used := make(map[string]bool)

	for _, name := range s.schema.Names() {
		spec, _ := s.schema.Spec(name)
		t := spec.effectiveType().first()

		if t.IsContainer() {
			continue // documented limitation
		}

		fname := flagName(name)
		usage := fmt.Sprintf("Setting: %s", name)
		if t.IsValid() {
			usage = fmt.Sprintf("Setting: %s (%s)", name, spec.effectiveType())
		}

		if t.Kind() == KindBool && spec.HasDefault {
			if b, ok := spec.Default.(bool); ok {
				if b {
					fname = "no-" + fname
				}
				if used[fname] {
					return nil, fmt.Errorf("%w: flag --%s is derived from more than one setting", ErrReservedName, fname)
				}
				used[fname] = true
				fs.Bool(fname, false, usage)
				continue
			}
		}

		if used[fname] {
			return nil, fmt.Errorf("%w: flag --%s is derived from more than one setting", ErrReservedName, fname)
		}
		used[fname] = true
		fs.String(fname, "", usage)
	}

	return fs, nil
}

// BindFlags writes values for flags that were actually present on the
// command line into the override store. Untouched flags never populate
// an override, so environment values keep their precedence over
// schema defaults.
func (s *Settings) BindFlags(fs *flag.FlagSet) error {
	var bindErrors []error

	fs.Visit(func(f *flag.Flag) {
		raw := f.Value.String()

		// Negated boolean toggle: --no-X present means X = false.
		if strings.HasPrefix(f.Name, "no-") {
			name := strings.ReplaceAll(strings.TrimPrefix(f.Name, "no-"), "-", "_")
			if spec, ok := s.schema.Spec(name); ok {
				if b, isBool := spec.Default.(bool); isBool && b {
					if set, err := strconv.ParseBool(raw); err == nil {
						if err := s.SetOverride(name, !set); err != nil {
							bindErrors = append(bindErrors, fmt.Errorf("flag --%s: %w", f.Name, err))
						}
					}
					return
				}
			}
		}

		name := strings.ReplaceAll(f.Name, "-", "_")
		spec, ok := s.schema.Spec(name)
		if !ok {
			return
		}

		value, err := coerce("", raw, spec.effectiveType())
		if err != nil {
			bindErrors = append(bindErrors, fmt.Errorf("flag --%s: %w", f.Name, err))
			return
		}
		if err := s.SetOverride(name, value); err != nil {
			bindErrors = append(bindErrors, fmt.Errorf("flag --%s: %w", f.Name, err))
		}
	})

	return errors.Join(bindErrors...)
}

// ParseCommandLine builds the flag set from the schema, parses args
// (typically os.Args[1:]), and binds the explicitly supplied flags
// into the override store.
func (s *Settings) ParseCommandLine(args []string) error {
	fs, err := s.Flags()
	if err != nil {
		return err
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse command line: %w", err)
	}
	return s.BindFlags(fs)
}
