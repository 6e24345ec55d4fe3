// FILE: lixenwraith/settings/snapshot_io.go
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Save writes the snapshot to a file, atomically, in the format
// implied by the path extension (.toml, .json, .yaml/.yml; TOML when
// the extension is unrecognized). Nil-valued settings are omitted:
// the file records configured values only.
func (v *Snapshot) Save(path string) error {
	format := detectFileFormat(path)
	if format == "" {
		format = "toml"
	}

	data := make(map[string]any, len(v.values))
	for name, value := range v.values {
		if value == nil {
			continue
		}
		data[name] = marshalValue(value)
	}

	var encoded []byte
	switch format {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return fmt.Errorf("failed to marshal snapshot to TOML: %w", err)
		}
		encoded = buf.Bytes()
	case "json":
		var err error
		encoded, err = json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot to JSON: %w", err)
		}
	case "yaml":
		var err error
		encoded, err = yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot to YAML: %w", err)
		}
	}

	return atomicWriteFile(path, encoded)
}

// LoadSnapshot reads a snapshot file written by Save. The format is
// detected from the extension, falling back to content sniffing.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, path)
		}
		return nil, fmt.Errorf("failed to read snapshot file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine snapshot format for file '%s'", path)
		}
	}

	values := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse TOML snapshot file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&values); err != nil {
			return nil, fmt.Errorf("failed to parse JSON snapshot file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse YAML snapshot file '%s': %w", path, err)
		}
	}

	snap := &Snapshot{values: values}
	snap.order = make([]string, 0, len(values))
	for name := range values {
		snap.order = append(snap.order, name)
	}
	sort.Strings(snap.order)

	return snap, nil
}

// marshalValue renders domain value types in their canonical textual
// form so every snapshot format can carry them.
func marshalValue(v any) any {
	switch val := v.(type) {
	case uuid.UUID:
		return val.String()
	case decimal.Decimal:
		return val.String()
	case time.Duration:
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = marshalValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = marshalValue(elem)
		}
		return out
	default:
		return v
	}
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML: YAML accepts almost anything
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
