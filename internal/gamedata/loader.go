package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/monsterarena/data"
)

// DefaultFile is the embedded catalog used when no configuration is given.
const DefaultFile = "arena.json"

// Format identifies a configuration encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks a format by file extension. Anything that is not
// JSON or YAML is read as the line format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := data.FS().ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// Decode parses configuration content in the given format.
func Decode(content []byte, format Format) (File, error) {
	var file File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return File{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return File{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return ParseText(bytes.NewReader(content))
	}
	return file, nil
}

// LoadFile reads a configuration file from disk.
func LoadFile(path string) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	file, err := Decode(content, FormatFromPath(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}
