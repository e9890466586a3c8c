package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for scene files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown scene format")

// Format is a scene description encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf guesses the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Parse decodes and links a scene description.
func Parse(data []byte, format Format) (*Scene, error) {
	s := &Scene{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, s)
	case FormatTOML:
		err = toml.Unmarshal(data, s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s scene: %w", format, err)
	}
	if err := s.Link(); err != nil {
		return nil, fmt.Errorf("linking scene: %w", err)
	}
	return s, nil
}

// Load reads a scene description from disk.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data, format)
}
