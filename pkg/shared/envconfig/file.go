package envconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed YAML configuration file with one section per adapter.
type File struct {
	sections map[string]yaml.Node
}

// LoadFile parses path. An empty path yields an empty File.
func LoadFile(path string) (*File, error) {
	f := &File{sections: map[string]yaml.Node{}}
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f.sections); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return f, nil
}

// Section decodes the named section into out. A missing section leaves out untouched.
func (f *File) Section(name string, out any) error {
	if f == nil {
		return nil
	}
	node, ok := f.sections[name]
	if !ok {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("decoding %s config: %w", name, err)
	}
	return nil
}

// Has reports whether the file contains the named section.
func (f *File) Has(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.sections[name]
	return ok
}
