package framework

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single framework from YAML and validates it. The
// framework is not registered — callers decide whether it joins the
// registry.
func Parse(data []byte) (*Framework, error) {
	var f Framework
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing framework yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile parses and registers a framework from a YAML file.
func LoadFile(path string) (*Framework, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading framework file %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("framework file %s: %w", path, err)
	}
	if err := Register(f); err != nil {
		return nil, fmt.Errorf("framework file %s: %w", path, err)
	}
	return f, nil
}

// LoadDir registers every *.yaml / *.yml framework under dir. A missing
// directory is not an error — custom frameworks are optional. Files
// that fail to parse are skipped and reported in the returned error
// list so one bad file doesn't block the rest.
func LoadDir(dir string) (loaded []string, errs []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("reading framework dir %s: %w", dir, err)}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		f, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		loaded = append(loaded, f.Key)
	}
	return loaded, errs
}
