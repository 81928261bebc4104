package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store reads and writes persisted project configurations from a directory,
// one <project>.yaml per project. It is the side channel the validation
// engine uses for cross-project conflict checks.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the configuration file path for a project.
func (s *Store) Path(project string) string {
	return filepath.Join(s.dir, project+".yaml")
}

// Load reads one project's configuration.
func (s *Store) Load(project string) (*Project, error) {
	return LoadFile(s.Path(project))
}

// Save writes a project's configuration to the store.
func (s *Store) Save(p *Project) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project %s: %w", p.Name, err)
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(s.Path(p.Name), data, 0o600); err != nil {
		return fmt.Errorf("failed to write project %s: %w", p.Name, err)
	}
	return nil
}

// Delete removes a project's configuration. Missing files are not an error.
func (s *Store) Delete(project string) error {
	err := os.Remove(s.Path(project))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete project %s: %w", project, err)
	}
	return nil
}

// List returns the names of all persisted projects, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Others loads every persisted project except the named one. Projects that
// fail to parse are skipped; a single broken config must not make every
// other project unplannable.
func (s *Store) Others(project string) ([]*Project, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	var others []*Project
	for _, name := range names {
		if name == project {
			continue
		}
		cfg, err := s.Load(name)
		if err != nil {
			continue
		}
		others = append(others, cfg)
	}
	return others, nil
}
