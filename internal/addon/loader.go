package addon

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/skyhook-sh/skyhook/internal/config"
)

const (
	metadataFile = "addon.yaml"
	fragmentFile = "compose.yaml.tmpl"
	envFile      = "env.yaml"
	tasksFile    = "tasks.yaml"
)

// Loader reads addon definitions from a catalog directory. Successful loads
// are cached for the loader's lifetime; create one loader per planning run.
type Loader struct {
	dir   string
	cache map[string]*Definition
}

// NewLoader creates a loader for the catalog rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*Definition),
	}
}

// Load reads one addon definition by name, returning the cached copy on
// repeat calls.
func (l *Loader) Load(name string) (*Definition, error) {
	if def, ok := l.cache[name]; ok {
		return def, nil
	}

	dir := filepath.Join(l.dir, name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, &NotFoundError{Addon: name, Path: dir}
	}

	meta, err := l.readMetadata(name, dir)
	if err != nil {
		return nil, err
	}
	fragment, err := l.readFile(name, dir, fragmentFile)
	if err != nil {
		return nil, err
	}
	env, err := l.readEnvSchema(name, dir)
	if err != nil {
		return nil, err
	}
	tasks, err := l.readFile(name, dir, tasksFile)
	if err != nil {
		return nil, err
	}

	def := &Definition{
		Metadata: *meta,
		Fragment: string(fragment),
		Env:      env,
		Tasks:    string(tasks),
		Dir:      dir,
	}
	l.cache[name] = def
	return def, nil
}

// LoadForProject loads every addon type referenced by the project
// configuration and expands the set to its transitive dependency closure.
func (l *Loader) LoadForProject(cfg *config.Project) (map[string]*Definition, error) {
	selected := make(map[string]*Definition)
	for _, name := range cfg.ReferencedAddonTypes() {
		def, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		selected[name] = def
	}
	return l.Resolve(selected)
}

// KnownTypes lists every addon name present in the catalog, sorted. The
// listing does not validate the definitions; broken addons still surface
// here so validation can warn instead of erroring on unknown types.
func (l *Loader) KnownTypes() (map[string]bool, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read addon catalog: %w", err)
	}
	known := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			known[entry.Name()] = true
		}
	}
	return known, nil
}

// CatalogNames returns the sorted addon names in the catalog.
func (l *Loader) CatalogNames() ([]string, error) {
	known, err := l.KnownTypes()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (l *Loader) readMetadata(name, dir string) (*Metadata, error) {
	data, err := l.readFile(name, dir, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, &InvalidDefinitionError{Addon: name, Reason: fmt.Sprintf("malformed %s: %v", metadataFile, err)}
	}

	switch {
	case meta.Name == "":
		return nil, &InvalidDefinitionError{Addon: name, Reason: "metadata field 'name' is required"}
	case meta.Description == "":
		return nil, &InvalidDefinitionError{Addon: name, Reason: "metadata field 'description' is required"}
	case meta.Version == "":
		return nil, &InvalidDefinitionError{Addon: name, Reason: "metadata field 'version' is required"}
	case meta.Name != name:
		// Guards against copy-pasted metadata left pointing at another addon.
		return nil, &InvalidDefinitionError{
			Addon:  name,
			Reason: fmt.Sprintf("declared name %q does not match directory name %q", meta.Name, name),
		}
	}

	return &meta, nil
}

func (l *Loader) readEnvSchema(name, dir string) ([]EnvVar, error) {
	data, err := l.readFile(name, dir, envFile)
	if err != nil {
		return nil, err
	}

	var env []EnvVar
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, &InvalidDefinitionError{Addon: name, Reason: fmt.Sprintf("malformed %s: %v", envFile, err)}
	}
	for _, v := range env {
		if v.Name == "" {
			return nil, &InvalidDefinitionError{Addon: name, Reason: "env schema entry without a name"}
		}
	}
	return env, nil
}

func (l *Loader) readFile(name, dir, file string) ([]byte, error) {
	path := filepath.Join(dir, file)
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, &NotFoundError{Addon: name, Path: path}
	}
	return data, nil
}
