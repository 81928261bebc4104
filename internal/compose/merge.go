package compose

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
)

// Descriptor is the unified deployment document produced by merging every
// addon's compose fragment.
type Descriptor struct {
	Services map[string]any `yaml:"services"`
	Volumes  map[string]any `yaml:"volumes,omitempty"`
	Networks map[string]any `yaml:"networks,omitempty"`
}

// fragment is the decoded form of one rendered addon fragment.
type fragment struct {
	Services map[string]any `yaml:"services"`
	Volumes  map[string]any `yaml:"volumes"`
	Networks map[string]any `yaml:"networks"`
}

// MergeFragments renders every resolved addon's compose fragment and merges
// the results into one descriptor. Services merge by name with the last
// addon winning on collision; unique addon naming is expected to avoid
// collisions in practice. Volumes and networks are namespaced with the
// project name unless already prefixed, and service-level references to them
// are rewritten to the namespaced names.
func MergeFragments(addons map[string]*addon.Definition, cfg *config.Project) (*Descriptor, error) {
	desc := &Descriptor{
		Services: make(map[string]any),
		Volumes:  make(map[string]any),
		Networks: make(map[string]any),
	}

	for _, name := range sortedNames(addons) {
		def := addons[name]
		frag, err := renderFragment(def, cfg)
		if err != nil {
			return nil, err
		}
		namespaceFragment(cfg.Name, frag)

		for svc, body := range frag.Services {
			desc.Services[svc] = body
		}
		for vol, body := range frag.Volumes {
			desc.Volumes[vol] = body
		}
		for net, body := range frag.Networks {
			desc.Networks[net] = body
		}
	}

	return desc, nil
}

// namespaceFragment renames the fragment's volume and network definitions
// with the project prefix and rewrites the matching service-level references,
// so a service never mounts a volume or joins a network the merged document
// does not define. Bind mounts and references to names the fragment does not
// define pass through untouched.
func namespaceFragment(project string, frag *fragment) {
	volumes := prefixKeys(project, frag.Volumes)
	networks := prefixKeys(project, frag.Networks)

	for name, body := range frag.Services {
		svc, ok := body.(map[string]any)
		if !ok {
			continue
		}
		if refs, ok := svc["volumes"]; ok {
			svc["volumes"] = rewriteVolumeRefs(refs, volumes)
		}
		if refs, ok := svc["networks"]; ok {
			svc["networks"] = rewriteNetworkRefs(refs, networks)
		}
		frag.Services[name] = svc
	}
}

// prefixKeys renames every key of m in place and returns the old-to-new
// mapping for reference rewriting.
func prefixKeys(project string, m map[string]any) map[string]string {
	renames := make(map[string]string, len(m))
	for name := range m {
		renames[name] = namespaced(project, name)
	}
	for old, renamed := range renames {
		if old == renamed {
			continue
		}
		m[renamed] = m[old]
		delete(m, old)
	}
	return renames
}

// rewriteVolumeRefs handles both the short "name:/path" string form and the
// long map form with a "source" key.
func rewriteVolumeRefs(refs any, renames map[string]string) any {
	list, ok := refs.([]any)
	if !ok {
		return refs
	}
	for i, entry := range list {
		switch ref := entry.(type) {
		case string:
			name, rest, found := strings.Cut(ref, ":")
			if renamed, ok := renames[name]; ok {
				if found {
					list[i] = renamed + ":" + rest
				} else {
					list[i] = renamed
				}
			}
		case map[string]any:
			if source, ok := ref["source"].(string); ok {
				if renamed, ok := renames[source]; ok {
					ref["source"] = renamed
				}
			}
		}
	}
	return list
}

// rewriteNetworkRefs handles both the list form and the map form keyed by
// network name.
func rewriteNetworkRefs(refs any, renames map[string]string) any {
	switch attached := refs.(type) {
	case []any:
		for i, entry := range attached {
			if name, ok := entry.(string); ok {
				if renamed, ok := renames[name]; ok {
					attached[i] = renamed
				}
			}
		}
		return attached
	case map[string]any:
		for name, body := range attached {
			if renamed, ok := renames[name]; ok && renamed != name {
				attached[renamed] = body
				delete(attached, name)
			}
		}
		return attached
	}
	return refs
}

// Encode serializes the descriptor to YAML. Map keys are emitted sorted, so
// encoding the same descriptor twice yields identical bytes.
func (d *Descriptor) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

func renderFragment(def *addon.Definition, cfg *config.Project) (*fragment, error) {
	tmpl, err := template.New(def.Name()).Option("missingkey=error").Parse(def.Fragment)
	if err != nil {
		return nil, fmt.Errorf("addon %q: failed to parse compose fragment: %w", def.Name(), err)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, buildContext(def, cfg)); err != nil {
		return nil, fmt.Errorf("addon %q: failed to render compose fragment: %w", def.Name(), err)
	}

	var frag fragment
	if err := yaml.Unmarshal(rendered.Bytes(), &frag); err != nil {
		return nil, fmt.Errorf("addon %q: rendered fragment is not valid YAML: %w", def.Name(), err)
	}
	return &frag, nil
}

func namespaced(project, name string) string {
	prefix := project + "_"
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

func sortedNames(addons map[string]*addon.Definition) []string {
	names := make([]string, 0, len(addons))
	for name := range addons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
