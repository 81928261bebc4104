package addon

import "sort"

type resolveMark int

const (
	unresolved resolveMark = iota
	visiting
	resolved
)

// Resolve expands an addon selection to its transitive dependency closure.
// Dependencies missing from the selection are loaded lazily from the
// catalog; only a true cycle in the "requires" graph is fatal.
func (l *Loader) Resolve(selected map[string]*Definition) (map[string]*Definition, error) {
	r := &resolver{
		loader: l,
		marks:  make(map[string]resolveMark),
		result: make(map[string]*Definition),
	}

	// Deterministic traversal order keeps error chains stable.
	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.visit(name, selected[name], nil); err != nil {
			return nil, err
		}
	}
	return r.result, nil
}

type resolver struct {
	loader *Loader
	marks  map[string]resolveMark
	result map[string]*Definition
}

// visit resolves one addon depth-first, post-order: dependencies land in
// the result map before their dependents.
func (r *resolver) visit(name string, def *Definition, chain []string) error {
	switch r.marks[name] {
	case resolved:
		return nil
	case visiting:
		return &CircularDependencyError{Chain: append(chainCopy(chain), name)}
	}

	if def == nil {
		loaded, err := r.loader.Load(name)
		if err != nil {
			return err
		}
		def = loaded
	}

	r.marks[name] = visiting
	chain = append(chain, name)
	for _, dep := range def.Metadata.Requires {
		if err := r.visit(dep, nil, chain); err != nil {
			return err
		}
	}
	r.marks[name] = resolved
	r.result[name] = def
	return nil
}

// chainCopy detaches the chain from the shared traversal slice before it
// escapes into an error value.
func chainCopy(chain []string) []string {
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}
