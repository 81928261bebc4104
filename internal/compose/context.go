package compose

import (
	"strings"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
)

// FragmentContext is the data made available to a compose fragment template.
type FragmentContext struct {
	Project string
	Addon   string
	// Instance is the configured instance's full name, or the addon name
	// for dependency-only addons with no configured instance.
	Instance    string
	Type        string
	Version     string
	Plan        string
	Options     map[string]string
	Vars        map[string]string // uppercase-prefixed variables from options
	Healthcheck addon.Healthcheck
	Monitoring  config.MonitoringConfig
}

// buildContext assembles the render context for one addon within a project.
// If the project configures an instance of the addon's type, its options,
// plan and version override the definition defaults; dependency-only addons
// render with the declared metadata alone.
func buildContext(def *addon.Definition, cfg *config.Project) FragmentContext {
	ctx := FragmentContext{
		Project:     cfg.Name,
		Addon:       def.Name(),
		Instance:    def.Name(),
		Type:        def.Name(),
		Version:     def.Metadata.Version,
		Options:     map[string]string{},
		Healthcheck: def.Metadata.Healthcheck,
		Monitoring:  cfg.Monitoring,
	}

	for _, ref := range cfg.Instances() {
		if ref.Instance.Type != def.Name() {
			continue
		}
		ctx.Instance = ref.FullName()
		ctx.Plan = ref.Instance.Plan
		if ref.Instance.Version != "" {
			ctx.Version = ref.Instance.Version
		}
		for k, v := range ref.Instance.Options {
			ctx.Options[k] = v
		}
		break // first instance wins; fragments are rendered once per addon type
	}

	ctx.Vars = optionVars(def.Name(), ctx.Options)
	return ctx
}

// optionVars derives uppercase template variables from instance options,
// e.g. postgres + max_connections -> POSTGRES_MAX_CONNECTIONS.
func optionVars(addonName string, options map[string]string) map[string]string {
	vars := make(map[string]string, len(options))
	prefix := sanitizeVarName(addonName)
	for key, value := range options {
		vars[prefix+"_"+sanitizeVarName(key)] = value
	}
	return vars
}

func sanitizeVarName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
