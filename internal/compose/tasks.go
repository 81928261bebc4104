package compose

import (
	"strconv"
	"strings"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
)

// MergeTasks concatenates every addon's provisioning task fragments after
// substituting {{ variable }} placeholders with context values. This is a
// plain string replacement, not a template language: unknown placeholders
// pass through untouched.
func MergeTasks(addons map[string]*addon.Definition, cfg *config.Project) (string, error) {
	var b strings.Builder
	for _, name := range sortedNames(addons) {
		def := addons[name]
		tasks := strings.TrimSpace(def.Tasks)
		if tasks == "" {
			continue
		}
		ctx := buildContext(def, cfg)
		b.WriteString(substituteTaskVars(tasks, ctx))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func substituteTaskVars(tasks string, ctx FragmentContext) string {
	pairs := map[string]string{
		"addon":                ctx.Addon,
		"instance":             ctx.Instance,
		"project":              ctx.Project,
		"version":              ctx.Version,
		"plan":                 ctx.Plan,
		"healthcheck_test":     ctx.Healthcheck.Test,
		"healthcheck_interval": ctx.Healthcheck.Interval,
		"healthcheck_timeout":  ctx.Healthcheck.Timeout,
		"healthcheck_retries":  strconv.Itoa(ctx.Healthcheck.Retries),
	}

	var oldnew []string
	for name, value := range pairs {
		oldnew = append(oldnew, "{{ "+name+" }}", value, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(oldnew...).Replace(tasks)
}
