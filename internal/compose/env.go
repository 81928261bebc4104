package compose

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
	"github.com/skyhook-sh/skyhook/internal/util/cidr"
)

// coreHostNum is the conventional host number of the core VM inside the
// project subnet: 10.N.0.0/16 -> 10.N.0.10.
const coreHostNum = 10

// MergeEnvironment resolves every addon's environment variable schema into
// one flat KEY=value listing with per-addon section comments.
//
// Generated credentials are derived deterministically from the project,
// addon and variable names, so re-running the merge never churns secrets
// and repeated runs produce byte-identical output.
func MergeEnvironment(addons map[string]*addon.Definition, cfg *config.Project) (string, error) {
	coreIP, err := coreVMIP(cfg)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, name := range sortedNames(addons) {
		def := addons[name]
		if len(def.Env) == 0 {
			continue
		}
		fmt.Fprintf(&b, "# --- %s ---\n", name)
		for _, v := range def.Env {
			value, err := resolveEnvVar(v, cfg.Name, name, coreIP)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "%s=%s\n", v.Name, value)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func resolveEnvVar(v addon.EnvVar, project, addonName, coreIP string) (string, error) {
	switch {
	case v.Generate == "password":
		return derivedSecret(project, addonName, v.Name, 32), nil
	case v.Generate == "username":
		return "u_" + derivedSecret(project, addonName, v.Name, 10), nil
	case v.Generate != "":
		return "", fmt.Errorf("addon %q: env var %q has unknown generation rule %q", addonName, v.Name, v.Generate)
	case v.Value != "":
		value := strings.ReplaceAll(v.Value, "{{project}}", project)
		value = strings.ReplaceAll(value, "{{core_ip}}", coreIP)
		return value, nil
	default:
		return v.Default, nil
	}
}

// derivedSecret derives a stable hex credential from the identifying triple.
func derivedSecret(project, addonName, varName string, length int) string {
	sum := sha256.Sum256([]byte(project + "/" + addonName + "/" + varName))
	return hex.EncodeToString(sum[:])[:length]
}

// coreVMIP computes the core VM address from the project subnet using the
// third-octet convention. An explicit core VM IP in the config wins.
func coreVMIP(cfg *config.Project) (string, error) {
	if vm, ok := cfg.VMs["core"]; ok && vm.IP != "" {
		return vm.IP, nil
	}
	if cfg.Network.Subnet == "" {
		return "", fmt.Errorf("project %q has no subnet, cannot derive core VM address", cfg.Name)
	}
	ip, err := cidr.Host(cfg.Network.Subnet, coreHostNum)
	if err != nil {
		return "", fmt.Errorf("project %q: %w", cfg.Name, err)
	}
	return ip, nil
}
