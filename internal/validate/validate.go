package validate

import (
	"fmt"
	"net"
	"sort"
	"strconv"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
	"github.com/skyhook-sh/skyhook/internal/util/cidr"
)

const (
	minDiskSizeGB     = 10
	diskSizeWarningGB = 10000
	maxPort           = 65535
)

// Validate runs every check against the project and returns the complete
// issue list. resolved is the project's resolved addon set, knownTypes the
// addon catalog (nil disables the unknown-type check), and others the
// persisted configurations of every other project sharing the address space.
func Validate(cfg *config.Project, resolved map[string]*addon.Definition, knownTypes map[string]bool, others []*config.Project) []Issue {
	var issues []Issue
	issues = append(issues, checkForgejoFields(cfg)...)
	issues = append(issues, checkVMs(cfg)...)
	issues = append(issues, checkAddonTypes(cfg, knownTypes)...)
	issues = append(issues, checkSubnetConflicts(cfg, others)...)
	issues = append(issues, checkPortConflicts(cfg, others)...)
	issues = append(issues, checkStaticIPs(cfg)...)
	issues = append(issues, checkAddonGraph(resolved)...)
	issues = append(issues, checkAttachments(cfg)...)
	return issues
}

func checkForgejoFields(cfg *config.Project) []Issue {
	var issues []Issue
	fj := cfg.Infrastructure.Forgejo

	issues = append(issues, checkPortField("infrastructure.forgejo.port", fj.Port)...)
	issues = append(issues, checkPortField("infrastructure.forgejo.ssh_port", fj.SSHPort)...)

	for field, value := range map[string]string{
		"infrastructure.forgejo.admin_user": fj.AdminUser,
		"infrastructure.forgejo.org":        fj.Org,
		"infrastructure.forgejo.repo":       fj.Repo,
	} {
		if value == "" {
			issues = append(issues, errorf(KindMissingField, "%s is required", field))
		}
	}
	sortIssues(issues)
	return issues
}

func checkPortField(field string, port int) []Issue {
	switch {
	case port == 0:
		return []Issue{errorf(KindMissingField, "%s is required", field)}
	case port < 1 || port > maxPort:
		return []Issue{errorf(KindInvalidPort, "%s must be between 1 and %d, got %d", field, maxPort, port)}
	}
	return nil
}

func checkVMs(cfg *config.Project) []Issue {
	var issues []Issue
	for _, role := range sortedKeys(cfg.VMs) {
		vm := cfg.VMs[role]
		if vm.MachineType == "" {
			issues = append(issues, errorf(KindVMResources, "vm %q: machine_type is required", role))
		}
		if vm.Image == "" {
			issues = append(issues, errorf(KindVMResources, "vm %q: image is required", role))
		}
		if vm.DiskSize != 0 {
			if vm.DiskSize < minDiskSizeGB {
				issues = append(issues, errorf(KindVMResources, "vm %q: disk_size must be at least %dGB, got %d", role, minDiskSizeGB, vm.DiskSize))
			} else if vm.DiskSize > diskSizeWarningGB {
				issues = append(issues, warnf(KindVMResources, "vm %q: disk_size %dGB exceeds %dGB, check for a unit mistake", role, vm.DiskSize, diskSizeWarningGB))
			}
		}
	}
	return issues
}

// checkAddonTypes warns about addon types missing from the catalog. It is a
// warning only so validation stays usable without a full catalog; nil
// knownTypes disables the check entirely.
func checkAddonTypes(cfg *config.Project, knownTypes map[string]bool) []Issue {
	if knownTypes == nil {
		return nil
	}
	var issues []Issue
	for _, name := range cfg.ReferencedAddonTypes() {
		if !knownTypes[name] {
			issues = append(issues, warnf(KindUnknownAddon, "addon type %q is not in the catalog", name))
		}
	}
	return issues
}

func checkSubnetConflicts(cfg *config.Project, others []*config.Project) []Issue {
	var issues []Issue

	subnet := cfg.Network.Subnet
	if subnet == "" {
		return []Issue{errorf(KindMissingField, "network.subnet is required")}
	}
	if _, _, err := net.ParseCIDR(subnet); err != nil {
		return []Issue{errorf(KindSubnetConflict, "network.subnet %q is not a valid CIDR", subnet)}
	}

	for _, other := range others {
		if other.Network.Subnet == "" {
			continue
		}
		overlap, err := cidr.Overlap(subnet, other.Network.Subnet)
		if err != nil {
			continue // the other project's subnet is malformed, not our problem
		}
		if overlap {
			issues = append(issues, errorf(KindSubnetConflict,
				"subnet %s of project %q overlaps subnet %s of project %q",
				subnet, cfg.Name, other.Network.Subnet, other.Name))
		}
	}
	sortIssues(issues)
	return issues
}

func checkPortConflicts(cfg *config.Project, others []*config.Project) []Issue {
	var issues []Issue
	mine := declaredPorts(cfg)

	for _, other := range others {
		theirs := declaredPorts(other)
		for _, port := range sortedPortKeys(mine) {
			if owner, taken := theirs[port]; taken {
				issues = append(issues, errorf(KindPortConflict,
					"port %d (%s) is already used by %s in project %q",
					port, mine[port], owner, other.Name))
			}
		}
	}
	sortIssues(issues)
	return issues
}

// declaredPorts collects every port the project claims, mapped to a
// human-readable owner description.
func declaredPorts(cfg *config.Project) map[int]string {
	ports := make(map[int]string)
	claim := func(port int, owner string) {
		if port == 0 {
			return
		}
		if _, dup := ports[port]; !dup {
			ports[port] = owner
		}
	}

	claim(cfg.Infrastructure.Forgejo.Port, "forgejo")
	claim(cfg.Infrastructure.Forgejo.SSHPort, "forgejo ssh")
	if cfg.Monitoring.Enabled {
		claim(cfg.Monitoring.Port, "monitoring")
	}
	for _, name := range sortedKeys(cfg.Apps) {
		claim(cfg.Apps[name].Port, fmt.Sprintf("app %s", name))
	}
	for _, ref := range cfg.Instances() {
		if raw, ok := ref.Instance.Options["port"]; ok {
			if port, err := strconv.Atoi(raw); err == nil {
				claim(port, fmt.Sprintf("addon %s", ref.FullName()))
			}
		}
	}
	return ports
}

func checkStaticIPs(cfg *config.Project) []Issue {
	var issues []Issue
	subnet := cfg.Network.Subnet
	if subnet != "" {
		if _, _, err := net.ParseCIDR(subnet); err != nil {
			// A malformed subnet is reported by the subnet checks; containment
			// against it is meaningless and must not blame the IPs.
			subnet = ""
		}
	}
	seen := make(map[string]string) // ip -> owner

	check := func(ip, owner string) {
		if ip == "" {
			return
		}
		if net.ParseIP(ip) == nil {
			issues = append(issues, errorf(KindIPConflict, "%s has invalid static IP %q", owner, ip))
			return
		}
		if subnet != "" {
			if inside, err := cidr.Contains(subnet, ip); err == nil && !inside {
				issues = append(issues, errorf(KindIPConflict, "%s IP %s is outside subnet %s", owner, ip, subnet))
			}
		}
		if prev, dup := seen[ip]; dup {
			issues = append(issues, errorf(KindIPConflict, "IP %s is assigned to both %s and %s", ip, prev, owner))
			return
		}
		seen[ip] = owner
	}

	for _, role := range sortedKeys(cfg.VMs) {
		check(cfg.VMs[role].IP, fmt.Sprintf("vm %s", role))
	}
	for _, name := range sortedKeys(cfg.Apps) {
		check(cfg.Apps[name].IP, fmt.Sprintf("app %s", name))
	}
	return issues
}

// checkAddonGraph re-verifies requires/conflicts against the resolved set.
// Resolution auto-loads dependencies, so a missing dependency here means a
// configuration disabled an addon after its dependents were resolved.
func checkAddonGraph(resolved map[string]*addon.Definition) []Issue {
	var issues []Issue
	for _, name := range sortedKeys(resolved) {
		def := resolved[name]
		for _, dep := range def.Metadata.Requires {
			if _, ok := resolved[dep]; !ok {
				issues = append(issues, errorf(KindAddonDependency,
					"addon %q requires %q, which is not in the resolved set", name, dep))
			}
		}
		for _, enemy := range def.Metadata.Conflicts {
			if _, ok := resolved[enemy]; ok {
				issues = append(issues, errorf(KindAddonConflict,
					"addon %q conflicts with %q, both are selected", name, enemy))
			}
		}
	}
	return issues
}

// checkAttachments warns about addon instances no application is bound to.
func checkAttachments(cfg *config.Project) []Issue {
	attached := make(map[string]bool)
	for _, app := range cfg.Apps {
		for _, att := range app.Attachments {
			attached[att.Addon] = true
		}
	}

	var issues []Issue
	for _, ref := range cfg.Instances() {
		if !attached[ref.FullName()] {
			issues = append(issues, warnf(KindUnattachedAddon,
				"addon instance %q has no application attachments", ref.FullName()))
		}
	}
	return issues
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPortKeys(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// sortIssues orders issues by message so the report is stable regardless of
// the scan order of other projects.
func sortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Message < issues[j].Message
	})
}
