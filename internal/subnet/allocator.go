package subnet

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skyhook-sh/skyhook/internal/util/cidr"
)

const (
	// OrchestratorVPCSubnet is the orchestrator's own reserved /16.
	OrchestratorVPCSubnet = "10.0.0.0/16"
	// OrchestratorDockerSubnet is the orchestrator's own reserved /24.
	OrchestratorDockerSubnet = "172.20.0.0/24"

	// firstUsableIndex skips the orchestrator's reservation at index 0.
	firstUsableIndex = 1

	// maxVPCIndex bounds the /16 family: 10.1.0.0/16 .. 10.255.0.0/16.
	maxVPCIndex = 255
	// maxDockerIndex bounds the /24 family inside the Docker private range
	// 172.20.0.0 .. 172.31.0.0 (12 indices including the reservation).
	maxDockerIndex = 11

	dockerBaseOctet = 20
)

// Allocation is one project's pair of assigned ranges.
type Allocation struct {
	VPC    string
	Docker string
}

// CapacityError indicates a pool has no free index left.
type CapacityError struct {
	Family string
	Limit  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s subnet pool exhausted: all %d indices in use", e.Family, e.Limit)
}

// table is the on-disk shape of the allocation file.
type table struct {
	VPCSubnets    map[string]string `yaml:"vpcSubnets"`
	DockerSubnets map[string]string `yaml:"dockerSubnets"`
}

// Allocator owns the persisted allocation table. Callers must ensure at most
// one allocator mutates the table at a time; the file is rewritten whole on
// every change and there is no internal locking.
type Allocator struct {
	path  string
	state table
}

// Open loads the allocation table from path, creating an empty table if the
// file does not exist yet.
func Open(path string) (*Allocator, error) {
	a := &Allocator{
		path: path,
		state: table{
			VPCSubnets:    make(map[string]string),
			DockerSubnets: make(map[string]string),
		},
	}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return a, nil
		}
		return nil, fmt.Errorf("failed to read allocation table: %w", err)
	}
	if err := yaml.Unmarshal(data, &a.state); err != nil {
		return nil, fmt.Errorf("failed to parse allocation table: %w", err)
	}
	if a.state.VPCSubnets == nil {
		a.state.VPCSubnets = make(map[string]string)
	}
	if a.state.DockerSubnets == nil {
		a.state.DockerSubnets = make(map[string]string)
	}
	return a, nil
}

// Allocate assigns a VPC and a Docker range to the project. Repeat calls for
// an already-allocated project return the existing assignment unchanged.
func (a *Allocator) Allocate(project string) (Allocation, error) {
	existingVPC, hasVPC := a.state.VPCSubnets[project]
	existingDocker, hasDocker := a.state.DockerSubnets[project]
	if hasVPC && hasDocker {
		return Allocation{VPC: existingVPC, Docker: existingDocker}, nil
	}

	vpc := existingVPC
	if !hasVPC {
		idx, err := a.freeIndex(a.state.VPCSubnets, vpcCIDR, maxVPCIndex, "vpc")
		if err != nil {
			return Allocation{}, err
		}
		vpc, err = vpcCIDR(idx)
		if err != nil {
			return Allocation{}, err
		}
	}

	docker := existingDocker
	if !hasDocker {
		idx, err := a.freeIndex(a.state.DockerSubnets, dockerCIDR, maxDockerIndex, "docker")
		if err != nil {
			return Allocation{}, err
		}
		docker, err = dockerCIDR(idx)
		if err != nil {
			return Allocation{}, err
		}
	}

	a.state.VPCSubnets[project] = vpc
	a.state.DockerSubnets[project] = docker
	if err := a.persist(); err != nil {
		return Allocation{}, err
	}
	return Allocation{VPC: vpc, Docker: docker}, nil
}

// Lookup returns the project's allocation without mutating anything.
func (a *Allocator) Lookup(project string) (Allocation, bool) {
	vpc, ok := a.state.VPCSubnets[project]
	if !ok {
		return Allocation{}, false
	}
	return Allocation{VPC: vpc, Docker: a.state.DockerSubnets[project]}, true
}

// Release removes the project from both pools and persists. It reports
// whether anything was actually removed.
func (a *Allocator) Release(project string) (bool, error) {
	_, hadVPC := a.state.VPCSubnets[project]
	_, hadDocker := a.state.DockerSubnets[project]
	if !hadVPC && !hadDocker {
		return false, nil
	}
	delete(a.state.VPCSubnets, project)
	delete(a.state.DockerSubnets, project)
	if err := a.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// freeIndex scans upward from the first usable index and returns the first
// one whose CIDR is not taken by any project. Exhaustion is a hard error,
// never a silent wrap.
func (a *Allocator) freeIndex(pool map[string]string, toCIDR func(int) (string, error), limit int, family string) (int, error) {
	taken := make(map[string]bool, len(pool))
	for _, block := range pool {
		taken[block] = true
	}
	for idx := firstUsableIndex; idx <= limit; idx++ {
		block, err := toCIDR(idx)
		if err != nil {
			return 0, err
		}
		if !taken[block] {
			return idx, nil
		}
	}
	return 0, &CapacityError{Family: family, Limit: limit + 1}
}

func vpcCIDR(idx int) (string, error) {
	return cidr.Subnet("10.0.0.0/8", 8, idx)
}

func dockerCIDR(idx int) (string, error) {
	return cidr.Subnet("172.0.0.0/8", 16, (dockerBaseOctet+idx)*256)
}

// persist rewrites the table atomically: write to a temp file in the same
// directory, then rename over the old one.
func (a *Allocator) persist() error {
	data, err := yaml.Marshal(&a.state)
	if err != nil {
		return fmt.Errorf("failed to marshal allocation table: %w", err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create allocation dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".allocations-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp allocation file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write allocation table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close allocation table: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace allocation table: %w", err)
	}
	return nil
}
