package subnet

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyhook-sh/skyhook/internal/util/cidr"
)

func tablePath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "allocations.yaml")
}

func TestAllocate_FirstProject(t *testing.T) {
	a, err := Open(tablePath(t))
	require.NoError(t, err)

	alloc, err := a.Allocate("acme")
	require.NoError(t, err)
	assert.Equal(t, "10.1.0.0/16", alloc.VPC)
	assert.Equal(t, "172.21.0.0/24", alloc.Docker)
}

func TestAllocate_Idempotent(t *testing.T) {
	a, err := Open(tablePath(t))
	require.NoError(t, err)

	first, err := a.Allocate("acme")
	require.NoError(t, err)
	_, err = a.Allocate("beta")
	require.NoError(t, err)

	again, err := a.Allocate("acme")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestAllocate_NoOverlap(t *testing.T) {
	a, err := Open(tablePath(t))
	require.NoError(t, err)

	seen := make(map[string]string)
	for i := 0; i < 10; i++ {
		project := fmt.Sprintf("p%d", i)
		alloc, err := a.Allocate(project)
		require.NoError(t, err)
		for other, block := range seen {
			overlap, err := cidr.Overlap(alloc.VPC, block)
			require.NoError(t, err)
			assert.False(t, overlap, "%s overlaps %s", project, other)
		}
		seen[project] = alloc.VPC
	}
}

func TestAllocate_NeverAssignsOrchestratorBlocks(t *testing.T) {
	a, err := Open(tablePath(t))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		alloc, err := a.Allocate(fmt.Sprintf("p%d", i))
		require.NoError(t, err)
		assert.NotEqual(t, OrchestratorVPCSubnet, alloc.VPC)
		assert.NotEqual(t, OrchestratorDockerSubnet, alloc.Docker)
	}
}

func TestAllocate_SkipsTakenIndices(t *testing.T) {
	path := tablePath(t)
	a, err := Open(path)
	require.NoError(t, err)

	_, err = a.Allocate("acme") // 10.1.0.0/16
	require.NoError(t, err)
	_, err = a.Allocate("beta") // 10.2.0.0/16
	require.NoError(t, err)

	removed, err := a.Release("acme")
	require.NoError(t, err)
	assert.True(t, removed)

	// The freed first index is handed out again; beta's range stays taken.
	alloc, err := a.Allocate("gamma")
	require.NoError(t, err)
	assert.Equal(t, "10.1.0.0/16", alloc.VPC)
}

func TestRelease_UnknownProject(t *testing.T) {
	a, err := Open(tablePath(t))
	require.NoError(t, err)

	removed, err := a.Release("ghost")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAllocate_DockerPoolExhaustion(t *testing.T) {
	a, err := Open(tablePath(t))
	require.NoError(t, err)

	// The docker family has 11 assignable /24 blocks (172.21 .. 172.31).
	for i := 0; i < 11; i++ {
		_, err := a.Allocate(fmt.Sprintf("p%d", i))
		require.NoError(t, err)
	}

	_, err = a.Allocate("one-too-many")
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "docker", capErr.Family)
}

func TestOpen_PersistedTableSurvivesReopen(t *testing.T) {
	path := tablePath(t)
	a, err := Open(path)
	require.NoError(t, err)
	first, err := a.Allocate("acme")
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	alloc, ok := reopened.Lookup("acme")
	require.True(t, ok)
	assert.Equal(t, first, alloc)
}

func TestOpen_CorruptTable(t *testing.T) {
	path := tablePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestLookup_Unallocated(t *testing.T) {
	a, err := Open(tablePath(t))
	require.NoError(t, err)

	_, ok := a.Lookup("ghost")
	assert.False(t, ok)
}
