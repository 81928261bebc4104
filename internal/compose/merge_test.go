package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
)

func testConfig() *config.Project {
	return &config.Project{
		Name:    "acme",
		Network: config.NetworkConfig{Subnet: "10.1.0.0/16"},
		Addons: map[string]map[string]config.AddonInstance{
			"databases": {
				"primary": {
					Type:    "postgres",
					Version: "16",
					Plan:    "small",
					Options: map[string]string{"max_connections": "200"},
				},
			},
		},
	}
}

func postgresDef() *addon.Definition {
	return &addon.Definition{
		Metadata: addon.Metadata{
			Name:        "postgres",
			Description: "PostgreSQL database",
			Version:     "15",
			Healthcheck: addon.Healthcheck{Test: "pg_isready", Interval: "10s", Timeout: "5s", Retries: 3},
		},
		Fragment: `services:
  {{ .Addon }}:
    image: postgres:{{ .Version }}
    environment:
      POSTGRES_MAX_CONNECTIONS: "{{ index .Vars "POSTGRES_MAX_CONNECTIONS" }}"
volumes:
  pgdata: {}
networks:
  backend: {}
`,
		Env: []addon.EnvVar{
			{Name: "POSTGRES_HOST", Value: "{{core_ip}}"},
			{Name: "POSTGRES_USER", Generate: "username"},
			{Name: "POSTGRES_PASSWORD", Generate: "password"},
			{Name: "POSTGRES_DB", Default: "app"},
		},
		Tasks: "- name: provision {{ addon }} {{ version }} for {{ project }}\n",
	}
}

func redisDef() *addon.Definition {
	return &addon.Definition{
		Metadata: addon.Metadata{Name: "redis", Description: "cache", Version: "7"},
		Fragment: "services:\n  redis:\n    image: redis:{{ .Version }}\nvolumes:\n  acme_redisdata: {}\n",
	}
}

func TestMergeFragments(t *testing.T) {
	cfg := testConfig()
	addons := map[string]*addon.Definition{"postgres": postgresDef(), "redis": redisDef()}

	desc, err := MergeFragments(addons, cfg)
	require.NoError(t, err)

	require.Contains(t, desc.Services, "postgres")
	require.Contains(t, desc.Services, "redis")

	pg := desc.Services["postgres"].(map[string]any)
	// The instance version overrides the definition default.
	assert.Equal(t, "postgres:16", pg["image"])
	env := pg["environment"].(map[string]any)
	assert.Equal(t, "200", env["POSTGRES_MAX_CONNECTIONS"])
}

func TestMergeFragments_Namespacing(t *testing.T) {
	cfg := testConfig()
	addons := map[string]*addon.Definition{"postgres": postgresDef(), "redis": redisDef()}

	desc, err := MergeFragments(addons, cfg)
	require.NoError(t, err)

	assert.Contains(t, desc.Volumes, "acme_pgdata")
	assert.Contains(t, desc.Networks, "acme_backend")
	// Already-prefixed names are left alone, not double-prefixed.
	assert.Contains(t, desc.Volumes, "acme_redisdata")
	assert.NotContains(t, desc.Volumes, "acme_acme_redisdata")
}

func TestMergeFragments_RewritesServiceReferences(t *testing.T) {
	def := postgresDef()
	def.Fragment = `services:
  postgres:
    image: postgres:{{ .Version }}
    volumes:
      - pgdata:/var/lib/postgresql/data
      - /etc/localtime:/etc/localtime:ro
    networks:
      - backend
volumes:
  pgdata: {}
networks:
  backend: {}
`

	desc, err := MergeFragments(map[string]*addon.Definition{"postgres": def}, testConfig())
	require.NoError(t, err)

	pg := desc.Services["postgres"].(map[string]any)
	// Mounts follow the namespaced volume; bind mounts stay untouched.
	assert.Equal(t, []any{
		"acme_pgdata:/var/lib/postgresql/data",
		"/etc/localtime:/etc/localtime:ro",
	}, pg["volumes"])
	assert.Equal(t, []any{"acme_backend"}, pg["networks"])
	assert.Contains(t, desc.Volumes, "acme_pgdata")
	assert.Contains(t, desc.Networks, "acme_backend")
}

func TestMergeFragments_RewritesLongFormReferences(t *testing.T) {
	def := redisDef()
	def.Fragment = `services:
  redis:
    image: redis:{{ .Version }}
    volumes:
      - type: volume
        source: redisdata
        target: /data
    networks:
      backend:
        aliases: [cache]
volumes:
  redisdata: {}
networks:
  backend: {}
`

	desc, err := MergeFragments(map[string]*addon.Definition{"redis": def}, testConfig())
	require.NoError(t, err)

	svc := desc.Services["redis"].(map[string]any)
	mount := svc["volumes"].([]any)[0].(map[string]any)
	assert.Equal(t, "acme_redisdata", mount["source"])
	nets := svc["networks"].(map[string]any)
	require.Contains(t, nets, "acme_backend")
	assert.NotContains(t, nets, "backend")
}

func TestMergeFragments_MalformedTemplate(t *testing.T) {
	def := postgresDef()
	def.Fragment = "services:\n  pg:\n    image: {{ .Version"

	_, err := MergeFragments(map[string]*addon.Definition{"postgres": def}, testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `addon "postgres"`)
}

func TestMergeFragments_RenderedNotYAML(t *testing.T) {
	def := redisDef()
	def.Fragment = "services: [not: {a map"

	_, err := MergeFragments(map[string]*addon.Definition{"redis": def}, testConfig())
	require.Error(t, err)
}

func TestEncode_Deterministic(t *testing.T) {
	cfg := testConfig()
	addons := map[string]*addon.Definition{"postgres": postgresDef(), "redis": redisDef()}

	first, err := MergeFragments(addons, cfg)
	require.NoError(t, err)
	second, err := MergeFragments(addons, cfg)
	require.NoError(t, err)

	a, err := first.Encode()
	require.NoError(t, err)
	b, err := second.Encode()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
