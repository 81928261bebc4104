package addon

// Definition is the immutable, loaded form of one addon.
type Definition struct {
	Metadata Metadata
	Fragment string   // compose fragment template source
	Env      []EnvVar // environment variable schema, file order
	Tasks    string   // provisioning task fragments
	Dir      string   // directory the addon was loaded from
}

// Metadata holds the declared addon metadata from addon.yaml.
type Metadata struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Version     string      `yaml:"version"`
	Category    string      `yaml:"category"`
	Shared      bool        `yaml:"shared"`
	Requires    []string    `yaml:"requires"`
	Conflicts   []string    `yaml:"conflicts"`
	Healthcheck Healthcheck `yaml:"healthcheck"`
}

// Healthcheck describes how a deployed addon instance is probed.
type Healthcheck struct {
	Test     string `yaml:"test"`
	Interval string `yaml:"interval"`
	Timeout  string `yaml:"timeout"`
	Retries  int    `yaml:"retries"`
}

// EnvVar is one entry of the environment variable schema.
// Exactly one generation rule applies per variable: a fixed default, a
// generated password, a generated username, or a derived value with
// placeholder substitution.
type EnvVar struct {
	Name     string `yaml:"name"`
	Default  string `yaml:"default,omitempty"`
	Generate string `yaml:"generate,omitempty"` // "password" or "username"
	Value    string `yaml:"value,omitempty"`    // derived, supports {{project}} / {{core_ip}}
}

// Name returns the addon's declared name.
func (d *Definition) Name() string {
	return d.Metadata.Name
}
