package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/skyhook-sh/skyhook/internal/addon"
	"github.com/skyhook-sh/skyhook/internal/config"
	"github.com/skyhook-sh/skyhook/internal/config/wizard"
	"github.com/skyhook-sh/skyhook/internal/subnet"
	"github.com/skyhook-sh/skyhook/internal/util/keygen"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	runWizard         = wizard.RunWizard
	generateDeployKey = keygen.GenerateDeployKey
	confirmOverwrite  = wizard.ConfirmOverwrite
)

// Init runs the interactive wizard, allocates project subnets, writes the
// project configuration file, and generates a deploy key pair.
func Init(ctx context.Context, paths Paths) error {
	loader := addon.NewLoader(paths.Catalog)
	names, err := loader.CatalogNames()
	if err != nil {
		names = nil // no catalog: skip the addon group
	}

	result, err := runWizard(ctx, names)
	if err != nil {
		return fmt.Errorf("wizard aborted: %w", err)
	}

	categories := make(map[string]string, len(result.Addons))
	for _, name := range result.Addons {
		if def, err := loader.Load(name); err == nil {
			categories[name] = def.Metadata.Category
		}
	}

	alloc, err := subnet.Open(paths.Subnets)
	if err != nil {
		return err
	}
	subnets, err := alloc.Allocate(result.ProjectName)
	if err != nil {
		return err
	}

	cfg := wizard.BuildConfig(result, subnets, categories)

	outPath := config.NewStore(paths.Projects).Path(cfg.Name)
	if wizard.FileExists(outPath) {
		ok, err := confirmOverwrite(outPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := os.MkdirAll(paths.Projects, 0o750); err != nil {
		return fmt.Errorf("failed to create projects dir: %w", err)
	}
	if err := wizard.WriteConfig(cfg, outPath); err != nil {
		return err
	}

	keyPath, err := writeDeployKey(paths, cfg.Name)
	if err != nil {
		return err
	}

	fmt.Printf("\nProject %s initialized!\n", cfg.Name)
	fmt.Printf("  Config:      %s\n", outPath)
	fmt.Printf("  VPC subnet:  %s\n", subnets.VPC)
	fmt.Printf("  Deploy key:  %s\n", keyPath)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  skyhook validate -c %s\n", outPath)
	fmt.Printf("  skyhook apply -c %s\n", outPath)
	return nil
}

// writeDeployKey generates the project deploy key pair next to the config.
func writeDeployKey(paths Paths, project string) (string, error) {
	pair, err := generateDeployKey(project + " deploy key")
	if err != nil {
		return "", err
	}

	keyPath := config.NewStore(paths.Projects).Path(project) + ".deploy_key"
	if err := writeFile(keyPath, pair.PrivateKey, 0o600); err != nil {
		return "", fmt.Errorf("failed to write deploy key: %w", err)
	}
	if err := writeFile(keyPath+".pub", pair.PublicKey, 0o644); err != nil { // #nosec G306
		return "", fmt.Errorf("failed to write deploy public key: %w", err)
	}
	return keyPath, nil
}
