package handlers

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/skyhook-sh/skyhook/internal/addon"
)

// Addons lists the addon catalog with version, category and description.
func Addons(paths Paths) error {
	loader := addon.NewLoader(paths.Catalog)
	names, err := loader.CatalogNames()
	if err != nil {
		return fmt.Errorf("failed to read addon catalog: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("No addons in catalog.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tCATEGORY\tDESCRIPTION")
	for _, name := range names {
		def, err := loader.Load(name)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\tinvalid: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name(), def.Metadata.Version, def.Metadata.Category, def.Metadata.Description)
	}
	return w.Flush()
}
