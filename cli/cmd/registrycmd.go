package cmd

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/grove/cli/render"
	"github.com/justapithecus/grove/registry"
)

// RegistryResponse is the response for the registry command.
type RegistryResponse struct {
	KnownLanguages map[string]registry.Entry `json:"known_languages" yaml:"known_languages"`
}

// TableHeader implements render.Tabular.
func (r RegistryResponse) TableHeader() []string {
	return []string{"NAME", "PATH", "EXTENSION"}
}

// TableRows implements render.Tabular. Rows are sorted by grammar name.
func (r RegistryResponse) TableRows() [][]string {
	names := make([]string, 0, len(r.KnownLanguages))
	for name := range r.KnownLanguages {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		entry := r.KnownLanguages[name]
		rows = append(rows, []string{name, entry.Path, entry.Extension})
	}
	return rows
}

// RegistryCommand returns the registry command. It reads the registry
// document and prints its entries; it never mutates the document.
func RegistryCommand() *cli.Command {
	return &cli.Command{
		Name:  "registry",
		Usage: "List the grammars recorded in the registry document",
		Flags: append(ReadOnlyFlags(),
			&cli.StringFlag{
				Name:    "config-destination",
				Aliases: []string{"c"},
				Usage:   "Registry document path",
				Value:   defaultConfigDest,
			},
		),
		Action: registryAction,
	}
}

func registryAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	store := registry.NewStore(c.String("config-destination"), nil)
	doc, err := store.Snapshot()
	if err != nil {
		return fmt.Errorf("cannot read registry: %w", err)
	}

	return r.Render(RegistryResponse{KnownLanguages: doc.KnownLanguages})
}
