package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/grove/catalog"
	"github.com/justapithecus/grove/cli/render"
	"github.com/justapithecus/grove/types"
)

// CatalogResponse is the response for the catalog command.
type CatalogResponse struct {
	Entries []types.CatalogEntry `json:"entries" yaml:"entries"`
}

// TableHeader implements render.Tabular.
func (r CatalogResponse) TableHeader() []string {
	return []string{"NAME", "SOURCE"}
}

// TableRows implements render.Tabular.
func (r CatalogResponse) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, []string{e.Name, e.SourceLocator})
	}
	return rows
}

// CatalogCommand returns the catalog command. It scrapes the catalog page
// and prints the discovered entries without building anything.
func CatalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List the grammars the catalog page currently offers",
		Flags: append(ReadOnlyFlags(),
			&cli.StringFlag{
				Name:  "catalog-url",
				Usage: "Catalog page to scrape",
				Value: catalog.DefaultURL,
			},
			&cli.StringFlag{
				Name:    "languages",
				Aliases: []string{"l"},
				Usage:   "Comma-delimited grammar name filter",
			},
		),
		Action: catalogAction,
	}
}

func catalogAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	source := catalog.NewHTTPSource(c.String("catalog-url"))
	entries, err := source.Entries(c.Context)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error scraping parsers: %v", err), exitCatalogFailure)
	}
	entries = catalog.Filter(entries, splitLanguages(c.String("languages")))

	return r.Render(CatalogResponse{Entries: entries})
}
