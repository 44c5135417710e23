package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// SectionsCommand creates the sections command
func SectionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sections",
		Usage: "List indexed sections and their page counts",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			logger := newLogger(c.Root().Writer, c.Bool("debug"))
			cl, err := newClient(cfg, logger)
			if err != nil {
				return fmt.Errorf("creating search client: %w", err)
			}
			defer cl.Close()

			if err := cl.EnsureReady(); err != nil {
				return fmt.Errorf("search index not available, run 'docseek index' first: %w", err)
			}

			catalog := cl.ListFilterValues(ctx)
			if len(catalog.Sections) == 0 {
				fmt.Println("No sections indexed")
				return nil
			}

			for _, facet := range catalog.Sections {
				fmt.Printf("%-24s %d\n", facet.Value, facet.Count)
			}
			return nil
		},
	}
}
