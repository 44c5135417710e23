package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"docseek/internal/index"
)

// IndexCommand creates the index command
func IndexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Build the search index from a documentation tree",
		ArgsUsage: "[docs-dir]",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			docsDir := cfg.DocsDir
			if c.Args().Len() > 0 {
				docsDir = c.Args().First()
			}
			if docsDir == "" {
				return fmt.Errorf("no docs directory configured, pass one as an argument or set docs_dir")
			}
			if _, err := os.Stat(docsDir); err != nil {
				return fmt.Errorf("docs directory: %w", err)
			}

			store, err := index.Open(cfg.IndexPath)
			if err != nil {
				return fmt.Errorf("opening index: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: closing index: %v\n", err)
				}
			}()

			info, err := store.Build(ctx, docsDir)
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			fmt.Printf("Indexed %d pages into %s (build %s)\n", info.PageCount, cfg.IndexPath, info.BuildID)
			return nil
		},
	}
}
