package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"docseek/internal/ui"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a one-shot search against the index",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "section",
				Usage: "Restrict matches to one section",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("no query given")
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if limit := c.Int("limit"); limit > 0 {
				cfg.PageSize = int(limit)
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

			results, err := cl.Search(ctx, query, c.String("section"))
			if err != nil {
				return fmt.Errorf("searching: %w", err)
			}

			if len(results.Items) == 0 {
				fmt.Printf("No matches for %q\n", query)
				return nil
			}

			styles := ui.NewStyles()
			for _, item := range results.Items {
				line := styles.Selected.Render(item.Title)
				if item.Section != "" {
					line += "  " + styles.Section.Render("["+item.Section+"]")
				}
				fmt.Println(line)
				fmt.Println("  " + styles.Dim.Render(item.URL))
				if item.Excerpt != "" {
					fmt.Println("  " + styles.RenderExcerpt(item.Excerpt))
				}
				fmt.Println()
			}
			fmt.Printf("%d of %d matches\n", len(results.Items), results.TotalMatches)
			return nil
		},
	}
}
