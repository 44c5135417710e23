package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"docseek/internal/history"
)

// HistoryCommand creates the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show or clear recent searches",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Forget all recent searches",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			store := history.NewStore(history.NewFileBackend(cfg.HistoryPath), cfg.HistorySize)

			if c.Bool("clear") {
				store.Clear()
				fmt.Println("Recent searches cleared")
				return nil
			}

			queries := store.Queries()
			if len(queries) == 0 {
				fmt.Println("No recent searches")
				return nil
			}
			for _, q := range queries {
				fmt.Println(q)
			}
			return nil
		},
	}
}
