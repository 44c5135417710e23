package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"docseek/cmd"
	"docseek/internal/config"
)

func main() {
	app := &cli.Command{
		Name:  "docseek",
		Usage: "Search local documentation from the terminal",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: config.DefaultPath(),
			},
		},
		Commands: []*cli.Command{
			cmd.IndexCommand(),
			cmd.SearchCommand(),
			cmd.SectionsCommand(),
			cmd.HistoryCommand(),
			cmd.TuiCommand(),
			cmd.VersionCommand(),
		},
		DefaultCommand: "tui",
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
