package main

import (
	"os"

	"github.com/TriM-Organization/bedrock-structure-editor/config"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

const metadataConfig = "config"

func newApp() *cli.App {
	return &cli.App{
		Name:  "mcstructure",
		Usage: "Inspect, compare and store Bedrock Edition .mcstructure files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The path of the YAML config file.",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			c.App.Metadata = map[string]any{metadataConfig: cfg}
			return nil
		},
		Commands: []*cli.Command{
			infoCommand(),
			objectsCommand(),
			blockCommand(),
			entityCommand(),
			selectCommand(),
			convertCommand(),
			compareCommand(),
			applyLayersCommand(),
			diffCommand(),
			patchCommand(),
			libraryCommand(),
		},
	}
}

// configOf returns the config loaded by the Before hook.
func configOf(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[metadataConfig].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
