package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/TriM-Organization/bedrock-structure-editor/library"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

// openLibrary opens the library named by --library, or by
// the config when the flag is not set.
func openLibrary(c *cli.Context) (*library.Library, error) {
	cfg := configOf(c)
	path := cfg.Library.Path
	if value := c.String("library"); value != "" {
		path = value
	}
	return library.Open(path, cfg.LibraryOptions(cfg.Logger()))
}

// withLibrary runs fn on an open library and closes it afterwards.
func withLibrary(fn func(c *cli.Context, l *library.Library) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		l, err := openLibrary(c)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := l.Close(); err == nil {
				err = closeErr
			}
		}()
		return fn(c, l)
	}
}

func libraryCommand() *cli.Command {
	return &cli.Command{
		Name:  "library",
		Usage: "Store structures by name",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "The path of the library, overriding the config.",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:      "put",
				Usage:     "Store a structure file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "The name to store under. Defaults to the file name."},
				},
				Action: withLibrary(func(c *cli.Context, l *library.Library) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					path := c.Args().Get(0)
					data, err := readStructure(path)
					if err != nil {
						return err
					}
					name := c.String("name")
					if name == "" {
						name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
					}

					entry, err := l.Put(name, data)
					if err != nil {
						return err
					}
					pterm.Success.Printfln("Stored %s as %q (%s)", path, entry.Name, entry.ID)
					return nil
				}),
			},
			{
				Name:      "get",
				Usage:     "Write a stored structure to a file",
				ArgsUsage: "<name> [out]",
				Action: withLibrary(func(c *cli.Context, l *library.Library) error {
					if c.NArg() < 1 || c.NArg() > 2 {
						return fmt.Errorf("get: want 1 or 2 arguments, got %d", c.NArg())
					}
					name := c.Args().Get(0)
					data, err := l.Get(name)
					if err != nil {
						return err
					}

					out := name
					if c.NArg() == 2 {
						out = c.Args().Get(1)
					}
					path, err := writeStructure(out, data)
					if err != nil {
						return err
					}
					pterm.Success.Printfln("Wrote %s", path)
					return nil
				}),
			},
			{
				Name:  "ls",
				Usage: "List the stored structures",
				Action: withLibrary(func(c *cli.Context, l *library.Library) error {
					entries, err := l.List()
					if err != nil {
						return err
					}

					data := pterm.TableData{{"Name", "ID", "Stored at", "Size", "Stored size"}}
					for _, value := range entries {
						data = append(data, []string{
							value.Name,
							value.ID.String(),
							value.StoredAt.Format(time.DateTime),
							fmt.Sprint(value.Size),
							fmt.Sprint(value.StoredSize),
						})
					}
					if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
						return err
					}
					pterm.Info.Printfln("%d structures", len(entries))
					return nil
				}),
			},
			{
				Name:      "rm",
				Usage:     "Delete a stored structure",
				ArgsUsage: "<name>",
				Action: withLibrary(func(c *cli.Context, l *library.Library) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					if err := l.Delete(c.Args().Get(0)); err != nil {
						return err
					}
					pterm.Success.Printfln("Deleted %q", c.Args().Get(0))
					return nil
				}),
			},
			{
				Name:      "info",
				Usage:     "Print the summary of a stored structure",
				ArgsUsage: "<name>",
				Action: withLibrary(func(c *cli.Context, l *library.Library) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					doc, err := l.Document(c.Args().Get(0))
					if err != nil {
						return err
					}
					info, err := doc.Info()
					if err != nil {
						return err
					}
					pterm.Info.Printfln("%s: %v, %d palette entries, %d entities",
						structure.EnsureExtension(c.Args().Get(0)), info.Size, info.PaletteLen, info.EntityCount)
					return nil
				}),
			},
		},
	}
}
