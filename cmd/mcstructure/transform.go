package main

import (
	"fmt"
	"os"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/marshal"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Re-encode a structure without preamble, adding the extension if missing",
		ArgsUsage: "<in> [out]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 || c.NArg() > 2 {
				return fmt.Errorf("convert: want 1 or 2 arguments, got %d", c.NArg())
			}
			doc, err := loadDocument(c.Args().Get(0))
			if err != nil {
				return err
			}
			path, err := saveDocument(outputPath(c, 1), doc)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", path)
			return nil
		},
	}
}

// loadPair loads two documents that must have the same size.
func loadPair(older string, newer string) (olderDoc *structure.Document, newerDoc *structure.Document, err error) {
	if olderDoc, err = loadDocument(older); err != nil {
		return nil, nil, err
	}
	if newerDoc, err = loadDocument(newer); err != nil {
		return nil, nil, err
	}

	olderSize, err := olderDoc.Size()
	if err != nil {
		return nil, nil, err
	}
	newerSize, err := newerDoc.Size()
	if err != nil {
		return nil, nil, err
	}
	if olderSize != newerSize {
		return nil, nil, fmt.Errorf("sizes differ: %v and %v", olderSize, newerSize)
	}
	return olderDoc, newerDoc, nil
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "List the voxels whose palette index differs between two structures of the same size",
		ArgsUsage: "<older> <newer>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "Write the layer difference to this file."},
			&cli.BoolFlag{Name: "verbose", Usage: "Print every changed voxel."},
		},
		Action: func(c *cli.Context) error {
			if err := needArgs(c, 2); err != nil {
				return err
			}
			olderDoc, newerDoc, err := loadPair(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			olderLayers, err := olderDoc.Layers()
			if err != nil {
				return err
			}
			newerLayers, err := newerDoc.Layers()
			if err != nil {
				return err
			}
			size, err := olderDoc.Size()
			if err != nil {
				return err
			}

			diff := define.LayerDifference(olderLayers, newerLayers)
			if define.LayerNoChange(diff) {
				pterm.Info.Println("No voxel changed")
			}
			for layer, changes := range diff {
				if len(changes) == 0 {
					continue
				}
				pterm.Info.Printfln("Layer %d: %d voxels changed", layer, len(changes))
				if !c.Bool("verbose") {
					continue
				}
				for _, change := range changes {
					pos, err := define.OffsetToPosition(change.Offset, size)
					if err != nil {
						return err
					}
					pterm.Println(define.BlockKey(pos).String(), "->", change.NewPaletteID)
				}
			}

			if out := c.String("out"); out != "" {
				data, err := marshal.LayersDiffToBytes(diff, size)
				if err != nil {
					return err
				}
				if err = os.WriteFile(out, data, 0o644); err != nil {
					return err
				}
				pterm.Success.Printfln("Wrote %s", out)
			}
			return nil
		},
	}
}

func applyLayersCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply-layers",
		Usage:     "Apply a layer difference written by compare --out",
		ArgsUsage: "<older> <diff> [out]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 || c.NArg() > 3 {
				return fmt.Errorf("apply-layers: want 2 or 3 arguments, got %d", c.NArg())
			}
			doc, err := loadDocument(c.Args().Get(0))
			if err != nil {
				return err
			}
			data, err := os.ReadFile(c.Args().Get(1))
			if err != nil {
				return err
			}
			size, err := doc.Size()
			if err != nil {
				return err
			}
			diff, err := marshal.BytesToLayersDiff(data, size)
			if err != nil {
				return err
			}

			layers, err := doc.Layers()
			if err != nil {
				return err
			}
			restored, err := define.LayerRestore(layers, diff, size.Volume())
			if err != nil {
				return err
			}
			for i, layer := range restored {
				if err = doc.SetBlockIndices(i, layer); err != nil {
					return err
				}
			}

			path, err := saveDocument(outputPath(c, 2), doc)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", path)
			return nil
		},
	}
}

func diffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Write a binary patch that turns one structure file into another",
		ArgsUsage: "<older> <newer> <patch>",
		Action: func(c *cli.Context) error {
			if err := needArgs(c, 3); err != nil {
				return err
			}
			older, err := readValid(c.Args().Get(0))
			if err != nil {
				return err
			}
			newer, err := readValid(c.Args().Get(1))
			if err != nil {
				return err
			}

			patch, err := marshal.NewPatch(older, newer)
			if err != nil {
				return err
			}
			if err = os.WriteFile(c.Args().Get(2), patch, 0o644); err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s (%d bytes)", c.Args().Get(2), len(patch))
			return nil
		},
	}
}

func patchCommand() *cli.Command {
	return &cli.Command{
		Name:      "patch",
		Usage:     "Apply a patch written by diff",
		ArgsUsage: "<older> <patch> [out]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 || c.NArg() > 3 {
				return fmt.Errorf("patch: want 2 or 3 arguments, got %d", c.NArg())
			}
			older, err := readStructure(c.Args().Get(0))
			if err != nil {
				return err
			}
			patch, err := os.ReadFile(c.Args().Get(1))
			if err != nil {
				return err
			}

			newer, err := marshal.ApplyPatch(older, patch)
			if err != nil {
				return err
			}
			if _, err = structure.Import(newer); err != nil {
				return err
			}

			path, err := writeStructure(outputPath(c, 2), newer)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", path)
			return nil
		},
	}
}

// readValid reads a structure file and checks that it imports.
func readValid(path string) ([]byte, error) {
	data, err := readStructure(path)
	if err != nil {
		return nil, err
	}
	if _, err = structure.Import(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
