package main

import (
	"fmt"
	"strings"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/index"
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print the size, origin and counts of a structure",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if err := needArgs(c, 1); err != nil {
				return err
			}
			doc, err := loadDocument(c.Args().Get(0))
			if err != nil {
				return err
			}
			info, err := doc.Info()
			if err != nil {
				return err
			}

			data := pterm.TableData{
				{"Field", "Value"},
				{"Format version", fmt.Sprint(info.FormatVersion)},
				{"Size", fmt.Sprintf("%d x %d x %d", info.Size.X(), info.Size.Y(), info.Size.Z())},
				{"World origin", fmt.Sprintf("%d, %d, %d", info.WorldOrigin[0], info.WorldOrigin[1], info.WorldOrigin[2])},
				{"Palette entries", fmt.Sprint(info.PaletteLen)},
				{"Layers", fmt.Sprint(info.LayerCount)},
				{"Entities", fmt.Sprint(info.EntityCount)},
			}
			if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
				return err
			}

			if err = doc.Validate(); err != nil {
				pterm.Warning.Printfln("Structure is not consistent: %v", err)
			}
			if len(info.UnknownBlocks) > 0 {
				pterm.Warning.Printfln("Blocks unknown to the block registry: %s", strings.Join(info.UnknownBlocks, ", "))
			}
			return nil
		},
	}
}

func objectsCommand() *cli.Command {
	return &cli.Command{
		Name:      "objects",
		Usage:     "Count the blocks and entities of a structure by name",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "hide-block", Usage: "Hide every block with this name."},
			&cli.StringSliceFlag{Name: "hide-entity", Usage: "Hide every entity with this identifier."},
			&cli.BoolFlag{Name: "list", Usage: "Also list the ids of the visible objects."},
		},
		Action: func(c *cli.Context) error {
			if err := needArgs(c, 1); err != nil {
				return err
			}
			doc, err := loadDocument(c.Args().Get(0))
			if err != nil {
				return err
			}
			idx, err := index.Build(doc)
			if err != nil {
				return err
			}

			vis := index.NewVisibility()
			for _, name := range c.StringSlice("hide-block") {
				vis.Set(define.ObjectBlock, name, false)
			}
			for _, name := range c.StringSlice("hide-entity") {
				vis.Set(define.ObjectEntity, name, false)
			}
			snapshot := vis.Snapshot()

			data := pterm.TableData{{"Kind", "Name", "Count", "Visible"}}
			for _, value := range idx.Blocks {
				data = append(data, []string{"block", value.Name, fmt.Sprint(value.Count), fmt.Sprint(snapshot.Visible(define.ObjectBlock, value.Name))})
			}
			for _, value := range idx.Entities {
				data = append(data, []string{"entity", value.Name, fmt.Sprint(value.Count), fmt.Sprint(snapshot.Visible(define.ObjectEntity, value.Name))})
			}
			if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
				return err
			}

			visible := idx.VisibleInstances(snapshot)
			pterm.Info.Printfln("%d of %d objects visible", len(visible), len(idx.BlockInstances)+len(idx.EntityInstances))
			if c.Bool("list") {
				for _, value := range visible {
					pterm.Println(value.Key.String(), value.Name)
				}
			}
			return nil
		},
	}
}

func blockCommand() *cli.Command {
	return &cli.Command{
		Name:      "block",
		Usage:     "Print the block at a position relative to the structure",
		ArgsUsage: "<file> <x> <y> <z>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "layer", Usage: "The block index layer to read."},
		},
		Action: func(c *cli.Context) error {
			if err := needArgs(c, 4); err != nil {
				return err
			}
			doc, err := loadDocument(c.Args().Get(0))
			if err != nil {
				return err
			}

			var pos define.BlockPos
			for i := range pos {
				if pos[i], err = parseInt32(c.Args().Get(i + 1)); err != nil {
					return err
				}
			}

			def, err := index.ResolveBlockInLayer(doc, c.Int("layer"), pos)
			if err != nil {
				return err
			}
			printBlock(define.BlockKey(pos), def)
			return nil
		},
	}
}

func entityCommand() *cli.Command {
	return &cli.Command{
		Name:      "entity",
		Usage:     "Print the entity at an ordinal of the entity list",
		ArgsUsage: "<file> <n>",
		Action: func(c *cli.Context) error {
			if err := needArgs(c, 2); err != nil {
				return err
			}
			doc, err := loadDocument(c.Args().Get(0))
			if err != nil {
				return err
			}
			ordinal, err := parseInt32(c.Args().Get(1))
			if err != nil {
				return err
			}
			return printEntity(doc, int(ordinal))
		},
	}
}

func selectCommand() *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Print the object behind an id such as block_1_0_2 or entity_0",
		ArgsUsage: "<file> <id>",
		Action: func(c *cli.Context) error {
			if err := needArgs(c, 2); err != nil {
				return err
			}
			doc, err := loadDocument(c.Args().Get(0))
			if err != nil {
				return err
			}
			key, err := define.ParseKey(c.Args().Get(1))
			if err != nil {
				return err
			}

			switch key.Kind {
			case define.ObjectBlock:
				def, err := index.ResolveBlock(doc, key.Pos)
				if err != nil {
					return err
				}
				printBlock(key, def)
				return nil
			default:
				return printEntity(doc, key.Ordinal)
			}
		},
	}
}

func printBlock(key define.Key, def *define.BlockDefinition) {
	if def == nil {
		pterm.Info.Printfln("%s is air", key)
		return
	}

	data := pterm.TableData{
		{"Field", "Value"},
		{"Id", key.String()},
		{"Name", def.Name},
		{"Palette index", fmt.Sprint(def.PaletteIndex)},
		{"States", fmt.Sprint(def.StatesMap())},
		{"Version", fmt.Sprint(def.Version)},
	}
	if runtimeID, found := def.RuntimeID(); found {
		data = append(data, []string{"Runtime ID", fmt.Sprint(runtimeID)})
	} else {
		data = append(data, []string{"Runtime ID", "unknown"})
	}
	if def.BlockEntityData != nil {
		data = append(data, []string{"Block entity data", fmt.Sprint(nbt.CompoundToGo(def.BlockEntityData))})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printEntity(doc *structure.Document, ordinal int) error {
	entity, err := index.ResolveEntity(doc, ordinal)
	if err != nil {
		return err
	}
	local, err := index.EntityLocalPosition(doc, ordinal)
	if err != nil {
		return err
	}

	data := pterm.TableData{
		{"Field", "Value"},
		{"Id", define.EntityKey(ordinal).String()},
		{"Identifier", entity.Identifier},
		{"Position", fmt.Sprintf("%.3f, %.3f, %.3f", entity.Position.X(), entity.Position.Y(), entity.Position.Z())},
		{"Local position", fmt.Sprintf("%.3f, %.3f, %.3f", local.X(), local.Y(), local.Z())},
		{"Rotation", fmt.Sprintf("%.3f, %.3f", entity.Rotation.X(), entity.Rotation.Y())},
	}
	if entity.HasUniqueID {
		data = append(data, []string{"Unique ID", fmt.Sprint(entity.UniqueID)})
	}
	if len(entity.Definitions) > 0 {
		data = append(data, []string{"Definitions", strings.Join(entity.Definitions, ", ")})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
