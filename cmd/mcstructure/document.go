package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/urfave/cli/v2"
)

// readStructure reads the raw bytes of a structure file,
// refusing files without the structure extension.
func readStructure(path string) ([]byte, error) {
	if !structure.HasExtension(path) {
		return nil, fmt.Errorf("%s is not a %s file", path, structure.Extension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func loadDocument(path string) (*structure.Document, error) {
	data, err := readStructure(path)
	if err != nil {
		return nil, err
	}
	doc, err := structure.Import(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// saveDocument validates and exports doc to path, adding the
// structure extension when it is missing.
func saveDocument(path string, doc *structure.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	data, err := structure.Export(doc)
	if err != nil {
		return "", err
	}
	return writeStructure(path, data)
}

func writeStructure(path string, data []byte) (string, error) {
	path = structure.EnsureExtension(path)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// needArgs fails unless exactly n positional arguments were given.
func needArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s: want %d arguments, got %d (usage: %s %s)",
			c.Command.Name, n, c.NArg(), c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

// outputPath returns the i-th argument, or the default export
// name of the config when there is no such argument.
func outputPath(c *cli.Context, i int) string {
	if c.NArg() > i {
		return c.Args().Get(i)
	}
	return configOf(c).Export.DefaultName
}

func parseInt32(value string) (int32, error) {
	result, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 32-bit integer", value)
	}
	return int32(result), nil
}
