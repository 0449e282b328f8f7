package codegen

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/imports"
)

// Header is the first line of every generated file.
const Header = "// Code generated by nocopygen. DO NOT EDIT."

// FileOptions describes the file wrapping a set of units.
type FileOptions struct {
	Package   string
	Source    string // input file name, recorded below the header
	BuildTags string // optional //go:build expression
}

// File assembles units into a formatted Go source file.
func File(units []*Unit, opts FileOptions) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("package name is required")
	}

	var code strings.Builder

	code.WriteString(Header + "\n")
	if opts.Source != "" {
		code.WriteString(fmt.Sprintf("// Source: %s\n", opts.Source))
	}
	code.WriteString("\n")

	if opts.BuildTags != "" {
		code.WriteString(fmt.Sprintf("//go:build %s\n\n", opts.BuildTags))
	}

	code.WriteString(fmt.Sprintf("package %s\n\n", opts.Package))

	paths := importsOf(units)
	if len(paths) > 0 {
		code.WriteString("import (\n")
		for _, path := range paths {
			code.WriteString(fmt.Sprintf("\t%q\n", path))
		}
		code.WriteString(")\n")
	}

	for _, u := range units {
		code.WriteString("\n")
		code.WriteString(u.Code)
	}

	out, err := imports.Process(opts.Source, []byte(code.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return out, nil
}

func importsOf(units []*Unit) []string {
	seen := make(map[string]bool)
	for _, u := range units {
		for _, path := range u.Imports {
			seen[path] = true
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
