package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alexhholmes/nocopy/internal/analyzer"
	"github.com/alexhholmes/nocopy/internal/attrs"
	"github.com/alexhholmes/nocopy/internal/parser"
	"github.com/alexhholmes/nocopy/internal/schema"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.go>",
		Short: "Show the records of a file and their computed layout",
		Long: `Parse a Go file and print every @nocopy record with its resolved
configuration, field classification and byte offsets. Nothing is written.

Examples:
  nocopygen inspect header.go`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(file.Records) == 0 {
				fmt.Fprintln(out, "No types with @nocopy annotations found")
				return nil
			}

			failed := 0
			for _, record := range file.Records {
				if err := inspectRecord(out, file.Registry, record); err != nil {
					color.New(color.FgRed).Fprintf(out, "  error: %v\n", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d records cannot be generated", failed, len(file.Records))
			}
			return nil
		},
	}
}

func inspectRecord(out io.Writer, reg *analyzer.TypeRegistry, record *schema.StructSchema) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Fprintf(out, "\n%s", record.Name)

	if _, err := analyzer.CheckShape(record); err != nil {
		fmt.Fprintln(out)
		return err
	}
	cfg, err := attrs.Resolve(record.Name, record.Attrs)
	if err != nil {
		fmt.Fprintln(out)
		return err
	}
	layout, err := analyzer.Analyze(record, reg)
	if err != nil {
		fmt.Fprintln(out)
		return err
	}

	fmt.Fprintf(out, " -> %s (repr=%s, endian=%s, size=%d, align=%d)\n",
		cfg.OutputName, layout.Repr, cfg.Endian, layout.Size, layout.Align)
	fmt.Fprintln(out, "Fields:")
	for _, f := range layout.Fields {
		name := f.Field.Name
		if !f.Accessible() {
			name += " (skipped)"
		}
		fmt.Fprintf(out, "  %-20s %-20s %-7s @%d..%d\n", name, f.Field.Type, f.Kind, f.Offset, f.End())
	}
	return nil
}
