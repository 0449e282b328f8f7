package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/alexhholmes/nocopy/internal/cli/config"
	"github.com/alexhholmes/nocopy/internal/driver"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate [files...]",
		Aliases: []string{"gen"},
		Short:   "Generate buffer views for @nocopy records",
		Long: `Generate a <file>_nocopy.go file next to each input holding the views
of its @nocopy records.

Without arguments the file named by $GOFILE is used, which is what
go:generate sets.

Examples:
  nocopygen generate header.go page.go
  nocopygen generate --dry-run header.go
  nocopygen generate --build-tags '!purego'`,
		RunE: runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	files := args
	if len(files) == 0 {
		gofile := os.Getenv("GOFILE")
		if gofile == "" {
			return fmt.Errorf("no input files\n\nUsage: nocopygen generate <file.go>... (or run from a go:generate directive)")
		}
		files = []string{gofile}
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Level())
	defer logger.Sync()

	d := driver.New(driver.Config{
		OutputSuffix: cfg.OutputSuffix,
		LayoutChecks: cfg.LayoutChecks,
		BuildTags:    cfg.BuildTags,
		DryRun:       cfg.DryRun,
	}, logger)

	results, runErr := d.Run(files...)

	out := cmd.OutOrStdout()
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)

	for _, res := range results {
		if !res.Written {
			infoColor.Fprintf(out, "// %s\n", res.Output)
			fmt.Fprintf(out, "%s\n", res.Code)
			continue
		}
		successColor.Fprintf(out, "✓ %s", res.Output)
		fmt.Fprintf(out, " (%s)\n", strings.Join(res.Views, ", "))
	}

	if runErr != nil {
		errs := multierr.Errors(runErr)
		errorColor := color.New(color.FgRed)
		for _, err := range errs {
			errorColor.Fprintf(cmd.ErrOrStderr(), "  %v\n", err)
		}
		return fmt.Errorf("generation failed with %d error(s)", len(errs))
	}

	return nil
}
