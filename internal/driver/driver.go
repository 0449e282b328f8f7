// Package driver runs the generation pipeline over Go source files and writes
// the resulting views next to them.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alexhholmes/nocopy/internal/codegen"
	"github.com/alexhholmes/nocopy/internal/parser"
	"github.com/alexhholmes/nocopy/internal/schema"
)

// DefaultOutputSuffix replaces the ".go" extension of an input file.
const DefaultOutputSuffix = "_nocopy.go"

// Config controls a generation run.
type Config struct {
	OutputSuffix string
	LayoutChecks bool
	BuildTags    string
	DryRun       bool // generate but do not write
}

// DefaultConfig returns the configuration used by go:generate invocations
// without flags.
func DefaultConfig() Config {
	return Config{
		OutputSuffix: DefaultOutputSuffix,
		LayoutChecks: true,
	}
}

// Result describes the output generated for one input file.
type Result struct {
	Input   string
	Output  string
	Views   []string // generated view type names, in source order
	Code    []byte
	Written bool
}

// Driver generates views for annotated records.
type Driver struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a driver. A nil logger discards all output.
func New(cfg Config, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = DefaultOutputSuffix
	}
	return &Driver{
		cfg:    cfg,
		logger: logger,
	}
}

// Run processes every path. Files are independent: a failing file does not
// stop the others, and all errors are returned together. A file is written
// only when every record in it generated successfully.
func (d *Driver) Run(paths ...string) ([]Result, error) {
	var (
		results []Result
		errs    error
	)

	for _, path := range paths {
		if strings.HasSuffix(path, d.cfg.OutputSuffix) {
			d.logger.Debug("skipping generated file", zap.String("path", path))
			continue
		}

		res, err := d.runFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if res != nil {
			results = append(results, *res)
		}
	}

	return results, errs
}

func (d *Driver) runFile(path string) (*Result, error) {
	log := d.logger.With(zap.String("file", path))

	file, err := parser.ParseFile(path)
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		return nil, err
	}
	log.Debug("parsed file",
		zap.String("package", file.Package),
		zap.Int("records", len(file.Records)))

	if len(file.Records) == 0 {
		log.Info("no @nocopy records")
		return nil, nil
	}

	gen := codegen.NewGenerator(file.Registry, codegen.Options{
		LayoutChecks: d.cfg.LayoutChecks,
	})

	var (
		units []*codegen.Unit
		errs  error
	)
	for _, record := range file.Records {
		unit, err := gen.Generate(record)
		if err != nil {
			log.Error("record aborted", zap.String("record", record.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		log.Debug("record emitted",
			zap.String("record", record.Name),
			zap.String("view", unit.Config.OutputName),
			zap.Stringer("endian", unit.Config.Endian),
			zap.Int("size", unit.Layout.Size),
			zap.Int("accessors", len(unit.Accessors)))
		units = append(units, unit)
	}
	if errs != nil {
		return nil, errs
	}
	if err := checkNames(file, units); err != nil {
		log.Error("views collide", zap.Error(err))
		return nil, err
	}

	code, err := codegen.File(units, codegen.FileOptions{
		Package:   file.Package,
		Source:    filepath.Base(path),
		BuildTags: d.cfg.BuildTags,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res := &Result{
		Input:  path,
		Output: OutputPath(path, d.cfg.OutputSuffix),
		Code:   code,
	}
	for _, u := range units {
		res.Views = append(res.Views, u.Config.OutputName)
	}

	if d.cfg.DryRun {
		log.Info("dry run, not writing", zap.String("output", res.Output))
		return res, nil
	}

	if err := os.WriteFile(res.Output, code, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", res.Output, err)
	}
	res.Written = true
	log.Info("wrote views", zap.String("output", res.Output), zap.Strings("views", res.Views))

	return res, nil
}

// checkNames reports every view declaration that would redeclare an
// identifier of the source file or of an earlier view. units are in record
// order.
func checkNames(file *parser.File, units []*codegen.Unit) error {
	owners := make(map[string]string) // identifier → record whose view declares it
	var errs error

	for i, u := range units {
		record := file.Records[i]
		for _, name := range u.Declared() {
			if pos, ok := file.Declared[name]; ok {
				errs = multierr.Append(errs, &schema.SchemaError{
					Struct: record.Name,
					Pos:    record.Pos,
					Msg:    fmt.Sprintf("view declaration %s collides with %s declared at %s", name, name, pos),
				})
				continue
			}
			if other, ok := owners[name]; ok {
				errs = multierr.Append(errs, &schema.SchemaError{
					Struct: record.Name,
					Pos:    record.Pos,
					Msg:    fmt.Sprintf("view declaration %s collides with the view of %s", name, other),
				})
				continue
			}
			owners[name] = record.Name
		}
	}
	return errs
}

// OutputPath returns the file the views of input are written to:
// header.go becomes header_nocopy.go.
func OutputPath(input, suffix string) string {
	return strings.TrimSuffix(input, ".go") + suffix
}
