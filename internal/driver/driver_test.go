package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexhholmes/nocopy/internal/codegen"
	"github.com/alexhholmes/nocopy/internal/schema"
)

const validSource = `package records

// @nocopy(endian = "big")
// @repr(packed)
type Example struct {
	A uint16
	B uint8
}

// @nocopy(name = "Foo")
// @repr(C)
type Header struct {
	Magic uint32
	Seq   uint64
}
`

const invalidSource = `package records

// @nocopy
// @repr(packed)
type Good struct {
	A uint16
}

// @nocopy(colour = "red")
// @repr(packed)
type BadAttr struct {
	A uint16
}

// @nocopy
// @repr(C)
type BadField struct {
	Data []byte
}
`

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func newObservedDriver(cfg Config) (*Driver, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(cfg, zap.New(core)), logs
}

func TestRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeSource(t, dir, "records.go", validSource)

	d, logs := newObservedDriver(DefaultConfig())
	results, err := d.Run(input)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, filepath.Join(dir, "records_nocopy.go"), res.Output)
	assert.Equal(t, []string{"ExampleBuffer", "Foo"}, res.Views)
	assert.True(t, res.Written)

	written, err := os.ReadFile(res.Output)
	require.NoError(t, err)
	assert.Equal(t, res.Code, written)
	assert.Contains(t, string(written), codegen.Header)
	assert.Contains(t, string(written), "type ExampleBuffer [ExampleBufferSize]byte")
	assert.Contains(t, string(written), "type Foo [FooSize]byte")

	assert.Equal(t, 2, logs.FilterMessage("record emitted").Len())
	assert.Equal(t, 1, logs.FilterMessage("wrote views").Len())
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	input := writeSource(t, dir, "records.go", validSource)

	cfg := DefaultConfig()
	cfg.DryRun = true
	d, logs := newObservedDriver(cfg)

	results, err := d.Run(input)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.False(t, results[0].Written)
	assert.NotEmpty(t, results[0].Code)
	assert.NoFileExists(t, results[0].Output)
	assert.Equal(t, 1, logs.FilterMessage("dry run, not writing").Len())
}

func TestRunFileIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeSource(t, dir, "records.go", invalidSource)

	d, logs := newObservedDriver(DefaultConfig())
	results, err := d.Run(input)
	require.Error(t, err)
	assert.Empty(t, results)

	// Good generated fine but the file still gets no output
	assert.NoFileExists(t, filepath.Join(dir, "records_nocopy.go"))

	errs := multierr.Errors(err)
	require.Len(t, errs, 2, "every failing record is reported")
	assert.True(t, errors.Is(errs[0], schema.ErrConfig))
	assert.True(t, errors.Is(errs[1], schema.ErrSchema))

	var cfgErr *schema.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "BadAttr", cfgErr.Struct)

	aborted := logs.FilterMessage("record aborted").All()
	require.Len(t, aborted, 2)
	assert.Equal(t, "BadAttr", aborted[0].ContextMap()["record"])
	assert.Equal(t, "BadField", aborted[1].ContextMap()["record"])
}

func TestRunContinuesAfterFailingFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.go", invalidSource)
	good := writeSource(t, dir, "good.go", validSource)
	broken := writeSource(t, dir, "broken.go", "package records\ntype T struct {")

	d := New(DefaultConfig(), nil)
	results, err := d.Run(bad, good, broken)
	require.Error(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, good, results[0].Input)
	assert.FileExists(t, filepath.Join(dir, "good_nocopy.go"))

	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "parse error")
}

func TestRunRejectsCollidingViews(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantErrs int
		wantMsg  string
	}{
		{
			name: "two records share a view name",
			src: `package records

// @nocopy
// @repr(packed)
type Example struct{ A uint16 }

// @nocopy(name = "ExampleBuffer")
// @repr(packed)
type Other struct{ B uint8 }
`,
			wantErrs: 4,
			wantMsg:  "Other: view declaration ExampleBuffer collides with the view of Example",
		},
		{
			name: "view redeclares a source identifier",
			src: `package records

// @nocopy
// @repr(packed)
type Example struct{ A uint16 }

func NewExampleBuffer() {}
`,
			wantErrs: 1,
			wantMsg:  "Example: view declaration NewExampleBuffer collides with NewExampleBuffer declared at",
		},
		{
			name: "view named after another record",
			src: `package records

// @nocopy(name = "Other")
// @repr(packed)
type Example struct{ A uint16 }

type Other struct{ B uint8 }
`,
			wantErrs: 1,
			wantMsg:  "view declaration Other collides with Other declared at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeSource(t, dir, "records.go", tt.src)

			d, logs := newObservedDriver(DefaultConfig())
			results, err := d.Run(input)
			require.Error(t, err)
			assert.Empty(t, results)
			assert.NoFileExists(t, filepath.Join(dir, "records_nocopy.go"))

			errs := multierr.Errors(err)
			assert.Len(t, errs, tt.wantErrs)
			for _, e := range errs {
				assert.True(t, errors.Is(e, schema.ErrSchema), "got %v", e)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, 1, logs.FilterMessage("views collide").Len())
		})
	}
}

func TestRunSkipsFilesWithoutRecords(t *testing.T) {
	dir := t.TempDir()
	input := writeSource(t, dir, "plain.go", "package records\n\ntype Plain struct{ A int }\n")
	generated := writeSource(t, dir, "plain_nocopy.go", "package records\n")

	d, logs := newObservedDriver(DefaultConfig())
	results, err := d.Run(input, generated)
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.Equal(t, 1, logs.FilterMessage("no @nocopy records").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping generated file").Len())
}

func TestRunBuildTagsAndChecks(t *testing.T) {
	dir := t.TempDir()
	input := writeSource(t, dir, "records.go", validSource)

	d := New(Config{BuildTags: "linux", LayoutChecks: false, DryRun: true}, nil)
	results, err := d.Run(input)
	require.NoError(t, err)
	require.Len(t, results, 1)

	code := string(results[0].Code)
	assert.Contains(t, code, "//go:build linux")
	assert.NotContains(t, code, "unsafe")
	assert.Equal(t, filepath.Join(dir, "records_nocopy.go"), results[0].Output, "empty suffix uses the default")
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		suffix string
		want   string
	}{
		{"header.go", "_nocopy.go", "header_nocopy.go"},
		{"pkg/page.go", "_nocopy.go", "pkg/page_nocopy.go"},
		{"page.go", ".gen.go", "page.gen.go"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}
