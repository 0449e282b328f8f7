package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsSource = `package records

// @nocopy(endian = "big")
// @repr(packed)
type Example struct {
	A uint16
	B uint8
}
`

// run executes the root command with args inside a fresh working directory.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeRecords(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "records.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "nocopygen" {
		t.Errorf("expected Use to be 'nocopygen', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	// Check subcommands are registered
	for _, expected := range []string{"version", "generate", "inspect"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected command %s to be registered", expected)
		}
	}

	for _, flag := range []string{"config", "output-suffix", "layout-checks", "build-tags", "log-level", "dry-run"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag --%s", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	t.Cleanup(func() {
		Version = "dev"
		GitCommit = "unknown"
	})

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0.0-test")
	assert.Contains(t, out, "abc123")
}

func TestGenerateCommand(t *testing.T) {
	path := writeRecords(t, recordsSource)

	out, _, err := run(t, "generate", path)
	require.NoError(t, err)

	output := filepath.Join(filepath.Dir(path), "records_nocopy.go")
	assert.Contains(t, out, output)
	assert.Contains(t, out, "ExampleBuffer")

	code, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(code), "func (p *ExampleBuffer) GetA() uint16 {")
}

func TestGenerateCommandUsesGOFILE(t *testing.T) {
	path := writeRecords(t, recordsSource)
	t.Setenv("GOFILE", filepath.Base(path))

	_, _, err := run(t, "generate")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "records_nocopy.go"))
}

func TestGenerateCommandNoInput(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GOFILE", "")

	_, _, err := run(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input files")
}

func TestGenerateCommandDryRun(t *testing.T) {
	path := writeRecords(t, recordsSource)

	out, _, err := run(t, "generate", "--dry-run", path)
	require.NoError(t, err)

	assert.Contains(t, out, "// Code generated by nocopygen. DO NOT EDIT.")
	assert.Contains(t, out, "type ExampleBuffer [ExampleBufferSize]byte")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "records_nocopy.go"))
}

func TestGenerateCommandReportsErrors(t *testing.T) {
	path := writeRecords(t, `package records

// @nocopy(endian = "sideways")
// @repr(C)
type A struct{ X uint16 }

// @nocopy
type B struct{ Y uint16 }
`)

	_, stderr, err := run(t, "generate", "--log-level=error", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s)")
	assert.Contains(t, stderr, "endian must be 'big' or 'little'")
	assert.Contains(t, stderr, "must be marked")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "records_nocopy.go"))
}

func TestInspectCommand(t *testing.T) {
	path := writeRecords(t, `package records

import "structs"

// @nocopy(name = "HeaderView")
type Header struct {
	_     structs.HostLayout
	Magic uint32
	Flags uint8
	Seq   uint64
}
`)

	out, _, err := run(t, "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Header -> HeaderView (repr=C, endian=native, size=16, align=8)")
	assert.Contains(t, out, "Magic")
	assert.Contains(t, out, "@0..4")
	assert.Contains(t, out, "@4..5")
	assert.Contains(t, out, "@8..16")
	assert.Contains(t, out, "_ (skipped)")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "records_nocopy.go"))
}

func TestInspectCommandErrors(t *testing.T) {
	path := writeRecords(t, `package records

// @nocopy
type Page uint64
`)

	out, _, err := run(t, "inspect", path)
	require.Error(t, err)
	assert.Contains(t, out, "only struct types are supported")
	assert.Contains(t, err.Error(), "1 of 1 records")

	_, _, err = run(t, "inspect")
	require.Error(t, err, "a file argument is required")
}
