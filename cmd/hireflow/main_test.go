// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hireflow/hireflow/internal/config"
	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/intake"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvConfigFile,
		config.EnvLogLevel,
		config.EnvLogFormat,
		config.EnvHTTPAddr,
		config.EnvMinSalary,
		config.EnvMaxSalary,
		config.EnvFutureWindowDays,
		config.EnvPastToleranceDays,
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// completeRecord returns a record whose start date is always inside the
// default window.
func completeRecord(email string) string {
	start := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	return "Name: Jane Doe\nEmail: " + email + "\nDepartment: Engineering\nRole: Engineer\nStart Date: " + start + "\n"
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtractCmd(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "jane.txt", completeRecord("jane@acme.io"))

	tests := []struct {
		name           string
		args           []string
		decode         func([]byte, any) error
		validateOutput func(t *testing.T, out intake.Outcome)
	}{
		{
			name:   "yaml output by default",
			args:   []string{"extract", path},
			decode: yaml.Unmarshal,
			validateOutput: func(t *testing.T, out intake.Outcome) {
				assert.Equal(t, "jane.txt", out.SourceID)
				assert.Equal(t, "text", out.SourceUsed)
				assert.False(t, out.Blocking)
			},
		},
		{
			name:   "json output",
			args:   []string{"extract", path, "--output", "json"},
			decode: json.Unmarshal,
			validateOutput: func(t *testing.T, out intake.Outcome) {
				assert.Equal(t, "Engineering", out.Extraction.Get(extraction.FieldDepartment).Value)
				require.NotNil(t, out.Report.StartDateOffsetDays)
				assert.Equal(t, 10, *out.Report.StartDateOffsetDays)
			},
		},
		{
			name:   "format flag overrides extension",
			args:   []string{"extract", path, "--format", "markdown", "-o", "json"},
			decode: json.Unmarshal,
			validateOutput: func(t *testing.T, out intake.Outcome) {
				assert.Equal(t, "markdown", out.SourceUsed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			require.NoError(t, err)

			var out intake.Outcome
			require.NoError(t, tt.decode([]byte(stdout), &out))
			tt.validateOutput(t, out)
		})
	}
}

func TestExtractCmd_Failures(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	partial := writeFile(t, dir, "partial.txt", "Name: Jo Park\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unsupported extension", args: []string{"extract", writeFile(t, dir, "offer.pdf", "%PDF-1.7")}},
		{name: "empty document", args: []string{"extract", writeFile(t, dir, "empty.txt", "  \n")}, wantErr: extraction.ErrUnprocessableInput},
		{name: "missing file", args: []string{"extract", filepath.Join(dir, "absent.txt")}, wantErr: os.ErrNotExist},
		{name: "bad output flag", args: []string{"extract", partial, "-o", "xml"}},
		{name: "strict with blocking report", args: []string{"extract", partial, "--strict"}, wantErr: errBlocking},
		{name: "invalid config", args: []string{"extract", partial, "--config", writeFile(t, dir, "bad.yaml", "log:\n  level: loud\n")}, wantErr: config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExtractCmd_BlockingWithoutStrict(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "partial.txt", "Name: Jo Park\n")

	stdout, _, err := run(t, "extract", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Missing critical field: Email")
}

func TestExtractCmd_ConfigFromFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, "hireflow.yaml", "validation:\n  personal_domains: [acme.io]\n")
	path := writeFile(t, dir, "jane.txt", completeRecord("jane@acme.io"))

	stdout, _, err := run(t, "extract", path, "--config", cfg, "-o", "json")
	require.NoError(t, err)

	var out intake.Outcome
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Report.Warnings, 1)
	assert.Contains(t, out.Report.Warnings[0], "acme.io")
}

func TestBatchCmd(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "review.xlsx")
	files := []string{
		writeFile(t, dir, "jane.txt", completeRecord("jane@gmail.com")),
		writeFile(t, dir, "jo.md", "# Jo\n**Name:** Jo Park\n"),
		writeFile(t, dir, "scan.pdf", "%PDF-1.7"),
	}

	stdout, stderr, err := run(t, append([]string{"batch", "--xlsx", xlsx}, files...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 documents could not be processed")
	assert.Contains(t, stdout, "processed 2 of 3 documents (1 blocking)")
	assert.Contains(t, stderr, "document skipped")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "jane.txt", rows[1][1])
	assert.Equal(t, "jo.md", rows[2][1])
}

func TestBatchCmd_RequiresWorkbookPath(t *testing.T) {
	isolateEnv(t)
	_, _, err := run(t, "batch", "a.txt")
	require.Error(t, err)
}

func TestServeCmd_InvalidTransport(t *testing.T) {
	isolateEnv(t)
	_, _, err := run(t, "serve", "--transport", "grpc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transport type")
}
