package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestRunToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-input", "data.csv", "testdata/model.yaml"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "library(NemesisOutliers)\n")
	assert.Contains(t, stdout.String(), "def_metric(late = days > 30)")
	assert.Contains(t, stdout.String(), "run_model(input = 'data.csv',\n          store_input = TRUE)\n")
	assert.Contains(t, stderr.String(), "Successfully processed testdata/model.yaml")
}

func TestRunToFileAndDiff(t *testing.T) {
	out := filepath.Join(t.TempDir(), "model.R")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-o", out, "testdata/model.yaml"}, &stdout, &stderr), stderr.String())
	assert.Empty(t, stdout.String())

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), "# Configure model")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-d", "-o", out, "testdata/model.yaml"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-d", "-o", out, "-output-db", "scores.db", "-input", "in.tsv", "testdata/model.yaml"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "+library(DBI)\n")
	assert.Contains(t, stdout.String(), " library(NemesisOutliers)\n")

	after, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, written, after)
}

func TestRunReportsAllErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"testdata/invalid.yaml"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "error[E0203]")
	assert.Contains(t, stderr.String(), "error[E0205]")
	assert.Contains(t, stderr.String(), "testdata/invalid.yaml:7:")
	assert.Contains(t, stderr.String(), "Compilation failed")
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: nemesis")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"-d", "testdata/model.yaml"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-d needs -o")

	assert.Equal(t, 1, run([]string{"-input", "data.parquet", "testdata/model.yaml"}, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"testdata/missing.yaml"}, &stdout, &stderr))
}

func TestLineDiff(t *testing.T) {
	assert.Empty(t, lineDiff("a\nb\n", "a\nb\n"))
	assert.Equal(t, " a\n-b\n+c\n", lineDiff("a\nb\n", "a\nc\n"))
	assert.Equal(t, "+x\n", lineDiff("", "x\n"))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{2 * time.Minute, "2.00min"},
		{1500 * time.Millisecond, "1.50s"},
		{2500 * time.Microsecond, "2.5ms"},
		{1500 * time.Nanosecond, "1.5μs"},
		{42 * time.Nanosecond, "42ns"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDuration(tt.d))
	}
}
