package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/toolkit"
	"github.com/jonathan/content-toolkit/internal/types"
)

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command against dataDir with stdin as input.
func runCLI(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--data-dir", dataDir, "--log-level", "error"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dataDir, "", args...)
	require.NoError(t, err, out)
	return out
}

// library reads the persisted content library of dataDir.
func library(t *testing.T, dataDir string) []types.ContentItem {
	t.Helper()
	backend, err := storage.NewFileBackend(dataDir)
	require.NoError(t, err)
	return toolkit.Open(storage.NewStore(backend)).AllContent()
}

func TestStatus_Empty(t *testing.T) {
	out := mustRun(t, t.TempDir(), "status")

	assert.Contains(t, out, "TOOLKIT PROGRESS")
	assert.Contains(t, out, "0 of 9 steps complete, 9 remaining")
	assert.Contains(t, out, "[ ] 1. "+types.Steps[0].Title)
}

func TestStep_CompleteAndPersist(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []string{"1", "2", "3"} {
		mustRun(t, dir, "step", "complete", id)
	}
	out := mustRun(t, dir, "step", "uncomplete", "2")
	assert.Contains(t, out, "Step 2 marked incomplete. 2 of 9 steps complete (22%).")

	out = mustRun(t, dir, "status")
	assert.Contains(t, out, "2 of 9 steps complete, 7 remaining")
	assert.Contains(t, out, "[x] 1.")
	assert.Contains(t, out, "[ ] 2.")
	assert.Contains(t, out, "22%")
}

func TestStep_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "step", "complete", "ten")
	assert.ErrorContains(t, err, "step must be a number")

	_, err = runCLI(t, dir, "", "step", "complete", "10")
	assert.ErrorContains(t, err, "10")

	_, err = runCLI(t, dir, "", "step", "complete")
	assert.Error(t, err)
}

func TestContent_Workflow(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "content", "add", "--title", "Ten Mistakes", "--type", "Blog Post")
	mustRun(t, dir, "content", "add", "--title", "Studio Tour", "--type", "Video")
	out := mustRun(t, dir, "content", "add", "--title", "Client Win", "--type", "Case Study")
	assert.Contains(t, out, "Client Win (Case Study)")

	items := library(t, dir)
	require.Len(t, items, 3)

	mustRun(t, dir, "content", "assign", string(items[0].ID), "discover")
	out = mustRun(t, dir, "content", "assign", string(items[1].ID), "discover")
	assert.Contains(t, out, "discover")

	out = mustRun(t, dir, "content", "list", "--stage", "discover")
	assert.Contains(t, out, "Stage: Discover")
	assert.Contains(t, out, "Ten Mistakes")
	assert.NotContains(t, out, "Client Win")

	out = mustRun(t, dir, "content", "list", "--unassigned")
	assert.Contains(t, out, "Client Win")
	assert.NotContains(t, out, "Studio Tour")

	out = mustRun(t, dir, "gaps")
	assert.Contains(t, out, "CONTENT GAPS")
	assert.Contains(t, out, "Total missing: 8")

	out = mustRun(t, dir, "funnel")
	assert.Contains(t, out, "DISCOVER")
	assert.Contains(t, out, "2/2 pieces, covered")
	assert.Contains(t, out, "0/2 pieces, 2 missing")

	mustRun(t, dir, "content", "unassign", string(items[1].ID))
	mustRun(t, dir, "content", "remove", string(items[0].ID))

	out = mustRun(t, dir, "gaps")
	assert.Contains(t, out, "Total missing: 10")
	assert.Len(t, library(t, dir), 2)
}

func TestContent_Errors(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "content", "add", "--title", "Intro", "--type", "Video")
	id := string(library(t, dir)[0].ID)

	_, err := runCLI(t, dir, "", "content", "add", "--title", "   ", "--type", "Video")
	assert.ErrorContains(t, err, "title")

	_, err = runCLI(t, dir, "", "content", "add", "--title", "No type")
	assert.ErrorContains(t, err, "required")

	_, err = runCLI(t, dir, "", "content", "assign", id, "nurture")
	assert.ErrorContains(t, err, `invalid stage "nurture"`)

	_, err = runCLI(t, dir, "", "content", "remove", "missing")
	assert.ErrorContains(t, err, "not found")

	_, err = runCLI(t, dir, "", "content", "list", "--stage", "nurture")
	assert.ErrorContains(t, err, "valid stages")

	_, err = runCLI(t, dir, "", "content", "list", "--stage", "trust", "--unassigned")
	assert.Error(t, err)

	assert.Len(t, library(t, dir), 1)
}

func TestProfileAndCopy(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "profile", "set", "--name", "Ada", "--company", "Acme")
	mustRun(t, dir, "profile", "set", "--company", "Analytical Engines")

	out := mustRun(t, dir, "profile", "show")
	assert.Contains(t, out, "Name:    Ada")
	assert.Contains(t, out, "Company: Analytical Engines")

	_, err := runCLI(t, dir, "", "profile", "set")
	assert.Error(t, err)

	mustRun(t, dir, "copy", "set", "Hello", "world")
	out = mustRun(t, dir, "copy", "show")
	assert.Equal(t, "Hello world\n", out)

	out = mustRun(t, dir, "status")
	assert.Contains(t, out, "Ada")
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "content", "add", "--title", "Intro", "--type", "Video")
	mustRun(t, dir, "step", "complete", "5")

	out, err := runCLI(t, dir, "no\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled.")
	assert.Len(t, library(t, dir), 1)

	out, err = runCLI(t, dir, "", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled.")

	out, err = runCLI(t, dir, "reset\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "All toolkit data erased.")
	assert.Empty(t, library(t, dir))
	assert.Contains(t, mustRun(t, dir, "status"), "0 of 9 steps complete")

	out = mustRun(t, dir, "reset", "--yes")
	assert.Contains(t, out, "All toolkit data erased.")
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "toolkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backend: sqlite\nnamespace: demo_\n"), 0o600))

	mustRun(t, dir, "--config", cfgPath, "content", "add", "--title", "Intro", "--type", "Video")
	assert.FileExists(t, filepath.Join(dir, storage.SQLiteFileName))

	out := mustRun(t, dir, "--config", cfgPath, "content", "list")
	assert.Contains(t, out, "Intro")

	// The file backend in the same dir holds nothing
	out = mustRun(t, dir, "content", "list")
	assert.Contains(t, out, "No content items")

	// Flags beat the config file
	out = mustRun(t, dir, "--config", cfgPath, "--backend", "file", "content", "list")
	assert.Contains(t, out, "No content items")

	_, err := runCLI(t, dir, "", "--backend", "cassette", "status")
	assert.ErrorContains(t, err, "config error")
}

func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "toolkit.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"backend": "sqlite"}`), 0o600))
	t.Setenv("TOOLKIT_BACKEND", "file")

	mustRun(t, dir, "--config", cfgPath, "content", "add", "--title", "Intro", "--type", "Video")
	assert.NoFileExists(t, filepath.Join(dir, storage.SQLiteFileName))
	assert.Len(t, library(t, dir), 1)
}
