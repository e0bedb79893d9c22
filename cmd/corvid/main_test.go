package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// resetFlags restores flag defaults; commands are package globals shared
// by every test.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckJSON(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"lib/helpers.php": "<?php\nfunction helper($a) { return $a; }\n",
		"main.php":        "<?php\nhelper(1);\nmissing();\n",
		"notes.txt":       "not php",
		".hidden/x.php":   "<?php\nbroken(;\n",
	})

	out, err := execute(t, "--color", "off", "check", "--format", "json", dir)
	require.ErrorIs(t, err, errFindings)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Immediate)
	require.Len(t, report.Units, 2, "Hidden directories and other extensions are skipped")

	mainUnit := report.Units[1]
	assert.Equal(t, filepath.Join(dir, "main.php"), mainUnit.Path)
	require.Len(t, mainUnit.Diagnostics, 1)
	assert.Equal(t, 3, mainUnit.Diagnostics[0].Position.Line)
	assert.Empty(t, report.Units[0].Diagnostics)
}

func TestCheckCleanProjectSucceeds(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.php": "<?php\n$greeting = 'hi';\necho $greeting;\n",
	})

	out, err := execute(t, "--color", "off", "check", "--format", "short", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheckRejectsUnknownKind(t *testing.T) {
	dir := writeProject(t, map[string]string{"main.php": "<?php\n"})

	_, err := execute(t, "--color", "off", "check", "--promote", "Nope", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestSymbolsListsDeclarations(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app.php": "<?php\nnamespace App;\nconst LIMIT = 6 * 7;\nfunction run($a, $b = 1) {}\n",
	})

	out, err := execute(t, "--color", "off", "symbols", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `App\LIMIT`)
	assert.Contains(t, out, "= 42")
	assert.Contains(t, out, `App\run`)
	assert.Contains(t, out, "1..2 args")
}
