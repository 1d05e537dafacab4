package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestSeedThenReport(t *testing.T) {
	t.Setenv("LOG_MODE", "test")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))

	require.Contains(t, runCLI(t, "seed"), "seeded 8 profiles")
	require.Contains(t, runCLI(t, "seed"), "nothing seeded")

	out := runCLI(t, "report", "best-profession")
	require.Contains(t, out, `"profession": "Programmer"`)

	out = runCLI(t, "report", "best-clients", "--limit", "1")
	require.Contains(t, out, `"fullName": "Harry Potter"`)
	require.NotContains(t, out, "Mr Robot")
}
