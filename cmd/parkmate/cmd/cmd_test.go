package cmd

import (
	"bytes"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pinLine = regexp.MustCompile(`PIN: (\d{4})`)

// run executes the root command against a SQLite file in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "gate.db"))
	t.Setenv("PARKING_UNIT_RATE", "10")
	t.Setenv("PARKING_CURRENCY", "TL")

	storeDriver, verbose, purgeConfirmed = "", false, false
	pageLimit, pageToken = 50, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGateLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "entry")
	require.NoError(t, err)
	m := pinLine.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	pin := m[1]

	out, err = run(t, dir, "exit", pin)
	require.NoError(t, err)
	assert.Contains(t, out, "Duration: 1 min")
	assert.Contains(t, out, "Amount:   10.00 TL")

	out, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "ENTRY")
	assert.Contains(t, out, "EXIT")
	assert.Contains(t, out, "COMPLETED")

	out, err = run(t, dir, "payments")
	require.NoError(t, err)
	assert.Regexp(t, `TOTAL\s+10\.00 TL`, out)

	_, err = run(t, dir, "exit", pin)
	assert.NoError(t, err, "a PIN resolves to its latest entry even after an exit")
}

func TestExit_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "exit", "12a4")
	assert.ErrorContains(t, err, "invalid PIN")

	_, err = run(t, dir, "exit", "0000")
	assert.ErrorContains(t, err, "no entry found with PIN 0000")
}

func TestLogsPurge(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "entry")
	require.NoError(t, err)

	_, err = run(t, dir, "logs", "purge")
	assert.ErrorContains(t, err, "--yes")

	out, err := run(t, dir, "logs", "purge", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All records were deleted.")

	out, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No records.")
}

func TestMigrate_MemoryStore(t *testing.T) {
	_, err := run(t, t.TempDir(), "migrate", "--store", "memory")
	assert.ErrorContains(t, err, "memory store")
}
