package main

import (
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useFlags points the command-line flags at a temp database for one test.
func useFlags(t *testing.T, dsn, table string) {
	saved := []string{*configPath, *driverFlag, *dsnFlag, *dumpName}
	t.Cleanup(func() {
		*configPath, *driverFlag, *dsnFlag, *dumpName = saved[0], saved[1], saved[2], saved[3]
	})
	*configPath = filepath.Join(t.TempDir(), "missing.json")
	*driverFlag = "sqlite3"
	*dsnFlag = dsn
	*dumpName = table
}

func TestRunInitCreatesTables(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "vulcan.db")
	useFlags(t, dsn, "")

	require.NoError(t, run(initCmd.FullCommand()))

	logger, _ := logtest.NewNullLogger()
	store, err := openStore("sqlite3", dsn, logger)
	require.NoError(t, err)
	defer store.Close()
	for _, name := range tableNames() {
		_, err := store.Columns(name)
		assert.NoError(t, err, name)
	}
}

func TestRunReturnsCommandErrors(t *testing.T) {
	useFlags(t, filepath.Join(t.TempDir(), "vulcan.db"), samplesTable)

	// the tables were never created, so dump fails instead of exiting
	err := run(dumpCmd.FullCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
}

func TestRunReturnsOpenErrors(t *testing.T) {
	useFlags(t, "", "")
	*driverFlag = "access"

	err := run(initCmd.FullCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}
