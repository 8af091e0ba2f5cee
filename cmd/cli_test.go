package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mstgnz/checkout/infra/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestProjectCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "checkout.db")
	t.Setenv("SQLITE_PATH", dbPath)

	out, err := runCLI(t, "project", "add", "shop", "123", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "project shop saved")

	out, err = runCLI(t, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "shop")
	assert.Contains(t, out, "123")
	assert.NotContains(t, out, "secret")

	out, err = runCLI(t, "project", "remove", "shop")
	require.NoError(t, err)
	assert.Contains(t, out, "project shop removed")

	out, err = runCLI(t, "project", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "shop")
}

func TestProjectAdd_InvalidInput(t *testing.T) {
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "checkout.db"))

	_, err := runCLI(t, "project", "add", "shop", "abc", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project id")

	_, err = runCLI(t, "project", "add", "Not A Slug", "123", "secret")
	require.Error(t, err)

	_, err = runCLI(t, "project", "add", "shop")
	require.Error(t, err)
}

func TestProjectRemove_Missing(t *testing.T) {
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "checkout.db"))

	_, err := runCLI(t, "project", "remove", "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrProjectNotFound)
}
