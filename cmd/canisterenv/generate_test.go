package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "canister_ids.json"), []byte(`{
		"frontend": {"local": "rrkah-fqaaa-aaaaa-aaaaq-cai"}
	}`), 0644))

	return dir
}

func TestGenerate_JSONToExplicitOutput(t *testing.T) {
	dir := seedProject(t)
	out := filepath.Join(t.TempDir(), "env.json")

	rootCmd.SetArgs([]string{"generate", "--dir", dir, "--format", "json", "--output", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err, "an explicit --output must receive the rendered format")

	var vars map[string]string
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Equal(t, "rrkah-fqaaa-aaaaa-aaaaq-cai", vars["CANISTER_ID_FRONTEND"])
	assert.Equal(t, "local", vars["DFX_NETWORK"])
}

func TestGenerate_DotenvDefaultOutput(t *testing.T) {
	dir := seedProject(t)

	// Flag values persist across Execute calls on the shared rootCmd;
	// reset --output explicitly so the configured default applies.
	rootCmd.SetArgs([]string{"generate", "--dir", dir, "--format", "dotenv", "--output="})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "CANISTER_ID_FRONTEND=rrkah-fqaaa-aaaaa-aaaaq-cai")
}
