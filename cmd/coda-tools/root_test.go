package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFlags struct {
	store   string
	prune   bool
	debug   bool
	workers int
	docs    []string
}

func newTestCommand(t *testing.T, args ...string) (*cobra.Command, *testFlags) {
	t.Helper()

	f := &testFlags{}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&f.store, "store", "", "")
	cmd.Flags().BoolVar(&f.prune, "prune", false, "")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "")
	cmd.Flags().IntVar(&f.workers, "workers", 4, "")
	cmd.Flags().StringSliceVar(&f.docs, "docs", []string{}, "")
	require.NoError(t, cmd.ParseFlags(args))

	return cmd, f
}

func TestBindFlags(t *testing.T) {
	yes := true
	no := false

	cmd, f := newTestCommand(t, "--store", "/from/cli", "--debug")
	err := bindFlags(cmd, YamlConfig{
		StorePath: "/from/config",
		Prune:     &yes,
		Debug:     &no,
		Workers:   "8",
		Docs:      []string{"d1", "d2"},
		KeepGoing: &yes, // no such flag here
	})
	require.NoError(t, err)

	assert.Equal(t, "/from/cli", f.store, "command line wins")
	assert.True(t, f.debug, "command line wins")
	assert.True(t, f.prune)
	assert.Equal(t, 8, f.workers)
	assert.Equal(t, []string{"d1", "d2"}, f.docs)
}

func TestBindFlagsBadValue(t *testing.T) {
	cmd, _ := newTestCommand(t)
	err := bindFlags(cmd, YamlConfig{Workers: "lots"})
	assert.ErrorContains(t, err, "workers")
}

func TestInitializeConfig(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	reset := func(t *testing.T) {
		Config, ConfigActual, ParsedConfig = "", "", YamlConfig{}
		t.Setenv("HOME", t.TempDir())
		t.Setenv("CODA_TOOLS_CONFIG", "")
	}
	t.Cleanup(func() { Config, ConfigActual, ParsedConfig = "", "", YamlConfig{} })

	t.Run("no config file is fine", func(t *testing.T) {
		reset(t)
		cmd, _ := newTestCommand(t)
		require.NoError(t, initializeConfig(cmd))
		assert.Empty(t, ConfigActual)
	})

	t.Run("default location", func(t *testing.T) {
		reset(t)
		home := os.Getenv("HOME")
		require.NoError(t, os.MkdirAll(filepath.Join(home, ".config"), 0750))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".config", "coda-tools.yaml"),
			[]byte("store: ~/coda\nprune: true\ndocs: [d1]\n"), 0600))

		cmd, f := newTestCommand(t)
		require.NoError(t, initializeConfig(cmd))
		assert.Equal(t, filepath.Join(home, ".config", "coda-tools.yaml"), ConfigActual)
		assert.Equal(t, "~/coda", f.store)
		assert.True(t, f.prune)
		assert.Equal(t, []string{"d1"}, f.docs)
	})

	t.Run("from the environment", func(t *testing.T) {
		reset(t)
		path := filepath.Join(t.TempDir(), "elsewhere.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0600))
		t.Setenv("CODA_TOOLS_CONFIG", path)

		cmd, f := newTestCommand(t)
		require.NoError(t, initializeConfig(cmd))
		assert.Equal(t, path, ConfigActual)
		assert.Equal(t, 2, f.workers)
	})

	t.Run("named but missing", func(t *testing.T) {
		reset(t)
		Config = filepath.Join(t.TempDir(), "nope.yaml")

		cmd, _ := newTestCommand(t)
		assert.Error(t, initializeConfig(cmd))
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		reset(t)
		Config = filepath.Join(t.TempDir(), "typo.yaml")
		require.NoError(t, os.WriteFile(Config, []byte("stroe: ~/coda\n"), 0600))

		cmd, _ := newTestCommand(t)
		assert.ErrorContains(t, initializeConfig(cmd), "stroe")
	})
}

func TestAPIToken(t *testing.T) {
	t.Cleanup(func() { APITokenCmd = []string{} })

	t.Run("environment first", func(t *testing.T) {
		t.Setenv("CODA_API_KEY", " tok-env\n")
		APITokenCmd = []string{"echo", "tok-cmd"}

		token, err := apiToken()
		require.NoError(t, err)
		assert.Equal(t, "tok-env", token)
	})

	t.Run("token command", func(t *testing.T) {
		t.Setenv("CODA_API_KEY", "")
		APITokenCmd = []string{"printf", "tok-cmd\nsecond line\n"}

		token, err := apiToken()
		require.NoError(t, err)
		assert.Equal(t, "tok-cmd", token)
	})

	t.Run("nothing", func(t *testing.T) {
		t.Setenv("CODA_API_KEY", "")
		APITokenCmd = []string{}

		_, err := apiToken()
		assert.ErrorContains(t, err, "CODA_API_KEY")
	})
}
