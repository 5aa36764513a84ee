/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/DanielFath/domm/pkg/model"
)

func TestCheck(t *testing.T) {
	require := require.New(t)

	testCases := []struct {
		name string
		args []string
	}{
		{
			name: "single model directory",
			args: []string{"testdata/shop"},
		},
		{
			name: "single file",
			args: []string{"testdata/shop/shop.domm"},
		},
		{
			name: "model split into files",
			args: []string{"testdata/split"},
		},
		{
			name: "files of the same model from different paths",
			args: []string{"testdata/split/types.domm", "testdata/split/sales.domm", "-v"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := execRootCmd(append([]string{"domm", "check"}, tc.args...), "1.0.0")
			require.NoError(err)
		})
	}
}

func TestCheckErrors(t *testing.T) {
	require := require.New(t)

	t.Run("first error stops the build", func(t *testing.T) {
		err := execRootCmd([]string{"domm", "check", "testdata/broken"}, "1.0.0")
		require.ErrorIs(err, model.ErrDuplicateFeatureError)
		require.ErrorContains(err, filepath.Join("testdata", "broken", "broken.domm")+":5:3: duplicate feature: id")
		require.NotErrorIs(err, model.ErrDuplicateTypeError)
	})

	t.Run("error limit", func(t *testing.T) {
		err := execRootCmd([]string{"domm", "check", "testdata/broken", "--error-limit", "0"}, "1.0.0")
		require.ErrorIs(err, model.ErrDuplicateFeatureError)
		require.ErrorIs(err, model.ErrDuplicateTypeError)
		require.NotErrorIs(err, model.ErrTypeNotFoundError)
	})

	t.Run("error limit from environment", func(t *testing.T) {
		t.Setenv(envErrorLimit, "0")
		err := execRootCmd([]string{"domm", "check", "testdata/broken"}, "1.0.0")
		require.ErrorIs(err, model.ErrDuplicateTypeError)
	})

	t.Run("standard declarations disabled", func(t *testing.T) {
		t.Setenv(envStd, "false")
		err := execRootCmd([]string{"domm", "check", "testdata/split"}, "1.0.0")
		require.ErrorIs(err, model.ErrTypeNotFoundError)

		err = execRootCmd([]string{"domm", "check", "testdata/split", "--std=true"}, "1.0.0")
		require.NoError(err)
	})

	t.Run("models differ", func(t *testing.T) {
		err := execRootCmd([]string{"domm", "check", "testdata/shop", "testdata/split"}, "1.0.0")
		require.ErrorContains(err, "model shop expected, found split")
	})

	t.Run("nothing to check", func(t *testing.T) {
		err := execRootCmd([]string{"domm", "check", "testdata"}, "1.0.0")
		require.Error(err)

		err = execRootCmd([]string{"domm", "check", "testdata/missing"}, "1.0.0")
		require.ErrorIs(err, fs.ErrNotExist)
	})
}

func TestExport(t *testing.T) {
	require := require.New(t)
	out := filepath.Join(t.TempDir(), "shop.dot")

	err := execRootCmd([]string{"domm", "export", "testdata/shop", "-o", out}, "1.0.0")
	require.NoError(err)
	dot, err := os.ReadFile(out)
	require.NoError(err)
	require.Contains(string(dot), `digraph "shop" {`)
	require.Contains(string(dot), `"sales.Customer" -> "sales.Address" [dir = both, arrowtail = diamond`)
	require.Contains(string(dot), `"sales.Order" -> "sales.Billing" [style = dashed]`)
	require.NotContains(string(dot), `"sales.Order" -> "sales.Customer"`)

	err = execRootCmd([]string{"domm", "export", "testdata/shop", "-o", out, "--show-subsumed", "--hide-features"}, "1.0.0")
	require.NoError(err)
	dot, err = os.ReadFile(out)
	require.NoError(err)
	require.Contains(string(dot), `"sales.Order" -> "sales.Customer" [label = "customer"`)
	require.Contains(string(dot), `"sales.Order" [label = "{Order}", style = "filled"]`)
}

func TestProjectFile(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	src, err := filepath.Abs("testdata/split")
	require.NoError(err)
	out := filepath.Join(dir, "split.dot")

	cfgFile := filepath.Join(dir, "domm.yaml")
	require.NoError(os.WriteFile(cfgFile, []byte(`
sources:
  - `+src+`
export:
  output: `+out+`
  showFeatures: false
`), defaultPermissions))

	err = execRootCmd([]string{"domm", "export", "-c", cfgFile}, "1.0.0")
	require.NoError(err)
	dot, err := os.ReadFile(out)
	require.NoError(err)
	require.Contains(string(dot), `"sales.Invoice" [label = "{Invoice}", style = "filled"]`)

	t.Run("missing project file", func(t *testing.T) {
		err := execRootCmd([]string{"domm", "check", "-c", filepath.Join(dir, "none.yaml")}, "1.0.0")
		require.ErrorIs(err, fs.ErrNotExist)
	})

	t.Run("malformed project file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(os.WriteFile(bad, []byte("sources: {"), defaultPermissions))
		err := execRootCmd([]string{"domm", "check", "-c", bad}, "1.0.0")
		require.ErrorContains(err, "bad.yaml")
	})
}

func TestLoadConfig(t *testing.T) {
	require := require.New(t)

	load := func(args ...string) (projectConfig, error) {
		cmd := &cobra.Command{}
		params := dommParams{}
		initGlobalFlags(cmd, &params)
		require.NoError(cmd.Flags().Parse(args))
		return loadConfig(cmd, params)
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := load()
		require.NoError(err)
		require.Equal(defaultConfig(), cfg)
		require.Equal([]string{"a"}, sources([]string{"a"}, cfg))
		require.Equal([]string{defaultSourceDir}, sources(nil, cfg))
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(envStd, "0")
		t.Setenv(envErrorLimit, " 7 ")
		cfg, err := load()
		require.NoError(err)
		require.False(cfg.Std)
		require.Equal(7, cfg.ErrorLimit)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv(envErrorLimit, "7")
		cfg, err := load("--error-limit", "3")
		require.NoError(err)
		require.Equal(3, cfg.ErrorLimit)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Setenv(envErrorLimit, "many")
		_, err := load()
		require.ErrorContains(err, envErrorLimit)

		t.Setenv(envErrorLimit, "")
		t.Setenv(envStd, "maybe")
		_, err = load()
		require.ErrorContains(err, envStd)
	})
}

func TestVersion(t *testing.T) {
	require := require.New(t)
	require.NoError(execRootCmd([]string{"domm", "version"}, "1.0.0"))
}

func TestExitCode(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	require.NoError(os.WriteFile(filepath.Join(dir, "bad.domm"), []byte("model m package {"), defaultPermissions))

	err := execRootCmd([]string{"domm", "check", dir}, "1.0.0")
	require.Error(err)
	require.Equal(exitCodeInvalidModel, exitCode(err))

	err = execRootCmd([]string{"domm", "check", "testdata/broken"}, "1.0.0")
	require.Equal(exitCodeInvalidModel, exitCode(err))

	err = execRootCmd([]string{"domm", "check", "testdata/missing"}, "1.0.0")
	require.Equal(exitCodeFailure, exitCode(err))
}
