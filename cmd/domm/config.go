/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
	"gopkg.in/yaml.v3"
)

func defaultConfig() projectConfig {
	return projectConfig{
		Sources:    []string{defaultSourceDir},
		Std:        true,
		ErrorLimit: 1,
		Export: exportConfig{
			ShowFeatures: true,
		},
	}
}

func initGlobalFlags(cmd *cobra.Command, params *dommParams) {
	cmd.SilenceErrors = true
	cmd.Flags().StringVarP(&params.ConfigFile, flagConfig, "c", "", "path to project file, "+defaultConfigFileName+" is used if exists")
	cmd.Flags().BoolVar(&params.Std, flagStd, true, "declare standard data types and constraints")
	cmd.Flags().IntVar(&params.ErrorLimit, flagErrorLimit, 1, "number of errors to collect before stopping, 0 means no limit")
}

// loadConfig reads the project file, then applies environment and command line overrides.
// Missing default project file is not an error
func loadConfig(cmd *cobra.Command, params dommParams) (projectConfig, error) {
	cfg := defaultConfig()

	path := params.ConfigFile
	explicit := path != ""
	if !explicit {
		path = defaultConfigFileName
	}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		logger.Verbose("using project file", path)
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return cfg, err
	}

	if v, ok := lookupEnv(envStd); ok {
		std, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envStd, err)
		}
		cfg.Std = std
	}
	if v, ok := lookupEnv(envErrorLimit); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envErrorLimit, err)
		}
		cfg.ErrorLimit = limit
	}

	flags := cmd.Flags()
	if flags.Changed(flagStd) {
		cfg.Std = params.Std
	}
	if flags.Changed(flagErrorLimit) {
		cfg.ErrorLimit = params.ErrorLimit
	}
	if f := flags.Lookup(flagOutput); f != nil && f.Changed {
		cfg.Export.Output = params.Output
	}
	if f := flags.Lookup(flagShowSubsumed); f != nil && f.Changed {
		cfg.Export.ShowSubsumed = params.ShowSubsumed
	}
	if f := flags.Lookup(flagHideFeatures); f != nil && f.Changed {
		cfg.Export.ShowFeatures = !params.HideFeatures
	}
	return cfg, nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// sources returns command line paths, project file sources if there are none
func sources(args []string, cfg projectConfig) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Sources
}
