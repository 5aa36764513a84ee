/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

// dommParams are the command line flags
type dommParams struct {
	ConfigFile   string
	Std          bool
	ErrorLimit   int
	Output       string
	ShowSubsumed bool
	HideFeatures bool
}

// projectConfig is the content of domm.yaml
type projectConfig struct {
	Sources    []string     `yaml:"sources"`
	Std        bool         `yaml:"std"`
	ErrorLimit int          `yaml:"errorLimit"`
	Export     exportConfig `yaml:"export"`
}

type exportConfig struct {
	Output       string `yaml:"output"`
	ShowSubsumed bool   `yaml:"showSubsumed"`
	ShowFeatures bool   `yaml:"showFeatures"`
}
