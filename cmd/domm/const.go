/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

const (
	defaultConfigFileName = "domm.yaml"
	defaultSourceDir      = "."
	defaultPermissions    = 0644

	envStd        = "DOMM_STD"
	envErrorLimit = "DOMM_ERROR_LIMIT"

	flagConfig       = "config"
	flagStd          = "std"
	flagErrorLimit   = "error-limit"
	flagOutput       = "output"
	flagShowSubsumed = "show-subsumed"
	flagHideFeatures = "hide-features"

	exitCodeFailure      = 1
	exitCodeInvalidModel = 2
)
