/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/untillpro/goutils/cobrau"

	"github.com/DanielFath/domm/pkg/model"
)

//go:embed version
var version string

func main() {
	err := execRootCmd(os.Args, version)
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode(err))
}

func execRootCmd(args []string, ver string) error {
	rootCmd := cobrau.PrepareRootCmd("domm", "DOMMLite model checker", args, ver,
		newCheckCmd(),
		newExportCmd(),
	)
	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}

// exitCode tells invalid models from failures to run the command
func exitCode(err error) int {
	if _, ok := model.KindOf(err); ok {
		return exitCodeInvalidModel
	}
	var syntaxErr participle.Error
	if errors.As(err, &syntaxErr) {
		return exitCodeInvalidModel
	}
	return exitCodeFailure
}
