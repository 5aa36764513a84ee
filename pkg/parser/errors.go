/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package parser

import (
	"errors"
	"fmt"
)

var ErrDirContainsNoModelFiles = errors.New("directory contains no model files")
var ErrNoModelFiles = errors.New("no model files to merge")

func ErrUnexpectedModel(fileName, actual, expected string) error {
	return fmt.Errorf("%s: model %s expected, found %s", fileName, expected, actual)
}
