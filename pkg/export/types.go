/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/DanielFath/domm/pkg/model"
)

type Option func(*options)

type options struct {
	showSubsumed bool
	showFeatures bool
}

// dotWriter keeps the first write error, later writes are skipped
type dotWriter struct {
	w      io.Writer
	indent int
	err    error
}

func (d *dotWriter) line(format string, args ...any) {
	if d.err != nil {
		return
	}
	if _, err := io.WriteString(d.w, strings.Repeat(indentUnit, d.indent)); err != nil {
		d.err = err
		return
	}
	_, d.err = fmt.Fprintf(d.w, format+"\n", args...)
}

// typed is implemented by properties, operations and parameters
type typed interface {
	Type() *model.CrossRef
	Multiplicity() model.Multiplicity
}
