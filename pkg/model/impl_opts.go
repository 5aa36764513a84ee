/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"github.com/DanielFath/domm/pkg/parser"
)

type BuildOptFunc func(opts *buildOpts)

type buildOpts struct {
	errorLimit int
	preludes   []*parser.ModelStmt
}

func newBuildOpts(opts []BuildOptFunc) buildOpts {
	o := buildOpts{errorLimit: defaultErrorLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithErrorLimit lets one pass collect up to limit errors before the build stops.
// Zero or negative limit means no limit. Default is to stop at the first error
func WithErrorLimit(limit int) BuildOptFunc {
	return func(opts *buildOpts) {
		opts.errorLimit = limit
	}
}

// WithPrelude registers declarations of the prelude models ahead of the model being built,
// as if they were declared in it
func WithPrelude(preludes ...*parser.ModelStmt) BuildOptFunc {
	return func(opts *buildOpts) {
		opts.preludes = append(opts.preludes, preludes...)
	}
}

// WithStdPrelude is WithPrelude(parser.StdPrelude())
func WithStdPrelude() BuildOptFunc {
	return WithPrelude(parser.StdPrelude())
}
