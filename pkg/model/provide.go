/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"github.com/DanielFath/domm/pkg/parser"
)

// BuildModel builds the namespace of the model tree, resolves its cross-references,
// synthesizes relationships and validates constraint applications.
// Returns nil model if any step fails
func BuildModel(ast *parser.ModelStmt, opts ...BuildOptFunc) (*Model, error) {
	return buildModelImpl(ast, newBuildOpts(opts))
}

// BuildModelDir parses every model file of the directory and builds the model
func BuildModelDir(fs parser.IReadFS, dir string, opts ...BuildOptFunc) (*Model, error) {
	ast, err := parser.ParseModelDir(fs, dir)
	if err != nil {
		return nil, err
	}
	return BuildModel(ast, opts...)
}
