/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package parser

import (
	"embed"
	"fmt"
)

//go:embed std/std.domm
var stdFS embed.FS

// ParseFile parses content of the single file, creates FileModelAST and returns pointer to it.
// Performs syntax analysis only
func ParseFile(fileName, content string) (*FileModelAST, error) {
	ast, err := parseImpl(fileName, content)
	if err != nil {
		return nil, err
	}
	return &FileModelAST{
		FileName: fileName,
		Ast:      ast,
	}, nil
}

// MergeFileModelASTs merges files declaring the same model into a single model tree
func MergeFileModelASTs(asts []*FileModelAST) (*ModelStmt, error) {
	return mergeFileModelASTsImpl(asts)
}

// ParseModelDir is a helper which parses all model files from specified FS dir and merges them
func ParseModelDir(fs IReadFS, dir string) (*ModelStmt, error) {
	asts, err := parseFSImpl(fs, dir)
	if err != nil {
		return nil, err
	}
	return MergeFileModelASTs(asts)
}

// StdPrelude returns a fresh tree of the embedded standard declarations
func StdPrelude() *ModelStmt {
	content, err := stdFS.ReadFile("std/" + stdPreludeFileName)
	if err != nil {
		panic(err)
	}
	ast, err := parseImpl(stdPreludeFileName, string(content))
	if err != nil {
		panic(fmt.Errorf("embedded prelude: %w", err))
	}
	return ast
}
