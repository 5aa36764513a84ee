/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/untillpro/goutils/logger"

	"github.com/DanielFath/domm/pkg/model"
	"github.com/DanielFath/domm/pkg/parser"
)

// buildModel parses model files found by paths and builds a single model of them
func buildModel(ctx context.Context, paths []string, cfg projectConfig) (*model.Model, error) {
	asts := make([]*parser.FileModelAST, 0)
	for _, path := range paths {
		files, err := modelFiles(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return nil, err
			}
			ast, err := parser.ParseFile(file, string(content))
			if err != nil {
				return nil, err
			}
			if logger.IsVerbose() {
				logger.Verbose("parsed", file)
			}
			asts = append(asts, ast)
		}
	}
	if len(asts) == 0 {
		return nil, fmt.Errorf("%w: %s", parser.ErrDirContainsNoModelFiles, strings.Join(paths, ", "))
	}

	ast, err := parser.MergeFileModelASTs(asts)
	if err != nil {
		return nil, err
	}
	opts := []model.BuildOptFunc{model.WithErrorLimit(cfg.ErrorLimit)}
	if cfg.Std {
		opts = append(opts, model.WithStdPrelude())
	}
	return model.BuildModel(ast, opts...)
}

// modelFiles returns the path itself if it is a file, model files of the directory otherwise
func modelFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != parser.ModelFileExtension {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}
