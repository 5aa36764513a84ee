/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package parser

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var modelLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//.*`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Opposite", Pattern: `<>`},
	{Name: "Punct", Pattern: `[{}\[\](),.+]`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Whitespace", Pattern: `[ \r\n\t]+`},
})

var modelParser = participle.MustBuild[ModelStmt](
	participle.Lexer(modelLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

func parseImpl(fileName string, content string) (*ModelStmt, error) {
	return modelParser.ParseString(fileName, content)
}

func mergeModels(mergeFrom, mergeTo *ModelStmt) {
	mergeTo.Statements = append(mergeTo.Statements, mergeFrom.Statements...)
	mergeTo.Packages = append(mergeTo.Packages, mergeFrom.Packages...)
	if mergeTo.Desc == nil {
		mergeTo.Desc = mergeFrom.Desc
	}
}

func parseFSImpl(fs IReadFS, dir string) ([]*FileModelAST, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	asts := make([]*FileModelAST, 0)
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ModelFileExtension {
			continue
		}
		fp := filepath.ToSlash(filepath.Join(dir, entry.Name()))
		bytes, err := fs.ReadFile(fp)
		if err != nil {
			return nil, err
		}
		ast, err := parseImpl(entry.Name(), string(bytes))
		if err != nil {
			return nil, err
		}
		asts = append(asts, &FileModelAST{
			FileName: entry.Name(),
			Ast:      ast,
		})
	}
	if len(asts) == 0 {
		return nil, ErrDirContainsNoModelFiles
	}
	return asts, nil
}

func mergeFileModelASTsImpl(asts []*FileModelAST) (*ModelStmt, error) {
	if len(asts) == 0 {
		return nil, ErrNoModelFiles
	}
	headAst := asts[0].Ast

	for i := 1; i < len(asts); i++ {
		f := asts[i]
		if f.Ast.Name != headAst.Name {
			return nil, ErrUnexpectedModel(f.FileName, string(f.Ast.Name), string(headAst.Name))
		}
		mergeModels(f.Ast, headAst)
	}
	return headAst, nil
}
