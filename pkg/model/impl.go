/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/untillpro/goutils/logger"

	"github.com/DanielFath/domm/pkg/parser"
)

type buildContext struct {
	ast   *parser.ModelStmt
	opts  buildOpts
	model *Model
	errs  []error

	// property -> property which names it as its opposite end
	oppositeOf map[DeclID]DeclID
}

type buildStep struct {
	name string
	f    func()
}

func buildModelImpl(ast *parser.ModelStmt, opts buildOpts) (*Model, error) {
	c := &buildContext{
		ast:        ast,
		opts:       opts,
		model:      newModel(Name(ast.Name), description(ast.Desc)),
		oppositeOf: make(map[DeclID]DeclID),
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return c.model, nil
}

func (c *buildContext) build() error {
	steps := []buildStep{
		{"namespace", c.buildNamespace},
		{"cross-references", c.resolveRefs},
		{"relationships", c.synthesizeRelationships},
		{"constraints", c.validateConstraints},
	}
	for _, step := range steps {
		step.f()
		if len(c.errs) > 0 {
			if logger.IsVerbose() {
				logger.Verbose(fmt.Sprintf("model %s: %s failed with %d error(s)", c.model.name, step.name, len(c.errs)))
			}
			if len(c.errs) == 1 {
				return c.errs[0]
			}
			return errors.Join(c.errs...)
		}
		if logger.IsVerbose() {
			logger.Verbose(fmt.Sprintf("model %s: %s done", c.model.name, step.name))
		}
	}
	return nil
}

func (c *buildContext) stmtErr(pos *lexer.Position, err error) {
	c.errs = append(c.errs, errorAt(err, pos))
}

// full reports whether the error limit is reached and the current step should stop
func (c *buildContext) full() bool {
	return c.opts.errorLimit > 0 && len(c.errs) >= c.opts.errorLimit
}

func description(n *parser.NamedElem) Description {
	return Description{Short: n.GetShort(), Long: n.GetLong()}
}
