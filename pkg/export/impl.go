/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/exp/slices"

	"github.com/DanielFath/domm/pkg/model"
)

var labelReplacer = strings.NewReplacer(labelEscapes...)

func writeDOTImpl(w io.Writer, m *model.Model, o options) error {
	d := &dotWriter{w: w}
	d.line("digraph %s {", strconv.Quote(string(m.Name())))
	d.indent++
	for _, l := range strings.Split(graphHeader, "\n") {
		d.line("%s", l)
	}
	writeDecls(d, m, m.Roots(), o)
	writeEdges(d, m, o)
	d.indent--
	d.line("}")
	return d.err
}

// writeDecls renders declarations sorted by qualified name, packages become nested clusters
func writeDecls(d *dotWriter, m *model.Model, ids []model.DeclID, o options) {
	decls := make([]model.IDecl, 0, len(ids))
	for _, id := range ids {
		decls = append(decls, m.Decl(id))
	}
	slices.SortFunc(decls, func(a, b model.IDecl) bool {
		return a.QName().String() < b.QName().String()
	})

	for _, decl := range decls {
		switch decl := decl.(type) {
		case *model.Package:
			d.line("subgraph %s {", strconv.Quote(clusterPrefix+decl.QName().String()))
			d.indent++
			d.line("label = %s", strconv.Quote(string(decl.Name())))
			writeDecls(d, m, decl.Members(), o)
			d.indent--
			d.line("}")
		case *model.ConstraintDef:
		default:
			writeNode(d, m, decl, o)
		}
	}
}

func writeNode(d *dotWriter, m *model.Model, decl model.IDecl, o options) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	style := "filled"
	_, _ = buf.WriteString("{" + escape(string(decl.Name())))
	switch decl := decl.(type) {
	case *model.Enumeration:
		_, _ = buf.WriteString("|")
		for _, l := range decl.Literals() {
			_, _ = buf.WriteString(escape(string(l.Value)) + `\l`)
		}
	case *model.ValueObject:
		style += ",rounded"
		if o.showFeatures {
			writeFeatures(buf, m, decl.Features())
		}
	case *model.ExceptionType:
		style += ",dashed"
		if o.showFeatures {
			writeFeatures(buf, m, decl.Features())
		}
	case *model.Service:
		style += ",diagonals"
		if o.showFeatures {
			writeFeatures(buf, m, outsideCompartments(m, decl.Features()))
			writeCompartments(buf, m, decl.Compartments())
		}
	case *model.Entity:
		if o.showFeatures {
			writeFeatures(buf, m, outsideCompartments(m, decl.Features()))
			writeCompartments(buf, m, decl.Compartments())
		}
	}
	_, _ = buf.WriteString("}")

	d.line(`%s [label = "%s", style = %s]`, strconv.Quote(decl.QName().String()), buf.String(), strconv.Quote(style))
}

func outsideCompartments(m *model.Model, ids []model.DeclID) []model.DeclID {
	res := make([]model.DeclID, 0, len(ids))
	for _, id := range ids {
		if f, ok := m.Decl(id).(interface{ Compartment() model.Name }); ok && f.Compartment() == "" {
			res = append(res, id)
		}
	}
	return res
}

func writeCompartments(buf *bytebufferpool.ByteBuffer, m *model.Model, compartments []model.Compartment) {
	for _, c := range compartments {
		title := c.Desc.Short
		if title == "" {
			title = string(c.Name)
		}
		_, _ = buf.WriteString("|" + escape(title))
		writeFeatures(buf, m, c.Features)
	}
}

func writeFeatures(buf *bytebufferpool.ByteBuffer, m *model.Model, ids []model.DeclID) {
	_, _ = buf.WriteString("|")
	for _, id := range ids {
		switch f := m.Decl(id).(type) {
		case *model.Property:
			_, _ = buf.WriteString(propertyLabel(f) + `\l`)
		case *model.Operation:
			_, _ = buf.WriteString(operationLabel(m, f) + `\l`)
		}
	}
}

// propertyLabel renders `+ name: Type[]`, required properties are marked with `+`, optional with `?`
func propertyLabel(p *model.Property) string {
	mark := "? "
	if p.Modifiers().Required {
		mark = "+ "
	}
	s := mark + escape(string(p.Name())) + ": " + typeLabel(p)
	if p.IsKey() {
		s += " (key)"
	}
	return s
}

func operationLabel(m *model.Model, op *model.Operation) string {
	params := make([]string, 0, len(op.Params()))
	for _, id := range op.Params() {
		if p, ok := model.DeclAs[*model.Parameter](m, id); ok {
			params = append(params, escape(string(p.Name()))+": "+typeLabel(p))
		}
	}
	return fmt.Sprintf("%s(%s) : %s", escape(string(op.Name())), strings.Join(params, ", "), typeLabel(op))
}

func typeLabel(t typed) string {
	s := escape(t.Type().Ref().String())
	if mult := t.Multiplicity(); mult.Container {
		if mult.Upper == model.Unbounded {
			return s + "[]"
		}
		return s + "[" + strconv.Itoa(mult.Upper) + "]"
	}
	return s
}

func writeEdges(d *dotWriter, m *model.Model, o options) {
	edges := m.Edges()
	if o.showSubsumed {
		edges = m.AllEdges()
	}
	for _, e := range edges {
		d.line("%s -> %s [%s]",
			strconv.Quote(m.Decl(e.A()).QName().String()),
			strconv.Quote(m.Decl(e.B()).QName().String()),
			edgeAttrs(m, e))
	}
}

func edgeAttrs(m *model.Model, e *model.Edge) string {
	switch e.Kind() {
	case model.EdgeKind_Extends:
		return "arrowhead = empty"
	case model.EdgeKind_Depends:
		return "style = dashed"
	}
	c := e.Cardinality()
	attrs := fmt.Sprintf("label = %s, taillabel = %s, headlabel = %s",
		strconv.Quote(string(m.Decl(e.Via()).Name())),
		strconv.Quote(bounds(c.MinA, c.MaxA)),
		strconv.Quote(bounds(c.MinB, c.MaxB)))
	if e.Kind() == model.EdgeKind_Composite {
		attrs = "dir = both, arrowtail = diamond, " + attrs
	}
	if e.Subsumed() {
		attrs += ", style = dotted"
	}
	return attrs
}

func bounds(min, max int) string {
	if max == model.Unbounded {
		return strconv.Itoa(min) + "..*"
	}
	return strconv.Itoa(min) + ".." + strconv.Itoa(max)
}

func escape(s string) string {
	return labelReplacer.Replace(s)
}
