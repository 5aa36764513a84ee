/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

func (c *buildContext) synthesizeRelationships() {
	for _, d := range c.model.decls[1:] {
		if c.full() {
			return
		}
		switch d := d.(type) {
		case IClassifier:
			c.addStructuralEdges(d)
		case *Property:
			c.addPropertyEdge(d)
		}
	}
}

func (c *buildContext) addStructuralEdges(cl IClassifier) {
	if ext := cl.Extends(); ext != nil {
		c.model.edges = append(c.model.edges, &Edge{kind: EdgeKind_Extends, a: cl.ID(), b: ext.Target()})
	}
	for _, dep := range cl.Depends() {
		c.model.edges = append(c.model.edges, &Edge{kind: EdgeKind_Depends, a: cl.ID(), b: dep.Target()})
	}
}

func (c *buildContext) addPropertyEdge(p *Property) {
	target := c.model.decls[p.typ.target]
	if target.Kind().IsValueType() {
		if p.containment || p.opposite != nil {
			c.stmtErr(&p.pos, ErrWrongReferenceType(p.qname, target.QName(), target.Kind()))
		}
		return
	}

	var edge *Edge
	if p.opposite == nil {
		edge = c.oneSidedEdge(p)
	} else {
		edge = c.twoSidedEdge(p)
	}
	if edge == nil {
		return
	}
	if p.containment {
		if owner, ok := c.model.contained[target.QName()]; ok {
			c.stmtErr(&p.pos, ErrContainment(target.QName(), c.model.decls[owner].QName()))
			return
		}
		c.model.contained[target.QName()] = p.id
		edge.kind = EdgeKind_Composite
	}

	// second discovery of a bidirectional pair
	pairedID, paired := c.oppositeOf[p.id]
	if p.opposite != nil {
		pairedID, paired = p.opposite.target, true
	}
	if paired {
		if primary := c.model.propEdges[pairedID]; primary != nil {
			edge.partOf = primary
			if primary.partOf != nil {
				edge.partOf = primary.partOf
			}
		}
	}
	c.model.edges = append(c.model.edges, edge)
	c.model.propEdges[p.id] = edge
}

func (c *buildContext) oneSidedEdge(p *Property) *Edge {
	card := Cardinality{MinA: 1, MaxA: 1, MinB: 0, MaxB: 1}
	if p.multiplicity.Container {
		card.MaxB = Unbounded
	}
	if p.modifiers.Required {
		card.MinB = 1
		card.MinA = 0
	}
	return &Edge{kind: EdgeKind_Reference, a: p.owner, b: p.typ.target, card: card, via: p.id}
}

func (c *buildContext) twoSidedEdge(p *Property) *Edge {
	opposite, ok := c.model.decls[p.opposite.target].(*Property)
	if !ok {
		c.stmtErr(&p.opposite.pos, ErrRefTypeMismatch(p.qname, c.model.decls[p.opposite.target].QName()))
		return nil
	}
	if p.typ.target != opposite.owner || !opposite.typ.Resolved() || opposite.typ.target != p.owner {
		c.stmtErr(&p.opposite.pos, ErrRefTypeMismatch(p.qname, opposite.qname))
		return nil
	}
	if opposite.opposite != nil && opposite.opposite.target != p.id {
		c.stmtErr(&p.opposite.pos, ErrRefFieldMismatch(p.qname, opposite.qname))
		return nil
	}

	card := Cardinality{MinA: 0, MaxA: 1, MinB: 0, MaxB: 1}
	if p.multiplicity.Container {
		card.MaxB = Unbounded
	}
	if p.modifiers.Required {
		card.MinB = 1
	}
	if opposite.multiplicity.Container {
		card.MaxA = Unbounded
	}
	if opposite.modifiers.Required {
		card.MinA = 1
	}
	if card.MinA == 1 && card.MinB == 1 {
		c.stmtErr(&p.pos, ErrDoubleRequired(p.qname, opposite.qname))
		return nil
	}
	c.oppositeOf[opposite.id] = p.id
	return &Edge{kind: EdgeKind_Reference, a: p.owner, b: p.typ.target, card: card, via: p.id}
}
