/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_CrossRefs(t *testing.T) {
	require := require.New(t)

	m := mustBuild(t, `
model m
dataType int
package p {
	entity Order extends Document depends Billing {
		key { prop int id }
		repr "Order #" + id
		prop Customer customer
		op int cancel() throws Cancelled
	}
	entity Document {}
	entity Customer {}
	service Billing {}
	exception Cancelled {}
}`)

	order, err := LookupAs[*Entity](m, ParseQName("p.Order"))
	require.NoError(err)

	require.True(order.Extends().Resolved())
	require.Equal(ParseQName("p.Document"), m.Target(order.Extends()).QName())
	require.Equal(ParseQName("Document"), order.Extends().Ref())

	require.Len(order.Depends(), 1)
	require.Equal(DeclKind_Service, m.Target(order.Depends()[0]).Kind())

	t.Run("forward references are resolved", func(t *testing.T) {
		customer, err := LookupAs[*Property](m, ParseQName("p.Order.customer"))
		require.NoError(err)
		require.Equal(ParseQName("p.Customer"), m.Target(customer.Type()).QName())
	})

	t.Run("throws", func(t *testing.T) {
		cancel, err := LookupAs[*Operation](m, ParseQName("p.Order.cancel"))
		require.NoError(err)
		require.Equal(DeclKind_ExceptionType, m.Target(cancel.Throws()[0]).Kind())
		require.Equal(DeclKind_DataType, m.Target(cancel.Type()).Kind())
	})

	t.Run("repr", func(t *testing.T) {
		repr := order.Repr()
		require.Len(repr, 2)
		require.Equal("Order #", repr[0].Text)
		require.Nil(repr[0].Prop)
		require.Equal(ParseQName("p.Order.id"), m.Target(repr[1].Prop).QName())
	})
}

func TestResolve_Ambiguity(t *testing.T) {
	require := require.New(t)

	t.Run("bare reference to ambiguous name fails", func(t *testing.T) {
		_, err := buildString(t, `model m package a { entity X {} } package b { entity X {} entity Y { prop X x } }`)
		require.ErrorIs(err, ErrTypeNotFoundError)
		require.ErrorIs(err, ErrAmbiguousNameError)
		require.ErrorContains(err, "X must be qualified, candidates: a.X, b.X")
	})

	t.Run("ambiguous name fails whatever kind is expected", func(t *testing.T) {
		for _, ref := range []string{"entity Y { prop X x }", "entity Z extends X {}"} {
			_, err := buildString(t, `model m package a { entity X {} } package b { service X {} } package c { `+ref+` }`)
			require.ErrorIs(err, ErrTypeNotFoundError, ref)
			require.ErrorIs(err, ErrAmbiguousNameError, ref)
			require.ErrorContains(err, "X must be qualified, candidates: a.X, b.X", ref)
		}

		m := mustBuild(t, `model m package a { entity X {} } package b { service X {} } package c { entity Y { prop a.X x } entity Z extends a.X {} }`)
		x, err := LookupAs[*Property](m, ParseQName("c.Y.x"))
		require.NoError(err)
		require.Equal(ParseQName("a.X"), m.Target(x.Type()).QName())
	})

	t.Run("qualified reference to ambiguous name", func(t *testing.T) {
		m := mustBuild(t, `model m package a { entity X {} } package b { entity X {} entity Y { prop a.X x } }`)

		x, err := LookupAs[*Property](m, ParseQName("b.Y.x"))
		require.NoError(err)
		require.Equal(ParseQName("a.X"), m.Target(x.Type()).QName())

		_, err = m.LookupBare("X")
		require.ErrorIs(err, ErrAmbiguousNameError)
		require.True(m.IsAmbiguous("X"))

		for _, qn := range []QName{ParseQName("a.X"), ParseQName("b.X")} {
			d, err := m.Lookup(qn)
			require.NoError(err)
			require.Equal(qn, d.QName())
		}

		y, err := m.LookupBare("Y")
		require.NoError(err)
		require.Equal(ParseQName("b.Y"), y.QName())
	})

	t.Run("feature names do not hide types", func(t *testing.T) {
		m := mustBuild(t, `model m package p { entity Customer {} entity Order { prop Customer Customer } }`)
		c, err := LookupAs[*Property](m, ParseQName("p.Order.Customer"))
		require.NoError(err)
		require.Equal(DeclKind_Entity, m.Target(c.Type()).Kind())
		require.True(m.IsAmbiguous("Customer"))
	})
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
		msg  string
	}{
		{
			name: "unknown property type",
			src:  `model m package p { valueObject V { prop int x } }`,
			err:  ErrTypeNotFoundError,
			msg:  "test.domm:1:42: type not found: int",
		},
		{
			name: "unknown qualified type",
			src:  `model m package p { valueObject V { prop q.T x } }`,
			err:  ErrTypeNotFoundError,
			msg:  "type not found: q.T",
		},
		{
			name: "throws resolves to entity",
			src:  `model m dataType int package p { entity E {} service S { op int f() throws E } }`,
			err:  ErrTypeNotFoundError,
			msg:  "type not found: p.E is Entity, expected [ExceptionType]",
		},
		{
			name: "qualified throws resolves to entity",
			src:  `model m dataType int package p { entity E {} service S { op int f() throws p.E } }`,
			err:  ErrTypeNotFoundError,
			msg:  "type not found: p.E is Entity, expected [ExceptionType]",
		},
		{
			name: "depends on entity",
			src:  `model m package p { entity E {} entity F depends E {} }`,
			err:  ErrTypeNotFoundError,
			msg:  "p.E is Entity, expected [Service]",
		},
		{
			name: "entity extends value object",
			src:  `model m package p { valueObject V {} entity E extends V {} }`,
			err:  ErrTypeNotFoundError,
			msg:  "p.V is ValueObject, expected [Entity]",
		},
		{
			name: "property typed with service",
			src:  `model m package p { service S {} entity E { prop S s } }`,
			err:  ErrTypeNotFoundError,
			msg:  "p.S is Service, expected [DataType Enumeration ValueObject ExceptionType Entity]",
		},
		{
			name: "unknown repr property",
			src:  `model m package p { entity E { repr nope } }`,
			err:  ErrTypeNotFoundError,
			msg:  "type not found: p.E.nope",
		},
		{
			name: "unknown constraint",
			src:  `model m dataType int package p { valueObject V { prop int x [nope] } }`,
			err:  ErrTypeNotFoundError,
			msg:  "type not found: nope",
		},
		{
			name: "unknown constraint argument",
			src:  `model m dataType int tagType t (_ref) package p { valueObject V { prop int x [t(y)] } }`,
			err:  ErrTypeNotFoundError,
			msg:  "type not found: y",
		},
		{
			name: "circular extends",
			src:  `model m package p { entity A extends B {} entity B extends C {} entity C extends A {} }`,
			err:  ErrCircularExtendsError,
			msg:  "circular extends: p.A -> p.B -> p.C -> p.A",
		},
		{
			name: "extends itself",
			src:  `model m package p { valueObject V extends V {} }`,
			err:  ErrCircularExtendsError,
			msg:  "circular extends: p.V -> p.V",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)
			m, err := buildString(t, tc.src)
			require.Nil(m)
			require.ErrorIs(err, tc.err)
			require.ErrorContains(err, tc.msg)
		})
	}
}

func TestResolve_Opposite(t *testing.T) {
	require := require.New(t)

	m := mustBuild(t, `
model m
package p {
	entity A { prop B b <> a }
	entity B { prop A a <> b }
	entity C { prop A a }
}`)

	b, err := LookupAs[*Property](m, ParseQName("p.A.b"))
	require.NoError(err)
	require.Equal(ParseQName("p.B.a"), m.Target(b.Opposite()).QName())

	a, err := LookupAs[*Property](m, ParseQName("p.B.a"))
	require.NoError(err)
	require.Equal(ParseQName("p.A.b"), m.Target(a.Opposite()).QName())
	require.True(m.IsAmbiguous("a"))
}

func TestResolve_ConstraintArgs(t *testing.T) {
	require := require.New(t)

	m := mustBuild(t, `
model m
dataType int
tagType orderBy (_ref, ...) appliesTo _entity
tagType dependsOn (_ref) appliesTo _prop
package p {
	entity E {
		key { prop int id }
		[orderBy(id, name)]
		prop int name
		prop int total [dependsOn(name)]
	}
	entity F {
		prop int name [dependsOn(p.E.id)]
	}
}`)

	e, err := LookupAs[*Entity](m, ParseQName("p.E"))
	require.NoError(err)
	require.Len(e.Constraints(), 1)
	app := e.Constraints()[0]
	require.Equal(ParseQName("orderBy"), m.Target(app.Def()).QName())
	require.Equal(e.ID(), app.Owner())
	require.Equal(ParseQName("p.E.id"), m.Target(app.Args()[0].Ref).QName())
	require.Equal(ParseQName("p.E.name"), m.Target(app.Args()[1].Ref).QName())

	total, err := LookupAs[*Property](m, ParseQName("p.E.total"))
	require.NoError(err)
	require.Equal(ParseQName("p.E.name"), m.Target(total.Constraints()[0].Args()[0].Ref).QName())

	name, err := LookupAs[*Property](m, ParseQName("p.F.name"))
	require.NoError(err)
	require.Equal(ParseQName("p.E.id"), m.Target(name.Constraints()[0].Args()[0].Ref).QName())
}

func TestResolve_Prelude(t *testing.T) {
	require := require.New(t)
	src := `model m package p { entity E { prop int id [range(1, 10)] prop datetime created } }`

	_, err := buildString(t, src)
	require.ErrorIs(err, ErrTypeNotFoundError)

	m := mustBuild(t, src, WithStdPrelude())
	id, err := LookupAs[*Property](m, ParseQName("p.E.id"))
	require.NoError(err)

	dt, ok := m.Target(id.Type()).(*DataType)
	require.True(ok)
	require.True(dt.BuiltIn())

	def, ok := m.Target(id.Constraints()[0].Def()).(*ConstraintDef)
	require.True(ok)
	require.Equal(ConstraintKind_Validator, def.ConstraintKind())
	require.Equal([]string{TokenInt, TokenInt}, def.Signature())
	require.True(def.AppliesTo().Contains(DeclKind_Property))
	require.EqualValues("m", m.Name())
}
