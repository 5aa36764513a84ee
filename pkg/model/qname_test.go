/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQName(t *testing.T) {
	require := require.New(t)

	t.Run("construction", func(t *testing.T) {
		q := NewQName("test", "vo", "X")
		require.Equal("test.vo.X", q.String())
		require.Equal([]Name{"test", "vo", "X"}, q.Parts())
		require.EqualValues("X", q.Name())
		require.Equal(3, q.Depth())
		require.False(q.IsBare())
		require.Equal(q, ParseQName("test.vo.X"))
		require.Equal(NewQName("a", "b"), NewQName("a", "", "b"))
	})

	t.Run("bare and null names", func(t *testing.T) {
		require.True(NewQName("int").IsBare())
		require.Equal(NullQName, NewQName("int").Parent())

		require.True(NullQName.IsNull())
		require.False(NullQName.IsBare())
		require.Equal(0, NullQName.Depth())
		require.Nil(NullQName.Parts())
		require.Equal(NullQName, ParseQName(""))
	})

	t.Run("path algebra", func(t *testing.T) {
		q := NewQName("vo", "X")
		require.Equal(NewQName("test", "vo", "X"), q.Prefix("test"))
		require.Equal(NewQName("vo", "X", "id"), q.Child("id"))
		require.Equal(NewQName("vo"), q.Parent())
		require.Equal(NewQName("id"), NullQName.Child("id"))
		require.Equal(q, NullQName.Child("vo").Child("X"))
	})

	t.Run("structural equality", func(t *testing.T) {
		m := map[QName]int{NewQName("a", "b"): 1}
		require.Equal(1, m[ParseQName("a.b")])
		require.NotEqual(NewQName("a", "b"), NewQName("b", "a"))
	})
}

func TestDeclKindSet(t *testing.T) {
	require := require.New(t)

	s := NewDeclKindSet(DeclKind_Entity, DeclKind_ValueObject)
	require.True(s.Contains(DeclKind_Entity))
	require.False(s.Contains(DeclKind_Service))
	require.Equal([]DeclKind{DeclKind_ValueObject, DeclKind_Entity}, s.AsArray())
	require.Equal("[ValueObject Entity]", s.String())
	require.True(DeclKindSet(0).IsEmpty())

	require.Equal("DeclKind_Entity", DeclKind_Entity.String())
	require.Equal("DeclKind(200)", DeclKind(200).String())
	require.True(DeclKind_Enumeration.IsValueType())
	require.True(DeclKind_Service.IsClassifier())
	require.False(DeclKind_Package.IsClassifier())
	require.True(DeclKind_Parameter.IsFeature())
	require.Equal("Composite", EdgeKind_Composite.TrimString())
}

func TestKindOf(t *testing.T) {
	require := require.New(t)

	k, ok := KindOf(ErrDuplicateFeature("id"))
	require.True(ok)
	require.Equal(ErrorKind_DuplicateFeature, k)

	k, ok = KindOf(ErrAmbiguousReference("X", []QName{NewQName("a", "X"), NewQName("b", "X")}))
	require.True(ok)
	require.Equal(ErrorKind_TypeNotFound, k)

	_, ok = KindOf(nil)
	require.False(ok)

	for k := ErrorKind_null + 1; k < ErrorKind_count; k++ {
		require.NotNil(k.Sentinel(), k)
		require.NotEqual("", k.TrimString())
	}
}

func TestErrorMessages(t *testing.T) {
	require := require.New(t)

	require.EqualError(ErrDuplicateType(DeclKind_DataType, NewQName("int")), "duplicate type: DataType int")
	require.EqualError(ErrTypeKindMismatch(NewQName("p", "E"), DeclKind_Entity, NewDeclKindSet(DeclKind_ExceptionType)),
		"type not found: p.E is Entity, expected [ExceptionType]")
	require.EqualError(ErrAmbiguousReference("X", []QName{NewQName("a", "X"), NewQName("b", "X")}),
		"type not found: ambiguous name: X must be qualified, candidates: a.X, b.X")
	require.EqualError(ErrWrongConstraintAtPos(NewQName("t"), `"s"`, 0),
		`wrong constraint parameter: t does not accept "s" at position 0`)
	require.EqualError(ErrCircularExtends([]QName{NewQName("p", "A"), NewQName("p", "B"), NewQName("p", "A")}),
		"circular extends: p.A -> p.B -> p.A")
}
