/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrorKind is the closed set of semantic errors
type ErrorKind uint8

const (
	ErrorKind_null ErrorKind = iota

	// namespace
	ErrorKind_DuplicateType
	ErrorKind_DuplicateFeature
	ErrorKind_DuplicateProperty
	ErrorKind_DuplicateParam
	ErrorKind_DuplicateLiteral
	ErrorKind_DuplicateDepends
	ErrorKind_DuplicateConstr
	ErrorKind_DuplicateException
	ErrorKind_Keyword
	ErrorKind_EllipsisMustBeLast

	// resolution
	ErrorKind_TypeNotFound
	ErrorKind_AmbiguousName
	ErrorKind_CircularExtends

	// relationships
	ErrorKind_Containment
	ErrorKind_RefTypeMismatch
	ErrorKind_RefFieldMismatch
	ErrorKind_DoubleRequired
	ErrorKind_WrongReferenceType

	// constraints
	ErrorKind_ConstraintDoesntApply
	ErrorKind_NoParameter
	ErrorKind_WrongConstraint
	ErrorKind_WrongConstraintAtPos
	ErrorKind_WrongNumberOfParameter

	ErrorKind_count
)

var (
	ErrDuplicateTypeError          = errors.New("duplicate type")
	ErrDuplicateFeatureError       = errors.New("duplicate feature")
	ErrDuplicatePropertyError      = errors.New("duplicate property")
	ErrDuplicateParamError         = errors.New("duplicate parameter")
	ErrDuplicateLiteralError       = errors.New("duplicate literal")
	ErrDuplicateDependsError       = errors.New("duplicate depends")
	ErrDuplicateConstrError        = errors.New("duplicate constraint")
	ErrDuplicateExceptionError     = errors.New("duplicate exception")
	ErrKeywordError                = errors.New("reserved word")
	ErrEllipsisMustBeLastError     = errors.New("ellipsis must be last")
	ErrTypeNotFoundError           = errors.New("type not found")
	ErrAmbiguousNameError          = errors.New("ambiguous name")
	ErrCircularExtendsError        = errors.New("circular extends")
	ErrContainmentError            = errors.New("containment")
	ErrRefTypeMismatchError        = errors.New("reference type mismatch")
	ErrRefFieldMismatchError       = errors.New("reference field mismatch")
	ErrDoubleRequiredError         = errors.New("double required")
	ErrWrongReferenceTypeError     = errors.New("wrong reference type")
	ErrConstraintDoesntApplyError  = errors.New("constraint doesn't apply")
	ErrNoParameterError            = errors.New("no parameter expected")
	ErrWrongConstraintError        = errors.New("wrong constraint")
	ErrWrongConstraintAtPosError   = errors.New("wrong constraint parameter")
	ErrWrongNumberOfParameterError = errors.New("wrong number of parameters")
)

var errorKindSentinels = [ErrorKind_count]error{
	nil,
	ErrDuplicateTypeError,
	ErrDuplicateFeatureError,
	ErrDuplicatePropertyError,
	ErrDuplicateParamError,
	ErrDuplicateLiteralError,
	ErrDuplicateDependsError,
	ErrDuplicateConstrError,
	ErrDuplicateExceptionError,
	ErrKeywordError,
	ErrEllipsisMustBeLastError,
	ErrTypeNotFoundError,
	ErrAmbiguousNameError,
	ErrCircularExtendsError,
	ErrContainmentError,
	ErrRefTypeMismatchError,
	ErrRefFieldMismatchError,
	ErrDoubleRequiredError,
	ErrWrongReferenceTypeError,
	ErrConstraintDoesntApplyError,
	ErrNoParameterError,
	ErrWrongConstraintError,
	ErrWrongConstraintAtPosError,
	ErrWrongNumberOfParameterError,
}

var errorKindNames = [ErrorKind_count]string{
	"ErrorKind_null",
	"ErrorKind_DuplicateType",
	"ErrorKind_DuplicateFeature",
	"ErrorKind_DuplicateProperty",
	"ErrorKind_DuplicateParam",
	"ErrorKind_DuplicateLiteral",
	"ErrorKind_DuplicateDepends",
	"ErrorKind_DuplicateConstr",
	"ErrorKind_DuplicateException",
	"ErrorKind_Keyword",
	"ErrorKind_EllipsisMustBeLast",
	"ErrorKind_TypeNotFound",
	"ErrorKind_AmbiguousName",
	"ErrorKind_CircularExtends",
	"ErrorKind_Containment",
	"ErrorKind_RefTypeMismatch",
	"ErrorKind_RefFieldMismatch",
	"ErrorKind_DoubleRequired",
	"ErrorKind_WrongReferenceType",
	"ErrorKind_ConstraintDoesntApply",
	"ErrorKind_NoParameter",
	"ErrorKind_WrongConstraint",
	"ErrorKind_WrongConstraintAtPos",
	"ErrorKind_WrongNumberOfParameter",
}

func (k ErrorKind) String() string {
	if k < ErrorKind_count {
		return errorKindNames[k]
	}
	return "ErrorKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

func (k ErrorKind) TrimString() string {
	const pref = "ErrorKind_"
	return strings.TrimPrefix(k.String(), pref)
}

// Sentinel returns the error every error of the kind wraps
func (k ErrorKind) Sentinel() error {
	if k < ErrorKind_count {
		return errorKindSentinels[k]
	}
	return nil
}

// KindOf returns the kind of the first semantic error found in err tree
func KindOf(err error) (ErrorKind, bool) {
	if err == nil {
		return ErrorKind_null, false
	}
	for k := ErrorKind_null + 1; k < ErrorKind_count; k++ {
		if errors.Is(err, errorKindSentinels[k]) {
			return k, true
		}
	}
	return ErrorKind_null, false
}

func enrichError(err error, msg string, args ...any) error {
	s := msg
	if len(args) > 0 {
		s = fmt.Sprintf(msg, args...)
	}
	return fmt.Errorf("%w: %s", err, s)
}

func errorAt(err error, pos *lexer.Position) error {
	if pos == nil || pos.Line == 0 {
		return err
	}
	return fmt.Errorf("%s: %w", pos.String(), err)
}

func ErrDuplicateType(kind DeclKind, name QName) error {
	return enrichError(ErrDuplicateTypeError, "%s %s", kind.TrimString(), name)
}

func ErrDuplicateFeature(name Name) error {
	return enrichError(ErrDuplicateFeatureError, "%s", name)
}

func ErrDuplicateProperty(name Name) error {
	return enrichError(ErrDuplicatePropertyError, "%s", name)
}

func ErrDuplicateParam(op QName, name Name) error {
	return enrichError(ErrDuplicateParamError, "%s of %s", name, op)
}

func ErrDuplicateLiteral(enum QName, value Name) error {
	return enrichError(ErrDuplicateLiteralError, "%s of %s", value, enum)
}

func ErrDuplicateDepends(classifier QName, name string) error {
	return enrichError(ErrDuplicateDependsError, "%s of %s", name, classifier)
}

func ErrDuplicateConstr(owner QName, name string) error {
	return enrichError(ErrDuplicateConstrError, "%s on %s", name, owner)
}

func ErrDuplicateException(op QName, name string) error {
	return enrichError(ErrDuplicateExceptionError, "%s thrown by %s", name, op)
}

func ErrKeyword(name Name) error {
	return enrichError(ErrKeywordError, "%s", name)
}

func ErrEllipsisMustBeLast(constraint QName) error {
	return enrichError(ErrEllipsisMustBeLastError, "%s", constraint)
}

func ErrTypeNotFound(name QName) error {
	return enrichError(ErrTypeNotFoundError, "%s", name)
}

func ErrTypeKindMismatch(name QName, found DeclKind, expected DeclKindSet) error {
	return enrichError(ErrTypeNotFoundError, "%s is %s, expected %v", name, found.TrimString(), expected)
}

func ErrAmbiguousName(name Name, candidates []QName) error {
	ss := make([]string, len(candidates))
	for i, c := range candidates {
		ss[i] = c.String()
	}
	return enrichError(ErrAmbiguousNameError, "%s must be qualified, candidates: %s", name, strings.Join(ss, ", "))
}

// ErrAmbiguousReference is the ambiguity variant of the type-not-found error
func ErrAmbiguousReference(name Name, candidates []QName) error {
	return fmt.Errorf("%w: %w", ErrTypeNotFoundError, ErrAmbiguousName(name, candidates))
}

func ErrCircularExtends(chain []QName) error {
	ss := make([]string, len(chain))
	for i, c := range chain {
		ss[i] = c.String()
	}
	return enrichError(ErrCircularExtendsError, "%s", strings.Join(ss, " -> "))
}

func ErrContainment(target QName, owner QName) error {
	return enrichError(ErrContainmentError, "%s is already contained by %s", target, owner)
}

func ErrRefTypeMismatch(prop, opposite QName) error {
	return enrichError(ErrRefTypeMismatchError, "%s and %s do not reference each other's classifiers", prop, opposite)
}

func ErrRefFieldMismatch(prop, opposite QName) error {
	return enrichError(ErrRefFieldMismatchError, "opposite end of %s does not point back at %s", opposite, prop)
}

func ErrDoubleRequired(prop, opposite QName) error {
	return enrichError(ErrDoubleRequiredError, "%s and %s are both required", prop, opposite)
}

func ErrWrongReferenceType(prop QName, target QName, kind DeclKind) error {
	return enrichError(ErrWrongReferenceTypeError, "%s can not relate to %s %s", prop, kind.TrimString(), target)
}

func ErrConstraintDoesntApply(name QName, field QName) error {
	return enrichError(ErrConstraintDoesntApplyError, "%s to %s", name, field)
}

func ErrNoParameter(name QName, found int) error {
	return enrichError(ErrNoParameterError, "%s takes no parameters, found %d", name, found)
}

func ErrWrongConstraint(name QName, param string) error {
	return enrichError(ErrWrongConstraintError, "%s does not accept %s", name, param)
}

func ErrWrongConstraintAtPos(name QName, param string, pos int) error {
	return enrichError(ErrWrongConstraintAtPosError, "%s does not accept %s at position %d", name, param, pos)
}

func ErrWrongNumberOfParameter(name QName, expected, found int) error {
	return enrichError(ErrWrongNumberOfParameterError, "%s expects %d, found %d", name, expected, found)
}
