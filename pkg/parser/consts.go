/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package parser

const ModelFileExtension = ".domm"

const stdPreludeFileName = "std.domm"

// Keywords are the reserved words of the language. Declarations may not be named after them.
var Keywords = []string{
	"model", "package", "entity", "service", "valueObject", "exception",
	"dataType", "buildinDataType", "enum",
	"tagType", "buildinTagType", "validatorType", "buildInValidatorType", "builtInValidatorType", "buildinValidator",
	"appliesTo", "extends", "depends", "throws",
	"key", "repr", "prop", "op", "compartment",
	"ordered", "unique", "readonly", "required",
	"_string", "_int", "_ref",
	"_entity", "_prop", "_param", "_op", "_service", "_valueObject",
}
