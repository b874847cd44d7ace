// Package sh contains IRI constants of the SHACL Core vocabulary.
package sh

const (
	NS     = `http://www.w3.org/ns/shacl#`
	Prefix = `sh:`
)

const (
	NodeShape     = NS + `NodeShape`
	PropertyShape = NS + `PropertyShape`

	TargetClass = NS + `targetClass`
	TargetNode  = NS + `targetNode`

	Property = NS + `property`
	Path     = NS + `path`

	Class     = NS + `class`
	Datatype  = NS + `datatype`
	HasValue  = NS + `hasValue`
	In        = NS + `in`
	MinCount  = NS + `minCount`
	MaxCount  = NS + `maxCount`
	Pattern   = NS + `pattern`
	MinLength = NS + `minLength`
	MaxLength = NS + `maxLength`

	Severity  = NS + `severity`
	Violation = NS + `Violation`
	Warning   = NS + `Warning`
	Info      = NS + `Info`

	// Result vocabulary

	ValidationResult          = NS + `ValidationResult`
	ConformsProp              = NS + `conforms`
	ResultFocusNode           = NS + `focusNode`
	ResultPath                = NS + `resultPath`
	ResultValue               = NS + `value`
	SourceShape               = NS + `sourceShape`
	SourceConstraintComponent = NS + `sourceConstraintComponent`

	// Constraint component IRIs

	ClassConstraintComponent     = NS + `ClassConstraintComponent`
	DatatypeConstraintComponent  = NS + `DatatypeConstraintComponent`
	HasValueConstraintComponent  = NS + `HasValueConstraintComponent`
	InConstraintComponent        = NS + `InConstraintComponent`
	MinCountConstraintComponent  = NS + `MinCountConstraintComponent`
	MaxCountConstraintComponent  = NS + `MaxCountConstraintComponent`
	PatternConstraintComponent   = NS + `PatternConstraintComponent`
	MinLengthConstraintComponent = NS + `MinLengthConstraintComponent`
	MaxLengthConstraintComponent = NS + `MaxLengthConstraintComponent`
)
