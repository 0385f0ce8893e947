package proto

import "strings"

// Node is implemented by every syntax tree node. The tree is immutable
// after construction: the parser (or a test) builds it once and the
// formatter only reads it.
type Node interface {
	isNode()
}

// Located pairs a value with the source position of the token that
// produced it. Positions exist only for diagnostics; they never
// participate in equality or printing of the syntax itself.
type Located[T any] struct {
	Value T
	Pos   SourcePos
}

// At wraps a value with its source position.
func At[T any](value T, pos SourcePos) Located[T] {
	return Located[T]{Value: value, Pos: pos}
}

// Ident is a single name token. Equality and ordering are by text.
type Ident string

func (i Ident) String() string { return string(i) }

// CompoundName is a dotted name of one or more components (`a.b.c`).
// The zero value is malformed; construct through NewCompoundName, which
// rejects empty component lists.
type CompoundName struct {
	parts []Located[Ident]
}

// NewCompoundName builds a compound name from its components. It returns
// MalformedNameError when no components are given, rather than deferring
// the failure to a later position lookup.
func NewCompoundName(parts ...Located[Ident]) (CompoundName, error) {
	if len(parts) == 0 {
		return CompoundName{}, MalformedNameError{}
	}
	return CompoundName{parts: parts}, nil
}

// Parts returns the name's components in order.
func (n CompoundName) Parts() []Located[Ident] {
	return n.parts
}

// First returns the leading component. A zero-value CompoundName yields
// MalformedNameError.
func (n CompoundName) First() (Located[Ident], error) {
	if len(n.parts) == 0 {
		return Located[Ident]{}, MalformedNameError{}
	}
	return n.parts[0], nil
}

// Pos returns the position of the name's first component.
func (n CompoundName) Pos() (SourcePos, error) {
	first, err := n.First()
	if err != nil {
		return SourcePos{}, err
	}
	return first.Pos, nil
}

// String renders the components joined by dots.
func (n CompoundName) String() string {
	strs := make([]string, len(n.parts))
	for i, part := range n.parts {
		strs[i] = string(part.Value)
	}
	return strings.Join(strs, ".")
}

// The closed node unions. Every variant carries a marker method so the
// formatter's type switches stay exhaustive over a known set of arms.

// FieldType is the type position of a field: a scalar keyword or a
// (possibly globally qualified) named type.
type FieldType interface {
	Node
	isFieldType()
}

// OptionName is either a built-in option identifier or a parenthesized
// custom (extension) option name.
type OptionName interface {
	Node
	isOptionName()
}

// OptionValue is the right-hand side of an option assignment.
type OptionValue interface {
	Node
	isOptionValue()
}

// EnumField is a single entry in an enum body.
type EnumField interface {
	Node
	isEnumField()
}

// MessageField is a single entry in a message body.
type MessageField interface {
	Node
	isMessageField()
}

// ServiceField is a single entry in a service body.
type ServiceField interface {
	Node
	isServiceField()
}

// Decl is a top-level declaration in a schema.
type Decl interface {
	Node
	isDecl()
}

func (Ident) isNode()        {}
func (Ident) isOptionName()  {}
func (Ident) isOptionValue() {}
