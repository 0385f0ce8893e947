package proto

// NamedType is a field type referring to a message or enum by dotted
// name. Global names carry leading-dot semantics: resolution starts at
// the root scope instead of the enclosing one.
type NamedType struct {
	Name   CompoundName
	Global bool
}

func (*NamedType) isNode()      {}
func (*NamedType) isFieldType() {}

// CustomOptionName is a parenthesized extension-option name plus a
// trailing dotted field path, as in `(my.ext).field.sub`.
type CustomOptionName struct {
	Extension CompoundName
	Path      []Located[Ident]
}

func (*CustomOptionName) isNode()       {}
func (*CustomOptionName) isOptionName() {}

// OptionDecl is an option assignment. It appears at the top level, in
// enum/message/service bodies, and inline in field option brackets.
type OptionDecl struct {
	Name  Located[OptionName]
	Value Located[OptionValue]
}

func (*OptionDecl) isNode()         {}
func (*OptionDecl) isDecl()         {}
func (*OptionDecl) isEnumField()    {}
func (*OptionDecl) isMessageField() {}
func (*OptionDecl) isServiceField() {}

// EnumValue is a named enum constant and its tag.
type EnumValue struct {
	Name  Located[Ident]
	Value NumericLiteral
}

func (*EnumValue) isNode()      {}
func (*EnumValue) isEnumField() {}

// EnumDecl declares an enum and its ordered body.
type EnumDecl struct {
	Name   Located[Ident]
	Fields []EnumField
}

func (*EnumDecl) isNode()         {}
func (*EnumDecl) isDecl()         {}
func (*EnumDecl) isMessageField() {}

// Field is the common body of a field declaration: type, name, tag, and
// any bracketed options. Oneof groups hold bare Fields with no rule.
type Field struct {
	Type    Located[FieldType]
	Name    Located[Ident]
	Tag     Located[NumericLiteral]
	Options []*OptionDecl
}

func (*Field) isNode() {}

// FieldRule qualifies a field's cardinality.
type FieldRule int

const (
	Required FieldRule = iota
	Optional
	Repeated
)

var fieldRuleKeywords = map[FieldRule]string{
	Required: "required",
	Optional: "optional",
	Repeated: "repeated",
}

// Keyword returns the rule's source spelling.
func (r FieldRule) Keyword() string {
	return fieldRuleKeywords[r]
}

func (r FieldRule) String() string {
	return r.Keyword()
}

// FieldDecl is a rule-qualified field in a message or extend body.
type FieldDecl struct {
	Rule  FieldRule
	Field *Field
}

func (*FieldDecl) isNode()         {}
func (*FieldDecl) isMessageField() {}

// OneOf groups fields of which at most one may be set. Its members carry
// no rule.
type OneOf struct {
	Name   Located[Ident]
	Fields []*Field
}

func (*OneOf) isNode()         {}
func (*OneOf) isMessageField() {}

// ExtensionRange reserves a tag interval for fields declared elsewhere.
type ExtensionRange struct {
	Pos  SourcePos
	Low  Located[NumericLiteral]
	High Located[NumericLiteral]
}

func (*ExtensionRange) isNode()         {}
func (*ExtensionRange) isMessageField() {}

// MessageDecl declares a message. Bodies nest arbitrarily: a message may
// contain further messages, enums, and extends.
type MessageDecl struct {
	Name   Located[Ident]
	Fields []MessageField
}

func (*MessageDecl) isNode()         {}
func (*MessageDecl) isDecl()         {}
func (*MessageDecl) isMessageField() {}

// ExtendDecl adds fields to a previously declared target message.
type ExtendDecl struct {
	Target Located[Ident]
	Fields []*FieldDecl
}

func (*ExtendDecl) isNode()         {}
func (*ExtendDecl) isDecl()         {}
func (*ExtendDecl) isMessageField() {}

// RpcMethod declares a service method with its input and output types.
type RpcMethod struct {
	Name    Located[Ident]
	Inputs  []Located[FieldType]
	Outputs []Located[FieldType]
	Options []*OptionDecl
}

func (*RpcMethod) isNode()         {}
func (*RpcMethod) isServiceField() {}

// ServiceDecl declares a service and its ordered body.
type ServiceDecl struct {
	Name   Located[Ident]
	Fields []ServiceField
}

func (*ServiceDecl) isNode() {}
func (*ServiceDecl) isDecl() {}

// ImportVisibility controls whether an import re-exports to downstream
// importers.
type ImportVisibility int

const (
	PrivateImport ImportVisibility = iota
	PublicImport
)

// ImportDecl imports another schema file by quoted path.
type ImportDecl struct {
	Visibility ImportVisibility
	Path       Located[StringLiteral]
}

func (*ImportDecl) isNode() {}
func (*ImportDecl) isDecl() {}

// Schema is a parsed schema file: an optional package name and the
// ordered top-level declarations.
type Schema struct {
	Name  *CompoundName
	Decls []Decl
}

func (*Schema) isNode() {}

var (
	_ FieldType = ScalarType(0)
	_ FieldType = (*NamedType)(nil)

	_ OptionName = Ident("")
	_ OptionName = (*CustomOptionName)(nil)

	_ OptionValue = NumericLiteral{}
	_ OptionValue = Ident("")
	_ OptionValue = StringLiteral("")
	_ OptionValue = Boolean(false)

	_ EnumField = (*EnumValue)(nil)
	_ EnumField = (*OptionDecl)(nil)

	_ MessageField = (*FieldDecl)(nil)
	_ MessageField = (*OptionDecl)(nil)
	_ MessageField = (*OneOf)(nil)
	_ MessageField = (*ExtensionRange)(nil)
	_ MessageField = (*EnumDecl)(nil)
	_ MessageField = (*MessageDecl)(nil)
	_ MessageField = (*ExtendDecl)(nil)

	_ ServiceField = (*OptionDecl)(nil)
	_ ServiceField = (*RpcMethod)(nil)

	_ Decl = (*ImportDecl)(nil)
	_ Decl = (*OptionDecl)(nil)
	_ Decl = (*EnumDecl)(nil)
	_ Decl = (*MessageDecl)(nil)
	_ Decl = (*ExtendDecl)(nil)
	_ Decl = (*ServiceDecl)(nil)
)
