package proto

import (
	"os"

	"github.com/pkg/errors"
)

// Parse parses schema source into a tree. Failures are reported as a
// *SyntaxError carrying the position of the offending token.
func Parse(filename string, source []byte) (*Schema, error) {
	p := &parser{lex: newLexer(filename, source)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseSchema()
}

// ParseFile reads and parses a schema file.
func ParseFile(filename string) (*Schema, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return Parse(filename, source)
}

// parser is a recursive-descent parser with one token of lookahead.
type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return token{}, p.errf("expected %s, found %s", kind, p.describeTok())
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *parser) isKeyword(kw string) bool {
	return p.tok.kind == tokIdent && p.tok.text == kw
}

// expectKeyword consumes the given keyword identifier.
func (p *parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return p.errf("expected %q, found %s", kw, p.describeTok())
	}
	return p.advance()
}

func (p *parser) errf(format string, args ...any) *SyntaxError {
	return p.lex.errf(p.tok.pos, format, args...)
}

func (p *parser) describeTok() string {
	if p.tok.kind == tokIdent {
		return `"` + p.tok.text + `"`
	}
	return p.tok.kind.String()
}

func (p *parser) parseSchema() (*Schema, error) {
	schema := &Schema{}

	if p.isKeyword("package") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.parseCompoundName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi); err != nil {
			return nil, err
		}
		schema.Name = &name
	}

	for p.tok.kind != tokEOF {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		schema.Decls = append(schema.Decls, decl)
	}
	return schema, nil
}

func (p *parser) parseDecl() (Decl, error) {
	if p.tok.kind != tokIdent {
		return nil, p.errf("expected declaration, found %s", p.describeTok())
	}
	switch p.tok.text {
	case "import":
		return p.parseImport()
	case "option":
		return p.parseOption()
	case "enum":
		return p.parseEnum()
	case "message":
		return p.parseMessage()
	case "extend":
		return p.parseExtend()
	case "service":
		return p.parseService()
	default:
		return nil, p.errf("expected declaration, found %q", p.tok.text)
	}
}

func (p *parser) parseImport() (*ImportDecl, error) {
	if err := p.advance(); err != nil { // "import"
		return nil, err
	}
	visibility := PrivateImport
	if p.isKeyword("public") {
		visibility = PublicImport
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	path, err := p.expect(tokString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return &ImportDecl{
		Visibility: visibility,
		Path:       At(StringLiteral(path.str), path.pos),
	}, nil
}

func (p *parser) parseOption() (*OptionDecl, error) {
	if err := p.advance(); err != nil { // "option"
		return nil, err
	}
	opt, err := p.parseOptionBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return opt, nil
}

// parseOptionBody parses `name = value` without the surrounding keyword
// or terminator, shared between option statements and field brackets.
func (p *parser) parseOptionBody() (*OptionDecl, error) {
	name, err := p.parseOptionName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokEquals); err != nil {
		return nil, err
	}
	value, err := p.parseOptionValue()
	if err != nil {
		return nil, err
	}
	return &OptionDecl{Name: name, Value: value}, nil
}

func (p *parser) parseOptionName() (Located[OptionName], error) {
	pos := p.tok.pos

	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return Located[OptionName]{}, err
		}
		ext, err := p.parseCompoundName()
		if err != nil {
			return Located[OptionName]{}, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return Located[OptionName]{}, err
		}
		var path []Located[Ident]
		for p.tok.kind == tokDot {
			if err := p.advance(); err != nil {
				return Located[OptionName]{}, err
			}
			part, err := p.expect(tokIdent)
			if err != nil {
				return Located[OptionName]{}, err
			}
			path = append(path, At(Ident(part.text), part.pos))
		}
		name := &CustomOptionName{Extension: ext, Path: path}
		return At(OptionName(name), pos), nil
	}

	tok, err := p.expect(tokIdent)
	if err != nil {
		return Located[OptionName]{}, err
	}
	return At(OptionName(Ident(tok.text)), pos), nil
}

func (p *parser) parseOptionValue() (Located[OptionValue], error) {
	tok := p.tok
	switch tok.kind {
	case tokInt:
		return At(OptionValue(tok.num), tok.pos), p.advance()
	case tokString:
		return At(OptionValue(StringLiteral(tok.str)), tok.pos), p.advance()
	case tokIdent:
		switch tok.text {
		case "true":
			return At(OptionValue(Boolean(true)), tok.pos), p.advance()
		case "false":
			return At(OptionValue(Boolean(false)), tok.pos), p.advance()
		default:
			return At(OptionValue(Ident(tok.text)), tok.pos), p.advance()
		}
	default:
		return Located[OptionValue]{}, p.errf("expected option value, found %s", p.describeTok())
	}
}

func (p *parser) parseCompoundName() (CompoundName, error) {
	first, err := p.expect(tokIdent)
	if err != nil {
		return CompoundName{}, err
	}
	parts := []Located[Ident]{At(Ident(first.text), first.pos)}
	for p.tok.kind == tokDot {
		if err := p.advance(); err != nil {
			return CompoundName{}, err
		}
		part, err := p.expect(tokIdent)
		if err != nil {
			return CompoundName{}, err
		}
		parts = append(parts, At(Ident(part.text), part.pos))
	}
	return NewCompoundName(parts...)
}

func (p *parser) parseFieldType() (Located[FieldType], error) {
	pos := p.tok.pos

	if p.tok.kind == tokDot {
		if err := p.advance(); err != nil {
			return Located[FieldType]{}, err
		}
		name, err := p.parseCompoundName()
		if err != nil {
			return Located[FieldType]{}, err
		}
		return At(FieldType(&NamedType{Name: name, Global: true}), pos), nil
	}

	if p.tok.kind == tokIdent {
		if scalar, ok := ScalarByKeyword(p.tok.text); ok {
			return At(FieldType(scalar), pos), p.advance()
		}
		name, err := p.parseCompoundName()
		if err != nil {
			return Located[FieldType]{}, err
		}
		return At(FieldType(&NamedType{Name: name}), pos), nil
	}

	return Located[FieldType]{}, p.errf("expected field type, found %s", p.describeTok())
}

// parseFieldBody parses `<type> <name> = <tag> [options];`, the part of
// a field shared by ruled fields and oneof members.
func (p *parser) parseFieldBody() (*Field, error) {
	fieldType, err := p.parseFieldType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokEquals); err != nil {
		return nil, err
	}
	tag, err := p.expect(tokInt)
	if err != nil {
		return nil, err
	}

	var options []*OptionDecl
	if p.tok.kind == tokLBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			opt, err := p.parseOptionBody()
			if err != nil {
				return nil, err
			}
			options = append(options, opt)
			if p.tok.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return &Field{
		Type:    fieldType,
		Name:    At(Ident(name.text), name.pos),
		Tag:     At(tag.num, tag.pos),
		Options: options,
	}, nil
}

func fieldRuleByKeyword(kw string) (FieldRule, bool) {
	switch kw {
	case "required":
		return Required, true
	case "optional":
		return Optional, true
	case "repeated":
		return Repeated, true
	}
	return 0, false
}

func (p *parser) parseFieldDecl(rule FieldRule) (*FieldDecl, error) {
	if err := p.advance(); err != nil { // rule keyword
		return nil, err
	}
	field, err := p.parseFieldBody()
	if err != nil {
		return nil, err
	}
	return &FieldDecl{Rule: rule, Field: field}, nil
}

func (p *parser) parseEnum() (*EnumDecl, error) {
	if err := p.advance(); err != nil { // "enum"
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	enum := &EnumDecl{Name: At(Ident(name.text), name.pos)}
	for p.tok.kind != tokRBrace {
		if p.isKeyword("option") {
			opt, err := p.parseOption()
			if err != nil {
				return nil, err
			}
			enum.Fields = append(enum.Fields, opt)
			continue
		}
		valName, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokEquals); err != nil {
			return nil, err
		}
		value, err := p.expect(tokInt)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi); err != nil {
			return nil, err
		}
		enum.Fields = append(enum.Fields, &EnumValue{
			Name:  At(Ident(valName.text), valName.pos),
			Value: value.num,
		})
	}
	return enum, p.advance() // "}"
}

func (p *parser) parseMessage() (*MessageDecl, error) {
	if err := p.advance(); err != nil { // "message"
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	msg := &MessageDecl{Name: At(Ident(name.text), name.pos)}
	for p.tok.kind != tokRBrace {
		field, err := p.parseMessageField()
		if err != nil {
			return nil, err
		}
		msg.Fields = append(msg.Fields, field)
	}
	return msg, p.advance() // "}"
}

func (p *parser) parseMessageField() (MessageField, error) {
	if p.tok.kind != tokIdent {
		return nil, p.errf("expected message field, found %s", p.describeTok())
	}
	if rule, ok := fieldRuleByKeyword(p.tok.text); ok {
		return p.parseFieldDecl(rule)
	}
	switch p.tok.text {
	case "option":
		return p.parseOption()
	case "oneof":
		return p.parseOneOf()
	case "extensions":
		return p.parseExtensionRange()
	case "enum":
		return p.parseEnum()
	case "message":
		return p.parseMessage()
	case "extend":
		return p.parseExtend()
	default:
		return nil, p.errf("expected message field, found %q", p.tok.text)
	}
}

func (p *parser) parseOneOf() (*OneOf, error) {
	if err := p.advance(); err != nil { // "oneof"
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	oneof := &OneOf{Name: At(Ident(name.text), name.pos)}
	for p.tok.kind != tokRBrace {
		field, err := p.parseFieldBody()
		if err != nil {
			return nil, err
		}
		oneof.Fields = append(oneof.Fields, field)
	}
	return oneof, p.advance() // "}"
}

func (p *parser) parseExtensionRange() (*ExtensionRange, error) {
	pos := p.tok.pos
	if err := p.advance(); err != nil { // "extensions"
		return nil, err
	}
	low, err := p.expect(tokInt)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("to"); err != nil {
		return nil, err
	}
	high, err := p.expect(tokInt)
	if err != nil {
		return nil, err
	}
	// The canonical rendering has no terminator here, but conventional
	// sources carry one; accept it.
	if p.tok.kind == tokSemi {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ExtensionRange{
		Pos:  pos,
		Low:  At(low.num, low.pos),
		High: At(high.num, high.pos),
	}, nil
}

func (p *parser) parseExtend() (*ExtendDecl, error) {
	if err := p.advance(); err != nil { // "extend"
		return nil, err
	}
	target, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	ext := &ExtendDecl{Target: At(Ident(target.text), target.pos)}
	for p.tok.kind != tokRBrace {
		rule, ok := fieldRuleByKeyword(p.tok.text)
		if p.tok.kind != tokIdent || !ok {
			return nil, p.errf("expected field rule, found %s", p.describeTok())
		}
		field, err := p.parseFieldDecl(rule)
		if err != nil {
			return nil, err
		}
		ext.Fields = append(ext.Fields, field)
	}
	return ext, p.advance() // "}"
}

func (p *parser) parseService() (*ServiceDecl, error) {
	if err := p.advance(); err != nil { // "service"
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	svc := &ServiceDecl{Name: At(Ident(name.text), name.pos)}
	for p.tok.kind != tokRBrace {
		switch {
		case p.isKeyword("option"):
			opt, err := p.parseOption()
			if err != nil {
				return nil, err
			}
			svc.Fields = append(svc.Fields, opt)
		case p.isKeyword("rpc"):
			rpc, err := p.parseRpc()
			if err != nil {
				return nil, err
			}
			svc.Fields = append(svc.Fields, rpc)
		default:
			return nil, p.errf("expected service field, found %s", p.describeTok())
		}
	}
	return svc, p.advance() // "}"
}

func (p *parser) parseRpc() (*RpcMethod, error) {
	if err := p.advance(); err != nil { // "rpc"
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}

	inputs, err := p.parseTypeList()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("returns"); err != nil {
		return nil, err
	}
	outputs, err := p.parseTypeList()
	if err != nil {
		return nil, err
	}

	rpc := &RpcMethod{
		Name:    At(Ident(name.text), name.pos),
		Inputs:  inputs,
		Outputs: outputs,
	}

	if p.tok.kind == tokLBrace {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.tok.kind != tokRBrace {
			if !p.isKeyword("option") {
				return nil, p.errf("expected option, found %s", p.describeTok())
			}
			opt, err := p.parseOption()
			if err != nil {
				return nil, err
			}
			rpc.Options = append(rpc.Options, opt)
		}
		return rpc, p.advance() // "}"
	}

	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return rpc, nil
}

// parseTypeList parses a parenthesized, comma-separated list of field
// types, as used for rpc inputs and outputs.
func (p *parser) parseTypeList() ([]Located[FieldType], error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var types []Located[FieldType]
	for p.tok.kind != tokRParen {
		if len(types) > 0 {
			if _, err := p.expect(tokComma); err != nil {
				return nil, err
			}
		}
		t, err := p.parseFieldType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, p.advance() // ")"
}
