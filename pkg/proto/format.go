package proto

import (
	"bytes"
	"fmt"
)

// Block bodies indent two spaces per nesting level.
const indentString = "  "

// Formatter renders a schema tree into canonical source text.
type Formatter struct {
	buf    bytes.Buffer
	indent int
}

// Format renders a schema as canonical source text. It is pure and
// deterministic: re-parsing the output yields a tree equal to the input
// in every field except source positions.
func Format(schema *Schema) string {
	f := &Formatter{}
	f.formatSchema(schema)
	return f.buf.String()
}

func (f *Formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *Formatter) newline() {
	f.buf.WriteString("\n")
}

func (f *Formatter) writeIndent() {
	for range f.indent {
		f.write(indentString)
	}
}

func (f *Formatter) formatSchema(schema *Schema) {
	if schema.Name != nil {
		f.write("package ")
		f.write(schema.Name.String())
		f.write(";")
		f.newline()
	}
	for _, decl := range schema.Decls {
		f.formatDecl(decl)
	}
}

func (f *Formatter) formatDecl(decl Decl) {
	switch d := decl.(type) {
	case *ImportDecl:
		f.formatImport(d)
	case *OptionDecl:
		f.formatOption(d)
	case *EnumDecl:
		f.formatEnum(d)
	case *MessageDecl:
		f.formatMessage(d)
	case *ExtendDecl:
		f.formatExtend(d)
	case *ServiceDecl:
		f.formatService(d)
	default:
		panic(fmt.Sprintf("formatter: no rendering rule for declaration %T", decl))
	}
}

func (f *Formatter) formatImport(imp *ImportDecl) {
	f.writeIndent()
	f.write("import")
	if imp.Visibility == PublicImport {
		f.write(" public")
	}
	f.write(" ")
	f.write(imp.Path.Value.Quoted())
	f.write(";")
	f.newline()
}

// formatOption renders a full option statement on its own line. Inline
// field options go through writeOptionBody instead.
func (f *Formatter) formatOption(opt *OptionDecl) {
	f.writeIndent()
	f.write("option ")
	f.writeOptionBody(opt)
	f.write(";")
	f.newline()
}

func (f *Formatter) writeOptionBody(opt *OptionDecl) {
	f.writeOptionName(opt.Name.Value)
	f.write(" = ")
	f.writeOptionValue(opt.Value.Value)
}

func (f *Formatter) writeOptionName(name OptionName) {
	switch n := name.(type) {
	case Ident:
		f.write(string(n))
	case *CustomOptionName:
		f.write("(")
		f.write(n.Extension.String())
		f.write(")")
		for _, part := range n.Path {
			f.write(".")
			f.write(string(part.Value))
		}
	default:
		panic(fmt.Sprintf("formatter: no rendering rule for option name %T", name))
	}
}

func (f *Formatter) writeOptionValue(value OptionValue) {
	switch v := value.(type) {
	case NumericLiteral:
		f.write(v.Text())
	case Ident:
		f.write(string(v))
	case StringLiteral:
		f.write(v.Quoted())
	case Boolean:
		f.write(v.String())
	default:
		panic(fmt.Sprintf("formatter: no rendering rule for option value %T", value))
	}
}

func (f *Formatter) writeFieldType(t FieldType) {
	switch t := t.(type) {
	case ScalarType:
		f.write(t.Keyword())
	case *NamedType:
		if t.Global {
			f.write(".")
		}
		f.write(t.Name.String())
	default:
		panic(fmt.Sprintf("formatter: no rendering rule for field type %T", t))
	}
}

func (f *Formatter) writeFieldBody(field *Field) {
	f.writeFieldType(field.Type.Value)
	f.write(" ")
	f.write(string(field.Name.Value))
	f.write(" = ")
	f.write(field.Tag.Value.Text())
	if len(field.Options) > 0 {
		f.write(" [")
		for i, opt := range field.Options {
			if i > 0 {
				f.write(", ")
			}
			f.writeOptionBody(opt)
		}
		f.write("]")
	}
	f.write(";")
}

func (f *Formatter) formatFieldDecl(decl *FieldDecl) {
	f.writeIndent()
	f.write(decl.Rule.Keyword())
	f.write(" ")
	f.writeFieldBody(decl.Field)
	f.newline()
}

func (f *Formatter) formatEnum(enum *EnumDecl) {
	f.writeIndent()
	f.write("enum ")
	f.write(string(enum.Name.Value))
	f.write(" {")
	f.newline()
	f.indent++
	for _, field := range enum.Fields {
		switch field := field.(type) {
		case *EnumValue:
			f.writeIndent()
			f.write(string(field.Name.Value))
			f.write(" = ")
			f.write(field.Value.Text())
			f.write(";")
			f.newline()
		case *OptionDecl:
			f.formatOption(field)
		default:
			panic(fmt.Sprintf("formatter: no rendering rule for enum field %T", field))
		}
	}
	f.indent--
	f.writeIndent()
	f.write("}")
	f.newline()
}

func (f *Formatter) formatMessage(msg *MessageDecl) {
	f.writeIndent()
	f.write("message ")
	f.write(string(msg.Name.Value))
	f.write(" {")
	f.newline()
	f.indent++
	for _, field := range msg.Fields {
		f.formatMessageField(field)
	}
	f.indent--
	f.writeIndent()
	f.write("}")
	f.newline()
}

func (f *Formatter) formatMessageField(field MessageField) {
	switch field := field.(type) {
	case *FieldDecl:
		f.formatFieldDecl(field)
	case *OptionDecl:
		f.formatOption(field)
	case *OneOf:
		f.formatOneOf(field)
	case *ExtensionRange:
		f.writeIndent()
		f.write("extensions ")
		f.write(field.Low.Value.Text())
		f.write(" to ")
		f.write(field.High.Value.Text())
		f.newline()
	case *EnumDecl:
		f.formatEnum(field)
	case *MessageDecl:
		f.formatMessage(field)
	case *ExtendDecl:
		f.formatExtend(field)
	default:
		panic(fmt.Sprintf("formatter: no rendering rule for message field %T", field))
	}
}

func (f *Formatter) formatOneOf(oneof *OneOf) {
	f.writeIndent()
	f.write("oneof ")
	f.write(string(oneof.Name.Value))
	f.write(" {")
	f.newline()
	f.indent++
	for _, field := range oneof.Fields {
		f.writeIndent()
		f.writeFieldBody(field)
		f.newline()
	}
	f.indent--
	f.writeIndent()
	f.write("}")
	f.newline()
}

func (f *Formatter) formatExtend(ext *ExtendDecl) {
	f.writeIndent()
	f.write("extend ")
	f.write(string(ext.Target.Value))
	f.write(" {")
	f.newline()
	f.indent++
	for _, field := range ext.Fields {
		f.formatFieldDecl(field)
	}
	f.indent--
	f.writeIndent()
	f.write("}")
	f.newline()
}

func (f *Formatter) formatService(svc *ServiceDecl) {
	f.writeIndent()
	f.write("service ")
	f.write(string(svc.Name.Value))
	f.write(" {")
	f.newline()
	f.indent++
	for _, field := range svc.Fields {
		switch field := field.(type) {
		case *OptionDecl:
			f.formatOption(field)
		case *RpcMethod:
			f.formatRpc(field)
		default:
			panic(fmt.Sprintf("formatter: no rendering rule for service field %T", field))
		}
	}
	f.indent--
	f.writeIndent()
	f.write("}")
	f.newline()
}

func (f *Formatter) formatRpc(rpc *RpcMethod) {
	f.writeIndent()
	f.write("rpc ")
	f.write(string(rpc.Name.Value))
	f.write("(")
	f.writeFieldTypes(rpc.Inputs)
	f.write(") returns (")
	f.writeFieldTypes(rpc.Outputs)
	f.write(")")
	if len(rpc.Options) == 0 {
		f.write(";")
		f.newline()
		return
	}
	f.write(" {")
	f.newline()
	f.indent++
	for _, opt := range rpc.Options {
		f.formatOption(opt)
	}
	f.indent--
	f.writeIndent()
	f.write("}")
	f.newline()
}

func (f *Formatter) writeFieldTypes(types []Located[FieldType]) {
	for i, t := range types {
		if i > 0 {
			f.write(", ")
		}
		f.writeFieldType(t.Value)
	}
}
