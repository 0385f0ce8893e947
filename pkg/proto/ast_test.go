package proto

import (
	"context"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"
)

type AstSuite struct{}

func TestAst(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(AstSuite{})
}

func (AstSuite) TestSourcePosAdvance(ctx context.Context, t *testctx.T) {
	pos := Pos("test.proto")
	require.Equal(t, 1, pos.Line)
	require.Equal(t, 0, pos.Column)

	pos = pos.NextColumn().NextColumn()
	require.Equal(t, 1, pos.Line)
	require.Equal(t, 2, pos.Column)

	pos = pos.NextLine()
	require.Equal(t, 2, pos.Line)
	require.Equal(t, 0, pos.Column)

	require.Equal(t, "test.proto:2:0", pos.String())
}

func (AstSuite) TestSourcePosAdvanceIsValueSemantics(ctx context.Context, t *testctx.T) {
	pos := Pos("test.proto")
	_ = pos.NextColumn()
	require.Equal(t, 0, pos.Column)
}

func (AstSuite) TestCompoundNameRejectsEmpty(ctx context.Context, t *testctx.T) {
	_, err := NewCompoundName()
	require.Error(t, err)
	require.ErrorAs(t, err, &MalformedNameError{})
}

func (AstSuite) TestCompoundNamePos(ctx context.Context, t *testctx.T) {
	first := At(Ident("a"), SourcePos{Filename: "x.proto", Line: 3, Column: 7})
	cn, err := NewCompoundName(first, name("b"), name("c"))
	require.NoError(t, err)

	pos, err := cn.Pos()
	require.NoError(t, err)
	require.Equal(t, first.Pos, pos)

	lead, err := cn.First()
	require.NoError(t, err)
	require.Equal(t, Ident("a"), lead.Value)

	require.Equal(t, "a.b.c", cn.String())
	require.Len(t, cn.Parts(), 3)
}

func (AstSuite) TestZeroValueCompoundNameFailsPosLookup(ctx context.Context, t *testctx.T) {
	var cn CompoundName
	_, err := cn.Pos()
	require.ErrorAs(t, err, &MalformedNameError{})

	_, err = cn.First()
	require.ErrorAs(t, err, &MalformedNameError{})
}

func (AstSuite) TestLocatedWrapsTransparently(ctx context.Context, t *testctx.T) {
	pos := SourcePos{Filename: "f.proto", Line: 1, Column: 4}
	located := At(StringLiteral("hi"), pos)
	require.Equal(t, StringLiteral("hi"), located.Value)
	require.Equal(t, pos, located.Pos)
}

func (AstSuite) TestWalkVisitsAllDeclarations(ctx context.Context, t *testctx.T) {
	schema := &Schema{Decls: []Decl{
		&MessageDecl{Name: name("M"), Fields: []MessageField{
			scalarField(Required, Int32Type, "a", 1),
			&MessageDecl{Name: name("Inner"), Fields: []MessageField{
				scalarField(Optional, StringType, "b", 2),
			}},
		}},
		&ServiceDecl{Name: name("S"), Fields: []ServiceField{
			&RpcMethod{
				Name:    name("Call"),
				Inputs:  []Located[FieldType]{At(FieldType(&NamedType{Name: compound("M")}), SourcePos{})},
				Outputs: []Located[FieldType]{At(FieldType(&NamedType{Name: compound("M")}), SourcePos{})},
			},
		}},
	}}

	var messages, fields, namedTypes int
	Walk(schema, func(n Node) bool {
		switch n.(type) {
		case *MessageDecl:
			messages++
		case *Field:
			fields++
		case *NamedType:
			namedTypes++
		}
		return true
	})
	require.Equal(t, 2, messages)
	require.Equal(t, 2, fields)
	require.Equal(t, 2, namedTypes)
}

func (AstSuite) TestWalkSkipsChildrenOnFalse(ctx context.Context, t *testctx.T) {
	schema := &Schema{Decls: []Decl{
		&MessageDecl{Name: name("M"), Fields: []MessageField{
			&MessageDecl{Name: name("Inner")},
		}},
	}}

	var visited int
	Walk(schema, func(n Node) bool {
		visited++
		_, isMessage := n.(*MessageDecl)
		return !isMessage
	})
	// Schema and the outer message only; Inner is skipped.
	require.Equal(t, 2, visited)
}
