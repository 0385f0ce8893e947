package proto

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"
)

type ParserSuite struct{}

func TestParser(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(ParserSuite{})
}

const canonicalSchema = `package example.api;
import "common.proto";
import public "shared.proto";
option java_package = "com.example.api";
enum Status {
  option allow_alias = true;
  UNKNOWN = 0;
  ACTIVE = 1;
}
message User {
  required int32 id = 1 [deprecated = true, (validate).min = 0];
  optional string name = 2;
  repeated .example.common.Tag tags = 3;
  extensions 100 to 200
  oneof contact {
    string email = 4;
    fixed64 phone = 5;
  }
  message Inner {
    optional bytes blob = 1;
  }
  extend Limits {
    optional bool flag = 50;
  }
}
extend User {
  optional sint32 score = 150;
}
service UserService {
  option deprecated = false;
  rpc GetUser(UserRequest) returns (User);
  rpc Sync(User, Status) returns (User) {
    option timeout = 30;
  }
}
`

func (ParserSuite) TestRoundTrip(ctx context.Context, t *testctx.T) {
	schema, err := Parse("canonical.proto", []byte(canonicalSchema))
	require.NoError(t, err)
	require.Equal(t, canonicalSchema, Format(schema))
}

func (ParserSuite) TestRoundTripIsStable(ctx context.Context, t *testctx.T) {
	schema, err := Parse("canonical.proto", []byte(canonicalSchema))
	require.NoError(t, err)

	reparsed, err := Parse("canonical.proto", []byte(Format(schema)))
	require.NoError(t, err)
	require.Equal(t, Format(schema), Format(reparsed))
}

func (ParserSuite) TestParsedTreeShape(ctx context.Context, t *testctx.T) {
	schema, err := Parse("canonical.proto", []byte(canonicalSchema))
	require.NoError(t, err)

	require.NotNil(t, schema.Name)
	require.Equal(t, "example.api", schema.Name.String())
	require.Len(t, schema.Decls, 7)

	imp, ok := schema.Decls[0].(*ImportDecl)
	require.True(t, ok)
	require.Equal(t, PrivateImport, imp.Visibility)
	require.Equal(t, StringLiteral("common.proto"), imp.Path.Value)

	pub, ok := schema.Decls[1].(*ImportDecl)
	require.True(t, ok)
	require.Equal(t, PublicImport, pub.Visibility)

	user, ok := schema.Decls[4].(*MessageDecl)
	require.True(t, ok)
	require.Equal(t, Ident("User"), user.Name.Value)
	require.Len(t, user.Fields, 7)

	id, ok := user.Fields[0].(*FieldDecl)
	require.True(t, ok)
	require.Equal(t, Required, id.Rule)
	require.Equal(t, "1", id.Field.Tag.Value.Text())
	require.Len(t, id.Field.Options, 2)

	tags, ok := user.Fields[2].(*FieldDecl)
	require.True(t, ok)
	named, ok := tags.Field.Type.Value.(*NamedType)
	require.True(t, ok)
	require.True(t, named.Global)
	require.Equal(t, "example.common.Tag", named.Name.String())
}

func (ParserSuite) TestParsedPositions(ctx context.Context, t *testctx.T) {
	source := "message M {\n  optional int32 num = 1;\n}\n"
	schema, err := Parse("pos.proto", []byte(source))
	require.NoError(t, err)

	msg := schema.Decls[0].(*MessageDecl)
	require.Equal(t, SourcePos{Filename: "pos.proto", Line: 1, Column: 8}, msg.Name.Pos)

	field := msg.Fields[0].(*FieldDecl).Field
	require.Equal(t, SourcePos{Filename: "pos.proto", Line: 2, Column: 11}, field.Type.Pos)
	require.Equal(t, SourcePos{Filename: "pos.proto", Line: 2, Column: 17}, field.Name.Pos)
	require.Equal(t, SourcePos{Filename: "pos.proto", Line: 2, Column: 23}, field.Tag.Pos)
}

func (ParserSuite) TestHexLettersAcceptedOnInput(ctx context.Context, t *testctx.T) {
	source := "message M {\n  optional int32 x = 0xFF;\n}\n"
	schema, err := Parse("hex.proto", []byte(source))
	require.NoError(t, err)

	field := schema.Decls[0].(*MessageDecl).Fields[0].(*FieldDecl).Field
	require.Equal(t, int64(255), field.Tag.Value.Value.Int64())
	require.Equal(t, Hexadecimal, field.Tag.Value.Base)

	// The printer re-renders hex digits as decimal remainder text.
	require.Contains(t, Format(schema), "optional int32 x = 0x1515;")
}

func (ParserSuite) TestNumericBases(ctx context.Context, t *testctx.T) {
	tests := []struct {
		name     string
		literal  string
		base     NumericBase
		value    int64
		rendered string
	}{
		{"decimal", "42", Decimal, 42, "42"},
		{"bare zero is decimal", "0", Decimal, 0, "0"},
		{"octal", "017", Octal, 15, "017"},
		{"octal zero", "00", Octal, 0, "00"},
		{"hex", "0x10", Hexadecimal, 16, "0x10"},
		{"hex zero", "0x0", Hexadecimal, 0, "0x0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			source := "enum E {\n  V = " + tt.literal + ";\n}\n"
			schema, err := Parse("num.proto", []byte(source))
			require.NoError(t, err)

			value := schema.Decls[0].(*EnumDecl).Fields[0].(*EnumValue).Value
			require.Equal(t, tt.base, value.Base)
			require.Equal(t, tt.value, value.Value.Int64())
			require.Equal(t, tt.rendered, value.Text())
		})
	}
}

func (ParserSuite) TestExtensionsTerminatorOptional(ctx context.Context, t *testctx.T) {
	bare := "message M {\n  extensions 2 to 10\n}\n"
	terminated := "message M {\n  extensions 2 to 10;\n}\n"

	bareSchema, err := Parse("a.proto", []byte(bare))
	require.NoError(t, err)
	terminatedSchema, err := Parse("b.proto", []byte(terminated))
	require.NoError(t, err)

	// Both parse to the same tree, and the canonical form has no
	// terminator.
	require.Equal(t, Format(bareSchema), Format(terminatedSchema))
	require.Contains(t, Format(bareSchema), "extensions 2 to 10\n")
}

func (ParserSuite) TestCommentsSkipped(ctx context.Context, t *testctx.T) {
	source := `// leading comment
message M { // trailing
  // inside
  optional int32 a = 1;
}
`
	schema, err := Parse("comments.proto", []byte(source))
	require.NoError(t, err)
	require.Equal(t, "message M {\n  optional int32 a = 1;\n}\n", Format(schema))
}

func (ParserSuite) TestStringEscapesDecoded(ctx context.Context, t *testctx.T) {
	source := `import "a\"b\\c";` + "\n"
	schema, err := Parse("esc.proto", []byte(source))
	require.NoError(t, err)

	imp := schema.Decls[0].(*ImportDecl)
	require.Equal(t, StringLiteral(`a"b\c`), imp.Path.Value)
	require.Equal(t, source, Format(schema))
}

func (ParserSuite) TestSyntaxErrors(ctx context.Context, t *testctx.T) {
	tests := []struct {
		name    string
		source  string
		msg     string
		line    int
		column  int
	}{
		{
			name:   "unknown message field keyword",
			source: "message User {\n  require int32 id = 1;\n}\n",
			msg:    `expected message field, found "require"`,
			line:   2,
			column: 2,
		},
		{
			name:   "missing message name",
			source: "message {\n}\n",
			msg:    `expected identifier, found "{"`,
			line:   1,
			column: 8,
		},
		{
			name:   "unterminated string",
			source: `import "common.proto` + "\n",
			msg:    "unterminated string literal",
			line:   1,
			column: 7,
		},
		{
			name:   "stray character",
			source: "message M {\n  optional int32 a = 1;\n}%\n",
			msg:    `unexpected character '%'`,
			line:   3,
			column: 1,
		},
		{
			name:   "hex literal with no digits",
			source: "enum E {\n  V = 0x;\n}\n",
			msg:    "hexadecimal literal has no digits",
			line:   2,
			column: 6,
		},
		{
			name:   "extensions without bound",
			source: "message M {\n  extensions 2 to;\n}\n",
			msg:    `expected integer literal, found ";"`,
			line:   2,
			column: 17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			_, err := Parse("bad.proto", []byte(tt.source))
			require.Error(t, err)

			synErr, ok := err.(*SyntaxError)
			require.True(t, ok, "expected *SyntaxError, got %T: %v", err, err)
			require.Equal(t, tt.msg, synErr.Msg)
			require.Equal(t, tt.line, synErr.Pos.Line)
			require.Equal(t, tt.column, synErr.Pos.Column)
			require.Equal(t, "bad.proto", synErr.Pos.Filename)
		})
	}
}

func (ParserSuite) TestSyntaxErrorContext(ctx context.Context, t *testctx.T) {
	source := "message User {\n  require int32 id = 1;\n}\n"
	_, err := Parse("bad.proto", []byte(source))
	require.Error(t, err)

	synErr, ok := err.(*SyntaxError)
	require.True(t, ok)

	formatted := synErr.FormatWithContext(source)
	require.Contains(t, formatted, "--> bad.proto:2:2")
	require.Contains(t, formatted, "require int32 id = 1;")
	require.Contains(t, formatted, "^")
}

func (ParserSuite) TestParseFile(ctx context.Context, t *testctx.T) {
	dir, err := os.MkdirTemp("", "protoform-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "x.proto")
	require.NoError(t, os.WriteFile(path, []byte(canonicalSchema), 0644))

	schema, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, canonicalSchema, Format(schema))

	_, err = ParseFile(filepath.Join(dir, "missing.proto"))
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "missing.proto"))
}
