package proto

import (
	"fmt"
	"math/big"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokString
	tokDot
	tokSemi
	tokEquals
	tokComma
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokIdent:
		return "identifier"
	case tokInt:
		return "integer literal"
	case tokString:
		return "string literal"
	case tokDot:
		return `"."`
	case tokSemi:
		return `";"`
	case tokEquals:
		return `"="`
	case tokComma:
		return `","`
	case tokLBrace:
		return `"{"`
	case tokRBrace:
		return `"}"`
	case tokLBracket:
		return `"["`
	case tokRBracket:
		return `"]"`
	case tokLParen:
		return `"("`
	case tokRParen:
		return `")"`
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

type token struct {
	kind tokenKind
	pos  SourcePos
	text string         // identifier text
	num  NumericLiteral // for tokInt
	str  string         // decoded value for tokString
}

// lexer scans schema source into tokens, tracking positions a column or
// line at a time.
type lexer struct {
	source []byte
	offset int
	pos    SourcePos
}

func newLexer(filename string, source []byte) *lexer {
	return &lexer{source: source, pos: Pos(filename)}
}

func (l *lexer) peekByte() (byte, bool) {
	if l.offset >= len(l.source) {
		return 0, false
	}
	return l.source[l.offset], true
}

func (l *lexer) advanceByte() byte {
	b := l.source[l.offset]
	l.offset++
	if b == '\n' {
		l.pos = l.pos.NextLine()
	} else {
		l.pos = l.pos.NextColumn()
	}
	return b
}

func (l *lexer) errf(pos SourcePos, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// next returns the next token, skipping whitespace and // comments.
func (l *lexer) next() (token, error) {
	l.skipSpace()

	start := l.pos
	b, ok := l.peekByte()
	if !ok {
		return token{kind: tokEOF, pos: start}, nil
	}

	switch {
	case isIdentStart(b):
		return l.scanIdent(start), nil
	case isDigit(b):
		return l.scanNumber(start)
	case b == '"':
		return l.scanString(start)
	}

	l.advanceByte()
	switch b {
	case '.':
		return token{kind: tokDot, pos: start}, nil
	case ';':
		return token{kind: tokSemi, pos: start}, nil
	case '=':
		return token{kind: tokEquals, pos: start}, nil
	case ',':
		return token{kind: tokComma, pos: start}, nil
	case '{':
		return token{kind: tokLBrace, pos: start}, nil
	case '}':
		return token{kind: tokRBrace, pos: start}, nil
	case '[':
		return token{kind: tokLBracket, pos: start}, nil
	case ']':
		return token{kind: tokRBracket, pos: start}, nil
	case '(':
		return token{kind: tokLParen, pos: start}, nil
	case ')':
		return token{kind: tokRParen, pos: start}, nil
	}
	return token{}, l.errf(start, "unexpected character %q", rune(b))
}

func (l *lexer) skipSpace() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			l.advanceByte()
		case b == '/' && l.offset+1 < len(l.source) && l.source[l.offset+1] == '/':
			for {
				b, ok := l.peekByte()
				if !ok || b == '\n' {
					break
				}
				l.advanceByte()
			}
		default:
			return
		}
	}
}

func (l *lexer) scanIdent(start SourcePos) token {
	from := l.offset
	for {
		b, ok := l.peekByte()
		if !ok || !isIdentPart(b) {
			break
		}
		l.advanceByte()
	}
	return token{kind: tokIdent, pos: start, text: string(l.source[from:l.offset])}
}

// scanNumber scans decimal, octal (leading 0), and hex (0x) literals.
// Hex accepts letter digits on input even though the printer never emits
// them.
func (l *lexer) scanNumber(start SourcePos) (token, error) {
	first := l.advanceByte()

	base := Decimal
	isDigitFn := isDigit
	if first == '0' {
		if b, ok := l.peekByte(); ok && (b == 'x' || b == 'X') {
			l.advanceByte()
			base = Hexadecimal
			isDigitFn = isHexDigit
		} else if ok && isDigit(b) {
			base = Octal
			isDigitFn = isOctalDigit
		}
	}

	from := l.offset
	for {
		b, ok := l.peekByte()
		if !ok || !isDigitFn(b) {
			break
		}
		l.advanceByte()
	}
	digits := string(l.source[from:l.offset])

	if base == Hexadecimal && digits == "" {
		return token{}, l.errf(start, "hexadecimal literal has no digits")
	}
	if b, ok := l.peekByte(); ok && isIdentPart(b) {
		return token{}, l.errf(l.pos, "malformed numeric literal")
	}

	if base == Decimal {
		digits = string(first) + digits
	}
	value, ok := new(big.Int).SetString(digits, base.Radix())
	if !ok {
		return token{}, l.errf(start, "malformed numeric literal %q", digits)
	}
	return token{kind: tokInt, pos: start, num: NumericLiteral{Base: base, Value: value}}, nil
}

// scanString decodes a double-quoted literal. Only \\ and \" are escape
// sequences; any other backslash is taken literally.
func (l *lexer) scanString(start SourcePos) (token, error) {
	l.advanceByte() // opening quote

	var decoded []byte
	for {
		b, ok := l.peekByte()
		if !ok || b == '\n' {
			return token{}, l.errf(start, "unterminated string literal")
		}
		l.advanceByte()
		if b == '"' {
			return token{kind: tokString, pos: start, str: string(decoded)}, nil
		}
		if b == '\\' {
			if next, ok := l.peekByte(); ok && (next == '\\' || next == '"') {
				decoded = append(decoded, l.advanceByte())
				continue
			}
		}
		decoded = append(decoded, b)
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
