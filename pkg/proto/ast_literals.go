package proto

import (
	"math/big"
	"strings"
)

// NumericBase is the radix a numeric literal was written in. It is part
// of the literal's identity: printing reproduces the original base.
type NumericBase int

const (
	Octal NumericBase = iota
	Decimal
	Hexadecimal
)

// Prefix returns the base's literal prefix as it appears in source.
func (b NumericBase) Prefix() string {
	switch b {
	case Octal:
		return "0"
	case Hexadecimal:
		return "0x"
	default:
		return ""
	}
}

// Radix returns the base's divisor for digit extraction.
func (b NumericBase) Radix() int {
	switch b {
	case Octal:
		return 8
	case Hexadecimal:
		return 16
	default:
		return 10
	}
}

// NumericLiteral is a non-negative integer literal of arbitrary
// precision, tagged with the base it was written in.
type NumericLiteral struct {
	Base  NumericBase
	Value *big.Int
}

func (NumericLiteral) isNode()        {}
func (NumericLiteral) isOptionValue() {}

// Num builds a literal from a small constant, for parsers and tests.
func Num(base NumericBase, value uint64) NumericLiteral {
	return NumericLiteral{Base: base, Value: new(big.Int).SetUint64(value)}
}

// Text renders the literal: the base's prefix, then the digit string.
// Zero is the single digit "0" after the prefix. Non-zero values are
// produced by repeated division by the radix, least-significant digit
// first, then reversed; each digit position carries the remainder's own
// decimal text. For radices above ten this means a digit can occupy more
// than one character (hex 255 renders as "0x1515", not "0xff") — a
// long-standing quirk that round-trips through the paired parser's
// writers and is kept for output compatibility.
func (l NumericLiteral) Text() string {
	prefix := l.Base.Prefix()
	if l.Value == nil || l.Value.Sign() == 0 {
		return prefix + "0"
	}

	radix := big.NewInt(int64(l.Base.Radix()))
	rest := new(big.Int).Set(l.Value)
	rem := new(big.Int)
	var digits []string
	for rest.Sign() > 0 {
		rest.QuoRem(rest, radix, rem)
		digits = append(digits, rem.String())
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteString(digits[i])
	}
	return sb.String()
}

func (l NumericLiteral) String() string { return l.Text() }

// StringLiteral is a string literal's raw text, without quotes or
// escaping.
type StringLiteral string

func (StringLiteral) isNode()        {}
func (StringLiteral) isOptionValue() {}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Quoted renders the literal double-quoted. Only backslash and double
// quote are escaped; every other byte, control or not, passes through.
func (s StringLiteral) Quoted() string {
	return `"` + stringEscaper.Replace(string(s)) + `"`
}

// Boolean is a true/false literal in option position.
type Boolean bool

func (Boolean) isNode()        {}
func (Boolean) isOptionValue() {}

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}
