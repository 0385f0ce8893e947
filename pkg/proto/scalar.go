package proto

// ScalarType is one of the language's primitive wire types.
type ScalarType int

const (
	DoubleType ScalarType = iota
	FloatType
	Int32Type
	Int64Type
	UInt32Type
	UInt64Type
	SInt32Type
	SInt64Type
	Fixed32Type
	Fixed64Type
	SFixed32Type
	SFixed64Type
	BoolType
	StringType
	BytesType
)

func (ScalarType) isNode()      {}
func (ScalarType) isFieldType() {}

var scalarKeywords = map[ScalarType]string{
	DoubleType:   "double",
	FloatType:    "float",
	Int32Type:    "int32",
	Int64Type:    "int64",
	UInt32Type:   "uint32",
	UInt64Type:   "uint64",
	SInt32Type:   "sint32",
	SInt64Type:   "sint64",
	Fixed32Type:  "fixed32",
	Fixed64Type:  "fixed64",
	SFixed32Type: "sfixed32",
	SFixed64Type: "sfixed64",
	BoolType:     "bool",
	StringType:   "string",
	BytesType:    "bytes",
}

// Keyword returns the type's canonical source spelling.
func (t ScalarType) Keyword() string {
	return scalarKeywords[t]
}

func (t ScalarType) String() string {
	return t.Keyword()
}

// ScalarByKeyword maps a source keyword back to its scalar type. The
// parser uses this as its scalar keyword set.
func ScalarByKeyword(keyword string) (ScalarType, bool) {
	for t, kw := range scalarKeywords {
		if kw == keyword {
			return t, true
		}
	}
	return 0, false
}
