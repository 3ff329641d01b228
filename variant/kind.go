package variant

// Kind identifies which arm of a Variant is populated.
type Kind uint8

// Kinds a Variant may hold.
const (
	KindEmpty Kind = iota
	KindBool
	KindInt64
	KindDouble
	KindString
	KindBoolArray
	KindInt64Array
	KindDoubleArray
	KindStringArray
)

//nolint:gochecknoglobals // lookup table
var kindNames = [...]string{
	KindEmpty:       "empty",
	KindBool:        "bool",
	KindInt64:       "integer",
	KindDouble:      "double",
	KindString:      "string",
	KindBoolArray:   "bool array",
	KindInt64Array:  "integer array",
	KindDoubleArray: "double array",
	KindStringArray: "string array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// IsScalar reports whether k is one of the four scalar kinds.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindString
}

// IsArray reports whether k is one of the four array kinds.
func (k Kind) IsArray() bool {
	return k >= KindBoolArray && k <= KindStringArray
}

// ArrayOf returns the array kind whose elements are of kind k,
// or KindEmpty when k is not a scalar kind.
func (k Kind) ArrayOf() Kind {
	if !k.IsScalar() {
		return KindEmpty
	}

	return k + (KindBoolArray - KindBool)
}

// Elem returns the element kind of array kind k, or KindEmpty when k is not
// an array kind.
func (k Kind) Elem() Kind {
	if !k.IsArray() {
		return KindEmpty
	}

	return k - (KindBoolArray - KindBool)
}
