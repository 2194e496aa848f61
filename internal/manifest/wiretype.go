package manifest

import (
	"errors"
	"fmt"
)

// ErrUnknownWireType is returned when a manifest references a wire type tag
// outside the supported set.
var ErrUnknownWireType = errors.New("unknown wire type")

// WireType is the abstract, manifest-level type of an event parameter.
type WireType int

const (
	// Null is a structural placeholder meaning "no count modifier".
	Null WireType = iota
	Int64
	UInt64
	Int32
	UInt32
	ULong
	UInt16
	UInt8
	Boolean
	Double
	Pointer
	GUID
	AnsiString
	UnicodeString
	Binary
	// Count is a structural placeholder marking a counted (pointer) parameter.
	Count
	// Struct is an opaque, caller-laid-out structure.
	Struct
)

var wireTypeTags = [...]string{
	Null:          "win:null",
	Int64:         "win:Int64",
	UInt64:        "win:UInt64",
	Int32:         "win:Int32",
	UInt32:        "win:UInt32",
	ULong:         "win:ULong",
	UInt16:        "win:UInt16",
	UInt8:         "win:UInt8",
	Boolean:       "win:Boolean",
	Double:        "win:Double",
	Pointer:       "win:Pointer",
	GUID:          "win:GUID",
	AnsiString:    "win:AnsiString",
	UnicodeString: "win:UnicodeString",
	Binary:        "win:Binary",
	Count:         "win:count",
	Struct:        "win:Struct",
}

// WireTypes returns every member of the wire type enumeration in declaration order.
func WireTypes() []WireType {
	out := make([]WireType, 0, len(wireTypeTags))
	for i := range wireTypeTags {
		out = append(out, WireType(i))
	}
	return out
}

// String returns the manifest tag of the wire type (e.g. "win:Int32").
func (w WireType) String() string {
	if w < 0 || int(w) >= len(wireTypeTags) {
		return fmt.Sprintf("WireType(%d)", int(w))
	}
	return wireTypeTags[w]
}

// IsStructural reports whether the type is a placeholder (Null or Count)
// rather than a field type.
func (w WireType) IsStructural() bool {
	return w == Null || w == Count
}

// ParseWireType converts a manifest tag into a WireType.
func ParseWireType(tag string) (WireType, error) {
	for i, t := range wireTypeTags {
		if t == tag {
			return WireType(i), nil
		}
	}
	return Null, fmt.Errorf("%w: %q", ErrUnknownWireType, tag)
}

// fixedSize is the serialized size in bytes of scalar wire types, or 0 for
// variable-length and structural types.
func (w WireType) fixedSize() int {
	switch w {
	case Int64, UInt64, Double, Pointer:
		return 8
	case Int32, UInt32, ULong, Boolean:
		return 4
	case UInt16:
		return 2
	case UInt8:
		return 1
	case GUID:
		return 16
	default:
		return 0
	}
}
