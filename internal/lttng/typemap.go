package lttng

import (
	"fmt"
	"strings"

	"github.com/xll-gen/lttng-gen/internal/manifest"
)

// Flavor selects the concrete type universe of the generated code.
type Flavor int

const (
	CoreCLR Flavor = iota
	Mono
)

// String returns the flavor name as accepted by ParseFlavor.
func (f Flavor) String() string {
	switch f {
	case CoreCLR:
		return "CoreCLR"
	case Mono:
		return "Mono"
	default:
		return fmt.Sprintf("Flavor(%d)", int(f))
	}
}

// ParseFlavor converts a runtime flavor name (case-insensitive).
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(s) {
	case "coreclr":
		return CoreCLR, nil
	case "mono":
		return Mono, nil
	default:
		return CoreCLR, fmt.Errorf("invalid runtime flavor: %s (allowed: CoreCLR, Mono)", s)
	}
}

// Encoding is the ctf field macro family used to describe a field.
type Encoding int

const (
	Integer Encoding = iota
	Float
	String
	Sequence
)

// Macro returns the ctf macro name of the encoding.
func (e Encoding) Macro() string {
	switch e {
	case Integer:
		return "ctf_integer"
	case Float:
		return "ctf_float"
	case String:
		return "ctf_string"
	case Sequence:
		return "ctf_sequence"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// String implements fmt.Stringer.
func (e Encoding) String() string {
	return e.Macro()
}

// blank is what the Null wire type renders as; it is concatenated into
// argument types and means "no count modifier".
const blank = " "

// LttngType returns the tracepoint argument type of w for the flavor.
func LttngType(f Flavor, w manifest.WireType) (string, error) {
	switch f {
	case CoreCLR:
		return coreCLRLttngType(w)
	case Mono:
		return monoLttngType(w)
	default:
		return "", fmt.Errorf("%w: flavor %s", ErrUnmappedType, f)
	}
}

func coreCLRLttngType(w manifest.WireType) (string, error) {
	switch w {
	case manifest.Null:
		return blank, nil
	case manifest.Int64:
		return "const __int64", nil
	case manifest.ULong:
		return "const ULONG", nil
	case manifest.Count:
		return "*", nil
	case manifest.Struct:
		return "const BYTE *", nil
	case manifest.GUID:
		return "const int", nil
	case manifest.AnsiString:
		return "const char*", nil
	case manifest.UnicodeString:
		return "const char*", nil
	case manifest.Double:
		return "const double", nil
	case manifest.Int32:
		return "const signed int", nil
	case manifest.Boolean:
		return "const BOOL", nil
	case manifest.UInt64:
		return "const unsigned __int64", nil
	case manifest.UInt32:
		return "const unsigned int", nil
	case manifest.UInt16:
		return "const unsigned short", nil
	case manifest.UInt8:
		return "const unsigned char", nil
	case manifest.Pointer:
		return "const size_t", nil
	case manifest.Binary:
		return "const BYTE", nil
	}
	return "", fmt.Errorf("%w: %s (CoreCLR tracepoint types)", ErrUnmappedType, w)
}

func monoLttngType(w manifest.WireType) (string, error) {
	switch w {
	case manifest.Null:
		return blank, nil
	case manifest.Int64:
		return "const int64_t", nil
	case manifest.ULong:
		return "const uint32_t", nil
	case manifest.Count:
		return "*", nil
	case manifest.Struct:
		return "const uint8_t *", nil
	case manifest.GUID:
		return "const int32_t", nil
	case manifest.AnsiString:
		return "const char*", nil
	case manifest.UnicodeString:
		return "const ep_char8_t*", nil
	case manifest.Double:
		return "const double", nil
	case manifest.Int32:
		return "const int32_t", nil
	case manifest.Boolean:
		return "const bool", nil
	case manifest.UInt64:
		return "const uint64_t", nil
	case manifest.UInt32:
		return "const uint32_t", nil
	case manifest.UInt16:
		return "const uint16_t", nil
	case manifest.UInt8:
		return "const uint8_t", nil
	case manifest.Pointer:
		return "const void*", nil
	case manifest.Binary:
		return "const uint8_t", nil
	}
	return "", fmt.Errorf("%w: %s (Mono tracepoint types)", ErrUnmappedType, w)
}

// PalType returns the type used for w in the public FireEtXplat signatures.
func PalType(f Flavor, w manifest.WireType) (string, error) {
	switch f {
	case CoreCLR:
		return coreCLRPalType(w)
	case Mono:
		return monoPalType(w)
	default:
		return "", fmt.Errorf("%w: flavor %s", ErrUnmappedType, f)
	}
}

func coreCLRPalType(w manifest.WireType) (string, error) {
	switch w {
	case manifest.Null:
		return blank, nil
	case manifest.Int64:
		return "const __int64", nil
	case manifest.ULong:
		return "const ULONG", nil
	case manifest.Count:
		return "*", nil
	case manifest.Struct:
		return "const void", nil
	case manifest.GUID:
		return "const GUID", nil
	case manifest.AnsiString:
		return "LPCSTR", nil
	case manifest.UnicodeString:
		return "PCWSTR", nil
	case manifest.Double:
		return "const double", nil
	case manifest.Int32:
		return "const signed int", nil
	case manifest.Boolean:
		return "const BOOL", nil
	case manifest.UInt64:
		return "const unsigned __int64", nil
	case manifest.UInt32:
		return "const unsigned int", nil
	case manifest.UInt16:
		return "const unsigned short", nil
	case manifest.UInt8:
		return "const unsigned char", nil
	case manifest.Pointer:
		return "const void*", nil
	case manifest.Binary:
		return "const BYTE", nil
	}
	return "", fmt.Errorf("%w: %s (CoreCLR PAL types)", ErrUnmappedType, w)
}

func monoPalType(w manifest.WireType) (string, error) {
	switch w {
	case manifest.Null:
		return blank, nil
	case manifest.Int64:
		return "const int64_t", nil
	case manifest.ULong:
		return "const uint32_t", nil
	case manifest.Count:
		return "*", nil
	case manifest.Struct:
		return "const void", nil
	case manifest.GUID:
		return "const uint8_t", nil
	case manifest.AnsiString:
		return "const ep_char8_t*", nil
	case manifest.UnicodeString:
		return "const ep_char8_t*", nil
	case manifest.Double:
		return "const double", nil
	case manifest.Int32:
		return "const int32_t", nil
	case manifest.Boolean:
		return "const bool", nil
	case manifest.UInt64:
		return "const uint64_t", nil
	case manifest.UInt32:
		return "const uint32_t", nil
	case manifest.UInt16:
		return "const uint16_t", nil
	case manifest.UInt8:
		return "const uint8_t", nil
	case manifest.Pointer:
		return "const void*", nil
	case manifest.Binary:
		return "const uint8_t", nil
	}
	return "", fmt.Errorf("%w: %s (Mono PAL types)", ErrUnmappedType, w)
}

// EncodingOf returns the field encoding of w. Null is a placeholder, not a
// field type, and is rejected.
func EncodingOf(w manifest.WireType) (Encoding, error) {
	switch w {
	case manifest.Null:
		return 0, fmt.Errorf("%w: %s has no field encoding", ErrStructuralType, w)
	case manifest.Int64, manifest.ULong, manifest.Int32, manifest.Boolean,
		manifest.UInt64, manifest.UInt32, manifest.UInt16, manifest.UInt8,
		manifest.Pointer:
		return Integer, nil
	case manifest.Double:
		return Float, nil
	case manifest.AnsiString, manifest.UnicodeString:
		return String, nil
	case manifest.Count, manifest.Struct, manifest.GUID, manifest.Binary:
		return Sequence, nil
	}
	return 0, fmt.Errorf("%w: %s (field encodings)", ErrUnmappedType, w)
}

// withCount renders a type followed by its count modifier, e.g.
// "const BYTE" + "*". A blank modifier is dropped.
func withCount(typ, countMod string) string {
	if countMod == blank {
		return typ
	}
	return typ + countMod
}
