// Package coding implements the low-level QR / Micro QR / rMQR encoding
// pipeline: segmentation, bit assembly, Reed–Solomon error correction, and
// module-grid layout. It has no knowledge of rendering; callers consume the
// finished matrix through Canvas's read-only accessors.
package coding

import "fmt"

// ErrKind classifies why an encoding operation failed.
type ErrKind int

const (
	// DataTooLong means the encoded stream exceeds the capacity of the
	// chosen (or largest available) version.
	DataTooLong ErrKind = iota
	// InvalidVersion means the (version, ec level) pair is not standardized.
	InvalidVersion
	// UnsupportedCharacterSet means the mode is not permitted in the
	// version family that was requested (e.g. Byte in Micro(1)).
	UnsupportedCharacterSet
	// InvalidEciDesignator is reserved for future ECI support; the core
	// never produces it today.
	InvalidEciDesignator
	// InvalidCharacter means the input violates the selected mode's
	// alphabet (e.g. an odd-length Kanji run).
	InvalidCharacter
)

func (k ErrKind) String() string {
	switch k {
	case DataTooLong:
		return "data too long"
	case InvalidVersion:
		return "invalid version"
	case UnsupportedCharacterSet:
		return "unsupported character set"
	case InvalidEciDesignator:
		return "invalid ECI designator"
	case InvalidCharacter:
		return "invalid character"
	default:
		return "unknown error"
	}
}

// Error is the tagged error value returned across this package's API
// boundary. It is never used for control flow internally — components
// either succeed or return one of these.
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func errf(kind ErrKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Color is the state of a finished module: Light or Dark.
type Color uint8

const (
	Light Color = iota
	Dark
)

// Select returns dark when c is Dark and light otherwise.
func (c Color) Select(dark, light int) int {
	if c == Dark {
		return dark
	}
	return light
}

func (c Color) String() string {
	if c == Dark {
		return "Dark"
	}
	return "Light"
}

// EcLevel is the QR error-correction level, ordered from least to most
// tolerant of damage.
type EcLevel int

const (
	L EcLevel = iota
	M
	Q
	H
)

func (l EcLevel) String() string {
	switch l {
	case L:
		return "L"
	case M:
		return "M"
	case Q:
		return "Q"
	case H:
		return "H"
	default:
		return "?"
	}
}

// kind discriminates the three Version families. Version is a tagged union
// over them: rather than three subclasses, each component switches on kind
// in a handful of places, per spec.
type kind uint8

const (
	kindNormal kind = iota
	kindMicro
	kindRmqr
)

// Version identifies a symbol size within one of three families:
// Normal(1..40), Micro(1..4), or Rmqr(height, width) drawn from the 32
// standardized pairs.
type Version struct {
	k    kind
	a, b uint8 // Normal: a=version. Micro: a=version. Rmqr: a=height, b=width.
}

// Normal constructs a classic QR code version (1 to 40).
func Normal(v int) Version { return Version{k: kindNormal, a: uint8(v)} }

// Micro constructs a Micro QR code version (1 to 4).
func Micro(v int) Version { return Version{k: kindMicro, a: uint8(v)} }

// Rmqr constructs an rMQR version from its height and width. The pair must
// be one of the 32 standardized combinations for any operation but Width /
// Height / Area to succeed; mismatched pairs are rejected by FetchInt.
func Rmqr(height, width int) Version { return Version{k: kindRmqr, a: uint8(height), b: uint8(width)} }

// IsNormal reports whether v names a classic QR code version.
func (v Version) IsNormal() bool { return v.k == kindNormal }

// IsMicro reports whether v names a Micro QR code version.
func (v Version) IsMicro() bool { return v.k == kindMicro }

// IsRmqr reports whether v names an rMQR version.
func (v Version) IsRmqr() bool { return v.k == kindRmqr }

// NormalNumber returns the Normal QR version number, or 0 if v is not Normal.
func (v Version) NormalNumber() int {
	if v.k != kindNormal {
		return 0
	}
	return int(v.a)
}

// MicroNumber returns the Micro QR version number, or 0 if v is not Micro.
func (v Version) MicroNumber() int {
	if v.k != kindMicro {
		return 0
	}
	return int(v.a)
}

// Width returns the number of modules on the horizontal edge.
func (v Version) Width() int {
	switch v.k {
	case kindNormal:
		return int(v.a)*4 + 17
	case kindMicro:
		return int(v.a)*2 + 9
	default: // kindRmqr
		return int(v.b)
	}
}

// Height returns the number of modules on the vertical edge.
func (v Version) Height() int {
	if v.k == kindRmqr {
		return int(v.a)
	}
	return v.Width()
}

// Area returns Width() * Height().
func (v Version) Area() int { return v.Width() * v.Height() }

// ModeBitsCount is the number of bits used by the mode indicator for this
// version family: 4 for Normal, version-1 for Micro, 3 for rMQR.
func (v Version) ModeBitsCount() int {
	switch v.k {
	case kindNormal:
		return 4
	case kindMicro:
		return int(v.a) - 1
	default:
		return 3
	}
}

// rmqrIndex returns the index of this (height,width) pair within the 32
// standardized rMQR combinations, in the canonical table order (matching
// rmqrSizes below), or -1 if the pair is not standardized.
func (v Version) rmqrIndex() int {
	if v.k != kindRmqr {
		return -1
	}
	for i, rv := range rmqrSizes {
		if rv[0] == int(v.a) && rv[1] == int(v.b) {
			return i
		}
	}
	return -1
}

// RmqrWidthIndex returns the index of this version's width among the 6
// standardized rMQR widths (ascending), or -1 if the width isn't one of them.
func (v Version) RmqrWidthIndex() int {
	if v.k != kindRmqr {
		return -1
	}
	for i, w := range RmqrAllWidths {
		if int(v.b) == w {
			return i
		}
	}
	return -1
}

// RmqrAllWidths lists the 6 standardized rMQR widths in ascending order.
var RmqrAllWidths = [6]int{27, 43, 59, 77, 99, 139}

// RmqrAllHeights lists the 6 standardized rMQR heights in ascending order.
var RmqrAllHeights = [6]int{7, 9, 11, 13, 15, 17}

// rmqrSizes is the canonical (height, width) enumeration backing rmqrIndex,
// the flat-table row order used by FetchInt. It is height-major; RmqrAll
// re-enumerates the same pairs width-major for the auto-version search.
var rmqrSizes = [32][2]int{
	{7, 43}, {7, 59}, {7, 77}, {7, 99}, {7, 139},
	{9, 43}, {9, 59}, {9, 77}, {9, 99}, {9, 139},
	{11, 27}, {11, 43}, {11, 59}, {11, 77}, {11, 99}, {11, 139},
	{13, 27}, {13, 43}, {13, 59}, {13, 77}, {13, 99}, {13, 139},
	{15, 43}, {15, 59}, {15, 77}, {15, 99}, {15, 139},
	{17, 43}, {17, 59}, {17, 77}, {17, 99}, {17, 139},
}

// RmqrAll enumerates the 32 standardized rMQR versions in ascending-width
// order (heights ascending within each width), the order the auto rMQR
// search walks.
func RmqrAll() []Version {
	out := make([]Version, 0, len(rmqrSizes))
	for _, w := range RmqrAllWidths {
		for _, h := range RmqrAllHeights {
			v := Rmqr(h, w)
			if v.rmqrIndex() < 0 {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// flatIndex maps a Version onto its row in the 76-row standard tables: the
// first 40 rows are Normal 1..40, the next 4 are Micro 1..4, and the final
// 32 are rMQR in rmqrSizes order.
func (v Version) flatIndex() (int, bool) {
	switch v.k {
	case kindNormal:
		n := int(v.a)
		if n < 1 || n > 40 {
			return 0, false
		}
		return n - 1, true
	case kindMicro:
		n := int(v.a)
		if n < 1 || n > 4 {
			return 0, false
		}
		return 39 + n, true
	default:
		idx := v.rmqrIndex()
		if idx < 0 {
			return 0, false
		}
		return 44 + idx, true
	}
}

// FetchInt looks up this version's row in a 76x4 standardized table (see
// DataLengths for the canonical example). A zero entry means the
// combination isn't standardized and InvalidVersion is returned.
func (v Version) FetchInt(table [76][4]int, ecLevel EcLevel) (int, error) {
	idx, ok := v.flatIndex()
	if !ok {
		return 0, errf(InvalidVersion, "version %v not tabulated", v)
	}
	val := table[idx][ecLevel]
	if val == 0 {
		return 0, errf(InvalidVersion, "%v does not support level %v", v, ecLevel)
	}
	return val, nil
}

func (v Version) String() string {
	switch v.k {
	case kindNormal:
		return fmt.Sprintf("Normal(%d)", v.a)
	case kindMicro:
		return fmt.Sprintf("Micro(%d)", v.a)
	default:
		return fmt.Sprintf("Rmqr(%d,%d)", v.a, v.b)
	}
}

// Mode is the character class governing how a segment of input is bit
// packed.
type Mode uint8

const (
	Numeric Mode = iota
	Alphanumeric
	Byte
	Kanji
)

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "Numeric"
	case Alphanumeric:
		return "Alphanumeric"
	case Byte:
		return "Byte"
	case Kanji:
		return "Kanji"
	default:
		return "?"
	}
}

// compare expresses the partial order "supersets of character sets":
// Numeric <= Alphanumeric <= Byte, Kanji <= Byte. It returns (0, true) for
// equal modes, (-1, true) if m is a subset of other, (1, true) if m is a
// superset, and (0, false) if the two are incomparable (Alphanumeric vs
// Kanji).
func (m Mode) compare(other Mode) (int, bool) {
	switch {
	case m == other:
		return 0, true
	case m == Numeric && (other == Alphanumeric || other == Byte),
		m == Alphanumeric && other == Byte,
		m == Kanji && other == Byte:
		return -1, true
	case other == Numeric && (m == Alphanumeric || m == Byte),
		other == Alphanumeric && m == Byte,
		other == Kanji && m == Byte:
		return 1, true
	default:
		return 0, false
	}
}

// Join returns the least upper bound of the two modes: the smallest mode
// whose character set is a superset of both. Incomparable pairs
// (Alphanumeric, Kanji) join to Byte.
func (m Mode) Join(other Mode) Mode {
	cmp, ok := m.compare(other)
	if !ok {
		return Byte
	}
	if cmp <= 0 {
		return other
	}
	return m
}

// LengthBitsCount returns the number of bits used by this mode's character
// count field for the given version.
func (m Mode) LengthBitsCount(v Version) int {
	switch v.k {
	case kindMicro:
		a := int(v.a)
		switch m {
		case Numeric:
			return 2 + a
		case Alphanumeric, Byte:
			return 1 + a
		default: // Kanji
			return a
		}
	case kindRmqr:
		idx := v.rmqrIndex()
		if idx < 0 {
			idx = 31
		}
		return rmqrLengthBitsCount[idx][m]
	default: // kindNormal
		n := int(v.a)
		switch {
		case n <= 9:
			switch m {
			case Numeric:
				return 10
			case Alphanumeric:
				return 9
			default: // Byte, Kanji
				return 8
			}
		case n <= 26:
			switch m {
			case Numeric:
				return 12
			case Alphanumeric:
				return 11
			case Byte:
				return 16
			default: // Kanji
				return 10
			}
		default:
			switch m {
			case Numeric:
				return 14
			case Alphanumeric:
				return 13
			case Byte:
				return 16
			default: // Kanji
				return 12
			}
		}
	}
}

// DataBitsCount returns the number of payload bits needed to encode
// rawDataLen units of this mode (bytes for Numeric/Alphanumeric/Byte,
// character pairs for Kanji).
func (m Mode) DataBitsCount(rawDataLen int) int {
	switch m {
	case Numeric:
		return (rawDataLen*10 + 2) / 3
	case Alphanumeric:
		return (rawDataLen*11 + 1) / 2
	case Byte:
		return rawDataLen * 8
	default: // Kanji
		return rawDataLen * 13
	}
}

// rmqrLengthBitsCount is RMQR_LENGTH_BITS_COUNT[32][4] from ISO/IEC 18004's
// rMQR annex: [Numeric, Alphanumeric, Byte, Kanji] length-field widths per
// rMQR version, in rmqrSizes order. Reproduced verbatim.
var rmqrLengthBitsCount = [32][4]int{
	{4, 3, 3, 2},  // R7x43
	{5, 5, 4, 3},  // R7x59
	{6, 5, 5, 4},  // R7x77
	{7, 6, 5, 5},  // R7x99
	{7, 6, 6, 5},  // R7x139
	{5, 5, 4, 3},  // R9x43
	{6, 5, 5, 4},  // R9x59
	{7, 6, 5, 5},  // R9x77
	{7, 6, 6, 5},  // R9x99
	{8, 7, 6, 6},  // R9x139
	{4, 4, 3, 2},  // R11x27
	{6, 5, 5, 4},  // R11x43
	{7, 6, 5, 5},  // R11x59
	{7, 6, 6, 5},  // R11x77
	{8, 7, 6, 6},  // R11x99
	{8, 7, 7, 6},  // R11x139
	{5, 5, 4, 3},  // R13x27
	{6, 6, 5, 5},  // R13x43
	{7, 6, 6, 5},  // R13x59
	{7, 7, 6, 6},  // R13x77
	{8, 7, 7, 6},  // R13x99
	{8, 8, 7, 7},  // R13x139
	{7, 6, 6, 5},  // R15x43
	{7, 7, 6, 5},  // R15x59
	{8, 7, 7, 6},  // R15x77
	{8, 7, 7, 6},  // R15x99
	{9, 8, 7, 7},  // R15x139
	{7, 6, 6, 5},  // R17x43
	{8, 7, 6, 6},  // R17x59
	{8, 7, 7, 6},  // R17x77
	{8, 8, 7, 6},  // R17x99
	{9, 8, 8, 7},  // R17x139
}

// DataLengths is DATA_LENGTHS[76][4]: the total data-bit capacity for each
// (version, ec level). Reproduced verbatim from ISO/IEC 18004 §6.4.10 Table 7
// and the rMQR annex. Zero means the combination is not standardized.
var DataLengths = [76][4]int{
	// Normal versions 1..40
	{152, 128, 104, 72},
	{272, 224, 176, 128},
	{440, 352, 272, 208},
	{640, 512, 384, 288},
	{864, 688, 496, 368},
	{1088, 864, 608, 480},
	{1248, 992, 704, 528},
	{1552, 1232, 880, 688},
	{1856, 1456, 1056, 800},
	{2192, 1728, 1232, 976},
	{2592, 2032, 1440, 1120},
	{2960, 2320, 1648, 1264},
	{3424, 2672, 1952, 1440},
	{3688, 2920, 2088, 1576},
	{4184, 3320, 2360, 1784},
	{4712, 3624, 2600, 2024},
	{5176, 4056, 2936, 2264},
	{5768, 4504, 3176, 2504},
	{6360, 5016, 3560, 2728},
	{6888, 5352, 3880, 3080},
	{7456, 5712, 4096, 3248},
	{8048, 6256, 4544, 3536},
	{8752, 6880, 4912, 3712},
	{9392, 7312, 5312, 4112},
	{10208, 8000, 5744, 4304},
	{10960, 8496, 6032, 4768},
	{11744, 9024, 6464, 5024},
	{12248, 9544, 6968, 5288},
	{13048, 10136, 7288, 5608},
	{13880, 10984, 7880, 5960},
	{14744, 11640, 8264, 6344},
	{15640, 12328, 8920, 6760},
	{16568, 13048, 9368, 7208},
	{17528, 13800, 9848, 7688},
	{18448, 14496, 10288, 7888},
	{19472, 15312, 10832, 8432},
	{20528, 15936, 11408, 8768},
	{21616, 16816, 12016, 9136},
	{22496, 17728, 12656, 9776},
	{23648, 18672, 13328, 10208},
	// Micro versions 1..4
	{20, 0, 0, 0},
	{40, 32, 0, 0},
	{84, 68, 0, 0},
	{128, 112, 80, 0},
	// rMQR versions, in rmqrSizes order
	{0, 48, 0, 24},
	{0, 96, 0, 56},
	{0, 160, 0, 80},
	{0, 224, 0, 112},
	{0, 352, 0, 192},
	{0, 96, 0, 56},
	{0, 168, 0, 88},
	{0, 248, 0, 136},
	{0, 336, 0, 176},
	{0, 504, 0, 264},
	{0, 56, 0, 40},
	{0, 152, 0, 88},
	{0, 248, 0, 120},
	{0, 344, 0, 184},
	{0, 456, 0, 232},
	{0, 672, 0, 336},
	{0, 96, 0, 56},
	{0, 216, 0, 104},
	{0, 304, 0, 160},
	{0, 424, 0, 232},
	{0, 584, 0, 280},
	{0, 848, 0, 432},
	{0, 264, 0, 120},
	{0, 384, 0, 208},
	{0, 536, 0, 248},
	{0, 704, 0, 384},
	{0, 1016, 0, 552},
	{0, 312, 0, 168},
	{0, 448, 0, 224},
	{0, 624, 0, 304},
	{0, 800, 0, 448},
	{0, 1216, 0, 608},
}
