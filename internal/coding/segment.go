package coding

import "golang.org/x/text/encoding/japanese"

// Segment is a maximal contiguous run of input bytes assigned to one mode.
// Segments returned by Classify and Optimize always partition [0, len(data))
// contiguously and in order.
type Segment struct {
	Mode  Mode
	Begin int
	End   int
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlphanumeric(b byte) bool {
	switch {
	case isDigit(b):
		return true
	case b >= 'A' && b <= 'Z':
		return true
	}
	switch b {
	case ' ', '$', '%', '*', '+', '-', '.', '/', ':':
		return true
	}
	return false
}

func isKanjiLead(b byte) bool {
	return (b >= 0x81 && b <= 0x9f) || (b >= 0xe0 && b <= 0xeb)
}

func isKanjiTrail(b byte) bool {
	return b >= 0x40 && b <= 0xfc && b != 0x7f
}

// shiftJISDecoder is the decoder validShiftJISPair runs a byte run through,
// the way the teacher's Kanji.Check used golang.org/x/text/encoding/japanese.
// Segmentation only ever classifies bytes it already believes are a
// lead/trail pair, so the decoded output is discarded. The decoder replaces
// undecodable bytes with U+FFFD instead of returning an error, so a pair
// inside the lead/trail byte ranges that maps to no character is not
// rejected; Kanji classification rests on those ranges.
var shiftJISDecoder = japanese.ShiftJIS.NewDecoder()

func validShiftJISPair(data []byte) bool {
	_, err := shiftJISDecoder.Bytes(data)
	return err == nil
}

// classifyByte returns the smallest mode that can represent a single byte,
// ignoring the Kanji possibility (which requires look-ahead for the trail
// byte and is handled by the caller).
func classifyByte(b byte) Mode {
	switch {
	case isDigit(b):
		return Numeric
	case isAlphanumeric(b):
		return Alphanumeric
	default:
		return Byte
	}
}

// Classify splits data into a raw segment stream, one segment per maximal
// run of bytes sharing a classified mode. Shift-JIS double-byte lead/trail
// pairs are classified as Kanji; every other byte takes the smallest of
// Numeric, Alphanumeric, or Byte that can represent it.
func Classify(data []byte) []Segment {
	var segs []Segment
	i := 0
	for i < len(data) {
		var mode Mode
		start := i
		if isKanjiLead(data[i]) && i+1 < len(data) && isKanjiTrail(data[i+1]) && validShiftJISPair(data[i:i+2]) {
			mode = Kanji
			i += 2
			for i+1 < len(data) && isKanjiLead(data[i]) && isKanjiTrail(data[i+1]) && validShiftJISPair(data[i:i+2]) {
				i += 2
			}
		} else {
			mode = classifyByte(data[i])
			i++
			for i < len(data) {
				if isKanjiLead(data[i]) && i+1 < len(data) && isKanjiTrail(data[i+1]) && validShiftJISPair(data[i:i+2]) {
					break
				}
				next := classifyByte(data[i])
				if next != mode {
					break
				}
				i++
			}
		}
		segs = append(segs, Segment{Mode: mode, Begin: start, End: i})
	}
	return segs
}

// segmentCost is the number of bits a single segment of the given mode
// contributes: mode indicator + length field + payload. length is in input
// bytes; a Kanji segment covers two bytes per character.
func segmentCost(mode Mode, length int, version Version) int {
	if mode == Kanji {
		length /= 2
	}
	return version.ModeBitsCount() + mode.LengthBitsCount(version) + mode.DataBitsCount(length)
}

// TotalEncodedLen returns the total encoded length, in bits, of segments
// when emitted against version: the sum of each segment's mode indicator,
// length field, and payload bits.
func TotalEncodedLen(segments []Segment, version Version) int {
	total := 0
	for _, s := range segments {
		total += segmentCost(s.Mode, s.End-s.Begin, version)
	}
	return total
}

// Optimize merges and reshapes raw segments to minimize TotalEncodedLen for
// the given version. It is a pure function of (segments, version): for any
// adjacent run, promoting it to a stronger common mode can beat paying for
// multiple headers, and this explores every contiguous merge via dynamic
// programming, preferring fewer segments on ties.
//
// Optimize satisfies: every byte is covered, adjacent output segments have
// distinct modes, and the result's TotalEncodedLen is minimal among
// admissible partitions of the input segments (merges may only join
// contiguous original segments, never reorder or split within one).
func Optimize(segments []Segment, version Version) []Segment {
	n := len(segments)
	if n == 0 {
		return nil
	}

	type state struct {
		cost      int
		count     int // number of output segments, for tie-breaking
		next      int // index of the first segment of the next run
		mode      Mode
		runLength int // number of raw bytes covered by [i, next)
	}

	// dp[i] holds the best way to encode segments[i:n].
	dp := make([]state, n+1)
	dp[n] = state{cost: 0, count: 0}

	for i := n - 1; i >= 0; i-- {
		best := state{cost: -1}
		mode := segments[i].Mode
		length := 0
		for j := i; j < n; j++ {
			mode = mode.Join(segments[j].Mode)
			length += segments[j].End - segments[j].Begin
			rest := dp[j+1]
			cost := segmentCost(mode, length, version) + rest.cost
			count := 1 + rest.count
			if best.cost < 0 || cost < best.cost || (cost == best.cost && count < best.count) {
				best = state{cost: cost, count: count, next: j + 1, mode: mode, runLength: length}
			}
		}
		dp[i] = best
	}

	var out []Segment
	i := 0
	for i < n {
		st := dp[i]
		out = append(out, Segment{Mode: st.mode, Begin: segments[i].Begin, End: segments[st.next-1].End})
		i = st.next
	}
	return out
}
