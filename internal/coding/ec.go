package coding

import "github.com/inkstray/qrcode/internal/gf256"

// field is the GF(256) instance for QR's Reed–Solomon codewords: primitive
// polynomial x^8+x^4+x^3+x^2+1 (0x11D), generator element 2. Read-only
// after init, so sharing it across concurrent encodes needs no locking.
var field = gf256.NewField(0x11d, 2)

// blockGroup describes one group of equally-sized Reed–Solomon blocks:
// count blocks, each with total codewords (data + EC) of which dataPer are
// data codewords.
type blockGroup struct {
	count   int
	total   int
	dataPer int
}

// normalECBlocks is nblock/check per (version 1..40, ec level), extracted
// from the teacher's own vtab (rsc-qr/coding/qr.go), which is itself ISO/IEC
// 18004 Table 13. bytes is the total codewords (data+EC) across the whole
// symbol.
var normalECBlocks = [40]struct {
	bytes int
	level [4]struct{ nblock, check int }
}{
	{26, [4]struct{ nblock, check int }{{1, 7}, {1, 10}, {1, 13}, {1, 17}}},
	{44, [4]struct{ nblock, check int }{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	{70, [4]struct{ nblock, check int }{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	{100, [4]struct{ nblock, check int }{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	{134, [4]struct{ nblock, check int }{{1, 26}, {2, 24}, {4, 18}, {4, 22}}},
	{172, [4]struct{ nblock, check int }{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	{196, [4]struct{ nblock, check int }{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	{242, [4]struct{ nblock, check int }{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	{292, [4]struct{ nblock, check int }{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	{346, [4]struct{ nblock, check int }{{4, 18}, {5, 26}, {8, 24}, {8, 28}}},
	{404, [4]struct{ nblock, check int }{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	{466, [4]struct{ nblock, check int }{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	{532, [4]struct{ nblock, check int }{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	{581, [4]struct{ nblock, check int }{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	{655, [4]struct{ nblock, check int }{{6, 22}, {10, 24}, {12, 30}, {18, 24}}},
	{733, [4]struct{ nblock, check int }{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	{815, [4]struct{ nblock, check int }{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	{901, [4]struct{ nblock, check int }{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	{991, [4]struct{ nblock, check int }{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	{1085, [4]struct{ nblock, check int }{{8, 28}, {16, 26}, {20, 30}, {25, 28}}},
	{1156, [4]struct{ nblock, check int }{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	{1258, [4]struct{ nblock, check int }{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	{1364, [4]struct{ nblock, check int }{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	{1474, [4]struct{ nblock, check int }{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	{1588, [4]struct{ nblock, check int }{{12, 26}, {21, 28}, {29, 30}, {35, 30}}},
	{1706, [4]struct{ nblock, check int }{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	{1828, [4]struct{ nblock, check int }{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	{1921, [4]struct{ nblock, check int }{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	{2051, [4]struct{ nblock, check int }{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	{2185, [4]struct{ nblock, check int }{{15, 30}, {29, 28}, {40, 30}, {48, 30}}},
	{2323, [4]struct{ nblock, check int }{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	{2465, [4]struct{ nblock, check int }{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	{2611, [4]struct{ nblock, check int }{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	{2761, [4]struct{ nblock, check int }{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	{2876, [4]struct{ nblock, check int }{{19, 30}, {38, 28}, {53, 30}, {63, 30}}},
	{3034, [4]struct{ nblock, check int }{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	{3196, [4]struct{ nblock, check int }{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	{3362, [4]struct{ nblock, check int }{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	{3532, [4]struct{ nblock, check int }{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	{3706, [4]struct{ nblock, check int }{{25, 30}, {49, 28}, {68, 30}, {81, 30}}},
}

// microECBlocks is {dataCodewords, ecCodewords} per (Micro version, level),
// ISO/IEC 18004 Table 18; always a single block. In M1 and M3 the final
// data codeword is 4 bits rather than 8 (treated as an 8-bit codeword with
// four zero low bits for the Reed–Solomon computation, per the standard);
// shortLastDataBits records that.
var microECBlocks = [4][4]struct{ data, ec, shortLastDataBits int }{
	{{3, 2, 4}, {}, {}, {}},
	{{5, 5, 8}, {4, 6, 8}, {}, {}},
	{{11, 6, 4}, {9, 8, 4}, {}, {}},
	{{16, 8, 8}, {14, 10, 8}, {10, 14, 8}, {}},
}

// blockGroups returns the Reed–Solomon block layout for (version, ecLevel):
// up to two groups of {count, total, dataPer}, and the bit width of the
// final data codeword (8 except for Micro(1)/Micro(3)).
func blockGroups(version Version, ecLevel EcLevel) ([]blockGroup, int, error) {
	switch version.k {
	case kindNormal:
		n := int(version.a)
		if n < 1 || n > 40 {
			return nil, 0, errf(InvalidVersion, "normal version %d out of range", n)
		}
		row := normalECBlocks[n-1]
		lvl := row.level[ecLevel]
		if lvl.nblock == 0 {
			return nil, 0, errf(InvalidVersion, "%v does not support level %v", version, ecLevel)
		}
		dataTotal := row.bytes - lvl.check*lvl.nblock
		base := dataTotal / lvl.nblock
		extra := dataTotal % lvl.nblock
		groups := []blockGroup{{count: lvl.nblock - extra, total: lvl.check + base, dataPer: base}}
		if extra > 0 {
			groups = append(groups, blockGroup{count: extra, total: lvl.check + base + 1, dataPer: base + 1})
		}
		return groups, 8, nil

	case kindMicro:
		n := int(version.a)
		if n < 1 || n > 4 {
			return nil, 0, errf(InvalidVersion, "micro version %d out of range", n)
		}
		row := microECBlocks[n-1][ecLevel]
		if row.data == 0 {
			return nil, 0, errf(InvalidVersion, "%v does not support level %v", version, ecLevel)
		}
		return []blockGroup{{count: 1, total: row.data + row.ec, dataPer: row.data}}, row.shortLastDataBits, nil

	default: // kindRmqr
		// ISO/IEC 23941's per-version Reed–Solomon block table is not
		// reproduced in this tree, and inventing a redundancy split would
		// emit symbols no conforming reader can check. Codeword
		// construction stops here for rMQR until the real table is
		// transcribed. See DESIGN.md.
		return nil, 0, errf(InvalidVersion,
			"rMQR error-correction block layout for %v at level %v is not tabulated", version, ecLevel)
	}
}

// ConstructCodewords splits data across the blocks for (version, ecLevel),
// computes each block's Reed–Solomon EC codewords, and returns the
// interleaved encoded-data stream and EC stream the canvas consumes, in
// that order: encodedData is each block's data codewords taken
// column-major (position 0 of every block, then position 1, ...), and
// ecData is likewise for EC codewords.
func ConstructCodewords(data []byte, version Version, ecLevel EcLevel) (encodedData, ecData []byte, err error) {
	groups, _, err := blockGroups(version, ecLevel)
	if err != nil {
		return nil, nil, err
	}

	var blocksData [][]byte
	var blocksEC [][]byte
	offset := 0
	maxData := 0
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			if offset+g.dataPer > len(data) {
				return nil, nil, errf(DataTooLong, "not enough data codewords for block layout")
			}
			block := data[offset : offset+g.dataPer]
			offset += g.dataPer

			ec := make([]byte, g.total-g.dataPer)
			gf256.NewRSEncoder(field, len(ec)).ECC(block, ec)

			blocksData = append(blocksData, block)
			blocksEC = append(blocksEC, ec)
			if g.dataPer > maxData {
				maxData = g.dataPer
			}
		}
	}
	if offset != len(data) {
		return nil, nil, errf(DataTooLong, "data codewords do not match block layout exactly")
	}

	for i := 0; i < maxData; i++ {
		for _, block := range blocksData {
			if i < len(block) {
				encodedData = append(encodedData, block[i])
			}
		}
	}
	maxEC := 0
	for _, ec := range blocksEC {
		if len(ec) > maxEC {
			maxEC = len(ec)
		}
	}
	for i := 0; i < maxEC; i++ {
		for _, ec := range blocksEC {
			if i < len(ec) {
				ecData = append(ecData, ec[i])
			}
		}
	}
	return encodedData, ecData, nil
}
