package coding

// Canvas is the module grid produced by the layout engine: every cell is
// either a functional pattern (finder, separator, timing, alignment,
// format, version) or data/EC payload. It generalizes the teacher's
// Pixel/Code pair — which only ever describes a square Normal QR grid —
// to the three rectangular families.
type Canvas struct {
	version  Version
	width    int
	height   int
	grid     [][]Color
	reserved [][]bool
}

func newGrid(height, width int) [][]Color {
	g := make([][]Color, height)
	row := make([]Color, height*width)
	for i := range g {
		g[i], row = row[:width], row[width:]
	}
	return g
}

func newReserved(height, width int) [][]bool {
	g := make([][]bool, height)
	row := make([]bool, height*width)
	for i := range g {
		g[i], row = row[:width], row[width:]
	}
	return g
}

// NewCanvas allocates a blank grid for version and stamps every functional
// pattern (finder, separator, timing, alignment) it needs, marking those
// cells reserved so PlaceData skips them.
func NewCanvas(version Version) *Canvas {
	c := &Canvas{
		version:  version,
		width:    version.Width(),
		height:   version.Height(),
		grid:     newGrid(version.Height(), version.Width()),
		reserved: newReserved(version.Height(), version.Width()),
	}
	switch version.k {
	case kindNormal:
		c.placeFinder(0, 0)
		c.placeFinder(0, c.width-7)
		c.placeFinder(c.height-7, 0)
		c.placeTimingRow(6)
		c.placeTimingCol(6)
		c.placeNormalAlignment()
		c.reserveVersionInfo()
		c.reserveFormatInfoNormal()
		c.set(c.height-8, 8, Dark)
		c.reserved[c.height-8][8] = true
	case kindMicro:
		c.placeFinder(0, 0)
		c.placeTimingRow(0)
		c.placeTimingCol(0)
		c.reserveFormatInfoMicro()
	default: // kindRmqr
		c.placeFinder(0, 0)
		c.placeCornerFinder(c.height-5, c.width-5)
		c.placeRmqrCornerMarks()
		c.placeRmqrAlignment()
		c.placeTimingRow(0)
		c.placeTimingRow(c.height - 1)
		c.placeTimingCol(0)
		c.placeTimingCol(c.width - 1)
		c.reserveFormatInfoRmqr()
	}
	return c
}

func (c *Canvas) inBounds(y, x int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

func (c *Canvas) set(y, x int, col Color) {
	if c.inBounds(y, x) {
		c.grid[y][x] = col
	}
}

func (c *Canvas) reserve(y, x int) {
	if c.inBounds(y, x) {
		c.reserved[y][x] = true
	}
}

// placeFinder draws a 7x7 position detection pattern with its one-module
// light separator, anchored at the grid's (top, left) corner.
func (c *Canvas) placeFinder(top, left int) {
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			y, x := top+dy, left+dx
			if !c.inBounds(y, x) {
				continue
			}
			dark := false
			switch {
			case dy == -1 || dy == 7 || dx == -1 || dx == 7:
				dark = false // separator
			case dy == 0 || dy == 6 || dx == 0 || dx == 6:
				dark = true
			case dy >= 2 && dy <= 4 && dx >= 2 && dx <= 4:
				dark = true
			}
			c.set(y, x, Color(boolToInt(dark)))
			c.reserve(y, x)
		}
	}
}

// placeCornerFinder draws rMQR's reduced 5x5 corner alignment/finder-like
// pattern, used only at the bottom-right corner opposite the main finder.
func (c *Canvas) placeCornerFinder(top, left int) {
	for dy := -1; dy <= 5; dy++ {
		for dx := -1; dx <= 5; dx++ {
			y, x := top+dy, left+dx
			if !c.inBounds(y, x) {
				continue
			}
			dark := dy == 0 || dy == 4 || dx == 0 || dx == 4 || (dy == 2 && dx == 2)
			if dy == -1 || dy == 5 || dx == -1 || dx == 5 {
				dark = false
			}
			c.set(y, x, Color(boolToInt(dark)))
			c.reserve(y, x)
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// placeTimingRow draws the alternating dark/light timing strip along row y,
// skipping any cell already reserved by a finder or alignment pattern.
func (c *Canvas) placeTimingRow(y int) {
	for x := 0; x < c.width; x++ {
		if c.reserved[y][x] {
			continue
		}
		c.set(y, x, Color(boolToInt(x%2 == 0)))
		c.reserve(y, x)
	}
}

// placeTimingCol is placeTimingRow for a column.
func (c *Canvas) placeTimingCol(x int) {
	for y := 0; y < c.height; y++ {
		if c.reserved[y][x] {
			continue
		}
		c.set(y, x, Color(boolToInt(y%2 == 0)))
		c.reserve(y, x)
	}
}

// normalAlignmentTable is {apos, astride} per Normal version 1..40, taken
// verbatim from the teacher's vtab: apos is the top-left coordinate of the
// second alignment box (its center minus 2), astride the stride to the next
// one; the first box's top-left is row/column 4 (center 6).
var normalAlignmentTable = [40]struct{ apos, astride int }{
	{100, 100}, {16, 100}, {20, 100}, {24, 100}, {28, 100}, {32, 100},
	{20, 16}, {22, 18}, {24, 20}, {26, 22}, {28, 24}, {30, 26}, {32, 28},
	{24, 20}, {24, 22}, {24, 24}, {28, 24}, {28, 26}, {28, 28}, {32, 28},
	{26, 22}, {24, 24}, {28, 24}, {26, 26}, {30, 26}, {28, 28}, {32, 28},
	{24, 24}, {28, 24}, {24, 26}, {28, 26}, {32, 26}, {28, 28}, {32, 28},
	{28, 24}, {22, 26}, {26, 26}, {30, 26}, {24, 28}, {28, 28},
}

// normalVersionPattern is the 18-bit BCH(18,6) version information pattern
// per Normal version 7..40, taken verbatim from the teacher's vtab (0 below
// version 7, where no version information block is drawn).
var normalVersionPattern = [40]int{
	0, 0, 0, 0, 0, 0,
	0x7c94, 0x85bc, 0x9a99, 0xa4d3, 0xbbf6, 0xc762, 0xd847, 0xe60d, 0xf928,
	0x10b78, 0x1145d, 0x12a17, 0x13532, 0x149a6, 0x15683, 0x168c9, 0x177ec,
	0x18ec4, 0x191e1, 0x1afab, 0x1b08e, 0x1cc1a, 0x1d33f, 0x1ed75, 0x1f250,
	0x209d5, 0x216f0, 0x228ba, 0x2379f, 0x24b0b, 0x2542e, 0x26a64, 0x27541, 0x28c69,
}

func (c *Canvas) placeAlignmentBox(y, x int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			dark := dy == -2 || dy == 2 || dx == -2 || dx == 2 || (dy == 0 && dx == 0)
			c.set(y+dy, x+dx, Color(boolToInt(dark)))
			c.reserve(y+dy, x+dx)
		}
	}
}

func (c *Canvas) placeNormalAlignment() {
	n := c.version.NormalNumber()
	info := normalAlignmentTable[n-1]
	size := c.width
	for x := 4; x+5 < size; {
		for y := 4; y+5 < size; {
			skip := (x < 7 && y < 7) || (x < 7 && y+5 >= size-7) || (x+5 >= size-7 && y < 7)
			if !skip {
				c.placeAlignmentBox(y+2, x+2)
			}
			if y == 4 {
				y = info.apos
			} else {
				y += info.astride
			}
		}
		if x == 4 {
			x = info.apos
		} else {
			x += info.astride
		}
	}
}

// rmqrAlignmentXs gives the alignment pattern center columns per rMQR width
// (indexed by RmqrWidthIndex). The narrowest symbols carry none.
var rmqrAlignmentXs = [6][]int{
	{},                // 27
	{21},              // 43
	{19, 39},          // 59
	{25, 51},          // 77
	{23, 49, 75},      // 99
	{27, 55, 83, 111}, // 139
}

// placeRmqrAlignment draws rMQR's reduced 3x3 alignment patterns along both
// long sides, centered one module in from the top and bottom edges at the
// tabulated columns. The edge timing patterns drawn afterwards interlock
// with them.
func (c *Canvas) placeRmqrAlignment() {
	for _, x := range rmqrAlignmentXs[c.version.RmqrWidthIndex()] {
		c.placeSmallAlignmentBox(1, x)
		c.placeSmallAlignmentBox(c.height-2, x)
	}
}

// placeSmallAlignmentBox draws a 3x3 alignment pattern (dark ring, light
// center) centered at (y, x).
func (c *Canvas) placeSmallAlignmentBox(y, x int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			dark := dy != 0 || dx != 0
			c.set(y+dy, x+dx, Color(boolToInt(dark)))
			c.reserve(y+dy, x+dx)
		}
	}
}

// placeRmqrCornerMarks draws the small sub-finder marks in the top-right and
// bottom-left corners: an L of three dark modules with a light module on the
// inner diagonal. A mark is skipped on the shortest symbols where it would
// collide with the finder or the opposite corner pattern.
func (c *Canvas) placeRmqrCornerMarks() {
	if c.height >= 9 {
		c.setCornerMark(0, c.width-2, 1, 0)
	}
	if c.height >= 11 {
		c.setCornerMark(c.height-2, 0, 0, 1)
	}
}

// setCornerMark draws a 2x2 corner mark; the module at (top+lightRy,
// left+lightRx), diagonally inward from the symbol corner, stays light.
func (c *Canvas) setCornerMark(top, left, lightRy, lightRx int) {
	for ry := 0; ry < 2; ry++ {
		for rx := 0; rx < 2; rx++ {
			y, x := top+ry, left+rx
			if c.reserved[y][x] {
				continue
			}
			c.set(y, x, Color(boolToInt(ry != lightRy || rx != lightRx)))
			c.reserve(y, x)
		}
	}
}

func (c *Canvas) reserveVersionInfo() {
	n := c.version.NormalNumber()
	if n < 7 {
		return
	}
	pattern := normalVersionPattern[n-1]
	size := c.width
	bit := 0
	for x := 0; x < 6; x++ {
		for y := 0; y < 3; y++ {
			dark := pattern&(1<<uint(bit)) != 0
			c.set(size-11+y, x, Color(boolToInt(dark)))
			c.set(x, size-11+y, Color(boolToInt(dark)))
			c.reserve(size-11+y, x)
			c.reserve(x, size-11+y)
			bit++
		}
	}
}

func (c *Canvas) reserveFormatInfoNormal() {
	for i := 0; i < 15; i++ {
		var y1, x1, y2, x2 int
		switch {
		case i < 6:
			y1, x1 = i, 8
		case i < 8:
			y1, x1 = i+1, 8
		case i < 9:
			y1, x1 = 8, 7
		default:
			y1, x1 = 8, 14-i
		}
		if i < 8 {
			y2, x2 = 8, c.width-1-i
		} else {
			y2, x2 = c.height-1-(14-i), 8
		}
		c.reserve(y1, x1)
		c.reserve(y2, x2)
	}
}

func (c *Canvas) reserveFormatInfoMicro() {
	for y := 1; y <= 8; y++ {
		c.reserve(y, 8)
	}
	for x := 0; x <= 8; x++ {
		c.reserve(8, x)
	}
}

// reserveFormatInfoRmqr reserves the 15-bit format-information block in the
// 3x5 region just right of the finder (rows 1-3, columns 8-12), present at
// every rMQR size. rMQR's second, corner-side copy from the standard is not
// reproduced. See DESIGN.md.
func (c *Canvas) reserveFormatInfoRmqr() {
	for y := 1; y <= 3; y++ {
		for x := 8; x <= 12; x++ {
			c.reserve(y, x)
		}
	}
}

// bchFormat computes the 15-bit BCH(15,5) format codeword for a 5-bit data
// field (as used by both Normal and Micro format information), generator
// polynomial 0x537, then XORs in mask to produce the final transmitted bits.
func bchFormat(data uint32, mask uint32) uint32 {
	const formatPoly = 0x537
	fb := data << 10
	rem := fb
	for i := 14; i >= 10; i-- {
		if rem&(1<<uint(i)) != 0 {
			rem ^= formatPoly << uint(i-10)
		}
	}
	fb |= rem
	return fb ^ mask
}

// WriteFormatInfo encodes (ecLevel, mask) into the reserved format-info
// cells, writing the Normal two-copy layout, Micro's L-shaped single copy
// (data field = symbol-size class + level, matching the teacher's
// mplan-adjacent approach), or rMQR's single copy.
func (c *Canvas) WriteFormatInfo(ecLevel EcLevel, mask int) {
	switch c.version.k {
	case kindNormal:
		levelBits := uint32(ecLevel) ^ 1 // L=01, M=00, Q=11, H=10
		data := levelBits<<3 | uint32(mask)
		fb := bchFormat(data, 0x5412)
		for i := 0; i < 15; i++ {
			dark := (fb>>uint(i))&1 == 1
			var y1, x1, y2, x2 int
			switch {
			case i < 6:
				y1, x1 = i, 8
			case i < 8:
				y1, x1 = i+1, 8
			case i < 9:
				y1, x1 = 8, 7
			default:
				y1, x1 = 8, 14-i
			}
			if i < 8 {
				y2, x2 = 8, c.width-1-i
			} else {
				y2, x2 = c.height-1-(14-i), 8
			}
			c.set(y1, x1, Color(boolToInt(dark)))
			c.set(y2, x2, Color(boolToInt(dark)))
		}
	case kindMicro:
		symbolClass := microSymbolNumber(c.version, ecLevel)
		data := uint32(symbolClass)<<2 | uint32(mask)
		fb := bchFormat(data, 0x4445)
		c.writeMicroFormat(fb)
	default: // kindRmqr
		data := uint32(ecLevel)<<3 | uint32(mask)
		fb := bchFormat(data, 0x3A06)
		c.writeRmqrFormat(fb)
	}
}

// writeMicroFormat writes the 15 format bits down column 8 (rows 1-8) then
// leftward along row 8 (columns 7-1), the L shape reserved at layout time.
func (c *Canvas) writeMicroFormat(fb uint32) {
	bit := 0
	for y := 1; y <= 8; y++ {
		c.set(y, 8, Color(boolToInt((fb>>uint(bit))&1 == 1)))
		bit++
	}
	for x := 7; x >= 1; x-- {
		c.set(8, x, Color(boolToInt((fb>>uint(bit))&1 == 1)))
		bit++
	}
}

// writeRmqrFormat writes the 15 format bits row-major into the 3x5 block
// reserved by reserveFormatInfoRmqr.
func (c *Canvas) writeRmqrFormat(fb uint32) {
	bit := 0
	for y := 1; y <= 3; y++ {
		for x := 8; x <= 12; x++ {
			c.set(y, x, Color(boolToInt((fb>>uint(bit))&1 == 1)))
			bit++
		}
	}
}

// microSymbolNumber is the standard's 3-bit (version, level) class used in
// Micro's format-information data field: 0=M1, 1=M2-L, 2=M2-M, 3=M3-L,
// 4=M3-M, 5=M4-L, 6=M4-M, 7=M4-Q.
func microSymbolNumber(version Version, ecLevel EcLevel) int {
	switch {
	case version.MicroNumber() == 1:
		return 0
	case version.MicroNumber() == 2 && ecLevel == L:
		return 1
	case version.MicroNumber() == 2 && ecLevel == M:
		return 2
	case version.MicroNumber() == 3 && ecLevel == L:
		return 3
	case version.MicroNumber() == 3 && ecLevel == M:
		return 4
	case version.MicroNumber() == 4 && ecLevel == L:
		return 5
	case version.MicroNumber() == 4 && ecLevel == M:
		return 6
	default:
		return 7
	}
}

// dataPath returns every non-reserved cell in the order the bitstream is
// written into them: sweeping column pairs right-to-left, alternating
// upward and downward within each pair. Normal symbols additionally skip
// their fixed vertical timing column so the pairs stay aligned; Micro and
// rMQR keep their timing on the border columns, which the reservation
// check already excludes. This generalizes the teacher's lplan column walk
// to any rectangular grid.
func (c *Canvas) dataPath() [][2]int {
	var path [][2]int
	upward := true
	for x := c.width - 1; x > 0; x -= 2 {
		if x == 6 && c.version.k == kindNormal {
			x--
		}
		if upward {
			for y := c.height - 1; y >= 0; y-- {
				if !c.reserved[y][x] {
					path = append(path, [2]int{y, x})
				}
				if !c.reserved[y][x-1] {
					path = append(path, [2]int{y, x - 1})
				}
			}
		} else {
			for y := 0; y < c.height; y++ {
				if !c.reserved[y][x] {
					path = append(path, [2]int{y, x})
				}
				if !c.reserved[y][x-1] {
					path = append(path, [2]int{y, x - 1})
				}
			}
		}
		upward = !upward
	}
	return path
}

// PlaceData writes the interleaved data stream then the EC stream into the
// data path in order, MSB-first within each byte. Only the first dataBits
// bits of data are routed: Micro(1) and Micro(3) end in a 4-bit data
// codeword, whose phantom low nibble must not consume modules. Any trailing
// path cells left over after the streams run out are filled light, matching
// the teacher's Extra remainder-pixel convention.
func (c *Canvas) PlaceData(data, ec []byte, dataBits int) {
	path := c.dataPath()
	total := dataBits + len(ec)*8
	for i, cell := range path {
		var col Color
		switch {
		case i < dataBits:
			if data[i/8]&(1<<uint(7-i%8)) != 0 {
				col = Dark
			}
		case i < total:
			j := i - dataBits
			if ec[j/8]&(1<<uint(7-j%8)) != 0 {
				col = Dark
			}
		}
		c.set(cell[0], cell[1], col)
	}
}

// DataModuleCount is the number of modules available to data and EC
// codewords: the cells the data path visits.
func (c *Canvas) DataModuleCount() int {
	return len(c.dataPath())
}

// ApplyMask XORs the data mask formula for (version, mask) into every
// non-reserved cell, returning a new Canvas (the receiver is left
// untouched so penalty scoring can try every candidate mask from the same
// unmasked base).
func (c *Canvas) ApplyMask(mask int) *Canvas {
	out := &Canvas{version: c.version, width: c.width, height: c.height}
	out.grid = newGrid(c.height, c.width)
	out.reserved = c.reserved
	f := maskFuncFor(c.version, mask)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			col := c.grid[y][x]
			if !c.reserved[y][x] && f(y, x) {
				col = Color(1 - col)
			}
			out.grid[y][x] = col
		}
	}
	return out
}

// Module reports the finished color at (x, y), column then row.
func (c *Canvas) Module(x, y int) Color { return c.grid[y][x] }

// Width and Height are the module-grid dimensions.
func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Colors flattens the grid into a row-major Color slice.
func (c *Canvas) Colors() []Color {
	out := make([]Color, 0, c.width*c.height)
	for _, row := range c.grid {
		out = append(out, row...)
	}
	return out
}

func (c *Canvas) black(x, y int) bool { return c.grid[y][x] == Dark }

// Penalty scores a masked canvas; lower is better. Normal symbols use the
// four-condition evaluation, Micro symbols the edge-count rule.
func (c *Canvas) Penalty() int {
	if c.version.k == kindMicro {
		return c.microPenalty()
	}
	return c.normalPenalty()
}

// microPenalty is Micro QR's mask evaluation score: with the dark module
// counts of the bottom row and the right column (excluding the corner
// shared with the timing patterns), 16 times the smaller count plus the
// larger.
func (c *Canvas) microPenalty() int {
	darkBottom, darkRight := 0, 0
	for x := 1; x < c.width; x++ {
		if c.black(x, c.height-1) {
			darkBottom++
		}
	}
	for y := 1; y < c.height; y++ {
		if c.black(c.width-1, y) {
			darkRight++
		}
	}
	if darkBottom < darkRight {
		return darkBottom*16 + darkRight
	}
	return darkRight*16 + darkBottom
}

// normalPenalty scores per ISO/IEC 18004's four mask-evaluation conditions
// (adjacent runs, 2x2 boxes, finder-like patterns, and dark/light balance),
// the way the teacher's Code.Penalty does for Normal QR, here generalized
// to a non-square grid.
func (c *Canvas) normalPenalty() int {
	const (
		minRun    = 5
		runDelta  = -2
		boxP      = 3
		findP     = 40
		balP      = 10
		balMul    = 20
		balMax    = balMul/2 - 1
		pShift    = 16 - 12
		findB     = uint16(0b0000_1011101_0 << pShift)
		findA     = uint16(0b0_1011101_0000 << pShift)
	)
	p := 0
	bal := 0

	for y := 0; y < c.height; y++ {
		black := c.black(0, y)
		r := 1
		var pat uint16
		if black {
			pat = 1 << pShift
			bal++
		}
		for x := 1; x < c.width; x++ {
			if c.black(x, y) != black {
				if r >= minRun {
					p += r + runDelta
				}
				black = !black
				r = 0
			} else if y != 0 && c.black(x-1, y-1) == black && c.black(x, y-1) == black {
				p += boxP
			}
			pat <<= 1
			if black {
				pat |= 1 << pShift
				bal++
			} else if pat == findB || pat == findA {
				p += findP
			}
			r++
		}
		if r >= minRun {
			p += r + runDelta
		}
		if pat <<= 1; pat == findB {
			p += 2 * findP
		} else {
			switch findA {
			case pat, pat << 1, pat << 2, pat << 3:
				p += findP
			}
		}
	}

	area := c.width * c.height
	b := bal
	if b > area/2 {
		b = area - b
	}
	p += (balMax - (b * balMul / area)) * balP

	for x := 0; x < c.width; x++ {
		black := c.black(x, 0)
		r := 1
		var pat uint16
		if black {
			pat = 1 << pShift
		}
		for y := 1; y < c.height; y++ {
			if c.black(x, y) != black {
				if r >= minRun {
					p += r + runDelta
				}
				black = !black
				r = 0
			}
			pat <<= 1
			if black {
				pat |= 1 << pShift
			} else if pat == findB || pat == findA {
				p += findP
			}
			r++
		}
		if r >= minRun {
			p += r + runDelta
		}
		if pat <<= 1; pat == findB {
			p += 2 * findP
		} else {
			switch findA {
			case pat, pat << 1, pat << 2, pat << 3:
				p += findP
			}
		}
	}
	return p
}

// ChooseMask tries every mask this version family supports against the
// same unmasked canvas, writing each candidate's format information before
// scoring it (the format bits change per mask and count toward the
// penalty). It returns the lowest-penalty result and its mask id, lowest id
// winning ties to match makeAutoPlan's linear scan order. rMQR's single
// fixed mask is applied without a search.
func (c *Canvas) ChooseMask(ecLevel EcLevel) (*Canvas, int) {
	apply := func(m int) *Canvas {
		cand := c.ApplyMask(m)
		cand.WriteFormatInfo(ecLevel, m)
		return cand
	}
	if c.version.k == kindRmqr {
		return apply(0), 0
	}
	best := apply(0)
	bestMask := 0
	bestPenalty := best.Penalty()
	for m := 1; m < maskCountFor(c.version); m++ {
		cand := apply(m)
		if pen := cand.Penalty(); pen < bestPenalty {
			best, bestMask, bestPenalty = cand, m, pen
		}
	}
	return best, bestMask
}
