package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCanvasDimensions(t *testing.T) {
	c := NewCanvas(Normal(1))
	assert.Equal(t, 21, c.Width())
	assert.Equal(t, 21, c.Height())

	c2 := NewCanvas(Micro(2))
	assert.Equal(t, 13, c2.Width())
	assert.Equal(t, 13, c2.Height())

	c3 := NewCanvas(Rmqr(11, 27))
	assert.Equal(t, 27, c3.Width())
	assert.Equal(t, 11, c3.Height())
}

func TestDataPathCoversAllUnreservedCells(t *testing.T) {
	for _, v := range []Version{Normal(1), Normal(7), Micro(2), Micro(4), Rmqr(13, 43), Rmqr(17, 139)} {
		c := NewCanvas(v)
		path := c.dataPath()
		count := 0
		for y := 0; y < c.height; y++ {
			for x := 0; x < c.width; x++ {
				if !c.reserved[y][x] {
					count++
				}
			}
		}
		assert.Len(t, path, count, "%v", v)
		seen := make(map[[2]int]bool)
		for _, cell := range path {
			assert.False(t, seen[cell], "%v: cell %v visited twice", v, cell)
			seen[cell] = true
		}
	}
}

func TestNormalVersion1HasStandardDataModuleCount(t *testing.T) {
	// ISO/IEC 18004: version 1 carries exactly 26 codewords of 8 bits.
	assert.Equal(t, 208, NewCanvas(Normal(1)).DataModuleCount())
}

func TestMicroDataModuleCountMatchesCodewords(t *testing.T) {
	// Every valid Micro (version, level) fills its symbol exactly: the
	// tabulated data bits plus the EC codewords leave no module unused.
	for n := 1; n <= 4; n++ {
		for _, level := range []EcLevel{L, M, Q, H} {
			v := Micro(n)
			dataBits, err := v.FetchInt(DataLengths, level)
			if err != nil {
				continue
			}
			groups, _, err := blockGroups(v, level)
			assert.NoError(t, err)
			ecBits := (groups[0].total - groups[0].dataPer) * 8
			assert.Equal(t, dataBits+ecBits, NewCanvas(v).DataModuleCount(), "%v/%v", v, level)
		}
	}
}

func TestChooseMaskPicksMinimalPenaltyWithLowestIdOnTie(t *testing.T) {
	c := NewCanvas(Normal(1))
	c.PlaceData(make([]byte, 19), make([]byte, 7), 19*8)
	_, bestMask := c.ChooseMask(M)

	basePenalties := make([]int, maskCountFor(Normal(1)))
	for m := range basePenalties {
		cand := c.ApplyMask(m)
		cand.WriteFormatInfo(M, m)
		basePenalties[m] = cand.Penalty()
	}
	minPenalty := basePenalties[0]
	minMask := 0
	for m, p := range basePenalties {
		if p < minPenalty {
			minPenalty, minMask = p, m
		}
	}
	assert.Equal(t, minMask, bestMask)
}

func TestChooseMaskMicroUsesEdgeCountRule(t *testing.T) {
	c := NewCanvas(Micro(2))
	c.PlaceData([]byte{0x5a, 0xc3, 0x0f, 0xf0, 0x99}, []byte{0x12, 0x34, 0x56, 0x78, 0x9a}, 40)
	_, bestMask := c.ChooseMask(L)

	best, bestPenalty := 0, -1
	for m := 0; m < 4; m++ {
		cand := c.ApplyMask(m)
		cand.WriteFormatInfo(L, m)
		darkBottom, darkRight := 0, 0
		for x := 1; x < cand.width; x++ {
			if cand.black(x, cand.height-1) {
				darkBottom++
			}
		}
		for y := 1; y < cand.height; y++ {
			if cand.black(cand.width-1, y) {
				darkRight++
			}
		}
		score := darkRight*16 + darkBottom
		if darkBottom < darkRight {
			score = darkBottom*16 + darkRight
		}
		assert.Equal(t, score, cand.Penalty())
		if bestPenalty < 0 || score < bestPenalty {
			best, bestPenalty = m, score
		}
	}
	assert.Equal(t, best, bestMask)
}

func TestRmqrHasNoMaskSearch(t *testing.T) {
	c := NewCanvas(Rmqr(11, 27))
	_, mask := c.ChooseMask(M)
	assert.Equal(t, 0, mask)
}

func TestMicroMaskFormulas(t *testing.T) {
	// Micro's 4 masks are normal patterns 1, 4, 6 and 7; rMQR's fixed mask
	// matches normal pattern 4.
	for y := 0; y < 13; y++ {
		for x := 0; x < 13; x++ {
			assert.Equal(t, normalMaskFuncs[1](y, x), microMaskFuncs[0](y, x))
			assert.Equal(t, normalMaskFuncs[4](y, x), microMaskFuncs[1](y, x))
			assert.Equal(t, normalMaskFuncs[6](y, x), microMaskFuncs[2](y, x))
			assert.Equal(t, normalMaskFuncs[7](y, x), microMaskFuncs[3](y, x))
			assert.Equal(t, normalMaskFuncs[4](y, x), rmqrMaskFunc(y, x))
		}
	}
}

func TestModuleCountMatchesWidthHeight(t *testing.T) {
	for _, v := range []Version{Normal(1), Normal(40), Micro(1), Micro(4), Rmqr(11, 27), Rmqr(17, 139)} {
		c := NewCanvas(v)
		assert.Equal(t, v.Width()*v.Height(), len(c.Colors()))
	}
}
