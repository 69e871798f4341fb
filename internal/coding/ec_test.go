package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructCodewordsSingleBlock(t *testing.T) {
	// Normal(1)/L: one block, 19 data codewords, 7 EC codewords.
	data := make([]byte, 19)
	for i := range data {
		data[i] = byte(i)
	}
	encoded, ec, err := ConstructCodewords(data, Normal(1), L)
	assert.NoError(t, err)
	assert.Equal(t, data, encoded)
	assert.Len(t, ec, 7)
}

func TestConstructCodewordsInterleavesMultipleBlocks(t *testing.T) {
	// Normal(5)/H: two groups of blocks per normalECBlocks, exercising the
	// column-major interleave across blocks of differing size.
	groups, _, err := blockGroups(Normal(5), H)
	assert.NoError(t, err)
	total := 0
	for _, g := range groups {
		total += g.count * g.dataPer
	}
	data := make([]byte, total)
	for i := range data {
		data[i] = byte(i)
	}
	encoded, ec, err := ConstructCodewords(data, Normal(5), H)
	assert.NoError(t, err)
	assert.Len(t, encoded, total)
	assert.NotEmpty(t, ec)
}

func TestConstructCodewordsRejectsUnstandardizedVersion(t *testing.T) {
	_, _, err := ConstructCodewords(nil, Micro(1), H)
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidVersion, cerr.Kind)
}

func TestConstructCodewordsRmqrNotTabulated(t *testing.T) {
	// The rMQR Reed–Solomon block table is deliberately absent; codeword
	// construction must refuse rather than invent a redundancy split.
	for _, level := range []EcLevel{M, H} {
		_, _, err := ConstructCodewords(make([]byte, 7), Rmqr(11, 27), level)
		assert.Error(t, err)
		var cerr *Error
		assert.ErrorAs(t, err, &cerr)
		assert.Equal(t, InvalidVersion, cerr.Kind)
	}
}

func TestFieldArithmeticRoundTrips(t *testing.T) {
	for a := 1; a < 256; a++ {
		for _, b := range []int{1, 2, 3, 255} {
			prod := field.Mul(byte(a), byte(b))
			back := field.Div(prod, byte(b))
			assert.Equal(t, byte(a), back)
		}
	}
}
