package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionWidthHeight(t *testing.T) {
	assert.Equal(t, 21, Normal(1).Width())
	assert.Equal(t, 21, Normal(1).Height())
	assert.Equal(t, 177, Normal(40).Width())

	assert.Equal(t, 11, Micro(1).Width())
	assert.Equal(t, 17, Micro(4).Width())

	r := Rmqr(11, 27)
	assert.Equal(t, 27, r.Width())
	assert.Equal(t, 11, r.Height())
	assert.Equal(t, 27*11, r.Area())
}

func TestFetchIntRejectsUnstandardizedCombination(t *testing.T) {
	_, err := Micro(1).FetchInt(DataLengths, M)
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidVersion, cerr.Kind)
}

func TestFetchIntNormal(t *testing.T) {
	v, err := Normal(1).FetchInt(DataLengths, L)
	assert.NoError(t, err)
	assert.Equal(t, 152, v)
}

func TestModeJoin(t *testing.T) {
	assert.Equal(t, Alphanumeric, Numeric.Join(Alphanumeric))
	assert.Equal(t, Byte, Alphanumeric.Join(Byte))
	assert.Equal(t, Byte, Kanji.Join(Alphanumeric))
	assert.Equal(t, Numeric, Numeric.Join(Numeric))
}

func TestLengthBitsCountNormalClasses(t *testing.T) {
	assert.Equal(t, 10, Numeric.LengthBitsCount(Normal(1)))
	assert.Equal(t, 12, Numeric.LengthBitsCount(Normal(10)))
	assert.Equal(t, 14, Numeric.LengthBitsCount(Normal(27)))
}

func TestLengthBitsCountMicro(t *testing.T) {
	assert.Equal(t, 3, Numeric.LengthBitsCount(Micro(1)))
	assert.Equal(t, 4, Alphanumeric.LengthBitsCount(Micro(2)))
}

func TestRmqrAllOrderedByWidth(t *testing.T) {
	all := RmqrAll()
	assert.Len(t, all, 32)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Width(), all[i].Width())
	}
}
