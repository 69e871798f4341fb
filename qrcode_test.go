package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeEmptyInputYieldsSmallestNormal(t *testing.T) {
	q, err := Encode(nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Version().NormalNumber())
	assert.Equal(t, 21, q.Width())
	assert.Equal(t, 21, q.Height())
	assert.Len(t, q.IntoColors(), 21*21)
}

func TestEncodeWithLevelChoosesMinimalVersion(t *testing.T) {
	q, err := EncodeWithLevel([]byte("HELLO WORLD"), Q)
	assert.NoError(t, err)
	assert.True(t, q.Version().IsNormal())
	assert.Equal(t, Q, q.ErrorCorrectionLevel())
}

func TestEncodeWithVersionTooLongFails(t *testing.T) {
	huge := make([]byte, 4000)
	for i := range huge {
		huge[i] = 'X'
	}
	_, err := EncodeWithVersion(huge, Normal(1), L)
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
}

func TestEncodeMicroAutoSelectsSmallest(t *testing.T) {
	q, err := EncodeMicro([]byte("123"), L)
	assert.NoError(t, err)
	assert.True(t, q.Version().IsMicro())
}

func TestEncodeRmqrReportsUntabulatedBlockLayout(t *testing.T) {
	// rMQR version search and bit assembly work, but the Reed–Solomon
	// block table is deliberately absent, so the encode must refuse
	// rather than emit a symbol with an invented redundancy split.
	_, err := EncodeRmqr([]byte("hello"), M, RmqrMinimizeArea)
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidVersion, cerr.Kind)
}

func TestModuleMatchesIntoColors(t *testing.T) {
	q, err := Encode([]byte("Hello, World!"))
	assert.NoError(t, err)
	colors := q.IntoColors()
	for y := 0; y < q.Height(); y++ {
		for x := 0; x < q.Width(); x++ {
			assert.Equal(t, colors[y*q.Width()+x], q.Module(x, y))
		}
	}
}

func TestEncodeWithLevelMaxCapacityBoundary(t *testing.T) {
	// Normal(40)/L in Byte mode holds 2953 bytes; one more must fail.
	fits := make([]byte, 2953)
	for i := range fits {
		fits[i] = 0xff
	}
	q, err := EncodeWithLevel(fits, L)
	assert.NoError(t, err)
	assert.Equal(t, 40, q.Version().NormalNumber())

	_, err = EncodeWithLevel(append(fits, 0xff), L)
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
}

func TestEncodeHelloWorldFunctionalPatterns(t *testing.T) {
	q, err := EncodeWithVersion([]byte("Hello, World!"), Normal(1), M)
	assert.NoError(t, err)
	assert.Equal(t, 21, q.Width())

	// Finder corners are dark, separators light.
	for _, corner := range [][2]int{{0, 0}, {20, 0}, {0, 20}} {
		assert.Equal(t, Dark, q.Module(corner[0], corner[1]))
	}
	assert.Equal(t, Light, q.Module(7, 0))
	assert.Equal(t, Light, q.Module(0, 7))

	// Timing pattern alternates along row 6, and the dark module sits at
	// (8, 4*version+9).
	assert.Equal(t, Dark, q.Module(8, 6))
	assert.Equal(t, Light, q.Module(9, 6))
	assert.Equal(t, Dark, q.Module(8, 13))
}
