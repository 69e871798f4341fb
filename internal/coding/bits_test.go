package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// These fixtures are the pre-terminator raw bit streams an encoder must
// produce for a handful of small, hand-checked inputs across all four modes,
// in Normal and Micro versions.

func TestPushNumericDataNormal(t *testing.T) {
	b := NewBits(Normal(1))
	assert.NoError(t, b.PushNumericData([]byte("01234567")))
	assert.Equal(t, []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80}, b.Bytes())
}

func TestPushNumericDataNormalLonger(t *testing.T) {
	b := NewBits(Normal(1))
	assert.NoError(t, b.PushNumericData([]byte("0123456789012345")))
	assert.Equal(t, []byte{0x10, 0x40, 0x0C, 0x56, 0x6A, 0x6E, 0x14, 0xEA, 0x50}, b.Bytes())
}

func TestPushNumericDataMicro(t *testing.T) {
	b := NewBits(Micro(3))
	assert.NoError(t, b.PushNumericData([]byte("0123456789012345")))
	assert.Equal(t, []byte{0x20, 0x06, 0x2B, 0x35, 0x37, 0x0A, 0x75, 0x28}, b.Bytes())
}

func TestPushAlphanumericDataNormal(t *testing.T) {
	b := NewBits(Normal(1))
	assert.NoError(t, b.PushAlphanumericData([]byte("AC-42")))
	assert.Equal(t, []byte{0x20, 0x29, 0xCE, 0xE7, 0x21, 0x00}, b.Bytes())
}

func TestPushKanjiDataNormal(t *testing.T) {
	b := NewBits(Normal(1))
	assert.NoError(t, b.PushKanjiData([]byte("\x93\x5F\xE4\xAA")))
	assert.Equal(t, []byte{0x80, 0x26, 0xCF, 0xEA, 0xA8}, b.Bytes())
}

func TestPushByteDataNormal(t *testing.T) {
	b := NewBits(Normal(1))
	assert.NoError(t, b.PushByteData([]byte("\x12\x34\x56\x78\x9A\xBC\xDE\xF0")))
	assert.Equal(t, []byte{0x40, 0x81, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0x00}, b.Bytes())
}

func TestPushByteDataRejectedInMicro2(t *testing.T) {
	b := NewBits(Micro(2))
	err := b.PushByteData([]byte("?"))
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, UnsupportedCharacterSet, cerr.Kind)
}

func TestPushAlphanumericDataTooLongInMicro2(t *testing.T) {
	b := NewBits(Micro(2))
	err := b.PushAlphanumericData([]byte("ABCDEFGH"))
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, DataTooLong, cerr.Kind)
}

func TestPushKanjiDataOddLengthRejected(t *testing.T) {
	b := NewBits(Normal(1))
	err := b.PushKanjiData([]byte("\x93\x5F\xE4"))
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidCharacter, cerr.Kind)
}

func TestPushAlphanumericDataInvalidCharacter(t *testing.T) {
	b := NewBits(Normal(1))
	err := b.PushAlphanumericData([]byte("ac")) // lowercase isn't in the alphabet
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidCharacter, cerr.Kind)
}

func TestPushTerminatorFillsToExactCapacity(t *testing.T) {
	b := NewBits(Normal(1))
	assert.NoError(t, b.PushNumericData([]byte("01234567")))
	assert.NoError(t, b.PushTerminator(L))
	maxLen, err := b.MaxLen(L)
	assert.NoError(t, err)
	assert.Equal(t, maxLen/8, len(b.Bytes()))
}

func TestPushTerminatorRejectsOverflow(t *testing.T) {
	b := NewBits(Normal(1))
	// Normal(1)/L holds 152 bits = 19 bytes; push more Byte-mode payload than
	// that before the terminator.
	assert.NoError(t, b.PushByteData(make([]byte, 20)))
	err := b.PushTerminator(L)
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, DataTooLong, cerr.Kind)
}

func TestPushModeIndicatorMicro1OnlyNumeric(t *testing.T) {
	b := NewBits(Micro(1))
	assert.NoError(t, b.PushModeIndicator(Numeric))
	assert.Equal(t, 0, b.Len(), "Micro(1)+Numeric writes zero indicator bits")

	b2 := NewBits(Micro(1))
	err := b2.PushModeIndicator(Alphanumeric)
	assert.Error(t, err)
	var cerr *Error
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, UnsupportedCharacterSet, cerr.Kind)
}

func TestPushTerminatorMicro1EndsOnHalfByte(t *testing.T) {
	// Micro(1) holds 20 data bits: two full bytes of stream plus a final
	// 4-bit codeword carried in the high nibble of a third byte.
	b := NewBits(Micro(1))
	assert.NoError(t, b.PushNumericData([]byte("123")))
	assert.NoError(t, b.PushTerminator(L))
	assert.Equal(t, 3, len(b.Bytes()))
}
