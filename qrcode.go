// Package qrcode encodes byte payloads as QR Code, Micro QR Code, or rMQR
// symbols. It is a thin facade over internal/coding, which does the actual
// segmentation, bit assembly, error-correction, and layout work; this
// package's job is choosing a version (when the caller doesn't pin one),
// running the pipeline end to end, and handing back a read-only module
// matrix for a renderer to draw.
package qrcode

import "github.com/inkstray/qrcode/internal/coding"

// Color is the finished state of one module.
type Color = coding.Color

const (
	Light = coding.Light
	Dark  = coding.Dark
)

// EcLevel is the error-correction level requested for an encode.
type EcLevel = coding.EcLevel

const (
	L = coding.L
	M = coding.M
	Q = coding.Q
	H = coding.H
)

// Version identifies the symbol size and family produced by an encode.
type Version = coding.Version

// Normal constructs a classic QR code version (1 to 40), for use with
// EncodeWithVersion.
func Normal(v int) Version { return coding.Normal(v) }

// Micro constructs a Micro QR code version (1 to 4), for use with
// EncodeWithVersion.
func Micro(v int) Version { return coding.Micro(v) }

// Rmqr constructs an rMQR version from its height and width, for use with
// EncodeWithVersion. The pair must be one of the 32 standardized
// combinations for the encode to succeed.
func Rmqr(height, width int) Version { return coding.Rmqr(height, width) }

// RmqrStrategy selects which rMQR dimension EncodeRmqr minimizes among the
// standardized sizes that fit the payload.
type RmqrStrategy = coding.RmqrStrategy

const (
	RmqrMinimizeWidth  = coding.RmqrMinimizeWidth
	RmqrMinimizeHeight = coding.RmqrMinimizeHeight
	RmqrMinimizeArea   = coding.RmqrMinimizeArea
)

// Error is the tagged error value returned by every Encode function.
type Error = coding.Error

// ErrKind classifies why an encode failed.
type ErrKind = coding.ErrKind

const (
	DataTooLong             = coding.DataTooLong
	InvalidVersion          = coding.InvalidVersion
	UnsupportedCharacterSet = coding.UnsupportedCharacterSet
	InvalidEciDesignator    = coding.InvalidEciDesignator
	InvalidCharacter        = coding.InvalidCharacter
)

// QrCode is a finished, immutable symbol: a version, the error-correction
// level it was built with, and the resulting module matrix.
type QrCode struct {
	version Version
	level   EcLevel
	canvas  *coding.Canvas
}

// Version returns the symbol's version.
func (q *QrCode) Version() Version { return q.version }

// ErrorCorrectionLevel returns the level the symbol was encoded with.
func (q *QrCode) ErrorCorrectionLevel() EcLevel { return q.level }

// Width returns the number of modules on the horizontal edge.
func (q *QrCode) Width() int { return q.canvas.Width() }

// Height returns the number of modules on the vertical edge.
func (q *QrCode) Height() int { return q.canvas.Height() }

// Module returns the color of the module at column x, row y.
func (q *QrCode) Module(x, y int) Color { return q.canvas.Module(x, y) }

// IntoColors flattens the module matrix into a row-major Color slice of
// length Width()*Height(), with no quiet zone: cell y*Width()+x is
// Module(x, y). Rendering the quiet zone is left to the caller.
func (q *QrCode) IntoColors() []Color { return q.canvas.Colors() }

// assemble runs the shared back half of the pipeline — code word
// construction, layout, masking — once a version and its segmentation are
// already known.
func assemble(version Version, level EcLevel, data []byte, segs []coding.Segment) (*QrCode, error) {
	bits := coding.NewBits(version)
	if err := bits.PushSegments(data, segs); err != nil {
		return nil, err
	}
	if err := bits.PushTerminator(level); err != nil {
		return nil, err
	}

	encodedData, ecData, err := coding.ConstructCodewords(bits.Bytes(), version, level)
	if err != nil {
		return nil, err
	}

	// Micro(1) and Micro(3) end in a 4-bit data codeword; only the tabulated
	// bit count is routed into modules, never the padded low nibble.
	dataBits, err := version.FetchInt(coding.DataLengths, level)
	if err != nil {
		return nil, err
	}

	canvas := coding.NewCanvas(version)
	canvas.PlaceData(encodedData, ecData, dataBits)
	masked, _ := canvas.ChooseMask(level)

	return &QrCode{version: version, level: level, canvas: masked}, nil
}

// Encode auto-selects the smallest Normal QR version able to hold data at
// error-correction level M.
func Encode(data []byte) (*QrCode, error) {
	return EncodeWithLevel(data, M)
}

// EncodeWithLevel auto-selects the smallest Normal QR version able to hold
// data at level.
func EncodeWithLevel(data []byte, level EcLevel) (*QrCode, error) {
	version, segs, err := coding.AutoNormalVersion(data, level)
	if err != nil {
		return nil, err
	}
	return assemble(version, level, data, segs)
}

// EncodeWithVersion encodes data at a caller-chosen version (Normal or
// Micro) and level, failing with DataTooLong if it doesn't fit.
func EncodeWithVersion(data []byte, version Version, level EcLevel) (*QrCode, error) {
	segs := coding.Optimize(coding.Classify(data), version)
	return assemble(version, level, data, segs)
}

// EncodeRmqr auto-selects among the 32 standardized rMQR sizes per
// strategy, the smallest that holds data at level. Version search and
// bitstream assembly are fully implemented, but the rMQR Reed–Solomon
// block table is not tabulated in this tree, so codeword construction
// currently fails with InvalidVersion for every rMQR version.
func EncodeRmqr(data []byte, level EcLevel, strategy RmqrStrategy) (*QrCode, error) {
	version, segs, err := coding.AutoRmqrVersion(data, level, strategy)
	if err != nil {
		return nil, err
	}
	return assemble(version, level, data, segs)
}

// EncodeMicro auto-selects the smallest Micro QR version able to hold data
// at level, the Micro-family counterpart to EncodeWithLevel and EncodeRmqr.
func EncodeMicro(data []byte, level EcLevel) (*QrCode, error) {
	version, segs, err := coding.AutoMicroVersion(data, level)
	if err != nil {
		return nil, err
	}
	return assemble(version, level, data, segs)
}
