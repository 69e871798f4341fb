// Package gf256 implements GF(256) polynomial arithmetic for Reed–Solomon
// error correction, the way rsc-qr's coding package leans on a sibling
// gf256 package (Field, NewRSEncoder(...).ECC(...)) rather than hand-rolling
// the arithmetic inline.
package gf256

import "fmt"

// A Field represents an instance of GF(256), defined by a primitive
// polynomial and a generator element.
type Field struct {
	poly int
	gen  int

	// expTable[i] = gen^i for i in [0, 510); the table is doubled so that
	// products of two logs in [0, 254] can be looked up without a modulo.
	expTable [510]byte
	// logTable[a] = i such that gen^i == a, for a in [1, 255].
	logTable [256]byte
}

// NewField builds the field for the given primitive polynomial (e.g. 0x11d
// for QR's x^8+x^4+x^3+x^2+1) and generator element.
func NewField(poly, gen int) *Field {
	f := &Field{poly: poly, gen: gen}
	x := 1
	for i := 0; i < 255; i++ {
		f.expTable[i] = byte(x)
		f.logTable[x] = byte(i)
		x *= gen
		if x >= 256 {
			x ^= poly
		}
	}
	for i := 255; i < 510; i++ {
		f.expTable[i] = f.expTable[i-255]
	}
	return f
}

// Exp returns gen^n.
func (f *Field) Exp(n int) byte {
	for n < 0 {
		n += 255
	}
	return f.expTable[n%255]
}

// Log returns the discrete log of a (a must be nonzero).
func (f *Field) Log(a byte) int {
	return int(f.logTable[a])
}

// Add (equivalently Sub) computes a+b in GF(256).
func (f *Field) Add(a, b byte) byte {
	return a ^ b
}

// Mul computes a*b in GF(256).
func (f *Field) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[int(f.logTable[a])+int(f.logTable[b])]
}

// Div computes a/b in GF(256). Panics if b is zero.
func (f *Field) Div(a, b byte) byte {
	if b == 0 {
		panic("gf256: division by zero")
	}
	if a == 0 {
		return 0
	}
	return f.expTable[int(f.logTable[a])+255-int(f.logTable[b])]
}

// polynomial is a dense coefficient list, highest degree first.
type polynomial []byte

func (f *Field) polyMul(p, q polynomial) polynomial {
	out := make(polynomial, len(p)+len(q)-1)
	for i, pv := range p {
		if pv == 0 {
			continue
		}
		for j, qv := range q {
			out[i+j] = f.Add(out[i+j], f.Mul(pv, qv))
		}
	}
	return out
}

// generator returns g_k(x) = Π_{i=0..k-1} (x - gen^i), highest degree first.
func (f *Field) generator(k int) polynomial {
	g := polynomial{1}
	for i := 0; i < k; i++ {
		g = f.polyMul(g, polynomial{1, f.Exp(i)})
	}
	return g
}

// An RSEncoder computes Reed–Solomon error-correction codewords for a fixed
// number of check bytes.
type RSEncoder struct {
	field *Field
	gen   polynomial
	nsym  int
}

// NewRSEncoder returns an encoder that produces nsym check bytes per block.
func NewRSEncoder(f *Field, nsym int) *RSEncoder {
	return &RSEncoder{field: f, gen: f.generator(nsym), nsym: nsym}
}

// ECC computes the nsym error-correction bytes for data and writes them,
// highest-degree-coefficient first, into out. len(out) must equal nsym.
func (e *RSEncoder) ECC(data []byte, out []byte) {
	if len(out) != e.nsym {
		panic(fmt.Sprintf("gf256: ECC output buffer has length %d, want %d", len(out), e.nsym))
	}
	remainder := make([]byte, len(data)+e.nsym)
	copy(remainder, data)
	for i := 0; i < len(data); i++ {
		coef := remainder[i]
		if coef == 0 {
			continue
		}
		for j, gv := range e.gen {
			remainder[i+j] = e.field.Add(remainder[i+j], e.field.Mul(gv, coef))
		}
	}
	copy(out, remainder[len(data):])
}
