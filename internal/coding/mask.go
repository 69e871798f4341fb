package coding

// normalMaskFuncs is mfunc from the teacher, unmodified: the 8 standard data
// mask formulas, indexed by mask pattern reference 0-7. Arguments are
// (row, column).
var normalMaskFuncs = [8]func(int, int) bool{
	func(y, x int) bool { return (y+x)%2 == 0 },
	func(y, x int) bool { return y%2 == 0 },
	func(y, x int) bool { return x%3 == 0 },
	func(y, x int) bool { return (y+x)%3 == 0 },
	func(y, x int) bool { return (y/2+x/3)%2 == 0 },
	func(y, x int) bool { return y*x%2+y*x%3 == 0 },
	func(y, x int) bool { return (y*x%2+y*x%3)%2 == 0 },
	func(y, x int) bool { return (y*x%3+(y+x)%2)%2 == 0 },
}

// microMaskFuncs is the 4 Micro QR data mask formulas, indexed by the 2-bit
// mask reference carried in Micro format information. They coincide with
// normal patterns 1, 4, 6, and 7 respectively.
var microMaskFuncs = [4]func(int, int) bool{
	func(y, x int) bool { return y%2 == 0 },
	func(y, x int) bool { return (y/2+x/3)%2 == 0 },
	func(y, x int) bool { return (y*x%2+y*x%3)%2 == 0 },
	func(y, x int) bool { return (y*x%3+(y+x)%2)%2 == 0 },
}

// rmqrMaskFunc is rMQR's single, fixed data mask: unlike Normal and Micro,
// an rMQR symbol never searches over alternatives.
func rmqrMaskFunc(y, x int) bool { return (y/2+x/3)%2 == 0 }

func maskFuncFor(version Version, mask int) func(int, int) bool {
	switch version.k {
	case kindMicro:
		return microMaskFuncs[mask]
	case kindRmqr:
		return rmqrMaskFunc
	default:
		return normalMaskFuncs[mask]
	}
}

func maskCountFor(version Version) int {
	switch version.k {
	case kindMicro:
		return 4
	case kindRmqr:
		return 1
	default:
		return 8
	}
}
