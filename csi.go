package tvinput

import (
	"strconv"
	"strings"
)

const (
	maxCSIParams = 6
	csiOmitted   = maxNum
)

// CSIData holds the parameters of one control sequence
type CSIData struct {
	val  [maxCSIParams]uint32
	sep  [maxCSIParams]byte // byte that followed each parameter
	size int
}

// readCSI reads parameters up to and including the terminator. It fails on
// EOF, on a parameter too large for 32 bits, or when there are more than
// maxCSIParams parameters.
func readCSI(la *Lookahead) (CSIData, bool) {
	var csi CSIData
	for i := range maxCSIParams {
		n, ok := la.GetNum()
		switch {
		case !ok:
			csi.val[i] = csiOmitted
		case n >= maxNum:
			return csi, false
		default:
			csi.val[i] = uint32(n)
		}
		k := la.Last(0)
		if k == EOF {
			return csi, false
		}
		csi.sep[i] = byte(k)
		if k != ';' && k != ':' {
			csi.size = i + 1
			return csi, true
		}
	}
	return csi, false
}

// Len returns the number of parameters, omitted ones included
func (c *CSIData) Len() int {
	return c.size
}

// Value returns the i-th parameter, or def if it was omitted or absent
func (c *CSIData) Value(i int, def uint) uint {
	if i < c.size && c.val[i] != csiOmitted {
		return uint(c.val[i])
	}
	return def
}

// Omitted reports whether the i-th parameter is absent or empty
func (c *CSIData) Omitted(i int) bool {
	return i >= c.size || c.val[i] == csiOmitted
}

// Terminator returns the final byte
func (c *CSIData) Terminator() byte {
	if c.size == 0 {
		return 0
	}
	return c.sep[c.size-1]
}

// String serializes the parameters and terminator, without the ESC [ prefix
func (c *CSIData) String() string {
	var sb strings.Builder
	for i := range c.size {
		if c.val[i] != csiOmitted {
			sb.WriteString(strconv.FormatUint(uint64(c.val[i]), 10))
		}
		sb.WriteByte(c.sep[i])
	}
	return sb.String()
}
