package fx

import (
	"math/bits"
	"strconv"
)

// FracDigits is the maximum number of fractional digits String prints.
const FracDigits = 5

// maxParseDigits keeps 10^k inside a uint64.
const maxParseDigits = 19

func (n Num) String() string {
	var buf [32]byte
	return string(n.AppendFormat(buf[:0]))
}

// AppendFormat appends the decimal form of n to dst: the integer part, then a
// dot and up to FracDigits truncated fractional digits when any is non-zero.
func (n Num) AppendFormat(dst []byte) []byte {
	abs := uint64(n.raw)
	if n.raw < 0 {
		dst = append(dst, '-')
		abs = uint64(-n.raw)
	}

	dst = strconv.AppendUint(dst, abs>>Precision, 10)

	frac := abs & uint64(FracMask)
	var digits [FracDigits]byte
	count, last := 0, 0
	for frac > 0 && count < FracDigits {
		frac *= 10
		d := byte(frac >> Precision)
		frac &= uint64(FracMask)
		digits[count] = '0' + d
		count++
		if d != 0 {
			last = count
		}
	}

	if last == 0 {
		return dst
	}
	dst = append(dst, '.')
	return append(dst, digits[:last]...)
}

// Parse reads an optional '-', decimal digits and an optional '.' followed
// by digits. Any other character is reported as a *FormatError.
func Parse(s string) (Num, error) {
	if s == "" {
		return Zero, &FormatError{Input: s, Pos: -1}
	}

	pos := 0
	negative := s[0] == '-'
	if negative {
		pos++
	}

	var acc int64
	intDigits := 0
	for ; pos < len(s) && s[pos] != '.'; pos++ {
		d := s[pos] - '0'
		if d > 9 {
			return Zero, &FormatError{Input: s, Pos: pos}
		}
		acc = acc*10 + int64(d)<<Precision
		intDigits++
	}

	fracDigits := 0
	if pos < len(s) {
		pos++ // '.'
		var num, den uint64 = 0, 1
		for ; pos < len(s); pos++ {
			d := s[pos] - '0'
			if d > 9 {
				return Zero, &FormatError{Input: s, Pos: pos}
			}
			if fracDigits < maxParseDigits {
				num = num*10 + uint64(d)
				den *= 10
			}
			fracDigits++
		}
		if fracDigits > 0 {
			hi, lo := bits.Mul64(num, uint64(OneRaw))
			q, _ := bits.Div64(hi, lo, den)
			acc += int64(q)
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return Zero, &FormatError{Input: s, Pos: -1}
	}

	if negative {
		acc = -acc
	}
	return Num{acc}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Num {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}
