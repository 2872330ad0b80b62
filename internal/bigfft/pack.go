// Package bigfft implements multiplication of big.Int using FFT.
// This file implements the bit-level coefficient packer: the only place in
// the package that treats a big integer as a polynomial's coefficient list.
// Every transform and butterfly below this layer is sign-agnostic; SplitBits
// and CombineBits are where that sign gets introduced and removed again.
package bigfft

import "math/big"

// SplitBits reads src as a non-negative integer and produces consecutive
// bits-wide chunks as Fermat-ring coefficients, each stored in coeffLimbs+1
// words with the high word zero. The number of coefficients produced is
// len(result); a zero input produces a single zero coefficient.
func SplitBits(src nat, bits, coeffLimbs int) []fermat {
	x := new(big.Int).SetBits(src)
	return splitBitsFromInt(x, bits, coeffLimbs)
}

// SplitBitsSigned is SplitBits for a signed *big.Int. When x is negative the
// returned coefficients hold the additive inverses, mod 2^(coeffLimbs*_W)+1,
// of |x|'s coefficients, and negative is true — the convention combine_bits
// expects when reconstructing a signed result. Each such coefficient is
// stored as -c in two's complement across all coeffLimbs+1 words, so its top
// word is the sign extension CombineBits reads.
func SplitBitsSigned(x *big.Int, bits, coeffLimbs int) (coeffs []fermat, negative bool) {
	negative = x.Sign() < 0
	mag := new(big.Int).Abs(x)
	coeffs = splitBitsFromInt(mag, bits, coeffLimbs)
	if negative {
		for _, c := range coeffs {
			for i := range c {
				c[i] = ^c[i]
			}
			addVW(c, c, 1)
		}
	}
	return coeffs, negative
}

func splitBitsFromInt(x *big.Int, bits, coeffLimbs int) []fermat {
	numCoeffs := (x.BitLen() + bits - 1) / bits
	if numCoeffs == 0 {
		numCoeffs = 1
	}

	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask.Sub(mask, big.NewInt(1))

	coeffs := make([]fermat, numCoeffs)
	tmp := new(big.Int)
	for i := 0; i < numCoeffs; i++ {
		tmp.Rsh(x, uint(i*bits))
		tmp.And(tmp, mask)

		c := make(fermat, coeffLimbs+1)
		copy(c[:coeffLimbs], tmp.Bits())
		coeffs[i] = c
	}
	return coeffs
}

// CombineBits is the inverse of SplitBits: it adds coeffs[i], shifted left
// by i*bits, into an accumulator and returns the result packed into
// totalLimbs words. Coefficients may be signed, in which case each one's
// high word is interpreted as a two's-complement sign extension and the
// accumulation naturally propagates that sign through every coefficient
// above it. negative reports whether the accumulated value came out
// negative overall, so the caller can fold that sign into the final result
// in place rather than CombineBits doing it implicitly.
func CombineBits(coeffs []fermat, bits, totalLimbs int) (result nat, negative bool) {
	acc := new(big.Int)
	tmp := new(big.Int)
	for i, c := range coeffs {
		v := fermatToInt(c, c.n())
		tmp.Lsh(v, uint(i*bits))
		acc.Add(acc, tmp)
	}

	negative = acc.Sign() < 0
	if negative {
		acc.Neg(acc)
	}

	out := make(nat, totalLimbs)
	copy(out, acc.Bits())
	return out, negative
}
