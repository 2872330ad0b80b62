// Package bigfft implements multiplication of big.Int using FFT.
// This file implements mul_main's parameter search: given two operands, it
// walks the same depth/weight doubling search the rest of the package's
// constants (fftTab, valueSize's extra=2 convention) are tuned for, and
// reports which of the two truncated-transform strategies MulMain then
// dispatches to.
package bigfft

import "math/big"

// mulStrategy names which truncated-transform family mul_main's parameter
// search selected.
type mulStrategy int

const (
	// strategyTruncateSqrt2 is used while depth stays below 11: a single
	// radix-2 transform extended with the √2 twiddle (fft_sqrt2.go).
	strategyTruncateSqrt2 mulStrategy = iota
	// strategyMFATruncateSqrt2 is used once depth reaches 11: the
	// matrix-Fourier reshaping (fft_mfa.go) composed with the same √2
	// extension, which keeps individual transform passes small enough to
	// stay cache-resident at sizes where a flat radix-2 transform would not.
	strategyMFATruncateSqrt2
)

// mulParams is the result of mul_main's parameter search: the chosen
// (depth, w) transform shape and which strategy it calls for.
type mulParams struct {
	depth    int
	w        int
	strategy mulStrategy
}

// selectMulParams runs the doubling search described for mul_main: starting
// from depth=6, w=1, it grows the transform (doubling w, then incrementing
// depth and resetting w) until the two operands' split coefficient counts
// fit within 4n coefficients, applies fftTab's depth<11 fine-tuning, and
// switches to the matrix-Fourier strategy once depth reaches 11 and a
// tighter bound (3n instead of 4n) still holds.
func selectMulParams(xBits, yBits int) mulParams {
	depth, w := 6, 1
	for {
		n := 1 << depth
		sign := 0
		bits := (n*w - depth - 1 - sign) / 2
		if bits < 1 {
			bits = 1
		}
		j1 := ceilDiv(xBits-1, bits) + 1
		j2 := ceilDiv(yBits-1, bits) + 1
		if j1+j2-1 <= 4*n {
			if depth < 11 {
				// fftTab names a (depth, w) trim that usually still fits the
				// 4n bound the search just found; re-check before trusting it,
				// since the table is tuned for the common case and a handful
				// of operand sizes land just inside the untrimmed bound only.
				off := fftTab[depth-6][w-1]
				if td, tw := depth-off, w<<(2*off); td >= 6 {
					tn := 1 << td
					tbits := (tn*tw - td - 1 - sign) / 2
					if tbits < 1 {
						tbits = 1
					}
					tj1 := ceilDiv(xBits-1, tbits) + 1
					tj2 := ceilDiv(yBits-1, tbits) + 1
					if tj1+tj2-1 <= 4*tn {
						depth, w = td, tw
					}
				}
				return mulParams{depth: depth, w: w, strategy: strategyTruncateSqrt2}
			}
			if j1+j2-1 <= 3*n {
				return mulParams{depth: depth - 1, w: w * 3, strategy: strategyMFATruncateSqrt2}
			}
			return mulParams{depth: depth, w: w, strategy: strategyMFATruncateSqrt2}
		}
		if w == 1 {
			w = 2
		} else {
			w = 1
			depth++
		}
		if depth >= len(fftTab)+6+8 {
			// Operands large enough that the search would run away; the
			// caller's fftSize/valueSize machinery takes over regardless of
			// which strategy is reported here.
			return mulParams{depth: depth, w: w, strategy: strategyMFATruncateSqrt2}
		}
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// MulMain multiplies x and y, selecting between the truncated-√2 and
// matrix-Fourier transform strategies the way the top-level multiplier's
// parameter search does, then dispatching to whichever of mulTruncateSqrt2
// or mulMFATruncateSqrt2 the search named. Operands too small for either
// transform to pay for itself fall back to the package's ordinary Mul, which
// multiplies with math/big whenever either operand is at most fftThreshold
// words long.
func MulMain(x, y *big.Int) (*big.Int, error) {
	EnsurePoolsWarmed(uint64(x.BitLen() + y.BitLen()))
	if len(x.Bits()) <= fftThreshold || len(y.Bits()) <= fftThreshold {
		return Mul(x, y)
	}
	params := selectMulParams(x.BitLen(), y.BitLen())
	switch params.strategy {
	case strategyMFATruncateSqrt2:
		return mulMFATruncateSqrt2(x, y)
	default:
		return mulTruncateSqrt2(x, y)
	}
}
