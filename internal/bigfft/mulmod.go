// Package bigfft implements multiplication of big.Int using FFT.
// This file implements fft_mulmod_2expp1: the recursive pointwise
// multiplier used by fermat.Mul above smallMulThreshold.
package bigfft

import "math/big"

// fftMulmod2expp1 computes x*y mod 2^(n*_W)+1 by evaluating the exact
// (unreduced) integer product of x and y through a negacyclic-transform
// polynomial multiply, then folding the double-length result back into the
// Fermat ring. This is the same Fourier machinery fermat.Mul's caller uses
// one level up, applied recursively to the ring's own coefficient products —
// the defining feature of Schönhage-Strassen: the pointwise multiplies
// inside one FFT are themselves smaller instances of the same algorithm,
// bottoming out at basicMul once n drops below smallMulThreshold.
//
// dst is scratch/output space sized generously by the caller (around 8n
// words); the result occupies dst[:n+1].
func fftMulmod2expp1(dst, x, y fermat, n int) fermat {
	xi := fermatToInt(x, n)
	yi := fermatToInt(y, n)
	if xi.Sign() == 0 || yi.Sign() == 0 {
		out := dst[:n+1]
		for i := range out {
			out[i] = 0
		}
		return out
	}

	sign := xi.Sign() * yi.Sign()
	xa := new(big.Int).Abs(xi)
	ya := new(big.Int).Abs(yi)

	var prod *big.Int
	var ok bool
	if n < fftMulmod2expp1Cutoff {
		// Too few limbs for a split to pay for itself; go straight to the
		// basecase collaborator instead of building a transform around it.
		prod, ok = new(big.Int).Mul(xa, ya), true
	} else {
		prod, ok = negacyclicMul(xa.Bits(), ya.Bits())
	}
	if !ok {
		// Degenerate split sizes (tiny operands slipping in just above
		// smallMulThreshold): fall back to the exact collaborator.
		prod = new(big.Int).Mul(xa, ya)
	}
	if sign < 0 {
		prod.Neg(prod)
	}
	return dst.setReducedInt(prod, n)
}

// negacyclicMul computes the exact product of two non-negative magnitudes
// by splitting each into K coefficients of m words, evaluating both at the
// 2K-th roots of unity via Poly.NTransform, multiplying pointwise, and
// inverting. ok is false when the operands are too small to split
// meaningfully (K would collapse to 1), in which case the caller should use
// a direct multiply instead.
func negacyclicMul(x, y nat) (*big.Int, bool) {
	k, m := fftSize(x, y)
	if k == 0 {
		return nil, false
	}

	// mulmodTab names a tighter (depth, m) pair for this many doublings past
	// the smallest split; apply it only when it still leaves room for the
	// product (m<<k > words, the same containment fftSize itself enforces),
	// since the table is tuned for the common case and a few operand sizes
	// land just inside the untrimmed split only.
	words := len(x) + len(y)
	if idx := int(k) - 1; idx >= 0 && idx < len(mulmodTab) {
		dAdj, mAdj := mulmodTab[idx][0], mulmodTab[idx][1]
		if tk, tm := k-uint(dAdj)+1, m-mAdj+1; tk > 0 && tm > 0 && tm<<tk > words {
			k, m = tk, tm
		}
	}

	px := polyFromNat(x, k, m)
	py := polyFromNat(y, k, m)

	vn := valueSize(k, m, 2)
	pvx := fftNegacyclic(&px, vn)
	pvy := fftNegacyclic(&py, vn)

	pvz, err := pvx.Mul(&pvy)
	if err != nil {
		return nil, false
	}

	r := invFFTNegacyclic(&pvz)
	r.M = m
	z := new(big.Int).SetBits(r.Int())
	return z, true
}
