// Package bigfft implements multiplication of big.Int using FFT.
// This file implements the two external entry points mul_main's parameter
// search chooses between: mulTruncateSqrt2, the flat √2-extended radix-2
// transform, and mulMFATruncateSqrt2, the same √2 extension composed with
// the matrix-Fourier reshape for transform depths large enough that a flat
// pass no longer fits comfortably in cache.
package bigfft

import "math/big"

// transformKernel is the shape shared by fftTruncateSqrt2 and
// fftMFATruncateSqrt2, letting mulWithKernel drive either one identically.
type transformKernel func(src []fermat, backward bool, n int, k uint, trunc int) ([]fermat, error)

// transformPoly evaluates p at all 1<<p.K roots via kernel, the same
// all-roots case Poly.transform uses fourier for.
func transformPoly(p *Poly, n int, kernel transformKernel) (PolValues, error) {
	k := p.K
	K := 1 << k
	input := make([]fermat, K)
	bits := make([]big.Word, K*(n+1))
	for i := range input {
		input[i] = fermat(bits[i*(n+1) : (i+1)*(n+1)])
		if i < len(p.A) {
			copy(input[i], p.A[i])
		}
	}
	values, err := kernel(input, false, n, k, K)
	if err != nil {
		return PolValues{}, err
	}
	return PolValues{K: k, N: n, Values: values}, nil
}

// invTransformPoly reconstructs a Poly from values via kernel's backward
// pass, dividing out the transform length the way Poly.invTransform does.
func invTransformPoly(v *PolValues, kernel transformKernel) (Poly, error) {
	k, n := v.K, v.N
	K := 1 << k
	p, err := kernel(v.Values, true, n, k, K)
	if err != nil {
		return Poly{}, err
	}
	a := make([]nat, K)
	u := make(fermat, n+1)
	for i := range p {
		u.Shift(p[i], -int(k))
		a[i] = nat(append(fermat(nil), u...))
	}
	return Poly{K: k, M: 0, A: a}, nil
}

// mulWithKernel multiplies two non-negative magnitudes by splitting each
// into a Poly, transforming both with kernel, multiplying pointwise in the
// Fermat ring, and inverting.
func mulWithKernel(x, y nat, kernel transformKernel) (nat, error) {
	k, m := fftSize(x, y)
	px := polyFromNat(x, k, m)
	py := polyFromNat(y, k, m)
	n := valueSize(k, m, 2)

	pvx, err := transformPoly(&px, n, kernel)
	if err != nil {
		return nil, err
	}
	pvy, err := transformPoly(&py, n, kernel)
	if err != nil {
		return nil, err
	}

	K := len(pvx.Values)
	rv := PolValues{K: pvx.K, N: n, Values: make([]fermat, K)}
	buf := make(fermat, 8*n)
	bits := make([]big.Word, K*(n+1))
	for i := 0; i < K; i++ {
		rv.Values[i] = fermat(bits[i*(n+1) : (i+1)*(n+1)])
		copy(rv.Values[i], buf.Mul(pvx.Values[i], pvy.Values[i]))
	}

	pr, err := invTransformPoly(&rv, kernel)
	if err != nil {
		return nil, err
	}
	pr.M = m
	return pr.Int(), nil
}

// mulTruncateSqrt2 is the truncate_sqrt2 strategy's external entry point:
// multiply via the flat √2-extended transform (fft_sqrt2.go).
func mulTruncateSqrt2(x, y *big.Int) (*big.Int, error) {
	xb, yb := nat(x.Bits()), nat(y.Bits())
	zb, err := mulWithKernel(xb, yb, fftTruncateSqrt2)
	if err != nil {
		return nil, err
	}
	z := new(big.Int).SetBits(zb)
	if x.Sign()*y.Sign() < 0 {
		z.Neg(z)
	}
	return z, nil
}

// mulMFATruncateSqrt2 is the mfa_truncate_sqrt2 strategy's external entry
// point: multiply via the matrix-Fourier reshape of the same √2-extended
// transform (fft_mfa.go).
func mulMFATruncateSqrt2(x, y *big.Int) (*big.Int, error) {
	xb, yb := nat(x.Bits()), nat(y.Bits())
	zb, err := mulWithKernel(xb, yb, fftMFATruncateSqrt2)
	if err != nil {
		return nil, err
	}
	z := new(big.Int).SetBits(zb)
	if x.Sign()*y.Sign() < 0 {
		z.Neg(z)
	}
	return z, nil
}
