// Package bigfft implements multiplication of big.Int using FFT.
// This file exposes the negacyclic (twisted) transform pair as standalone,
// first-class operations rather than leaving them inlined into Poly.
package bigfft

// fftNegacyclic evaluates p at θω^i for i = 0..K-1, where θ is a primitive
// 2K-th root of unity in Z/(b^n+1)Z and ω = θ². This is the transform that
// makes pointwise multiplication compute a polynomial product modulo
// x^K+1 exactly, rather than modulo x^K-1 — the twist needed for
// fft_mulmod_2expp1's recursive convolution.
func fftNegacyclic(p *Poly, n int) PolValues {
	return p.NTransform(n)
}

// invFFTNegacyclic reconstructs a polynomial from its negacyclic-transform
// values. The returned polynomial's M field is unset; callers assign it
// before converting back to an integer.
func invFFTNegacyclic(v *PolValues) Poly {
	return v.InvNTransform()
}
