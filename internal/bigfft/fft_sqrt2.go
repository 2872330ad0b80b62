// Package bigfft implements multiplication of big.Int using FFT.
// This file implements the √2-extended truncated transform: the same
// truncated radix-2 split as fft_truncate.go, with its twiddle factors
// computed by ShiftHalf as powers of sqrt(2) = 2^(n*_W/2)*(2^(n*_W/4) -
// 2^(-n*_W/4)). 2 is a primitive 2*n*_W-th root of unity in the Fermat ring
// and sqrt(2) a primitive 4*n*_W-th root, so counting twiddle shifts in
// half-bits reaches transform lengths up to 4*n*_W for coefficient size n.
package bigfft

import "math/big"

// fftTruncateSqrt2 evaluates src (1<<k Fermat-ring values) at trunc of its
// roots drawn from the 4*n*_W-order root system sqrt(2) generates. Its
// recursive truncation structure mirrors fftTruncate exactly, and so does
// its twiddle base: fftTruncate also counts its twiddle shifts in
// ShiftHalf's half-bit units.
func fftTruncateSqrt2(src []fermat, backward bool, n int, k uint, trunc int) ([]fermat, error) {
	K := 1 << k
	if trunc <= 0 {
		return nil, nil
	}
	if trunc > K/2 || k == 0 {
		full, err := fftRadix2IterativeSqrt2(src, backward, n, k)
		if err != nil {
			return nil, err
		}
		if trunc > K {
			trunc = K
		}
		return full[:trunc], nil
	}

	half := K / 2
	even := make([]fermat, half)
	odd := make([]fermat, half)
	for i := 0; i < half; i++ {
		even[i] = src[2*i]
		odd[i] = src[2*i+1]
	}
	e, err := fftTruncateSqrt2(even, backward, n, k-1, trunc)
	if err != nil {
		return nil, err
	}
	o, err := fftTruncateSqrt2(odd, backward, n, k-1, trunc)
	if err != nil {
		return nil, err
	}

	// sqrt(2) has order 4*n*_W, so (4*n*_W)>>k half-bit steps is a
	// primitive 1<<k-th root of unity.
	ω2shift := (4 * n * _W) >> k
	if backward {
		ω2shift = -ω2shift
	}

	bits := make([]big.Word, trunc*(n+1))
	dst := make([]fermat, trunc)
	tmp := make(fermat, n+1)
	tmp2 := make(fermat, n+1)
	for i := 0; i < trunc; i++ {
		dst[i] = bits[i*(n+1) : (i+1)*(n+1)]
		tmp.ShiftHalf(o[i], i*ω2shift, tmp2)
		dst[i].Add(e[i], tmp)
	}
	return dst, nil
}

// fftRadix2IterativeSqrt2 is fftRadix2Iterative's counterpart for the √2
// root system: at the stage of size 1<<size its twiddle is
// sqrt(2)^((4*n*_W)>>size), the same schedule fftRadix2Iterative uses.
func fftRadix2IterativeSqrt2(src []fermat, backward bool, n int, k uint) ([]fermat, error) {
	K := 1 << k
	bits := make([]big.Word, K*(n+1))
	dst := make([]fermat, K)
	for i := range dst {
		dst[i] = bits[i*(n+1) : (i+1)*(n+1)]
	}
	for i := 0; i < K; i++ {
		copy(dst[bitReverse(i, k)], src[i])
	}

	tmp := make(fermat, n+1)
	tmp2 := make(fermat, n+1)
	u := make(fermat, n+1)
	for size := uint(1); size <= k; size++ {
		half := 1 << (size - 1)
		step := 1 << size
		ω2shift := (4 * n * _W) >> size
		if backward {
			ω2shift = -ω2shift
		}
		for start := 0; start < K; start += step {
			for i := 0; i < half; i++ {
				a := dst[start+i]
				b := dst[start+i+half]
				tmp.ShiftHalf(b, i*ω2shift, tmp2)
				copy(u, a)
				dst[start+i].Add(u, tmp)
				dst[start+i+half].Sub(u, tmp)
			}
		}
	}
	return dst, nil
}
