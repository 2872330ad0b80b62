// Package bigfft implements multiplication of big.Int using FFT.
// This file provides the entry points into the recursive radix-2 Fourier
// transform (fourierRecursiveUnified in fft_recursion.go) and the top-level
// multiply/square operations built on top of it.
package bigfft

// fourier computes the forward (backward=false) or inverse (backward=true,
// unnormalized — callers divide by K themselves) Fourier transform of src
// into dst, both length-1<<k slices of (n+1)-word Fermat-ring elements.
func fourier(dst, src []fermat, backward bool, n int, k uint) error {
	alloc := GetPoolAllocator()
	tmp, cleanup1 := alloc.AllocFermatTemp(n)
	defer cleanup1()
	tmp2, cleanup2 := alloc.AllocFermatTemp(n)
	defer cleanup2()
	return fourierRecursiveUnified(dst, src, backward, n, k, k, 0, tmp, tmp2, alloc)
}

// fftRadix2 is the named entry point for the package's radix-2 Cooley-Tukey
// transform over the Fermat ring: the same operation fourier performs,
// exposed under the name the truncated and matrix-Fourier variants below are
// described against.
func fftRadix2(dst, src []fermat, backward bool, n int, k uint) error {
	return fourier(dst, src, backward, n, k)
}

// fourierWithBump is fourier using a caller-supplied bump allocator for its
// temporaries, for call chains that already have an arena open.
func fourierWithBump(dst, src []fermat, backward bool, n int, k uint, ba *BumpAllocator) error {
	adapter := NewBumpAllocatorAdapter(ba)
	tmp := ba.AllocFermat(n)
	tmp2 := ba.AllocFermat(n)
	return fourierRecursiveUnified(dst, src, backward, n, k, k, 0, tmp, tmp2, adapter)
}

