// Package bigfft implements multiplication of big.Int using FFT.
// This file holds the small fixed-size lookup tables that steer parameter
// selection for the top-level multiplier and its recursive pointwise step.
package bigfft

// fftTab fine-tunes (depth, w) once mulMain's doubling search lands below
// depth 11: fftTab[depth-6][w-1] gives a depth/weight adjustment that trims
// a little slack out of the transform size the naive doubling search would
// otherwise settle on.
var fftTab = [5][2]int{
	{2, 2},
	{2, 2},
	{2, 2},
	{2, 1},
	{1, 1},
}

// mulmodTab picks an (depth1, w1) pair for the recursive pointwise
// multiplier (fftMulmod2expp1's fft_negacyclic split), indexed by how many
// doublings the outer search has already gone through.
var mulmodTab = [7][2]int{
	{3, 3},
	{3, 3},
	{3, 3},
	{3, 2},
	{2, 2},
	{2, 2},
	{1, 1},
}

// fftMulmod2expp1Cutoff is the coefficient length, in limbs, below which the
// pointwise multiplier delegates to the external basecase (math/big)
// multiplier instead of splitting into a smaller negacyclic transform.
const fftMulmod2expp1Cutoff = 250
