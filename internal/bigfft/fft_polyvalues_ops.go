// Package bigfft implements multiplication of big.Int using FFT.
// This file adds the pointwise-sum operation mat_mul_fft's K-term dot
// product accumulates with, alongside the pointwise product Mul already
// provides.
package bigfft

// Add returns the pointwise sum of p and q: result.Values[i] =
// p.Values[i] + q.Values[i] for every transform position i. p and q must
// share the same K and N (the same transform shape), as produced by two
// Transform calls against Poly values built with the same (k, m).
func (p *PolValues) Add(q *PolValues) PolValues {
	K := 1 << p.K
	values := make([]fermat, K)
	buf := make([]Word, K*(p.N+1))
	for i := 0; i < K; i++ {
		values[i] = fermat(buf[i*(p.N+1) : (i+1)*(p.N+1)])
		values[i].Add(p.Values[i], q.Values[i])
	}
	return PolValues{K: p.K, N: p.N, Values: values}
}
