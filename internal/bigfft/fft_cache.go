// Package bigfft implements multiplication of big.Int using FFT.
// This file memoizes a Poly's transform across repeated multiplications
// against the same operand, the pattern a square-and-multiply exponentiation
// loop produces: the base (or the running square) is reused call after
// call, so retransforming it every time throws away work the previous call
// already did.
package bigfft

import "sync"

// transformCache holds the most recently computed transform for a single
// Poly, identified by pointer identity. It is intentionally a single slot
// rather than a map: exponentiation loops reuse at most a couple of operands
// at a time, and a single slot avoids unbounded growth with no eviction
// policy to get wrong.
type transformCache struct {
	mu    sync.Mutex
	key   *Poly
	n     int
	value PolValues
}

var globalTransformCache transformCache

// cachedTransform returns p's transform at length n, computing and caching
// it on a miss. A cache hit requires both the same Poly pointer and the same
// n; a mismatch on either silently falls through to a fresh transform.
func cachedTransform(p *Poly, n int) (PolValues, error) {
	globalTransformCache.mu.Lock()
	if globalTransformCache.key == p && globalTransformCache.n == n {
		v := globalTransformCache.value
		globalTransformCache.mu.Unlock()
		return v, nil
	}
	globalTransformCache.mu.Unlock()

	v, err := p.Transform(n)
	if err != nil {
		return PolValues{}, err
	}

	globalTransformCache.mu.Lock()
	globalTransformCache.key = p
	globalTransformCache.n = n
	globalTransformCache.value = v
	globalTransformCache.mu.Unlock()
	return v, nil
}

// MulCached multiplies p and q modulo X^K-1, like Mul, but looks up each
// operand's transform in the shared cache first. Passing the same *Poly in
// consecutive calls (the running value in a repeated-squaring loop) skips
// retransforming it.
func (p *Poly) MulCached(q *Poly) (Poly, error) {
	n := valueSize(p.K, p.M, 2)
	pv, err := cachedTransform(p, n)
	if err != nil {
		return Poly{}, err
	}
	qv, err := cachedTransform(q, n)
	if err != nil {
		return Poly{}, err
	}
	rv, err := pv.Mul(&qv)
	if err != nil {
		return Poly{}, err
	}
	r, err := rv.InvTransform()
	if err != nil {
		return Poly{}, err
	}
	r.M = p.M
	return r, nil
}

// SqrCached squares p like Mul(p, p), caching p's transform the same way
// MulCached does.
func (p *Poly) SqrCached() (Poly, error) {
	n := valueSize(p.K, p.M, 2)
	pv, err := cachedTransform(p, n)
	if err != nil {
		return Poly{}, err
	}
	rv, err := pv.Sqr()
	if err != nil {
		return Poly{}, err
	}
	r, err := rv.InvTransform()
	if err != nil {
		return Poly{}, err
	}
	r.M = p.M
	return r, nil
}
