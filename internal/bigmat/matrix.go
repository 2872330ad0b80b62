// Package bigmat implements matrix multiplication over arbitrary-precision
// integers, sharing a single forward transform of each entry across every
// output cell that needs it instead of running one FFT multiply per
// scalar product.
package bigmat

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/agbru/ssfft/internal/bigfft"
	"golang.org/x/sync/errgroup"
)

// Matrix is a dense M-by-N matrix of arbitrary-precision integers.
type Matrix struct {
	Rows, Cols int
	data       []*big.Int
}

// NewMatrix returns a zero-filled rows-by-cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	data := make([]*big.Int, rows*cols)
	for i := range data {
		data[i] = new(big.Int)
	}
	return &Matrix{Rows: rows, Cols: cols, data: data}
}

// At returns the entry at (row, col).
func (m *Matrix) At(row, col int) *big.Int { return m.data[row*m.Cols+col] }

// Set assigns v to the entry at (row, col).
func (m *Matrix) Set(row, col int, v *big.Int) { m.data[row*m.Cols+col] = v }

// entryTransform is a matrix entry's forward transform, split from its sign
// so the transform itself only ever carries a non-negative magnitude.
// Pushing a coefficient's true sign into the Fermat ring would make it
// indistinguishable, after normalization, from a huge positive residue near
// the modulus — norm() has no notion of "this wrapped because it went
// negative" to undo later. Keeping sign out of the ring and resolving it
// with a plain big.Int subtraction once the dot product's two magnitude
// totals come back out is what lets MulFFT support negative entries at all.
type entryTransform struct {
	values bigfft.PolValues
	sign   int
}

// MulFFT multiplies a (M-by-K) by b (K-by-N) and returns the M-by-N
// product, transforming each distinct entry once and reusing it across
// every output cell that needs it — mat_mul_fft's defining optimization
// over repeated scalar multiplies.
func MulFFT(a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("bigmat: dimension mismatch, %dx%d * %dx%d", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	M, K, N := a.Rows, a.Cols, b.Cols
	if M == 0 || K == 0 || N == 0 {
		return NewMatrix(M, N), nil
	}

	k, m, n := transformShape(a, b, K)

	at := make([]entryTransform, M*K)
	bt := make([]entryTransform, K*N)
	var g errgroup.Group
	g.Go(func() error { return transformAll(a.data, at, k, m, n) })
	g.Go(func() error { return transformAll(b.data, bt, k, m, n) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := NewMatrix(M, N)
	var wg errgroup.Group
	for i := 0; i < M; i++ {
		i := i
		wg.Go(func() error {
			for j := 0; j < N; j++ {
				v, err := dotProduct(at[i*K:(i+1)*K], bt, j, K, N, m)
				if err != nil {
					return err
				}
				result.Set(i, j, v)
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// transformShape picks a single (k, m, n) FFT shape shared by every entry
// of a and b, sized for the largest entry's product magnitude plus
// ⌈log2 K⌉ bits of headroom for the K-term dot product's running sum —
// the matrix analogue of mul_main's bits_per_coeff reduction for bounding
// a K-way accumulation rather than a single product.
func transformShape(a, b *Matrix, K int) (k uint, m, n int) {
	maxWords := 1
	scan := func(mat *Matrix) {
		for _, v := range mat.data {
			if w := len(v.Bits()); w > maxWords {
				maxWords = w
			}
		}
	}
	scan(a)
	scan(b)

	headroomWords := bits.Len(uint(K))/32 + 2
	totalWords := 2*maxWords + headroomWords

	k, m = bigfft.GetFFTParams(totalWords)
	n = bigfft.ValueSize(k, m, 2)
	return
}

func transformAll(src []*big.Int, dst []entryTransform, k uint, m, n int) error {
	for i, v := range src {
		sign := v.Sign()
		if sign == 0 {
			dst[i] = entryTransform{sign: 0}
			continue
		}
		mag := new(big.Int).Abs(v)
		poly := bigfft.PolyFromInt(mag, k, m)
		pv, err := poly.Transform(n)
		if err != nil {
			return err
		}
		dst[i] = entryTransform{values: pv, sign: sign}
	}
	return nil
}

// dotProduct computes Σ_k a[k] * bt[k*N+j] as a signed *big.Int, by
// accumulating the positive and negative product magnitudes in two
// separate transform-domain totals and subtracting once, as plain
// big.Int, after both have been inverse-transformed back out.
func dotProduct(rowA []entryTransform, bt []entryTransform, j, K, N, m int) (*big.Int, error) {
	var pos, neg *bigfft.PolValues
	for k := 0; k < K; k++ {
		ea := rowA[k]
		eb := bt[k*N+j]
		if ea.sign == 0 || eb.sign == 0 {
			continue
		}
		prod, err := ea.values.Mul(&eb.values)
		if err != nil {
			return nil, err
		}
		target := &pos
		if ea.sign*eb.sign < 0 {
			target = &neg
		}
		if *target == nil {
			*target = &prod
		} else {
			sum := (*target).Add(&prod)
			*target = &sum
		}
	}

	posVal, err := resolveMagnitude(pos, m)
	if err != nil {
		return nil, err
	}
	negVal, err := resolveMagnitude(neg, m)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Sub(posVal, negVal), nil
}

func resolveMagnitude(v *bigfft.PolValues, m int) (*big.Int, error) {
	if v == nil {
		return new(big.Int), nil
	}
	poly, err := v.InvTransform()
	if err != nil {
		return nil, err
	}
	poly.M = m
	z := new(big.Int)
	poly.IntToBigInt(z)
	return z, nil
}
