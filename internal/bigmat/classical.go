package bigmat

import (
	"fmt"
	"math/big"
)

// MulClassical multiplies a (M-by-K) by b (K-by-N) using the textbook
// triple loop over math/big.Int arithmetic. It exists purely as a
// correctness oracle for MulFFT in tests; nothing in the FFT path calls it.
func MulClassical(a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("bigmat: dimension mismatch, %dx%d * %dx%d", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	M, K, N := a.Rows, a.Cols, b.Cols
	out := NewMatrix(M, N)
	term := new(big.Int)
	for i := 0; i < M; i++ {
		for j := 0; j < N; j++ {
			sum := out.At(i, j)
			for k := 0; k < K; k++ {
				term.Mul(a.At(i, k), b.At(k, j))
				sum.Add(sum, term)
			}
		}
	}
	return out, nil
}
